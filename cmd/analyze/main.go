// Command analyze summarizes saved board snapshot files. Snapshots are the
// JSON files written by the play command's --save flag or by Board.Save.
package main

import (
	"flag"
	"fmt"
	"os"

	"game2048/game/engine"
)

func main() {
	grid := flag.Bool("grid", true, "Print the board grid for each snapshot")
	flag.Parse()

	files := flag.Args()
	if len(files) == 0 {
		fmt.Fprintln(os.Stderr, "Usage: analyze [flags] <snapshot.json> [more...]")
		os.Exit(2)
	}

	failed := false
	for _, path := range files {
		if err := analyze(path, *grid); err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", path, err)
			failed = true
		}
	}
	if failed {
		os.Exit(1)
	}
}

func analyze(path string, grid bool) error {
	board, err := engine.LoadBoard(path)
	if err != nil {
		return err
	}

	cells := board.Size * board.Size
	fmt.Printf("%s\n", path)
	fmt.Printf("  Size:        %dx%d\n", board.Size, board.Size)
	fmt.Printf("  Score:       %d\n", board.Score)
	fmt.Printf("  Max tile:    %d\n", board.MaxTile().Displayed())
	fmt.Printf("  Empty cells: %d/%d\n", board.EmptyCount(), cells)

	if grid {
		fmt.Println()
		fmt.Println(board.String())
	}
	fmt.Println()
	return nil
}
