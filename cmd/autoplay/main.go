// Command autoplay runs unattended games against the engine and reports
// score and max-tile statistics. It is useful for sanity-checking a game
// configuration and for getting a feel for how far a trivial strategy gets.
package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"sort"

	"game2048/game/config"
	"game2048/game/engine"
)

func main() {
	games := flag.Int("games", 100, "Number of games to play")
	configName := flag.String("config", "classic", "Game configuration name")
	configDir := flag.String("config-dir", "configs", "Directory containing game configurations")
	strategy := flag.String("strategy", "corner", "Move strategy: corner or random")
	maxMoves := flag.Int("max-moves", 10000, "Maximum moves per game")
	seed := flag.Int64("seed", 0, "Base seed for reproducible runs (0 = random)")
	verbose := flag.Bool("v", false, "Verbose output")
	flag.Parse()

	cfg := loadConfig(*configDir, *configName)
	next := pickStrategy(*strategy)
	if next == nil {
		log.Fatalf("Unknown strategy: %s (use corner or random)", *strategy)
	}

	log.Printf("Playing %d games of %q (%dx%d) with %s strategy",
		*games, cfg.Name, cfg.BoardSize, cfg.BoardSize, *strategy)

	scores := make([]int, 0, *games)
	maxTiles := make([]int, 0, *games)
	wins := 0

	for i := 0; i < *games; i++ {
		var (
			game *engine.Game
			err  error
		)
		if *seed != 0 {
			game, err = engine.NewSeededGame(cfg, *seed+int64(i))
		} else {
			game, err = engine.NewGame(cfg)
		}
		if err != nil {
			log.Fatalf("Failed to start game: %v", err)
		}

		moves := playOut(game, next, *maxMoves)

		scores = append(scores, game.Score())
		maxTiles = append(maxTiles, game.MaxTile().Displayed())
		if game.IsWon() {
			wins++
		}

		if *verbose {
			log.Printf("Game %d: score=%d max_tile=%d moves=%d won=%v",
				i+1, game.Score(), game.MaxTile().Displayed(), moves, game.IsWon())
		}
	}

	report(scores, maxTiles, wins)
}

// playOut drives a single game to a terminal state or the move cap. It
// returns the number of accepted moves.
func playOut(game *engine.Game, next func(*engine.Game) []engine.Direction, maxMoves int) int {
	moves := 0
	for moves < maxMoves && !game.IsGameOver() && !game.IsWon() {
		moved := false
		for _, dir := range next(game) {
			if outcome := game.Move(dir); outcome.Moved {
				moved = true
				break
			}
		}
		if !moved {
			break
		}
		moves++
	}
	return moves
}

// pickStrategy returns a function yielding directions in preference order.
// The corner strategy keeps large tiles pinned by preferring down and left;
// right and up are fallbacks for when the board stops responding.
func pickStrategy(name string) func(*engine.Game) []engine.Direction {
	switch name {
	case "corner":
		order := []engine.Direction{engine.Down, engine.Left, engine.Right, engine.Up}
		return func(*engine.Game) []engine.Direction {
			return order
		}
	case "random":
		return func(*engine.Game) []engine.Direction {
			dirs := make([]engine.Direction, len(engine.Directions))
			copy(dirs, engine.Directions)
			rand.Shuffle(len(dirs), func(i, j int) {
				dirs[i], dirs[j] = dirs[j], dirs[i]
			})
			return dirs
		}
	default:
		return nil
	}
}

// report prints aggregate statistics across all played games.
func report(scores, maxTiles []int, wins int) {
	if len(scores) == 0 {
		fmt.Println("No games played")
		os.Exit(1)
	}

	sort.Ints(scores)
	total := 0
	for _, s := range scores {
		total += s
	}

	best := 0
	tileCounts := make(map[int]int)
	for _, t := range maxTiles {
		tileCounts[t]++
		if t > best {
			best = t
		}
	}

	fmt.Printf("\nGames:      %d\n", len(scores))
	fmt.Printf("Wins:       %d\n", wins)
	fmt.Printf("Avg score:  %d\n", total/len(scores))
	fmt.Printf("Median:     %d\n", scores[len(scores)/2])
	fmt.Printf("Best score: %d\n", scores[len(scores)-1])
	fmt.Printf("Best tile:  %d\n", best)

	tiles := make([]int, 0, len(tileCounts))
	for t := range tileCounts {
		tiles = append(tiles, t)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(tiles)))
	fmt.Println("\nMax tile distribution:")
	for _, t := range tiles {
		fmt.Printf("  %5d: %d\n", t, tileCounts[t])
	}
}

// loadConfig resolves the named config, falling back to the built-in default
// when the directory or name is unavailable.
func loadConfig(configDir, name string) *engine.GameConfig {
	manager, err := config.NewManager(configDir)
	if err != nil {
		log.Printf("Config directory unavailable (%v), using default config", err)
		return engine.DefaultConfig()
	}

	cfg, err := manager.LoadConfig(name)
	if err != nil {
		log.Printf("Config %q not found (%v), using default config", name, err)
		return engine.DefaultConfig()
	}
	return cfg
}
