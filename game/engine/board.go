package engine

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"strings"
)

// Tile is the stored exponent of a cell value. Empty marks a vacant cell.
type Tile int

// Empty is the sentinel tile value for a vacant cell.
const Empty Tile = 0

// Displayed returns the value shown to the player, or 0 for an empty cell.
func (t Tile) Displayed() int {
	if t == Empty {
		return 0
	}
	return 1 << t
}

// Coordinate addresses a cell as (row, column). Row 0 is the top edge and
// column 0 is the left edge.
type Coordinate struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Board is the game board: a square grid of tiles plus the running score.
// The size is fixed at construction and the score never decreases.
type Board struct {
	Size  int      `json:"size"`
	Tiles [][]Tile `json:"tiles"`
	Score int      `json:"score"`
}

// NewBoard creates a board of the given size. If flat is non-nil it must hold
// size*size tiles in row-major order; otherwise the board starts blank.
// Invalid sizes, mismatched lengths and negative tiles are programmer errors
// and panic.
func NewBoard(size int, flat []Tile, score int) *Board {
	if size < MinBoardSize || size > MaxBoardSize {
		panic(fmt.Sprintf("engine: board size %d out of range [%d,%d]", size, MinBoardSize, MaxBoardSize))
	}
	if score < 0 {
		panic(fmt.Sprintf("engine: negative initial score %d", score))
	}
	tiles := make([][]Tile, size)
	if flat != nil && len(flat) != size*size {
		panic(fmt.Sprintf("engine: flat tiles length %d does not match %dx%d board", len(flat), size, size))
	}
	for r := 0; r < size; r++ {
		tiles[r] = make([]Tile, size)
		if flat != nil {
			for c := 0; c < size; c++ {
				v := flat[r*size+c]
				if v < 0 {
					panic(fmt.Sprintf("engine: negative tile %d at (%d,%d)", v, r, c))
				}
				tiles[r][c] = v
			}
		}
	}
	return &Board{Size: size, Tiles: tiles, Score: score}
}

// InBounds reports whether pos addresses a cell on the board.
func (b *Board) InBounds(pos Coordinate) bool {
	return pos.Row >= 0 && pos.Row < b.Size && pos.Col >= 0 && pos.Col < b.Size
}

// Get returns the tile at pos. The second return is false when pos is out of
// bounds; Get never fails.
func (b *Board) Get(pos Coordinate) (Tile, bool) {
	if !b.InBounds(pos) {
		return Empty, false
	}
	return b.Tiles[pos.Row][pos.Col], true
}

// Set writes value at pos. Out-of-bounds positions and negative values are
// programmer errors and panic. Zero is legal: it clears the cell.
func (b *Board) Set(pos Coordinate, value Tile) {
	if !b.InBounds(pos) {
		panic(fmt.Sprintf("engine: set out of bounds at (%d,%d) on %dx%d board", pos.Row, pos.Col, b.Size, b.Size))
	}
	if value < 0 {
		panic(fmt.Sprintf("engine: tile value must be >= 0, got %d", value))
	}
	b.Tiles[pos.Row][pos.Col] = value
}

// Neighbor returns the cell adjacent to pos in the given direction, or false
// when that cell is off the board.
func (b *Board) Neighbor(pos Coordinate, dir Direction) (Coordinate, bool) {
	dr, dc := dir.Offset()
	next := Coordinate{Row: pos.Row + dr, Col: pos.Col + dc}
	if !b.InBounds(next) {
		return Coordinate{}, false
	}
	return next, true
}

// Generate places times new tiles on empty cells, each with a value drawn
// uniformly from [lo, hi). Placement rejection-samples coordinates until an
// empty cell is hit, so the caller must guarantee at least times empty cells
// or Generate will not terminate.
func (b *Board) Generate(times int, lo, hi Tile) {
	b.generate(nil, times, lo, hi)
}

// GenerateWith is Generate with an explicit random source, for deterministic
// seeding in tests and replays.
func (b *Board) GenerateWith(rng *rand.Rand, times int, lo, hi Tile) {
	b.generate(rng, times, lo, hi)
}

func (b *Board) generate(rng *rand.Rand, times int, lo, hi Tile) {
	if lo < 1 || hi <= lo {
		panic(fmt.Sprintf("engine: invalid generate range [%d,%d)", lo, hi))
	}
	intn := rand.Intn
	if rng != nil {
		intn = rng.Intn
	}
	for i := 0; i < times; i++ {
		for {
			pos := Coordinate{Row: intn(b.Size), Col: intn(b.Size)}
			if b.Tiles[pos.Row][pos.Col] != Empty {
				continue
			}
			b.Set(pos, lo+Tile(intn(int(hi-lo))))
			break
		}
	}
}

// EmptyCount returns the number of vacant cells.
func (b *Board) EmptyCount() int {
	count := 0
	for _, row := range b.Tiles {
		for _, tile := range row {
			if tile == Empty {
				count++
			}
		}
	}
	return count
}

// MaxTile returns the largest stored tile value on the board.
func (b *Board) MaxTile() Tile {
	max := Empty
	for _, row := range b.Tiles {
		for _, tile := range row {
			if tile > max {
				max = tile
			}
		}
	}
	return max
}

// Clone returns a deep copy of the board.
func (b *Board) Clone() *Board {
	tiles := make([][]Tile, b.Size)
	for r := range b.Tiles {
		tiles[r] = make([]Tile, b.Size)
		copy(tiles[r], b.Tiles[r])
	}
	return &Board{Size: b.Size, Tiles: tiles, Score: b.Score}
}

// Save writes the board snapshot as indented JSON to path. The in-memory
// board is unaffected by a failed write.
func (b *Board) Save(path string) error {
	data, err := json.MarshalIndent(b, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal board: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write board snapshot: %w", err)
	}
	return nil
}

// LoadBoard reads a board snapshot written by Save and validates it.
func LoadBoard(path string) (*Board, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read board snapshot: %w", err)
	}
	var board Board
	if err := json.Unmarshal(data, &board); err != nil {
		return nil, fmt.Errorf("failed to parse board snapshot: %w", err)
	}
	if err := board.Validate(); err != nil {
		return nil, err
	}
	return &board, nil
}

// Validate checks the structural invariants of a deserialized board.
func (b *Board) Validate() error {
	if b.Size < MinBoardSize || b.Size > MaxBoardSize {
		return fmt.Errorf("board size %d out of range [%d,%d]", b.Size, MinBoardSize, MaxBoardSize)
	}
	if b.Score < 0 {
		return fmt.Errorf("negative score %d", b.Score)
	}
	if len(b.Tiles) != b.Size {
		return fmt.Errorf("board has %d rows, expected %d", len(b.Tiles), b.Size)
	}
	for r, row := range b.Tiles {
		if len(row) != b.Size {
			return fmt.Errorf("row %d has %d columns, expected %d", r, len(row), b.Size)
		}
		for c, tile := range row {
			if tile < 0 {
				return fmt.Errorf("negative tile %d at (%d,%d)", tile, r, c)
			}
		}
	}
	return nil
}

// String renders the stored exponents as a fixed-width grid, one row per
// line. Meant for logs and the CLI.
func (b *Board) String() string {
	var sb strings.Builder
	for _, row := range b.Tiles {
		for _, tile := range row {
			fmt.Fprintf(&sb, "%5d", tile)
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
