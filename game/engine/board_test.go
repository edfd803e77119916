package engine

import (
	"encoding/json"
	"math/rand"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewBoard(t *testing.T) {
	t.Run("blank board starts empty with score zero", func(t *testing.T) {
		board := NewBoard(4, nil, 0)
		require.Equal(t, 4, board.Size)
		require.Equal(t, 0, board.Score)
		require.Equal(t, 16, board.EmptyCount())
	})

	t.Run("flat tiles fill row-major", func(t *testing.T) {
		board := NewBoard(2, []Tile{1, 2, 3, 4}, 10)
		require.Equal(t, [][]Tile{{1, 2}, {3, 4}}, board.Tiles)
		require.Equal(t, 10, board.Score)
	})

	t.Run("invalid construction panics", func(t *testing.T) {
		require.Panics(t, func() { NewBoard(1, nil, 0) })
		require.Panics(t, func() { NewBoard(4, []Tile{1, 2, 3}, 0) })
		require.Panics(t, func() { NewBoard(2, []Tile{1, -1, 0, 0}, 0) })
		require.Panics(t, func() { NewBoard(4, nil, -5) })
	})
}

func TestBoardGetSet(t *testing.T) {
	board := NewBoard(4, nil, 0)

	board.Set(Coordinate{Row: 1, Col: 2}, 5)
	tile, ok := board.Get(Coordinate{Row: 1, Col: 2})
	require.True(t, ok)
	require.Equal(t, Tile(5), tile)

	t.Run("get out of bounds is absent, not an error", func(t *testing.T) {
		for _, pos := range []Coordinate{
			{Row: -1, Col: 0}, {Row: 0, Col: -1}, {Row: 4, Col: 0}, {Row: 0, Col: 4},
		} {
			_, ok := board.Get(pos)
			require.False(t, ok, "position %+v should be out of bounds", pos)
		}
	})

	t.Run("set violations panic", func(t *testing.T) {
		require.Panics(t, func() { board.Set(Coordinate{Row: 4, Col: 0}, 1) })
		require.Panics(t, func() { board.Set(Coordinate{Row: 0, Col: 0}, -1) })
	})

	t.Run("set zero clears a cell", func(t *testing.T) {
		board.Set(Coordinate{Row: 1, Col: 2}, Empty)
		tile, ok := board.Get(Coordinate{Row: 1, Col: 2})
		require.True(t, ok)
		require.Equal(t, Empty, tile)
	})
}

func TestBoardNeighbor(t *testing.T) {
	board := NewBoard(4, nil, 0)

	cases := []struct {
		name string
		pos  Coordinate
		dir  Direction
		want Coordinate
		ok   bool
	}{
		{"up decrements row", Coordinate{1, 1}, Up, Coordinate{0, 1}, true},
		{"down increments row", Coordinate{1, 1}, Down, Coordinate{2, 1}, true},
		{"left decrements column", Coordinate{1, 1}, Left, Coordinate{1, 0}, true},
		{"right increments column", Coordinate{1, 1}, Right, Coordinate{1, 2}, true},
		{"up off the top edge", Coordinate{0, 2}, Up, Coordinate{}, false},
		{"down off the bottom edge", Coordinate{3, 2}, Down, Coordinate{}, false},
		{"left off the left edge", Coordinate{2, 0}, Left, Coordinate{}, false},
		{"right off the right edge", Coordinate{2, 3}, Right, Coordinate{}, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := board.Neighbor(tc.pos, tc.dir)
			require.Equal(t, tc.ok, ok)
			if tc.ok {
				require.Equal(t, tc.want, got)
			}
		})
	}
}

func TestBoardGenerate(t *testing.T) {
	t.Run("seeded source is deterministic", func(t *testing.T) {
		first := NewBoard(4, nil, 0)
		second := NewBoard(4, nil, 0)
		first.GenerateWith(rand.New(rand.NewSource(7)), 3, 1, 3)
		second.GenerateWith(rand.New(rand.NewSource(7)), 3, 1, 3)
		require.Equal(t, first, second)
	})

	t.Run("values land on empty cells within the range", func(t *testing.T) {
		board := NewBoard(4, nil, 0)
		board.GenerateWith(rand.New(rand.NewSource(1)), 10, 1, 3)
		require.Equal(t, 6, board.EmptyCount())
		for _, row := range board.Tiles {
			for _, tile := range row {
				if tile != Empty {
					require.GreaterOrEqual(t, tile, Tile(1))
					require.Less(t, tile, Tile(3))
				}
			}
		}
	})

	t.Run("occupied cells are never overwritten", func(t *testing.T) {
		board := NewBoard(2, []Tile{9, 9, 9, 0}, 0)
		board.GenerateWith(rand.New(rand.NewSource(3)), 1, 1, 3)
		require.Equal(t, Tile(9), board.Tiles[0][0])
		require.Equal(t, Tile(9), board.Tiles[0][1])
		require.Equal(t, Tile(9), board.Tiles[1][0])
		require.NotEqual(t, Empty, board.Tiles[1][1])
	})

	t.Run("invalid range panics", func(t *testing.T) {
		board := NewBoard(4, nil, 0)
		require.Panics(t, func() { board.Generate(1, 0, 3) })
		require.Panics(t, func() { board.Generate(1, 2, 2) })
	})
}

func TestBoardJSONRoundTrip(t *testing.T) {
	board := NewBoard(4, []Tile{
		1, 0, 0, 0,
		1, 0, 1, 1,
		1, 0, 1, 2,
		0, 0, 0, 0,
	}, 12)

	data, err := json.Marshal(board)
	require.NoError(t, err)

	var decoded Board
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Equal(t, *board, decoded)
}

func TestBoardSaveAndLoad(t *testing.T) {
	board := NewBoard(3, []Tile{1, 2, 3, 4, 5, 6, 7, 8, 0}, 42)
	path := filepath.Join(t.TempDir(), "snapshot.json")

	require.NoError(t, board.Save(path))

	loaded, err := LoadBoard(path)
	require.NoError(t, err)
	require.Equal(t, board, loaded)

	t.Run("missing file surfaces the cause", func(t *testing.T) {
		_, err := LoadBoard(filepath.Join(t.TempDir(), "missing.json"))
		require.Error(t, err)
	})

	t.Run("corrupt snapshot is rejected", func(t *testing.T) {
		bad := filepath.Join(t.TempDir(), "bad.json")
		require.NoError(t, NewBoard(2, []Tile{1, 2, 3, 4}, 0).Save(bad))

		// Tamper with the size so the grid no longer matches.
		loaded, err := LoadBoard(bad)
		require.NoError(t, err)
		loaded.Size = 3
		require.Error(t, loaded.Validate())
	})
}

func TestBoardString(t *testing.T) {
	board := NewBoard(2, []Tile{1, 0, 0, 11}, 0)
	require.Equal(t, "    1    0\n    0   11\n", board.String())
}

func TestTileDisplayed(t *testing.T) {
	require.Equal(t, 0, Empty.Displayed())
	require.Equal(t, 2, Tile(1).Displayed())
	require.Equal(t, 4, Tile(2).Displayed())
	require.Equal(t, 2048, Tile(11).Displayed())
}
