package engine

// Core is the stateless move operator. It mutates a Board through Shift and
// inspects one through IsGameOver; it carries no state of its own.
type Core struct{}

// NewCore creates a core operator.
func NewCore() Core {
	return Core{}
}

// IsGameOver reports whether no move can change the board: every cell is
// occupied and no two orthogonally adjacent cells hold equal values. Each
// cell only needs its right and down neighbors checked, since the left/up
// pairs are the same pairs seen from the other side.
func (c Core) IsGameOver(b *Board) bool {
	for r := 0; r < b.Size; r++ {
		for col := 0; col < b.Size; col++ {
			v := b.Tiles[r][col]
			if v == Empty {
				return false
			}
			if col+1 < b.Size && b.Tiles[r][col+1] == v {
				return false
			}
			if r+1 < b.Size && b.Tiles[r+1][col] == v {
				return false
			}
		}
	}
	return true
}

// Shift applies one sliding-merge move in the given direction, mutating the
// board in place, and returns the movement traces in traversal order. An
// empty result means the move was a no-op; callers treat that as an invalid
// move and do not seed a new tile.
//
// Each lane perpendicular to the direction is swept from the destination
// edge inward. Processing the destination edge first is what guarantees a
// tile produced by a merge is never merged again within the same shift.
func (c Core) Shift(b *Board, dir Direction) []Trace {
	traces := []Trace{}
	switch dir {
	case Right:
		for r := 0; r < b.Size; r++ {
			for col := b.Size - 1; col >= 0; col-- {
				traces = append(traces, c.shiftFrom(b, Coordinate{Row: r, Col: col}, dir)...)
			}
		}
	case Down:
		for col := 0; col < b.Size; col++ {
			for r := b.Size - 1; r >= 0; r-- {
				traces = append(traces, c.shiftFrom(b, Coordinate{Row: r, Col: col}, dir)...)
			}
		}
	case Up:
		for col := 0; col < b.Size; col++ {
			for r := 0; r < b.Size; r++ {
				traces = append(traces, c.shiftFrom(b, Coordinate{Row: r, Col: col}, dir)...)
			}
		}
	case Left:
		for r := 0; r < b.Size; r++ {
			for col := 0; col < b.Size; col++ {
				traces = append(traces, c.shiftFrom(b, Coordinate{Row: r, Col: col}, dir)...)
			}
		}
	}
	return traces
}

// shiftFrom walks from pos toward dir, pushing whatever tile occupies the
// current cell into empty neighbors and merging it into equal ones. The
// justSlid flag coalesces consecutive slides into a single trace; a merge
// resets it so the merge gets a trace of its own.
func (c Core) shiftFrom(b *Board, pos Coordinate, dir Direction) []Trace {
	var traces []Trace
	justSlid := false
	for {
		next, ok := b.Neighbor(pos, dir)
		if !ok {
			return traces
		}
		cur := b.Tiles[pos.Row][pos.Col]
		ahead := b.Tiles[next.Row][next.Col]

		if cur != Empty {
			switch {
			case ahead == Empty:
				b.Set(next, cur)
				b.Set(pos, Empty)
				if justSlid {
					origin := traces[len(traces)-1].From
					traces[len(traces)-1] = Trace{From: origin, To: next}
				} else {
					traces = append(traces, Trace{From: pos, To: next})
				}
				justSlid = true
			case ahead == cur:
				b.Set(next, cur+1)
				b.Set(pos, Empty)
				b.Score += 1 << (cur + 1)
				traces = append(traces, Trace{From: pos, To: next})
				justSlid = false
			}
			// A differing non-empty neighbor blocks the tile; keep walking
			// so tiles further along the lane still get processed.
		}
		pos = next
	}
}
