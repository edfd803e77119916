package engine

// Trace records the net displacement of one tile during a single shift,
// for consumption by animating UIs. From and To always differ and are both
// in bounds. Consecutive slides of the same tile across empty cells are
// coalesced into one trace covering the full journey; a merge always emits
// its own trace ending at the merge site.
type Trace struct {
	From Coordinate `json:"from"`
	To   Coordinate `json:"to"`
}
