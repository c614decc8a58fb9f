package domain

import "fmt"

// Position is a grid coordinate. X is the column, Y is the row.
type Position struct {
	X int
	Y int
}

func (p Position) String() string { return fmt.Sprintf("(%d,%d)", p.X, p.Y) }

// Offsets of the four orthogonal neighbors in expansion order: N, E, S, W.
var neighborOffsets = [4]Position{{0, -1}, {1, 0}, {0, 1}, {-1, 0}}

// Neighbors returns the four orthogonal neighbors of p in N, E, S, W order.
// Bounds are not checked.
func (p Position) Neighbors() [4]Position {
	var out [4]Position
	for i, d := range neighborOffsets {
		out[i] = Position{X: p.X + d.X, Y: p.Y + d.Y}
	}
	return out
}

// Adjacent reports whether a and b are orthogonal neighbors.
func Adjacent(a, b Position) bool {
	return Manhattan(a, b) == 1
}

// Manhattan returns |a.X-b.X| + |a.Y-b.Y|.
func Manhattan(a, b Position) int {
	return abs(a.X-b.X) + abs(a.Y-b.Y)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
