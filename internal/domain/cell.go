package domain

import "fmt"

// CellType classifies a single grid cell.
type CellType uint8

const (
	// CellOutOfBounds is returned by Grid.Classify for positions outside the grid.
	CellOutOfBounds CellType = iota
	// CellPath is walkable terrain.
	CellPath
	// CellOccupiable is a stall cell: not walkable, but valid as a route endpoint.
	CellOccupiable
	// CellObstacle is never walkable and never an endpoint.
	CellObstacle
)

func (c CellType) String() string {
	switch c {
	case CellOutOfBounds:
		return "out_of_bounds"
	case CellPath:
		return "path"
	case CellOccupiable:
		return "occupiable"
	case CellObstacle:
		return "obstacle"
	default:
		return fmt.Sprintf("cell(%d)", uint8(c))
	}
}

// Walkable reports whether a route may pass through the cell.
func (c CellType) Walkable() bool { return c == CellPath }

// IsEndpoint reports whether a path may start or end on the cell.
func (c CellType) IsEndpoint() bool { return c == CellPath || c == CellOccupiable }

// Symbol returns the layout character used by ParseGrid and Grid.Lines.
func (c CellType) Symbol() byte {
	switch c {
	case CellPath:
		return '.'
	case CellOccupiable:
		return 'O'
	case CellObstacle:
		return '#'
	default:
		return '?'
	}
}

// parseCell maps a layout character to a CellType. Rendering layers may
// distinguish boxes, stores and restrooms; the planner only needs to know
// they are occupiable.
func parseCell(r byte) (CellType, bool) {
	switch r {
	case '.':
		return CellPath, true
	case '#':
		return CellObstacle, true
	case 'O', 'B', 'S', 'R':
		return CellOccupiable, true
	default:
		return CellOutOfBounds, false
	}
}
