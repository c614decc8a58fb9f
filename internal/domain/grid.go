package domain

import (
	"fmt"
	"strings"
)

// Grid is an immutable occupancy snapshot of a venue.
//
// Cells are stored row-major; Classify never panics, positions outside
// [0,Cols) × [0,Rows) classify as CellOutOfBounds. The only way to derive
// a different grid is WithPath, which returns a copy.
type Grid struct {
	rows  int
	cols  int
	cells []CellType
}

// NewGrid builds a Grid from a rectangular [row][col] slice. The input is
// deep-copied so later mutation by the caller has no effect.
func NewGrid(cells [][]CellType) (*Grid, error) {
	if len(cells) == 0 || len(cells[0]) == 0 {
		return nil, ErrEmptyGrid
	}
	rows, cols := len(cells), len(cells[0])

	flat := make([]CellType, 0, rows*cols)
	for y, row := range cells {
		if len(row) != cols {
			return nil, fmt.Errorf("new grid: row %d has %d cells, want %d: %w", y, len(row), cols, ErrNonRectangular)
		}
		for x, c := range row {
			switch c {
			case CellPath, CellOccupiable, CellObstacle:
			default:
				return nil, fmt.Errorf("new grid: cell %v: %w", Position{X: x, Y: y}, ErrUnknownCell)
			}
			flat = append(flat, c)
		}
	}

	return &Grid{rows: rows, cols: cols, cells: flat}, nil
}

// ParseGrid builds a Grid from text rows: '.' path, '#' obstacle and
// 'O', 'B', 'S' or 'R' for occupiable stall cells.
func ParseGrid(lines []string) (*Grid, error) {
	cells := make([][]CellType, 0, len(lines))
	for y, line := range lines {
		line = strings.TrimRight(line, "\r")
		row := make([]CellType, len(line))
		for x := 0; x < len(line); x++ {
			c, ok := parseCell(line[x])
			if !ok {
				return nil, fmt.Errorf("parse grid: %q at %v: %w", line[x], Position{X: x, Y: y}, ErrUnknownCell)
			}
			row[x] = c
		}
		cells = append(cells, row)
	}
	return NewGrid(cells)
}

func (g *Grid) Rows() int { return g.rows }

func (g *Grid) Cols() int { return g.cols }

// InBounds reports whether p lies inside the grid.
func (g *Grid) InBounds(p Position) bool {
	return p.X >= 0 && p.X < g.cols && p.Y >= 0 && p.Y < g.rows
}

// Classify returns the cell type at p, or CellOutOfBounds.
func (g *Grid) Classify(p Position) CellType {
	if !g.InBounds(p) {
		return CellOutOfBounds
	}
	return g.cells[g.index(p)]
}

// WithPath returns a copy of g with every in-bounds position reclassified
// as CellPath. g itself is left untouched, which keeps a shared base grid
// safe to use from concurrent planning calls.
func (g *Grid) WithPath(positions ...Position) *Grid {
	cells := make([]CellType, len(g.cells))
	copy(cells, g.cells)
	for _, p := range positions {
		if g.InBounds(p) {
			cells[g.index(p)] = CellPath
		}
	}
	return &Grid{rows: g.rows, cols: g.cols, cells: cells}
}

// Lines renders the grid in the ParseGrid format.
func (g *Grid) Lines() []string {
	out := make([]string, g.rows)
	buf := make([]byte, g.cols)
	for y := 0; y < g.rows; y++ {
		for x := 0; x < g.cols; x++ {
			buf[x] = g.cells[y*g.cols+x].Symbol()
		}
		out[y] = string(buf)
	}
	return out
}

// Index maps p to its row-major index. Callers must check InBounds first.
func (g *Grid) Index(p Position) int { return g.index(p) }

// Size is the total number of cells.
func (g *Grid) Size() int { return len(g.cells) }

func (g *Grid) index(p Position) int {
	return p.Y*g.cols + p.X
}
