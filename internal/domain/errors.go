package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyGrid indicates a grid with no rows or no columns.
	ErrEmptyGrid = errors.New("grid must have at least one row and one column")
	// ErrNonRectangular indicates rows of differing lengths.
	ErrNonRectangular = errors.New("grid rows must all have the same length")
	// ErrUnknownCell indicates a cell value or layout symbol with no CellType.
	ErrUnknownCell = errors.New("unknown cell type")

	// ErrInvalidPosition indicates a start or destination that is out of
	// bounds or of the wrong cell type for its role.
	ErrInvalidPosition = errors.New("invalid position")
	// ErrNoPathFound indicates two required points cannot be connected.
	ErrNoPathFound = errors.New("no path found")
)

// PositionError reports a start or destination rejected during validation.
type PositionError struct {
	Role     string // "start" or "destination"
	Index    int    // destination index in the caller's list; -1 for the start
	Position Position
	Cell     CellType
}

func (e *PositionError) Error() string {
	if e.Index >= 0 {
		return fmt.Sprintf("%s %d at %v is %s: %v", e.Role, e.Index, e.Position, e.Cell, ErrInvalidPosition)
	}
	return fmt.Sprintf("%s at %v is %s: %v", e.Role, e.Position, e.Cell, ErrInvalidPosition)
}

func (e *PositionError) Unwrap() error { return ErrInvalidPosition }

// NoPathError reports an unreachable leg.
type NoPathError struct {
	From Position
	To   Position
}

func (e *NoPathError) Error() string {
	return fmt.Sprintf("%v from %v to %v", ErrNoPathFound, e.From, e.To)
}

func (e *NoPathError) Unwrap() error { return ErrNoPathFound }
