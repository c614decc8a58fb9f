package domain

import (
	"errors"
	"fmt"
	"strings"
)

// StallKind tags the Stall sum type.
type StallKind string

const (
	StallBox      StallKind = "box"
	StallStore    StallKind = "store"
	StallRestroom StallKind = "restroom"
)

// Rect is an axis-aligned block of cells with Origin at its top-left.
type Rect struct {
	Origin Position
	Width  int
	Height int
}

// Contains reports whether p lies inside r.
func (r Rect) Contains(p Position) bool {
	return p.X >= r.Origin.X && p.X < r.Origin.X+r.Width &&
		p.Y >= r.Origin.Y && p.Y < r.Origin.Y+r.Height
}

// Stall is an entity a visitor can stop at.
//
// A box is a single cell and is entered through that cell. Stores and
// restrooms cover a rectangle and are entered through Door, which must
// lie inside the rectangle.
type Stall struct {
	ID     string
	Name   string
	Kind   StallKind
	Origin Position
	Width  int
	Height int
	Door   Position
}

// Bounds returns the cells covered by the stall.
func (s Stall) Bounds() Rect {
	switch s.Kind {
	case StallBox:
		return Rect{Origin: s.Origin, Width: 1, Height: 1}
	case StallStore, StallRestroom:
		return Rect{Origin: s.Origin, Width: s.Width, Height: s.Height}
	default:
		return Rect{}
	}
}

// Entrance returns the cell a route uses to reach the stall.
func (s Stall) Entrance() Position {
	switch s.Kind {
	case StallBox:
		return s.Origin
	case StallStore, StallRestroom:
		return s.Door
	default:
		return Position{X: -1, Y: -1}
	}
}

func (s Stall) validate(g *Grid) error {
	if strings.TrimSpace(s.ID) == "" {
		return errors.New("stall id must be non-empty")
	}
	switch s.Kind {
	case StallBox:
	case StallStore, StallRestroom:
		if s.Width < 1 || s.Height < 1 {
			return fmt.Errorf("stall %q: size %dx%d must be positive", s.ID, s.Width, s.Height)
		}
		if !s.Bounds().Contains(s.Door) {
			return fmt.Errorf("stall %q: door %v outside bounds", s.ID, s.Door)
		}
	default:
		return fmt.Errorf("stall %q: unknown kind %q", s.ID, s.Kind)
	}
	if c := g.Classify(s.Entrance()); c != CellOccupiable {
		return fmt.Errorf("stall %q: entrance %v is %s: %w", s.ID, s.Entrance(), c, ErrInvalidPosition)
	}
	return nil
}

// Venue is a named layout plus the stalls placed on it.
type Venue struct {
	ID     string
	Name   string
	Grid   *Grid
	Stalls []Stall
}

// NewVenue validates the stalls against grid and returns the venue.
func NewVenue(id, name string, grid *Grid, stalls []Stall) (*Venue, error) {
	if strings.TrimSpace(id) == "" {
		return nil, errors.New("new venue: id must be non-empty")
	}
	if grid == nil {
		return nil, fmt.Errorf("new venue %q: grid is nil", id)
	}

	seen := make(map[string]struct{}, len(stalls))
	for _, s := range stalls {
		if err := s.validate(grid); err != nil {
			return nil, fmt.Errorf("new venue %q: %w", id, err)
		}
		if _, ok := seen[s.ID]; ok {
			return nil, fmt.Errorf("new venue %q: duplicate stall id %q", id, s.ID)
		}
		seen[s.ID] = struct{}{}
	}

	return &Venue{ID: id, Name: name, Grid: grid, Stalls: append([]Stall(nil), stalls...)}, nil
}

// Stall looks up a stall by id.
func (v *Venue) Stall(id string) (Stall, bool) {
	for _, s := range v.Stalls {
		if s.ID == id {
			return s, true
		}
	}
	return Stall{}, false
}

// UnknownStallError reports a stall id that is not part of the venue.
type UnknownStallError struct {
	VenueID string
	StallID string
}

func (e *UnknownStallError) Error() string {
	return fmt.Sprintf("venue %q has no stall %q", e.VenueID, e.StallID)
}

// Destinations maps stall ids to planner destinations whose Ref is the
// stall id. Duplicate ids are kept; the planner collapses them.
func (v *Venue) Destinations(stallIDs []string) ([]Destination, error) {
	out := make([]Destination, 0, len(stallIDs))
	for _, id := range stallIDs {
		s, ok := v.Stall(id)
		if !ok {
			return nil, &UnknownStallError{VenueID: v.ID, StallID: id}
		}
		out = append(out, Destination{Position: s.Entrance(), Ref: s.ID})
	}
	return out, nil
}
