package services

import (
	"errors"
	"fmt"

	"venue-route-service/internal/domain"
)

// PlanRoute plans a walk from start through every destination.
//
// The start must be walkable and every destination must be an occupiable
// stall cell; anything else fails with a *domain.PositionError instead of
// producing a route through invalid cells. Destinations at the same cell
// collapse to one visit that keeps every Ref. Destination cells are treated
// as walkable on a private copy of grid, so one stall never blocks the way
// to another. Unreachable stops fail with a *domain.NoPathError.
//
// The call is synchronous and keeps no state: every call recomputes the
// matrix and paths from grid, and grid is never modified. Cost grows with
// the square of the distinct stop count.
func PlanRoute(grid *domain.Grid, start domain.Position, destinations []domain.Destination) (*domain.Route, error) {
	if grid == nil {
		return nil, errors.New("plan route: grid must be non-nil")
	}

	if c := grid.Classify(start); c != domain.CellPath {
		return nil, fmt.Errorf("plan route: %w", &domain.PositionError{Role: "start", Index: -1, Position: start, Cell: c})
	}
	for i, d := range destinations {
		if c := grid.Classify(d.Position); c != domain.CellOccupiable {
			return nil, fmt.Errorf("plan route: %w", &domain.PositionError{Role: "destination", Index: i, Position: d.Position, Cell: c})
		}
	}

	requested := append([]domain.Destination(nil), destinations...)
	visits := dedupeDestinations(destinations)

	if len(visits) == 0 {
		return &domain.Route{
			Start:        start,
			Order:        []domain.Position{},
			Visits:       []domain.Visit{},
			Steps:        []domain.Position{start},
			Legs:         []domain.Leg{},
			Distance:     0,
			Destinations: requested,
		}, nil
	}

	stops := make([]domain.Position, len(visits))
	for i, v := range visits {
		stops[i] = v.Position
	}
	masked := grid.WithPath(stops...)

	points := append([]domain.Position{start}, stops...)
	matrix := BuildDistanceMatrix(masked, points)

	// Reachability from the start implies reachability between every pair
	// on the masked grid, so checking row 0 is enough to fail early.
	for j := 1; j < matrix.Size(); j++ {
		if !matrix.Reachable(0, j) {
			return nil, fmt.Errorf("plan route: %w", &domain.NoPathError{From: start, To: points[j]})
		}
	}

	order := SolveRouteOrder(matrix)

	orderedVisits := make([]domain.Visit, len(order))
	orderedStops := make([]domain.Position, len(order))
	for i, idx := range order {
		orderedVisits[i] = visits[idx-1]
		orderedStops[i] = visits[idx-1].Position
	}

	steps, legs, err := ComposeLegs(masked, append([]domain.Position{start}, orderedStops...))
	if err != nil {
		return nil, fmt.Errorf("plan route: %w", err)
	}

	return &domain.Route{
		Start:        start,
		Order:        orderedStops,
		Visits:       orderedVisits,
		Steps:        steps,
		Legs:         legs,
		Distance:     len(steps) - 1,
		Destinations: requested,
	}, nil
}

// dedupeDestinations groups destinations by position, keeping the first
// occurrence's place and collecting every Ref.
func dedupeDestinations(destinations []domain.Destination) []domain.Visit {
	index := make(map[domain.Position]int, len(destinations))
	visits := make([]domain.Visit, 0, len(destinations))
	for _, d := range destinations {
		if i, ok := index[d.Position]; ok {
			visits[i].Refs = append(visits[i].Refs, d.Ref)
			continue
		}
		index[d.Position] = len(visits)
		visits = append(visits, domain.Visit{Position: d.Position, Refs: []any{d.Ref}})
	}
	return visits
}
