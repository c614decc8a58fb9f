package services

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"venue-route-service/internal/domain"
)

// PlanRequest is one entry of a batch.
type PlanRequest struct {
	Start        domain.Position
	Destinations []domain.Destination
}

// PlanResult holds the outcome of one batch entry. Exactly one of Route
// and Err is set.
type PlanResult struct {
	Route *domain.Route
	Err   error
}

// PlanRoutes plans independent requests against the same base grid with at
// most limit plans running at once. Results are index-aligned with reqs.
//
// A failing request does not stop the batch; its error is stored in its
// result. The returned error is non-nil only when ctx ends before every
// request has run.
func PlanRoutes(ctx context.Context, grid *domain.Grid, reqs []PlanRequest, limit int) ([]PlanResult, error) {
	if grid == nil {
		return nil, errors.New("plan routes: grid must be non-nil")
	}
	if limit < 1 {
		limit = 1
	}

	results := make([]PlanResult, len(reqs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for i, req := range reqs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			// PlanRoute only reads grid; each call masks its own copy.
			route, err := PlanRoute(grid, req.Start, req.Destinations)
			results[i] = PlanResult{Route: route, Err: err}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("plan routes: %w", err)
	}

	return results, nil
}
