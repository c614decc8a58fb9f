package services

import "venue-route-service/internal/domain"

// ComposeSteps stitches the shortest path of every consecutive pair in
// ordered into one walk. ordered[0] is the start.
//
// Each leg after the first drops its first cell, which repeats the previous
// leg's last cell, so len(steps) = Σ len(leg) − (legs − 1). An unreachable
// leg fails the whole route with a *domain.NoPathError.
func ComposeSteps(grid *domain.Grid, ordered []domain.Position) ([]domain.Position, error) {
	steps, _, err := ComposeLegs(grid, ordered)
	return steps, err
}

// ComposeLegs is ComposeSteps that also reports where each leg starts and
// ends inside the returned steps.
func ComposeLegs(grid *domain.Grid, ordered []domain.Position) ([]domain.Position, []domain.Leg, error) {
	if len(ordered) == 0 {
		return []domain.Position{}, []domain.Leg{}, nil
	}

	steps := []domain.Position{ordered[0]}
	legs := make([]domain.Leg, 0, len(ordered)-1)

	for i := 0; i+1 < len(ordered); i++ {
		from, to := ordered[i], ordered[i+1]
		path := FindPath(grid, from, to)
		if len(path) == 0 {
			return nil, nil, &domain.NoPathError{From: from, To: to}
		}

		start := len(steps) - 1
		steps = append(steps, path[1:]...)
		legs = append(legs, domain.Leg{
			From:      from,
			To:        to,
			StartStep: start,
			EndStep:   len(steps) - 1,
		})
	}

	return steps, legs, nil
}
