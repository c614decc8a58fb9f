package services

import "venue-route-service/internal/domain"

// BuildDistanceMatrix computes shortest-path step counts between every pair
// of points. points[0] is the route start; the slice is not reordered.
//
// Each unordered pair is searched once and mirrored, so the result is
// symmetric with a zero diagonal. Pairs with no path hold domain.Unreachable.
// Cost is n(n-1)/2 FindPath calls, which dominates planning on large grids.
func BuildDistanceMatrix(grid *domain.Grid, points []domain.Position) domain.DistanceMatrix {
	n := len(points)
	m := domain.NewDistanceMatrix(n)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			path := FindPath(grid, points[i], points[j])
			if len(path) == 0 {
				continue
			}
			m[i][j] = len(path) - 1
			m[j][i] = len(path) - 1
		}
	}
	return m
}
