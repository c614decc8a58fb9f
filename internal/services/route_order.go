package services

import "venue-route-service/internal/domain"

// SolveRouteOrder returns a visiting order over matrix indices 1..n-1.
// Index 0 is the fixed start and is not part of the result.
//
// The order is built greedily with NearestNeighborOrder and then refined
// with TwoOpt. It is a local optimum, not a guaranteed shortest tour, and is
// deterministic for a given matrix.
func SolveRouteOrder(m domain.DistanceMatrix) []int {
	switch n := m.Size(); {
	case n <= 1:
		return []int{}
	case n == 2:
		return []int{1}
	}
	return TwoOpt(m, NearestNeighborOrder(m))
}

// NearestNeighborOrder starts at index 0 and repeatedly moves to the closest
// unvisited index. Ties go to the lowest index. The result is an open path
// over 1..n-1; the start is not revisited.
func NearestNeighborOrder(m domain.DistanceMatrix) []int {
	n := m.Size()
	if n <= 1 {
		return []int{}
	}

	visited := make([]bool, n)
	visited[0] = true
	order := make([]int, 0, n-1)

	current := 0
	for len(order) < n-1 {
		best := -1
		for j := 1; j < n; j++ {
			if visited[j] {
				continue
			}
			if best < 0 || m[current][j] < m[current][best] {
				best = j
			}
		}
		visited[best] = true
		order = append(order, best)
		current = best
	}

	return order
}

// TwoOpt refines order with first-improvement 2-opt on the open path
// [0, order...]. The start stays anchored at position 0.
//
// For every candidate segment [i..k] with 1 ≤ i < k, reversing it replaces
// edge (a,b) with (a,c) and, unless k is the last position, edge (c,d) with
// (b,d), where a=T[i-1], b=T[i], c=T[k], d=T[k+1]. The first strictly
// improving reversal is applied and the scan restarts from the beginning.
// The loop ends when a full scan finds no improvement.
//
// Edges inside the segment keep their length because the matrix is
// symmetric. The input slice is not modified.
func TwoOpt(m domain.DistanceMatrix, order []int) []int {
	tour := make([]int, 0, len(order)+1)
	tour = append(tour, 0)
	tour = append(tour, order...)
	n := len(tour)

	for {
		improved := false
		for i := 1; i < n-1 && !improved; i++ {
			for k := i + 1; k < n; k++ {
				a, b, c := tour[i-1], tour[i], tour[k]
				delta := m[a][c] - m[a][b]
				if k+1 < n {
					d := tour[k+1]
					delta += m[b][d] - m[c][d]
				}
				if delta < 0 {
					reverse(tour[i : k+1])
					improved = true
					break
				}
			}
		}
		if !improved {
			break
		}
	}

	return tour[1:]
}

// TourLength is the open-path length of visiting order from the start.
func TourLength(m domain.DistanceMatrix, order []int) int {
	if len(order) == 0 {
		return 0
	}
	tour := make([]int, 0, len(order)+1)
	tour = append(tour, 0)
	tour = append(tour, order...)
	return m.PathLength(tour)
}

func reverse(s []int) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}
