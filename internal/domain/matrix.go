package domain

import "math"

// Unreachable marks a DistanceMatrix entry with no connecting path.
const Unreachable = math.MaxInt32

// DistanceMatrix holds pairwise shortest-path lengths in grid steps.
// Index 0 is the route start; entries are symmetric with a zero diagonal.
type DistanceMatrix [][]int

// NewDistanceMatrix allocates an n×n matrix with zero diagonal and every
// other entry set to Unreachable.
func NewDistanceMatrix(n int) DistanceMatrix {
	m := make(DistanceMatrix, n)
	for i := range m {
		m[i] = make([]int, n)
		for j := range m[i] {
			if i != j {
				m[i][j] = Unreachable
			}
		}
	}
	return m
}

func (m DistanceMatrix) Size() int { return len(m) }

func (m DistanceMatrix) At(i, j int) int { return m[i][j] }

// Reachable reports whether a path exists between i and j.
func (m DistanceMatrix) Reachable(i, j int) bool { return m[i][j] != Unreachable }

// IsSymmetric reports whether m[i][j] == m[j][i] for every pair and the
// diagonal is zero.
func (m DistanceMatrix) IsSymmetric() bool {
	for i := range m {
		if len(m[i]) != len(m) || m[i][i] != 0 {
			return false
		}
		for j := i + 1; j < len(m); j++ {
			if m[i][j] != m[j][i] {
				return false
			}
		}
	}
	return true
}

// PathLength sums consecutive entries along tour. The path is open: there
// is no closing edge back to tour[0].
func (m DistanceMatrix) PathLength(tour []int) int {
	total := 0
	for i := 0; i+1 < len(tour); i++ {
		total += m[tour[i]][tour[i+1]]
	}
	return total
}
