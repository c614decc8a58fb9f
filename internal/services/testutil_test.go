package services

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"venue-route-service/internal/domain"
)

func mustGrid(t *testing.T, lines ...string) *domain.Grid {
	t.Helper()
	g, err := domain.ParseGrid(lines)
	require.NoError(t, err)
	return g
}

func pos(x, y int) domain.Position { return domain.Position{X: x, Y: y} }

// randomGrid fills a rows×cols grid with roughly 25% obstacles and 10%
// occupiable cells. The generator is seeded so failures reproduce.
func randomGrid(t *testing.T, rng *rand.Rand, rows, cols int) *domain.Grid {
	t.Helper()
	cells := make([][]domain.CellType, rows)
	for y := range cells {
		cells[y] = make([]domain.CellType, cols)
		for x := range cells[y] {
			switch r := rng.Intn(100); {
			case r < 25:
				cells[y][x] = domain.CellObstacle
			case r < 35:
				cells[y][x] = domain.CellOccupiable
			default:
				cells[y][x] = domain.CellPath
			}
		}
	}
	g, err := domain.NewGrid(cells)
	require.NoError(t, err)
	return g
}

// bfsDistance is a plain breadth-first reference for FindPath, using the
// same traversal rule. Returns -1 when unreachable.
func bfsDistance(g *domain.Grid, from, to domain.Position) int {
	if from == to {
		return 0
	}
	dist := map[domain.Position]int{from: 0}
	queue := []domain.Position{from}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, nb := range cur.Neighbors() {
			if !g.InBounds(nb) {
				continue
			}
			if _, ok := dist[nb]; ok {
				continue
			}
			if nb != to && !g.Classify(nb).Walkable() {
				continue
			}
			dist[nb] = dist[cur] + 1
			if nb == to {
				return dist[nb]
			}
			queue = append(queue, nb)
		}
	}
	return -1
}

func requireContiguous(t *testing.T, steps []domain.Position) {
	t.Helper()
	for i := 1; i < len(steps); i++ {
		require.Truef(t, domain.Adjacent(steps[i-1], steps[i]),
			"steps %d and %d are not adjacent: %v -> %v", i-1, i, steps[i-1], steps[i])
	}
}

// symmetricMatrix builds a matrix from the upper triangle given row by row.
func symmetricMatrix(n int, upper ...int) domain.DistanceMatrix {
	m := domain.NewDistanceMatrix(n)
	k := 0
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			m[i][j] = upper[k]
			m[j][i] = upper[k]
			k++
		}
	}
	return m
}
