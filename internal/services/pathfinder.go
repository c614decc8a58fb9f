package services

import (
	"container/heap"

	"venue-route-service/internal/domain"
)

// FindPath returns the shortest 4-connected walk from `from` to `to`,
// endpoints included.
//
// A cell is traversable when it is walkable terrain or is one of the two
// endpoints, so a stall can be the start or the goal without being passable
// in the middle of a route. The search is A* with the Manhattan distance as
// heuristic, which never overestimates under unit-cost orthogonal moves.
//
// Returns nil when no path exists or when an endpoint is out of bounds or an
// obstacle. from == to yields a single-cell path.
//
// Expansion order is fixed (lowest f, then lowest h, then first pushed;
// neighbors N, E, S, W), so identical inputs always produce identical paths.
func FindPath(grid *domain.Grid, from, to domain.Position) []domain.Position {
	if !endpointOK(grid, from) || !endpointOK(grid, to) {
		return nil
	}
	if from == to {
		return []domain.Position{from}
	}

	n := grid.Size()
	g := make([]int, n)
	parent := make([]int, n)
	closed := make([]bool, n)
	for i := range g {
		g[i] = -1
		parent[i] = -1
	}

	open := &frontier{}
	seq := 0
	push := func(p domain.Position, cost int) {
		h := domain.Manhattan(p, to)
		heap.Push(open, node{pos: p, g: cost, f: cost + h, h: h, seq: seq})
		seq++
	}

	start := grid.Index(from)
	g[start] = 0
	push(from, 0)

	goal := grid.Index(to)
	for open.Len() > 0 {
		cur := heap.Pop(open).(node)
		ci := grid.Index(cur.pos)
		if closed[ci] {
			continue
		}
		// Stale entry from a lazy decrease-key.
		if cur.g != g[ci] {
			continue
		}
		closed[ci] = true
		if ci == goal {
			return reconstruct(grid, parent, goal)
		}

		for _, nb := range cur.pos.Neighbors() {
			if !grid.InBounds(nb) {
				continue
			}
			ni := grid.Index(nb)
			if closed[ni] {
				continue
			}
			if nb != to && !grid.Classify(nb).Walkable() {
				continue
			}
			cost := cur.g + 1
			if g[ni] >= 0 && cost >= g[ni] {
				continue
			}
			g[ni] = cost
			parent[ni] = ci
			push(nb, cost)
		}
	}

	return nil
}

func endpointOK(grid *domain.Grid, p domain.Position) bool {
	return grid.Classify(p).IsEndpoint()
}

func reconstruct(grid *domain.Grid, parent []int, goal int) []domain.Position {
	var path []domain.Position
	for at := goal; at >= 0; at = parent[at] {
		path = append(path, position(grid, at))
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

func position(grid *domain.Grid, idx int) domain.Position {
	return domain.Position{X: idx % grid.Cols(), Y: idx / grid.Cols()}
}

type node struct {
	pos domain.Position
	g   int
	f   int
	h   int
	seq int
}

// frontier is a min-heap of open nodes ordered by (f, h, seq).
type frontier []node

func (q frontier) Len() int { return len(q) }

func (q frontier) Less(i, j int) bool {
	if q[i].f != q[j].f {
		return q[i].f < q[j].f
	}
	if q[i].h != q[j].h {
		return q[i].h < q[j].h
	}
	return q[i].seq < q[j].seq
}

func (q frontier) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *frontier) Push(x any) { *q = append(*q, x.(node)) }

func (q *frontier) Pop() any {
	old := *q
	n := len(old)
	item := old[n-1]
	*q = old[:n-1]
	return item
}
