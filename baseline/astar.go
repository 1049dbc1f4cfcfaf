package baseline

import (
	"container/heap"
	"context"
	"math"
	"slices"

	"dynamic-pathfinder/pathfinder"
)

// frontierItem is a node queued at priority f. A node may be queued again
// with a lower f; the stale entry is skipped when it surfaces.
type frontierItem struct {
	node int
	f    float64
}

type frontier []frontierItem

func (q frontier) Len() int           { return len(q) }
func (q frontier) Less(i, j int) bool { return q[i].f < q[j].f }
func (q frontier) Swap(i, j int)      { q[i], q[j] = q[j], q[i] }
func (q *frontier) Push(x any)        { *q = append(*q, x.(frontierItem)) }

func (q *frontier) Pop() any {
	old := *q
	item := old[len(old)-1]
	*q = old[:len(old)-1]
	return item
}

// AStar finds the shortest path between two nodes of g, expanding
// visibility only for the nodes it pops. The straight-line distance to the
// goal is the heuristic. It returns pathfinder.ErrNotFound when the goal is
// unreachable and ctx's error when ctx ends first.
func AStar(ctx context.Context, g *Graph, from, to int) (pathfinder.Path, error) {
	n := len(g.Nodes)
	if from < 0 || to < 0 || from >= n || to >= n {
		return nil, pathfinder.ErrNotFound
	}
	goal := g.Nodes[to]

	cost := make([]float64, n)
	parent := make([]int, n)
	for i := range cost {
		cost[i] = math.Inf(1)
		parent[i] = -1
	}
	done := make([]bool, n)

	cost[from] = 0
	open := &frontier{{node: from, f: g.Nodes[from].Distance(goal)}}

	for open.Len() > 0 {
		cur := heap.Pop(open).(frontierItem).node
		if done[cur] {
			continue
		}
		if cur == to {
			return g.trace(parent, to), nil
		}
		done[cur] = true

		edges, err := g.Neighbors(ctx, cur)
		if err != nil {
			return nil, err
		}
		for _, e := range edges {
			if done[e.To] {
				continue
			}
			if c := cost[cur] + e.Cost; c < cost[e.To] {
				cost[e.To] = c
				parent[e.To] = cur
				heap.Push(open, frontierItem{node: e.To, f: c + g.Nodes[e.To].Distance(goal)})
			}
		}
	}

	return nil, pathfinder.ErrNotFound
}

func (g *Graph) trace(parent []int, to int) pathfinder.Path {
	var path pathfinder.Path
	for i := to; i >= 0; i = parent[i] {
		path = append(path, g.Nodes[i])
	}
	slices.Reverse(path)
	return path
}
