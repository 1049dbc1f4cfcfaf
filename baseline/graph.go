// Package baseline plans with a visibility graph and A*. It is the reference
// the bending search is measured against: exhaustive and close to shortest
// for the inflation margin used, but it pays for line of sight between
// obstacle corners that the bending search never looks at.
package baseline

import (
	"context"

	"dynamic-pathfinder/pathfinder"
)

// checkEvery is how many line-of-sight tests run between context checks.
const checkEvery = 64

// Graph is a visibility graph whose edges are discovered on demand. The
// nodes are fixed when the graph is built; whether two of them see each
// other is only tested when A* expands one of them, and each pair is tested
// at most once.
type Graph struct {
	Nodes []pathfinder.Point

	visible func(a, b pathfinder.Point) bool
	sight   map[[2]int]bool
	edges   map[int][]Edge
	tests   int
}

// Edge represents a connection between two nodes with a cost
type Edge struct {
	To   int     // Index of the destination node
	Cost float64 // Euclidean distance
}

func newGraph(nodes []pathfinder.Point, visible func(a, b pathfinder.Point) bool) *Graph {
	return &Graph{
		Nodes:   nodes,
		visible: visible,
		sight:   make(map[[2]int]bool),
		edges:   make(map[int][]Edge),
	}
}

// Neighbors returns the nodes node i can see. The first call for i tests
// line of sight to every other node, checking ctx as it goes; a canceled
// expansion is not cached.
func (g *Graph) Neighbors(ctx context.Context, i int) ([]Edge, error) {
	if edges, ok := g.edges[i]; ok {
		return edges, nil
	}

	edges := []Edge{}
	for j := range g.Nodes {
		if j%checkEvery == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		if j == i {
			continue
		}

		pair := [2]int{min(i, j), max(i, j)}
		sees, known := g.sight[pair]
		if !known {
			sees = g.visible(g.Nodes[i], g.Nodes[j])
			g.sight[pair] = sees
			g.tests++
		}
		if sees {
			edges = append(edges, Edge{To: j, Cost: g.Nodes[i].Distance(g.Nodes[j])})
		}
	}

	g.edges[i] = edges
	return edges, nil
}

// Tests returns the number of line-of-sight tests run so far.
func (g *Graph) Tests() int { return g.tests }

// Expanded returns the number of nodes whose neighbours are known.
func (g *Graph) Expanded() int { return len(g.edges) }
