package baseline

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"

	"dynamic-pathfinder/pathfinder"
	"dynamic-pathfinder/world"
)

const (
	// StartNode and EndNode are the graph indices of the endpoints.
	StartNode = 0
	EndNode   = 1

	// MaxNodes bounds the pairs of nodes A* may have to test.
	MaxNodes = 2000

	// DefaultMargin pushes hull vertices off the boundary so that edges
	// between them do not graze the obstacle they belong to.
	DefaultMargin = 1e-3
)

var ErrTooManyNodes = errors.New("baseline: too many visibility graph nodes")

// BuildVisibilityGraph collects the nodes of a visibility graph: start,
// end, and the obstacle corners of w, each pushed margin away from its
// obstacle's centroid. Corners that end up inside another obstacle are left
// out. Edges are raycast against w when AStar first expands a node.
func BuildVisibilityGraph(start, end pathfinder.Point, w *world.World, margin float64) (*Graph, error) {
	nodes := []pathfinder.Point{start, end}

	seen := map[pathfinder.Point]bool{start: true, end: true}
	for _, o := range w.Obstacles() {
		c := o.Centroid()
		for _, v := range o.Vertices() {
			p := inflate(v, c, margin)
			if seen[p] || w.ContainsPoint(p) {
				continue
			}
			seen[p] = true
			nodes = append(nodes, p)
		}
	}

	if len(nodes) > MaxNodes {
		return nil, fmt.Errorf("%w: %d > %d", ErrTooManyNodes, len(nodes), MaxNodes)
	}

	log.Printf("   Visibility graph: %d nodes\n", len(nodes))
	return newGraph(nodes, func(a, b pathfinder.Point) bool {
		return len(w.RaycastAll(a, b)) == 0
	}), nil
}

// inflate moves v margin further from c.
func inflate(v, c pathfinder.Point, margin float64) pathfinder.Point {
	d := v.Sub(c)
	mag := math.Hypot(d.X, d.Y)
	if mag == 0 {
		return v
	}
	return v.Add(d.Scale(margin / mag))
}

// Plan finds a path from start to end through the visibility graph of w.
// A margin of zero uses DefaultMargin. ctx is checked between line-of-sight
// tests.
func Plan(ctx context.Context, start, end pathfinder.Point, w *world.World, margin float64) (pathfinder.Path, error) {
	if margin == 0 {
		margin = DefaultMargin
	}
	if w.ContainsPoint(start) || w.ContainsPoint(end) {
		return nil, pathfinder.ErrNotFound
	}

	graph, err := BuildVisibilityGraph(start, end, w, margin)
	if err != nil {
		return nil, err
	}

	path, err := AStar(ctx, graph, StartNode, EndNode)
	log.Printf("   Visibility search: %d/%d nodes expanded, %d sight tests\n",
		graph.Expanded(), len(graph.Nodes), graph.Tests())
	return path, err
}
