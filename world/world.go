// Package world is a read-only store of convex obstacles that answers the
// queries of pathfinder.World. Obstacles are indexed by bounding box in an
// R-tree and tested exactly by clipping segments against their hulls.
package world

import (
	"sort"

	"dynamic-pathfinder/pathfinder"
)

// World is an immutable snapshot of obstacles. It is safe for concurrent
// use; build a new World when obstacles move.
type World struct {
	obstacles []*Obstacle
	order     map[*Obstacle]int
	index     *SpatialIndex
}

var _ pathfinder.World[*Obstacle] = (*World)(nil)

// New creates a world holding obstacles. Nil entries are skipped.
func New(obstacles ...*Obstacle) *World {
	w := &World{
		obstacles: make([]*Obstacle, 0, len(obstacles)),
		order:     make(map[*Obstacle]int, len(obstacles)),
	}
	for _, o := range obstacles {
		if o == nil {
			continue
		}
		if _, dup := w.order[o]; dup {
			continue
		}
		w.order[o] = len(w.obstacles)
		w.obstacles = append(w.obstacles, o)
	}
	w.index = NewSpatialIndex(w.obstacles)
	return w
}

// Obstacles returns the obstacles in insertion order.
func (w *World) Obstacles() []*Obstacle {
	return append([]*Obstacle(nil), w.obstacles...)
}

func (w *World) Len() int { return len(w.obstacles) }

type rayHit struct {
	obstacle *Obstacle
	t        float64
}

// RaycastAll returns the obstacles crossed by a-b, nearest entry point
// first. Obstacles entered at the same distance keep insertion order.
func (w *World) RaycastAll(a, b pathfinder.Point) []*Obstacle {
	var hits []rayHit
	for _, o := range w.index.QuerySegment(a, b) {
		if tIn, _, ok := o.Clip(a, b); ok {
			hits = append(hits, rayHit{obstacle: o, t: tIn})
		}
	}
	if len(hits) == 0 {
		return nil
	}

	sort.Slice(hits, func(i, j int) bool {
		if hits[i].t != hits[j].t {
			return hits[i].t < hits[j].t
		}
		return w.order[hits[i].obstacle] < w.order[hits[j].obstacle]
	})

	obstacles := make([]*Obstacle, len(hits))
	for i, h := range hits {
		obstacles[i] = h.obstacle
	}
	return obstacles
}

// RaycastHits reports whether a-b crosses o.
func (w *World) RaycastHits(a, b pathfinder.Point, o *Obstacle) bool {
	if o == nil {
		return false
	}
	_, _, ok := o.Clip(a, b)
	return ok
}

// ContainsPoint reports whether any obstacle contains p.
func (w *World) ContainsPoint(p pathfinder.Point) bool {
	for _, o := range w.index.QueryPoint(p) {
		if o.Contains(p) {
			return true
		}
	}
	return false
}
