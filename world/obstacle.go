package world

import (
	"errors"
	"fmt"
	"math"

	"github.com/dhconnelly/rtreego"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"

	"dynamic-pathfinder/pathfinder"
)

// minExtent keeps index rectangles of flat obstacles non-degenerate
const minExtent = 1e-9

// ErrDegenerate is returned for vertex sets whose hull has no area.
var ErrDegenerate = errors.New("world: obstacle needs three points that are not collinear")

// Obstacle is a convex body. Worlds hand out *Obstacle as the obstacle
// handle, so identity is the pointer.
type Obstacle struct {
	id       string
	vertices []pathfinder.Point // counter-clockwise hull
	ring     orb.Ring           // closed copy of vertices
	bound    orb.Bound
	rect     rtreego.Rect
}

// NewObstacle builds an obstacle from the convex hull of vertices.
func NewObstacle(id string, vertices []pathfinder.Point) (*Obstacle, error) {
	hull := ConvexHull(vertices)
	if len(hull) < 3 {
		return nil, fmt.Errorf("obstacle %q: %w", id, ErrDegenerate)
	}
	return newObstacle(id, hull), nil
}

// Rect returns an axis-aligned rectangle obstacle. The corners may be given
// in any order.
func Rect(id string, x1, y1, x2, y2 float64) *Obstacle {
	minX, maxX := math.Min(x1, x2), math.Max(x1, x2)
	minY, maxY := math.Min(y1, y2), math.Max(y1, y2)
	return newObstacle(id, []pathfinder.Point{
		{X: minX, Y: minY},
		{X: maxX, Y: minY},
		{X: maxX, Y: maxY},
		{X: minX, Y: maxY},
	})
}

func newObstacle(id string, hull []pathfinder.Point) *Obstacle {
	ring := make(orb.Ring, 0, len(hull)+1)
	for _, v := range hull {
		ring = append(ring, orb.Point{v.X, v.Y})
	}
	ring = append(ring, ring[0])

	bound := ring.Bound()
	rect, err := rtreego.NewRect(
		rtreego.Point{bound.Min[0], bound.Min[1]},
		[]float64{
			math.Max(bound.Max[0]-bound.Min[0], minExtent),
			math.Max(bound.Max[1]-bound.Min[1], minExtent),
		},
	)
	if err != nil {
		// Only reachable with NaN coordinates
		panic(fmt.Sprintf("obstacle %q: %v", id, err))
	}

	return &Obstacle{
		id:       id,
		vertices: hull,
		ring:     ring,
		bound:    bound,
		rect:     rect,
	}
}

func (o *Obstacle) ID() string { return o.id }

// Vertices returns the hull counter-clockwise.
func (o *Obstacle) Vertices() []pathfinder.Point {
	return append([]pathfinder.Point(nil), o.vertices...)
}

func (o *Obstacle) Bound() orb.Bound { return o.bound }

// Bounds implements rtreego.Spatial interface
func (o *Obstacle) Bounds() rtreego.Rect {
	return o.rect
}

// Contains reports whether p is inside o or on its boundary.
func (o *Obstacle) Contains(p pathfinder.Point) bool {
	return planar.RingContains(o.ring, orb.Point{p.X, p.Y})
}

// Clip returns the parameters along a-b where the segment enters and leaves
// o, or false if it misses.
func (o *Obstacle) Clip(a, b pathfinder.Point) (tIn, tOut float64, ok bool) {
	return clipConvex(a, b, o.vertices)
}

// Centroid returns the vertex average, which lies inside a convex body.
func (o *Obstacle) Centroid() pathfinder.Point {
	var c pathfinder.Point
	for _, v := range o.vertices {
		c = c.Add(v)
	}
	return c.Scale(1 / float64(len(o.vertices)))
}

func (o *Obstacle) String() string {
	return fmt.Sprintf("obstacle %q (%d vertices)", o.id, len(o.vertices))
}
