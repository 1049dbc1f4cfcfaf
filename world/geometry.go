package world

import (
	"math"

	"dynamic-pathfinder/pathfinder"
)

// Polygon is an obstacle outline as received over the wire. The vertices
// need not be convex or ordered; obstacles are built from their hull.
type Polygon struct {
	ID       string             `json:"id,omitempty"`
	Vertices []pathfinder.Point `json:"vertices"`
}

// clipConvex clips segment a-b against the convex polygon poly, whose
// vertices run counter-clockwise. It returns the parameters along a-b where
// the segment enters and leaves the polygon. Touching the boundary counts as
// crossing it.
func clipConvex(a, b pathfinder.Point, poly []pathfinder.Point) (tIn, tOut float64, ok bool) {
	tIn, tOut = 0, 1
	dir := b.Sub(a)
	n := len(poly)

	for i := 0; i < n; i++ {
		v1 := poly[i]
		v2 := poly[(i+1)%n]

		// Outward normal of a counter-clockwise edge
		nx := v2.Y - v1.Y
		ny := -(v2.X - v1.X)

		num := nx*(a.X-v1.X) + ny*(a.Y-v1.Y)
		den := nx*dir.X + ny*dir.Y

		if den == 0 {
			if num > 0 {
				return 0, 0, false
			}
			continue
		}

		t := -num / den
		if den < 0 {
			tIn = math.Max(tIn, t)
		} else {
			tOut = math.Min(tOut, t)
		}
		if tIn > tOut {
			return 0, 0, false
		}
	}

	return tIn, tOut, true
}

// crossProduct calculates the cross product of vectors (b-a) and (c-a)
func crossProduct(a, b, c pathfinder.Point) float64 {
	return (b.X-a.X)*(c.Y-a.Y) - (b.Y-a.Y)*(c.X-a.X)
}

// segmentBound returns the axis-aligned box of a-b grown by pad.
func segmentBound(a, b pathfinder.Point, pad float64) (minX, minY, maxX, maxY float64) {
	minX = math.Min(a.X, b.X) - pad
	maxX = math.Max(a.X, b.X) + pad
	minY = math.Min(a.Y, b.Y) - pad
	maxY = math.Max(a.Y, b.Y) + pad
	return
}
