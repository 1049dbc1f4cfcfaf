package world

import (
	"math"
	"sort"

	"github.com/paulmach/orb"

	"dynamic-pathfinder/pathfinder"
)

// ConvexHull computes the convex hull using the Graham scan algorithm. The
// hull runs counter-clockwise from its lowest point and carries no collinear
// or repeated vertices. The input is left untouched.
func ConvexHull(points []pathfinder.Point) []pathfinder.Point {
	if len(points) < 3 {
		return append([]pathfinder.Point(nil), points...)
	}

	// Find the point with lowest Y (and lowest X if tied)
	start := 0
	for i := 1; i < len(points); i++ {
		if points[i].Y < points[start].Y ||
			(points[i].Y == points[start].Y && points[i].X < points[start].X) {
			start = i
		}
	}
	pivot := points[start]

	sorted := make([]pathfinder.Point, 0, len(points)-1)
	for i, p := range points {
		if i != start {
			sorted = append(sorted, p)
		}
	}

	// Sort by polar angle around the pivot, nearer first on ties
	sort.Slice(sorted, func(i, j int) bool {
		ai, aj := polarAngle(pivot, sorted[i]), polarAngle(pivot, sorted[j])
		if ai != aj {
			return ai < aj
		}
		return pivot.Distance(sorted[i]) < pivot.Distance(sorted[j])
	})

	hull := []pathfinder.Point{pivot}
	for _, p := range sorted {
		// Remove points that create a right turn or sit on a line
		for len(hull) > 1 && crossProduct(hull[len(hull)-2], hull[len(hull)-1], p) <= 0 {
			hull = hull[:len(hull)-1]
		}
		if len(hull) == 1 && p == pivot {
			continue
		}
		hull = append(hull, p)
	}

	return hull
}

// polarAngle calculates the polar angle from pivot to point
func polarAngle(pivot, point pathfinder.Point) float64 {
	return math.Atan2(point.Y-pivot.Y, point.X-pivot.X)
}

// RemoveContained drops obstacles that lie entirely inside another one. They
// can never be the first obstacle a segment crosses, so they only cost
// queries. Of two identical obstacles the later one is kept.
func RemoveContained(obstacles []*Obstacle) []*Obstacle {
	if len(obstacles) <= 1 {
		return obstacles
	}

	result := make([]*Obstacle, 0, len(obstacles))
	contained := make([]bool, len(obstacles))

	for i := 0; i < len(obstacles); i++ {
		if contained[i] {
			continue
		}

		for j := 0; j < len(obstacles); j++ {
			if i == j || contained[j] {
				continue
			}

			if isContainedIn(obstacles[i], obstacles[j]) {
				contained[i] = true
				break
			}

			if isContainedIn(obstacles[j], obstacles[i]) {
				contained[j] = true
			}
		}
	}

	for i, o := range obstacles {
		if !contained[i] {
			result = append(result, o)
		}
	}

	return result
}

// isContainedIn checks if obstacle a is fully contained within obstacle b
func isContainedIn(a, b *Obstacle) bool {
	// Quick bounding box check first
	if !isBoundContained(a.bound, b.bound) {
		return false
	}

	// b is convex, so holding every vertex of a means holding all of a
	for _, v := range a.vertices {
		if !b.Contains(v) {
			return false
		}
	}
	return true
}

func isBoundContained(a, b orb.Bound) bool {
	return b.Contains(a.Min) && b.Contains(a.Max)
}
