package pathfinder

import "math"

// Path is an ordered list of points from a start point to an end point.
type Path []Point

// Length returns the summed length of every segment.
func (p Path) Length() float64 {
	var total float64
	for i := 0; i < len(p)-1; i++ {
		total += p[i].Distance(p[i+1])
	}
	return total
}

func (p Path) clone() Path {
	if p == nil {
		return nil
	}
	out := make(Path, len(p))
	copy(out, p)
	return out
}

// Clear reports whether every segment of path is free of obstacles in w.
func Clear[O comparable](w World[O], path Path) bool {
	for i := 0; i < len(path)-1; i++ {
		if len(w.RaycastAll(path[i], path[i+1])) > 0 {
			return false
		}
	}
	return true
}

// Simplify removes waypoints whose neighbours can see each other. It works
// like Douglas-Peucker, except that a chord replaces the points under it only
// when the chord is clear in w rather than when the points are within some
// tolerance. A clear input path yields a clear output path with the same
// endpoints.
func Simplify[O comparable](w World[O], path Path) Path {
	if len(path) <= 2 {
		return path.clone()
	}
	return shortcut(w, path)
}

func shortcut[O comparable](w World[O], points Path) Path {
	if len(points) <= 2 {
		return points.clone()
	}

	end := len(points) - 1
	if len(w.RaycastAll(points[0], points[end])) == 0 {
		return Path{points[0], points[end]}
	}

	// Split at the point farthest from the chord
	dmax := -1.0
	index := 1
	for i := 1; i < end; i++ {
		d := perpendicularDistance(points[i], points[0], points[end])
		if d > dmax {
			index = i
			dmax = d
		}
	}

	left := shortcut(w, points[:index+1])
	right := shortcut(w, points[index:])

	result := make(Path, 0, len(left)+len(right)-1)
	result = append(result, left[:len(left)-1]...)
	result = append(result, right...)
	return result
}

// perpendicularDistance calculates perpendicular distance from point to line
func perpendicularDistance(point, lineStart, lineEnd Point) float64 {
	dx := lineEnd.X - lineStart.X
	dy := lineEnd.Y - lineStart.Y

	mag := math.Sqrt(dx*dx + dy*dy)
	if mag == 0 {
		return point.Distance(lineStart)
	}
	dx /= mag
	dy /= mag

	pvx := point.X - lineStart.X
	pvy := point.Y - lineStart.Y
	pvdot := dx*pvx + dy*pvy

	ax := pvx - pvdot*dx
	ay := pvy - pvdot*dy
	return math.Sqrt(ax*ax + ay*ay)
}
