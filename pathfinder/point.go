package pathfinder

import (
	"fmt"
	"math"
)

// Point is a location in world units.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Pt returns the point (x, y).
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

func (p Point) String() string {
	return fmt.Sprintf("(%g, %g)", p.X, p.Y)
}

func (p Point) Add(o Point) Point {
	return Point{X: p.X + o.X, Y: p.Y + o.Y}
}

// Sub computes p−o.
func (p Point) Sub(o Point) Point {
	return Point{X: p.X - o.X, Y: p.Y - o.Y}
}

func (p Point) Scale(s float64) Point {
	return Point{X: p.X * s, Y: p.Y * s}
}

// Rotate rotates p by theta radians around pivot. Positive theta is
// counter-clockwise in a y-up frame.
func (p Point) Rotate(theta float64, pivot Point) Point {
	sin, cos := math.Sincos(theta)
	dx := p.X - pivot.X
	dy := p.Y - pivot.Y
	return Point{
		X: dx*cos - dy*sin + pivot.X,
		Y: dx*sin + dy*cos + pivot.Y,
	}
}

// Distance calculates Euclidean distance between two points
func (p Point) Distance(o Point) float64 {
	return math.Hypot(p.X-o.X, p.Y-o.Y)
}
