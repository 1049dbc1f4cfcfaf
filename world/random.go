package world

import (
	"fmt"
	"math/rand"

	"github.com/paulmach/orb"

	"dynamic-pathfinder/pathfinder"
)

// RandomRectangles scatters n axis-aligned rectangles with their lower-left
// corner inside bound and sides up to maxSize. Rectangles containing any of
// the keepClear points are redrawn; after 20n attempts fewer than n may be
// returned.
func RandomRectangles(rng *rand.Rand, n int, bound orb.Bound, maxSize float64, keepClear ...pathfinder.Point) *World {
	if n <= 0 {
		return New()
	}

	obstacles := make([]*Obstacle, 0, n)
	attempts := 0
	maxAttempts := n * 20

	for len(obstacles) < n && attempts < maxAttempts {
		attempts++

		x := bound.Min[0] + rng.Float64()*(bound.Max[0]-bound.Min[0])
		y := bound.Min[1] + rng.Float64()*(bound.Max[1]-bound.Min[1])
		width := rng.Float64() * maxSize
		height := rng.Float64() * maxSize

		candidate := Rect(fmt.Sprintf("rect-%d", len(obstacles)), x, y, x+width, y+height)

		blocked := false
		for _, p := range keepClear {
			if candidate.Contains(p) {
				blocked = true
				break
			}
		}
		if blocked {
			continue
		}

		obstacles = append(obstacles, candidate)
	}

	return New(obstacles...)
}
