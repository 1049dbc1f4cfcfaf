package world

import (
	"github.com/dhconnelly/rtreego"

	"dynamic-pathfinder/pathfinder"
)

// queryPad widens query boxes so that rtreego, which treats touching
// rectangles as disjoint, still reports obstacles grazed by a query.
const queryPad = 1e-7

// SpatialIndex manages obstacle bounding box queries
type SpatialIndex struct {
	tree *rtreego.Rtree
	size int
}

// NewSpatialIndex creates a new spatial index
func NewSpatialIndex(obstacles []*Obstacle) *SpatialIndex {
	tree := rtreego.NewTree(2, 25, 50) // 2D, min 25, max 50 entries per node

	for _, o := range obstacles {
		tree.Insert(o)
	}

	return &SpatialIndex{tree: tree, size: len(obstacles)}
}

// QueryRegion returns obstacles whose bounding boxes meet the given box
func (si *SpatialIndex) QueryRegion(minX, minY, maxX, maxY float64) []*Obstacle {
	if si.size == 0 {
		return nil
	}

	bbox, err := rtreego.NewRect(
		rtreego.Point{minX - queryPad, minY - queryPad},
		[]float64{maxX - minX + 2*queryPad, maxY - minY + 2*queryPad},
	)
	if err != nil {
		return nil
	}

	results := si.tree.SearchIntersect(bbox)
	obstacles := make([]*Obstacle, 0, len(results))
	for _, item := range results {
		obstacles = append(obstacles, item.(*Obstacle))
	}

	return obstacles
}

// QuerySegment returns obstacles whose bounding boxes meet the box of a-b
func (si *SpatialIndex) QuerySegment(a, b pathfinder.Point) []*Obstacle {
	minX, minY, maxX, maxY := segmentBound(a, b, 0)
	return si.QueryRegion(minX, minY, maxX, maxY)
}

// QueryPoint returns obstacles whose bounding boxes contain p
func (si *SpatialIndex) QueryPoint(p pathfinder.Point) []*Obstacle {
	return si.QueryRegion(p.X, p.Y, p.X, p.Y)
}

func (si *SpatialIndex) Len() int { return si.size }
