package world

import (
	"fmt"
	"log"
	"os"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"dynamic-pathfinder/pathfinder"
)

// FromPolygons builds a world from wire polygons. Every polygon is replaced
// by its convex hull; polygons inside another one are dropped.
func FromPolygons(polygons []Polygon) (*World, error) {
	obstacles := make([]*Obstacle, 0, len(polygons))
	for i, polygon := range polygons {
		id := polygon.ID
		if id == "" {
			id = fmt.Sprintf("polygon-%d", i)
		}
		o, err := NewObstacle(id, polygon.Vertices)
		if err != nil {
			return nil, err
		}
		obstacles = append(obstacles, o)
	}
	return New(RemoveContained(obstacles)...), nil
}

// LoadGeoJSONFile reads a GeoJSON feature collection from disk.
func LoadGeoJSONFile(filename string) (*World, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	w, err := LoadGeoJSON(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return w, nil
}

// LoadGeoJSON builds a world from the outer rings of every Polygon and
// MultiPolygon feature. Other geometries and degenerate rings are skipped
// with a warning. Obstacles take their ID from the feature id, then the "id"
// or "name" property.
func LoadGeoJSON(data []byte) (*World, error) {
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse feature collection: %w", err)
	}

	var obstacles []*Obstacle
	for i, feature := range fc.Features {
		id := featureID(feature, i)

		var rings []orb.Ring
		switch g := feature.Geometry.(type) {
		case orb.Polygon:
			// First ring is the outer boundary
			if len(g) > 0 {
				rings = append(rings, g[0])
			}
		case orb.MultiPolygon:
			for _, polygon := range g {
				if len(polygon) > 0 {
					rings = append(rings, polygon[0])
				}
			}
		default:
			log.Printf("⚠️  Skipping feature %s: unsupported geometry %T\n", id, feature.Geometry)
			continue
		}

		for j, ring := range rings {
			ringID := id
			if len(rings) > 1 {
				ringID = fmt.Sprintf("%s/%d", id, j)
			}

			vertices := make([]pathfinder.Point, 0, len(ring))
			for _, p := range ring {
				vertices = append(vertices, pathfinder.Point{X: p[0], Y: p[1]})
			}

			o, err := NewObstacle(ringID, vertices)
			if err != nil {
				log.Printf("⚠️  Skipping %v\n", err)
				continue
			}
			obstacles = append(obstacles, o)
		}
	}

	return New(RemoveContained(obstacles)...), nil
}

func featureID(f *geojson.Feature, index int) string {
	if f.ID != nil {
		return fmt.Sprint(f.ID)
	}
	for _, key := range []string{"id", "name"} {
		if v, ok := f.Properties[key].(string); ok && v != "" {
			return v
		}
	}
	return fmt.Sprintf("feature-%d", index)
}

// PathFeature returns path as a GeoJSON LineString feature carrying its
// length and waypoint count.
func PathFeature(path pathfinder.Path) *geojson.Feature {
	line := make(orb.LineString, 0, len(path))
	for _, p := range path {
		line = append(line, orb.Point{p.X, p.Y})
	}

	f := geojson.NewFeature(line)
	f.Properties["length"] = path.Length()
	f.Properties["waypoints"] = len(path)
	return f
}

// FeatureCollection exports the obstacles of w as GeoJSON polygons.
func (w *World) FeatureCollection() *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, o := range w.obstacles {
		ring := append(orb.Ring(nil), o.ring...)
		f := geojson.NewFeature(orb.Polygon{ring})
		f.Properties["id"] = o.id
		fc.Append(f)
	}
	return fc
}
