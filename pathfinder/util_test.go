package pathfinder

import (
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func diff(t *testing.T, want, got any, opts ...cmp.Option) {
	t.Helper()
	if d := cmp.Diff(want, got, opts...); d != "" {
		t.Error(d)
	}
}

var approx = cmpopts.EquateApprox(0, 1e-9)

// rect is an axis-aligned box; boundaries count as inside.
type rect struct {
	minX, minY, maxX, maxY float64
}

// clip returns where a-b first touches r (Liang-Barsky).
func (r rect) clip(a, b Point) (float64, bool) {
	dx, dy := b.X-a.X, b.Y-a.Y
	p := [4]float64{-dx, dx, -dy, dy}
	q := [4]float64{a.X - r.minX, r.maxX - a.X, a.Y - r.minY, r.maxY - a.Y}

	t0, t1 := 0.0, 1.0
	for i := range p {
		if p[i] == 0 {
			if q[i] < 0 {
				return 0, false
			}
			continue
		}
		t := q[i] / p[i]
		if p[i] < 0 {
			if t > t1 {
				return 0, false
			}
			if t > t0 {
				t0 = t
			}
		} else {
			if t < t0 {
				return 0, false
			}
			if t < t1 {
				t1 = t
			}
		}
	}
	return t0, true
}

func (r rect) contains(p Point) bool {
	return p.X >= r.minX && p.X <= r.maxX && p.Y >= r.minY && p.Y <= r.maxY
}

// rectWorld identifies obstacles by their index and counts queries.
type rectWorld struct {
	rects   []rect
	queries *int
}

func newRectWorld(rects ...rect) rectWorld {
	return rectWorld{rects: rects, queries: new(int)}
}

func (w rectWorld) RaycastAll(a, b Point) []int {
	*w.queries++
	type hit struct {
		i int
		t float64
	}
	var hits []hit
	for i, r := range w.rects {
		if t, ok := r.clip(a, b); ok {
			hits = append(hits, hit{i, t})
		}
	}
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].t < hits[j].t })

	var out []int
	for _, h := range hits {
		out = append(out, h.i)
	}
	return out
}

func (w rectWorld) RaycastHits(a, b Point, o int) bool {
	*w.queries++
	_, ok := w.rects[o].clip(a, b)
	return ok
}

func (w rectWorld) ContainsPoint(p Point) bool {
	*w.queries++
	for _, r := range w.rects {
		if r.contains(p) {
			return true
		}
	}
	return false
}

// singleObstacle is the rectangle x∈[4.5,5.5], y∈[−0.5,0.5] between (0,0)
// and (10,0).
func singleObstacle() rectWorld {
	return newRectWorld(rect{4.5, -0.5, 5.5, 0.5})
}

func mustSearch(t *testing.T, w World[int], start, end Point, cfg Config) *Search[int] {
	t.Helper()
	s, err := NewSearch(w, start, end, cfg)
	if err != nil {
		t.Fatal(err)
	}
	return s
}
