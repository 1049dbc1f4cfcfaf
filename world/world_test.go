package world

import (
	"testing"

	"dynamic-pathfinder/pathfinder"
)

func TestRaycastAll(t *testing.T) {
	a := Rect("a", 2, -1, 3, 1)
	b := Rect("b", 2, -2, 4, 2)
	c := Rect("c", 6, -1, 7, 1)
	far := Rect("far", 50, 50, 51, 51)
	w := New(c, b, a, far)

	// a and b are entered at the same point; b was added first
	diff(t, []string{"b", "a", "c"}, ids(w.RaycastAll(pathfinder.Pt(0, 0), pathfinder.Pt(10, 0))))
	diff(t, []string{"c", "b", "a"}, ids(w.RaycastAll(pathfinder.Pt(10, 0), pathfinder.Pt(0, 0))))

	if hits := w.RaycastAll(pathfinder.Pt(0, 5), pathfinder.Pt(10, 5)); hits != nil {
		t.Errorf("got %v, want no hits", ids(hits))
	}

	// Grazing the top edge of c counts
	diff(t, []string{"c"}, ids(w.RaycastAll(pathfinder.Pt(5, 1), pathfinder.Pt(8, 1))))
}

func TestRaycastHitsAgreesWithRaycastAll(t *testing.T) {
	w := New(
		Rect("a", 2, -1, 3, 1),
		Rect("b", 5, 0, 6, 4),
		Rect("c", 1, 3, 2, 5),
	)
	segments := [][2]pathfinder.Point{
		{pathfinder.Pt(0, 0), pathfinder.Pt(10, 0)},
		{pathfinder.Pt(0, 4), pathfinder.Pt(10, 4)},
		{pathfinder.Pt(1.5, -5), pathfinder.Pt(1.5, 10)},
		{pathfinder.Pt(-1, -1), pathfinder.Pt(-2, -2)},
	}
	for _, s := range segments {
		all := map[*Obstacle]bool{}
		for _, o := range w.RaycastAll(s[0], s[1]) {
			all[o] = true
		}
		for _, o := range w.Obstacles() {
			if got := w.RaycastHits(s[0], s[1], o); got != all[o] {
				t.Errorf("%v-%v against %s: RaycastHits %v, RaycastAll %v", s[0], s[1], o.ID(), got, all[o])
			}
		}
	}
	if w.RaycastHits(pathfinder.Pt(0, 0), pathfinder.Pt(10, 0), nil) {
		t.Error("nil obstacle reported a hit")
	}
}

func TestContainsPoint(t *testing.T) {
	w := New(Rect("a", 0, 0, 2, 2))
	for p, want := range map[pathfinder.Point]bool{
		pathfinder.Pt(1, 1):  true,
		pathfinder.Pt(2, 1):  true,
		pathfinder.Pt(0, 0):  true,
		pathfinder.Pt(3, 1):  false,
		pathfinder.Pt(-1, 1): false,
	} {
		if got := w.ContainsPoint(p); got != want {
			t.Errorf("%v: got %v, want %v", p, got, want)
		}
	}
	if New().ContainsPoint(pathfinder.Pt(0, 0)) {
		t.Error("empty world contains a point")
	}
}

func TestNewSkipsNilAndDuplicates(t *testing.T) {
	a := Rect("a", 0, 0, 1, 1)
	w := New(a, nil, a, Rect("b", 2, 2, 3, 3))
	diff(t, []string{"a", "b"}, ids(w.Obstacles()))
	if w.Len() != 2 {
		t.Errorf("got %d obstacles, want 2", w.Len())
	}
}

func TestSpatialIndexTouching(t *testing.T) {
	a := Rect("a", 0, 0, 1, 1)
	si := NewSpatialIndex([]*Obstacle{a, Rect("b", 5, 5, 6, 6)})

	diff(t, []string{"a"}, ids(si.QueryRegion(1, 0, 2, 1)))
	diff(t, []string{"a"}, ids(si.QueryPoint(pathfinder.Pt(1, 0.5))))
	if got := si.QuerySegment(pathfinder.Pt(2, 0), pathfinder.Pt(4, 4)); len(got) != 0 {
		t.Errorf("got %v, want nothing", ids(got))
	}
	if got := NewSpatialIndex(nil).QueryPoint(pathfinder.Pt(0, 0)); got != nil {
		t.Errorf("empty index returned %v", ids(got))
	}
}

// A flat obstacle still needs a usable index rectangle
func TestSpatialIndexThinObstacle(t *testing.T) {
	o, err := NewObstacle("sliver", pts(0, 0, 10, 0, 5, 1e-12))
	if err != nil {
		t.Fatal(err)
	}
	w := New(o)
	diff(t, []string{"sliver"}, ids(w.RaycastAll(pathfinder.Pt(5, -1), pathfinder.Pt(5, 1))))
}
