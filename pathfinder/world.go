package pathfinder

// World answers the geometric queries the search needs. Implementations wrap
// a physics world or any other store of convex obstacles. The world must not
// change while a search is running: segments already behind a branch's
// cursor are never examined again.
//
// O identifies an obstacle; values must stay equal across every query of one
// search.
type World[O comparable] interface {
	// RaycastAll returns the obstacles crossed by segment a-b ordered by
	// increasing distance from a. Implementations document their tie-break.
	RaycastAll(a, b Point) []O

	// RaycastHits reports whether segment a-b crosses o. It must agree with
	// RaycastAll for the same segment.
	RaycastHits(a, b Point, o O) bool

	// ContainsPoint reports whether any obstacle contains p.
	ContainsPoint(p Point) bool
}
