package pathfinder

import "math"

// slideOutReach bounds how far slideOut may push a candidate, in multiples of
// its starting distance from the current point.
const slideOutReach = 64

// detour builds one detour vertex around o for the blocked segment
// current-next. theta is the signed rotation increment: negative turns
// clockwise, positive counter-clockwise. It reports false when no vertex
// outside every obstacle could be placed.
func detour[O comparable](w World[O], o O, current, next Point, theta, grain float64) (Point, bool) {
	cand, _, ok := rotateClear(w, o, current, next, theta)
	if !ok {
		return Point{}, false
	}

	inc := current.Sub(cand).Scale(grain)
	cand = slideToContact(w, o, next, cand, inc, grain)
	return slideOut(w, cand, inc, grain)
}

// rotateClear rotates cand around current by theta until current-cand no
// longer crosses o. It returns the rotated point and the number of
// increments taken. A full turn without clearance means current is wrapped
// by o, and it reports false.
func rotateClear[O comparable](w World[O], o O, current, cand Point, theta float64) (Point, int, bool) {
	limit := int(math.Ceil(2*math.Pi/math.Abs(theta))) + 1

	steps := 0
	for w.RaycastHits(current, cand, o) {
		if steps == limit {
			return cand, steps, false
		}
		cand = cand.Rotate(theta, current)
		steps++
	}
	return cand, steps, true
}

// slideToContact moves cand toward current by inc while cand-next stays
// clear of o, then takes back the last increment. The result is the tightest
// sampled vertex whose segment to next still misses o.
func slideToContact[O comparable](w World[O], o O, next, cand, inc Point, grain float64) Point {
	// current-next crosses o, so contact comes before cand passes current;
	// the bound only guards against rounding at grazing angles
	limit := int(math.Ceil(2/grain)) + 1

	for i := 0; i < limit && !w.RaycastHits(cand, next, o); i++ {
		cand = cand.Add(inc)
	}
	return cand.Sub(inc)
}

// slideOut moves cand away from the current point, against inc, until no
// obstacle contains it.
func slideOut[O comparable](w World[O], cand, inc Point, grain float64) (Point, bool) {
	limit := int(math.Ceil(slideOutReach / grain))

	for i := 0; w.ContainsPoint(cand); i++ {
		if i == limit {
			return cand, false
		}
		cand = cand.Sub(inc)
	}
	return cand, true
}
