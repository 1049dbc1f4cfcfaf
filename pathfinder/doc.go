// Package pathfinder finds collision-free polylines through a 2D world of
// convex obstacles without building a navigation mesh or grid first.
//
// The search starts from the straight segment between the two endpoints and
// bends it around the nearest obstacle it crosses, once clockwise and once
// counter-clockwise. Each bend is found by rotating the next waypoint about
// the current one until it clears the obstacle, sliding it back toward the
// obstacle to keep the detour tight, and then pushing it out of any geometry
// it landed in. Candidates are queued breadth first until one is clear from
// start to end.
//
// Because nothing is precomputed, a search can be rerun every frame against
// a world whose obstacles have moved, as long as the world stays still for
// the duration of one search. Step spreads a search over several frames.
package pathfinder
