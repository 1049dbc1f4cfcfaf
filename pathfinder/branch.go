package pathfinder

import "maps"

// outcome is what processing a branch once decided about it.
type outcome uint8

const (
	// outcomeAdvanced: the current segment was clear and the cursor moved on
	outcomeAdvanced outcome = iota
	// outcomeResolved: every segment is clear
	outcomeResolved
	// outcomeAbandoned: visit budget spent, endpoint embedded, or no detour
	outcomeAbandoned
	// outcomeSplit: the branch was replaced by its detour children
	outcomeSplit
)

// branch is one candidate path under repair. Segments before cursor have
// been proven clear and are never examined again.
type branch[O comparable] struct {
	locations []Point
	cursor    int
	visits    map[O]int
}

func newBranch[O comparable](start, end Point) *branch[O] {
	return &branch[O]{
		locations: []Point{start, end},
		visits:    make(map[O]int),
	}
}

// visit counts a detour around o and reports whether the budget allows it.
func (b *branch[O]) visit(o O, maxVisits int) bool {
	if b.visits == nil {
		b.visits = make(map[O]int)
	}
	b.visits[o]++
	return b.visits[o] <= maxVisits
}

// advance examines the segment under the cursor. On outcomeSplit the
// returned children replace b in the frontier; they may number fewer than
// two when a candidate could not be placed outside every obstacle.
func (b *branch[O]) advance(w World[O], cfg Config) (outcome, []*branch[O]) {
	current := b.locations[b.cursor]
	next := b.locations[b.cursor+1]

	var hit O
	blocked := false
	if current != next {
		if bodies := w.RaycastAll(current, next); len(bodies) > 0 {
			hit = bodies[0]
			blocked = true
		}
	}

	if !blocked {
		if b.cursor+1 == len(b.locations)-1 {
			return outcomeResolved, nil
		}
		b.cursor++
		return outcomeAdvanced, nil
	}

	if !b.visit(hit, cfg.MaxVisits) {
		return outcomeAbandoned, nil
	}

	// Detouring around a point that is itself inside geometry is ill-defined
	if w.ContainsPoint(current) || w.ContainsPoint(next) {
		return outcomeAbandoned, nil
	}

	children := make([]*branch[O], 0, 2)
	for _, dir := range [2]float64{-1, 1} {
		cand, ok := detour(w, hit, current, next, dir*cfg.AngularGrain, cfg.MovementGrain)
		if !ok {
			continue
		}
		children = append(children, b.spawn(w, current, cand))
	}
	if len(children) == 0 {
		return outcomeAbandoned, nil
	}
	return outcomeSplit, children
}

// spawn copies b with cand inserted after the cursor. The child moves past
// current-cand only if that segment is clear of the whole world; otherwise
// it repeats detour construction from the same position.
func (b *branch[O]) spawn(w World[O], current, cand Point) *branch[O] {
	locations := make([]Point, 0, len(b.locations)+1)
	locations = append(locations, b.locations[:b.cursor+1]...)
	locations = append(locations, cand)
	locations = append(locations, b.locations[b.cursor+1:]...)

	cursor := b.cursor
	if len(w.RaycastAll(current, cand)) == 0 {
		cursor++
	}

	return &branch[O]{
		locations: locations,
		cursor:    cursor,
		visits:    maps.Clone(b.visits),
	}
}
