package pathfinder

// Phase is where a resumable search currently stands.
type Phase uint8

const (
	// PhaseIdle: nothing queued; the next Step seeds a new search
	PhaseIdle Phase = iota
	// PhaseSearching: branches are queued
	PhaseSearching
	// PhaseResolved: a branch reached the end point; Step keeps returning it
	PhaseResolved
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseSearching:
		return "searching"
	case PhaseResolved:
		return "resolved"
	}
	return "unknown"
}

// Stats counts the work done by one search.
type Stats struct {
	Steps     int `json:"steps"`     // branches processed
	Spawned   int `json:"spawned"`   // detour children queued
	Abandoned int `json:"abandoned"` // branches dropped without children
	MaxQueue  int `json:"maxQueue"`  // largest frontier seen
}

// State is the frontier of a search that is spread over several Step calls.
// The zero value is idle. A State belongs to its caller: it is not safe for
// concurrent use, and one State should only be stepped by one Search.
type State[O comparable] struct {
	phase   Phase
	queue   []*branch[O]
	result  Path
	stats   Stats
	drained bool
}

// Reset discards the frontier and any result.
func (st *State[O]) Reset() {
	*st = State[O]{}
}

func (st *State[O]) Phase() Phase {
	return st.phase
}

// Pending returns the number of queued branches.
func (st *State[O]) Pending() int {
	return len(st.queue)
}

// Exhausted reports whether the last search drained its queue without a
// result. It is cleared when the next Step seeds a new search.
func (st *State[O]) Exhausted() bool {
	return st.drained
}

// Resolved returns the found path, if any.
func (st *State[O]) Resolved() (Path, bool) {
	if st.phase != PhaseResolved {
		return nil, false
	}
	return st.result.clone(), true
}

func (st *State[O]) Stats() Stats {
	return st.stats
}

func (st *State[O]) seed(start, end Point) {
	st.queue = append(st.queue[:0], newBranch[O](start, end))
	st.phase = PhaseSearching
	st.result = nil
	st.stats = Stats{MaxQueue: 1}
	st.drained = false
}

func (st *State[O]) push(b *branch[O]) {
	st.queue = append(st.queue, b)
	if len(st.queue) > st.stats.MaxQueue {
		st.stats.MaxQueue = len(st.queue)
	}
}

func (st *State[O]) pop() *branch[O] {
	b := st.queue[0]
	st.queue[0] = nil
	st.queue = st.queue[1:]
	return b
}
