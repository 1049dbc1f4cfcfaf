package pathfinder

import (
	"context"
	"fmt"
	"time"
)

// StepStatus tells a Step caller what the processed branch amounted to.
type StepStatus uint8

const (
	// StepIdle: the queue was empty and no branch was processed
	StepIdle StepStatus = iota
	// StepPending: a branch was processed and the search goes on
	StepPending
	// StepResolved: the search found a path
	StepResolved
)

func (s StepStatus) String() string {
	switch s {
	case StepIdle:
		return "idle"
	case StepPending:
		return "pending"
	case StepResolved:
		return "resolved"
	}
	return "unknown"
}

// StepResult is the outcome of one Step call. Path is a copy of the
// processed branch's locations, useful for drawing the search as it runs.
type StepResult struct {
	Status StepStatus
	Path   Path
}

// Result is a found path together with the work it took.
type Result struct {
	Path  Path
	Stats Stats
}

// Search bends the straight line from Start to End around the obstacles of
// a world until some candidate is clear end to end. Candidates are explored
// breadth first, so every detour at one depth is tried before deeper ones.
//
// A Search holds no frontier itself; Solve and Run keep theirs on the stack
// and Step works on a caller-owned State.
type Search[O comparable] struct {
	world World[O]
	cfg   Config
	start Point
	end   Point
}

// NewSearch returns a search from start to end in w. Unset grains in cfg take
// their defaults.
func NewSearch[O comparable](w World[O], start, end Point, cfg Config) (*Search[O], error) {
	cfg = cfg.withDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Search[O]{
		world: w,
		cfg:   cfg,
		start: start,
		end:   end,
	}, nil
}

func (s *Search[O]) Start() Point   { return s.start }
func (s *Search[O]) End() Point     { return s.end }
func (s *Search[O]) Config() Config { return s.cfg }

// Solve runs the search to completion. It returns ErrNotFound when every
// branch was abandoned, and ErrStepBudget when Config.MaxSteps ran out.
func (s *Search[O]) Solve() (Path, error) {
	res, err := s.Run(context.Background())
	return res.Path, err
}

// Run is Solve with cancellation and statistics. ctx is checked between
// branches; a detour under construction always completes.
func (s *Search[O]) Run(ctx context.Context) (Result, error) {
	began := time.Now()

	var st State[O]
	for {
		if err := ctx.Err(); err != nil {
			return Result{Stats: st.stats}, err
		}
		if s.cfg.MaxSteps > 0 && st.stats.Steps >= s.cfg.MaxSteps {
			s.logf("⚠️  %v -> %v: gave up after %d steps (queue %d)", s.start, s.end, st.stats.Steps, st.Pending())
			return Result{Stats: st.stats}, fmt.Errorf("%w after %d steps", ErrStepBudget, st.stats.Steps)
		}

		res := s.Step(&st)
		switch res.Status {
		case StepResolved:
			s.logf("✅ %v -> %v: %d waypoints, %d steps, %d spawned, %d abandoned in %s",
				s.start, s.end, len(res.Path), st.stats.Steps, st.stats.Spawned, st.stats.Abandoned, time.Since(began))
			return Result{Path: res.Path, Stats: st.stats}, nil
		case StepIdle:
			s.logf("❌ %v -> %v: no path, %d steps, %d abandoned in %s",
				s.start, s.end, st.stats.Steps, st.stats.Abandoned, time.Since(began))
			return Result{Stats: st.stats}, ErrNotFound
		}
	}
}

// Step processes one branch of the search held in st. An idle state is
// seeded with the straight line first, so the first call already does work.
// When the queue has drained, Step returns StepIdle and leaves st idle; the
// next call starts the search over. Once resolved, st keeps returning the
// found path until it is Reset.
func (s *Search[O]) Step(st *State[O]) StepResult {
	switch st.phase {
	case PhaseResolved:
		return StepResult{Status: StepResolved, Path: st.result.clone()}
	case PhaseIdle:
		st.seed(s.start, s.end)
	}

	if len(st.queue) == 0 {
		st.phase = PhaseIdle
		st.drained = true
		return StepResult{Status: StepIdle}
	}

	b := st.pop()
	st.stats.Steps++

	state, children := b.advance(s.world, s.cfg)
	switch state {
	case outcomeResolved:
		st.phase = PhaseResolved
		st.result = Path(b.locations).clone()
		st.queue = nil
		return StepResult{Status: StepResolved, Path: st.result.clone()}
	case outcomeAdvanced:
		st.push(b)
	case outcomeAbandoned:
		st.stats.Abandoned++
	case outcomeSplit:
		for _, child := range children {
			st.push(child)
		}
		st.stats.Spawned += len(children)
	}

	return StepResult{Status: StepPending, Path: Path(b.locations).clone()}
}

func (s *Search[O]) logf(format string, args ...any) {
	if s.cfg.Logger != nil {
		s.cfg.Logger.Printf(format, args...)
	}
}
