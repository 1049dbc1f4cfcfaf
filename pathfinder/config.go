package pathfinder

import (
	"fmt"
	"log"
	"math"
)

const (
	DefaultMaxVisits     = 2
	DefaultAngularGrain  = math.Pi / 18
	DefaultMovementGrain = 1.0 / 15
)

// Config holds the tuning knobs shared by every branch of a search.
type Config struct {
	// MaxVisits is how many times one branch lineage may detour around the
	// same obstacle before it is abandoned.
	MaxVisits int `json:"maxVisits"`

	// AngularGrain is the rotation increment in radians, in (0, π/2).
	// Smaller is more accurate and slower.
	AngularGrain float64 `json:"angularGrain,omitempty"`

	// MovementGrain is the slide increment as a fraction of the distance
	// from the candidate to the current point, in (0, 1].
	MovementGrain float64 `json:"movementGrain,omitempty"`

	// MaxSteps caps the number of branches processed by Solve and Run.
	// Zero means unlimited.
	MaxSteps int `json:"maxSteps,omitempty"`

	// Logger receives a summary line per search. Nil disables logging.
	Logger *log.Logger `json:"-"`
}

// DefaultConfig returns the configuration used when no overrides are given.
func DefaultConfig() Config {
	return Config{
		MaxVisits:     DefaultMaxVisits,
		AngularGrain:  DefaultAngularGrain,
		MovementGrain: DefaultMovementGrain,
	}
}

// withDefaults fills unset grains with their defaults. MaxVisits is used as
// given: zero forbids any detour, so callers wanting the default budget start
// from DefaultConfig.
func (c Config) withDefaults() Config {
	if c.AngularGrain == 0 {
		c.AngularGrain = DefaultAngularGrain
	}
	if c.MovementGrain == 0 {
		c.MovementGrain = DefaultMovementGrain
	}
	return c
}

// Validate reports whether every field is inside its valid range.
func (c Config) Validate() error {
	if c.MaxVisits < 0 {
		return fmt.Errorf("%w: maxVisits %d is negative", ErrInvalidConfig, c.MaxVisits)
	}
	if !(c.AngularGrain > 0 && c.AngularGrain < math.Pi/2) {
		return fmt.Errorf("%w: angularGrain %g outside (0, π/2)", ErrInvalidConfig, c.AngularGrain)
	}
	if !(c.MovementGrain > 0 && c.MovementGrain <= 1) {
		return fmt.Errorf("%w: movementGrain %g outside (0, 1]", ErrInvalidConfig, c.MovementGrain)
	}
	if c.MaxSteps < 0 {
		return fmt.Errorf("%w: maxSteps %d is negative", ErrInvalidConfig, c.MaxSteps)
	}
	return nil
}
