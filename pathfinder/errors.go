package pathfinder

import "errors"

var (
	// ErrNotFound is returned when every branch was abandoned before one
	// reached the end point.
	ErrNotFound = errors.New("pathfinder: no path found")

	// ErrStepBudget is returned when Config.MaxSteps branches were processed
	// without a result.
	ErrStepBudget = errors.New("pathfinder: step budget exhausted")

	// ErrInvalidConfig wraps every Config.Validate failure.
	ErrInvalidConfig = errors.New("pathfinder: invalid config")
)
