package delegate

import (
	"fmt"
	"time"
)

// Budget bounds a single delegation run. All fields must be positive; a
// budget with any non-positive field is rejected before the run starts.
// Budgets are immutable once handed to the engine.
type Budget struct {
	// MaxDepth is the deepest tree level at which agents may execute.
	// The root agent runs at depth 0.
	MaxDepth int

	// MaxBreadth caps the children spawned concurrently at one expansion.
	// Excess children are dropped, not queued.
	MaxBreadth int

	// MaxTotalAgents caps cumulative spawns across the whole tree.
	MaxTotalAgents int

	// MaxWallTime bounds total run time across all expansions. It is
	// checked between expansion steps, not inside a single executor call.
	MaxWallTime time.Duration

	// MaxIterations caps the number of expansion cycles.
	MaxIterations int

	// StagnationThreshold is the number of consecutive no-novelty rounds
	// before convergence is declared.
	StagnationThreshold int
}

// DefaultBudget returns a budget with conservative defaults suitable for
// interactive use.
func DefaultBudget() Budget {
	return Budget{
		MaxDepth:            DefaultMaxDepth,
		MaxBreadth:          DefaultMaxBreadth,
		MaxTotalAgents:      DefaultMaxTotalAgents,
		MaxWallTime:         DefaultMaxWallTime,
		MaxIterations:       DefaultMaxIterations,
		StagnationThreshold: DefaultStagnationThreshold,
	}
}

// Validate checks every field is positive. Returns an error wrapping
// ErrInvalidBudget naming the first offending field.
func (b Budget) Validate() error {
	switch {
	case b.MaxDepth <= 0:
		return fmt.Errorf("%w: max depth must be positive, got %d", ErrInvalidBudget, b.MaxDepth)
	case b.MaxBreadth <= 0:
		return fmt.Errorf("%w: max breadth must be positive, got %d", ErrInvalidBudget, b.MaxBreadth)
	case b.MaxTotalAgents <= 0:
		return fmt.Errorf("%w: max total agents must be positive, got %d", ErrInvalidBudget, b.MaxTotalAgents)
	case b.MaxWallTime <= 0:
		return fmt.Errorf("%w: max wall time must be positive, got %s", ErrInvalidBudget, b.MaxWallTime)
	case b.MaxIterations <= 0:
		return fmt.Errorf("%w: max iterations must be positive, got %d", ErrInvalidBudget, b.MaxIterations)
	case b.StagnationThreshold <= 0:
		return fmt.Errorf("%w: stagnation threshold must be positive, got %d", ErrInvalidBudget, b.StagnationThreshold)
	}
	return nil
}
