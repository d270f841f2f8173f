package delegate

import (
	"fmt"
	"time"
)

// StopReason explains why a delegation run ended. Exactly one reason is
// attached to a finished run. Boundary trips are successful, expected
// terminations, not errors.
type StopReason string

const (
	// StopCompleted means the full task tree was visited within budget.
	StopCompleted StopReason = "completed"

	// StopConverged means consecutive expansions stopped producing new
	// evidence (or a custom convergence predicate returned true).
	StopConverged StopReason = "converged"

	// StopBudgetExhausted means the expansion-cycle budget ran out.
	StopBudgetExhausted StopReason = "budget_exhausted"

	// StopStagnation means the signature tracker hit the stagnation
	// threshold while a custom convergence predicate was in charge of
	// declaring convergence and had not done so.
	StopStagnation StopReason = "stagnation"

	// StopDepthLimit means the next expansion would exceed the depth budget.
	StopDepthLimit StopReason = "depth_limit"

	// StopBreadthLimit means the cumulative spawn budget is exhausted.
	StopBreadthLimit StopReason = "breadth_limit"

	// StopTimeout means the wall-clock budget elapsed between expansions.
	StopTimeout StopReason = "timeout"

	// StopError means the run failed before or during its first expansion,
	// or an unexpected engine-level failure was recovered.
	StopError StopReason = "error"
)

// Result is the immutable record of a finished delegation run.
//
// Invariants: TotalAgents never exceeds the budget's MaxTotalAgents and
// MaxDepthReached never exceeds MaxDepth, regardless of executor behavior.
type Result struct {
	// Success is true when the error sequence is empty.
	Success bool

	// StopReason is the single reason the run ended.
	StopReason StopReason

	// Results holds agent outcomes in spawn order, not completion order.
	Results []*AgentOutcome

	// Errors holds per-node execution failures captured during the run.
	Errors []error

	// TotalAgents is the cumulative number of agents spawned.
	TotalAgents int

	// MaxDepthReached is the deepest level at which an agent executed.
	MaxDepthReached int

	// Elapsed is the total wall-clock duration of the run.
	Elapsed time.Duration

	// Iterations is the number of expansion cycles performed.
	Iterations int

	// Converged is true when the run ended because of convergence.
	Converged bool

	// StagnationDetected is true when at least one expansion produced no
	// new evidence.
	StagnationDetected bool

	// FinalSignature is the last novelty signature recorded, empty when no
	// batch was ever observed.
	FinalSignature string
}

// String renders a one-line summary of the run.
func (r *Result) String() string {
	return fmt.Sprintf("delegation %s: %d agents, depth %d, %d iterations, %d errors in %s",
		r.StopReason, r.TotalAgents, r.MaxDepthReached, r.Iterations, len(r.Errors), r.Elapsed.Round(time.Millisecond))
}
