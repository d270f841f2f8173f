package delegate

// checkBoundaries is the ordered budget cascade evaluated before every
// expansion step. Only the first satisfied condition is reported; the order
// is fixed so terminations are deterministic and reproducible:
//
//  1. iteration count      -> StopBudgetExhausted
//  2. wall-clock time      -> StopTimeout
//  3. current depth        -> StopDepthLimit
//  4. cumulative spawns    -> StopBreadthLimit
//  5. tracker convergence  -> convergedReason
//
// Hard resource limits the caller configured explicitly outrank semantic
// convergence, which is an emergent property. convergedReason is
// StopConverged for the default signature check and StopStagnation when a
// custom predicate owns the convergence verdict for the run.
func checkBoundaries(rc *runContext, budget Budget, tracker *ConvergenceTracker, convergedReason StopReason) (StopReason, bool) {
	switch {
	case rc.iterations >= budget.MaxIterations:
		return StopBudgetExhausted, true
	case rc.elapsed() >= budget.MaxWallTime:
		return StopTimeout, true
	case rc.depth >= budget.MaxDepth:
		return StopDepthLimit, true
	case rc.totalSpawned >= budget.MaxTotalAgents:
		return StopBreadthLimit, true
	case tracker.Converged(budget.StagnationThreshold):
		return convergedReason, true
	}
	return "", false
}
