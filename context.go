package delegate

import "time"

// runContext is the mutable per-run state: counters, timers, and the
// accumulated result/error sequences. It is exclusively owned by the run
// that created it and mutated only by the coordinating flow of control;
// concurrent BFS children report through pre-allocated slots joined by the
// coordinator, never by writing here directly.
type runContext struct {
	id        string
	startTime time.Time

	depth           int
	maxDepthReached int
	totalSpawned    int
	active          int
	completed       int
	iterations      int

	// results is index-stable: entry i corresponds to spawn order i among
	// successful executions.
	results []*AgentOutcome
	errs    []error

	// stagnationSeen records whether any expansion of this run produced no
	// new evidence, independent of later resets of the tracker's count.
	stagnationSeen bool
}

// newRunContext allocates fresh state for one run over the given spec tree.
func newRunContext(root TaskSpec, budget Budget) *runContext {
	capacity := countNodes(root)
	if capacity > budget.MaxTotalAgents {
		capacity = budget.MaxTotalAgents
	}
	return &runContext{
		id:        GenerateID(PrefixRun),
		startTime: time.Now(),
		results:   make([]*AgentOutcome, 0, capacity),
	}
}

// elapsed returns the wall-clock time since the run started.
func (rc *runContext) elapsed() time.Duration {
	return time.Since(rc.startTime)
}

// noteDepth records the depth an agent executed at, tracking the maximum.
func (rc *runContext) noteDepth(depth int) {
	if depth > rc.maxDepthReached {
		rc.maxDepthReached = depth
	}
}

// recordResult appends an outcome in spawn order.
func (rc *runContext) recordResult(outcome *AgentOutcome) {
	rc.results = append(rc.results, outcome)
}

// recordError captures a per-node failure without aborting the run.
func (rc *runContext) recordError(err error) {
	rc.errs = append(rc.errs, err)
}

// remainingSpawns returns how many more agents the total budget admits.
func (rc *runContext) remainingSpawns(budget Budget) int {
	return budget.MaxTotalAgents - rc.totalSpawned
}
