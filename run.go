package delegate

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// run bundles the exclusively-owned state of one delegation: the context,
// tracker, session, and the configuration snapshot the strategies consult.
// A run is driven by one coordinating flow of control; parallel children
// report through pre-allocated slots and are re-sequenced at the join.
type run struct {
	rc      *runContext
	budget  Budget
	tracker *ConvergenceTracker
	exec    Executor
	opts    *engineOptions
	session *Session

	// convergedReason is what a tracker-threshold trip reports: StopConverged
	// by default, StopStagnation when a custom predicate owns the verdict.
	convergedReason StopReason
}

func newRun(e *Engine, root TaskSpec, budget Budget) *run {
	convergedReason := StopConverged
	if e.opts.convergence != nil {
		convergedReason = StopStagnation
	}
	return &run{
		rc:              newRunContext(root, budget),
		budget:          budget,
		tracker:         NewConvergenceTracker(e.opts.evidenceKeys...),
		exec:            e.exec,
		opts:            &e.opts,
		session:         NewSession(),
		convergedReason: convergedReason,
	}
}

// execute validates the root agent, dispatches to the strategy, and converts
// any panic escaping the run into a StopError termination so the caller
// still receives a Result.
func (r *run) execute(ctx context.Context, strat strategy, root TaskSpec) (reason StopReason) {
	defer func() {
		if p := recover(); p != nil {
			r.rc.recordError(fmt.Errorf("delegation run panicked: %v", p))
			reason = StopError
		}
	}()

	if r.opts.registry != nil {
		if _, err := r.opts.registry.Resolve(root.Agent); err != nil {
			r.rc.recordError(fmt.Errorf("resolve root agent: %w", err))
			return StopError
		}
	}
	return strat.run(ctx, r, root)
}

func (r *run) checkBoundaries() (StopReason, bool) {
	return checkBoundaries(r.rc, r.budget, r.tracker, r.convergedReason)
}

// executeNode runs one agent synchronously, recording its outcome or error.
// Returns the outcome and whether the execution succeeded.
func (r *run) executeNode(ctx context.Context, spec TaskSpec, depth int) (*AgentOutcome, bool) {
	agentID := r.beginSpawn(depth)
	outcome, err := r.callExecutor(ctx, spec, depth)
	r.finishSpawn(agentID, spec, depth, outcome, err)
	if err != nil {
		return nil, false
	}
	return outcome, true
}

// executeBatch runs the given children concurrently, one goroutine per
// child, and joins them all before returning (no child outlives the
// expansion step). Outcomes are re-sequenced by spawn index before being
// recorded, so result order is deterministic regardless of completion
// order. A child's failure never cancels its siblings.
func (r *run) executeBatch(ctx context.Context, specs []TaskSpec, depth int) []*AgentOutcome {
	outcomes := make([]*AgentOutcome, len(specs))
	errs := make([]error, len(specs))
	ids := make([]string, len(specs))

	var wg sync.WaitGroup
	for i, spec := range specs {
		ids[i] = r.beginSpawn(depth)
		wg.Add(1)
		go func(i int, spec TaskSpec) {
			defer wg.Done()
			defer func() {
				if p := recover(); p != nil {
					errs[i] = fmt.Errorf("agent %s panicked: %v", spec.Agent, p)
				}
			}()
			outcomes[i], errs[i] = r.callExecutor(ctx, spec, depth)
		}(i, spec)
	}
	wg.Wait()

	batch := make([]*AgentOutcome, 0, len(specs))
	for i, spec := range specs {
		r.finishSpawn(ids[i], spec, depth, outcomes[i], errs[i])
		if errs[i] == nil {
			batch = append(batch, outcomes[i])
		}
	}
	return batch
}

// beginSpawn assigns an agent ID, bumps the spawn counters, and notifies
// observers. Called only from the coordinating flow of control.
func (r *run) beginSpawn(depth int) string {
	agentID := GenerateID(PrefixAgent)
	r.rc.totalSpawned++
	r.rc.active++
	r.rc.noteDepth(depth)
	r.notifySpawn(agentID, depth)
	return agentID
}

// callExecutor resolves the agent and performs the single executor call.
// Safe to invoke from batch goroutines: it touches no run counters. The root
// runs at depth 0 and was already resolved by execute, so only child nodes
// are resolved here.
func (r *run) callExecutor(ctx context.Context, spec TaskSpec, depth int) (*AgentOutcome, error) {
	if depth > 0 && r.opts.registry != nil {
		if _, err := r.opts.registry.Resolve(spec.Agent); err != nil {
			return nil, err
		}
	}

	outcome, err := r.exec.ExecuteAgent(ctx, AgentCall{
		Agent:     spec.Agent,
		SessionID: r.session.ID,
		Prompt:    spec.Prompt,
		Session:   r.session,
	})
	if err != nil {
		return nil, fmt.Errorf("agent %s failed: %w", spec.Agent, err)
	}
	if outcome == nil {
		outcome = &AgentOutcome{Agent: spec.Agent}
	}
	return outcome, nil
}

// finishSpawn records the call's outcome into the context and session and
// notifies observers. Called only from the coordinating flow of control,
// in spawn order.
func (r *run) finishSpawn(agentID string, spec TaskSpec, depth int, outcome *AgentOutcome, err error) {
	r.rc.active--
	r.rc.completed++
	if err != nil {
		r.rc.recordError(err)
	} else {
		r.rc.recordResult(outcome)
		r.session.Append(Turn{
			Agent:  spec.Agent,
			Prompt: spec.Prompt,
			Output: outcome.Raw,
			Depth:  depth,
			At:     time.Now(),
		})
	}
	r.notifyComplete(agentID, outcome)
}

// observeBatch feeds the newly collected outcomes to the tracker and
// reports whether the run should stop as converged. A configured predicate
// takes precedence over the stagnation-count logic.
func (r *run) observeBatch(batch []*AgentOutcome) (StopReason, bool) {
	if len(batch) > 0 {
		if !r.tracker.Observe(batch) {
			r.rc.stagnationSeen = true
		}
	}

	if r.opts.convergence != nil {
		if r.opts.convergence(r.rc.results) {
			return StopConverged, true
		}
		return "", false
	}
	if r.tracker.Converged(r.budget.StagnationThreshold) {
		return StopConverged, true
	}
	return "", false
}

func (r *run) notifySpawn(agentID string, depth int) {
	for _, obs := range r.opts.observers {
		func() {
			defer func() { _ = recover() }()
			obs.OnAgentSpawn(agentID, depth)
		}()
	}
}

func (r *run) notifyComplete(agentID string, outcome *AgentOutcome) {
	for _, obs := range r.opts.observers {
		func() {
			defer func() { _ = recover() }()
			obs.OnAgentComplete(agentID, outcome)
		}()
	}
}

// buildResult packages the run state into an immutable Result.
func (r *run) buildResult(reason StopReason) *Result {
	if reason == "" {
		reason = StopCompleted
	}

	results := make([]*AgentOutcome, len(r.rc.results))
	copy(results, r.rc.results)
	errs := make([]error, len(r.rc.errs))
	copy(errs, r.rc.errs)

	return &Result{
		Success:            len(errs) == 0,
		StopReason:         reason,
		Results:            results,
		Errors:             errs,
		TotalAgents:        r.rc.totalSpawned,
		MaxDepthReached:    r.rc.maxDepthReached,
		Elapsed:            r.rc.elapsed(),
		Iterations:         r.rc.iterations,
		Converged:          reason == StopConverged,
		StagnationDetected: r.rc.stagnationSeen || r.tracker.Stagnation() > 0,
		FinalSignature:     r.tracker.LastSignature(),
	}
}
