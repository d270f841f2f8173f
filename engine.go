package delegate

import (
	"context"
	"fmt"
)

// Engine is the delegation façade. It holds configuration and an Executor;
// per-run state lives in a fresh context allocated by Delegate, so the same
// Engine is safe to use from multiple goroutines for independent runs.
type Engine struct {
	exec Executor
	opts engineOptions
}

// NewEngine creates an Engine driving the given Executor.
func NewEngine(exec Executor, opts ...EngineOption) *Engine {
	return &Engine{
		exec: exec,
		opts: resolveOptions(opts),
	}
}

// Delegate runs the root agent with the given prompt, expanding the
// requested child tasks under the selected traversal mode until the tree is
// exhausted or a budget boundary trips.
//
// An invalid budget or unknown mode is a configuration error: Delegate
// returns a non-nil error and no Result. Once a run starts, the caller
// always receives a well-formed Result; executor failures, unresolvable
// agents, and recovered panics are reported through the Result's stop
// reason and error sequence. The Result upholds the engine's safety
// guarantee regardless of executor behavior: TotalAgents never exceeds
// budget.MaxTotalAgents and MaxDepthReached never exceeds budget.MaxDepth.
func (e *Engine) Delegate(ctx context.Context, rootAgent, prompt string, children []TaskSpec, budget Budget, mode Mode) (*Result, error) {
	if e.exec == nil {
		return nil, ErrNoExecutor
	}
	if err := budget.Validate(); err != nil {
		return nil, err
	}
	strat, err := strategyFor(mode)
	if err != nil {
		return nil, err
	}

	root := TaskSpec{Agent: rootAgent, Prompt: prompt, Children: children}
	r := newRun(e, root, budget)
	reason := r.execute(ctx, strat, root)

	if e.opts.store != nil {
		if err := e.opts.store.Save(ctx, r.session); err != nil {
			r.rc.recordError(fmt.Errorf("save session %s: %w", r.session.ID, err))
		}
	}
	return r.buildResult(reason), nil
}
