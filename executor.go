package delegate

import "context"

// AgentCall carries everything an Executor needs to run one agent turn.
// Session and Tools are opaque handles owned by the surrounding application;
// the engine threads them through without inspecting them.
type AgentCall struct {
	Agent     string
	SessionID string
	Prompt    string
	Session   any
	Tools     any
}

// AgentOutcome is the result of one agent execution. Fields is the
// structured form (named result fields); when the executor produced only
// opaque text, Fields is nil and Raw carries the textual form. Raw is
// always set.
type AgentOutcome struct {
	Agent  string
	Fields map[string]any
	Raw    string
}

// Executor is the engine's only required external capability: run one agent
// turn and return its outcome. A failure is captured as one error entry for
// that node and does not abort sibling nodes.
//
// The engine does not preempt a call in flight; wall-clock budgets are
// checked between expansions. Callers needing hard per-call deadlines must
// impose them inside the Executor.
type Executor interface {
	ExecuteAgent(ctx context.Context, call AgentCall) (*AgentOutcome, error)
}

// ExecutorFunc adapts a plain function to the Executor interface.
// Tests use this to avoid real API calls.
type ExecutorFunc func(ctx context.Context, call AgentCall) (*AgentOutcome, error)

// ExecuteAgent implements Executor.
func (f ExecutorFunc) ExecuteAgent(ctx context.Context, call AgentCall) (*AgentOutcome, error) {
	return f(ctx, call)
}

// Observer receives push-only notifications at well-defined points of a run.
// Calls are synchronous but fire-and-forget: a panicking observer is
// isolated and never aborts the run.
type Observer interface {
	OnAgentSpawn(agentID string, depth int)
	OnAgentComplete(agentID string, outcome *AgentOutcome)
}

// ConvergencePredicate overrides the default signature-based novelty check.
// It receives the full accumulated result sequence and returns true once the
// run should be considered converged.
type ConvergencePredicate func(results []*AgentOutcome) bool
