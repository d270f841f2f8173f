package delegate

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resultAgents(result *Result) []string {
	agents := make([]string, len(result.Results))
	for i, r := range result.Results {
		agents[i] = r.Agent
	}
	return agents
}

func TestBFS_ResultsInSpawnOrderDespiteCompletionOrder(t *testing.T) {
	// Children finish in reverse spawn order; results must not.
	delays := map[string]time.Duration{
		"a": 60 * time.Millisecond,
		"b": 30 * time.Millisecond,
		"c": 5 * time.Millisecond,
	}
	exec := ExecutorFunc(func(ctx context.Context, call AgentCall) (*AgentOutcome, error) {
		time.Sleep(delays[call.Agent])
		return &AgentOutcome{Agent: call.Agent, Raw: call.Agent}, nil
	})

	engine := NewEngine(exec)
	children := []TaskSpec{
		{Agent: "a", Prompt: "1"},
		{Agent: "b", Prompt: "2"},
		{Agent: "c", Prompt: "3"},
	}
	result, err := engine.Delegate(context.Background(), "root", "go", children, testBudget(), ModeBFS)
	require.NoError(t, err)
	assert.Equal(t, []string{"root", "a", "b", "c"}, resultAgents(result))
}

func TestBFS_BreadthTruncation(t *testing.T) {
	budget := testBudget()
	budget.MaxBreadth = 2

	rec := newRecordingExec(echoExec())
	engine := NewEngine(rec)

	children := make([]TaskSpec, 6)
	for i := range children {
		children[i] = TaskSpec{Agent: fmt.Sprintf("c%d", i), Prompt: "x"}
	}
	result, err := engine.Delegate(context.Background(), "root", "go", children, budget, ModeBFS)
	require.NoError(t, err)

	// Excess children are dropped, not queued.
	assert.Equal(t, 3, result.TotalAgents)
	assert.ElementsMatch(t, []string{"root", "c0", "c1"}, rec.calls())
	assert.Equal(t, StopCompleted, result.StopReason)
}

func TestBFS_TotalAgentCapDropsRemainder(t *testing.T) {
	budget := testBudget()
	budget.MaxBreadth = 200
	budget.MaxTotalAgents = 5

	children := make([]TaskSpec, 100)
	for i := range children {
		children[i] = TaskSpec{Agent: fmt.Sprintf("c%d", i), Prompt: "x"}
	}

	engine := NewEngine(echoExec())
	result, err := engine.Delegate(context.Background(), "root", "go", children, budget, ModeBFS)
	require.NoError(t, err)

	assert.Equal(t, 5, result.TotalAgents)
	assert.Equal(t, []string{"root", "c0", "c1", "c2", "c3"}, resultAgents(result),
		"the first children in spawn order run; the remainder is silently dropped")
}

func TestBFS_DepthLimit(t *testing.T) {
	budget := testBudget()
	budget.MaxDepth = 2

	rec := newRecordingExec(echoExec())
	engine := NewEngine(rec)

	result, err := engine.Delegate(context.Background(), "root", "go", linearChain(5), budget, ModeBFS)
	require.NoError(t, err)

	assert.Equal(t, StopDepthLimit, result.StopReason)
	assert.LessOrEqual(t, result.MaxDepthReached, 2)
	assert.NotContains(t, rec.calls(), "c3", "nodes beyond the depth budget never execute")
	assert.NotContains(t, rec.calls(), "c4")
}

func TestBFS_SiblingFailureIsolated(t *testing.T) {
	engine := NewEngine(failingExec("bad"))

	children := []TaskSpec{
		{Agent: "good1", Prompt: "1"},
		{Agent: "bad", Prompt: "2"},
		{Agent: "good2", Prompt: "3"},
	}
	result, err := engine.Delegate(context.Background(), "root", "go", children, testBudget(), ModeBFS)
	require.NoError(t, err)

	assert.Equal(t, []string{"root", "good1", "good2"}, resultAgents(result))
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0].Error(), "bad")
	assert.Equal(t, 4, result.TotalAgents, "the failed child still counts as a spawn")
}

func TestBFS_FailedNodeChildrenStillExpand(t *testing.T) {
	engine := NewEngine(failingExec("mid"))

	children := []TaskSpec{{
		Agent:    "mid",
		Prompt:   "x",
		Children: []TaskSpec{{Agent: "leaf", Prompt: "y"}},
	}}
	result, err := engine.Delegate(context.Background(), "root", "go", children, testBudget(), ModeBFS)
	require.NoError(t, err)

	assert.Contains(t, resultAgents(result), "leaf")
	assert.Len(t, result.Errors, 1)
}

func TestBFS_IterationBudget(t *testing.T) {
	budget := testBudget()
	budget.MaxIterations = 2

	engine := NewEngine(echoExec())
	result, err := engine.Delegate(context.Background(), "root", "go", linearChain(5), budget, ModeBFS)
	require.NoError(t, err)

	assert.Equal(t, StopBudgetExhausted, result.StopReason)
	assert.Equal(t, 2, result.Iterations)
}
