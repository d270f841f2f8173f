// Package tasktool exposes a delegation engine as a tool a parent agent can
// call: the model requests "Delegate" with an agent name, prompt, traversal
// mode, and an optional subtask tree, and receives a textual summary of the
// bounded delegation run.
package tasktool

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/packages/param"

	delegate "github.com/armatrix/delegate-go"
	"github.com/armatrix/delegate-go/internal/schema"
)

// Input is the tool's JSON input, deserialized from the model's tool call.
type Input struct {
	Agent    string      `json:"agent" jsonschema:"required,description=Name of the agent to delegate to"`
	Prompt   string      `json:"prompt" jsonschema:"required,description=Task prompt for the delegated agent"`
	Mode     string      `json:"mode,omitempty" jsonschema:"description=Traversal mode,enum=bfs,enum=dfs,enum=adaptive"`
	Children []ChildSpec `json:"children,omitempty" jsonschema:"description=Optional subtasks expanded beneath the root agent"`
}

// ChildSpec is one subtask in the requested delegation tree.
type ChildSpec struct {
	Agent    string      `json:"agent" jsonschema:"required,description=Name of the agent to run for this subtask"`
	Prompt   string      `json:"prompt" jsonschema:"required,description=Task prompt for this subtask"`
	Children []ChildSpec `json:"children,omitempty" jsonschema:"description=Nested subtasks"`
}

// taskSpecs converts the wire tree into the engine's TaskSpec tree.
func taskSpecs(children []ChildSpec) []delegate.TaskSpec {
	if len(children) == 0 {
		return nil
	}
	specs := make([]delegate.TaskSpec, len(children))
	for i, c := range children {
		specs[i] = delegate.TaskSpec{
			Agent:    c.Agent,
			Prompt:   c.Prompt,
			Children: taskSpecs(c.Children),
		}
	}
	return specs
}

// Tool adapts a delegate.Engine to a callable agent tool.
type Tool struct {
	engine *delegate.Engine
	budget delegate.Budget
}

// New creates a Delegate tool running each call under the given budget.
func New(engine *delegate.Engine, budget delegate.Budget) *Tool {
	return &Tool{engine: engine, budget: budget}
}

// Name returns the tool's API name.
func (t *Tool) Name() string { return "Delegate" }

// Description returns the tool's API description.
func (t *Tool) Description() string {
	return "Delegate a task to a named agent, optionally with a tree of subtasks " +
		"expanded beneath it. The run is bounded by depth, breadth, total-agent, " +
		"wall-clock, and stagnation budgets."
}

// InputSchema returns the auto-generated JSON schema for Input.
func (t *Tool) InputSchema() anthropic.ToolInputSchemaParam {
	return schema.Generate[Input]()
}

// AsTool renders the tool for the Anthropic API tool list.
func (t *Tool) AsTool() anthropic.ToolUnionParam {
	return anthropic.ToolUnionParam{
		OfTool: &anthropic.ToolParam{
			Name:        t.Name(),
			Description: param.NewOpt(t.Description()),
			InputSchema: t.InputSchema(),
		},
	}
}

// Execute runs one delegation and renders the result for the model.
// Invalid input is reported as text so the model can correct itself;
// only configuration errors propagate.
func (t *Tool) Execute(ctx context.Context, raw json.RawMessage) (string, error) {
	var input Input
	if err := json.Unmarshal(raw, &input); err != nil {
		return fmt.Sprintf("invalid input: %s", err), nil
	}
	if input.Agent == "" || input.Prompt == "" {
		return "invalid input: agent and prompt are required", nil
	}

	mode := delegate.ModeAdaptive
	if input.Mode != "" {
		parsed, err := delegate.ParseMode(input.Mode)
		if err != nil {
			return fmt.Sprintf("invalid input: %s", err), nil
		}
		mode = parsed
	}

	result, err := t.engine.Delegate(ctx, input.Agent, input.Prompt, taskSpecs(input.Children), t.budget, mode)
	if err != nil {
		return "", err
	}
	return renderResult(result), nil
}

// renderResult formats a run summary plus the tail of the collected outputs.
func renderResult(result *delegate.Result) string {
	var sb strings.Builder
	sb.WriteString(result.String())
	sb.WriteString("\n")

	for _, err := range result.Errors {
		sb.WriteString("error: ")
		sb.WriteString(err.Error())
		sb.WriteString("\n")
	}
	for _, outcome := range result.Results {
		sb.WriteString(outcome.Agent)
		sb.WriteString(": ")
		sb.WriteString(outcome.Raw)
		sb.WriteString("\n")
	}
	return sb.String()
}
