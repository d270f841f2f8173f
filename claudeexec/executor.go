// Package claudeexec provides a delegate.Executor backed by the Anthropic
// API. Each agent turn is one Messages call: the agent's definition supplies
// the model, system prompt, and skills; the outcome carries the response
// text, with structured fields lifted out of JSON-shaped replies so the
// convergence tracker can extract evidence.
package claudeexec

import (
	"context"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/shopspring/decimal"
	"github.com/tidwall/gjson"

	delegate "github.com/armatrix/delegate-go"
	"github.com/armatrix/delegate-go/skills"
)

// DefaultMaxOutputTokens bounds a single agent response.
const DefaultMaxOutputTokens = 4096

// messenger abstracts the Anthropic Messages API so the executor can be
// tested with a mock. Production code uses the real client.Messages.
type messenger interface {
	New(ctx context.Context, params anthropic.MessageNewParams) (*anthropic.Message, error)
}

// messageServiceAdapter wraps the real anthropic.MessageService.
type messageServiceAdapter struct {
	svc *anthropic.MessageService
}

func (a *messageServiceAdapter) New(ctx context.Context, params anthropic.MessageNewParams) (*anthropic.Message, error) {
	return a.svc.New(ctx, params)
}

// Executor runs one agent turn per call against the Anthropic API.
// It is stateless apart from its cost tracker and safe for the concurrent
// calls a BFS expansion issues.
type Executor struct {
	messages messenger
	registry delegate.Registry
	tracker  *CostTracker
	opts     executorOptions
}

var _ delegate.Executor = (*Executor)(nil)

// Option configures an Executor.
type Option func(*executorOptions)

type executorOptions struct {
	model           anthropic.Model
	maxOutputTokens int
	maxBudget       decimal.Decimal
	pricing         map[anthropic.Model]ModelPricing
	registry        delegate.Registry
}

func (o *executorOptions) applyDefaults() {
	if o.model == "" {
		o.model = anthropic.ModelClaudeSonnet4_5
	}
	if o.maxOutputTokens == 0 {
		o.maxOutputTokens = DefaultMaxOutputTokens
	}
}

// WithModel sets the default model for agents whose definition does not
// name one.
func WithModel(m anthropic.Model) Option {
	return func(o *executorOptions) { o.model = m }
}

// WithMaxOutputTokens caps a single agent response.
func WithMaxOutputTokens(n int) Option {
	return func(o *executorOptions) { o.maxOutputTokens = n }
}

// WithMaxBudget caps cumulative API spend across the executor's lifetime.
// Once reached, further agent calls fail and are captured as node errors.
func WithMaxBudget(d decimal.Decimal) Option {
	return func(o *executorOptions) { o.maxBudget = d }
}

// WithPricing overrides the built-in per-model pricing table.
func WithPricing(p map[anthropic.Model]ModelPricing) Option {
	return func(o *executorOptions) { o.pricing = p }
}

// WithRegistry sets the registry the executor consults for per-agent model,
// instructions, and skill configuration.
func WithRegistry(r delegate.Registry) Option {
	return func(o *executorOptions) { o.registry = r }
}

// New creates an Executor using a client configured from the environment
// (ANTHROPIC_API_KEY).
func New(opts ...Option) *Executor {
	client := anthropic.NewClient()
	return newExecutor(&messageServiceAdapter{svc: &client.Messages}, opts...)
}

func newExecutor(m messenger, opts ...Option) *Executor {
	var o executorOptions
	for _, fn := range opts {
		fn(&o)
	}
	o.applyDefaults()

	return &Executor{
		messages: m,
		registry: o.registry,
		tracker:  NewCostTracker(o.maxBudget, o.pricing),
		opts:     o,
	}
}

// Tracker exposes the executor's cumulative cost tracker.
func (e *Executor) Tracker() *CostTracker {
	return e.tracker
}

// ExecuteAgent implements delegate.Executor: one Messages API call per
// agent turn.
func (e *Executor) ExecuteAgent(ctx context.Context, call delegate.AgentCall) (*delegate.AgentOutcome, error) {
	if e.tracker.Exhausted() {
		return nil, fmt.Errorf("claudeexec: spend budget exhausted (total %s)", e.tracker.TotalCost())
	}

	def, err := e.definitionFor(call.Agent)
	if err != nil {
		return nil, err
	}

	model := e.opts.model
	if def.Model != "" {
		model = anthropic.Model(def.Model)
	}
	maxTokens := e.opts.maxOutputTokens
	if def.MaxOutputTokens > 0 {
		maxTokens = def.MaxOutputTokens
	}

	params := anthropic.MessageNewParams{
		Model:     model,
		MaxTokens: int64(maxTokens),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(call.Prompt)),
		},
	}
	if system := e.systemPrompt(def); system != "" {
		params.System = []anthropic.TextBlockParam{{Text: system}}
	}

	msg, err := e.messages.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("claudeexec: agent %s: %w", call.Agent, err)
	}

	e.tracker.Record(model, Usage{
		InputTokens:  msg.Usage.InputTokens,
		OutputTokens: msg.Usage.OutputTokens,
	})

	text := messageText(msg)
	return &delegate.AgentOutcome{
		Agent:  call.Agent,
		Fields: structuredFields(text),
		Raw:    text,
	}, nil
}

// definitionFor resolves the agent through the registry when one is set,
// falling back to a bare definition otherwise.
func (e *Executor) definitionFor(name string) (*delegate.Definition, error) {
	if e.registry == nil {
		return &delegate.Definition{Name: name}, nil
	}
	def, err := e.registry.Resolve(name)
	if err != nil {
		return nil, fmt.Errorf("claudeexec: %w", err)
	}
	return def, nil
}

// systemPrompt assembles the agent's system prompt: loaded skills first,
// then the definition's instructions.
func (e *Executor) systemPrompt(def *delegate.Definition) string {
	var sb strings.Builder
	if len(def.SkillPatterns) > 0 {
		if loaded, err := skills.Load(def.SkillPatterns...); err == nil {
			sb.WriteString(skills.FormatPrompt(loaded))
		}
	}
	sb.WriteString(def.Instructions)
	return sb.String()
}

// messageText concatenates the text blocks of a response.
func messageText(msg *anthropic.Message) string {
	var sb strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}
	return sb.String()
}

// structuredFields lifts the top-level fields out of a JSON-object response.
// Returns nil when the text is not a JSON object, leaving the outcome to be
// treated as opaque evidence via its textual form.
func structuredFields(text string) map[string]any {
	trimmed := strings.TrimSpace(text)
	if !strings.HasPrefix(trimmed, "{") || !gjson.Valid(trimmed) {
		return nil
	}
	parsed := gjson.Parse(trimmed)
	if !parsed.IsObject() {
		return nil
	}

	fields := make(map[string]any)
	parsed.ForEach(func(key, value gjson.Result) bool {
		fields[key.String()] = value.Value()
		return true
	})
	return fields
}
