package claudeexec

import (
	"sync"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/shopspring/decimal"
)

// ModelPricing holds per-model token prices in USD per million tokens.
type ModelPricing struct {
	InputPerMTok  decimal.Decimal
	OutputPerMTok decimal.Decimal
}

var million = decimal.NewFromInt(1_000_000)

// Cost calculates the price of one call at this model's rates.
func (p ModelPricing) Cost(inputTokens, outputTokens int64) decimal.Decimal {
	in := decimal.NewFromInt(inputTokens).Mul(p.InputPerMTok).Div(million)
	out := decimal.NewFromInt(outputTokens).Mul(p.OutputPerMTok).Div(million)
	return in.Add(out)
}

// DefaultPricing contains built-in pricing for Claude models (USD per
// million tokens). Can be overridden via WithPricing.
var DefaultPricing = map[anthropic.Model]ModelPricing{
	anthropic.ModelClaudeOpus4_6: {
		InputPerMTok:  decimal.NewFromFloat(5),
		OutputPerMTok: decimal.NewFromFloat(25),
	},
	anthropic.ModelClaudeSonnet4_5: {
		InputPerMTok:  decimal.NewFromFloat(3),
		OutputPerMTok: decimal.NewFromFloat(15),
	},
	anthropic.ModelClaudeHaiku4_5: {
		InputPerMTok:  decimal.NewFromFloat(1),
		OutputPerMTok: decimal.NewFromFloat(5),
	},
}

// Usage holds token counts for a single API call.
type Usage struct {
	InputTokens  int64
	OutputTokens int64
}

// CostTracker accumulates token usage and cost across the agent calls of
// one or more delegation runs. It is safe for concurrent use; BFS
// expansions record usage from parallel goroutines.
type CostTracker struct {
	mu         sync.Mutex
	maxBudget  decimal.Decimal // 0 = unlimited
	totalCost  decimal.Decimal
	totalUsage Usage
	pricing    map[anthropic.Model]ModelPricing
	calls      int
}

// NewCostTracker creates a tracker. maxBudget of 0 means unlimited.
func NewCostTracker(maxBudget decimal.Decimal, pricing map[anthropic.Model]ModelPricing) *CostTracker {
	if pricing == nil {
		pricing = DefaultPricing
	}
	return &CostTracker{
		maxBudget: maxBudget,
		totalCost: decimal.Zero,
		pricing:   pricing,
	}
}

// Record adds one call's usage and updates the cumulative cost. Tokens for
// unknown models are counted but priced at zero.
func (c *CostTracker) Record(model anthropic.Model, usage Usage) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.calls++
	c.totalUsage.InputTokens += usage.InputTokens
	c.totalUsage.OutputTokens += usage.OutputTokens

	if p, ok := c.pricing[model]; ok {
		c.totalCost = c.totalCost.Add(p.Cost(usage.InputTokens, usage.OutputTokens))
	}
}

// TotalCost returns the cumulative cost across all recorded calls.
func (c *CostTracker) TotalCost() decimal.Decimal {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.totalCost
}

// TotalUsage returns the cumulative token usage.
func (c *CostTracker) TotalUsage() Usage {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.totalUsage
}

// Calls returns the number of recorded API calls.
func (c *CostTracker) Calls() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls
}

// Exhausted reports whether the total cost has reached maxBudget.
// Always false when maxBudget is 0 (unlimited).
func (c *CostTracker) Exhausted() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.maxBudget.IsZero() {
		return false
	}
	return c.totalCost.GreaterThanOrEqual(c.maxBudget)
}
