package claudeexec

import (
	"sync"
	"testing"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestModelPricing_Cost(t *testing.T) {
	p := ModelPricing{
		InputPerMTok:  decimal.NewFromInt(3),
		OutputPerMTok: decimal.NewFromInt(15),
	}

	// 1M input + 1M output at $3/$15.
	cost := p.Cost(1_000_000, 1_000_000)
	assert.True(t, cost.Equal(decimal.NewFromInt(18)), "got %s", cost)

	// 500 input + 2000 output: 0.0015 + 0.03.
	cost = p.Cost(500, 2000)
	assert.True(t, cost.Equal(decimal.NewFromFloat(0.0315)), "got %s", cost)
}

func TestCostTracker_RecordAccumulates(t *testing.T) {
	tracker := NewCostTracker(decimal.Zero, nil)

	tracker.Record(anthropic.ModelClaudeSonnet4_5, Usage{InputTokens: 1000, OutputTokens: 500})
	tracker.Record(anthropic.ModelClaudeSonnet4_5, Usage{InputTokens: 2000, OutputTokens: 1000})

	usage := tracker.TotalUsage()
	assert.Equal(t, int64(3000), usage.InputTokens)
	assert.Equal(t, int64(1500), usage.OutputTokens)
	assert.Equal(t, 2, tracker.Calls())

	// 3000*3/1M + 1500*15/1M = 0.009 + 0.0225.
	assert.True(t, tracker.TotalCost().Equal(decimal.NewFromFloat(0.0315)), "got %s", tracker.TotalCost())
}

func TestCostTracker_UnknownModelCountedNotPriced(t *testing.T) {
	tracker := NewCostTracker(decimal.Zero, nil)
	tracker.Record("someone-elses-model", Usage{InputTokens: 1_000_000, OutputTokens: 1_000_000})

	assert.Equal(t, 1, tracker.Calls())
	assert.Equal(t, int64(1_000_000), tracker.TotalUsage().InputTokens)
	assert.True(t, tracker.TotalCost().IsZero())
}

func TestCostTracker_Exhausted(t *testing.T) {
	tracker := NewCostTracker(decimal.NewFromFloat(0.01), nil)
	assert.False(t, tracker.Exhausted())

	tracker.Record(anthropic.ModelClaudeSonnet4_5, Usage{InputTokens: 1000, OutputTokens: 1000})
	assert.True(t, tracker.Exhausted(), "cost %s should exceed 0.01", tracker.TotalCost())
}

func TestCostTracker_ZeroBudgetNeverExhausts(t *testing.T) {
	tracker := NewCostTracker(decimal.Zero, nil)
	tracker.Record(anthropic.ModelClaudeOpus4_6, Usage{InputTokens: 10_000_000, OutputTokens: 10_000_000})
	assert.False(t, tracker.Exhausted())
}

func TestCostTracker_ConcurrentRecord(t *testing.T) {
	tracker := NewCostTracker(decimal.Zero, nil)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tracker.Record(anthropic.ModelClaudeHaiku4_5, Usage{InputTokens: 100, OutputTokens: 10})
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, tracker.Calls())
	assert.Equal(t, int64(5000), tracker.TotalUsage().InputTokens)
}
