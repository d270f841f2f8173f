package delegate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBudgetValidate_AllPositive(t *testing.T) {
	assert.NoError(t, DefaultBudget().Validate())
	assert.NoError(t, testBudget().Validate())
}

func TestBudgetValidate_RejectsNonPositiveFields(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Budget)
		msg    string
	}{
		{"zero depth", func(b *Budget) { b.MaxDepth = 0 }, "max depth"},
		{"negative breadth", func(b *Budget) { b.MaxBreadth = -2 }, "max breadth"},
		{"zero total agents", func(b *Budget) { b.MaxTotalAgents = 0 }, "max total agents"},
		{"zero wall time", func(b *Budget) { b.MaxWallTime = 0 }, "max wall time"},
		{"negative wall time", func(b *Budget) { b.MaxWallTime = -time.Second }, "max wall time"},
		{"zero iterations", func(b *Budget) { b.MaxIterations = 0 }, "max iterations"},
		{"zero stagnation threshold", func(b *Budget) { b.StagnationThreshold = 0 }, "stagnation threshold"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			budget := DefaultBudget()
			tt.mutate(&budget)

			err := budget.Validate()
			require.ErrorIs(t, err, ErrInvalidBudget)
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}
