package delegate

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateID(t *testing.T) {
	id := GenerateID(PrefixRun)
	assert.True(t, strings.HasPrefix(id, "run_"), id)

	parts := strings.Split(id, "_")
	assert.Len(t, parts, 3)
	assert.Len(t, parts[2], 16)
}

func TestGenerateID_Unique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := GenerateID(PrefixAgent)
		assert.False(t, seen[id])
		seen[id] = true
	}
}
