package delegate

import "time"

// Default budget values applied by DefaultBudget.
const (
	DefaultMaxDepth            = 3
	DefaultMaxBreadth          = 5
	DefaultMaxTotalAgents      = 20
	DefaultMaxWallTime         = 5 * time.Minute
	DefaultMaxIterations       = 50
	DefaultStagnationThreshold = 2
)

// DefaultEvidenceKeys are the structured-outcome fields the convergence
// tracker extracts when no explicit key set is configured.
var DefaultEvidenceKeys = []string{"result", "findings", "evidence"}
