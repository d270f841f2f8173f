package delegate

import (
	"context"
	"fmt"
	"strings"
)

// Mode selects the traversal discipline for a run.
type Mode int

const (
	// ModeBFS expands each node's children concurrently, level by level.
	ModeBFS Mode = iota
	// ModeDFS descends one branch fully before backtracking.
	ModeDFS
	// ModeAdaptive uses BFS near the root and DFS below depth 2.
	ModeAdaptive
)

// String returns the mode's wire name.
func (m Mode) String() string {
	switch m {
	case ModeBFS:
		return "bfs"
	case ModeDFS:
		return "dfs"
	case ModeAdaptive:
		return "adaptive"
	}
	return fmt.Sprintf("mode(%d)", int(m))
}

// ParseMode converts a mode name to a Mode. Matching is case-insensitive.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(s) {
	case "bfs":
		return ModeBFS, nil
	case "dfs":
		return ModeDFS, nil
	case "adaptive":
		return ModeAdaptive, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownMode, s)
}

// strategy walks a requested task tree within the run's budget. run returns
// the stop reason, or "" for a natural finish. Strategies are stateless;
// all mutable state lives on the run.
type strategy interface {
	run(ctx context.Context, r *run, root TaskSpec) StopReason
}

// strategyFor maps a Mode to its implementation.
func strategyFor(mode Mode) (strategy, error) {
	switch mode {
	case ModeBFS:
		return &bfsStrategy{}, nil
	case ModeDFS:
		return &dfsStrategy{}, nil
	case ModeAdaptive:
		return &adaptiveStrategy{}, nil
	}
	return nil, fmt.Errorf("%w: %d", ErrUnknownMode, int(mode))
}
