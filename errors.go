package delegate

import "errors"

// Sentinel errors returned by the delegation engine.
var (
	// ErrInvalidBudget indicates a budget with a non-positive field. It is a
	// configuration error: the run never starts and no Result is produced.
	ErrInvalidBudget = errors.New("delegate: invalid budget")

	// ErrUnknownMode indicates an unrecognized traversal mode.
	ErrUnknownMode = errors.New("delegate: unknown traversal mode")

	// ErrNoExecutor indicates an engine constructed without an Executor.
	ErrNoExecutor = errors.New("delegate: no executor configured")

	// ErrAgentNotFound indicates the registry could not resolve an agent name.
	ErrAgentNotFound = errors.New("delegate: agent not found")
)
