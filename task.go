package delegate

// TaskSpec is a node in a requested delegation tree: the agent to run, the
// prompt to hand it, and an optional ordered list of child tasks. TaskSpecs
// are immutable inputs owned by the caller; the engine never mutates them.
type TaskSpec struct {
	// Agent is the name of the agent to execute, resolved by the registry
	// when one is configured.
	Agent string

	// Prompt is the instruction handed to the agent for this node.
	Prompt string

	// Children are expanded after this node executes, in order, subject to
	// the run's breadth and total-agent budget.
	Children []TaskSpec
}

// countNodes returns the total number of nodes in the spec tree, the root
// included. Used only for sizing pre-allocations; budgets bound the actual
// spawn count.
func countNodes(spec TaskSpec) int {
	n := 1
	for _, c := range spec.Children {
		n += countNodes(c)
	}
	return n
}
