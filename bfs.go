package delegate

import "context"

// levelNode pairs an executed spec with the depth it ran at. Its children,
// if any, expand at depth+1.
type levelNode struct {
	spec  TaskSpec
	depth int
}

// bfsStrategy walks the tree level by level, executing each node's children
// concurrently. Breadth limiting is per expansion: children beyond
// MaxBreadth (or beyond the remaining total-agent budget) are dropped, not
// queued.
type bfsStrategy struct{}

func (s *bfsStrategy) run(ctx context.Context, r *run, root TaskSpec) StopReason {
	reason, _, stopped := s.walk(ctx, r, root, 0)
	if stopped {
		return reason
	}
	return StopCompleted
}

// walk executes the root and then expands the frontier one node at a time.
// With levelCap > 0 it does not expand into depths at or beyond the cap and
// instead returns those nodes unexpanded; the adaptive strategy hands them
// to DFS.
func (s *bfsStrategy) walk(ctx context.Context, r *run, root TaskSpec, levelCap int) (StopReason, []levelNode, bool) {
	if reason, stop := r.checkBoundaries(); stop {
		return reason, nil, true
	}
	r.rc.iterations++
	out, ok := r.executeNode(ctx, root, 0)
	if ok {
		if reason, converged := r.observeBatch([]*AgentOutcome{out}); converged {
			return reason, nil, true
		}
	}

	var cut []levelNode
	frontier := []levelNode{{spec: root, depth: 0}}
	for len(frontier) > 0 {
		node := frontier[0]
		frontier = frontier[1:]
		if len(node.spec.Children) == 0 {
			continue
		}

		childDepth := node.depth + 1
		if levelCap > 0 && childDepth >= levelCap {
			cut = append(cut, node)
			continue
		}

		r.rc.depth = childDepth
		if reason, stop := r.checkBoundaries(); stop {
			return reason, cut, true
		}
		r.rc.iterations++

		children := node.spec.Children
		if len(children) > r.budget.MaxBreadth {
			children = children[:r.budget.MaxBreadth]
		}
		if remaining := r.rc.remainingSpawns(r.budget); len(children) > remaining {
			children = children[:remaining]
		}

		batch := r.executeBatch(ctx, children, childDepth)
		if reason, converged := r.observeBatch(batch); converged {
			return reason, cut, true
		}

		for _, child := range children {
			frontier = append(frontier, levelNode{spec: child, depth: childDepth})
		}
	}
	return "", cut, false
}
