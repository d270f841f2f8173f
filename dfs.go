package delegate

import "context"

// dfsStrategy walks the tree sequentially, descending fully into each
// branch before moving to the next sibling. Depth bookkeeping is symmetric:
// the context depth is restored after every recursive return.
type dfsStrategy struct{}

func (s *dfsStrategy) run(ctx context.Context, r *run, root TaskSpec) StopReason {
	if reason, stop := r.checkBoundaries(); stop {
		return reason
	}
	r.rc.iterations++
	out, ok := r.executeNode(ctx, root, 0)
	if ok {
		if reason, converged := r.observeBatch([]*AgentOutcome{out}); converged {
			return reason
		}
	}
	if reason, stopped := s.descend(ctx, r, root, 1); stopped {
		return reason
	}
	return StopCompleted
}

// descend executes spec's children in order at the given depth, recursing
// into each child's branch before moving on. It observes after every child
// so convergence returns immediately without visiting remaining siblings.
// The bool result reports whether the whole run should stop.
func (s *dfsStrategy) descend(ctx context.Context, r *run, spec TaskSpec, depth int) (StopReason, bool) {
	if len(spec.Children) == 0 {
		return "", false
	}

	r.rc.depth = depth
	if reason, stop := r.checkBoundaries(); stop {
		return reason, true
	}
	r.rc.iterations++

	for _, child := range spec.Children {
		// Cumulative spawn budget exhausted: stop iterating children, not
		// the whole run. Already-visited siblings keep their results.
		if r.rc.remainingSpawns(r.budget) <= 0 {
			break
		}

		out, ok := r.executeNode(ctx, child, depth)
		if ok {
			if reason, converged := r.observeBatch([]*AgentOutcome{out}); converged {
				return reason, true
			}
		}

		if len(child.Children) > 0 {
			reason, stopped := s.descend(ctx, r, child, depth+1)
			r.rc.depth = depth
			if stopped {
				return reason, true
			}
		}
	}
	return "", false
}
