package delegate

import "context"

// adaptiveCutover is the depth at which the adaptive strategy switches from
// parallel BFS exploration to sequential DFS drill-down.
const adaptiveCutover = 2

// adaptiveStrategy is a thin router over the other two disciplines: broad
// parallel exploration near the root, focused sequential descent once a
// branch has been chosen. It inherits every bound of whichever
// sub-strategy is active.
type adaptiveStrategy struct {
	bfs bfsStrategy
	dfs dfsStrategy
}

func (s *adaptiveStrategy) run(ctx context.Context, r *run, root TaskSpec) StopReason {
	reason, cut, stopped := s.bfs.walk(ctx, r, root, adaptiveCutover)
	if stopped {
		return reason
	}
	for _, node := range cut {
		reason, stopped := s.dfs.descend(ctx, r, node.spec, node.depth+1)
		if stopped {
			return reason
		}
	}
	return StopCompleted
}
