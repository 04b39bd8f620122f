package services

import "github.com/NewJerseyStyle/TheBlueprint-Project/internal/domain/canvas"

// LookaheadEvaluator decides whether a node should advertise the
// "suggest next step" hint.
type LookaheadEvaluator struct {
	maxDepth int
}

// NewLookaheadEvaluator creates an evaluator that follows at most maxDepth
// hops of outgoing edges.
func NewLookaheadEvaluator(maxDepth int) *LookaheadEvaluator {
	if maxDepth < 1 {
		maxDepth = 1
	}
	return &LookaheadEvaluator{maxDepth: maxDepth}
}

// ShouldShowHint reports whether the hint is shown for nodeID.
func (l *LookaheadEvaluator) ShouldShowHint(snap canvas.Snapshot, nodeID string) bool {
	node, ok := snap.Node(nodeID)
	if !ok || !node.IsStrategic() || node.IsGhost() || node.State().IsTerminal() {
		return false
	}
	if node.Strategic.ForceSuggestionShow {
		return true
	}
	for _, e := range snap.Outgoing(nodeID) {
		if e.IsPathTBD {
			return true
		}
	}
	if l.HasActivePath(snap, nodeID) {
		return false
	}
	s := node.State()
	return s == canvas.StateBegin || s == canvas.StateQuestion
}

// HasActivePath walks outgoing edges breadth first, at most maxDepth hops,
// looking for a doing or decision node with an assignee. Each node is
// expanded once so cycles terminate.
func (l *LookaheadEvaluator) HasActivePath(snap canvas.Snapshot, nodeID string) bool {
	byID := make(map[string]canvas.Node, len(snap.Nodes))
	for _, n := range snap.Nodes {
		byID[n.ID] = n
	}
	out := make(map[string][]string)
	for _, e := range snap.Edges {
		out[e.Source] = append(out[e.Source], e.Target)
	}

	visited := map[string]bool{nodeID: true}
	frontier := []string{nodeID}
	for depth := 0; depth < l.maxDepth && len(frontier) > 0; depth++ {
		var next []string
		for _, id := range frontier {
			for _, target := range out[id] {
				n, ok := byID[target]
				if !ok {
					continue
				}
				if isActive(n) {
					return true
				}
				if !visited[target] {
					visited[target] = true
					next = append(next, target)
				}
			}
		}
		frontier = next
	}
	return false
}

func isActive(n canvas.Node) bool {
	if !n.IsStrategic() || n.Strategic.AssigneeID == "" {
		return false
	}
	return n.Strategic.State == canvas.StateDoing || n.Strategic.State == canvas.StateDecision
}
