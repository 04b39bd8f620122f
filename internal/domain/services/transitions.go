package services

import "github.com/NewJerseyStyle/TheBlueprint-Project/internal/domain/canvas"

// StateTransitionManager applies node state changes and rewrites the styling
// of incident edges. Any state may follow any other.
type StateTransitionManager struct{}

func NewStateTransitionManager() *StateTransitionManager {
	return &StateTransitionManager{}
}

// Apply sets nodeID to state. Entering doing activates every incident edge;
// entering history deletes the node's dashed outgoing edges and grays the rest.
// A node entering a terminal state loses the ghosts proposed from it, with
// their provisional edges. Provisional edges are never restyled.
// The boolean is false when the node is absent or not strategic.
func (m *StateTransitionManager) Apply(snap canvas.Snapshot, nodeID string, state canvas.NodeState) (canvas.Snapshot, bool) {
	node, ok := snap.Node(nodeID)
	if !ok || !node.IsStrategic() {
		return snap, false
	}

	if state.IsTerminal() {
		snap = withoutGhostsOf(snap, nodeID)
	}
	next, _ := snap.MapNode(nodeID, func(n *canvas.Node) {
		n.Strategic.State = state
	})

	switch state {
	case canvas.StateDoing:
		next = next.WithEdges(activate(snap.Edges, nodeID))
	case canvas.StateHistory:
		next = next.WithEdges(archive(snap.Edges, nodeID))
	}
	return next, true
}

func activate(edges []canvas.Edge, nodeID string) []canvas.Edge {
	out := make([]canvas.Edge, len(edges))
	for i, e := range edges {
		switch {
		case e.Provisional:
		case e.Target == nodeID:
			e.Animated = true
			e.Style.Stroke = canvas.StrokeActive
			e.Style.StrokeWidth = canvas.WidthEmphasis
			e.Style.Dash = ""
		case e.Source == nodeID:
			keepDash := e.Uncertain()
			e.Animated = true
			e.Style.Stroke = canvas.StrokeActive
			e.Style.StrokeWidth = canvas.WidthEmphasis
			if keepDash {
				e.Style.Dash = canvas.DashUncertain
			} else {
				e.Style.Dash = ""
			}
		}
		out[i] = e
	}
	return out
}

func archive(edges []canvas.Edge, nodeID string) []canvas.Edge {
	out := make([]canvas.Edge, 0, len(edges))
	for _, e := range edges {
		if e.Provisional {
			out = append(out, e)
			continue
		}
		if e.Source == nodeID && e.Style.Dashed() {
			continue
		}
		if e.Touches(nodeID) {
			e.Animated = false
			e.Style.Stroke = canvas.StrokeArchived
			e.Style.StrokeWidth = canvas.WidthDefault
		}
		out = append(out, e)
	}
	return out
}

func withoutGhostsOf(snap canvas.Snapshot, parentID string) canvas.Snapshot {
	gone := make(map[string]bool)
	nodes := make([]canvas.Node, 0, len(snap.Nodes))
	for _, n := range snap.Nodes {
		if n.IsGhost() && n.Strategic.GhostParentID == parentID {
			gone[n.ID] = true
			continue
		}
		nodes = append(nodes, n)
	}
	if len(gone) == 0 {
		return snap
	}
	edges := make([]canvas.Edge, 0, len(snap.Edges))
	for _, e := range snap.Edges {
		if gone[e.Source] || gone[e.Target] {
			continue
		}
		edges = append(edges, e)
	}
	return canvas.Snapshot{Nodes: nodes, Edges: edges, Version: snap.Version}
}
