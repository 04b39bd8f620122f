package services

import (
	"github.com/NewJerseyStyle/TheBlueprint-Project/internal/domain/canvas"
	"github.com/NewJerseyStyle/TheBlueprint-Project/internal/domain/shared"
)

// GhostLifecycleManager materializes suggestions as provisional nodes and
// later realizes one of them or clears them all.
type GhostLifecycleManager struct {
	geometry *GeometryResolver
}

func NewGhostLifecycleManager(geometry *GeometryResolver) *GhostLifecycleManager {
	return &GhostLifecycleManager{geometry: geometry}
}

// Clear removes every ghost node and every provisional edge. The boolean is
// false when there was nothing to remove.
func (m *GhostLifecycleManager) Clear(snap canvas.Snapshot) (canvas.Snapshot, bool) {
	changed := false
	nodes := make([]canvas.Node, 0, len(snap.Nodes))
	for _, n := range snap.Nodes {
		if n.IsGhost() {
			changed = true
			continue
		}
		nodes = append(nodes, n)
	}
	edges := make([]canvas.Edge, 0, len(snap.Edges))
	for _, e := range snap.Edges {
		if e.Provisional {
			changed = true
			continue
		}
		edges = append(edges, e)
	}
	if !changed {
		return snap, false
	}
	return canvas.Snapshot{Nodes: nodes, Edges: edges, Version: snap.Version}, true
}

// Materialize clears any earlier ghosts and adds one ghost node plus one
// provisional edge per suggestion. drop, when set, is an absolute canvas point
// that replaces the resolved placement. Ghost i is offset by i times the
// configured stagger. Suggestions with an unknown state are skipped. It
// returns the ids of the new ghosts in suggestion order.
func (m *GhostLifecycleManager) Materialize(
	snap canvas.Snapshot,
	sourceID string,
	suggestions []Suggestion,
	drop *canvas.Point,
	ids shared.IDGenerator,
) (canvas.Snapshot, []string) {
	base, _ := m.Clear(snap)
	source, ok := base.Node(sourceID)
	if !ok || !source.IsStrategic() {
		return base, nil
	}

	cfg := m.geometry.Config()
	nodes := append([]canvas.Node(nil), base.Nodes...)
	edges := append([]canvas.Edge(nil), base.Edges...)
	var ghostIDs []string

	for _, s := range suggestions {
		if !s.State.Valid() {
			continue
		}

		targetLane := source.LaneID
		if s.LaneShift == LaneShiftNext && source.InLane() {
			if next, ok := m.geometry.NextLane(source.LaneID, base.Nodes); ok {
				targetLane = next.ID
			}
		}

		var placement Placement
		if drop != nil {
			placement = Placement{
				Position: m.geometry.ToLaneFrame(*drop, targetLane, base.Nodes),
				LaneID:   targetLane,
			}
		} else {
			placement = m.geometry.ResolveChildPosition(source, base.Nodes, targetLane)
		}

		k := float64(len(ghostIDs))
		placement.Position = placement.Position.Add(canvas.Point{X: k * cfg.GhostStaggerX, Y: k * cfg.GhostStaggerY})

		ghostID := ids.NewID("ghost")
		nodes = append(nodes, NewChildNode(ghostID, source.ID, ChildSpec{
			State:     s.State,
			Title:     s.Title,
			Placement: placement,
			Ghost:     true,
			IsAI:      s.IsAI,
		}))
		edges = append(edges, NewChildEdge(ids.NewID("edge"), source, ghostID, s.State, true))
		ghostIDs = append(ghostIDs, ghostID)
	}

	return canvas.Snapshot{Nodes: nodes, Edges: edges, Version: base.Version}, ghostIDs
}

// Realize promotes ghostID to a committed node in one transform: the other
// ghosts and provisional edges go, the ghost's inbound edge keeps its style
// and is committed under a fresh id at full opacity, and the parent's
// path-TBD edges move onto the realized node. The boolean is false when
// ghostID is not a ghost or its parent is missing or terminal.
func (m *GhostLifecycleManager) Realize(snap canvas.Snapshot, ghostID string, ids shared.IDGenerator) (canvas.Snapshot, bool) {
	ghost, ok := snap.Node(ghostID)
	if !ok || !ghost.IsGhost() {
		return snap, false
	}
	parentID := ghost.Strategic.GhostParentID
	parent, ok := snap.Node(parentID)
	if !ok || parent.State().IsTerminal() {
		return snap, false
	}

	nodes := make([]canvas.Node, 0, len(snap.Nodes))
	for _, n := range snap.Nodes {
		if n.ID == ghostID {
			c := n.Clone()
			c.Strategic.IsGhost = false
			c.Strategic.GhostParentID = ""
			nodes = append(nodes, c)
			continue
		}
		if n.IsGhost() {
			continue
		}
		nodes = append(nodes, n)
	}

	edges := make([]canvas.Edge, 0, len(snap.Edges))
	var transferred []canvas.Edge
	for _, e := range snap.Edges {
		switch {
		case e.Provisional && e.Source == parentID && e.Target == ghostID:
			committed := e
			committed.ID = ids.NewID("edge")
			committed.Provisional = false
			committed.Style.Opacity = canvas.OpacityFull
			edges = append(edges, committed)
		case e.Provisional:
			// belongs to a discarded ghost
		case e.Source == parentID && e.IsPathTBD:
			moved := e
			moved.ID = ids.NewID("edge")
			moved.Source = ghostID
			transferred = append(transferred, moved)
		default:
			edges = append(edges, e)
		}
	}
	edges = append(edges, transferred...)

	return canvas.Snapshot{Nodes: nodes, Edges: edges, Version: snap.Version}, true
}
