package services

import (
	"github.com/NewJerseyStyle/TheBlueprint-Project/internal/domain/canvas"
	"github.com/NewJerseyStyle/TheBlueprint-Project/internal/domain/config"
	"github.com/NewJerseyStyle/TheBlueprint-Project/internal/domain/shared"
)

// Editor holds the direct editing gestures: adding children and roots,
// connecting, duplicating, dragging and toggling flags.
type Editor struct {
	geometry    *GeometryResolver
	transitions *StateTransitionManager
	cfg         config.DomainConfig
}

func NewEditor(geometry *GeometryResolver, transitions *StateTransitionManager, cfg config.DomainConfig) *Editor {
	return &Editor{geometry: geometry, transitions: transitions, cfg: cfg}
}

// ChildStates are the states offered by the "add connected node" menu.
var ChildStates = []canvas.NodeState{
	canvas.StateDraft, canvas.StateQuestion, canvas.StateDecision, canvas.StateDoing,
}

// AddChild creates a committed child of parentID with the default title for
// state. Terminal and ghost parents cannot be extended.
func (ed *Editor) AddChild(snap canvas.Snapshot, parentID string, state canvas.NodeState, title string, ids shared.IDGenerator) (canvas.Snapshot, string, bool) {
	parent, ok := snap.Node(parentID)
	if !ok || !parent.IsStrategic() || parent.IsGhost() || parent.State().IsTerminal() || !state.Valid() {
		return snap, "", false
	}

	placement := ed.geometry.ResolveChildPosition(parent, snap.Nodes, parent.LaneID)
	childID := ids.NewID("node")
	child := NewChildNode(childID, parentID, ChildSpec{State: state, Title: title, Placement: placement})
	edge := NewChildEdge(ids.NewID("edge"), parent, childID, state, false)

	next := snap.WithNodes(append(append([]canvas.Node(nil), snap.Nodes...), child))
	next = next.WithEdges(append(append([]canvas.Edge(nil), snap.Edges...), edge))
	return next, childID, true
}

// Connect adds a user-drawn edge between two strategic nodes. Self loops and
// duplicate connections are ignored.
func (ed *Editor) Connect(snap canvas.Snapshot, sourceID, targetID, sourceHandle, targetHandle string, ids shared.IDGenerator) (canvas.Snapshot, bool) {
	if sourceID == targetID || snap.HasEdge(sourceID, targetID) {
		return snap, false
	}
	source, ok := snap.Node(sourceID)
	if !ok || !source.IsStrategic() {
		return snap, false
	}
	target, ok := snap.Node(targetID)
	if !ok || !target.IsStrategic() {
		return snap, false
	}
	edge := NewConnectionEdge(ids.NewID("edge"), source, target, sourceHandle, targetHandle)
	return snap.WithEdges(append(append([]canvas.Edge(nil), snap.Edges...), edge)), true
}

// Duplicate copies a strategic node next to the original, in the same lane,
// without its comments.
func (ed *Editor) Duplicate(snap canvas.Snapshot, nodeID string, ids shared.IDGenerator) (canvas.Snapshot, string, bool) {
	orig, ok := snap.Node(nodeID)
	if !ok || !orig.IsStrategic() || orig.IsGhost() {
		return snap, "", false
	}
	g := ed.geometry.Config()
	dup := orig.Clone()
	dup.ID = ids.NewID("node")
	dup.Position = orig.Position.Add(canvas.Point{X: g.DuplicateOffsetX, Y: g.DuplicateOffsetY})
	dup.Strategic.Title = orig.Strategic.Title + " (copy)"
	dup.Strategic.Comments = []canvas.Comment{}
	return snap.WithNodes(append(append([]canvas.Node(nil), snap.Nodes...), dup)), dup.ID, true
}

// Drag applies a drag-end position, given in the node's current frame, and
// then re-evaluates lane membership. A lane only moves; its members keep
// their lane-relative positions.
func (ed *Editor) Drag(snap canvas.Snapshot, nodeID string, position canvas.Point) (canvas.Snapshot, bool) {
	node, ok := snap.Node(nodeID)
	if !ok {
		return snap, false
	}
	if node.IsLane() {
		if node.Position == position {
			return snap, false
		}
		return snap.MapNode(nodeID, func(n *canvas.Node) { n.Position = position })
	}
	if !node.IsStrategic() {
		return snap, false
	}
	node.Position = position
	drop := ed.geometry.ResolveDragDrop(node, snap.Nodes)
	return snap.MapNode(nodeID, func(n *canvas.Node) {
		n.Position = drop.Position
		n.LaneID = drop.LaneID
	})
}

// AddRoot creates a toolbar begin or goal node at an absolute point.
func (ed *Editor) AddRoot(snap canvas.Snapshot, state canvas.NodeState, at canvas.Point, ids shared.IDGenerator) (canvas.Snapshot, string, bool) {
	var title string
	switch state {
	case canvas.StateBegin:
		title = ed.cfg.Toolbar.BeginTitle
	case canvas.StateGoal:
		title = ed.cfg.Toolbar.GoalTitle
	default:
		return snap, "", false
	}
	n := canvas.NewStrategicNode(ids.NewID("node"), at, canvas.StrategicData{Title: title, State: state})
	return snap.WithNodes(append(append([]canvas.Node(nil), snap.Nodes...), n)), n.ID, true
}

// AddLane creates a toolbar swim lane at an absolute point. Lanes are kept
// ahead of strategic nodes so renderers draw them underneath.
func (ed *Editor) AddLane(snap canvas.Snapshot, at canvas.Point, ids shared.IDGenerator) (canvas.Snapshot, string) {
	tb := ed.cfg.Toolbar
	lane := canvas.NewLaneNode(ids.NewID("lane"), at, canvas.Size{Width: tb.LaneWidth, Height: tb.LaneHeight}, canvas.LaneData{
		Label:       tb.LaneLabel,
		Color:       tb.LaneColor,
		Orientation: canvas.OrientationVertical,
	})
	nodes := make([]canvas.Node, 0, len(snap.Nodes)+1)
	nodes = append(nodes, lane)
	nodes = append(nodes, snap.Nodes...)
	return snap.WithNodes(nodes), lane.ID
}

// Update merges patch into a strategic node. A state change in the patch
// goes through the state transition rules so incident edges follow.
func (ed *Editor) Update(snap canvas.Snapshot, nodeID string, patch canvas.NodePatch) (canvas.Snapshot, bool) {
	node, ok := snap.Node(nodeID)
	if !ok || !node.IsStrategic() || patch.Empty() {
		return snap, false
	}
	next := snap
	if patch.State != nil && *patch.State != node.State() {
		next, _ = ed.transitions.Apply(next, nodeID, *patch.State)
	}
	rest := patch
	rest.State = nil
	if rest.Empty() {
		return next, true
	}
	return next.MapNode(nodeID, func(n *canvas.Node) { rest.ApplyTo(n.Strategic) })
}

// UpdateLane merges patch into a lane.
func (ed *Editor) UpdateLane(snap canvas.Snapshot, laneID string, patch canvas.LanePatch) (canvas.Snapshot, bool) {
	lane, ok := snap.Node(laneID)
	if !ok || !lane.IsLane() {
		return snap, false
	}
	return snap.MapNode(laneID, func(n *canvas.Node) { patch.ApplyTo(n) })
}

// ToggleNextSmallGoal flips the emphasis flag. Several nodes may hold it.
func (ed *Editor) ToggleNextSmallGoal(snap canvas.Snapshot, nodeID string) (canvas.Snapshot, bool) {
	return ed.toggle(snap, nodeID, func(d *canvas.StrategicData) { d.IsNextSmallGoal = !d.IsNextSmallGoal })
}

// ToggleSuggestions flips the forced "suggest next step" hint.
func (ed *Editor) ToggleSuggestions(snap canvas.Snapshot, nodeID string) (canvas.Snapshot, bool) {
	return ed.toggle(snap, nodeID, func(d *canvas.StrategicData) { d.ForceSuggestionShow = !d.ForceSuggestionShow })
}

// ToggleLaneComments flips the lane's comment visibility.
func (ed *Editor) ToggleLaneComments(snap canvas.Snapshot, laneID string) (canvas.Snapshot, bool) {
	lane, ok := snap.Node(laneID)
	if !ok || !lane.IsLane() {
		return snap, false
	}
	show := !lane.Lane.ShowComments
	return ed.UpdateLane(snap, laneID, canvas.LanePatch{ShowComments: &show})
}

func (ed *Editor) toggle(snap canvas.Snapshot, nodeID string, fn func(*canvas.StrategicData)) (canvas.Snapshot, bool) {
	node, ok := snap.Node(nodeID)
	if !ok || !node.IsStrategic() {
		return snap, false
	}
	return snap.MapNode(nodeID, func(n *canvas.Node) { fn(n.Strategic) })
}

// AddComment appends c to a strategic node's thread and returns the comments
// that were already there.
func (ed *Editor) AddComment(snap canvas.Snapshot, nodeID string, c canvas.Comment) (canvas.Snapshot, []canvas.Comment, bool) {
	node, ok := snap.Node(nodeID)
	if !ok || !node.IsStrategic() || node.IsGhost() {
		return snap, nil, false
	}
	prior := append([]canvas.Comment(nil), node.Strategic.Comments...)
	next, ok := snap.MapNode(nodeID, func(n *canvas.Node) {
		n.Strategic.Comments = append(n.Strategic.Comments, c)
	})
	return next, prior, ok
}
