package services

import (
	"github.com/NewJerseyStyle/TheBlueprint-Project/internal/domain/canvas"
)

// QuestionHint is attached to every question node created from a parent.
const QuestionHint = "Anyone can propose a drafted next step. Click + or draw an arrow to create one."

// DefaultTitle returns the title given to a child created without one.
func DefaultTitle(state canvas.NodeState) string {
	switch state {
	case canvas.StateQuestion:
		return "What should we do next?"
	case canvas.StateDraft:
		return "New proposal"
	case canvas.StateDecision:
		return "New decision"
	case canvas.StateDoing:
		return "New action"
	default:
		return "New " + string(state) + " node"
	}
}

// ChildSpec describes a child node to create under a parent.
type ChildSpec struct {
	State     canvas.NodeState
	Title     string
	Placement Placement
	Ghost     bool
	IsAI      bool
}

// NewChildNode builds the node for spec with the given id.
func NewChildNode(id, parentID string, spec ChildSpec) canvas.Node {
	title := spec.Title
	if title == "" {
		title = DefaultTitle(spec.State)
	}
	data := canvas.StrategicData{
		Title:             title,
		State:             spec.State,
		IsGhost:           spec.Ghost,
		IsSystemGenerated: spec.IsAI,
	}
	if spec.Ghost {
		data.GhostParentID = parentID
	}
	if spec.State == canvas.StateQuestion {
		data.QuestionHint = QuestionHint
	}
	if spec.State == canvas.StateDraft {
		empty := ""
		data.SearchQuery = &empty
	}
	n := canvas.NewStrategicNode(id, spec.Placement.Position, data)
	n.LaneID = spec.Placement.LaneID
	return n
}

// NewChildEdge links parent to a freshly created child. Children of a doing
// parent get the active stroke; drafts and ghosts are dashed; ghosts are
// provisional and translucent.
func NewChildEdge(id string, parent canvas.Node, childID string, childState canvas.NodeState, ghost bool) canvas.Edge {
	parentDoing := parent.State() == canvas.StateDoing
	e := canvas.Edge{
		ID:          id,
		Source:      parent.ID,
		Target:      childID,
		Animated:    parentDoing && !ghost,
		Provisional: ghost,
		Style: canvas.EdgeStyle{
			Stroke:      canvas.StrokeNeutral,
			StrokeWidth: canvas.WidthDefault,
			Opacity:     canvas.OpacityFull,
		},
	}
	if parentDoing {
		e.Style.Stroke = canvas.StrokeActive
		e.Style.StrokeWidth = canvas.WidthEmphasis
	}
	if ghost {
		e.Style.Opacity = canvas.OpacityGhost
	}
	if childState == canvas.StateDraft || ghost {
		e.Style.Dash = canvas.DashProvisional
	}
	return e
}

// NewConnectionEdge builds a user-drawn edge. An edge ending at a goal is an
// uncertain path labelled "path TBD"; an edge leaving a draft is dashed.
func NewConnectionEdge(id string, source, target canvas.Node, sourceHandle, targetHandle string) canvas.Edge {
	toGoal := target.State() == canvas.StateGoal
	fromDraft := source.State() == canvas.StateDraft

	e := canvas.Edge{
		ID:           id,
		Source:       source.ID,
		Target:       target.ID,
		SourceHandle: sourceHandle,
		TargetHandle: targetHandle,
		IsPathTBD:    toGoal,
		Style: canvas.EdgeStyle{
			Stroke:      canvas.StrokeNeutral,
			StrokeWidth: canvas.WidthDefault,
			Opacity:     canvas.OpacityFull,
		},
	}
	if toGoal {
		e.Label = canvas.LabelPathTBD
		e.Style.Stroke = canvas.StrokePathTBD
		e.Style.StrokeWidth = canvas.WidthEmphasis
	}
	if toGoal || fromDraft {
		e.Style.Dash = canvas.DashUncertain
	}
	return e
}
