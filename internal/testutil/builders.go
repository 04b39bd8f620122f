// Package testutil provides fixture builders shared by package tests.
package testutil

import (
	"fmt"

	"github.com/NewJerseyStyle/TheBlueprint-Project/internal/domain/canvas"
)

// NodeBuilder helps create strategic test nodes with default values.
type NodeBuilder struct {
	node canvas.Node
}

func NewNodeBuilder(id string) *NodeBuilder {
	return &NodeBuilder{node: canvas.NewStrategicNode(id, canvas.Point{}, canvas.StrategicData{
		Title: "Test " + id,
		State: canvas.StateDraft,
	})}
}

func (b *NodeBuilder) WithState(state canvas.NodeState) *NodeBuilder {
	b.node.Strategic.State = state
	return b
}

func (b *NodeBuilder) WithTitle(title string) *NodeBuilder {
	b.node.Strategic.Title = title
	return b
}

func (b *NodeBuilder) At(x, y float64) *NodeBuilder {
	b.node.Position = canvas.Point{X: x, Y: y}
	return b
}

func (b *NodeBuilder) InLane(laneID string) *NodeBuilder {
	b.node.LaneID = laneID
	return b
}

func (b *NodeBuilder) WithAssignee(userID string) *NodeBuilder {
	b.node.Strategic.AssigneeID = userID
	return b
}

func (b *NodeBuilder) WithComments(comments ...canvas.Comment) *NodeBuilder {
	b.node.Strategic.Comments = append(b.node.Strategic.Comments, comments...)
	return b
}

func (b *NodeBuilder) AsGhostOf(parentID string) *NodeBuilder {
	b.node.Strategic.IsGhost = true
	b.node.Strategic.GhostParentID = parentID
	return b
}

func (b *NodeBuilder) ForceSuggestions() *NodeBuilder {
	b.node.Strategic.ForceSuggestionShow = true
	return b
}

func (b *NodeBuilder) Build() canvas.Node {
	return b.node.Clone()
}

// LaneBuilder helps create lane test nodes.
type LaneBuilder struct {
	node canvas.Node
}

func NewLaneBuilder(id string) *LaneBuilder {
	return &LaneBuilder{node: canvas.NewLaneNode(id, canvas.Point{}, canvas.Size{Width: 320, Height: 820},
		canvas.LaneData{Label: "Lane " + id, Orientation: canvas.OrientationVertical})}
}

func (b *LaneBuilder) At(x, y float64) *LaneBuilder {
	b.node.Position = canvas.Point{X: x, Y: y}
	return b
}

func (b *LaneBuilder) WithLabel(label string) *LaneBuilder {
	b.node.Lane.Label = label
	return b
}

func (b *LaneBuilder) WithSize(w, h float64) *LaneBuilder {
	b.node.Size = &canvas.Size{Width: w, Height: h}
	return b
}

func (b *LaneBuilder) WithoutSize() *LaneBuilder {
	b.node.Size = nil
	return b
}

func (b *LaneBuilder) Build() canvas.Node {
	return b.node.Clone()
}

// EdgeBuilder helps create test edges.
type EdgeBuilder struct {
	edge canvas.Edge
}

func NewEdgeBuilder(source, target string) *EdgeBuilder {
	return &EdgeBuilder{edge: canvas.Edge{
		ID:     fmt.Sprintf("e-%s-%s", source, target),
		Source: source,
		Target: target,
		Style: canvas.EdgeStyle{
			Stroke:      canvas.StrokeNeutral,
			StrokeWidth: canvas.WidthDefault,
			Opacity:     canvas.OpacityFull,
		},
	}}
}

func (b *EdgeBuilder) WithID(id string) *EdgeBuilder {
	b.edge.ID = id
	return b
}

// PathTBD marks the edge as an uncertain route to a goal.
func (b *EdgeBuilder) PathTBD() *EdgeBuilder {
	b.edge.IsPathTBD = true
	b.edge.Label = canvas.LabelPathTBD
	b.edge.Style.Stroke = canvas.StrokePathTBD
	b.edge.Style.StrokeWidth = canvas.WidthEmphasis
	b.edge.Style.Dash = canvas.DashUncertain
	return b
}

func (b *EdgeBuilder) Dashed(pattern string) *EdgeBuilder {
	b.edge.Style.Dash = pattern
	return b
}

func (b *EdgeBuilder) Provisional() *EdgeBuilder {
	b.edge.Provisional = true
	b.edge.Style.Opacity = canvas.OpacityGhost
	b.edge.Style.Dash = canvas.DashProvisional
	return b
}

func (b *EdgeBuilder) Build() canvas.Edge {
	return b.edge
}

// Snapshot assembles nodes and edges into a snapshot.
func Snapshot(nodes []canvas.Node, edges ...canvas.Edge) canvas.Snapshot {
	if edges == nil {
		edges = []canvas.Edge{}
	}
	return canvas.Snapshot{Nodes: nodes, Edges: edges}
}

// Nodes is a small helper for building node slices inline.
func Nodes(nodes ...canvas.Node) []canvas.Node {
	return nodes
}
