// Package services contains the pure graph rules of the canvas: placement,
// suggestions, lookahead, ghost lifecycle and state transitions. Every
// operation maps a canvas.Snapshot to a new one and never touches a store.
package services

import (
	"sort"

	"github.com/NewJerseyStyle/TheBlueprint-Project/internal/domain/canvas"
	"github.com/NewJerseyStyle/TheBlueprint-Project/internal/domain/config"
)

// Placement is where a new node goes: a position in the frame of LaneID,
// or absolute when LaneID is empty.
type Placement struct {
	Position canvas.Point
	LaneID   string
}

// DropResult is the outcome of a drag-end containment check.
type DropResult struct {
	Position canvas.Point
	LaneID   string
	Changed  bool
}

// GeometryResolver computes positions and lane membership.
type GeometryResolver struct {
	cfg config.Geometry
}

// NewGeometryResolver creates a resolver with the given offsets.
func NewGeometryResolver(cfg config.Geometry) *GeometryResolver {
	return &GeometryResolver{cfg: cfg}
}

// Config returns the offsets in use.
func (r *GeometryResolver) Config() config.Geometry {
	return r.cfg
}

// ResolveChildPosition places a child of parent. Rules in priority order:
// stack into a different target lane, stack below the lowest sibling inside
// the parent's lane, or go right of a top-level parent staggered by the
// number of top-level siblings.
func (r *GeometryResolver) ResolveChildPosition(parent canvas.Node, all []canvas.Node, targetLaneID string) Placement {
	px, py := parent.Position.X, parent.Position.Y

	if targetLaneID != "" && targetLaneID != parent.LaneID {
		maxY := r.cfg.LaneHeader
		members := 0
		for _, n := range all {
			if n.LaneID != targetLaneID {
				continue
			}
			members++
			if n.Position.Y > maxY {
				maxY = n.Position.Y
			}
		}
		gap := r.cfg.StackGap
		if members == 0 {
			gap = r.cfg.EmptyLaneGap
		}
		return Placement{
			Position: canvas.Point{X: r.cfg.LanePaddingX, Y: maxY + gap},
			LaneID:   targetLaneID,
		}
	}

	if parent.InLane() {
		maxY := py
		for _, n := range all {
			if n.Kind == canvas.KindStrategic && n.ID != parent.ID && n.LaneID == parent.LaneID && n.Position.Y > maxY {
				maxY = n.Position.Y
			}
		}
		return Placement{
			Position: canvas.Point{X: px, Y: maxY + r.cfg.InLaneGap},
			LaneID:   parent.LaneID,
		}
	}

	siblings := 0
	for _, n := range all {
		if n.Kind == canvas.KindStrategic && n.ID != parent.ID && !n.InLane() {
			siblings++
		}
	}
	return Placement{
		Position: canvas.Point{X: px + r.cfg.RightOffset, Y: py + float64(siblings)*r.cfg.SiblingStagger},
	}
}

// NextLane returns the lane immediately right of currentLaneID, lanes being
// ordered by ascending x.
func (r *GeometryResolver) NextLane(currentLaneID string, all []canvas.Node) (canvas.Node, bool) {
	var lanes []canvas.Node
	for _, n := range all {
		if n.Kind == canvas.KindLane {
			lanes = append(lanes, n)
		}
	}
	sort.SliceStable(lanes, func(i, j int) bool {
		return lanes[i].Position.X < lanes[j].Position.X
	})
	for i, l := range lanes {
		if l.ID == currentLaneID {
			if i+1 < len(lanes) {
				return lanes[i+1], true
			}
			return canvas.Node{}, false
		}
	}
	return canvas.Node{}, false
}

// AbsolutePosition returns the canvas-absolute position of n.
func (r *GeometryResolver) AbsolutePosition(n canvas.Node, all []canvas.Node) canvas.Point {
	return canvas.Snapshot{Nodes: all}.AbsolutePosition(n)
}

// LaneSize returns the lane extent, falling back to the configured default
// for lanes without a size.
func (r *GeometryResolver) LaneSize(lane canvas.Node) canvas.Size {
	size := canvas.Size{Width: r.cfg.DefaultLaneWidth, Height: r.cfg.DefaultLaneHeight}
	if lane.Size != nil {
		if lane.Size.Width > 0 {
			size.Width = lane.Size.Width
		}
		if lane.Size.Height > 0 {
			size.Height = lane.Size.Height
		}
	}
	return size
}

// ContainingLane returns the first lane whose box contains the absolute point.
func (r *GeometryResolver) ContainingLane(p canvas.Point, all []canvas.Node) (canvas.Node, bool) {
	for _, lane := range all {
		if lane.Kind != canvas.KindLane {
			continue
		}
		size := r.LaneSize(lane)
		lx, ly := lane.Position.X, lane.Position.Y
		if p.X >= lx && p.X <= lx+size.Width && p.Y >= ly && p.Y <= ly+size.Height {
			return lane, true
		}
	}
	return canvas.Node{}, false
}

// ResolveDragDrop re-evaluates lane membership for a node after a drag. The
// node's position is treated as a point.
func (r *GeometryResolver) ResolveDragDrop(node canvas.Node, all []canvas.Node) DropResult {
	unchanged := DropResult{Position: node.Position, LaneID: node.LaneID}
	if node.Kind != canvas.KindStrategic {
		return unchanged
	}

	abs := r.AbsolutePosition(node, all)
	if lane, ok := r.ContainingLane(abs, all); ok {
		if lane.ID == node.LaneID {
			return unchanged
		}
		return DropResult{Position: abs.Sub(lane.Position), LaneID: lane.ID, Changed: true}
	}
	if node.InLane() {
		return DropResult{Position: abs, Changed: true}
	}
	return unchanged
}

// ToLaneFrame translates an absolute point into the frame of laneID.
func (r *GeometryResolver) ToLaneFrame(p canvas.Point, laneID string, all []canvas.Node) canvas.Point {
	if laneID == "" {
		return p
	}
	for _, n := range all {
		if n.ID == laneID {
			return p.Sub(n.Position)
		}
	}
	return p
}
