package canvas

import (
	"fmt"

	apperrors "github.com/NewJerseyStyle/TheBlueprint-Project/internal/errors"
)

// Snapshot is an immutable view of the canvas graph. Transforms return a new
// Snapshot and never write through the slices or payloads of their input.
type Snapshot struct {
	Nodes   []Node `json:"nodes"`
	Edges   []Edge `json:"edges"`
	Version uint64 `json:"version"`
}

// EmptySnapshot returns a snapshot with no nodes or edges.
func EmptySnapshot() Snapshot {
	return Snapshot{Nodes: []Node{}, Edges: []Edge{}}
}

// Node looks up a node by id.
func (s Snapshot) Node(id string) (Node, bool) {
	for _, n := range s.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return Node{}, false
}

// Lanes returns every lane node in snapshot order.
func (s Snapshot) Lanes() []Node {
	var out []Node
	for _, n := range s.Nodes {
		if n.Kind == KindLane {
			out = append(out, n)
		}
	}
	return out
}

// Members returns the nodes whose enclosing lane is laneID.
func (s Snapshot) Members(laneID string) []Node {
	var out []Node
	for _, n := range s.Nodes {
		if n.LaneID == laneID {
			out = append(out, n)
		}
	}
	return out
}

// Ghosts returns every ghost node.
func (s Snapshot) Ghosts() []Node {
	var out []Node
	for _, n := range s.Nodes {
		if n.IsGhost() {
			out = append(out, n)
		}
	}
	return out
}

// Outgoing returns the edges whose source is id.
func (s Snapshot) Outgoing(id string) []Edge {
	var out []Edge
	for _, e := range s.Edges {
		if e.Source == id {
			out = append(out, e)
		}
	}
	return out
}

// Incoming returns the edges whose target is id.
func (s Snapshot) Incoming(id string) []Edge {
	var out []Edge
	for _, e := range s.Edges {
		if e.Target == id {
			out = append(out, e)
		}
	}
	return out
}

// HasEdge reports whether an edge source->target exists.
func (s Snapshot) HasEdge(source, target string) bool {
	for _, e := range s.Edges {
		if e.Source == source && e.Target == target {
			return true
		}
	}
	return false
}

// WithNodes returns a copy of s using nodes.
func (s Snapshot) WithNodes(nodes []Node) Snapshot {
	s.Nodes = nodes
	return s
}

// WithEdges returns a copy of s using edges.
func (s Snapshot) WithEdges(edges []Edge) Snapshot {
	s.Edges = edges
	return s
}

// MapNode returns a snapshot where the node id is replaced by fn applied to a
// clone of it. The boolean is false when the node does not exist.
func (s Snapshot) MapNode(id string, fn func(*Node)) (Snapshot, bool) {
	idx := -1
	for i, n := range s.Nodes {
		if n.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return s, false
	}
	nodes := make([]Node, len(s.Nodes))
	copy(nodes, s.Nodes)
	c := nodes[idx].Clone()
	fn(&c)
	nodes[idx] = c
	return s.WithNodes(nodes), true
}

// AbsolutePosition returns the canvas-absolute position of n. A lane that is
// no longer present is treated as the origin.
func (s Snapshot) AbsolutePosition(n Node) Point {
	if !n.InLane() {
		return n.Position
	}
	if lane, ok := s.Node(n.LaneID); ok {
		return lane.Position.Add(n.Position)
	}
	return n.Position
}

// WithoutNode removes id and every edge incident to it. Ghosts proposed from
// the node go with it, together with their provisional edges. Removing a lane
// moves its members to the top level at their absolute position.
func (s Snapshot) WithoutNode(id string) (Snapshot, bool) {
	target, ok := s.Node(id)
	if !ok {
		return s, false
	}

	removed := map[string]bool{id: true}
	for _, n := range s.Nodes {
		if n.IsGhost() && n.Strategic.GhostParentID == id {
			removed[n.ID] = true
		}
	}

	nodes := make([]Node, 0, len(s.Nodes))
	for _, n := range s.Nodes {
		if removed[n.ID] {
			continue
		}
		if target.Kind == KindLane && n.LaneID == id {
			c := n.Clone()
			c.Position = target.Position.Add(n.Position)
			c.LaneID = ""
			n = c
		}
		nodes = append(nodes, n)
	}

	edges := make([]Edge, 0, len(s.Edges))
	for _, e := range s.Edges {
		if removed[e.Source] || removed[e.Target] {
			continue
		}
		edges = append(edges, e)
	}

	return Snapshot{Nodes: nodes, Edges: edges, Version: s.Version}, true
}

// Reconcile drops what the node list of s no longer supports: ghosts whose
// parent is gone, then every edge with a missing endpoint. Members of a lane
// that prev had but s lacks move to the top level at their absolute position.
func (s Snapshot) Reconcile(prev Snapshot) Snapshot {
	byID := make(map[string]Node, len(s.Nodes))
	for _, n := range s.Nodes {
		byID[n.ID] = n
	}

	nodes := make([]Node, 0, len(s.Nodes))
	present := make(map[string]bool, len(s.Nodes))
	for _, n := range s.Nodes {
		if n.IsGhost() {
			parent, ok := byID[n.Strategic.GhostParentID]
			if !ok || parent.IsGhost() {
				continue
			}
		}
		if n.LaneID != "" {
			if lane, ok := byID[n.LaneID]; !ok || lane.Kind != KindLane {
				c := n.Clone()
				if old, ok := prev.Node(n.LaneID); ok && old.Kind == KindLane {
					c.Position = old.Position.Add(n.Position)
				}
				c.LaneID = ""
				n = c
			}
		}
		present[n.ID] = true
		nodes = append(nodes, n)
	}

	edges := make([]Edge, 0, len(s.Edges))
	for _, e := range s.Edges {
		if present[e.Source] && present[e.Target] {
			edges = append(edges, e)
		}
	}
	return Snapshot{Nodes: nodes, Edges: edges, Version: s.Version}
}

// Validate checks the referential invariants of the graph: unique node ids,
// no dangling edges, ghost parents present and real, lane references valid.
func (s Snapshot) Validate() error {
	byID := make(map[string]Node, len(s.Nodes))
	for _, n := range s.Nodes {
		if _, dup := byID[n.ID]; dup {
			return invalid("duplicate node id", n.ID)
		}
		byID[n.ID] = n
		switch n.Kind {
		case KindStrategic:
			if n.Strategic == nil {
				return invalid("strategic node without payload", n.ID)
			}
			if !n.Strategic.State.Valid() {
				return invalid(fmt.Sprintf("unknown state %q", n.Strategic.State), n.ID)
			}
		case KindLane:
			if n.Lane == nil {
				return invalid("lane without payload", n.ID)
			}
		default:
			return invalid(fmt.Sprintf("unknown node kind %q", n.Kind), n.ID)
		}
	}

	for _, n := range s.Nodes {
		if n.LaneID != "" {
			lane, ok := byID[n.LaneID]
			if !ok || lane.Kind != KindLane {
				return invalid("lane reference does not resolve to a lane", n.ID)
			}
		}
		if n.IsGhost() {
			parent, ok := byID[n.Strategic.GhostParentID]
			if !ok || parent.IsGhost() {
				return invalid("ghost parent is not a present real node", n.ID)
			}
		}
	}

	edgeIDs := make(map[string]bool, len(s.Edges))
	for _, e := range s.Edges {
		if edgeIDs[e.ID] {
			return invalid("duplicate edge id", e.ID)
		}
		edgeIDs[e.ID] = true
		if _, ok := byID[e.Source]; !ok {
			return apperrors.Validation(apperrors.CodeDanglingEdge, "edge source missing").
				WithResource(e.ID).Build()
		}
		if _, ok := byID[e.Target]; !ok {
			return apperrors.Validation(apperrors.CodeDanglingEdge, "edge target missing").
				WithResource(e.ID).Build()
		}
	}
	return nil
}

func invalid(msg, resource string) error {
	return apperrors.Validation(apperrors.CodeInvalidSnapshot, msg).WithResource(resource).Build()
}
