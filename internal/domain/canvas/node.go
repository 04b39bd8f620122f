// Package canvas defines the node/edge model of a strategic planning canvas.
//
// Nodes are either strategic nodes (the plan's steps) or swim lanes that group
// them. A node inside a lane stores its position relative to the lane. All
// values are plain data: a Snapshot is never mutated after it is published, so
// every transform copies the nodes it touches via Clone.
package canvas

import "time"

// NodeKind discriminates the payload carried by a Node.
type NodeKind string

const (
	KindStrategic NodeKind = "strategic"
	KindLane      NodeKind = "lane"
)

// NodeState is the lifecycle state of a strategic node.
type NodeState string

const (
	StateBegin    NodeState = "begin"
	StateDraft    NodeState = "draft"
	StateQuestion NodeState = "question"
	StateDecision NodeState = "decision"
	StateDoing    NodeState = "doing"
	StateHistory  NodeState = "history"
	StateGoal     NodeState = "goal"
)

// AllStates lists every state in progress order.
var AllStates = []NodeState{
	StateBegin, StateDraft, StateQuestion, StateDecision, StateDoing, StateHistory, StateGoal,
}

// Valid reports whether s is a known state.
func (s NodeState) Valid() bool {
	for _, known := range AllStates {
		if s == known {
			return true
		}
	}
	return false
}

// IsTerminal reports whether the state never extends (goal, history).
func (s NodeState) IsTerminal() bool {
	return s == StateGoal || s == StateHistory
}

// Orientation of a swim lane.
type Orientation string

const (
	OrientationVertical   Orientation = "vertical"
	OrientationHorizontal Orientation = "horizontal"
)

// Point is a canvas coordinate.
type Point struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

func (p Point) Add(o Point) Point { return Point{X: p.X + o.X, Y: p.Y + o.Y} }
func (p Point) Sub(o Point) Point { return Point{X: p.X - o.X, Y: p.Y - o.Y} }

// Size is a width/height pair.
type Size struct {
	Width  float64 `json:"width" yaml:"width"`
	Height float64 `json:"height" yaml:"height"`
}

// Comment is a single entry in a node's discussion thread.
type Comment struct {
	ID         string    `json:"id" yaml:"id"`
	AuthorID   string    `json:"authorId" yaml:"authorId"`
	AuthorName string    `json:"authorName" yaml:"authorName"`
	Text       string    `json:"text" yaml:"text"`
	Timestamp  time.Time `json:"timestamp" yaml:"timestamp"`
}

// StrategicData is the payload of a strategic node.
type StrategicData struct {
	Title               string    `json:"title" yaml:"title"`
	Description         string    `json:"description" yaml:"description"`
	State               NodeState `json:"state" yaml:"state"`
	AssigneeID          string    `json:"assigneeId,omitempty" yaml:"assigneeId"`
	Comments            []Comment `json:"comments" yaml:"comments"`
	IsNextSmallGoal     bool      `json:"isNextSmallGoal" yaml:"isNextSmallGoal"`
	IsSystemGenerated   bool      `json:"isSystemGenerated" yaml:"isSystemGenerated"`
	IsGhost             bool      `json:"isGhost" yaml:"isGhost"`
	ForceSuggestionShow bool      `json:"forceSuggestionShow" yaml:"forceSuggestionShow"`
	GhostParentID       string    `json:"ghostParentId,omitempty" yaml:"ghostParentId"`
	QuestionHint        string    `json:"questionHint,omitempty" yaml:"questionHint"`
	SearchQuery         *string   `json:"searchQuery,omitempty" yaml:"searchQuery"`
}

// LaneData is the payload of a swim lane.
type LaneData struct {
	Label        string      `json:"label" yaml:"label"`
	Color        string      `json:"color" yaml:"color"`
	Orientation  Orientation `json:"orientation" yaml:"orientation"`
	ShowComments bool        `json:"showComments" yaml:"showComments"`
}

// Node is a point on the canvas: either a strategic node or a lane.
type Node struct {
	ID        string         `json:"id"`
	Kind      NodeKind       `json:"kind"`
	Position  Point          `json:"position"`
	Size      *Size          `json:"size,omitempty"`
	LaneID    string         `json:"laneId,omitempty"`
	Strategic *StrategicData `json:"strategic,omitempty"`
	Lane      *LaneData      `json:"lane,omitempty"`
}

// NewStrategicNode builds a top-level strategic node.
func NewStrategicNode(id string, pos Point, data StrategicData) Node {
	if data.Comments == nil {
		data.Comments = []Comment{}
	}
	return Node{ID: id, Kind: KindStrategic, Position: pos, Strategic: &data}
}

// NewLaneNode builds a swim lane.
func NewLaneNode(id string, pos Point, size Size, data LaneData) Node {
	return Node{ID: id, Kind: KindLane, Position: pos, Size: &size, Lane: &data}
}

func (n Node) IsStrategic() bool { return n.Kind == KindStrategic && n.Strategic != nil }
func (n Node) IsLane() bool      { return n.Kind == KindLane && n.Lane != nil }
func (n Node) InLane() bool      { return n.LaneID != "" }

// IsGhost reports whether n is a provisional suggestion.
func (n Node) IsGhost() bool {
	return n.IsStrategic() && n.Strategic.IsGhost
}

// State returns the strategic state, empty for lanes.
func (n Node) State() NodeState {
	if !n.IsStrategic() {
		return ""
	}
	return n.Strategic.State
}

// Clone returns a deep copy whose payloads can be modified freely.
func (n Node) Clone() Node {
	out := n
	if n.Size != nil {
		s := *n.Size
		out.Size = &s
	}
	if n.Strategic != nil {
		d := *n.Strategic
		d.Comments = append([]Comment(nil), n.Strategic.Comments...)
		if d.Comments == nil {
			d.Comments = []Comment{}
		}
		if n.Strategic.SearchQuery != nil {
			q := *n.Strategic.SearchQuery
			d.SearchQuery = &q
		}
		out.Strategic = &d
	}
	if n.Lane != nil {
		l := *n.Lane
		out.Lane = &l
	}
	return out
}
