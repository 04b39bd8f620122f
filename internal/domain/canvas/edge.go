package canvas

// Edge stroke colors.
const (
	StrokeNeutral  = "#94a3b8"
	StrokeActive   = "#14b8a6"
	StrokePathTBD  = "#f43f5e"
	StrokeArchived = "#d1d5db"
)

// Dash patterns. DashProvisional marks drafts and ghosts; DashUncertain marks
// user-drawn edges whose route is not settled yet (path TBD or from a draft).
const (
	DashProvisional = "6 4"
	DashUncertain   = "8 6"
)

const (
	OpacityGhost = 0.4
	OpacityFull  = 1.0

	WidthDefault  = 1.5
	WidthEmphasis = 2.0

	// LabelPathTBD is shown on edges that end at a goal.
	LabelPathTBD = "path TBD"
)

// Handle names a connection point on a node.
const (
	HandleTop    = "top"
	HandleBottom = "bottom"
	HandleLeft   = "left"
	HandleRight  = "right"
)

// EdgeStyle is the rendering descriptor of an edge.
type EdgeStyle struct {
	Stroke      string  `json:"stroke" yaml:"stroke"`
	StrokeWidth float64 `json:"strokeWidth" yaml:"strokeWidth"`
	Dash        string  `json:"dash,omitempty" yaml:"dash"`
	Opacity     float64 `json:"opacity" yaml:"opacity"`
}

// Dashed reports whether the edge renders with any dash pattern.
func (s EdgeStyle) Dashed() bool { return s.Dash != "" }

// Edge is a directed connection between two nodes.
type Edge struct {
	ID           string    `json:"id"`
	Source       string    `json:"source"`
	Target       string    `json:"target"`
	SourceHandle string    `json:"sourceHandle,omitempty"`
	TargetHandle string    `json:"targetHandle,omitempty"`
	Style        EdgeStyle `json:"style"`
	Animated     bool      `json:"animated"`
	IsPathTBD    bool      `json:"isPathTBD"`
	Label        string    `json:"label,omitempty"`
	// Provisional marks the edge linking a ghost to its parent.
	Provisional bool `json:"provisional"`
}

// Touches reports whether the edge is incident to the node.
func (e Edge) Touches(nodeID string) bool {
	return e.Source == nodeID || e.Target == nodeID
}

// Uncertain reports whether the edge is an unsettled route.
func (e Edge) Uncertain() bool {
	return e.IsPathTBD || e.Style.Dash == DashUncertain
}
