package config

// DomainConfig holds the configurable placement and lookahead rules of the
// canvas engine.
type DomainConfig struct {
	Geometry  Geometry  `yaml:"geometry" toml:"geometry" json:"geometry" validate:"required"`
	Lookahead Lookahead `yaml:"lookahead" toml:"lookahead" json:"lookahead" validate:"required"`
	Toolbar   Toolbar   `yaml:"toolbar" toml:"toolbar" json:"toolbar" validate:"required"`
}

// Geometry holds the offsets used by the geometry resolver.
type Geometry struct {
	// LaneHeader is the minimum y of the first node stacked into a lane.
	LaneHeader float64 `yaml:"lane_header" toml:"lane_header" json:"lane_header" validate:"gte=0"`
	// LanePaddingX is the x of a node placed into a lane from another lane.
	LanePaddingX float64 `yaml:"lane_padding_x" toml:"lane_padding_x" json:"lane_padding_x" validate:"gte=0"`
	EmptyLaneGap float64 `yaml:"empty_lane_gap" toml:"empty_lane_gap" json:"empty_lane_gap" validate:"gte=0"`
	StackGap     float64 `yaml:"stack_gap" toml:"stack_gap" json:"stack_gap" validate:"gt=0"`
	InLaneGap    float64 `yaml:"in_lane_gap" toml:"in_lane_gap" json:"in_lane_gap" validate:"gt=0"`
	RightOffset  float64 `yaml:"right_offset" toml:"right_offset" json:"right_offset" validate:"gt=0"`
	// SiblingStagger is the vertical step per existing top-level sibling.
	SiblingStagger float64 `yaml:"sibling_stagger" toml:"sibling_stagger" json:"sibling_stagger" validate:"gte=0"`
	GhostStaggerX  float64 `yaml:"ghost_stagger_x" toml:"ghost_stagger_x" json:"ghost_stagger_x" validate:"gte=0"`
	GhostStaggerY  float64 `yaml:"ghost_stagger_y" toml:"ghost_stagger_y" json:"ghost_stagger_y" validate:"gte=0"`
	// DefaultLaneWidth/Height are used for containment when a lane has no size.
	DefaultLaneWidth  float64 `yaml:"default_lane_width" toml:"default_lane_width" json:"default_lane_width" validate:"gt=0"`
	DefaultLaneHeight float64 `yaml:"default_lane_height" toml:"default_lane_height" json:"default_lane_height" validate:"gt=0"`
	// DuplicateOffsetX/Y shift a duplicated node away from its original.
	DuplicateOffsetX float64 `yaml:"duplicate_offset_x" toml:"duplicate_offset_x" json:"duplicate_offset_x"`
	DuplicateOffsetY float64 `yaml:"duplicate_offset_y" toml:"duplicate_offset_y" json:"duplicate_offset_y"`
}

// Lookahead bounds the walk behind the "suggest next step" hint.
type Lookahead struct {
	MaxDepth int `yaml:"max_depth" toml:"max_depth" json:"max_depth" validate:"gte=1,lte=10"`
}

// Toolbar holds the defaults of nodes created from the canvas toolbar.
type Toolbar struct {
	BeginTitle string  `yaml:"begin_title" toml:"begin_title" json:"begin_title" validate:"required"`
	GoalTitle  string  `yaml:"goal_title" toml:"goal_title" json:"goal_title" validate:"required"`
	LaneLabel  string  `yaml:"lane_label" toml:"lane_label" json:"lane_label" validate:"required"`
	LaneColor  string  `yaml:"lane_color" toml:"lane_color" json:"lane_color"`
	LaneWidth  float64 `yaml:"lane_width" toml:"lane_width" json:"lane_width" validate:"gt=0"`
	LaneHeight float64 `yaml:"lane_height" toml:"lane_height" json:"lane_height" validate:"gt=0"`
}

// DefaultDomainConfig returns the default domain configuration.
func DefaultDomainConfig() DomainConfig {
	return DomainConfig{
		Geometry:  DefaultGeometry(),
		Lookahead: Lookahead{MaxDepth: 3},
		Toolbar: Toolbar{
			BeginTitle: "New starting point",
			GoalTitle:  "New goal",
			LaneLabel:  "New Lane",
			LaneColor:  "rgba(148,163,184,0.08)",
			LaneWidth:  400,
			LaneHeight: 400,
		},
	}
}

// DefaultGeometry returns the default placement offsets.
func DefaultGeometry() Geometry {
	return Geometry{
		LaneHeader:        44,
		LanePaddingX:      44,
		EmptyLaneGap:      24,
		StackGap:          180,
		InLaneGap:         200,
		RightOffset:       320,
		SiblingStagger:    60,
		GhostStaggerX:     40,
		GhostStaggerY:     150,
		DefaultLaneWidth:  400,
		DefaultLaneHeight: 800,
		DuplicateOffsetX:  30,
		DuplicateOffsetY:  80,
	}
}
