package canvas

// NodePatch is a partial update of a strategic payload. Nil fields are left
// untouched.
type NodePatch struct {
	Title               *string    `json:"title,omitempty"`
	Description         *string    `json:"description,omitempty"`
	State               *NodeState `json:"state,omitempty"`
	AssigneeID          *string    `json:"assigneeId,omitempty"`
	IsNextSmallGoal     *bool      `json:"isNextSmallGoal,omitempty"`
	ForceSuggestionShow *bool      `json:"forceSuggestionShow,omitempty"`
	SearchQuery         *string    `json:"searchQuery,omitempty"`
}

// Empty reports whether the patch changes nothing.
func (p NodePatch) Empty() bool {
	return p.Title == nil && p.Description == nil && p.State == nil && p.AssigneeID == nil &&
		p.IsNextSmallGoal == nil && p.ForceSuggestionShow == nil && p.SearchQuery == nil
}

// ApplyTo merges the patch into d.
func (p NodePatch) ApplyTo(d *StrategicData) {
	if p.Title != nil {
		d.Title = *p.Title
	}
	if p.Description != nil {
		d.Description = *p.Description
	}
	if p.State != nil {
		d.State = *p.State
	}
	if p.AssigneeID != nil {
		d.AssigneeID = *p.AssigneeID
	}
	if p.IsNextSmallGoal != nil {
		d.IsNextSmallGoal = *p.IsNextSmallGoal
	}
	if p.ForceSuggestionShow != nil {
		d.ForceSuggestionShow = *p.ForceSuggestionShow
	}
	if p.SearchQuery != nil {
		q := *p.SearchQuery
		d.SearchQuery = &q
	}
}

// LanePatch is a partial update of a lane payload.
type LanePatch struct {
	Label        *string      `json:"label,omitempty"`
	Color        *string      `json:"color,omitempty"`
	Orientation  *Orientation `json:"orientation,omitempty"`
	ShowComments *bool        `json:"showComments,omitempty"`
	Size         *Size        `json:"size,omitempty"`
}

// ApplyTo merges the patch into the lane node n.
func (p LanePatch) ApplyTo(n *Node) {
	if n.Lane == nil {
		return
	}
	if p.Label != nil {
		n.Lane.Label = *p.Label
	}
	if p.Color != nil {
		n.Lane.Color = *p.Color
	}
	if p.Orientation != nil {
		n.Lane.Orientation = *p.Orientation
	}
	if p.ShowComments != nil {
		n.Lane.ShowComments = *p.ShowComments
	}
	if p.Size != nil {
		s := *p.Size
		n.Size = &s
	}
}
