package services

import (
	"fmt"

	"github.com/NewJerseyStyle/TheBlueprint-Project/internal/domain/canvas"
)

// LaneShift says whether a suggestion lands in the source's lane or the next.
type LaneShift string

const (
	LaneShiftNone LaneShift = "none"
	LaneShiftNext LaneShift = "next"
)

// Suggestion is a candidate next step proposed for a node.
type Suggestion struct {
	State     canvas.NodeState `json:"state"`
	Title     string           `json:"title"`
	LaneShift LaneShift        `json:"laneShift"`
	IsAI      bool             `json:"isAI"`
}

// SuggestionSlot identifies a position in the rule table whose wording comes
// from a SuggestionCatalog.
type SuggestionSlot string

const (
	SlotBeginQuestion   SuggestionSlot = "begin.question"
	SlotBeginDraft      SuggestionSlot = "begin.draft"
	SlotQuestionOptionA SuggestionSlot = "question.option_a"
	SlotQuestionOptionB SuggestionSlot = "question.option_b"
	SlotDoingReview     SuggestionSlot = "doing.review"
	SlotAdvanceLane     SuggestionSlot = "doing.advance_lane"
	SlotFallback        SuggestionSlot = "fallback"
)

// SuggestionCatalog supplies the wording of suggestions. laneLabel is only
// set for SlotAdvanceLane.
type SuggestionCatalog interface {
	Title(slot SuggestionSlot, source canvas.Node, laneLabel string) string
}

// DefaultCatalog is the built-in wording.
type DefaultCatalog struct{}

func (DefaultCatalog) Title(slot SuggestionSlot, _ canvas.Node, laneLabel string) string {
	switch slot {
	case SlotBeginQuestion:
		return "Which strategy should we follow?"
	case SlotBeginDraft:
		return "Draft Project Manifesto"
	case SlotQuestionOptionA:
		return "Option A: Pilot Phase"
	case SlotQuestionOptionB:
		return "Option B: Community Survey"
	case SlotDoingReview:
		return "Review Milestone Progress"
	case SlotAdvanceLane:
		return fmt.Sprintf("Advance to %s", laneLabel)
	default:
		return "New proposal"
	}
}

// SuggestionEngine produces next-step proposals for a node.
type SuggestionEngine struct {
	catalog  SuggestionCatalog
	geometry *GeometryResolver
}

// NewSuggestionEngine creates an engine. A nil catalog uses DefaultCatalog.
func NewSuggestionEngine(catalog SuggestionCatalog, geometry *GeometryResolver) *SuggestionEngine {
	if catalog == nil {
		catalog = DefaultCatalog{}
	}
	return &SuggestionEngine{catalog: catalog, geometry: geometry}
}

// Generate returns the ordered suggestions for node. It is pure: the same
// inputs always yield the same output. Lanes, ghosts and terminal states get
// none; every other state ends with the non-AI fallback draft.
func (e *SuggestionEngine) Generate(node canvas.Node, all []canvas.Node) []Suggestion {
	if !node.IsStrategic() || node.IsGhost() || node.State().IsTerminal() {
		return nil
	}

	var out []Suggestion
	ai := func(slot SuggestionSlot, state canvas.NodeState) {
		out = append(out, Suggestion{
			State:     state,
			Title:     e.catalog.Title(slot, node, ""),
			LaneShift: LaneShiftNone,
			IsAI:      true,
		})
	}

	switch node.State() {
	case canvas.StateBegin:
		ai(SlotBeginQuestion, canvas.StateQuestion)
		ai(SlotBeginDraft, canvas.StateDraft)
	case canvas.StateQuestion:
		ai(SlotQuestionOptionA, canvas.StateDraft)
		ai(SlotQuestionOptionB, canvas.StateDraft)
	case canvas.StateDoing:
		ai(SlotDoingReview, canvas.StateDecision)
		if node.InLane() {
			if next, ok := e.geometry.NextLane(node.LaneID, all); ok {
				out = append(out, Suggestion{
					State:     canvas.StateDraft,
					Title:     e.catalog.Title(SlotAdvanceLane, node, next.Lane.Label),
					LaneShift: LaneShiftNext,
					IsAI:      true,
				})
			}
		}
	}

	out = append(out, Suggestion{
		State:     canvas.StateDraft,
		Title:     e.catalog.Title(SlotFallback, node, ""),
		LaneShift: LaneShiftNone,
	})
	return out
}
