package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/NewJerseyStyle/TheBlueprint-Project/internal/domain/canvas"
	"github.com/NewJerseyStyle/TheBlueprint-Project/internal/testutil"
)

type mockCatalog struct {
	mock.Mock
}

func (m *mockCatalog) Title(slot SuggestionSlot, source canvas.Node, laneLabel string) string {
	args := m.Called(slot, source.ID, laneLabel)
	return args.String(0)
}

func newEngine() *SuggestionEngine {
	return NewSuggestionEngine(nil, newResolver())
}

func TestGenerate_BeginScenario(t *testing.T) {
	begin := testutil.NewNodeBuilder("begin-1").WithState(canvas.StateBegin).Build()

	got := newEngine().Generate(begin, []canvas.Node{begin})

	require.Len(t, got, 3)
	assert.Equal(t, Suggestion{State: canvas.StateQuestion, Title: "Which strategy should we follow?", LaneShift: LaneShiftNone, IsAI: true}, got[0])
	assert.Equal(t, Suggestion{State: canvas.StateDraft, Title: "Draft Project Manifesto", LaneShift: LaneShiftNone, IsAI: true}, got[1])
	assert.Equal(t, Suggestion{State: canvas.StateDraft, Title: "New proposal", LaneShift: LaneShiftNone, IsAI: false}, got[2])
}

func TestGenerate_RuleTable(t *testing.T) {
	lane1 := testutil.NewLaneBuilder("lane-1").At(0, 0).WithLabel("Day 1").Build()
	lane2 := testutil.NewLaneBuilder("lane-2").At(344, 0).WithLabel("Day 2").Build()

	tests := []struct {
		name   string
		node   canvas.Node
		states []canvas.NodeState
		titles []string
		shifts []LaneShift
	}{
		{
			name:   "question offers two options",
			node:   testutil.NewNodeBuilder("q").WithState(canvas.StateQuestion).Build(),
			states: []canvas.NodeState{canvas.StateDraft, canvas.StateDraft, canvas.StateDraft},
			titles: []string{"Option A: Pilot Phase", "Option B: Community Survey", "New proposal"},
		},
		{
			name:   "doing in a lane with a next lane",
			node:   testutil.NewNodeBuilder("d").WithState(canvas.StateDoing).InLane("lane-1").Build(),
			states: []canvas.NodeState{canvas.StateDecision, canvas.StateDraft, canvas.StateDraft},
			titles: []string{"Review Milestone Progress", "Advance to Day 2", "New proposal"},
			shifts: []LaneShift{LaneShiftNone, LaneShiftNext, LaneShiftNone},
		},
		{
			name:   "doing in the last lane",
			node:   testutil.NewNodeBuilder("d").WithState(canvas.StateDoing).InLane("lane-2").Build(),
			states: []canvas.NodeState{canvas.StateDecision, canvas.StateDraft},
			titles: []string{"Review Milestone Progress", "New proposal"},
		},
		{
			name:   "doing at top level",
			node:   testutil.NewNodeBuilder("d").WithState(canvas.StateDoing).Build(),
			states: []canvas.NodeState{canvas.StateDecision, canvas.StateDraft},
			titles: []string{"Review Milestone Progress", "New proposal"},
		},
		{
			name:   "draft only gets the fallback",
			node:   testutil.NewNodeBuilder("x").WithState(canvas.StateDraft).Build(),
			states: []canvas.NodeState{canvas.StateDraft},
			titles: []string{"New proposal"},
		},
		{
			name:   "decision only gets the fallback",
			node:   testutil.NewNodeBuilder("x").WithState(canvas.StateDecision).Build(),
			states: []canvas.NodeState{canvas.StateDraft},
			titles: []string{"New proposal"},
		},
		{name: "goal never extends", node: testutil.NewNodeBuilder("g").WithState(canvas.StateGoal).Build()},
		{name: "history never extends", node: testutil.NewNodeBuilder("h").WithState(canvas.StateHistory).Build()},
		{name: "ghosts never extend", node: testutil.NewNodeBuilder("gh").WithState(canvas.StateBegin).AsGhostOf("p").Build()},
		{name: "lanes never extend", node: lane1},
	}

	engine := newEngine()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := engine.Generate(tt.node, []canvas.Node{lane1, lane2, tt.node})
			require.Len(t, got, len(tt.states))
			for i := range got {
				assert.Equal(t, tt.states[i], got[i].State)
				assert.Equal(t, tt.titles[i], got[i].Title)
				wantShift := LaneShiftNone
				if tt.shifts != nil {
					wantShift = tt.shifts[i]
				}
				assert.Equal(t, wantShift, got[i].LaneShift)
				assert.Equal(t, i < len(got)-1, got[i].IsAI, "only the trailing fallback is non-AI")
			}
		})
	}
}

func TestGenerate_IsDeterministic(t *testing.T) {
	node := testutil.NewNodeBuilder("q").WithState(canvas.StateQuestion).Build()
	all := []canvas.Node{node}
	engine := newEngine()
	assert.Equal(t, engine.Generate(node, all), engine.Generate(node, all))
}

func TestGenerate_UsesCatalog(t *testing.T) {
	catalog := &mockCatalog{}
	catalog.On("Title", SlotBeginQuestion, "b", "").Return("Where to?")
	catalog.On("Title", SlotBeginDraft, "b", "").Return("Write it down")
	catalog.On("Title", SlotFallback, "b", "").Return("Something else")

	engine := NewSuggestionEngine(catalog, newResolver())
	node := testutil.NewNodeBuilder("b").WithState(canvas.StateBegin).Build()
	got := engine.Generate(node, []canvas.Node{node})

	require.Len(t, got, 3)
	assert.Equal(t, "Where to?", got[0].Title)
	assert.Equal(t, "Write it down", got[1].Title)
	assert.Equal(t, "Something else", got[2].Title)
	catalog.AssertExpectations(t)
}
