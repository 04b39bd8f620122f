package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/NewJerseyStyle/TheBlueprint-Project/internal/domain/canvas"
	"github.com/NewJerseyStyle/TheBlueprint-Project/internal/testutil"
)

func TestShouldShowHint(t *testing.T) {
	tests := []struct {
		name string
		snap canvas.Snapshot
		want bool
	}{
		{
			name: "begin without downstream work",
			snap: testutil.Snapshot(testutil.Nodes(testutil.NewNodeBuilder("n").WithState(canvas.StateBegin).Build())),
			want: true,
		},
		{
			name: "draft without downstream work",
			snap: testutil.Snapshot(testutil.Nodes(testutil.NewNodeBuilder("n").WithState(canvas.StateDraft).Build())),
			want: false,
		},
		{
			name: "forced on a draft",
			snap: testutil.Snapshot(testutil.Nodes(testutil.NewNodeBuilder("n").WithState(canvas.StateDraft).ForceSuggestions().Build())),
			want: true,
		},
		{
			name: "goal is never hinted",
			snap: testutil.Snapshot(testutil.Nodes(testutil.NewNodeBuilder("n").WithState(canvas.StateGoal).ForceSuggestions().Build())),
			want: false,
		},
		{
			name: "ghost is never hinted",
			snap: testutil.Snapshot(testutil.Nodes(
				testutil.NewNodeBuilder("p").WithState(canvas.StateBegin).Build(),
				testutil.NewNodeBuilder("n").WithState(canvas.StateBegin).AsGhostOf("p").Build(),
			)),
			want: false,
		},
		{
			name: "path TBD wins over an active path",
			snap: testutil.Snapshot(
				testutil.Nodes(
					testutil.NewNodeBuilder("n").WithState(canvas.StateDraft).Build(),
					testutil.NewNodeBuilder("g").WithState(canvas.StateGoal).Build(),
					testutil.NewNodeBuilder("d").WithState(canvas.StateDoing).WithAssignee("david").Build(),
				),
				testutil.NewEdgeBuilder("n", "g").PathTBD().Build(),
				testutil.NewEdgeBuilder("n", "d").Build(),
			),
			want: true,
		},
		{
			name: "active path hides the hint on a question",
			snap: testutil.Snapshot(
				testutil.Nodes(
					testutil.NewNodeBuilder("n").WithState(canvas.StateQuestion).Build(),
					testutil.NewNodeBuilder("d").WithState(canvas.StateDoing).WithAssignee("david").Build(),
				),
				testutil.NewEdgeBuilder("n", "d").Build(),
			),
			want: false,
		},
		{
			name: "unassigned doing does not count",
			snap: testutil.Snapshot(
				testutil.Nodes(
					testutil.NewNodeBuilder("n").WithState(canvas.StateQuestion).Build(),
					testutil.NewNodeBuilder("d").WithState(canvas.StateDoing).Build(),
				),
				testutil.NewEdgeBuilder("n", "d").Build(),
			),
			want: true,
		},
		{
			name: "unknown node",
			snap: canvas.EmptySnapshot(),
			want: false,
		},
	}

	l := NewLookaheadEvaluator(3)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, l.ShouldShowHint(tt.snap, "n"))
		})
	}
}

func chain(length int, activeAt int) canvas.Snapshot {
	ids := []string{"n"}
	for i := 1; i <= length; i++ {
		ids = append(ids, string(rune('a'+i-1)))
	}
	var nodes []canvas.Node
	for i, id := range ids {
		b := testutil.NewNodeBuilder(id).WithState(canvas.StateQuestion)
		if i == activeAt {
			b = b.WithState(canvas.StateDecision).WithAssignee("maria")
		}
		nodes = append(nodes, b.Build())
	}
	var edges []canvas.Edge
	for i := 0; i+1 < len(ids); i++ {
		edges = append(edges, testutil.NewEdgeBuilder(ids[i], ids[i+1]).Build())
	}
	return testutil.Snapshot(nodes, edges...)
}

func TestHasActivePath_DepthCap(t *testing.T) {
	l := NewLookaheadEvaluator(3)
	assert.True(t, l.HasActivePath(chain(5, 1), "n"))
	assert.True(t, l.HasActivePath(chain(5, 3), "n"))
	assert.False(t, l.HasActivePath(chain(5, 4), "n"))

	assert.True(t, NewLookaheadEvaluator(4).HasActivePath(chain(5, 4), "n"))
}

func TestHasActivePath_Cycles(t *testing.T) {
	snap := testutil.Snapshot(
		testutil.Nodes(
			testutil.NewNodeBuilder("n").WithState(canvas.StateQuestion).Build(),
			testutil.NewNodeBuilder("a").Build(),
			testutil.NewNodeBuilder("b").Build(),
		),
		testutil.NewEdgeBuilder("n", "a").Build(),
		testutil.NewEdgeBuilder("a", "b").Build(),
		testutil.NewEdgeBuilder("b", "n").Build(),
		testutil.NewEdgeBuilder("b", "a").Build(),
		testutil.NewEdgeBuilder("a", "a").WithID("self").Build(),
	)

	l := NewLookaheadEvaluator(10)
	assert.False(t, l.HasActivePath(snap, "n"))
	assert.True(t, l.ShouldShowHint(snap, "n"))
}
