package observability_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NewJerseyStyle/TheBlueprint-Project/internal/config"
	"github.com/NewJerseyStyle/TheBlueprint-Project/internal/domain/canvas"
	"github.com/NewJerseyStyle/TheBlueprint-Project/internal/infrastructure/observability"
	tu "github.com/NewJerseyStyle/TheBlueprint-Project/internal/testutil"
)

func TestCollector_CanvasEvents(t *testing.T) {
	c := observability.NewCollector("test")

	c.GhostsMaterialized(3)
	c.GhostRealized()
	c.StateTransition(canvas.StateDoing)
	c.StateTransition(canvas.StateDoing)
	c.RecordCommand("ChangeState", "ok", time.Millisecond)

	assert.Equal(t, 3.0, testutil.ToFloat64(c.GhostsMaterializedTotal))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.GhostsRealizedTotal))
	assert.Equal(t, 2.0, testutil.ToFloat64(c.StateTransitions.WithLabelValues("doing")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.Commands.WithLabelValues("ChangeState", "ok")))
}

func TestCollector_ObserveSnapshot(t *testing.T) {
	c := observability.NewCollector("test")
	snap := tu.Snapshot(
		tu.Nodes(
			tu.NewLaneBuilder("lane-1").Build(),
			tu.NewNodeBuilder("a").Build(),
			tu.NewNodeBuilder("g").AsGhostOf("a").Build(),
		),
		tu.NewEdgeBuilder("a", "g").Provisional().Build(),
	)

	c.ObserveSnapshot(snap)

	assert.Equal(t, 1.0, testutil.ToFloat64(c.Nodes.WithLabelValues("strategic")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.Nodes.WithLabelValues("lane")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.Nodes.WithLabelValues("ghost")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.Edges.WithLabelValues("provisional")))
	assert.Equal(t, 0.0, testutil.ToFloat64(c.Edges.WithLabelValues("committed")))
}

func TestCollector_IndependentRegistries(t *testing.T) {
	a := observability.NewCollector("test")
	b := observability.NewCollector("test")
	a.GhostRealized()

	assert.Equal(t, 1.0, testutil.ToFloat64(a.GhostsRealizedTotal))
	assert.Equal(t, 0.0, testutil.ToFloat64(b.GhostsRealizedTotal))
}

func TestCollector_Handler(t *testing.T) {
	c := observability.NewCollector("impactmap")
	c.GhostRealized()

	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(body), "impactmap_ghosts_realized_total 1"))
}

func TestHTTPMiddleware_RecordsRoutePattern(t *testing.T) {
	c := observability.NewCollector("test")
	tracer := observability.NewTracer(config.Tracing{Enabled: false, ServiceName: "test"})

	r := chi.NewRouter()
	r.Use(observability.HTTPMiddleware(c, tracer))
	r.Get("/nodes/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nodes/abc", nil))

	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.Equal(t, 1.0, testutil.ToFloat64(c.HTTPRequests.WithLabelValues("GET", "/nodes/{id}", "418")))
}

func TestTracing_DisabledIsNoop(t *testing.T) {
	tracer := observability.NewTracer(config.Tracing{Enabled: false, ServiceName: "test"})
	ctx, span := observability.StartCommandSpan(context.Background(), tracer, "AddChild", "sarah", "edit")

	assert.NotNil(t, ctx)
	assert.False(t, span.SpanContext().IsValid())
	assert.NotPanics(t, func() { observability.EndSpan(span, errors.New("boom")) })
}
