package rest_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace/noop"
	"go.uber.org/zap"

	"github.com/NewJerseyStyle/TheBlueprint-Project/internal/application/commands"
	commandbus "github.com/NewJerseyStyle/TheBlueprint-Project/internal/application/commands/bus"
	"github.com/NewJerseyStyle/TheBlueprint-Project/internal/application/mediator"
	"github.com/NewJerseyStyle/TheBlueprint-Project/internal/application/notifications"
	"github.com/NewJerseyStyle/TheBlueprint-Project/internal/application/queries"
	querybus "github.com/NewJerseyStyle/TheBlueprint-Project/internal/application/queries/bus"
	"github.com/NewJerseyStyle/TheBlueprint-Project/internal/application/services"
	"github.com/NewJerseyStyle/TheBlueprint-Project/internal/config"
	"github.com/NewJerseyStyle/TheBlueprint-Project/internal/domain/shared"
	"github.com/NewJerseyStyle/TheBlueprint-Project/internal/infrastructure/memory"
	"github.com/NewJerseyStyle/TheBlueprint-Project/internal/infrastructure/observability"
	"github.com/NewJerseyStyle/TheBlueprint-Project/internal/interfaces/http/rest"
)

func newServer(t *testing.T) (*httptest.Server, *services.CanvasService) {
	t.Helper()
	cfg := config.Default(config.Test)
	cfg.Metrics.Enabled = true
	logger := zap.NewNop()
	collector := observability.NewCollector("test")

	store := memory.NewGraphStore(shared.NewSequentialIDGenerator(1), logger)
	svc := services.NewCanvasService(store, cfg.Domain, nil, notifications.NewInbox(), collector, logger)
	_, err := svc.LoadTutorial(context.Background())
	require.NoError(t, err)

	cb := commandbus.NewCommandBus(commandbus.RecoveryMiddleware())
	require.NoError(t, commands.RegisterHandlers(cb, svc))
	qb := querybus.NewQueryBus()
	require.NoError(t, queries.RegisterHandlers(qb, svc))

	m := mediator.NewMediator(cb, qb, logger)
	m.AddBehavior(mediator.NewMetricsBehavior(collector))
	m.AddBehavior(mediator.NewRoleBehavior(logger))

	router := rest.NewRouter(m, collector, noop.NewTracerProvider().Tracer("test"), cfg, logger)
	srv := httptest.NewServer(router.Setup())
	t.Cleanup(srv.Close)
	return srv, svc
}

func do(t *testing.T, srv *httptest.Server, method, path, role, body string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(method, srv.URL+path, strings.NewReader(body))
	require.NoError(t, err)
	if role != "" {
		req.Header.Set(rest.HeaderUserID, "sarah")
		req.Header.Set(rest.HeaderRole, role)
	}
	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

func TestGetCanvas(t *testing.T) {
	srv, _ := newServer(t)

	resp := do(t, srv, http.MethodGet, "/api/v1/canvas", "view", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	view := decode[queries.CanvasView](t, resp)
	assert.Len(t, view.Nodes, 12)
	assert.Len(t, view.Edges, 10)
}

func TestGestureRoundTrip(t *testing.T) {
	srv, svc := newServer(t)

	resp := do(t, srv, http.MethodPost, "/api/v1/gestures/explore", "edit", `{"nodeId":"node-begin"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	view := decode[queries.CanvasView](t, resp)
	assert.Len(t, view.Nodes, 12+len(svc.Snapshot().Ghosts()))
	require.NotEmpty(t, svc.Snapshot().Ghosts())

	resp = do(t, srv, http.MethodPost, "/api/v1/gestures/click-pane", "edit", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, svc.Snapshot().Ghosts())
}

func TestGestureErrors(t *testing.T) {
	srv, _ := newServer(t)
	tests := []struct {
		name   string
		path   string
		role   string
		body   string
		status int
		code   string
	}{
		{name: "view cannot mutate", path: "/api/v1/gestures/archive", role: "view", body: `{"nodeId":"node-decide"}`, status: http.StatusForbidden, code: "ROLE_FORBIDDEN"},
		{name: "no identity", path: "/api/v1/gestures/archive", body: `{"nodeId":"node-decide"}`, status: http.StatusForbidden, code: "MISSING_IDENTITY"},
		{name: "unknown role", path: "/api/v1/gestures/archive", role: "owner", body: `{"nodeId":"node-decide"}`, status: http.StatusForbidden, code: "UNKNOWN_ROLE"},
		{name: "unknown gesture", path: "/api/v1/gestures/teleport", role: "edit", status: http.StatusNotFound, code: "UNKNOWN_GESTURE"},
		{name: "unknown field", path: "/api/v1/gestures/select", role: "edit", body: `{"node":"x"}`, status: http.StatusBadRequest, code: "INVALID_INPUT"},
		{name: "missing field", path: "/api/v1/gestures/select", role: "edit", body: `{}`, status: http.StatusBadRequest, code: "VALIDATION_FAILED"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := do(t, srv, http.MethodPost, tt.path, tt.role, tt.body)
			assert.Equal(t, tt.status, resp.StatusCode)
			body := decode[rest.ErrorBody](t, resp)
			assert.Equal(t, tt.code, body.Error.Code)
		})
	}
}

func TestCommentRoleMayComment(t *testing.T) {
	srv, svc := newServer(t)

	resp := do(t, srv, http.MethodPost, "/api/v1/gestures/comment", "comment", `{"nodeId":"node-canvas","text":"@maria thoughts?"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	n, ok := svc.Snapshot().Node("node-canvas")
	require.True(t, ok)
	assert.Equal(t, "@maria thoughts?", n.Strategic.Comments[len(n.Strategic.Comments)-1].Text)
}

func TestViewerMaySelect(t *testing.T) {
	srv, _ := newServer(t)

	resp := do(t, srv, http.MethodPost, "/api/v1/gestures/select", "view", `{"nodeId":"node-goal"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	view := decode[queries.CanvasView](t, resp)
	assert.Equal(t, "node-goal", view.Selected)
}

func TestSuggestionsAndHint(t *testing.T) {
	srv, _ := newServer(t)

	resp := do(t, srv, http.MethodGet, "/api/v1/nodes/node-begin/suggestions", "view", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, decode[queries.SuggestionsView](t, resp).Suggestions)

	resp = do(t, srv, http.MethodGet, "/api/v1/nodes/missing/hint", "view", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestNotificationsAndUsers(t *testing.T) {
	srv, _ := newServer(t)

	resp := do(t, srv, http.MethodGet, "/api/v1/notifications", "view", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	view := decode[queries.NotificationsView](t, resp)
	require.NotEmpty(t, view.Notifications)

	resp = do(t, srv, http.MethodPost, "/api/v1/gestures/mark-read", "view",
		`{"notificationId":"`+view.Notifications[0].ID+`"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	after := decode[queries.NotificationsView](t, resp)
	assert.True(t, after.Notifications[0].Read)

	resp = do(t, srv, http.MethodGet, "/api/v1/users", "view", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, decode[[]notifications.User](t, resp), 3)
}

func TestHealthAndMetrics(t *testing.T) {
	srv, _ := newServer(t)

	resp := do(t, srv, http.MethodGet, "/health", "", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	do(t, srv, http.MethodGet, "/api/v1/canvas", "view", "")
	resp = do(t, srv, http.MethodGet, "/metrics", "", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "test_commands_total")
	assert.Contains(t, string(raw), "test_canvas_nodes")
}
