package di_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NewJerseyStyle/TheBlueprint-Project/internal/application/commands"
	"github.com/NewJerseyStyle/TheBlueprint-Project/internal/config"
	"github.com/NewJerseyStyle/TheBlueprint-Project/internal/di"
	"github.com/NewJerseyStyle/TheBlueprint-Project/internal/domain/shared"
	apperrors "github.com/NewJerseyStyle/TheBlueprint-Project/internal/errors"
)

func TestInitializeContainer(t *testing.T) {
	cfg := config.Default(config.Test)
	c, err := di.InitializeContainer(context.Background(), cfg)
	require.NoError(t, err)
	defer c.Shutdown()

	assert.Len(t, c.Service.Snapshot().Nodes, 12, "tutorial is loaded on start")
	assert.Len(t, c.Mediator.GetBehaviors(), 4)

	ctx := shared.WithIdentity(context.Background(), shared.Identity{UserID: "sarah", Role: shared.RoleEdit})
	require.NoError(t, c.Mediator.Send(ctx, commands.AddRootNodeCommand{State: "begin", X: 10, Y: 10}))
	_, ok := c.Service.Snapshot().Node("node-1")
	assert.True(t, ok, "sequential ids in the test environment")

	viewer := shared.WithIdentity(context.Background(), shared.Identity{UserID: "maria", Role: shared.RoleView})
	require.NoError(t, c.Mediator.Send(viewer, commands.SelectNodeCommand{NodeID: "node-1"}))
	assert.Equal(t, "node-1", c.Service.Selected())
	err = c.Mediator.Send(viewer, commands.ClearGhostsCommand{})
	assert.True(t, apperrors.IsForbidden(err))
}

func TestInitializeContainer_MetricsEndpointFollowsConfig(t *testing.T) {
	tests := []struct {
		name    string
		enabled bool
		status  int
	}{
		{name: "enabled", enabled: true, status: http.StatusOK},
		{name: "disabled", enabled: false, status: http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default(config.Test)
			cfg.Metrics.Enabled = tt.enabled
			c, err := di.InitializeContainer(context.Background(), cfg)
			require.NoError(t, err)

			rec := httptest.NewRecorder()
			c.Router.Setup().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}
