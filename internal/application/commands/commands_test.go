package commands_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/NewJerseyStyle/TheBlueprint-Project/internal/application/commands"
	"github.com/NewJerseyStyle/TheBlueprint-Project/internal/application/commands/bus"
	"github.com/NewJerseyStyle/TheBlueprint-Project/internal/application/notifications"
	"github.com/NewJerseyStyle/TheBlueprint-Project/internal/application/services"
	"github.com/NewJerseyStyle/TheBlueprint-Project/internal/domain/canvas"
	domainconfig "github.com/NewJerseyStyle/TheBlueprint-Project/internal/domain/config"
	"github.com/NewJerseyStyle/TheBlueprint-Project/internal/domain/shared"
	apperrors "github.com/NewJerseyStyle/TheBlueprint-Project/internal/errors"
	"github.com/NewJerseyStyle/TheBlueprint-Project/internal/infrastructure/memory"
)

func jsonBody(s string) commands.Unmarshaler {
	return func(v interface{}) error { return json.Unmarshal([]byte(s), v) }
}

func TestDecode(t *testing.T) {
	cmd, err := commands.Decode("drop-connection", jsonBody(`{"nodeId":"node-begin","x":500,"y":450}`))
	require.NoError(t, err)
	assert.Equal(t, commands.DropConnectionCommand{NodeID: "node-begin", X: 500, Y: 450}, cmd)

	cmd, err = commands.Decode("click-pane", nil)
	require.NoError(t, err)
	assert.Equal(t, commands.ClickPaneCommand{}, cmd)

	var node yaml.Node
	require.NoError(t, yaml.Unmarshal([]byte("parent_id: node-begin\nstate: question\n"), &node))
	cmd, err = commands.Decode("add-child", node.Decode)
	require.NoError(t, err)
	assert.Equal(t, commands.AddChildCommand{ParentID: "node-begin", State: canvas.StateQuestion}, cmd)

	_, err = commands.Decode("teleport", nil)
	assert.True(t, apperrors.IsNotFound(err))
	assert.Equal(t, apperrors.CodeUnknownGesture.String(), apperrors.GetCode(err))

	_, err = commands.Decode("select", jsonBody(`{"nodeId":`))
	assert.True(t, apperrors.IsValidation(err))
}

func TestGesturesListed(t *testing.T) {
	names := commands.Gestures()
	assert.Len(t, names, 26)
	assert.Contains(t, names, "explore")
	assert.Contains(t, names, "toggle-subscription")
	assert.IsIncreasing(t, names)
}

func TestValidate(t *testing.T) {
	bogus := canvas.NodeState("someday")
	long := string(make([]byte, commands.MaxTitleLength+1))
	tests := []struct {
		name    string
		cmd     bus.Command
		wantErr bool
	}{
		{name: "select ok", cmd: commands.SelectNodeCommand{NodeID: "node-1"}},
		{name: "select missing id", cmd: commands.SelectNodeCommand{}, wantErr: true},
		{name: "change state ok", cmd: commands.ChangeStateCommand{NodeID: "n", State: canvas.StateDoing}},
		{name: "change state unknown", cmd: commands.ChangeStateCommand{NodeID: "n", State: bogus}, wantErr: true},
		{name: "add root needs state", cmd: commands.AddRootNodeCommand{X: 1}, wantErr: true},
		{name: "update empty patch", cmd: commands.UpdateNodeCommand{NodeID: "n"}, wantErr: true},
		{name: "update bad state", cmd: commands.UpdateNodeCommand{NodeID: "n", Patch: canvas.NodePatch{State: &bogus}}, wantErr: true},
		{name: "update long title", cmd: commands.UpdateNodeCommand{NodeID: "n", Patch: canvas.NodePatch{Title: &long}}, wantErr: true},
		{name: "lane zero size", cmd: commands.UpdateLaneCommand{LaneID: "l", Patch: canvas.LanePatch{Size: &canvas.Size{}}}, wantErr: true},
		{name: "comment empty", cmd: commands.AddCommentCommand{NodeID: "n"}, wantErr: true},
		{name: "subscription kind", cmd: commands.ToggleSubscriptionCommand{Kind: "everyone"}, wantErr: true},
		{name: "clear ghosts", cmd: commands.ClearGhostsCommand{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cmd.Validate()
			if tt.wantErr {
				assert.True(t, apperrors.IsValidation(err), "got %v", err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestPermissions(t *testing.T) {
	perm := func(cmd bus.Command) shared.Permission {
		if p, ok := cmd.(shared.Permissioned); ok {
			return p.Permission()
		}
		return shared.PermissionMutate
	}
	assert.Equal(t, shared.PermissionComment, perm(commands.AddCommentCommand{}))
	assert.Equal(t, shared.PermissionRead, perm(commands.MarkNotificationReadCommand{}))
	assert.Equal(t, shared.PermissionRead, perm(commands.ToggleSubscriptionCommand{}))
	assert.Equal(t, shared.PermissionRead, perm(commands.SelectNodeCommand{}))
	assert.Equal(t, shared.PermissionRead, perm(commands.ClickPaneCommand{}))
	assert.Equal(t, shared.PermissionRead, perm(commands.OpenContextMenuCommand{}))
	assert.Equal(t, shared.PermissionMutate, perm(commands.ClearGhostsCommand{}))
}

func newBus(t *testing.T) (*bus.CommandBus, *services.CanvasService) {
	t.Helper()
	store := memory.NewGraphStore(shared.NewSequentialIDGenerator(1), zap.NewNop())
	svc := services.NewCanvasService(store, domainconfig.DefaultDomainConfig(), nil, notifications.NewInbox(), nil, zap.NewNop())
	b := bus.NewCommandBus(bus.RecoveryMiddleware())
	require.NoError(t, commands.RegisterHandlers(b, svc))
	require.NoError(t, b.Send(context.Background(), commands.LoadTutorialCommand{}))
	return b, svc
}

func TestRegisterHandlers_EveryGestureBound(t *testing.T) {
	b, _ := newBus(t)
	for _, name := range commands.Gestures() {
		cmd, err := commands.Decode(name, nil)
		require.NoError(t, err)
		assert.True(t, b.Registered(cmd), name)
	}

	store := memory.NewGraphStore(shared.NewSequentialIDGenerator(1), zap.NewNop())
	svc := services.NewCanvasService(store, domainconfig.DefaultDomainConfig(), nil, notifications.NewInbox(), nil, zap.NewNop())
	assert.True(t, apperrors.IsConflict(commands.RegisterHandlers(b, svc)))
}

func TestGestureDispatch(t *testing.T) {
	ctx := context.Background()
	b, svc := newBus(t)

	require.NoError(t, b.Send(ctx, commands.ExploreSuggestionsCommand{NodeID: "node-begin"}))
	ghosts := svc.Snapshot().Ghosts()
	require.NotEmpty(t, ghosts)

	require.NoError(t, b.Send(ctx, commands.RealizeGhostCommand{GhostID: ghosts[0].ID}))
	assert.Equal(t, ghosts[0].ID, svc.Selected())
	assert.Empty(t, svc.Snapshot().Ghosts())

	require.NoError(t, b.Send(ctx, commands.ChangeStateCommand{NodeID: "node-trello", State: canvas.StateHistory}))
	n, ok := svc.Snapshot().Node("node-trello")
	require.True(t, ok)
	assert.Equal(t, canvas.StateHistory, n.State())

	require.NoError(t, b.Send(ctx, commands.RemoveNodeCommand{NodeID: "node-wiki"}))
	_, ok = svc.Snapshot().Node("node-wiki")
	assert.False(t, ok)

	err := b.Send(ctx, commands.SelectNodeCommand{})
	assert.True(t, apperrors.IsValidation(err))
}

func TestSelectionForViewersLeavesGhosts(t *testing.T) {
	b, svc := newBus(t)
	editor := shared.WithIdentity(context.Background(), shared.Identity{UserID: "sarah", Role: shared.RoleEdit})
	viewer := shared.WithIdentity(context.Background(), shared.Identity{UserID: "maria", Role: shared.RoleView})

	require.NoError(t, b.Send(editor, commands.ExploreSuggestionsCommand{NodeID: "node-begin"}))
	ghosts := svc.Snapshot().Ghosts()
	require.NotEmpty(t, ghosts)
	version := svc.Snapshot().Version

	require.NoError(t, b.Send(viewer, commands.SelectNodeCommand{NodeID: "node-goal"}))
	assert.Equal(t, "node-goal", svc.Selected())

	require.NoError(t, b.Send(viewer, commands.SelectNodeCommand{NodeID: ghosts[0].ID}))
	assert.Empty(t, svc.Selected(), "viewers cannot realize ghosts")

	require.NoError(t, b.Send(viewer, commands.OpenContextMenuCommand{NodeID: "node-begin"}))
	assert.Equal(t, "node-begin", svc.Selected())

	require.NoError(t, b.Send(viewer, commands.ClickPaneCommand{}))
	assert.Empty(t, svc.Selected())

	assert.Len(t, svc.Snapshot().Ghosts(), len(ghosts))
	assert.Equal(t, version, svc.Snapshot().Version)

	require.NoError(t, b.Send(editor, commands.ClickPaneCommand{}))
	assert.Empty(t, svc.Snapshot().Ghosts())
}

func TestAddCommentUsesActingUser(t *testing.T) {
	b, svc := newBus(t)
	before := len(svc.Inbox().List(""))

	err := b.Send(context.Background(), commands.AddCommentCommand{NodeID: "node-canvas", Text: "hi"})
	assert.True(t, apperrors.IsForbidden(err))

	ctx := shared.WithIdentity(context.Background(), shared.Identity{UserID: "sarah", Role: shared.RoleComment})
	require.NoError(t, b.Send(ctx, commands.AddCommentCommand{NodeID: "node-canvas", Text: "@david take a look"}))

	n, ok := svc.Snapshot().Node("node-canvas")
	require.True(t, ok)
	last := n.Strategic.Comments[len(n.Strategic.Comments)-1]
	assert.Equal(t, "sarah", last.AuthorID)
	assert.Greater(t, len(svc.Inbox().List("")), before)
}

func TestNotificationCommands(t *testing.T) {
	ctx := context.Background()
	b, svc := newBus(t)

	list := svc.Inbox().List("")
	require.NotEmpty(t, list)
	require.NoError(t, b.Send(ctx, commands.MarkNotificationReadCommand{NotificationID: list[0].ID}))

	err := b.Send(ctx, commands.MarkNotificationReadCommand{NotificationID: "missing"})
	assert.True(t, apperrors.IsNotFound(err))

	require.NoError(t, b.Send(ctx, commands.ToggleSubscriptionCommand{Kind: string(notifications.KindCoordinator)}))
	assert.False(t, svc.Inbox().Subscribed(notifications.KindCoordinator))
}
