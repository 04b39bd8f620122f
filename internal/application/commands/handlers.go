package commands

import (
	"context"

	"github.com/NewJerseyStyle/TheBlueprint-Project/internal/application/commands/bus"
	"github.com/NewJerseyStyle/TheBlueprint-Project/internal/application/notifications"
	"github.com/NewJerseyStyle/TheBlueprint-Project/internal/application/services"
	"github.com/NewJerseyStyle/TheBlueprint-Project/internal/domain/canvas"
	"github.com/NewJerseyStyle/TheBlueprint-Project/internal/domain/shared"
	apperrors "github.com/NewJerseyStyle/TheBlueprint-Project/internal/errors"
)

func handle[T bus.Command](b *bus.CommandBus, fn func(ctx context.Context, cmd T) error) error {
	var zero T
	return b.Register(zero, bus.CommandHandlerFunc(func(ctx context.Context, cmd bus.Command) error {
		return fn(ctx, cmd.(T))
	}))
}

// canEdit reports whether the caller may mutate the graph. Calls without an
// identity come from inside the process and are trusted.
func canEdit(ctx context.Context) bool {
	id, ok := shared.IdentityFrom(ctx)
	return !ok || id.Role.Allows(shared.PermissionMutate)
}

// RegisterHandlers binds every gesture command to svc.
func RegisterHandlers(b *bus.CommandBus, svc *services.CanvasService) error {
	registrations := []func() error{
		func() error {
			return handle(b, func(ctx context.Context, c ExploreSuggestionsCommand) error {
				svc.ExploreSuggestions(ctx, c.NodeID)
				return nil
			})
		},
		func() error {
			return handle(b, func(ctx context.Context, c DropConnectionCommand) error {
				svc.DropConnection(ctx, c.NodeID, canvas.Point{X: c.X, Y: c.Y})
				return nil
			})
		},
		func() error {
			return handle(b, func(ctx context.Context, _ ClearGhostsCommand) error {
				svc.ClearGhosts(ctx)
				return nil
			})
		},
		func() error {
			return handle(b, func(ctx context.Context, c RealizeGhostCommand) error {
				svc.RealizeGhost(ctx, c.GhostID)
				return nil
			})
		},
		func() error {
			return handle(b, func(ctx context.Context, c SelectNodeCommand) error {
				if !canEdit(ctx) {
					svc.Focus(c.NodeID)
					return nil
				}
				svc.SelectNode(ctx, c.NodeID)
				return nil
			})
		},
		func() error {
			return handle(b, func(ctx context.Context, _ ClickPaneCommand) error {
				if !canEdit(ctx) {
					svc.Focus("")
					return nil
				}
				svc.ClickPane(ctx)
				return nil
			})
		},
		func() error {
			return handle(b, func(ctx context.Context, c OpenContextMenuCommand) error {
				if !canEdit(ctx) {
					svc.Focus(c.NodeID)
					return nil
				}
				svc.OpenContextMenu(ctx, c.NodeID)
				return nil
			})
		},
		func() error {
			return handle(b, func(ctx context.Context, c ChangeStateCommand) error {
				svc.ChangeState(ctx, c.NodeID, c.State)
				return nil
			})
		},
		func() error {
			return handle(b, func(ctx context.Context, c ArchiveNodeCommand) error {
				svc.ArchiveNode(ctx, c.NodeID)
				return nil
			})
		},
		func() error {
			return handle(b, func(ctx context.Context, c AddChildCommand) error {
				svc.AddChild(ctx, c.ParentID, c.State, c.Title)
				return nil
			})
		},
		func() error {
			return handle(b, func(ctx context.Context, c ConnectCommand) error {
				svc.Connect(ctx, c.SourceID, c.TargetID, c.SourceHandle, c.TargetHandle)
				return nil
			})
		},
		func() error {
			return handle(b, func(ctx context.Context, c DuplicateNodeCommand) error {
				svc.DuplicateNode(ctx, c.NodeID)
				return nil
			})
		},
		func() error {
			return handle(b, func(ctx context.Context, c DragNodeCommand) error {
				svc.DragNode(ctx, c.NodeID, canvas.Point{X: c.X, Y: c.Y})
				return nil
			})
		},
		func() error {
			return handle(b, func(ctx context.Context, c AddRootNodeCommand) error {
				svc.AddRootNode(ctx, c.State, canvas.Point{X: c.X, Y: c.Y})
				return nil
			})
		},
		func() error {
			return handle(b, func(ctx context.Context, c AddLaneCommand) error {
				svc.AddLane(ctx, canvas.Point{X: c.X, Y: c.Y})
				return nil
			})
		},
		func() error {
			return handle(b, func(ctx context.Context, c UpdateNodeCommand) error {
				svc.UpdateNode(ctx, c.NodeID, c.Patch)
				return nil
			})
		},
		func() error {
			return handle(b, func(ctx context.Context, c UpdateLaneCommand) error {
				svc.UpdateLane(ctx, c.LaneID, c.Patch)
				return nil
			})
		},
		func() error {
			return handle(b, func(ctx context.Context, c ToggleNextSmallGoalCommand) error {
				svc.ToggleNextSmallGoal(ctx, c.NodeID)
				return nil
			})
		},
		func() error {
			return handle(b, func(ctx context.Context, c ToggleSuggestionsCommand) error {
				svc.ToggleSuggestions(ctx, c.NodeID)
				return nil
			})
		},
		func() error {
			return handle(b, func(ctx context.Context, c ToggleLaneCommentsCommand) error {
				svc.ToggleLaneComments(ctx, c.LaneID)
				return nil
			})
		},
		func() error {
			return handle(b, func(ctx context.Context, c RemoveNodeCommand) error {
				svc.RemoveNode(ctx, c.NodeID)
				return nil
			})
		},
		func() error {
			return handle(b, func(ctx context.Context, c AddCommentCommand) error {
				id, ok := shared.IdentityFrom(ctx)
				if !ok || id.UserID == "" {
					return apperrors.Forbidden(apperrors.CodeMissingIdentity, "comment requires an acting user").
						WithOperation("AddComment").
						Build()
				}
				_, _, err := svc.AddComment(ctx, c.NodeID, id.UserID, id.UserID, c.Text)
				return err
			})
		},
		func() error {
			return handle(b, func(ctx context.Context, _ LoadTutorialCommand) error {
				_, err := svc.LoadTutorial(ctx)
				return err
			})
		},
		func() error {
			return handle(b, func(ctx context.Context, _ LoadBlankCommand) error {
				_, err := svc.LoadBlank(ctx)
				return err
			})
		},
		func() error {
			return handle(b, func(_ context.Context, c MarkNotificationReadCommand) error {
				if !svc.Inbox().MarkRead(c.NotificationID) {
					return apperrors.NotFound(apperrors.CodeNotificationNotFound, "notification not found").
						WithResource(c.NotificationID).
						Build()
				}
				return nil
			})
		},
		func() error {
			return handle(b, func(_ context.Context, c ToggleSubscriptionCommand) error {
				svc.Inbox().ToggleSubscription(notifications.Kind(c.Kind))
				return nil
			})
		},
	}

	for _, register := range registrations {
		if err := register(); err != nil {
			return err
		}
	}
	return nil
}
