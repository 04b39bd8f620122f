// Package queries holds the read side of the canvas: typed queries, their
// result views and the handlers that build them from the canvas service.
package queries

import (
	"context"

	"github.com/NewJerseyStyle/TheBlueprint-Project/internal/application/notifications"
	"github.com/NewJerseyStyle/TheBlueprint-Project/internal/application/queries/bus"
	"github.com/NewJerseyStyle/TheBlueprint-Project/internal/application/services"
	"github.com/NewJerseyStyle/TheBlueprint-Project/internal/domain/canvas"
	domain "github.com/NewJerseyStyle/TheBlueprint-Project/internal/domain/services"
	apperrors "github.com/NewJerseyStyle/TheBlueprint-Project/internal/errors"
)

// GetCanvasQuery reads the current snapshot and selection.
type GetCanvasQuery struct{}

func (q GetCanvasQuery) Validate() error { return nil }

// CanvasView is the canvas as the rendering collaborator sees it.
type CanvasView struct {
	Version  uint64        `json:"version"`
	Nodes    []canvas.Node `json:"nodes"`
	Edges    []canvas.Edge `json:"edges"`
	Selected string        `json:"selected,omitempty"`
}

// GetSuggestionsQuery lists the next steps proposed for a node.
type GetSuggestionsQuery struct {
	NodeID string `json:"node_id"`
}

func (q GetSuggestionsQuery) Validate() error { return requireID("node_id", q.NodeID) }

// SuggestionsView carries the suggestions for one node.
type SuggestionsView struct {
	NodeID      string              `json:"nodeId"`
	Suggestions []domain.Suggestion `json:"suggestions"`
}

// GetHintQuery asks whether the "suggest next step" affordance shows on a
// node.
type GetHintQuery struct {
	NodeID string `json:"node_id"`
}

func (q GetHintQuery) Validate() error { return requireID("node_id", q.NodeID) }

// HintView is the lookahead verdict for a node.
type HintView struct {
	NodeID string `json:"nodeId"`
	Show   bool   `json:"show"`
}

// ListNotificationsQuery reads the inbox as seen by RecipientID. An empty
// recipient sees only broadcast records.
type ListNotificationsQuery struct {
	RecipientID string `json:"recipient_id"`
}

func (q ListNotificationsQuery) Validate() error { return nil }

// NotificationsView is the inbox panel.
type NotificationsView struct {
	Notifications []notifications.Notification `json:"notifications"`
	Unread        int                          `json:"unread"`
	Subscriptions map[notifications.Kind]bool  `json:"subscriptions"`
}

// ListUsersQuery lists the canvas participants.
type ListUsersQuery struct{}

func (q ListUsersQuery) Validate() error { return nil }

func requireID(field, v string) error {
	if v == "" {
		return apperrors.Validation(apperrors.CodeValidationFailed, field+" is required").Build()
	}
	return nil
}

// RegisterHandlers binds every query to svc.
func RegisterHandlers(b *bus.QueryBus, svc *services.CanvasService) error {
	handlers := map[bus.Query]bus.QueryHandlerFunc{
		GetCanvasQuery{}: func(context.Context, bus.Query) (interface{}, error) {
			snap := svc.Snapshot()
			return CanvasView{
				Version:  snap.Version,
				Nodes:    snap.Nodes,
				Edges:    snap.Edges,
				Selected: svc.Selected(),
			}, nil
		},
		GetSuggestionsQuery{}: func(_ context.Context, q bus.Query) (interface{}, error) {
			nodeID := q.(GetSuggestionsQuery).NodeID
			if _, ok := svc.Snapshot().Node(nodeID); !ok {
				return nil, nodeNotFound(nodeID)
			}
			list := svc.Suggestions(nodeID)
			if list == nil {
				list = []domain.Suggestion{}
			}
			return SuggestionsView{NodeID: nodeID, Suggestions: list}, nil
		},
		GetHintQuery{}: func(_ context.Context, q bus.Query) (interface{}, error) {
			nodeID := q.(GetHintQuery).NodeID
			if _, ok := svc.Snapshot().Node(nodeID); !ok {
				return nil, nodeNotFound(nodeID)
			}
			return HintView{NodeID: nodeID, Show: svc.ShowSuggestionHint(nodeID)}, nil
		},
		ListNotificationsQuery{}: func(_ context.Context, q bus.Query) (interface{}, error) {
			recipient := q.(ListNotificationsQuery).RecipientID
			inbox := svc.Inbox()
			list := inbox.List(recipient)
			if list == nil {
				list = []notifications.Notification{}
			}
			return NotificationsView{
				Notifications: list,
				Unread:        inbox.UnreadCount(recipient),
				Subscriptions: map[notifications.Kind]bool{
					notifications.KindCoordinator: inbox.Subscribed(notifications.KindCoordinator),
					notifications.KindContributor: inbox.Subscribed(notifications.KindContributor),
				},
			}, nil
		},
		ListUsersQuery{}: func(context.Context, bus.Query) (interface{}, error) {
			return svc.Users(), nil
		},
	}

	for q, h := range handlers {
		if err := b.Register(q, h); err != nil {
			return err
		}
	}
	return nil
}

func nodeNotFound(id string) error {
	return apperrors.NotFound(apperrors.CodeNodeNotFound, "node not found").
		WithResource(id).
		Build()
}
