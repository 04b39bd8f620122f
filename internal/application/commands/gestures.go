package commands

import (
	"sort"

	"github.com/NewJerseyStyle/TheBlueprint-Project/internal/application/commands/bus"
	apperrors "github.com/NewJerseyStyle/TheBlueprint-Project/internal/errors"
)

// Unmarshaler fills v from an encoded payload. json.Unmarshal bound to a
// body and yaml.Node.Decode both fit.
type Unmarshaler func(v interface{}) error

type decoder func(Unmarshaler) (bus.Command, error)

func gesture[T bus.Command]() decoder {
	return func(unmarshal Unmarshaler) (bus.Command, error) {
		var cmd T
		if unmarshal != nil {
			if err := unmarshal(&cmd); err != nil {
				return nil, apperrors.Validation(apperrors.CodeInvalidInput, "malformed gesture payload").
					WithCause(err).
					Build()
			}
		}
		return cmd, nil
	}
}

var gestures = map[string]decoder{
	"explore":                gesture[ExploreSuggestionsCommand](),
	"drop-connection":        gesture[DropConnectionCommand](),
	"clear-ghosts":           gesture[ClearGhostsCommand](),
	"realize-ghost":          gesture[RealizeGhostCommand](),
	"select":                 gesture[SelectNodeCommand](),
	"click-pane":             gesture[ClickPaneCommand](),
	"context-menu":           gesture[OpenContextMenuCommand](),
	"change-state":           gesture[ChangeStateCommand](),
	"archive":                gesture[ArchiveNodeCommand](),
	"add-child":              gesture[AddChildCommand](),
	"connect":                gesture[ConnectCommand](),
	"duplicate":              gesture[DuplicateNodeCommand](),
	"drag":                   gesture[DragNodeCommand](),
	"add-root":               gesture[AddRootNodeCommand](),
	"add-lane":               gesture[AddLaneCommand](),
	"update-node":            gesture[UpdateNodeCommand](),
	"update-lane":            gesture[UpdateLaneCommand](),
	"toggle-next-small-goal": gesture[ToggleNextSmallGoalCommand](),
	"toggle-suggestions":     gesture[ToggleSuggestionsCommand](),
	"toggle-lane-comments":   gesture[ToggleLaneCommentsCommand](),
	"remove":                 gesture[RemoveNodeCommand](),
	"comment":                gesture[AddCommentCommand](),
	"load-tutorial":          gesture[LoadTutorialCommand](),
	"load-blank":             gesture[LoadBlankCommand](),
	"mark-read":              gesture[MarkNotificationReadCommand](),
	"toggle-subscription":    gesture[ToggleSubscriptionCommand](),
}

// Decode builds the command for a named gesture. A nil unmarshal yields the
// zero command.
func Decode(name string, unmarshal Unmarshaler) (bus.Command, error) {
	d, ok := gestures[name]
	if !ok {
		return nil, apperrors.NotFound(apperrors.CodeUnknownGesture, "unknown gesture").
			WithResource(name).
			Build()
	}
	return d(unmarshal)
}

// Gestures lists the known gesture names in order.
func Gestures() []string {
	names := make([]string, 0, len(gestures))
	for name := range gestures {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
