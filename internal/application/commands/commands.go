// Package commands defines the canvas gestures as typed commands and binds
// them to the canvas service.
package commands

import (
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/NewJerseyStyle/TheBlueprint-Project/internal/domain/canvas"
	"github.com/NewJerseyStyle/TheBlueprint-Project/internal/domain/shared"
	apperrors "github.com/NewJerseyStyle/TheBlueprint-Project/internal/errors"
)

const (
	MaxTitleLength   = 200
	MaxCommentLength = 2000
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func check(cmd interface{}) error {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		if err := validate.RegisterValidation("nodestate", func(fl validator.FieldLevel) bool {
			return canvas.NodeState(fl.Field().String()).Valid()
		}); err != nil {
			panic("commands: register nodestate validation: " + err.Error())
		}
	})
	err := validate.Struct(cmd)
	if err == nil {
		return nil
	}
	var details []string
	if verrs, ok := err.(validator.ValidationErrors); ok {
		for _, fe := range verrs {
			details = append(details, fe.Field()+" failed "+fe.Tag())
		}
	} else {
		details = append(details, err.Error())
	}
	return apperrors.Validation(apperrors.CodeValidationFailed, "invalid command").
		WithDetails(strings.Join(details, "; ")).
		Build()
}

// ============================================================================
// SUGGESTIONS AND GHOSTS
// ============================================================================

// ExploreSuggestionsCommand materializes ghosts around a node.
type ExploreSuggestionsCommand struct {
	NodeID string `json:"nodeId" yaml:"node_id" validate:"required"`
}

func (c ExploreSuggestionsCommand) Validate() error { return check(c) }

// DropConnectionCommand materializes ghosts at an absolute canvas point
// where a dragged connection was released over empty space.
type DropConnectionCommand struct {
	NodeID string  `json:"nodeId" yaml:"node_id" validate:"required"`
	X      float64 `json:"x" yaml:"x"`
	Y      float64 `json:"y" yaml:"y"`
}

func (c DropConnectionCommand) Validate() error { return check(c) }

// ClearGhostsCommand removes every ghost and provisional edge.
type ClearGhostsCommand struct{}

func (c ClearGhostsCommand) Validate() error { return nil }

// RealizeGhostCommand turns a ghost into a real node.
type RealizeGhostCommand struct {
	GhostID string `json:"ghostId" yaml:"ghost_id" validate:"required"`
}

func (c RealizeGhostCommand) Validate() error { return check(c) }

// ============================================================================
// SELECTION
// ============================================================================

// SelectNodeCommand selects a node. Selection is open to every role; only
// editors get the ghost side effects of clearing and realizing on click.
type SelectNodeCommand struct {
	NodeID string `json:"nodeId" yaml:"node_id" validate:"required"`
}

func (c SelectNodeCommand) Validate() error { return check(c) }

func (c SelectNodeCommand) Permission() shared.Permission { return shared.PermissionRead }

type ClickPaneCommand struct{}

func (c ClickPaneCommand) Validate() error { return nil }

func (c ClickPaneCommand) Permission() shared.Permission { return shared.PermissionRead }

type OpenContextMenuCommand struct {
	NodeID string `json:"nodeId" yaml:"node_id" validate:"required"`
}

func (c OpenContextMenuCommand) Validate() error { return check(c) }

func (c OpenContextMenuCommand) Permission() shared.Permission { return shared.PermissionRead }

// ============================================================================
// NODE LIFECYCLE
// ============================================================================

type ChangeStateCommand struct {
	NodeID string           `json:"nodeId" yaml:"node_id" validate:"required"`
	State  canvas.NodeState `json:"state" yaml:"state" validate:"required,nodestate"`
}

func (c ChangeStateCommand) Validate() error { return check(c) }

type ArchiveNodeCommand struct {
	NodeID string `json:"nodeId" yaml:"node_id" validate:"required"`
}

func (c ArchiveNodeCommand) Validate() error { return check(c) }

// AddChildCommand creates a node below its parent and connects them. An
// empty Title uses the state's default.
type AddChildCommand struct {
	ParentID string           `json:"parentId" yaml:"parent_id" validate:"required"`
	State    canvas.NodeState `json:"state" yaml:"state" validate:"required,nodestate"`
	Title    string           `json:"title,omitempty" yaml:"title" validate:"max=200"`
}

func (c AddChildCommand) Validate() error { return check(c) }

type ConnectCommand struct {
	SourceID     string `json:"sourceId" yaml:"source_id" validate:"required"`
	TargetID     string `json:"targetId" yaml:"target_id" validate:"required"`
	SourceHandle string `json:"sourceHandle,omitempty" yaml:"source_handle"`
	TargetHandle string `json:"targetHandle,omitempty" yaml:"target_handle"`
}

func (c ConnectCommand) Validate() error { return check(c) }

type DuplicateNodeCommand struct {
	NodeID string `json:"nodeId" yaml:"node_id" validate:"required"`
}

func (c DuplicateNodeCommand) Validate() error { return check(c) }

// DragNodeCommand reports a drag-end position in the node's current frame
// (lane-local for lane members). Strategic nodes are then re-parented into
// whichever lane contains them; lanes just move.
type DragNodeCommand struct {
	NodeID string  `json:"nodeId" yaml:"node_id" validate:"required"`
	X      float64 `json:"x" yaml:"x"`
	Y      float64 `json:"y" yaml:"y"`
}

func (c DragNodeCommand) Validate() error { return check(c) }

type AddRootNodeCommand struct {
	State canvas.NodeState `json:"state" yaml:"state" validate:"required,nodestate"`
	X     float64          `json:"x" yaml:"x"`
	Y     float64          `json:"y" yaml:"y"`
}

func (c AddRootNodeCommand) Validate() error { return check(c) }

type AddLaneCommand struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

func (c AddLaneCommand) Validate() error { return nil }

// UpdateNodeCommand applies a partial update to a strategic node.
type UpdateNodeCommand struct {
	NodeID string           `json:"nodeId" yaml:"node_id" validate:"required"`
	Patch  canvas.NodePatch `json:"patch" yaml:"patch"`
}

func (c UpdateNodeCommand) Validate() error {
	if err := check(c); err != nil {
		return err
	}
	if c.Patch.Empty() {
		return apperrors.Validation(apperrors.CodeInvalidInput, "patch changes nothing").Build()
	}
	if c.Patch.State != nil && !c.Patch.State.Valid() {
		return apperrors.Validation(apperrors.CodeInvalidNodeState, "unknown node state").
			WithDetails(string(*c.Patch.State)).
			Build()
	}
	if c.Patch.Title != nil && len(*c.Patch.Title) > MaxTitleLength {
		return apperrors.Validation(apperrors.CodeValidationFailed, "title exceeds maximum length").Build()
	}
	return nil
}

// UpdateLaneCommand applies a partial update to a lane.
type UpdateLaneCommand struct {
	LaneID string           `json:"laneId" yaml:"lane_id" validate:"required"`
	Patch  canvas.LanePatch `json:"patch" yaml:"patch"`
}

func (c UpdateLaneCommand) Validate() error {
	if err := check(c); err != nil {
		return err
	}
	if o := c.Patch.Orientation; o != nil && *o != canvas.OrientationVertical && *o != canvas.OrientationHorizontal {
		return apperrors.Validation(apperrors.CodeInvalidInput, "unknown lane orientation").
			WithDetails(string(*o)).
			Build()
	}
	if sz := c.Patch.Size; sz != nil && (sz.Width <= 0 || sz.Height <= 0) {
		return apperrors.Validation(apperrors.CodeInvalidInput, "lane size must be positive").Build()
	}
	return nil
}

type ToggleNextSmallGoalCommand struct {
	NodeID string `json:"nodeId" yaml:"node_id" validate:"required"`
}

func (c ToggleNextSmallGoalCommand) Validate() error { return check(c) }

type ToggleSuggestionsCommand struct {
	NodeID string `json:"nodeId" yaml:"node_id" validate:"required"`
}

func (c ToggleSuggestionsCommand) Validate() error { return check(c) }

type ToggleLaneCommentsCommand struct {
	LaneID string `json:"laneId" yaml:"lane_id" validate:"required"`
}

func (c ToggleLaneCommentsCommand) Validate() error { return check(c) }

// RemoveNodeCommand deletes a node or lane. Removing a lane keeps its
// children at their absolute positions.
type RemoveNodeCommand struct {
	NodeID string `json:"nodeId" yaml:"node_id" validate:"required"`
}

func (c RemoveNodeCommand) Validate() error { return check(c) }

// ============================================================================
// COMMENTS AND NOTIFICATIONS
// ============================================================================

// AddCommentCommand posts a comment as the acting user.
type AddCommentCommand struct {
	NodeID string `json:"nodeId" yaml:"node_id" validate:"required"`
	Text   string `json:"text" yaml:"text" validate:"required,max=2000"`
}

func (c AddCommentCommand) Validate() error { return check(c) }

func (c AddCommentCommand) Permission() shared.Permission { return shared.PermissionComment }

type MarkNotificationReadCommand struct {
	NotificationID string `json:"notificationId" yaml:"notification_id" validate:"required"`
}

func (c MarkNotificationReadCommand) Validate() error { return check(c) }

func (c MarkNotificationReadCommand) Permission() shared.Permission { return shared.PermissionRead }

type ToggleSubscriptionCommand struct {
	Kind string `json:"type" yaml:"type" validate:"required,oneof=coordinator contributor"`
}

func (c ToggleSubscriptionCommand) Validate() error { return check(c) }

func (c ToggleSubscriptionCommand) Permission() shared.Permission { return shared.PermissionRead }

// ============================================================================
// CANVAS LOADING
// ============================================================================

type LoadTutorialCommand struct{}

func (c LoadTutorialCommand) Validate() error { return nil }

type LoadBlankCommand struct{}

func (c LoadBlankCommand) Validate() error { return nil }
