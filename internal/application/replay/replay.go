// Package replay runs a scripted sequence of gestures through the mediator
// and summarizes the resulting canvas.
package replay

import (
	"context"
	"io"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/NewJerseyStyle/TheBlueprint-Project/internal/application/commands"
	"github.com/NewJerseyStyle/TheBlueprint-Project/internal/application/mediator"
	"github.com/NewJerseyStyle/TheBlueprint-Project/internal/application/queries"
	"github.com/NewJerseyStyle/TheBlueprint-Project/internal/domain/shared"
	apperrors "github.com/NewJerseyStyle/TheBlueprint-Project/internal/errors"
)

// Script is a replayable gesture sequence.
//
//	canvas: tutorial
//	user: sarah
//	role: edit
//	steps:
//	  - gesture: explore
//	    with: {node_id: node-begin}
type Script struct {
	Canvas      string `yaml:"canvas"`
	User        string `yaml:"user"`
	Role        string `yaml:"role"`
	StopOnError bool   `yaml:"stop_on_error"`
	Steps       []Step `yaml:"steps"`
}

// Step is one gesture with its payload. As overrides the script's user for
// this step only.
type Step struct {
	Gesture string    `yaml:"gesture"`
	As      string    `yaml:"as"`
	With    yaml.Node `yaml:"with"`
}

// Tutorial reports whether the script starts from the tutorial canvas.
func (s Script) Tutorial() bool { return s.Canvas != "blank" }

// Parse reads and checks a script.
func Parse(r io.Reader) (Script, error) {
	var s Script
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil {
		return Script{}, apperrors.Validation(apperrors.CodeInvalidInput, "malformed replay script").
			WithCause(err).
			Build()
	}
	if s.Canvas == "" {
		s.Canvas = "tutorial"
	}
	if s.Role == "" {
		s.Role = string(shared.RoleEdit)
	}
	if s.Canvas != "tutorial" && s.Canvas != "blank" {
		return Script{}, apperrors.Validation(apperrors.CodeInvalidInput, "canvas must be tutorial or blank").
			WithDetails(s.Canvas).
			Build()
	}
	if s.User == "" {
		return Script{}, apperrors.Validation(apperrors.CodeInvalidInput, "script needs a user").Build()
	}
	if _, ok := shared.ParseRole(s.Role); !ok {
		return Script{}, apperrors.Validation(apperrors.CodeUnknownRole, "unknown canvas role").
			WithDetails(s.Role).
			Build()
	}
	return s, nil
}

// StepResult is the outcome of one step.
type StepResult struct {
	Index   int
	Gesture string
	Err     error
}

// Summary describes the canvas after a replay.
type Summary struct {
	Steps         []StepResult
	Nodes         int
	Lanes         int
	Ghosts        int
	Edges         int
	Provisional   int
	Selected      string
	Notifications int
	Unread        int
}

// Failed counts the steps that returned an error.
func (s Summary) Failed() int {
	n := 0
	for _, st := range s.Steps {
		if st.Err != nil {
			n++
		}
	}
	return n
}

// Runner replays scripts against a mediator.
type Runner struct {
	mediator mediator.IMediator
	logger   *zap.Logger
}

// NewRunner creates a new replay runner
func NewRunner(m mediator.IMediator, logger *zap.Logger) *Runner {
	return &Runner{mediator: m, logger: logger}
}

// Run sends each step under the script's identity. Failed steps are
// recorded and, unless StopOnError is set, skipped.
func (r *Runner) Run(ctx context.Context, s Script) (Summary, error) {
	role, _ := shared.ParseRole(s.Role)
	var sum Summary

	for i, step := range s.Steps {
		user := s.User
		if step.As != "" {
			user = step.As
		}
		stepCtx := shared.WithIdentity(ctx, shared.Identity{UserID: user, Role: role})

		var unmarshal commands.Unmarshaler
		if step.With.Kind != 0 {
			unmarshal = step.With.Decode
		}
		cmd, err := commands.Decode(step.Gesture, unmarshal)
		if err == nil {
			err = r.mediator.Send(stepCtx, cmd)
		}
		sum.Steps = append(sum.Steps, StepResult{Index: i, Gesture: step.Gesture, Err: err})
		if err != nil {
			r.logger.Warn("Replay step failed",
				zap.Int("step", i),
				zap.String("gesture", step.Gesture),
				zap.Error(err),
			)
			if s.StopOnError {
				break
			}
		}
	}

	reader := shared.WithIdentity(ctx, shared.Identity{UserID: s.User, Role: role})
	res, err := r.mediator.Query(reader, queries.GetCanvasQuery{})
	if err != nil {
		return sum, err
	}
	view := res.(queries.CanvasView)
	for _, n := range view.Nodes {
		switch {
		case n.IsLane():
			sum.Lanes++
		case n.IsGhost():
			sum.Ghosts++
		default:
			sum.Nodes++
		}
	}
	for _, e := range view.Edges {
		if e.Provisional {
			sum.Provisional++
		} else {
			sum.Edges++
		}
	}
	sum.Selected = view.Selected

	res, err = r.mediator.Query(reader, queries.ListNotificationsQuery{RecipientID: s.User})
	if err != nil {
		return sum, err
	}
	inbox := res.(queries.NotificationsView)
	sum.Notifications = len(inbox.Notifications)
	sum.Unread = inbox.Unread
	return sum, nil
}
