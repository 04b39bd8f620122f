package rest

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/NewJerseyStyle/TheBlueprint-Project/internal/application/commands"
	"github.com/NewJerseyStyle/TheBlueprint-Project/internal/application/mediator"
	"github.com/NewJerseyStyle/TheBlueprint-Project/internal/application/queries"
	querybus "github.com/NewJerseyStyle/TheBlueprint-Project/internal/application/queries/bus"
	"github.com/NewJerseyStyle/TheBlueprint-Project/internal/domain/shared"
	apperrors "github.com/NewJerseyStyle/TheBlueprint-Project/internal/errors"
)

const maxGestureBody = 1 << 20

// inboxGestures answer with the notification panel instead of the canvas.
var inboxGestures = map[string]bool{
	"mark-read":           true,
	"toggle-subscription": true,
}

// CanvasHandler serves the canvas, its gestures and the side panels
type CanvasHandler struct {
	mediator mediator.IMediator
	logger   *zap.Logger
}

// NewCanvasHandler creates a new canvas handler
func NewCanvasHandler(m mediator.IMediator, logger *zap.Logger) *CanvasHandler {
	return &CanvasHandler{mediator: m, logger: logger}
}

// GetCanvas handles GET /canvas
func (h *CanvasHandler) GetCanvas(w http.ResponseWriter, r *http.Request) {
	h.ask(w, r, queries.GetCanvasQuery{})
}

// ListGestures handles GET /gestures
func (h *CanvasHandler) ListGestures(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string][]string{"gestures": commands.Gestures()})
}

// Gesture handles POST /gestures/{gesture}. The body is the gesture's JSON
// payload and may be empty for gestures without arguments.
func (h *CanvasHandler) Gesture(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "gesture")

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxGestureBody))
	if err != nil {
		respondError(w, apperrors.Validation(apperrors.CodeInvalidInput, "unreadable request body").
			WithCause(err).
			Build())
		return
	}

	var unmarshal commands.Unmarshaler
	if len(bytes.TrimSpace(body)) > 0 {
		unmarshal = func(v interface{}) error {
			dec := json.NewDecoder(bytes.NewReader(body))
			dec.DisallowUnknownFields()
			return dec.Decode(v)
		}
	}

	cmd, err := commands.Decode(name, unmarshal)
	if err != nil {
		respondError(w, err)
		return
	}

	if err := h.mediator.Send(r.Context(), cmd); err != nil {
		h.logger.Debug("Gesture rejected",
			zap.String("gesture", name),
			zap.Error(err),
		)
		respondError(w, err)
		return
	}

	if inboxGestures[name] {
		h.ask(w, r, h.notificationsQuery(r))
		return
	}
	h.ask(w, r, queries.GetCanvasQuery{})
}

// GetSuggestions handles GET /nodes/{nodeID}/suggestions
func (h *CanvasHandler) GetSuggestions(w http.ResponseWriter, r *http.Request) {
	h.ask(w, r, queries.GetSuggestionsQuery{NodeID: chi.URLParam(r, "nodeID")})
}

// GetHint handles GET /nodes/{nodeID}/hint
func (h *CanvasHandler) GetHint(w http.ResponseWriter, r *http.Request) {
	h.ask(w, r, queries.GetHintQuery{NodeID: chi.URLParam(r, "nodeID")})
}

// ListNotifications handles GET /notifications for the calling user
func (h *CanvasHandler) ListNotifications(w http.ResponseWriter, r *http.Request) {
	h.ask(w, r, h.notificationsQuery(r))
}

// ListUsers handles GET /users
func (h *CanvasHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	h.ask(w, r, queries.ListUsersQuery{})
}

func (h *CanvasHandler) notificationsQuery(r *http.Request) queries.ListNotificationsQuery {
	id, _ := shared.IdentityFrom(r.Context())
	return queries.ListNotificationsQuery{RecipientID: id.UserID}
}

func (h *CanvasHandler) ask(w http.ResponseWriter, r *http.Request, q querybus.Query) {
	result, err := h.mediator.Query(r.Context(), q)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}
