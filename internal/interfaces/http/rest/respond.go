package rest

import (
	"encoding/json"
	"errors"
	"net/http"

	apperrors "github.com/NewJerseyStyle/TheBlueprint-Project/internal/errors"
)

// ErrorBody is the JSON shape of every failed response.
type ErrorBody struct {
	Error ErrorDetail `json:"error"`
}

type ErrorDetail struct {
	Type    string `json:"type"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

func statusFor(err error) int {
	switch apperrors.GetType(err) {
	case apperrors.ErrorTypeValidation:
		return http.StatusBadRequest
	case apperrors.ErrorTypeNotFound:
		return http.StatusNotFound
	case apperrors.ErrorTypeConflict:
		return http.StatusConflict
	case apperrors.ErrorTypeForbidden:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

func respondJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func respondError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	detail := ErrorDetail{
		Type:    string(apperrors.GetType(err)),
		Code:    apperrors.GetCode(err),
		Message: "An internal error occurred",
	}
	var ue *apperrors.UnifiedError
	if errors.As(err, &ue) && status != http.StatusInternalServerError {
		detail.Message = ue.Message
		detail.Details = ue.Details
	}
	respondJSON(w, status, ErrorBody{Error: detail})
}
