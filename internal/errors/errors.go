// Package errors provides the unified error model used across the canvas engine.
// Every layer builds errors through ErrorBuilder so that the HTTP adapter and the
// CLI can map them to responses without knowing where they originated.
package errors

import (
	"errors"
	"fmt"
	"runtime"
	"strings"
)

// ============================================================================
// ERROR CLASSIFICATION
// ============================================================================

// ErrorType defines the category of error for proper handling and response.
type ErrorType string

const (
	ErrorTypeValidation ErrorType = "VALIDATION"
	ErrorTypeNotFound   ErrorType = "NOT_FOUND"
	ErrorTypeConflict   ErrorType = "CONFLICT"
	ErrorTypeForbidden  ErrorType = "FORBIDDEN"
	ErrorTypeInternal   ErrorType = "INTERNAL"
)

// ErrorSeverity defines the severity level for logging.
type ErrorSeverity string

const (
	SeverityLow      ErrorSeverity = "LOW"
	SeverityMedium   ErrorSeverity = "MEDIUM"
	SeverityHigh     ErrorSeverity = "HIGH"
	SeverityCritical ErrorSeverity = "CRITICAL"
)

// ============================================================================
// UNIFIED ERROR
// ============================================================================

// UnifiedError is the single error type returned by the engine's outer layers.
type UnifiedError struct {
	Type    ErrorType `json:"type"`
	Code    string    `json:"code"`
	Message string    `json:"message"`
	Details string    `json:"details,omitempty"`

	Operation string `json:"operation,omitempty"`
	Resource  string `json:"resource,omitempty"`
	UserID    string `json:"userId,omitempty"`

	Severity ErrorSeverity `json:"severity"`
	Cause    error         `json:"-"`

	File string `json:"-"`
	Line int    `json:"-"`
}

// Error implements the error interface.
func (e *UnifiedError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("[%s:%s] %s: %s", e.Type, e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("[%s:%s] %s", e.Type, e.Code, e.Message)
}

// Unwrap allows errors.Is and errors.As to reach the underlying cause.
func (e *UnifiedError) Unwrap() error {
	return e.Cause
}

// String provides a multi-line representation for debug logging.
func (e *UnifiedError) String() string {
	var b strings.Builder
	b.WriteString("Error: " + e.Error() + "\n")
	if e.Operation != "" {
		b.WriteString("Operation: " + e.Operation + "\n")
	}
	if e.Resource != "" {
		b.WriteString("Resource: " + e.Resource + "\n")
	}
	if e.UserID != "" {
		b.WriteString("UserID: " + e.UserID + "\n")
	}
	if e.File != "" {
		b.WriteString(fmt.Sprintf("Location: %s:%d\n", e.File, e.Line))
	}
	if e.Cause != nil {
		b.WriteString("Cause: " + e.Cause.Error() + "\n")
	}
	return b.String()
}

// ============================================================================
// BUILDER
// ============================================================================

// ErrorBuilder provides a fluent interface for building a UnifiedError.
type ErrorBuilder struct {
	err *UnifiedError
}

// NewError starts a builder for the given type, code and message.
func NewError(errType ErrorType, code ErrorCode, message string) *ErrorBuilder {
	e := &UnifiedError{
		Type:     errType,
		Code:     code.String(),
		Message:  message,
		Severity: defaultSeverity(errType),
	}
	if _, file, line, ok := runtime.Caller(2); ok {
		e.File = file
		e.Line = line
	}
	return &ErrorBuilder{err: e}
}

func (b *ErrorBuilder) WithDetails(details string) *ErrorBuilder {
	b.err.Details = details
	return b
}

func (b *ErrorBuilder) WithOperation(operation string) *ErrorBuilder {
	b.err.Operation = operation
	return b
}

func (b *ErrorBuilder) WithResource(resource string) *ErrorBuilder {
	b.err.Resource = resource
	return b
}

func (b *ErrorBuilder) WithUserID(userID string) *ErrorBuilder {
	b.err.UserID = userID
	return b
}

func (b *ErrorBuilder) WithSeverity(severity ErrorSeverity) *ErrorBuilder {
	b.err.Severity = severity
	return b
}

func (b *ErrorBuilder) WithCause(cause error) *ErrorBuilder {
	b.err.Cause = cause
	return b
}

// Build returns the finished error.
func (b *ErrorBuilder) Build() *UnifiedError {
	return b.err
}

func defaultSeverity(t ErrorType) ErrorSeverity {
	switch t {
	case ErrorTypeInternal:
		return SeverityHigh
	case ErrorTypeForbidden, ErrorTypeConflict:
		return SeverityMedium
	default:
		return SeverityLow
	}
}

// ============================================================================
// CONSTRUCTORS
// ============================================================================

func Validation(code ErrorCode, message string) *ErrorBuilder {
	return NewError(ErrorTypeValidation, code, message)
}

func NotFound(code ErrorCode, message string) *ErrorBuilder {
	return NewError(ErrorTypeNotFound, code, message)
}

func Conflict(code ErrorCode, message string) *ErrorBuilder {
	return NewError(ErrorTypeConflict, code, message)
}

func Forbidden(code ErrorCode, message string) *ErrorBuilder {
	return NewError(ErrorTypeForbidden, code, message)
}

func Internal(code ErrorCode, message string) *ErrorBuilder {
	return NewError(ErrorTypeInternal, code, message)
}

// Wrap converts an arbitrary error into an INTERNAL UnifiedError unless it
// already is one, in which case the operation is filled in when empty.
func Wrap(err error, operation, message string) *UnifiedError {
	if err == nil {
		return nil
	}
	var ue *UnifiedError
	if errors.As(err, &ue) {
		if ue.Operation == "" {
			ue.Operation = operation
		}
		return ue
	}
	return Internal(CodeInternalError, message).
		WithOperation(operation).
		WithCause(err).
		Build()
}

// ============================================================================
// INSPECTION
// ============================================================================

// IsType reports whether err is a UnifiedError of the given type.
func IsType(err error, errType ErrorType) bool {
	var ue *UnifiedError
	if errors.As(err, &ue) {
		return ue.Type == errType
	}
	return false
}

func IsValidation(err error) bool { return IsType(err, ErrorTypeValidation) }
func IsNotFound(err error) bool   { return IsType(err, ErrorTypeNotFound) }
func IsConflict(err error) bool   { return IsType(err, ErrorTypeConflict) }
func IsForbidden(err error) bool  { return IsType(err, ErrorTypeForbidden) }
func IsInternal(err error) bool   { return IsType(err, ErrorTypeInternal) }

// GetType returns the error type, INTERNAL for foreign errors.
func GetType(err error) ErrorType {
	var ue *UnifiedError
	if errors.As(err, &ue) {
		return ue.Type
	}
	return ErrorTypeInternal
}

// GetCode returns the error code, empty for foreign errors.
func GetCode(err error) string {
	var ue *UnifiedError
	if errors.As(err, &ue) {
		return ue.Code
	}
	return ""
}
