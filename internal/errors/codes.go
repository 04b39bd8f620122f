package errors

// ErrorCode represents a unique error code for a specific failure scenario.
type ErrorCode string

const (
	// Canvas
	CodeNodeNotFound     ErrorCode = "NODE_NOT_FOUND"
	CodeNodeNotGhost     ErrorCode = "NODE_NOT_GHOST"
	CodeInvalidNodeState ErrorCode = "INVALID_NODE_STATE"
	CodeInvalidSnapshot  ErrorCode = "INVALID_SNAPSHOT"
	CodeDanglingEdge     ErrorCode = "DANGLING_EDGE"

	// Notifications
	CodeNotificationNotFound ErrorCode = "NOTIFICATION_NOT_FOUND"

	// Access
	CodeRoleForbidden   ErrorCode = "ROLE_FORBIDDEN"
	CodeUnknownRole     ErrorCode = "UNKNOWN_ROLE"
	CodeMissingIdentity ErrorCode = "MISSING_IDENTITY"

	// Input
	CodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	CodeInvalidInput     ErrorCode = "INVALID_INPUT"
	CodeUnknownGesture   ErrorCode = "UNKNOWN_GESTURE"

	// Dispatch
	CodeHandlerNotFound   ErrorCode = "HANDLER_NOT_FOUND"
	CodeHandlerRegistered ErrorCode = "HANDLER_ALREADY_REGISTERED"

	// Configuration and seed data
	CodeConfigInvalid ErrorCode = "CONFIG_INVALID"
	CodeConfigLoad    ErrorCode = "CONFIG_LOAD_FAILED"
	CodeSeedInvalid   ErrorCode = "SEED_INVALID"

	CodeInternalError ErrorCode = "INTERNAL_ERROR"
)

// String returns the string representation of the error code.
func (c ErrorCode) String() string {
	return string(c)
}
