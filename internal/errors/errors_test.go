package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnifiedError_Creation(t *testing.T) {
	tests := []struct {
		name     string
		build    func() *UnifiedError
		wantType ErrorType
		wantSev  ErrorSeverity
		wantText string
	}{
		{
			name: "validation error with details",
			build: func() *UnifiedError {
				return Validation(CodeValidationFailed, "command validation failed").
					WithDetails("NodeID is required").
					Build()
			},
			wantType: ErrorTypeValidation,
			wantSev:  SeverityLow,
			wantText: "[VALIDATION:VALIDATION_FAILED] command validation failed: NodeID is required",
		},
		{
			name: "forbidden error",
			build: func() *UnifiedError {
				return Forbidden(CodeRoleForbidden, "role view cannot mutate the canvas").
					WithUserID("maria").
					Build()
			},
			wantType: ErrorTypeForbidden,
			wantSev:  SeverityMedium,
			wantText: "[FORBIDDEN:ROLE_FORBIDDEN] role view cannot mutate the canvas",
		},
		{
			name: "internal error",
			build: func() *UnifiedError {
				return Internal(CodeInternalError, "boom").Build()
			},
			wantType: ErrorTypeInternal,
			wantSev:  SeverityHigh,
			wantText: "[INTERNAL:INTERNAL_ERROR] boom",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.build()
			assert.Equal(t, tt.wantType, err.Type)
			assert.Equal(t, tt.wantSev, err.Severity)
			assert.Equal(t, tt.wantText, err.Error())
			assert.NotEmpty(t, err.File)
		})
	}
}

func TestUnifiedError_Inspection(t *testing.T) {
	err := NotFound(CodeNodeNotFound, "node not found").WithResource("node-1").Build()
	wrapped := fmt.Errorf("handler: %w", err)

	assert.True(t, IsNotFound(wrapped))
	assert.False(t, IsForbidden(wrapped))
	assert.Equal(t, ErrorTypeNotFound, GetType(wrapped))
	assert.Equal(t, "NODE_NOT_FOUND", GetCode(wrapped))

	plain := errors.New("plain")
	assert.Equal(t, ErrorTypeInternal, GetType(plain))
	assert.Empty(t, GetCode(plain))
}

func TestWrap(t *testing.T) {
	t.Run("nil stays nil", func(t *testing.T) {
		assert.Nil(t, Wrap(nil, "op", "msg"))
	})

	t.Run("foreign error becomes internal", func(t *testing.T) {
		cause := errors.New("disk on fire")
		ue := Wrap(cause, "LoadTutorial", "failed to load seed")
		require.NotNil(t, ue)
		assert.Equal(t, ErrorTypeInternal, ue.Type)
		assert.Equal(t, "LoadTutorial", ue.Operation)
		assert.ErrorIs(t, ue, cause)
	})

	t.Run("unified error keeps its type", func(t *testing.T) {
		orig := Validation(CodeInvalidInput, "bad").Build()
		ue := Wrap(orig, "Connect", "ignored")
		assert.Same(t, orig, ue)
		assert.Equal(t, "Connect", ue.Operation)
	})
}

func TestUnifiedError_String(t *testing.T) {
	err := Forbidden(CodeRoleForbidden, "denied").
		WithOperation("AddComment").
		WithResource("node-1").
		WithCause(errors.New("role view")).
		Build()

	s := err.String()
	assert.Contains(t, s, "Operation: AddComment")
	assert.Contains(t, s, "Resource: node-1")
	assert.Contains(t, s, "Cause: role view")
}
