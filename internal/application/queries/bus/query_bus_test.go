package bus

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/NewJerseyStyle/TheBlueprint-Project/internal/errors"
)

type countQuery struct{ Prefix string }

func (q countQuery) Validate() error {
	if q.Prefix == "bad" {
		return apperrors.Validation(apperrors.CodeValidationFailed, "bad prefix").Build()
	}
	return nil
}

type unknownQuery struct{}

func (unknownQuery) Validate() error { return nil }

func TestQueryBus(t *testing.T) {
	b := NewQueryBus()
	h := QueryHandlerFunc(func(ctx context.Context, q Query) (interface{}, error) {
		return len(q.(countQuery).Prefix), nil
	})
	require.NoError(t, b.Register(countQuery{}, h))
	assert.True(t, apperrors.IsConflict(b.Register(countQuery{}, h)))

	got, err := b.Ask(context.Background(), countQuery{Prefix: "node"})
	require.NoError(t, err)
	assert.Equal(t, 4, got)

	_, err = b.Ask(context.Background(), countQuery{Prefix: "bad"})
	assert.True(t, apperrors.IsValidation(err))

	_, err = b.Ask(context.Background(), unknownQuery{})
	assert.True(t, apperrors.IsNotFound(err))
}
