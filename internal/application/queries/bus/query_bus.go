// Package bus dispatches read-only queries to their registered handlers.
package bus

import (
	"context"
	"fmt"
	"reflect"
	"sync"

	apperrors "github.com/NewJerseyStyle/TheBlueprint-Project/internal/errors"
)

// Query is a read of the canvas or its side panels.
type Query interface {
	Validate() error
}

// QueryHandler answers one query type.
type QueryHandler interface {
	Handle(ctx context.Context, query Query) (interface{}, error)
}

// QueryHandlerFunc lets a plain function answer a query.
type QueryHandlerFunc func(ctx context.Context, query Query) (interface{}, error)

func (f QueryHandlerFunc) Handle(ctx context.Context, query Query) (interface{}, error) {
	return f(ctx, query)
}

// QueryBus routes each query to the handler registered for its type.
type QueryBus struct {
	handlers map[reflect.Type]QueryHandler
	mu       sync.RWMutex
}

// NewQueryBus returns an empty bus.
func NewQueryBus() *QueryBus {
	return &QueryBus{
		handlers: make(map[reflect.Type]QueryHandler),
	}
}

// Register registers a handler for the dynamic type of queryType.
func (b *QueryBus) Register(queryType Query, handler QueryHandler) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	t := reflect.TypeOf(queryType)
	if _, exists := b.handlers[t]; exists {
		return apperrors.Conflict(apperrors.CodeHandlerRegistered,
			fmt.Sprintf("handler already registered for query type %s", t.Name())).
			WithOperation("QueryBus.Register").
			Build()
	}
	b.handlers[t] = handler
	return nil
}

// Ask validates query and returns its handler's result.
func (b *QueryBus) Ask(ctx context.Context, query Query) (interface{}, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	b.mu.RLock()
	handler, exists := b.handlers[reflect.TypeOf(query)]
	b.mu.RUnlock()

	if !exists {
		return nil, apperrors.NotFound(apperrors.CodeHandlerNotFound,
			fmt.Sprintf("no handler registered for query type %T", query)).
			WithOperation("QueryBus.Ask").
			Build()
	}
	return handler.Handle(ctx, query)
}
