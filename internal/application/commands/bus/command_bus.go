// Package bus dispatches typed commands to their registered handlers.
package bus

import (
	"context"
	"fmt"
	"reflect"
	"sync"

	apperrors "github.com/NewJerseyStyle/TheBlueprint-Project/internal/errors"
)

// Command is a canvas gesture. Validate runs before any handler sees it.
type Command interface {
	Validate() error
}

// CommandHandler applies one command type.
type CommandHandler interface {
	Handle(ctx context.Context, cmd Command) error
}

// CommandHandlerFunc lets a plain function handle a command.
type CommandHandlerFunc func(ctx context.Context, cmd Command) error

func (f CommandHandlerFunc) Handle(ctx context.Context, cmd Command) error {
	return f(ctx, cmd)
}

// Middleware wraps every registered handler.
type Middleware func(next CommandHandler) CommandHandler

// CommandBus routes each command to the handler registered for its type.
type CommandBus struct {
	handlers map[reflect.Type]CommandHandler
	pipeline *Pipeline
	mu       sync.RWMutex
}

// NewCommandBus creates a bus whose handlers run inside the given middleware,
// outermost first.
func NewCommandBus(middlewares ...Middleware) *CommandBus {
	return &CommandBus{
		handlers: make(map[reflect.Type]CommandHandler),
		pipeline: NewPipeline(middlewares...),
	}
}

// Register registers a handler for the dynamic type of cmdType.
func (b *CommandBus) Register(cmdType Command, handler CommandHandler) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	t := reflect.TypeOf(cmdType)
	if _, exists := b.handlers[t]; exists {
		return apperrors.Conflict(apperrors.CodeHandlerRegistered,
			fmt.Sprintf("handler already registered for command type %s", t.Name())).
			WithOperation("CommandBus.Register").
			Build()
	}
	b.handlers[t] = b.pipeline.Execute(handler)
	return nil
}

// Registered reports whether a handler exists for cmd's type.
func (b *CommandBus) Registered(cmd Command) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	_, ok := b.handlers[reflect.TypeOf(cmd)]
	return ok
}

// Send validates cmd and dispatches it to its handler
func (b *CommandBus) Send(ctx context.Context, cmd Command) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	b.mu.RLock()
	handler, exists := b.handlers[reflect.TypeOf(cmd)]
	b.mu.RUnlock()

	if !exists {
		return apperrors.NotFound(apperrors.CodeHandlerNotFound,
			fmt.Sprintf("no handler registered for command type %T", cmd)).
			WithOperation("CommandBus.Send").
			Build()
	}
	return handler.Handle(ctx, cmd)
}

// RecoveryMiddleware turns a handler panic into an internal error.
func RecoveryMiddleware() Middleware {
	return func(next CommandHandler) CommandHandler {
		return CommandHandlerFunc(func(ctx context.Context, cmd Command) (err error) {
			defer func() {
				if r := recover(); r != nil {
					err = apperrors.Internal(apperrors.CodeInternalError,
						fmt.Sprintf("command %T panicked: %v", cmd, r)).
						WithOperation("CommandBus.Send").
						Build()
				}
			}()
			return next.Handle(ctx, cmd)
		})
	}
}

// Pipeline is an ordered middleware chain.
type Pipeline struct {
	middlewares []Middleware
}

func NewPipeline(middlewares ...Middleware) *Pipeline {
	return &Pipeline{
		middlewares: middlewares,
	}
}

// Execute wraps handler so that the first middleware runs outermost.
func (p *Pipeline) Execute(handler CommandHandler) CommandHandler {
	for i := len(p.middlewares) - 1; i >= 0; i-- {
		handler = p.middlewares[i](handler)
	}
	return handler
}
