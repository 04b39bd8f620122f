package mediator

import (
	"context"
	"time"

	"go.uber.org/zap"

	commandbus "github.com/NewJerseyStyle/TheBlueprint-Project/internal/application/commands/bus"
	querybus "github.com/NewJerseyStyle/TheBlueprint-Project/internal/application/queries/bus"
)

// IMediator is what the HTTP adapter and the CLI dispatch through.
// Commands change the canvas and return only an error; queries read it.
type IMediator interface {
	Send(ctx context.Context, command commandbus.Command) error
	Query(ctx context.Context, query querybus.Query) (interface{}, error)
}

// Mediator runs requests through its behaviors and then the matching bus.
type Mediator struct {
	commandBus *commandbus.CommandBus
	queryBus   *querybus.QueryBus
	logger     *zap.Logger
	behaviors  []Behavior
}

// NewMediator creates a mediator with an empty pipeline.
func NewMediator(
	commandBus *commandbus.CommandBus,
	queryBus *querybus.QueryBus,
	logger *zap.Logger,
) *Mediator {
	return &Mediator{
		commandBus: commandBus,
		queryBus:   queryBus,
		logger:     logger,
	}
}

// stage adapts one behavior to either request kind.
type stage struct {
	pre  func(Behavior, context.Context) (context.Context, error)
	post func(Behavior, context.Context, error)
}

// dispatch runs pre-processing in order, then handle, then post-processing
// for exactly the behaviors whose pre-processing succeeded.
func (m *Mediator) dispatch(ctx context.Context, kind, name string, s stage, handle func(context.Context) error) error {
	started := time.Now()

	ran := 0
	var err error
	for _, b := range m.behaviors {
		var next context.Context
		if next, err = s.pre(b, ctx); err != nil {
			break
		}
		ctx = next
		ran++
	}
	if err == nil {
		err = handle(ctx)
	}
	for _, b := range m.behaviors[:ran] {
		s.post(b, ctx, err)
	}

	if err != nil {
		m.logger.Debug("Request rejected",
			zap.String("kind", kind),
			zap.String("type", name),
			zap.Error(err),
			zap.Duration("duration", time.Since(started)))
	}
	return err
}

// Send dispatches a command.
func (m *Mediator) Send(ctx context.Context, command commandbus.Command) error {
	return m.dispatch(ctx, "command", RequestName(command), stage{
		pre: func(b Behavior, ctx context.Context) (context.Context, error) {
			return b.PreProcess(ctx, command)
		},
		post: func(b Behavior, ctx context.Context, err error) {
			b.PostProcess(ctx, command, err)
		},
	}, func(ctx context.Context) error {
		return m.commandBus.Send(ctx, command)
	})
}

// Query dispatches a query and returns its result.
func (m *Mediator) Query(ctx context.Context, query querybus.Query) (interface{}, error) {
	var result interface{}
	err := m.dispatch(ctx, "query", RequestName(query), stage{
		pre: func(b Behavior, ctx context.Context) (context.Context, error) {
			return b.PreProcessQuery(ctx, query)
		},
		post: func(b Behavior, ctx context.Context, err error) {
			b.PostProcessQuery(ctx, query, result, err)
		},
	}, func(ctx context.Context) error {
		var err error
		result, err = m.queryBus.Ask(ctx, query)
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// AddBehavior appends a behavior. Behaviors run in the order added.
func (m *Mediator) AddBehavior(behavior Behavior) {
	m.behaviors = append(m.behaviors, behavior)
	m.logger.Debug("Mediator behavior added", zap.String("behavior", RequestName(behavior)))
}

// GetBehaviors returns the pipeline in order.
func (m *Mediator) GetBehaviors() []Behavior {
	return m.behaviors
}
