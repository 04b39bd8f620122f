// Package mediator is the single entry point for adapters: it runs every
// command and query through a pipeline of behaviors before the buses.
package mediator

import (
	"context"
	"fmt"
	"reflect"
	"strings"
	"time"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	commandbus "github.com/NewJerseyStyle/TheBlueprint-Project/internal/application/commands/bus"
	querybus "github.com/NewJerseyStyle/TheBlueprint-Project/internal/application/queries/bus"
	"github.com/NewJerseyStyle/TheBlueprint-Project/internal/domain/shared"
	apperrors "github.com/NewJerseyStyle/TheBlueprint-Project/internal/errors"
	"github.com/NewJerseyStyle/TheBlueprint-Project/internal/infrastructure/observability"
)

// Behavior defines the interface for mediator pipeline behaviors
// Behaviors are cross-cutting concerns that apply to all requests
type Behavior interface {
	// PreProcess is called before command execution. The returned context
	// is handed to later behaviors, the handler and PostProcess.
	PreProcess(ctx context.Context, command commandbus.Command) (context.Context, error)

	// PostProcess is called after command execution
	PostProcess(ctx context.Context, command commandbus.Command, err error)

	// PreProcessQuery is called before query execution
	PreProcessQuery(ctx context.Context, query querybus.Query) (context.Context, error)

	// PostProcessQuery is called after query execution
	PostProcessQuery(ctx context.Context, query querybus.Query, result interface{}, err error)
}

// RequestName is the bare type name of a command or query.
func RequestName(request interface{}) string {
	t := reflect.TypeOf(request)
	for t != nil && t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t == nil {
		return "nil"
	}
	return t.Name()
}

func status(err error) string {
	if err == nil {
		return "ok"
	}
	return strings.ToLower(string(apperrors.GetType(err)))
}

// ============================================================================
// ROLE
// ============================================================================

// RoleBehavior rejects requests whose acting role lacks the needed
// permission. Commands need PermissionMutate and queries PermissionRead
// unless they implement shared.Permissioned.
type RoleBehavior struct {
	logger *zap.Logger
}

// NewRoleBehavior creates a new role gating behavior
func NewRoleBehavior(logger *zap.Logger) *RoleBehavior {
	return &RoleBehavior{logger: logger}
}

func (b *RoleBehavior) authorize(ctx context.Context, request interface{}, fallback shared.Permission) error {
	need := fallback
	if p, ok := request.(shared.Permissioned); ok {
		need = p.Permission()
	}

	id, ok := shared.IdentityFrom(ctx)
	if !ok {
		return apperrors.Forbidden(apperrors.CodeMissingIdentity, "no acting identity").
			WithOperation(RequestName(request)).
			Build()
	}
	if !id.Role.Allows(need) {
		b.logger.Warn("Request denied",
			zap.String("type", RequestName(request)),
			zap.String("userID", id.UserID),
			zap.String("role", string(id.Role)),
			zap.String("permission", need.String()))
		return apperrors.Forbidden(apperrors.CodeRoleForbidden,
			fmt.Sprintf("role %q may not %s", id.Role, need)).
			WithOperation(RequestName(request)).
			WithUserID(id.UserID).
			Build()
	}
	return nil
}

func (b *RoleBehavior) PreProcess(ctx context.Context, command commandbus.Command) (context.Context, error) {
	return ctx, b.authorize(ctx, command, shared.PermissionMutate)
}

func (b *RoleBehavior) PostProcess(ctx context.Context, command commandbus.Command, err error) {}

func (b *RoleBehavior) PreProcessQuery(ctx context.Context, query querybus.Query) (context.Context, error) {
	return ctx, b.authorize(ctx, query, shared.PermissionRead)
}

func (b *RoleBehavior) PostProcessQuery(ctx context.Context, query querybus.Query, result interface{}, err error) {
}

// ============================================================================
// LOGGING
// ============================================================================

// LoggingBehavior logs all commands and queries
type LoggingBehavior struct {
	logger *zap.Logger
}

// NewLoggingBehavior creates a new logging behavior
func NewLoggingBehavior(logger *zap.Logger) *LoggingBehavior {
	return &LoggingBehavior{logger: logger}
}

func (b *LoggingBehavior) PreProcess(ctx context.Context, command commandbus.Command) (context.Context, error) {
	b.logger.Info("Executing command",
		zap.String("type", RequestName(command)),
		zap.Any("command", command))
	return ctx, nil
}

func (b *LoggingBehavior) PostProcess(ctx context.Context, command commandbus.Command, err error) {
	if err != nil {
		b.logger.Error("Command failed",
			zap.String("type", RequestName(command)),
			zap.Error(err))
	} else {
		b.logger.Info("Command succeeded",
			zap.String("type", RequestName(command)))
	}
}

func (b *LoggingBehavior) PreProcessQuery(ctx context.Context, query querybus.Query) (context.Context, error) {
	b.logger.Debug("Executing query",
		zap.String("type", RequestName(query)),
		zap.Any("query", query))
	return ctx, nil
}

func (b *LoggingBehavior) PostProcessQuery(ctx context.Context, query querybus.Query, result interface{}, err error) {
	if err != nil {
		b.logger.Error("Query failed",
			zap.String("type", RequestName(query)),
			zap.Error(err))
	} else {
		b.logger.Debug("Query succeeded",
			zap.String("type", RequestName(query)))
	}
}

// ============================================================================
// METRICS
// ============================================================================

type startKey struct{}

// MetricsBehavior records command and query counts and durations
type MetricsBehavior struct {
	recorder observability.CommandRecorder
	now      func() time.Time
}

// NewMetricsBehavior creates a new metrics behavior
func NewMetricsBehavior(recorder observability.CommandRecorder) *MetricsBehavior {
	if recorder == nil {
		recorder = observability.NopRecorder{}
	}
	return &MetricsBehavior{recorder: recorder, now: time.Now}
}

func (b *MetricsBehavior) start(ctx context.Context) context.Context {
	return context.WithValue(ctx, startKey{}, b.now())
}

func (b *MetricsBehavior) record(ctx context.Context, name string, err error) {
	started, ok := ctx.Value(startKey{}).(time.Time)
	if !ok {
		return
	}
	b.recorder.RecordCommand(name, status(err), b.now().Sub(started))
}

func (b *MetricsBehavior) PreProcess(ctx context.Context, command commandbus.Command) (context.Context, error) {
	return b.start(ctx), nil
}

func (b *MetricsBehavior) PostProcess(ctx context.Context, command commandbus.Command, err error) {
	b.record(ctx, RequestName(command), err)
}

func (b *MetricsBehavior) PreProcessQuery(ctx context.Context, query querybus.Query) (context.Context, error) {
	return b.start(ctx), nil
}

func (b *MetricsBehavior) PostProcessQuery(ctx context.Context, query querybus.Query, result interface{}, err error) {
	b.record(ctx, RequestName(query), err)
}

// ============================================================================
// TRACING
// ============================================================================

// TracingBehavior wraps every request in a span
type TracingBehavior struct {
	tracer trace.Tracer
}

// NewTracingBehavior creates a new tracing behavior
func NewTracingBehavior(tracer trace.Tracer) *TracingBehavior {
	return &TracingBehavior{tracer: tracer}
}

func (b *TracingBehavior) start(ctx context.Context, request interface{}) context.Context {
	id, _ := shared.IdentityFrom(ctx)
	ctx, _ = observability.StartCommandSpan(ctx, b.tracer, RequestName(request), id.UserID, string(id.Role))
	return ctx
}

func (b *TracingBehavior) PreProcess(ctx context.Context, command commandbus.Command) (context.Context, error) {
	return b.start(ctx, command), nil
}

func (b *TracingBehavior) PostProcess(ctx context.Context, command commandbus.Command, err error) {
	observability.EndSpan(trace.SpanFromContext(ctx), err)
}

func (b *TracingBehavior) PreProcessQuery(ctx context.Context, query querybus.Query) (context.Context, error) {
	return b.start(ctx, query), nil
}

func (b *TracingBehavior) PostProcessQuery(ctx context.Context, query querybus.Query, result interface{}, err error) {
	observability.EndSpan(trace.SpanFromContext(ctx), err)
}
