package observability

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/NewJerseyStyle/TheBlueprint-Project/internal/config"
)

// NewTracer returns the tracer for command dispatch. When tracing is disabled
// the tracer is a no-op; otherwise spans go to the global provider, which an
// exporter can be installed on by the embedding process.
func NewTracer(cfg config.Tracing) trace.Tracer {
	if !cfg.Enabled {
		return noop.NewTracerProvider().Tracer(cfg.ServiceName)
	}
	return otel.Tracer(cfg.ServiceName)
}

// StartCommandSpan opens a span for one dispatched command or query.
func StartCommandSpan(ctx context.Context, tracer trace.Tracer, name, userID, role string) (context.Context, trace.Span) {
	return tracer.Start(ctx, name,
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(
			attribute.String("command.name", name),
			attribute.String("user.id", userID),
			attribute.String("user.role", role),
		),
	)
}

// EndSpan records the outcome on the span and ends it.
func EndSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}
