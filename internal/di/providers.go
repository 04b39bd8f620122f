package di

import (
	"context"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/NewJerseyStyle/TheBlueprint-Project/internal/application/commands"
	commandbus "github.com/NewJerseyStyle/TheBlueprint-Project/internal/application/commands/bus"
	"github.com/NewJerseyStyle/TheBlueprint-Project/internal/application/mediator"
	"github.com/NewJerseyStyle/TheBlueprint-Project/internal/application/notifications"
	"github.com/NewJerseyStyle/TheBlueprint-Project/internal/application/queries"
	querybus "github.com/NewJerseyStyle/TheBlueprint-Project/internal/application/queries/bus"
	"github.com/NewJerseyStyle/TheBlueprint-Project/internal/application/services"
	"github.com/NewJerseyStyle/TheBlueprint-Project/internal/config"
	"github.com/NewJerseyStyle/TheBlueprint-Project/internal/domain/shared"
	"github.com/NewJerseyStyle/TheBlueprint-Project/internal/infrastructure/memory"
	"github.com/NewJerseyStyle/TheBlueprint-Project/internal/infrastructure/observability"
	"github.com/NewJerseyStyle/TheBlueprint-Project/internal/interfaces/http/rest"
	"github.com/NewJerseyStyle/TheBlueprint-Project/internal/logging"
)

// ProvideLogger builds the application logger from config
func ProvideLogger(cfg *config.Config) (*logging.Logger, error) {
	return logging.New(cfg.Logging)
}

// ProvideZapLogger exposes the underlying zap logger
func ProvideZapLogger(l *logging.Logger) *zap.Logger {
	return l.Logger
}

// ProvideIDGenerator picks sequential ids for tests and replays, uuids
// otherwise.
func ProvideIDGenerator(cfg *config.Config) shared.IDGenerator {
	if cfg.Seed.IDStrategy == "sequential" {
		return shared.NewSequentialIDGenerator(1)
	}
	return shared.NewUUIDGenerator()
}

// ProvideGraphStore creates the in-memory canvas store
func ProvideGraphStore(ids shared.IDGenerator, logger *zap.Logger) *memory.GraphStore {
	return memory.NewGraphStore(ids, logger)
}

// ProvideCollector creates the metrics collector. It is always built so
// recorders have a target; the scrape endpoint follows Metrics.Enabled.
func ProvideCollector(cfg *config.Config) *observability.Collector {
	return observability.NewCollector(cfg.Metrics.Namespace)
}

// ProvideTracer creates the command tracer
func ProvideTracer(cfg *config.Config) trace.Tracer {
	return observability.NewTracer(cfg.Tracing)
}

// ProvideInbox creates the notification inbox
func ProvideInbox() *notifications.Inbox {
	return notifications.NewInbox()
}

// ProvideCanvasService creates the canvas service and loads the tutorial
// when configured to.
func ProvideCanvasService(
	ctx context.Context,
	cfg *config.Config,
	store *memory.GraphStore,
	inbox *notifications.Inbox,
	recorder observability.MutationRecorder,
	logger *zap.Logger,
) (*services.CanvasService, error) {
	svc := services.NewCanvasService(store, cfg.Domain, nil, inbox, recorder, logger)
	if cfg.Seed.LoadTutorial {
		if _, err := svc.LoadTutorial(ctx); err != nil {
			return nil, err
		}
	}
	return svc, nil
}

// ProvideCommandBus creates the command bus with every gesture handler
func ProvideCommandBus(svc *services.CanvasService) (*commandbus.CommandBus, error) {
	b := commandbus.NewCommandBus(commandbus.RecoveryMiddleware())
	if err := commands.RegisterHandlers(b, svc); err != nil {
		return nil, err
	}
	return b, nil
}

// ProvideQueryBus creates the query bus with every read handler
func ProvideQueryBus(svc *services.CanvasService) (*querybus.QueryBus, error) {
	b := querybus.NewQueryBus()
	if err := queries.RegisterHandlers(b, svc); err != nil {
		return nil, err
	}
	return b, nil
}

// ProvideMediator assembles the mediator pipeline. Tracing and metrics run
// outermost so role denials are observed too.
func ProvideMediator(
	cb *commandbus.CommandBus,
	qb *querybus.QueryBus,
	tracer trace.Tracer,
	recorder observability.CommandRecorder,
	logger *zap.Logger,
) *mediator.Mediator {
	m := mediator.NewMediator(cb, qb, logger)
	m.AddBehavior(mediator.NewTracingBehavior(tracer))
	m.AddBehavior(mediator.NewMetricsBehavior(recorder))
	m.AddBehavior(mediator.NewLoggingBehavior(logger))
	m.AddBehavior(mediator.NewRoleBehavior(logger))
	return m
}

// ProvideRouter creates the HTTP router
func ProvideRouter(
	m mediator.IMediator,
	collector *observability.Collector,
	tracer trace.Tracer,
	cfg *config.Config,
	logger *zap.Logger,
) *rest.Router {
	var c *observability.Collector
	if cfg.Metrics.Enabled {
		c = collector
	}
	return rest.NewRouter(m, c, tracer, cfg, logger)
}
