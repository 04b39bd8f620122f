//go:build wireinject
// +build wireinject

package di

import (
	"context"

	"github.com/google/wire"

	"github.com/NewJerseyStyle/TheBlueprint-Project/internal/application/mediator"
	"github.com/NewJerseyStyle/TheBlueprint-Project/internal/config"
	"github.com/NewJerseyStyle/TheBlueprint-Project/internal/infrastructure/observability"
)

// SuperSet is the main provider set containing all providers
var SuperSet = wire.NewSet(
	ProvideLogger,
	ProvideZapLogger,
	ProvideIDGenerator,
	ProvideGraphStore,
	ProvideCollector,
	wire.Bind(new(observability.MutationRecorder), new(*observability.Collector)),
	wire.Bind(new(observability.CommandRecorder), new(*observability.Collector)),
	ProvideTracer,
	ProvideInbox,
	ProvideCanvasService,
	ProvideCommandBus,
	ProvideQueryBus,
	ProvideMediator,
	wire.Bind(new(mediator.IMediator), new(*mediator.Mediator)),
	ProvideRouter,
	wire.Struct(new(Container), "*"),
)

// InitializeContainer creates a fully wired container
func InitializeContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	wire.Build(SuperSet)
	return nil, nil // Wire will replace this
}
