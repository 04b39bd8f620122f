// Package di wires the canvas engine, its adapters and the ambient stack.
package di

import (
	"github.com/NewJerseyStyle/TheBlueprint-Project/internal/application/mediator"
	"github.com/NewJerseyStyle/TheBlueprint-Project/internal/application/notifications"
	"github.com/NewJerseyStyle/TheBlueprint-Project/internal/application/services"
	"github.com/NewJerseyStyle/TheBlueprint-Project/internal/config"
	"github.com/NewJerseyStyle/TheBlueprint-Project/internal/infrastructure/memory"
	"github.com/NewJerseyStyle/TheBlueprint-Project/internal/infrastructure/observability"
	"github.com/NewJerseyStyle/TheBlueprint-Project/internal/interfaces/http/rest"
	"github.com/NewJerseyStyle/TheBlueprint-Project/internal/logging"
)

// Container holds all application dependencies
type Container struct {
	Config    *config.Config
	Logger    *logging.Logger
	Store     *memory.GraphStore
	Inbox     *notifications.Inbox
	Service   *services.CanvasService
	Collector *observability.Collector
	Mediator  *mediator.Mediator
	Router    *rest.Router
}

// Shutdown flushes the logger.
func (c *Container) Shutdown() {
	_ = c.Logger.Sync()
}
