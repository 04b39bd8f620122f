// Package rest is the HTTP adapter the rendering collaborator talks to.
package rest

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/NewJerseyStyle/TheBlueprint-Project/internal/application/mediator"
	"github.com/NewJerseyStyle/TheBlueprint-Project/internal/config"
	"github.com/NewJerseyStyle/TheBlueprint-Project/internal/infrastructure/observability"
)

// Router creates and configures the HTTP router
type Router struct {
	mediator  mediator.IMediator
	collector *observability.Collector
	tracer    trace.Tracer
	server    config.Server
	metrics   config.Metrics
	logger    *zap.Logger
}

// NewRouter creates a new router instance. A nil collector disables request
// metrics and the scrape endpoint.
func NewRouter(
	m mediator.IMediator,
	collector *observability.Collector,
	tracer trace.Tracer,
	cfg *config.Config,
	logger *zap.Logger,
) *Router {
	return &Router{
		mediator:  m,
		collector: collector,
		tracer:    tracer,
		server:    cfg.Server,
		metrics:   cfg.Metrics,
		logger:    logger,
	}
}

// Setup configures all routes and middleware
func (rt *Router) Setup() http.Handler {
	router := chi.NewRouter()

	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(chimiddleware.Recoverer)
	router.Use(Logger(rt.logger))
	if rt.collector != nil {
		router.Use(observability.HTTPMiddleware(rt.collector, rt.tracer))
	}

	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   rt.server.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID", HeaderUserID, HeaderRole},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	router.Get("/health", rt.healthCheck)
	if rt.collector != nil && rt.metrics.Enabled {
		router.Method(http.MethodGet, rt.metrics.Path, rt.collector.Handler())
	}

	h := NewCanvasHandler(rt.mediator, rt.logger)
	router.Route("/api/v1", func(r chi.Router) {
		r.Use(Identity())

		r.Get("/canvas", h.GetCanvas)
		r.Get("/gestures", h.ListGestures)
		r.Post("/gestures/{gesture}", h.Gesture)
		r.Route("/nodes/{nodeID}", func(r chi.Router) {
			r.Get("/suggestions", h.GetSuggestions)
			r.Get("/hint", h.GetHint)
		})
		r.Get("/notifications", h.ListNotifications)
		r.Get("/users", h.ListUsers)
	})

	return router
}

// healthCheck handles health check requests
func (rt *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}
