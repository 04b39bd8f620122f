// Package observability provides Prometheus metrics and OpenTelemetry tracing
// for the canvas engine.
package observability

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/NewJerseyStyle/TheBlueprint-Project/internal/domain/canvas"
)

// MutationRecorder receives canvas-level events from the canvas service.
type MutationRecorder interface {
	GhostsMaterialized(count int)
	GhostRealized()
	StateTransition(state canvas.NodeState)
	ObserveSnapshot(snap canvas.Snapshot)
}

// CommandRecorder receives dispatch outcomes from the mediator.
type CommandRecorder interface {
	RecordCommand(name, status string, duration time.Duration)
}

// Collector holds all Prometheus metrics of one engine instance.
type Collector struct {
	// registry is private to the collector so tests can build many.
	registry *prometheus.Registry

	// HTTP metrics
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	// Command metrics
	Commands        *prometheus.CounterVec
	CommandDuration *prometheus.HistogramVec

	// Canvas metrics
	GhostsMaterializedTotal prometheus.Counter
	GhostsRealizedTotal     prometheus.Counter
	StateTransitions        *prometheus.CounterVec
	Nodes                   *prometheus.GaugeVec
	Edges                   *prometheus.GaugeVec
}

// NewCollector creates a collector registered on a fresh registry.
func NewCollector(namespace string) *Collector {
	registry := prometheus.NewRegistry()

	c := &Collector{
		registry: registry,
		HTTPRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		HTTPDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		Commands: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "commands_total",
				Help:      "Total number of dispatched commands by outcome",
			},
			[]string{"command", "status"},
		),
		CommandDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "command_duration_seconds",
				Help:      "Command dispatch duration in seconds",
				Buckets:   []float64{.0001, .0005, .001, .005, .01, .05, .1, .5},
			},
			[]string{"command"},
		),
		GhostsMaterializedTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "ghosts_materialized_total",
				Help:      "Total number of ghost nodes materialized",
			},
		),
		GhostsRealizedTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "ghosts_realized_total",
				Help:      "Total number of ghost nodes realized",
			},
		),
		StateTransitions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "state_transitions_total",
				Help:      "Total number of node state changes by target state",
			},
			[]string{"state"},
		),
		Nodes: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "canvas_nodes",
				Help:      "Current number of nodes by kind",
			},
			[]string{"kind"},
		),
		Edges: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "canvas_edges",
				Help:      "Current number of edges by status",
			},
			[]string{"status"},
		),
	}

	registry.MustRegister(
		c.HTTPRequests,
		c.HTTPDuration,
		c.Commands,
		c.CommandDuration,
		c.GhostsMaterializedTotal,
		c.GhostsRealizedTotal,
		c.StateTransitions,
		c.Nodes,
		c.Edges,
	)
	return c
}

// GetRegistry returns the registry backing this collector.
func (c *Collector) GetRegistry() *prometheus.Registry {
	return c.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{Registry: c.registry})
}

func (c *Collector) RecordCommand(name, status string, duration time.Duration) {
	c.Commands.WithLabelValues(name, status).Inc()
	c.CommandDuration.WithLabelValues(name).Observe(duration.Seconds())
}

func (c *Collector) GhostsMaterialized(count int) {
	c.GhostsMaterializedTotal.Add(float64(count))
}

func (c *Collector) GhostRealized() {
	c.GhostsRealizedTotal.Inc()
}

func (c *Collector) StateTransition(state canvas.NodeState) {
	c.StateTransitions.WithLabelValues(string(state)).Inc()
}

// ObserveSnapshot sets the node and edge gauges from a committed snapshot.
func (c *Collector) ObserveSnapshot(snap canvas.Snapshot) {
	var strategic, lanes, ghosts float64
	for _, n := range snap.Nodes {
		switch {
		case n.IsLane():
			lanes++
		case n.IsGhost():
			ghosts++
		default:
			strategic++
		}
	}
	var committed, provisional float64
	for _, e := range snap.Edges {
		if e.Provisional {
			provisional++
		} else {
			committed++
		}
	}
	c.Nodes.WithLabelValues("strategic").Set(strategic)
	c.Nodes.WithLabelValues("lane").Set(lanes)
	c.Nodes.WithLabelValues("ghost").Set(ghosts)
	c.Edges.WithLabelValues("committed").Set(committed)
	c.Edges.WithLabelValues("provisional").Set(provisional)
}

// NopRecorder discards every event. It satisfies both recorder interfaces.
type NopRecorder struct{}

func (NopRecorder) RecordCommand(string, string, time.Duration) {}
func (NopRecorder) GhostsMaterialized(int)                      {}
func (NopRecorder) GhostRealized()                              {}
func (NopRecorder) StateTransition(canvas.NodeState)            {}
func (NopRecorder) ObserveSnapshot(canvas.Snapshot)             {}

var (
	_ MutationRecorder = (*Collector)(nil)
	_ CommandRecorder  = (*Collector)(nil)
	_ MutationRecorder = NopRecorder{}
	_ CommandRecorder  = NopRecorder{}
)
