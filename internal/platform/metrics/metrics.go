package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry holds the service metrics on a private Prometheus registry.
type Registry struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	SolverRunsTotal      *prometheus.CounterVec
	SolverDuration       *prometheus.HistogramVec
	GraphNodes           prometheus.Gauge
	GraphEdges           prometheus.Gauge
	AlternateUnavailable prometheus.Counter

	SignalsIngestedTotal *prometheus.CounterVec

	registry *prometheus.Registry
}

func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)

	return &Registry{
		registry: reg,
		HTTPRequestsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "traffic_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		HTTPRequestDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "traffic_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		SolverRunsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "traffic_solver_runs_total",
				Help: "Routing computations by kind and outcome",
			},
			[]string{"kind", "status"},
		),
		SolverDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "traffic_solver_duration_seconds",
				Help:    "Routing computation duration in seconds",
				Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
			},
			[]string{"kind"},
		),
		GraphNodes: f.NewGauge(prometheus.GaugeOpts{
			Name: "traffic_graph_nodes",
			Help: "Intersections in the last loaded snapshot",
		}),
		GraphEdges: f.NewGauge(prometheus.GaugeOpts{
			Name: "traffic_graph_edges",
			Help: "Roads in the last loaded snapshot",
		}),
		AlternateUnavailable: f.NewCounter(prometheus.CounterOpts{
			Name: "traffic_alternate_unavailable_total",
			Help: "Route requests for which no alternate route exists",
		}),
		SignalsIngestedTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "traffic_signals_ingested_total",
				Help: "Device signals ingested by traffic level of the road afterwards",
			},
			[]string{"level"},
		),
	}
}

// RecordHTTPRequest records an HTTP request with its duration.
func (r *Registry) RecordHTTPRequest(method, route, status string, d time.Duration) {
	r.HTTPRequestsTotal.WithLabelValues(method, route, status).Inc()
	r.HTTPRequestDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

// RecordSolve records one routing computation.
func (r *Registry) RecordSolve(kind string, err error, d time.Duration) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	r.SolverRunsTotal.WithLabelValues(kind, status).Inc()
	r.SolverDuration.WithLabelValues(kind).Observe(d.Seconds())
}

// ObserveSnapshot records the size of a loaded snapshot.
func (r *Registry) ObserveSnapshot(nodes, edges int) {
	r.GraphNodes.Set(float64(nodes))
	r.GraphEdges.Set(float64(edges))
}

// Handler serves the registry in the Prometheus exposition format.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

// Gatherer exposes the underlying registry.
func (r *Registry) Gatherer() prometheus.Gatherer {
	return r.registry
}
