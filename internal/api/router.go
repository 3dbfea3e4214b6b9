package api

import (
	"net/http"
	"time"
	"traffic-route-service/internal/api/handlers"
	"traffic-route-service/internal/platform/metrics"
	"traffic-route-service/internal/ports"
	"traffic-route-service/internal/services"

	"github.com/gorilla/mux"
)

// Deps are the adapters the HTTP layer is composed from.
type Deps struct {
	Repo          ports.NetworkRepository
	Signals       ports.SignalStore
	Writer        ports.RoadTrafficWriter
	SignalWindow  time.Duration
	TrafficWindow time.Duration
	Solver        services.SolverOptions
	Metrics       *metrics.Registry
}

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(d Deps) http.Handler {
	if d.Metrics == nil {
		d.Metrics = metrics.NewRegistry()
	}

	r := mux.NewRouter()
	r.Use(metricsMiddleware(d.Metrics))

	mapHandler := &handlers.MapHandler{Repo: d.Repo, Metrics: d.Metrics}
	signalHandler := &handlers.SignalHandler{
		Repo:    d.Repo,
		Store:   d.Signals,
		Writer:  d.Writer,
		Window:  d.SignalWindow,
		Metrics: d.Metrics,
	}
	routeHandler := &handlers.RouteHandler{
		Repo:          d.Repo,
		Counter:       d.Signals,
		TrafficWindow: d.TrafficWindow,
		Solver:        d.Solver,
		Metrics:       d.Metrics,
	}
	flowHandler := &handlers.FlowHandler{Repo: d.Repo, Metrics: d.Metrics}

	r.HandleFunc("/health", handlers.Health).Methods(http.MethodGet)
	r.Handle("/metrics", d.Metrics.Handler()).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/map-data", mapHandler.MapData).Methods(http.MethodGet)
	api.HandleFunc("/signals", signalHandler.Ingest).Methods(http.MethodPost)
	api.HandleFunc("/optimal-route", routeHandler.Optimal).Methods(http.MethodPost)
	api.HandleFunc("/route-traffic", routeHandler.Traffic).Methods(http.MethodGet)
	api.HandleFunc("/max-flow", flowHandler.MaxFlow).Methods(http.MethodGet)

	return requestIDMiddleware(loggingMiddleware(r))
}
