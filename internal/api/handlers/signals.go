package handlers

import (
	"net/http"
	"time"
	"traffic-route-service/internal/api/dto"
	"traffic-route-service/internal/domain"
	"traffic-route-service/internal/platform/metrics"
	"traffic-route-service/internal/ports"
	"traffic-route-service/internal/services"
)

type SignalHandler struct {
	Repo    ports.NetworkRepository
	Store   ports.SignalStore
	Writer  ports.RoadTrafficWriter
	Window  time.Duration
	Metrics *metrics.Registry
}

// Ingest records a device signal and returns the refreshed traffic of its road.
func (h *SignalHandler) Ingest(w http.ResponseWriter, r *http.Request) {
	var req dto.SignalRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	signal := domain.Signal{
		DeviceID:    req.DeviceID,
		EdgeID:      req.RoadID,
		Coordinates: domain.Coordinates{Lat: req.Latitude, Lon: req.Longitude},
		Timestamp:   time.Now().UTC(),
	}

	road, err := services.IngestSignal(r.Context(), signal, h.Repo, h.Store, h.Writer, h.Window)
	if err != nil {
		writeServiceError(w, r, "ingest signal", err)
		return
	}
	if h.Metrics != nil {
		h.Metrics.SignalsIngestedTotal.WithLabelValues(road.TrafficLevel.String()).Inc()
	}

	writeJSON(w, r, http.StatusOK, dto.SignalResponse{
		Status:       "success",
		TrafficCount: road.CurrentTraffic,
		TrafficLevel: road.TrafficLevel.String(),
		TravelTime:   road.TravelTime,
	})
}
