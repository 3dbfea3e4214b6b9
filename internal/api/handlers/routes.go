package handlers

import (
	"net/http"
	"time"
	"traffic-route-service/internal/api/dto"
	"traffic-route-service/internal/platform/metrics"
	"traffic-route-service/internal/ports"
	"traffic-route-service/internal/services"
)

type RouteHandler struct {
	Repo          ports.NetworkRepository
	Counter       ports.SignalCounter
	TrafficWindow time.Duration
	Solver        services.SolverOptions
	Metrics       *metrics.Registry
}

func (h *RouteHandler) record(kind string, err error, start time.Time) {
	if h.Metrics != nil {
		h.Metrics.RecordSolve(kind, err, time.Since(start))
	}
}

// Optimal returns the fastest route and an alternate that avoids the most
// congested road of the fastest one.
func (h *RouteHandler) Optimal(w http.ResponseWriter, r *http.Request) {
	var req dto.OptimalRouteRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	start := time.Now()
	pair, err := services.PlanOptimalRoutes(r.Context(), services.RouteRequest{
		SourceID:      req.SourceID,
		DestinationID: req.DestinationID,
	}, h.Repo, h.Solver)
	h.record("optimal", err, start)
	if err != nil {
		writeServiceError(w, r, "optimal route", err)
		return
	}

	res := dto.OptimalRouteResponse{MainRoute: toRoute(pair.Primary)}
	if pair.AvoidedEdge != nil {
		seg := toSegment(*pair.AvoidedEdge)
		res.AvoidedRoad = &seg
	}
	if pair.AlternateFound {
		alt := toRoute(pair.Alternate)
		res.AlternateRoute = &alt
	} else {
		res.Message = "no alternate route available"
		if h.Metrics != nil {
			h.Metrics.AlternateUnavailable.Inc()
		}
	}

	writeJSON(w, r, http.StatusOK, res)
}

// Traffic reports per-road traffic along the fastest route between the
// start and end query parameters.
func (h *RouteHandler) Traffic(w http.ResponseWriter, r *http.Request) {
	src, ok := queryID(r, "start")
	if !ok {
		writeError(w, r, http.StatusBadRequest, "start must be an intersection id")
		return
	}
	dst, ok := queryID(r, "end")
	if !ok {
		writeError(w, r, http.StatusBadRequest, "end must be an intersection id")
		return
	}

	est := &services.CongestionEstimator{Counter: h.Counter, Window: h.TrafficWindow}

	start := time.Now()
	report, err := services.PlanRouteTraffic(r.Context(), services.RouteRequest{
		SourceID:      src,
		DestinationID: dst,
	}, h.Repo, est, h.Solver)
	h.record("traffic", err, start)
	if err != nil {
		writeServiceError(w, r, "route traffic", err)
		return
	}

	res := dto.RouteTrafficResponse{
		Status:   "success",
		Route:    toRoute(report.Route),
		Segments: make([]dto.SegmentTrafficResponse, 0, len(report.Segments)),
		TimeWindow: dto.TimeWindowResponse{
			Start:        report.WindowStart,
			End:          report.WindowEnd,
			TotalTimeMin: report.TotalTimeMin,
		},
	}
	for _, s := range report.Segments {
		res.Segments = append(res.Segments, dto.SegmentTrafficResponse{
			From:           s.From.Name,
			To:             s.To.Name,
			TrafficLevel:   s.TrafficLevel.String(),
			CurrentTraffic: s.CurrentTraffic,
			Capacity:       s.Capacity,
			DistanceKm:     s.DistanceKm,
			TravelTimeMin:  s.TravelTimeMin,
			FromCoords:     coords(s.From.Coordinates),
			ToCoords:       coords(s.To.Coordinates),
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}
