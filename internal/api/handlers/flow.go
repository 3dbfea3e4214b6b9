package handlers

import (
	"net/http"
	"time"
	"traffic-route-service/internal/api/dto"
	"traffic-route-service/internal/platform/metrics"
	"traffic-route-service/internal/ports"
	"traffic-route-service/internal/services"
)

type FlowHandler struct {
	Repo    ports.NetworkRepository
	Metrics *metrics.Registry
}

// MaxFlow reports the road capacity available between two intersections and
// the roads that bound it.
func (h *FlowHandler) MaxFlow(w http.ResponseWriter, r *http.Request) {
	src, ok := queryID(r, "source")
	if !ok {
		writeError(w, r, http.StatusBadRequest, "source must be an intersection id")
		return
	}
	sink, ok := queryID(r, "sink")
	if !ok {
		writeError(w, r, http.StatusBadRequest, "sink must be an intersection id")
		return
	}

	start := time.Now()
	res, err := services.PlanCapacity(r.Context(), services.FlowRequest{SourceID: src, SinkID: sink}, h.Repo)
	if h.Metrics != nil {
		h.Metrics.RecordSolve("max_flow", err, time.Since(start))
	}
	if err != nil {
		writeServiceError(w, r, "max flow", err)
		return
	}

	out := dto.MaxFlowResponse{
		Source:  res.Source,
		Sink:    res.Sink,
		MaxFlow: res.Value,
		MinCut:  make([]dto.RoadResponse, 0, len(res.MinCut)),
	}
	for _, e := range res.MinCut {
		out.MinCut = append(out.MinCut, toRoad(e, nil))
	}

	writeJSON(w, r, http.StatusOK, out)
}
