package handlers

import (
	"net/http"
	"traffic-route-service/internal/api/dto"
	"traffic-route-service/internal/platform/metrics"
	"traffic-route-service/internal/ports"
	"traffic-route-service/internal/services"
)

type MapHandler struct {
	Repo    ports.NetworkRepository
	Metrics *metrics.Registry
}

// MapData returns every intersection and road with its current traffic.
func (h *MapHandler) MapData(w http.ResponseWriter, r *http.Request) {
	snap, err := services.LoadSnapshot(r.Context(), h.Repo)
	if err != nil {
		writeServiceError(w, r, "map data", err)
		return
	}
	if h.Metrics != nil {
		h.Metrics.ObserveSnapshot(len(snap.Nodes), len(snap.Edges))
	}

	byID := indexNodes(snap.Nodes)
	res := dto.MapDataResponse{
		Intersections: make([]dto.IntersectionResponse, 0, len(snap.Nodes)),
		Roads:         make([]dto.RoadResponse, 0, len(snap.Edges)),
	}
	for _, n := range snap.Nodes {
		res.Intersections = append(res.Intersections, dto.IntersectionResponse{
			ID:       n.ID,
			Name:     n.Name,
			Lat:      n.Coordinates.Lat,
			Lng:      n.Coordinates.Lon,
			Capacity: n.Capacity,
		})
	}
	for _, e := range snap.Edges {
		res.Roads = append(res.Roads, toRoad(e, byID))
	}

	writeJSON(w, r, http.StatusOK, res)
}
