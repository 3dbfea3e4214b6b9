package handlers

import (
	"math"
	"traffic-route-service/internal/api/dto"
	"traffic-route-service/internal/domain"
)

func coords(c domain.Coordinates) dto.CoordinatesResponse {
	return dto.CoordinatesResponse{Lat: c.Lat, Lng: c.Lon}
}

func toSegment(s domain.Segment) dto.SegmentResponse {
	return dto.SegmentResponse{
		RoadID:       s.EdgeID,
		From:         s.From.Name,
		To:           s.To.Name,
		TrafficLevel: s.TrafficLevel.String(),
		TravelTime:   s.TravelTime,
	}
}

func toRoute(r domain.Route) dto.RouteResponse {
	out := dto.RouteResponse{
		Path:      make([]dto.PathNodeResponse, 0, len(r.Nodes)),
		Segments:  make([]dto.SegmentResponse, 0, len(r.Segments)),
		TotalTime: r.TotalTime,
	}
	for _, n := range r.Nodes {
		out.Path = append(out.Path, dto.PathNodeResponse{
			ID:   n.ID,
			Name: n.Name,
			Lat:  n.Coordinates.Lat,
			Lng:  n.Coordinates.Lon,
		})
	}
	for _, s := range r.Segments {
		out.Segments = append(out.Segments, toSegment(s))
	}
	return out
}

// toRoad renders a road; endpoint coordinates are included when byID knows
// the endpoint.
func toRoad(e domain.Edge, byID map[int64]domain.Node) dto.RoadResponse {
	res := dto.RoadResponse{
		ID:             e.ID,
		From:           e.From,
		To:             e.To,
		TrafficLevel:   e.TrafficLevel.String(),
		CurrentTraffic: e.CurrentTraffic,
		Capacity:       e.Capacity,
		TravelTime:     math.Round(e.TravelTime*100) / 100,
	}
	if n, ok := byID[e.From]; ok {
		c := coords(n.Coordinates)
		res.FromCoords = &c
	}
	if n, ok := byID[e.To]; ok {
		c := coords(n.Coordinates)
		res.ToCoords = &c
	}
	return res
}

func indexNodes(nodes []domain.Node) map[int64]domain.Node {
	byID := make(map[int64]domain.Node, len(nodes))
	for _, n := range nodes {
		byID[n.ID] = n
	}
	return byID
}
