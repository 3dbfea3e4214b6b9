package dto

import "time"

type OptimalRouteRequest struct {
	SourceID      int64 `json:"source_id" validate:"required"`
	DestinationID int64 `json:"destination_id" validate:"required"`
}

type PathNodeResponse struct {
	ID   int64   `json:"id"`
	Name string  `json:"name"`
	Lat  float64 `json:"lat"`
	Lng  float64 `json:"lng"`
}

type SegmentResponse struct {
	RoadID       int64   `json:"road_id"`
	From         string  `json:"from"`
	To           string  `json:"to"`
	TrafficLevel string  `json:"traffic_level"`
	TravelTime   float64 `json:"travel_time"`
}

type RouteResponse struct {
	Path      []PathNodeResponse `json:"path"`
	Segments  []SegmentResponse  `json:"segments"`
	TotalTime float64            `json:"total_time"`
}

type OptimalRouteResponse struct {
	MainRoute      RouteResponse    `json:"main_route"`
	AlternateRoute *RouteResponse   `json:"alternate_route"`
	AvoidedRoad    *SegmentResponse `json:"avoided_road,omitempty"`
	Message        string           `json:"message,omitempty"`
}

type SegmentTrafficResponse struct {
	From           string              `json:"from"`
	To             string              `json:"to"`
	TrafficLevel   string              `json:"traffic_level"`
	CurrentTraffic int                 `json:"current_traffic"`
	Capacity       int                 `json:"capacity"`
	DistanceKm     float64             `json:"distance_km"`
	TravelTimeMin  float64             `json:"travel_time_min"`
	FromCoords     CoordinatesResponse `json:"from_coords"`
	ToCoords       CoordinatesResponse `json:"to_coords"`
}

type TimeWindowResponse struct {
	Start        time.Time `json:"start"`
	End          time.Time `json:"end"`
	TotalTimeMin float64   `json:"total_time_min"`
}

type RouteTrafficResponse struct {
	Status     string                   `json:"status"`
	Route      RouteResponse            `json:"route"`
	Segments   []SegmentTrafficResponse `json:"segments"`
	TimeWindow TimeWindowResponse       `json:"time_window"`
}

type MaxFlowResponse struct {
	Source  int64          `json:"source"`
	Sink    int64          `json:"sink"`
	MaxFlow float64        `json:"max_flow"`
	MinCut  []RoadResponse `json:"min_cut"`
}
