package dto

type CoordinatesResponse struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type IntersectionResponse struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	Lat      float64 `json:"lat"`
	Lng      float64 `json:"lng"`
	Capacity int     `json:"capacity"`
}

type RoadResponse struct {
	ID             int64                `json:"id"`
	From           int64                `json:"from"`
	To             int64                `json:"to"`
	FromCoords     *CoordinatesResponse `json:"from_coords,omitempty"`
	ToCoords       *CoordinatesResponse `json:"to_coords,omitempty"`
	TrafficLevel   string               `json:"traffic_level"`
	CurrentTraffic int                  `json:"current_traffic"`
	Capacity       int                  `json:"capacity"`
	TravelTime     float64              `json:"travel_time"`
}

type MapDataResponse struct {
	Intersections []IntersectionResponse `json:"intersections"`
	Roads         []RoadResponse         `json:"roads"`
}
