package dto

type SignalRequest struct {
	DeviceID  string  `json:"device_id" validate:"required,max=100"`
	RoadID    int64   `json:"road_id" validate:"required"`
	Latitude  float64 `json:"latitude" validate:"gte=-90,lte=90"`
	Longitude float64 `json:"longitude" validate:"gte=-180,lte=180"`
}

type SignalResponse struct {
	Status       string  `json:"status"`
	TrafficCount int     `json:"traffic_count"`
	TrafficLevel string  `json:"traffic_level"`
	TravelTime   float64 `json:"travel_time"`
}
