package seed

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"traffic-route-service/internal/domain"
	"traffic-route-service/internal/services"
)

type IntersectionSeed struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	Lat      float64 `json:"lat"`
	Lng      float64 `json:"lng"`
	Capacity int     `json:"capacity"`
}

type RoadSeed struct {
	ID             int64   `json:"id"`
	From           int64   `json:"from"`
	To             int64   `json:"to"`
	DistanceKm     float64 `json:"distance_km"`
	Capacity       int     `json:"capacity"`
	SpeedLimit     float64 `json:"speed_limit"`
	CurrentTraffic int     `json:"current_traffic"`
}

type NetworkSeed struct {
	Intersections []IntersectionSeed `json:"intersections"`
	Roads         []RoadSeed         `json:"roads"`
}

// Read a network seed file and convert it to domain nodes and edges.
// Road levels and travel times are derived from current_traffic.
func LoadFile(path string) ([]domain.Node, []domain.Edge, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("load seed: read %q: %w", path, err)
	}

	var data NetworkSeed
	if err := json.Unmarshal(b, &data); err != nil {
		return nil, nil, fmt.Errorf("load seed: parse json: %w", err)
	}

	return data.Convert()
}

// Convert validates the seed and returns domain nodes and edges.
func (s NetworkSeed) Convert() ([]domain.Node, []domain.Edge, error) {
	nodes := make([]domain.Node, 0, len(s.Intersections))
	for i, in := range s.Intersections {
		if in.ID <= 0 {
			return nil, nil, fmt.Errorf("load seed: intersection at index %d: invalid id %d", i+1, in.ID)
		}
		name := strings.TrimSpace(in.Name)
		if name == "" {
			return nil, nil, fmt.Errorf("load seed: intersection %d: name cannot be empty", in.ID)
		}
		capacity := in.Capacity
		if capacity == 0 {
			capacity = 100
		}
		nodes = append(nodes, domain.Node{
			ID:          in.ID,
			Name:        name,
			Coordinates: domain.Coordinates{Lat: in.Lat, Lon: in.Lng},
			Capacity:    capacity,
		})
	}

	edges := make([]domain.Edge, 0, len(s.Roads))
	for i, r := range s.Roads {
		if r.ID <= 0 {
			return nil, nil, fmt.Errorf("load seed: road at index %d: invalid id %d", i+1, r.ID)
		}
		if r.DistanceKm < 0 {
			return nil, nil, fmt.Errorf("load seed: road %d: distance cannot be negative", r.ID)
		}
		capacity := r.Capacity
		if capacity == 0 {
			capacity = 50
		}

		e := domain.Edge{
			ID:         r.ID,
			From:       r.From,
			To:         r.To,
			Distance:   r.DistanceKm,
			Capacity:   capacity,
			SpeedLimit: r.SpeedLimit,
		}
		edges = append(edges, services.ApplyObservedTraffic(e, r.CurrentTraffic))
	}

	return nodes, edges, nil
}
