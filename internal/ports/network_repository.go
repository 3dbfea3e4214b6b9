package ports

import (
	"context"
	"traffic-route-service/internal/domain"
)

// Port: a boundary for reading the road network snapshot.
type NetworkRepository interface {
	// Return all intersections.
	ListIntersections(ctx context.Context) ([]domain.Node, error)
	// Return all roads with their last stored traffic figures.
	ListRoads(ctx context.Context) ([]domain.Edge, error)
	// Return a single road, or an error wrapping ErrNotFound.
	GetRoad(ctx context.Context, id int64) (domain.Edge, error)
}

// Port: persists re-derived traffic figures of a road.
type RoadTrafficWriter interface {
	UpdateRoadTraffic(ctx context.Context, edge domain.Edge) error
}
