package memory

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"
	"traffic-route-service/internal/domain"
	"traffic-route-service/internal/ports"
)

// Network is an in-memory NetworkRepository, RoadTrafficWriter and
// SignalStore. It is safe for concurrent use.
type Network struct {
	mu      sync.RWMutex
	nodes   []domain.Node
	roads   []domain.Edge
	signals []domain.Signal
}

func NewNetwork(nodes []domain.Node, roads []domain.Edge) *Network {
	return &Network{
		nodes: slices.Clone(nodes),
		roads: slices.Clone(roads),
	}
}

func (n *Network) ListIntersections(ctx context.Context) ([]domain.Node, error) {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return slices.Clone(n.nodes), nil
}

func (n *Network) ListRoads(ctx context.Context) ([]domain.Edge, error) {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return slices.Clone(n.roads), nil
}

func (n *Network) GetRoad(ctx context.Context, id int64) (domain.Edge, error) {
	n.mu.RLock()
	defer n.mu.RUnlock()

	for _, r := range n.roads {
		if r.ID == id {
			return r, nil
		}
	}
	return domain.Edge{}, fmt.Errorf("get road %d: %w", id, ports.ErrNotFound)
}

func (n *Network) UpdateRoadTraffic(ctx context.Context, edge domain.Edge) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	for i := range n.roads {
		if n.roads[i].ID == edge.ID {
			n.roads[i].CurrentTraffic = edge.CurrentTraffic
			n.roads[i].TrafficLevel = edge.TrafficLevel
			n.roads[i].TravelTime = edge.TravelTime
			return nil
		}
	}
	return fmt.Errorf("update road %d: %w", edge.ID, ports.ErrNotFound)
}

func (n *Network) RecordSignal(ctx context.Context, signal domain.Signal) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.signals = append(n.signals, signal)
	return nil
}

func (n *Network) CountDistinctDevices(ctx context.Context, edgeID int64, since time.Time) (int, error) {
	n.mu.RLock()
	defer n.mu.RUnlock()

	seen := make(map[string]struct{})
	for _, s := range n.signals {
		if s.EdgeID == edgeID && !s.Timestamp.Before(since) {
			seen[s.DeviceID] = struct{}{}
		}
	}
	return len(seen), nil
}
