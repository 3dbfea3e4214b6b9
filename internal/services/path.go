package services

import (
	"errors"
	"fmt"
	"traffic-route-service/internal/domain"
)

// ReconstructPath walks the next-hop table from src to dst and returns the
// visited dense indices, both endpoints included. An unreachable dst yields
// an empty path and a nil error.
//
// A table that does not reach dst within n+1 visited nodes, or that points
// outside 0..n-1, fails with *RoutingInconsistencyError carrying indices.
func ReconstructPath(next [][]int, src, dst int) ([]int, error) {
	n := len(next)
	if src < 0 || src >= n || dst < 0 || dst >= n {
		return nil, fmt.Errorf("reconstruct path: indices %d -> %d outside 0..%d", src, dst, n-1)
	}
	if next[src][dst] == NoHop {
		return nil, nil
	}

	path := []int{src}
	for cur := src; cur != dst; {
		if len(path) > n {
			return nil, &RoutingInconsistencyError{From: int64(src), To: int64(dst), Steps: len(path)}
		}
		cur = next[cur][dst]
		if cur < 0 || cur >= n {
			return nil, &RoutingInconsistencyError{From: int64(src), To: int64(dst), Steps: len(path)}
		}
		path = append(path, cur)
	}

	return path, nil
}

// Route resolves the route between two node ids from a solved table.
// The segments report the traffic level and travel time of the edges of the
// snapshot; TotalTime is the solved distance.
func (g *Graph) Route(ap *AllPairs, sourceID, destID int64) (domain.Route, error) {
	src, err := g.Index(sourceID)
	if err != nil {
		return domain.Route{}, fmt.Errorf("route: %w", err)
	}
	dst, err := g.Index(destID)
	if err != nil {
		return domain.Route{}, fmt.Errorf("route: %w", err)
	}

	path, err := ReconstructPath(ap.Next, src, dst)
	if err != nil {
		var rie *RoutingInconsistencyError
		if errors.As(err, &rie) {
			rie.From, rie.To = sourceID, destID
		}
		return domain.Route{}, fmt.Errorf("route: %w", err)
	}
	if len(path) == 0 {
		return domain.Route{}, nil
	}

	route := domain.Route{
		Nodes:     make([]domain.Node, 0, len(path)),
		Segments:  make([]domain.Segment, 0, len(path)-1),
		TotalTime: ap.Dist[src][dst],
	}
	for i, idx := range path {
		route.Nodes = append(route.Nodes, g.nodes[idx])
		if i == 0 {
			continue
		}

		from, to := path[i-1], idx
		e, ok := g.Edge(from, to)
		if !ok {
			return domain.Route{}, fmt.Errorf("route: %w", &MissingEdgeError{From: g.nodes[from].ID, To: g.nodes[to].ID})
		}
		route.Segments = append(route.Segments, domain.Segment{
			EdgeID:       e.ID,
			From:         g.nodes[from],
			To:           g.nodes[to],
			TrafficLevel: e.TrafficLevel,
			TravelTime:   e.TravelTime,
		})
	}

	return route, nil
}
