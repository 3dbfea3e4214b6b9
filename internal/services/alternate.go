package services

import (
	"fmt"
	"math"
	"traffic-route-service/internal/domain"
)

// MostCongestedSegment returns the index of the segment with the highest
// traffic level; ties go to the earliest segment. ok is false for an empty list.
func MostCongestedSegment(segments []domain.Segment) (idx int, ok bool) {
	if len(segments) == 0 {
		return 0, false
	}
	for i, s := range segments {
		if s.TrafficLevel > segments[idx].TrafficLevel {
			idx = i
		}
	}
	return idx, true
}

// AlternateRoute searches for a route between the endpoints of primary that
// avoids its most congested edge.
//
// The search runs on a private copy of the weight matrix with that edge set
// to +Inf, so the snapshot observed by other callers is never mutated. The
// returned route is empty when no alternate exists; avoided is nil when
// primary has no segments.
func (g *Graph) AlternateRoute(primary domain.Route, opts SolverOptions) (alt domain.Route, avoided *domain.Segment, err error) {
	idx, ok := MostCongestedSegment(primary.Segments)
	if !ok {
		return domain.Route{}, nil, nil
	}
	seg := primary.Segments[idx]

	from, err := g.Index(seg.From.ID)
	if err != nil {
		return domain.Route{}, nil, fmt.Errorf("alternate route: %w", err)
	}
	to, err := g.Index(seg.To.ID)
	if err != nil {
		return domain.Route{}, nil, fmt.Errorf("alternate route: %w", err)
	}

	weights := g.Weights()
	weights[from][to] = math.Inf(1)

	ap, err := ComputeAllPairs(weights, opts)
	if err != nil {
		return domain.Route{}, nil, fmt.Errorf("alternate route: %w", err)
	}

	src := primary.Nodes[0].ID
	dst := primary.Nodes[len(primary.Nodes)-1].ID
	alt, err = g.Route(ap, src, dst)
	if err != nil {
		return domain.Route{}, nil, fmt.Errorf("alternate route: %w", err)
	}

	return alt, &seg, nil
}

// OptimalAndAlternate computes the fastest route between two node ids and an
// alternate avoiding the most congested edge of it.
//
// An unreachable destination fails with *NoPathError. A missing alternate is
// reported with AlternateFound=false rather than by repeating the primary.
func (g *Graph) OptimalAndAlternate(sourceID, destID int64, opts SolverOptions) (*domain.RoutePair, error) {
	if _, err := g.Index(sourceID); err != nil {
		return nil, fmt.Errorf("optimal and alternate: %w", err)
	}
	if _, err := g.Index(destID); err != nil {
		return nil, fmt.Errorf("optimal and alternate: %w", err)
	}

	ap, err := ComputeAllPairs(g.weights, opts)
	if err != nil {
		return nil, fmt.Errorf("optimal and alternate: %w", err)
	}

	primary, err := g.Route(ap, sourceID, destID)
	if err != nil {
		return nil, fmt.Errorf("optimal and alternate: %w", err)
	}
	if !primary.Found() {
		return nil, &NoPathError{From: sourceID, To: destID}
	}

	alt, avoided, err := g.AlternateRoute(primary, opts)
	if err != nil {
		return nil, fmt.Errorf("optimal and alternate: %w", err)
	}

	return &domain.RoutePair{
		Primary:        primary,
		Alternate:      alt,
		AvoidedEdge:    avoided,
		AlternateFound: alt.Found(),
	}, nil
}

// FindOptimalAndAlternate builds a snapshot from nodes and edges and runs
// OptimalAndAlternate on it.
func FindOptimalAndAlternate(
	nodes []domain.Node,
	edges []domain.Edge,
	sourceID, destID int64,
	opts SolverOptions,
) (*domain.RoutePair, error) {
	g, err := NewGraph(nodes, edges)
	if err != nil {
		return nil, err
	}
	return g.OptimalAndAlternate(sourceID, destID, opts)
}

// ComputeAllPairsFor builds a snapshot and solves it. The returned graph
// maps node ids to the indices of the matrices.
func ComputeAllPairsFor(nodes []domain.Node, edges []domain.Edge, opts SolverOptions) (*Graph, *AllPairs, error) {
	g, err := NewGraph(nodes, edges)
	if err != nil {
		return nil, nil, err
	}
	ap, err := ComputeAllPairs(g.weights, opts)
	if err != nil {
		return nil, nil, err
	}
	return g, ap, nil
}
