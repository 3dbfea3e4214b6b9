package services

import (
	"fmt"
	"math"
	"traffic-route-service/internal/domain"
)

// Residual capacities at or below flowEpsilon count as exhausted.
const flowEpsilon = 1e-9

// AnalyzeFlow computes the maximum flow from source to sink over edge
// capacities with Edmonds–Karp: breadth-first augmenting paths, each pushing
// its bottleneck residual capacity, until none remains.
//
// The result also lists the minimum cut: edges with positive capacity leading
// from the nodes still reachable from source in the final residual graph to
// the rest. Travel times and congestion play no part.
func (g *Graph) AnalyzeFlow(sourceID, sinkID int64) (*domain.FlowResult, error) {
	s, err := g.Index(sourceID)
	if err != nil {
		return nil, fmt.Errorf("max flow: source: %w", err)
	}
	t, err := g.Index(sinkID)
	if err != nil {
		return nil, fmt.Errorf("max flow: sink: %w", err)
	}
	if s == t {
		return nil, fmt.Errorf("max flow: node %d: %w", sourceID, ErrSourceIsSink)
	}

	residual := g.Capacities()
	parent := make([]int, len(residual))
	var total float64

	for {
		reached := bfsResidual(residual, s, t, parent)
		if !reached[t] {
			break
		}

		bottleneck := math.Inf(1)
		for v := t; v != s; v = parent[v] {
			bottleneck = math.Min(bottleneck, residual[parent[v]][v])
		}
		if bottleneck <= flowEpsilon {
			break
		}

		for v := t; v != s; v = parent[v] {
			u := parent[v]
			residual[u][v] -= bottleneck
			residual[v][u] += bottleneck
		}
		total += bottleneck
	}

	reached := bfsResidual(residual, s, -1, parent)
	result := &domain.FlowResult{Source: sourceID, Sink: sinkID, Value: total}
	for _, k := range g.order {
		e := g.edges[k]
		if k.from != k.to && e.Capacity > 0 && reached[k.from] && !reached[k.to] {
			result.MinCut = append(result.MinCut, e)
		}
	}

	return result, nil
}

// bfsResidual marks the nodes reachable from s through residual capacity
// above flowEpsilon, recording BFS parents. The search stops as soon as t
// is reached; pass t < 0 to explore everything.
func bfsResidual(residual [][]float64, s, t int, parent []int) []bool {
	visited := make([]bool, len(residual))
	for i := range parent {
		parent[i] = -1
	}

	visited[s] = true
	queue := []int{s}
	for len(queue) > 0 {
		u := queue[0]
		queue = queue[1:]
		for v, c := range residual[u] {
			if visited[v] || c <= flowEpsilon {
				continue
			}
			visited[v] = true
			parent[v] = u
			if v == t {
				return visited
			}
			queue = append(queue, v)
		}
	}
	return visited
}

// AnalyzeFlow builds a snapshot and runs Graph.AnalyzeFlow on it.
func AnalyzeFlow(nodes []domain.Node, edges []domain.Edge, sourceID, sinkID int64) (*domain.FlowResult, error) {
	g, err := NewGraph(nodes, edges)
	if err != nil {
		return nil, err
	}
	return g.AnalyzeFlow(sourceID, sinkID)
}

// MaxFlow returns the maximum sustainable flow between two intersections.
func MaxFlow(nodes []domain.Node, edges []domain.Edge, sourceID, sinkID int64) (float64, error) {
	res, err := AnalyzeFlow(nodes, edges, sourceID, sinkID)
	if err != nil {
		return 0, err
	}
	return res.Value, nil
}
