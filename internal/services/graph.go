package services

import (
	"fmt"
	"math"
	"traffic-route-service/internal/domain"
)

type edgeKey struct{ from, to int }

// Graph is an immutable adjacency-matrix snapshot of the road network.
//
// Node ids are mapped to dense indices 0..n-1 in input order. At most one edge
// per ordered pair is kept: when the input repeats a pair, the first edge wins.
// Self-loops are kept for lookup but never contribute to weights or capacities.
type Graph struct {
	nodes   []domain.Node
	index   map[int64]int
	edges   map[edgeKey]domain.Edge
	order   []edgeKey
	weights [][]float64
}

// NewGraph builds the snapshot. It fails with *UnknownNodeError when an edge
// references a node that is not in nodes.
func NewGraph(nodes []domain.Node, edges []domain.Edge) (*Graph, error) {
	n := len(nodes)
	g := &Graph{
		nodes:   make([]domain.Node, n),
		index:   make(map[int64]int, n),
		edges:   make(map[edgeKey]domain.Edge, len(edges)),
		weights: newMatrix(n, math.Inf(1)),
	}
	copy(g.nodes, nodes)

	for i, node := range nodes {
		if _, ok := g.index[node.ID]; ok {
			return nil, fmt.Errorf("build graph: node %d: %w", node.ID, ErrDuplicateNode)
		}
		g.index[node.ID] = i
		g.weights[i][i] = 0
	}

	for _, e := range edges {
		from, ok := g.index[e.From]
		if !ok {
			return nil, fmt.Errorf("build graph: edge %d: %w", e.ID, &UnknownNodeError{ID: e.From})
		}
		to, ok := g.index[e.To]
		if !ok {
			return nil, fmt.Errorf("build graph: edge %d: %w", e.ID, &UnknownNodeError{ID: e.To})
		}
		if math.IsNaN(e.TravelTime) || e.TravelTime < 0 {
			return nil, fmt.Errorf("build graph: edge %d travel time %v: %w", e.ID, e.TravelTime, ErrInvalidWeight)
		}

		key := edgeKey{from, to}
		if _, dup := g.edges[key]; dup {
			continue
		}
		g.edges[key] = e
		g.order = append(g.order, key)
		if from != to {
			g.weights[from][to] = e.TravelTime
		}
	}

	return g, nil
}

// Size returns the number of nodes.
func (g *Graph) Size() int { return len(g.nodes) }

// Index returns the dense index of a node id.
func (g *Graph) Index(id int64) (int, error) {
	i, ok := g.index[id]
	if !ok {
		return 0, &UnknownNodeError{ID: id}
	}
	return i, nil
}

// Node returns the node at a dense index.
func (g *Graph) Node(i int) domain.Node { return g.nodes[i] }

// Edge returns the edge backing the hop i -> j.
func (g *Graph) Edge(i, j int) (domain.Edge, bool) {
	e, ok := g.edges[edgeKey{i, j}]
	return e, ok
}

// Edges returns the kept edges in input order; dropped duplicates are absent.
func (g *Graph) Edges() []domain.Edge {
	out := make([]domain.Edge, 0, len(g.order))
	for _, k := range g.order {
		out = append(out, g.edges[k])
	}
	return out
}

// Weights returns a private copy of the travel-time matrix.
// +Inf marks a missing edge; the diagonal is 0.
func (g *Graph) Weights() [][]float64 {
	return cloneMatrix(g.weights)
}

// Capacities returns a fresh capacity matrix; loops and non-positive
// capacities are 0.
func (g *Graph) Capacities() [][]float64 {
	c := newMatrix(len(g.nodes), 0)
	for _, k := range g.order {
		e := g.edges[k]
		if k.from == k.to || e.Capacity <= 0 {
			continue
		}
		c[k.from][k.to] = float64(e.Capacity)
	}
	return c
}

func newMatrix(n int, fill float64) [][]float64 {
	data := make([]float64, n*n)
	for i := range data {
		data[i] = fill
	}
	m := make([][]float64, n)
	for i := range m {
		m[i] = data[i*n : (i+1)*n : (i+1)*n]
	}
	return m
}

func cloneMatrix(src [][]float64) [][]float64 {
	n := len(src)
	dst := newMatrix(n, 0)
	for i := range src {
		copy(dst[i], src[i])
	}
	return dst
}
