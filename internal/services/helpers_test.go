package services

import (
	"math"
	"math/rand"
	"traffic-route-service/internal/domain"
)

const (
	nodeA int64 = iota + 1
	nodeB
	nodeC
	nodeD
)

func abcdNodes() []domain.Node {
	return []domain.Node{
		{ID: nodeA, Name: "A"},
		{ID: nodeB, Name: "B"},
		{ID: nodeC, Name: "C"},
		{ID: nodeD, Name: "D"},
	}
}

// abcdEdges is the diamond A->B->D (5+5) and A->C->D (3+3).
func abcdEdges() []domain.Edge {
	return []domain.Edge{
		{ID: 1, From: nodeA, To: nodeB, Distance: 2.5, Capacity: 10, TravelTime: 5},
		{ID: 2, From: nodeB, To: nodeD, Distance: 2.5, Capacity: 10, TravelTime: 5},
		{ID: 3, From: nodeA, To: nodeC, Distance: 1.5, Capacity: 5, TravelTime: 3},
		{ID: 4, From: nodeC, To: nodeD, Distance: 1.5, Capacity: 5, TravelTime: 3},
	}
}

func mustGraph(nodes []domain.Node, edges []domain.Edge) *Graph {
	g, err := NewGraph(nodes, edges)
	if err != nil {
		panic(err)
	}
	return g
}

// randomNetwork builds a reproducible network of 1..maxNodes nodes with
// integral travel times and capacities, so sums compare exactly.
func randomNetwork(seed int64, maxNodes int) ([]domain.Node, []domain.Edge) {
	rng := rand.New(rand.NewSource(seed))
	n := 1 + rng.Intn(maxNodes)

	nodes := make([]domain.Node, n)
	for i := range nodes {
		nodes[i] = domain.Node{ID: int64(i + 1)}
	}

	var edges []domain.Edge
	id := int64(1)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i == j || rng.Float64() > 0.4 {
				continue
			}
			edges = append(edges, domain.Edge{
				ID:           id,
				From:         int64(i + 1),
				To:           int64(j + 1),
				Capacity:     rng.Intn(20),
				TrafficLevel: domain.TrafficLevel(rng.Intn(4)),
				TravelTime:   float64(rng.Intn(20)),
			})
			id++
		}
	}
	return nodes, edges
}

func matricesEqual(a, b [][]float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if len(a[i]) != len(b[i]) {
			return false
		}
		for j := range a[i] {
			if a[i][j] != b[i][j] && !(math.IsInf(a[i][j], 1) && math.IsInf(b[i][j], 1)) {
				return false
			}
		}
	}
	return true
}
