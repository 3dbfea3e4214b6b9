package services

import (
	"errors"
	"testing"
	"traffic-route-service/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReconstructPath(t *testing.T) {
	g := mustGraph(abcdNodes(), abcdEdges())
	ap, err := ComputeAllPairs(g.Weights(), SolverOptions{})
	require.NoError(t, err)

	path, err := ReconstructPath(ap.Next, 0, 3)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 2, 3}, path)

	path, err = ReconstructPath(ap.Next, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, []int{1}, path)

	path, err = ReconstructPath(ap.Next, 3, 0)
	require.NoError(t, err)
	assert.Empty(t, path)
}

func TestReconstructPathDetectsCycle(t *testing.T) {
	// 0 -> 1 -> 2 -> 1 -> ... never reaches 3.
	next := [][]int{
		{0, 1, 1, 1},
		{NoHop, 1, 2, 2},
		{NoHop, 1, 2, 1},
		{NoHop, NoHop, NoHop, 3},
	}

	_, err := ReconstructPath(next, 0, 3)

	var rie *RoutingInconsistencyError
	require.True(t, errors.As(err, &rie))
	assert.Greater(t, rie.Steps, len(next))
}

func TestReconstructPathRejectsOutOfRangeHop(t *testing.T) {
	next := [][]int{
		{0, 7},
		{NoHop, 1},
	}

	_, err := ReconstructPath(next, 0, 1)

	var rie *RoutingInconsistencyError
	assert.True(t, errors.As(err, &rie))
}

func TestReconstructPathRejectsOutOfRangeIndices(t *testing.T) {
	_, err := ReconstructPath([][]int{{0}}, 0, 3)
	assert.Error(t, err)
}

func TestGraphRoute(t *testing.T) {
	edges := abcdEdges()
	edges[2].TrafficLevel = domain.TrafficHigh
	g := mustGraph(abcdNodes(), edges)
	ap, err := ComputeAllPairs(g.Weights(), SolverOptions{})
	require.NoError(t, err)

	route, err := g.Route(ap, nodeA, nodeD)
	require.NoError(t, err)

	require.True(t, route.Found())
	assert.Equal(t, 6.0, route.TotalTime)
	require.Len(t, route.Nodes, 3)
	assert.Equal(t, "C", route.Nodes[1].Name)
	require.Len(t, route.Segments, 2)
	assert.Equal(t, int64(3), route.Segments[0].EdgeID)
	assert.Equal(t, domain.TrafficHigh, route.Segments[0].TrafficLevel)
	assert.Equal(t, 3.0, route.Segments[0].TravelTime)
}

func TestGraphRouteSameNode(t *testing.T) {
	g := mustGraph(abcdNodes(), abcdEdges())
	ap, err := ComputeAllPairs(g.Weights(), SolverOptions{})
	require.NoError(t, err)

	route, err := g.Route(ap, nodeB, nodeB)
	require.NoError(t, err)

	assert.Len(t, route.Nodes, 1)
	assert.Empty(t, route.Segments)
	assert.Zero(t, route.TotalTime)
}

func TestGraphRouteUnknownNode(t *testing.T) {
	g := mustGraph(abcdNodes(), abcdEdges())
	ap, err := ComputeAllPairs(g.Weights(), SolverOptions{})
	require.NoError(t, err)

	_, err = g.Route(ap, nodeA, 99)

	var unknown *UnknownNodeError
	require.True(t, errors.As(err, &unknown))
	assert.Equal(t, int64(99), unknown.ID)
}

func TestGraphRouteMissingEdge(t *testing.T) {
	g := mustGraph(abcdNodes(), abcdEdges())
	// A stale table claiming a direct hop A -> D.
	ap := &AllPairs{
		Dist: newMatrix(4, 0),
		Next: [][]int{
			{0, 1, 2, 3},
			{NoHop, 1, NoHop, 3},
			{NoHop, NoHop, 2, 3},
			{NoHop, NoHop, NoHop, 3},
		},
	}

	_, err := g.Route(ap, nodeA, nodeD)

	var missing *MissingEdgeError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, nodeA, missing.From)
	assert.Equal(t, nodeD, missing.To)
}

func TestGraphRouteInconsistencyCarriesIDs(t *testing.T) {
	g := mustGraph(abcdNodes(), abcdEdges())
	ap := &AllPairs{
		Dist: newMatrix(4, 0),
		Next: [][]int{
			{0, 1, 1, 1},
			{NoHop, 1, 2, 2},
			{NoHop, 1, 2, 1},
			{NoHop, NoHop, NoHop, 3},
		},
	}

	_, err := g.Route(ap, nodeA, nodeD)

	var rie *RoutingInconsistencyError
	require.True(t, errors.As(err, &rie))
	assert.Equal(t, nodeA, rie.From)
	assert.Equal(t, nodeD, rie.To)
}
