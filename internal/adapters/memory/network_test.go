package memory

import (
	"context"
	"testing"
	"time"
	"traffic-route-service/internal/domain"
	"traffic-route-service/internal/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testNetwork() *Network {
	return NewNetwork(
		[]domain.Node{{ID: 1, Name: "A"}, {ID: 2, Name: "B"}},
		[]domain.Edge{{ID: 7, From: 1, To: 2, Distance: 1, Capacity: 10, TravelTime: 2}},
	)
}

func TestNetworkListsAreCopies(t *testing.T) {
	n := testNetwork()
	ctx := context.Background()

	roads, err := n.ListRoads(ctx)
	require.NoError(t, err)
	roads[0].TravelTime = 99

	again, err := n.ListRoads(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2.0, again[0].TravelTime)

	nodes, err := n.ListIntersections(ctx)
	require.NoError(t, err)
	assert.Len(t, nodes, 2)
}

func TestNetworkGetAndUpdateRoad(t *testing.T) {
	n := testNetwork()
	ctx := context.Background()

	err := n.UpdateRoadTraffic(ctx, domain.Edge{ID: 7, CurrentTraffic: 8, TrafficLevel: domain.TrafficHigh, TravelTime: 5.2, Capacity: 1})
	require.NoError(t, err)

	road, err := n.GetRoad(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, 8, road.CurrentTraffic)
	assert.Equal(t, domain.TrafficHigh, road.TrafficLevel)
	assert.Equal(t, 5.2, road.TravelTime)
	assert.Equal(t, 10, road.Capacity, "only traffic fields are updated")

	_, err = n.GetRoad(ctx, 8)
	assert.ErrorIs(t, err, ports.ErrNotFound)
	assert.ErrorIs(t, n.UpdateRoadTraffic(ctx, domain.Edge{ID: 8}), ports.ErrNotFound)
}

func TestNetworkCountsDistinctDevicesInWindow(t *testing.T) {
	n := testNetwork()
	ctx := context.Background()
	now := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)

	signals := []domain.Signal{
		{DeviceID: "a", EdgeID: 7, Timestamp: now.Add(-time.Minute)},
		{DeviceID: "a", EdgeID: 7, Timestamp: now},
		{DeviceID: "b", EdgeID: 7, Timestamp: now.Add(-2 * time.Minute)},
		{DeviceID: "c", EdgeID: 7, Timestamp: now.Add(-time.Hour)},
		{DeviceID: "d", EdgeID: 8, Timestamp: now},
	}
	for _, s := range signals {
		require.NoError(t, n.RecordSignal(ctx, s))
	}

	count, err := n.CountDistinctDevices(ctx, 7, now.Add(-5*time.Minute))
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	count, err = n.CountDistinctDevices(ctx, 7, now.Add(-2*time.Minute))
	require.NoError(t, err)
	assert.Equal(t, 2, count, "the window start is inclusive")
}
