package repositories

import (
	"context"
	"os"
	"testing"
	"time"
	"traffic-route-service/internal/domain"
	"traffic-route-service/internal/platform/db"
	"traffic-route-service/internal/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Runs against a disposable database named by TEST_DATABASE_URL.
func newTestRepo(t *testing.T) *PostgresNetworkRepository {
	t.Helper()
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	conn, err := db.Open(url)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	ctx := context.Background()
	require.NoError(t, InitSchema(ctx, conn))
	_, err = conn.ExecContext(ctx, `TRUNCATE phone_signals, roads, intersections`)
	require.NoError(t, err)

	nodes := []domain.Node{
		{ID: 1, Name: "A", Coordinates: domain.Coordinates{Lat: 1, Lon: 2}, Capacity: 100},
		{ID: 2, Name: "B", Coordinates: domain.Coordinates{Lat: 3, Lon: 4}, Capacity: 100},
	}
	roads := []domain.Edge{
		{ID: 1, From: 1, To: 2, Distance: 1.5, Capacity: 10, SpeedLimit: 40, TravelTime: 3},
	}
	require.NoError(t, SeedNetwork(ctx, conn, nodes, roads))

	return NewPostgresNetworkRepository(conn)
}

func TestPostgresNetworkRepositoryRoundTrip(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	nodes, err := repo.ListIntersections(ctx)
	require.NoError(t, err)
	require.Len(t, nodes, 2)
	assert.Equal(t, "A", nodes[0].Name)

	road, err := repo.GetRoad(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 1.5, road.Distance)

	road.CurrentTraffic = 8
	road.TrafficLevel = domain.TrafficHigh
	road.TravelTime = 7.8
	require.NoError(t, repo.UpdateRoadTraffic(ctx, road))

	roads, err := repo.ListRoads(ctx)
	require.NoError(t, err)
	require.Len(t, roads, 1)
	assert.Equal(t, domain.TrafficHigh, roads[0].TrafficLevel)
	assert.Equal(t, 8, roads[0].CurrentTraffic)

	_, err = repo.GetRoad(ctx, 99)
	assert.ErrorIs(t, err, ports.ErrNotFound)
}

func TestPostgresNetworkRepositoryCountsSignals(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Second)

	for _, s := range []domain.Signal{
		{DeviceID: "a", EdgeID: 1, Timestamp: now},
		{DeviceID: "a", EdgeID: 1, Timestamp: now.Add(-time.Minute)},
		{DeviceID: "b", EdgeID: 1, Timestamp: now.Add(-2 * time.Minute)},
		{DeviceID: "c", EdgeID: 1, Timestamp: now.Add(-time.Hour)},
	} {
		require.NoError(t, repo.RecordSignal(ctx, s))
	}

	count, err := repo.CountDistinctDevices(ctx, 1, now.Add(-5*time.Minute))
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}
