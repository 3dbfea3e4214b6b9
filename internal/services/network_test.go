package services

import (
	"context"
	"errors"
	"testing"
	"time"
	"traffic-route-service/internal/adapters/memory"
	"traffic-route-service/internal/domain"
	"traffic-route-service/internal/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingRepo struct{ err error }

func (f failingRepo) ListIntersections(ctx context.Context) ([]domain.Node, error) {
	return nil, f.err
}
func (f failingRepo) ListRoads(ctx context.Context) ([]domain.Edge, error) { return nil, f.err }
func (f failingRepo) GetRoad(ctx context.Context, id int64) (domain.Edge, error) {
	return domain.Edge{}, f.err
}

func TestPlanOptimalRoutes(t *testing.T) {
	edges := abcdEdges()
	edges[3].TrafficLevel = domain.TrafficCritical // C->D
	net := memory.NewNetwork(abcdNodes(), edges)

	pair, err := PlanOptimalRoutes(context.Background(), RouteRequest{SourceID: nodeA, DestinationID: nodeD}, net, DefaultSolverOptions())
	require.NoError(t, err)

	assert.Equal(t, []string{"A", "C", "D"}, names(pair.Primary))
	assert.Equal(t, int64(4), pair.AvoidedEdge.EdgeID)
	assert.Equal(t, []string{"A", "B", "D"}, names(pair.Alternate))
}

func TestPlanOptimalRoutesRepositoryError(t *testing.T) {
	boom := errors.New("db down")

	_, err := PlanOptimalRoutes(context.Background(), RouteRequest{SourceID: nodeA, DestinationID: nodeD}, failingRepo{boom}, DefaultSolverOptions())

	assert.ErrorIs(t, err, boom)
}

func TestPlanCapacity(t *testing.T) {
	net := memory.NewNetwork(abcdNodes(), abcdEdges())

	res, err := PlanCapacity(context.Background(), FlowRequest{SourceID: nodeA, SinkID: nodeD}, net)
	require.NoError(t, err)

	assert.Equal(t, 15.0, res.Value)
	assert.Equal(t, nodeA, res.Source)
	assert.Equal(t, nodeD, res.Sink)
}

func TestPlanRouteTrafficUnreachable(t *testing.T) {
	net := memory.NewNetwork(abcdNodes(), abcdEdges())
	est := &CongestionEstimator{Counter: net, Window: time.Hour}

	_, err := PlanRouteTraffic(context.Background(), RouteRequest{SourceID: nodeD, DestinationID: nodeA}, net, est, DefaultSolverOptions())

	assert.ErrorIs(t, err, ErrNoPath)
}

func TestPlanRouteTrafficUsesSignals(t *testing.T) {
	net := memory.NewNetwork(abcdNodes(), abcdEdges())
	now := time.Now()
	for _, device := range []string{"d1", "d2", "d3", "d4", "d5"} {
		require.NoError(t, net.RecordSignal(context.Background(), domain.Signal{DeviceID: device, EdgeID: 3, Timestamp: now}))
	}
	est := &CongestionEstimator{Counter: net, Window: time.Hour, Now: func() time.Time { return now }}

	report, err := PlanRouteTraffic(context.Background(), RouteRequest{SourceID: nodeA, DestinationID: nodeD}, net, est, DefaultSolverOptions())
	require.NoError(t, err)

	require.Len(t, report.Segments, 2)
	assert.Equal(t, 5, report.Segments[0].CurrentTraffic)
	assert.Equal(t, domain.TrafficCritical, report.Segments[0].TrafficLevel)
}

func TestIngestSignal(t *testing.T) {
	net := memory.NewNetwork(abcdNodes(), abcdEdges())
	ctx := context.Background()
	now := time.Now()

	var road domain.Edge
	for i, device := range []string{"d1", "d2", "d2", "d3"} {
		var err error
		road, err = IngestSignal(ctx, domain.Signal{
			DeviceID:  device,
			EdgeID:    3,
			Timestamp: now.Add(time.Duration(i) * time.Second),
		}, net, net, net, 5*time.Minute)
		require.NoError(t, err)
	}

	// 3 distinct devices on capacity 5.
	assert.Equal(t, 3, road.CurrentTraffic)
	assert.Equal(t, domain.TrafficMedium, road.TrafficLevel)
	assert.InDelta(t, 1.5*2*(1+2*0.6), road.TravelTime, 1e-9)

	stored, err := net.GetRoad(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, road, stored)
}

func TestIngestSignalIgnoresStaleSignals(t *testing.T) {
	net := memory.NewNetwork(abcdNodes(), abcdEdges())
	ctx := context.Background()
	now := time.Now()

	require.NoError(t, net.RecordSignal(ctx, domain.Signal{DeviceID: "old", EdgeID: 1, Timestamp: now.Add(-time.Hour)}))

	road, err := IngestSignal(ctx, domain.Signal{DeviceID: "new", EdgeID: 1, Timestamp: now}, net, net, net, 5*time.Minute)
	require.NoError(t, err)

	assert.Equal(t, 1, road.CurrentTraffic)
}

func TestIngestSignalUnknownRoad(t *testing.T) {
	net := memory.NewNetwork(abcdNodes(), abcdEdges())

	_, err := IngestSignal(context.Background(), domain.Signal{DeviceID: "d1", EdgeID: 404}, net, net, net, time.Minute)

	assert.ErrorIs(t, err, ports.ErrNotFound)
}
