package services

import (
	"context"
	"fmt"
	"time"
	"traffic-route-service/internal/domain"
	"traffic-route-service/internal/platform/obs"
	"traffic-route-service/internal/ports"
)

type RouteRequest struct {
	SourceID      int64
	DestinationID int64
}

// Snapshot is the network as read from the repository for one request.
type Snapshot struct {
	Nodes []domain.Node
	Edges []domain.Edge
}

// LoadSnapshot reads all intersections and roads. The core never reaches
// back into the repository after this point.
func LoadSnapshot(ctx context.Context, repo ports.NetworkRepository) (_ *Snapshot, err error) {
	defer obs.Time(ctx, "snapshot.load")(&err)

	nodes, err := repo.ListIntersections(ctx)
	if err != nil {
		return nil, fmt.Errorf("load snapshot: list intersections: %w", err)
	}
	edges, err := repo.ListRoads(ctx)
	if err != nil {
		return nil, fmt.Errorf("load snapshot: list roads: %w", err)
	}

	return &Snapshot{Nodes: nodes, Edges: edges}, nil
}

// PlanOptimalRoutes loads the snapshot and computes the primary and
// alternate routes between the requested intersections.
func PlanOptimalRoutes(
	ctx context.Context,
	req RouteRequest,
	repo ports.NetworkRepository,
	opts SolverOptions,
) (_ *domain.RoutePair, err error) {
	snap, err := LoadSnapshot(ctx, repo)
	if err != nil {
		return nil, fmt.Errorf("plan optimal routes: %w", err)
	}

	defer obs.Time(ctx, "routes.optimal")(&err)
	pair, err := FindOptimalAndAlternate(snap.Nodes, snap.Edges, req.SourceID, req.DestinationID, opts)
	if err != nil {
		return nil, fmt.Errorf("plan optimal routes: %w", err)
	}
	return pair, nil
}

// PlanRouteTraffic computes the primary route on the stored weights and
// reports its per-segment traffic over the estimator's window.
func PlanRouteTraffic(
	ctx context.Context,
	req RouteRequest,
	repo ports.NetworkRepository,
	est *CongestionEstimator,
	opts SolverOptions,
) (_ *domain.RouteTrafficReport, err error) {
	snap, err := LoadSnapshot(ctx, repo)
	if err != nil {
		return nil, fmt.Errorf("plan route traffic: %w", err)
	}

	defer obs.Time(ctx, "routes.traffic")(&err)
	g, ap, err := ComputeAllPairsFor(snap.Nodes, snap.Edges, opts)
	if err != nil {
		return nil, fmt.Errorf("plan route traffic: %w", err)
	}

	route, err := g.Route(ap, req.SourceID, req.DestinationID)
	if err != nil {
		return nil, fmt.Errorf("plan route traffic: %w", err)
	}
	if !route.Found() {
		return nil, &NoPathError{From: req.SourceID, To: req.DestinationID}
	}

	report, err := g.RouteTraffic(ctx, route, est)
	if err != nil {
		return nil, fmt.Errorf("plan route traffic: %w", err)
	}
	return report, nil
}

type FlowRequest struct {
	SourceID int64
	SinkID   int64
}

// PlanCapacity loads the snapshot and computes the maximum flow and minimum
// cut between two intersections.
func PlanCapacity(ctx context.Context, req FlowRequest, repo ports.NetworkRepository) (_ *domain.FlowResult, err error) {
	snap, err := LoadSnapshot(ctx, repo)
	if err != nil {
		return nil, fmt.Errorf("plan capacity: %w", err)
	}

	defer obs.Time(ctx, "flow.max")(&err)
	res, err := AnalyzeFlow(snap.Nodes, snap.Edges, req.SourceID, req.SinkID)
	if err != nil {
		return nil, fmt.Errorf("plan capacity: %w", err)
	}
	return res, nil
}

// IngestSignal records a device signal, re-derives the congestion of its
// road from the distinct devices seen in the last window, and hands the
// updated road to the writer. It returns the updated road.
func IngestSignal(
	ctx context.Context,
	signal domain.Signal,
	repo ports.NetworkRepository,
	store ports.SignalStore,
	writer ports.RoadTrafficWriter,
	window time.Duration,
) (_ domain.Edge, err error) {
	defer obs.Time(ctx, "signals.ingest")(&err)

	road, err := repo.GetRoad(ctx, signal.EdgeID)
	if err != nil {
		return domain.Edge{}, fmt.Errorf("ingest signal: road %d: %w", signal.EdgeID, err)
	}

	if signal.Timestamp.IsZero() {
		signal.Timestamp = time.Now()
	}
	if err := store.RecordSignal(ctx, signal); err != nil {
		return domain.Edge{}, fmt.Errorf("ingest signal: record: %w", err)
	}

	est := &CongestionEstimator{
		Counter: store,
		Window:  window,
		Now:     func() time.Time { return signal.Timestamp },
	}
	updated, err := est.Estimate(ctx, road)
	if err != nil {
		return domain.Edge{}, fmt.Errorf("ingest signal: %w", err)
	}

	if err := writer.UpdateRoadTraffic(ctx, updated); err != nil {
		return domain.Edge{}, fmt.Errorf("ingest signal: update road %d: %w", road.ID, err)
	}
	return updated, nil
}
