package services

import (
	"context"
	"fmt"
	"time"
	"traffic-route-service/internal/domain"
	"traffic-route-service/internal/ports"
)

// Inclusive lower bounds of the congestion ratio for each level.
const (
	criticalRatio = 0.9
	highRatio     = 0.7
	mediumRatio   = 0.4
)

// CongestionRatio is observed / capacity; a non-positive capacity yields 0.
func CongestionRatio(observed, capacity int) float64 {
	if capacity <= 0 {
		return 0
	}
	return float64(observed) / float64(capacity)
}

func ClassifyRatio(ratio float64) domain.TrafficLevel {
	switch {
	case ratio >= criticalRatio:
		return domain.TrafficCritical
	case ratio >= highRatio:
		return domain.TrafficHigh
	case ratio >= mediumRatio:
		return domain.TrafficMedium
	default:
		return domain.TrafficLow
	}
}

// CongestedTravelTime returns minutes for a road of distanceKm at the given
// congestion ratio: free flow is 2 minutes per km, scaled by 1 + 2*ratio.
func CongestedTravelTime(distanceKm, ratio float64) float64 {
	base := distanceKm * 2
	return base * (1 + 2*ratio)
}

// ApplyObservedTraffic returns a copy of e with CurrentTraffic set to observed
// and TrafficLevel/TravelTime re-derived from it.
func ApplyObservedTraffic(e domain.Edge, observed int) domain.Edge {
	ratio := CongestionRatio(observed, e.Capacity)
	e.CurrentTraffic = observed
	e.TrafficLevel = ClassifyRatio(ratio)
	e.TravelTime = CongestedTravelTime(e.Distance, ratio)
	return e
}

// CongestionEstimator counts distinct devices per road inside a trailing
// window and re-derives the road's level and weight.
type CongestionEstimator struct {
	Counter ports.SignalCounter
	Window  time.Duration
	Now     func() time.Time
}

func (c *CongestionEstimator) now() time.Time {
	if c.Now != nil {
		return c.Now()
	}
	return time.Now()
}

// Estimate returns e updated with the device count observed in the window.
// The input edge is not modified.
func (c *CongestionEstimator) Estimate(ctx context.Context, e domain.Edge) (domain.Edge, error) {
	since := c.now().Add(-c.Window)
	count, err := c.Counter.CountDistinctDevices(ctx, e.ID, since)
	if err != nil {
		return domain.Edge{}, fmt.Errorf("estimate congestion: road %d: %w", e.ID, err)
	}
	return ApplyObservedTraffic(e, count), nil
}

// EstimateAll returns updated copies of edges, in input order.
func (c *CongestionEstimator) EstimateAll(ctx context.Context, edges []domain.Edge) ([]domain.Edge, error) {
	out := make([]domain.Edge, 0, len(edges))
	for _, e := range edges {
		updated, err := c.Estimate(ctx, e)
		if err != nil {
			return nil, err
		}
		out = append(out, updated)
	}
	return out, nil
}
