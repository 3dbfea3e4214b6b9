package services

import (
	"context"
	"fmt"
	"math"
	"time"
	"traffic-route-service/internal/domain"
)

const (
	defaultSpeedKmh = 40.0
	minSpeedKmh     = 5.0
)

// Share of the base speed still available at each congestion level.
var speedMultiplier = map[domain.TrafficLevel]float64{
	domain.TrafficLow:      1.0,
	domain.TrafficMedium:   0.75,
	domain.TrafficHigh:     0.5,
	domain.TrafficCritical: 0.35,
}

// SegmentDistanceKm is the edge distance when positive, else the great-circle
// distance between its endpoints.
func SegmentDistanceKm(e domain.Edge, from, to domain.Node) float64 {
	if e.Distance > 0 {
		return e.Distance
	}
	return from.Coordinates.HaversineKm(to.Coordinates)
}

// SpeedBasedTravelTime returns minutes to cover distanceKm on e at its
// current level: the speed limit (40 km/h when unset) scaled by the level
// multiplier, never below 5 km/h.
func SpeedBasedTravelTime(e domain.Edge, distanceKm float64) float64 {
	speed := defaultSpeedKmh
	if e.SpeedLimit > 0 {
		speed = e.SpeedLimit
	}
	m, ok := speedMultiplier[e.TrafficLevel]
	if !ok {
		m = 1.0
	}
	speed = math.Max(speed*m, minSpeedKmh)

	if distanceKm <= 0 {
		return 0
	}
	return distanceKm / speed * 60
}

// BlendTravelTime averages a computed travel time with a stored one when the
// stored value is positive. The result is rounded to 2 decimals.
func BlendTravelTime(computed, stored float64) float64 {
	if stored > 0 {
		return roundTo((computed+stored)/2, 2)
	}
	return roundTo(computed, 2)
}

func roundTo(v float64, places int) float64 {
	p := math.Pow10(places)
	return math.Round(v*p) / p
}

// RouteTraffic re-estimates congestion on every segment of route and reports
// per-segment travel times and the time window the trip spans when it ends now.
// The stored travel time of each edge is blended with the speed-based one.
func (g *Graph) RouteTraffic(ctx context.Context, route domain.Route, est *CongestionEstimator) (*domain.RouteTrafficReport, error) {
	report := &domain.RouteTrafficReport{
		Route:    route,
		Segments: make([]domain.SegmentTraffic, 0, len(route.Segments)),
	}

	var total float64
	for _, seg := range route.Segments {
		from, err := g.Index(seg.From.ID)
		if err != nil {
			return nil, fmt.Errorf("route traffic: %w", err)
		}
		to, err := g.Index(seg.To.ID)
		if err != nil {
			return nil, fmt.Errorf("route traffic: %w", err)
		}
		stored, ok := g.Edge(from, to)
		if !ok {
			return nil, fmt.Errorf("route traffic: %w", &MissingEdgeError{From: seg.From.ID, To: seg.To.ID})
		}

		current, err := est.Estimate(ctx, stored)
		if err != nil {
			return nil, fmt.Errorf("route traffic: %w", err)
		}

		km := SegmentDistanceKm(current, seg.From, seg.To)
		minutes := BlendTravelTime(SpeedBasedTravelTime(current, km), stored.TravelTime)
		total += minutes

		report.Segments = append(report.Segments, domain.SegmentTraffic{
			From:           seg.From,
			To:             seg.To,
			TrafficLevel:   current.TrafficLevel,
			CurrentTraffic: current.CurrentTraffic,
			Capacity:       current.Capacity,
			DistanceKm:     roundTo(km, 3),
			TravelTimeMin:  minutes,
		})
	}

	report.TotalTimeMin = roundTo(total, 2)
	report.WindowEnd = est.now()
	report.WindowStart = report.WindowEnd.Add(-time.Duration(total * float64(time.Minute)))

	return report, nil
}
