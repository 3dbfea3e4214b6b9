package domain

import "time"

// A single hop of a computed route, backed by one directed edge.
type Segment struct {
	EdgeID       int64
	From         Node
	To           Node
	TrafficLevel TrafficLevel
	TravelTime   float64
}

// An ordered route from a source to a destination.
//
// An unreachable destination yields a Route with no Nodes. A route from a
// node to itself has one node, no segments and zero TotalTime.
type Route struct {
	Nodes     []Node
	Segments  []Segment
	TotalTime float64
}

// Reports whether the route connects its endpoints.
func (r Route) Found() bool { return len(r.Nodes) > 0 }

// Represents the output of the optimal/alternate search.
// AvoidedEdge is the segment whose edge was excluded when searching for the
// alternate; it is nil when the primary route has no segments.
type RoutePair struct {
	Primary        Route
	Alternate      Route
	AvoidedEdge    *Segment
	AlternateFound bool
}

// Per-segment traffic figures of the route traffic report.
type SegmentTraffic struct {
	From           Node
	To             Node
	TrafficLevel   TrafficLevel
	CurrentTraffic int
	Capacity       int
	DistanceKm     float64
	TravelTimeMin  float64
}

// Route statistics over a time window ending at the time of the request.
type RouteTrafficReport struct {
	Route        Route
	Segments     []SegmentTraffic
	WindowStart  time.Time
	WindowEnd    time.Time
	TotalTimeMin float64
}
