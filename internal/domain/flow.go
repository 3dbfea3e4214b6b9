package domain

// Result of a capacity analysis between two intersections.
// MinCut lists the roads saturated by the maximum flow that separate the
// source side from the sink side.
type FlowResult struct {
	Source int64
	Sink   int64
	Value  float64
	MinCut []Edge
}
