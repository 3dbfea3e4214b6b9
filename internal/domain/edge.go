package domain

import (
	"fmt"
	"strings"
)

// Congestion classification of a road, ordered from free-flowing to jammed.
type TrafficLevel int

const (
	TrafficLow TrafficLevel = iota
	TrafficMedium
	TrafficHigh
	TrafficCritical
)

func (l TrafficLevel) String() string {
	switch l {
	case TrafficLow:
		return "low"
	case TrafficMedium:
		return "medium"
	case TrafficHigh:
		return "high"
	case TrafficCritical:
		return "critical"
	default:
		return fmt.Sprintf("TrafficLevel(%d)", int(l))
	}
}

// Parse a level name as stored by the persistence layer ("low", "medium", ...).
func ParseTrafficLevel(s string) (TrafficLevel, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "low", "":
		return TrafficLow, nil
	case "medium":
		return TrafficMedium, nil
	case "high":
		return TrafficHigh, nil
	case "critical":
		return TrafficCritical, nil
	default:
		return TrafficLow, fmt.Errorf("parse traffic level: unknown level %q", s)
	}
}

func (l TrafficLevel) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

func (l *TrafficLevel) UnmarshalText(b []byte) error {
	v, err := ParseTrafficLevel(string(b))
	if err != nil {
		return err
	}
	*l = v
	return nil
}

// Represents a directed road segment. A two-way road is two edges.
//
// Distance is in kilometres and TravelTime in minutes. TrafficLevel and
// TravelTime are derived from CurrentTraffic/Capacity by the congestion
// estimator and are never set independently.
type Edge struct {
	ID             int64
	From           int64
	To             int64
	Distance       float64
	Capacity       int
	SpeedLimit     float64
	CurrentTraffic int
	TrafficLevel   TrafficLevel
	TravelTime     float64
}
