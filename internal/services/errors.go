package services

import (
	"errors"
	"fmt"
)

var (
	// ErrNoPath matches *NoPathError via errors.Is.
	ErrNoPath = errors.New("no path")

	ErrDuplicateNode = errors.New("duplicate node id")
	ErrInvalidWeight = errors.New("invalid travel time weight")
	ErrSourceIsSink  = errors.New("source and sink are the same node")
)

// UnknownNodeError reports a reference to a node id absent from the snapshot.
type UnknownNodeError struct {
	ID int64
}

func (e *UnknownNodeError) Error() string {
	return fmt.Sprintf("unknown node %d", e.ID)
}

// MissingEdgeError reports a route hop with no backing edge in the snapshot.
type MissingEdgeError struct {
	From, To int64
}

func (e *MissingEdgeError) Error() string {
	return fmt.Sprintf("no edge backs hop %d -> %d", e.From, e.To)
}

// RoutingInconsistencyError reports a next-hop table that does not lead to
// its destination within n+1 steps.
type RoutingInconsistencyError struct {
	From, To int64
	Steps    int
}

func (e *RoutingInconsistencyError) Error() string {
	return fmt.Sprintf("next-hop walk %d -> %d did not terminate after %d steps", e.From, e.To, e.Steps)
}

type NoPathError struct {
	From, To int64
}

func (e *NoPathError) Error() string {
	return fmt.Sprintf("no path from %d to %d", e.From, e.To)
}

func (e *NoPathError) Is(target error) bool { return target == ErrNoPath }
