package ports

import (
	"context"
	"errors"
	"time"
	"traffic-route-service/internal/domain"
)

// ErrNotFound is returned by adapters when a requested record does not exist.
var ErrNotFound = errors.New("not found")

// Counts distinct devices that reported a signal on a road since a point in time.
type SignalCounter interface {
	CountDistinctDevices(ctx context.Context, edgeID int64, since time.Time) (int, error)
}

// Appends device signals.
type SignalRecorder interface {
	RecordSignal(ctx context.Context, signal domain.Signal) error
}

type SignalStore interface {
	SignalRecorder
	SignalCounter
}
