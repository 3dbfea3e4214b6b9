package domain

import "time"

// A single device observation on a road. Signals are append-only.
type Signal struct {
	DeviceID    string
	EdgeID      int64
	Coordinates Coordinates
	Timestamp   time.Time
}
