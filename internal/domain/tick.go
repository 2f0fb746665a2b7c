package domain

import "time"

// RawTick is one trade observation exactly as it appears in a day file:
// a numeric tuple of at least (timestamp_ms, price). Trailing fields
// (volume, open interest, ...) are carried but ignored by aggregation.
type RawTick []float64

// Tick is a single validated trade observation.
type Tick struct {
	Timestamp time.Time
	Price     float64
}

// TickMap holds one trading day's raw observations keyed by instrument token.
// Tick sequences carry no ordering guarantee; multiple ticks may share a timestamp.
type TickMap map[uint32][]RawTick
