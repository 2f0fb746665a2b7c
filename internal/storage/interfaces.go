package storage

import (
	"context"

	"nfo-bars/internal/domain"
)

// InstrumentStore loads one trading day's instrument reference table.
type InstrumentStore interface {
	// GetByDay retrieves the table for a day keyed as domain.DayLayout.
	// Returns ErrNotFound when no table exists for that day.
	GetByDay(ctx context.Context, day string) ([]*domain.InstrumentRecord, error)
}

// TickStore loads one trading day's tick map.
type TickStore interface {
	// GetByDay retrieves the tick map for a day keyed as domain.DayLayout.
	// Returns ErrNotFound when no tick data exists for that day.
	GetByDay(ctx context.Context, day string) (domain.TickMap, error)
}

// BarWriter persists one symbol's bar series for a day. Writes must be
// atomic: a partially-written series is never visible to readers.
type BarWriter interface {
	WriteSeries(ctx context.Context, day, symbol string, series domain.BarSeries) error
}
