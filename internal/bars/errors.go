package bars

import "errors"

// Aggregation errors. Both are non-fatal at the pipeline level: the
// affected symbol is skipped and its siblings continue.
var (
	// ErrNoTickData is returned when an instrument has no tick entries,
	// or none of its ticks fall inside the session window.
	ErrNoTickData = errors.New("no tick data for instrument")

	// ErrMalformedTickRecord is returned when a tick tuple does not have
	// the expected (timestamp, price) shape.
	ErrMalformedTickRecord = errors.New("tick record does not match (timestamp, price) shape")
)
