package instruments

import "errors"

// Resolver errors. Both are fatal for the day being processed but never
// for the rest of the run.
var (
	// ErrInstrumentNotFound is returned when an index lookup matches no rows.
	ErrInstrumentNotFound = errors.New("instrument not found")

	// ErrAmbiguousInstrument is returned when an index lookup matches more
	// than one row. The resolver never silently picks one.
	ErrAmbiguousInstrument = errors.New("instrument predicates match more than one row")
)
