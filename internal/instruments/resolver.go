// Package instruments resolves rows of the per-day instrument reference
// table against exact-match predicates.
package instruments

import "nfo-bars/internal/domain"

// Predicates is an exact-match conjunction over instrument table
// columns. Empty fields are not applied.
type Predicates struct {
	Tradingsymbol  string
	Name           string
	InstrumentType string
	Segment        string
	Exchange       string
}

// Match reports whether the record satisfies every non-empty predicate.
func (p Predicates) Match(r *domain.InstrumentRecord) bool {
	if p.Tradingsymbol != "" && r.Tradingsymbol != p.Tradingsymbol {
		return false
	}
	if p.Name != "" && r.Name != p.Name {
		return false
	}
	if p.InstrumentType != "" && r.InstrumentType != p.InstrumentType {
		return false
	}
	if p.Segment != "" && r.Segment != p.Segment {
		return false
	}
	if p.Exchange != "" && r.Exchange != p.Exchange {
		return false
	}
	return true
}

// Resolve returns every record satisfying the predicates. Any match
// count, including zero, is valid; chain lookups use this directly.
func Resolve(table []*domain.InstrumentRecord, p Predicates) []*domain.InstrumentRecord {
	var matched []*domain.InstrumentRecord
	for _, r := range table {
		if p.Match(r) {
			matched = append(matched, r)
		}
	}
	return matched
}

// ResolveIndex requires the predicates to identify exactly one record.
// Zero matches yield ErrInstrumentNotFound, more than one yield
// ErrAmbiguousInstrument.
func ResolveIndex(table []*domain.InstrumentRecord, p Predicates) (*domain.InstrumentRecord, error) {
	matched := Resolve(table, p)
	switch len(matched) {
	case 0:
		return nil, ErrInstrumentNotFound
	case 1:
		return matched[0], nil
	default:
		return nil, ErrAmbiguousInstrument
	}
}
