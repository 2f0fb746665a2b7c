package selection

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"nfo-bars/internal/domain"
	"nfo-bars/internal/instruments"
)

// ErrEmptyChain is returned when no option contracts exist for the
// underlying on a given day. Non-fatal: the index output still stands.
var ErrEmptyChain = errors.New("no option chain for underlying")

// Option contract type suffixes: call and put.
var optionTypes = [...]string{"CE", "PE"}

// SelectOptions returns the token → tradingsymbol mapping of the option
// contracts to aggregate: rows of the underlying on the given exchange,
// narrowed to the nearest expiry present in the table, whose strike
// falls inside the band.
//
// Nearest expiry means minimum over the table, not calendar-nearest to
// today; the table is assumed to be date-scoped already.
func SelectOptions(table []*domain.InstrumentRecord, underlying, exchange string, band domain.StrikeBand) (map[uint32]string, error) {
	chain := instruments.Resolve(table, instruments.Predicates{Name: underlying, Exchange: exchange})
	if len(chain) == 0 {
		return nil, ErrEmptyChain
	}

	var minExpiry time.Time
	for _, r := range chain {
		if r.Expiry.IsZero() {
			continue
		}
		if minExpiry.IsZero() || r.Expiry.Before(minExpiry) {
			minExpiry = r.Expiry
		}
	}
	if minExpiry.IsZero() {
		// Rows exist but none carries an expiry, so none is a contract.
		return nil, ErrEmptyChain
	}

	selected := make(map[uint32]string)
	for _, r := range chain {
		if !r.Expiry.Equal(minExpiry) {
			continue
		}
		if matchesBand(r.Tradingsymbol, band) {
			selected[r.Token] = r.Tradingsymbol
		}
	}
	return selected, nil
}

func matchesBand(symbol string, band domain.StrikeBand) bool {
	for _, strike := range band {
		for _, optType := range optionTypes {
			if hasStrikeSuffix(symbol, strike, optType) {
				return true
			}
		}
	}
	return false
}

// hasStrikeSuffix reports whether symbol ends with "{strike}{optType}"
// with a non-digit boundary before the strike digits. The boundary
// check keeps a small strike from matching inside a larger one:
// strike 100 must not match "...35100CE".
func hasStrikeSuffix(symbol string, strike int, optType string) bool {
	suffix := strconv.Itoa(strike) + optType
	if !strings.HasSuffix(symbol, suffix) {
		return false
	}
	rest := symbol[:len(symbol)-len(suffix)]
	if rest == "" {
		return true
	}
	c := rest[len(rest)-1]
	return c < '0' || c > '9'
}
