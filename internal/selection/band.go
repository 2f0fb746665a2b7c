// Package selection derives the set of option contracts worth
// materializing for a day: a strike band from the index session range,
// narrowed to the nearest expiry present in the instrument table.
package selection

import (
	"math"

	"nfo-bars/internal/bars"
	"nfo-bars/internal/domain"
)

// StrikeSpacing is the contract grid of the underlying's option chain.
const StrikeSpacing = 100

// bandMargin widens the band past the rounded session extremes.
const bandMargin = 200

// SelectBand derives the inclusive strike band from the index series:
// [round100(session low) - 200, round100(session high) + 200] at
// 100-unit spacing. Rounding is half away from zero (math.Round).
func SelectBand(index domain.BarSeries) (domain.StrikeBand, error) {
	if len(index) == 0 {
		return nil, bars.ErrNoTickData
	}

	hi, lo := index.HighLow()
	max := roundToSpacing(hi) + bandMargin
	min := roundToSpacing(lo) - bandMargin

	band := make(domain.StrikeBand, 0, (max-min)/StrikeSpacing+1)
	for strike := min; strike <= max; strike += StrikeSpacing {
		band = append(band, strike)
	}
	return band, nil
}

func roundToSpacing(price float64) int {
	return int(math.Round(price/StrikeSpacing)) * StrikeSpacing
}
