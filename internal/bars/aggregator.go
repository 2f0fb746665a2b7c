package bars

import (
	"fmt"
	"time"

	"nfo-bars/internal/domain"
)

// ParseTicks converts raw day-file tuples into typed ticks.
// Tuples shorter than (timestamp_ms, price) yield ErrMalformedTickRecord;
// trailing fields beyond price are ignored. An empty sequence yields
// ErrNoTickData.
func ParseTicks(raw []domain.RawTick) ([]domain.Tick, error) {
	if len(raw) == 0 {
		return nil, ErrNoTickData
	}

	ticks := make([]domain.Tick, 0, len(raw))
	for i, r := range raw {
		if len(r) < 2 {
			return nil, fmt.Errorf("tick %d: %w", i, ErrMalformedTickRecord)
		}
		ticks = append(ticks, domain.Tick{
			Timestamp: time.UnixMilli(int64(r[0])),
			Price:     r[1],
		})
	}
	return ticks, nil
}

// Aggregate maps an unordered tick sequence onto the session grid,
// producing exactly one bar per grid second with no missing values.
//
// Steps:
//  1. Stable-sort ticks by timestamp; the feed carries no ordering guarantee.
//  2. Truncate each timestamp to whole seconds and group into OHLC buckets.
//     Ticks outside the window are dropped.
//  3. Left-join the buckets onto the grid.
//  4. Flat-fill every empty slot with the last observed close, so a
//     synthetic bar is always internally consistent. Leading gaps borrow
//     the first observed bar's open.
//
// Returns ErrNoTickData when nothing lands inside the window.
func Aggregate(ticks []domain.Tick, window domain.SessionWindow) (domain.BarSeries, error) {
	if len(ticks) == 0 {
		return nil, ErrNoTickData
	}

	sorted := make([]domain.Tick, len(ticks))
	copy(sorted, ticks)
	SortTicks(sorted)

	n := window.Size()
	buckets := make([]*domain.Bar, n)
	for _, t := range sorted {
		i, ok := window.Index(t.Timestamp.Truncate(time.Second))
		if !ok {
			continue
		}
		b := buckets[i]
		if b == nil {
			buckets[i] = &domain.Bar{
				Timestamp: window.At(i),
				Open:      t.Price,
				High:      t.Price,
				Low:       t.Price,
				Close:     t.Price,
			}
			continue
		}
		if t.Price > b.High {
			b.High = t.Price
		}
		if t.Price < b.Low {
			b.Low = t.Price
		}
		b.Close = t.Price
	}

	first := -1
	for i, b := range buckets {
		if b != nil {
			first = i
			break
		}
	}
	if first == -1 {
		return nil, ErrNoTickData
	}

	series := make(domain.BarSeries, n)
	for i := 0; i < first; i++ {
		series[i] = flatBar(window.At(i), buckets[first].Open)
	}
	lastClose := 0.0
	for i := first; i < n; i++ {
		if b := buckets[i]; b != nil {
			series[i] = *b
			lastClose = b.Close
			continue
		}
		series[i] = flatBar(window.At(i), lastClose)
	}
	return series, nil
}

// flatBar is a synthetic bar pinned at the last known trade price.
func flatBar(ts time.Time, price float64) domain.Bar {
	return domain.Bar{Timestamp: ts, Open: price, High: price, Low: price, Close: price}
}
