// Package pipeline drives the per-day conversion of raw ticks into
// one-second bar series and fans the work out across option contracts.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"nfo-bars/internal/bars"
	"nfo-bars/internal/domain"
	"nfo-bars/internal/instruments"
	"nfo-bars/internal/observability"
	"nfo-bars/internal/selection"
	"nfo-bars/internal/storage"
)

// DayRunner processes a single trading day: it aggregates the index
// series, derives the strike band from it, selects the relevant option
// contracts and writes one bar series per instrument.
type DayRunner struct {
	instruments storage.InstrumentStore
	ticks       storage.TickStore
	bars        storage.BarWriter

	index       instruments.Predicates
	underlying  string
	exchange    string
	indexSymbol string

	location *time.Location
	workers  int

	log     *zap.Logger
	metrics *observability.Metrics
}

// DayOptions configures a DayRunner.
type DayOptions struct {
	// Required stores
	Instruments storage.InstrumentStore
	Ticks       storage.TickStore
	Bars        storage.BarWriter

	// Index instrument resolution and option chain selection
	Index      instruments.Predicates
	Underlying string
	Exchange   string

	// Symbol the index series is written under
	IndexSymbol string

	// Session timezone (defaults to UTC)
	Location *time.Location

	// Concurrent option aggregations per day (min 1)
	OptionWorkers int

	Logger  *zap.Logger
	Metrics *observability.Metrics
}

// NewDayRunner creates a DayRunner.
func NewDayRunner(opts DayOptions) *DayRunner {
	workers := opts.OptionWorkers
	if workers < 1 {
		workers = 1
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	location := opts.Location
	if location == nil {
		location = time.UTC
	}
	return &DayRunner{
		instruments: opts.Instruments,
		ticks:       opts.Ticks,
		bars:        opts.Bars,
		index:       opts.Index,
		underlying:  opts.Underlying,
		exchange:    opts.Exchange,
		indexSymbol: opts.IndexSymbol,
		location:    location,
		workers:     workers,
		log:         log,
		metrics:     opts.Metrics,
	}
}

// DayResult summarizes one processed day.
type DayResult struct {
	Day            string
	SeriesWritten  int
	SymbolsSkipped int
	Errors         []string
}

// Run processes one trading day. A failure on the index series aborts
// the day; failures on individual option symbols are recorded in the
// result and never affect sibling symbols.
func (d *DayRunner) Run(ctx context.Context, day string) (*DayResult, error) {
	start := time.Now()
	result := &DayResult{Day: day}

	dayTime, err := time.ParseInLocation(domain.DayLayout, day, d.location)
	if err != nil {
		return nil, fmt.Errorf("parse day %q: %w", day, err)
	}
	window := domain.NewSessionWindow(dayTime)

	table, err := d.instruments.GetByDay(ctx, day)
	if err != nil {
		return nil, fmt.Errorf("load instruments for %s: %w", day, err)
	}
	tickMap, err := d.ticks.GetByDay(ctx, day)
	if err != nil {
		return nil, fmt.Errorf("load ticks for %s: %w", day, err)
	}

	indexRec, err := instruments.ResolveIndex(table, d.index)
	if err != nil {
		return nil, fmt.Errorf("resolve index instrument for %s: %w", day, err)
	}

	indexSeries, err := d.aggregate(tickMap, indexRec.Token, window)
	if err != nil {
		return nil, fmt.Errorf("aggregate index %s for %s: %w", d.indexSymbol, day, err)
	}
	if err := d.bars.WriteSeries(ctx, day, d.indexSymbol, indexSeries); err != nil {
		return nil, fmt.Errorf("write index series for %s: %w", day, err)
	}
	result.SeriesWritten++
	if d.metrics != nil {
		d.metrics.SeriesWritten.Inc()
	}

	band, err := selection.SelectBand(indexSeries)
	if err != nil {
		return nil, fmt.Errorf("strike band for %s: %w", day, err)
	}
	d.log.Info("strike band derived",
		zap.String("day", day),
		zap.Int("low", band[0]),
		zap.Int("high", band[len(band)-1]))

	selected, err := selection.SelectOptions(table, d.underlying, d.exchange, band)
	if err != nil {
		if errors.Is(err, selection.ErrEmptyChain) {
			// The index series stands on its own.
			d.log.Warn("no option contracts selected", zap.String("day", day), zap.Error(err))
			d.observeDay(start)
			return result, nil
		}
		return nil, fmt.Errorf("select options for %s: %w", day, err)
	}
	d.log.Info("option contracts selected",
		zap.String("day", day),
		zap.Int("count", len(selected)))

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(d.workers)
	for token, symbol := range selected {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			written, err := d.processOption(gctx, day, token, symbol, tickMap, window)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				result.SymbolsSkipped++
				result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", symbol, err))
				return nil
			}
			if written {
				result.SeriesWritten++
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	d.observeDay(start)
	return result, nil
}

// aggregate parses and buckets the raw ticks for one token.
func (d *DayRunner) aggregate(tickMap domain.TickMap, token uint32, window domain.SessionWindow) (domain.BarSeries, error) {
	raw, ok := tickMap[token]
	if !ok {
		return nil, bars.ErrNoTickData
	}
	ticks, err := bars.ParseTicks(raw)
	if err != nil {
		return nil, err
	}
	start := time.Now()
	series, err := bars.Aggregate(ticks, window)
	if err != nil {
		return nil, err
	}
	if d.metrics != nil {
		d.metrics.AggregationDuration.Observe(time.Since(start).Seconds())
	}
	return series, nil
}

// processOption aggregates and writes one option symbol. Missing or
// malformed tick data is reported as an error so the caller can count
// the skip; sibling symbols are unaffected.
func (d *DayRunner) processOption(ctx context.Context, day string, token uint32, symbol string, tickMap domain.TickMap, window domain.SessionWindow) (bool, error) {
	series, err := d.aggregate(tickMap, token, window)
	if err != nil {
		d.skip(day, symbol, err)
		return false, err
	}
	if err := d.bars.WriteSeries(ctx, day, symbol, series); err != nil {
		if d.metrics != nil {
			d.metrics.SymbolsSkipped.WithLabelValues(observability.SkipReasonWrite).Inc()
		}
		d.log.Error("write series failed",
			zap.String("day", day),
			zap.String("symbol", symbol),
			zap.Error(err))
		return false, err
	}
	if d.metrics != nil {
		d.metrics.SeriesWritten.Inc()
	}
	return true, nil
}

func (d *DayRunner) skip(day, symbol string, err error) {
	reason := observability.SkipReasonNoTicks
	if errors.Is(err, bars.ErrMalformedTickRecord) {
		reason = observability.SkipReasonMalformed
	}
	if d.metrics != nil {
		d.metrics.SymbolsSkipped.WithLabelValues(reason).Inc()
	}
	d.log.Warn("symbol skipped",
		zap.String("day", day),
		zap.String("symbol", symbol),
		zap.String("reason", reason),
		zap.Error(err))
}

func (d *DayRunner) observeDay(start time.Time) {
	if d.metrics != nil {
		d.metrics.DayDuration.Observe(time.Since(start).Seconds())
	}
}
