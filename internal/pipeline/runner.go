package pipeline

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"nfo-bars/internal/observability"
)

// Runner processes a set of trading days with a bounded worker pool.
// A failed day is recorded and never aborts the remaining days.
type Runner struct {
	day     *DayRunner
	workers int
	log     *zap.Logger
	metrics *observability.Metrics
}

// RunnerOptions configures a Runner.
type RunnerOptions struct {
	Day *DayRunner

	// Concurrent days (min 1)
	DayWorkers int

	Logger  *zap.Logger
	Metrics *observability.Metrics
}

// NewRunner creates a Runner.
func NewRunner(opts RunnerOptions) *Runner {
	workers := opts.DayWorkers
	if workers < 1 {
		workers = 1
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &Runner{
		day:     opts.Day,
		workers: workers,
		log:     log,
		metrics: opts.Metrics,
	}
}

// RunResult summarizes a multi-day run.
type RunResult struct {
	DaysProcessed  int
	DaysFailed     int
	SeriesWritten  int
	SymbolsSkipped int
	Errors         []string
}

// Failed reports whether any day failed outright.
func (r *RunResult) Failed() bool {
	return r.DaysFailed > 0
}

// Run processes the given days. The returned error is non-nil only
// when the context is cancelled; per-day failures are collected in
// the result.
func (r *Runner) Run(ctx context.Context, days []string) (*RunResult, error) {
	result := &RunResult{}
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)
	for _, day := range days {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			dayResult, err := r.day.Run(gctx, day)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				result.DaysFailed++
				result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", day, err))
				if r.metrics != nil {
					r.metrics.DaysFailed.Inc()
				}
				r.log.Error("day failed", zap.String("day", day), zap.Error(err))
				return nil
			}
			result.DaysProcessed++
			result.SeriesWritten += dayResult.SeriesWritten
			result.SymbolsSkipped += dayResult.SymbolsSkipped
			result.Errors = append(result.Errors, dayResult.Errors...)
			if r.metrics != nil {
				r.metrics.DaysProcessed.Inc()
			}
			r.log.Info("day processed",
				zap.String("day", day),
				zap.Int("series_written", dayResult.SeriesWritten),
				zap.Int("symbols_skipped", dayResult.SymbolsSkipped))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Strings(result.Errors)
	return result, nil
}
