// Package memory provides in-memory store implementations for tests.
package memory

import (
	"context"
	"sync"

	"nfo-bars/internal/domain"
	"nfo-bars/internal/storage"
)

// BarWriter is an in-memory implementation of storage.BarWriter.
type BarWriter struct {
	mu     sync.RWMutex
	series map[string]map[string]domain.BarSeries // day -> symbol -> series
}

// NewBarWriter creates a new in-memory bar writer.
func NewBarWriter() *BarWriter {
	return &BarWriter{series: make(map[string]map[string]domain.BarSeries)}
}

// Compile-time interface check.
var _ storage.BarWriter = (*BarWriter)(nil)

// WriteSeries stores a copy of the series under (day, symbol).
func (w *BarWriter) WriteSeries(_ context.Context, day, symbol string, series domain.BarSeries) error {
	if day == "" || symbol == "" {
		return storage.ErrInvalidInput
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if _, ok := w.series[day]; !ok {
		w.series[day] = make(map[string]domain.BarSeries)
	}
	// Store a copy to prevent external mutation
	cp := make(domain.BarSeries, len(series))
	copy(cp, series)
	w.series[day][symbol] = cp
	return nil
}

// Series returns the stored series for (day, symbol), or nil.
func (w *BarWriter) Series(day, symbol string) domain.BarSeries {
	w.mu.RLock()
	defer w.mu.RUnlock()

	s, ok := w.series[day][symbol]
	if !ok {
		return nil
	}
	cp := make(domain.BarSeries, len(s))
	copy(cp, s)
	return cp
}

// Symbols returns the symbols written for a day.
func (w *BarWriter) Symbols(day string) []string {
	w.mu.RLock()
	defer w.mu.RUnlock()

	var symbols []string
	for symbol := range w.series[day] {
		symbols = append(symbols, symbol)
	}
	return symbols
}
