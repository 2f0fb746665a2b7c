package clickhouse

import (
	"context"
	"fmt"
	"time"

	"nfo-bars/internal/domain"
	"nfo-bars/internal/storage"
)

// BarWriter implements storage.BarWriter using ClickHouse. Each series
// goes out as one native batch, so a failed day leaves no partial rows
// visible under the symbol.
type BarWriter struct {
	conn *Conn
}

// NewBarWriter creates a new BarWriter.
func NewBarWriter(conn *Conn) *BarWriter {
	return &BarWriter{conn: conn}
}

// Compile-time interface check.
var _ storage.BarWriter = (*BarWriter)(nil)

// WriteSeries appends the series to the bars table.
func (w *BarWriter) WriteSeries(ctx context.Context, day, symbol string, series domain.BarSeries) error {
	tradingDay, err := time.Parse(domain.DayLayout, day)
	if err != nil {
		return fmt.Errorf("parse day %q: %w", day, err)
	}

	batch, err := w.conn.PrepareBatch(ctx, `
		INSERT INTO bars (
			trading_day, symbol, ts, open, high, low, close
		)
	`)
	if err != nil {
		return fmt.Errorf("prepare batch: %w", err)
	}

	for _, b := range series {
		err = batch.Append(
			tradingDay, symbol, b.Timestamp,
			b.Open, b.High, b.Low, b.Close,
		)
		if err != nil {
			return fmt.Errorf("append to batch: %w", err)
		}
	}

	if err := batch.Send(); err != nil {
		return fmt.Errorf("send batch: %w", err)
	}
	return nil
}
