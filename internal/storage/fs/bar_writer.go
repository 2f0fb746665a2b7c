// Package fs implements the CSV output sink: one file per bar series at
// <root>/<day>/<symbol>.csv.
package fs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"nfo-bars/internal/domain"
	"nfo-bars/internal/storage"
)

// timestampLayout is the output rendering of grid instants.
const timestampLayout = "2006-01-02 15:04:05"

// BarWriter implements storage.BarWriter on the local filesystem.
// Each series is written to a temp file and renamed into place, so a
// partially-written file is never visible under its final name.
type BarWriter struct {
	root string
}

// NewBarWriter creates a writer rooted at the output directory.
func NewBarWriter(root string) *BarWriter {
	return &BarWriter{root: root}
}

// Compile-time interface check.
var _ storage.BarWriter = (*BarWriter)(nil)

// WriteSeries renders the series as CSV under <root>/<day>/<symbol>.csv.
func (w *BarWriter) WriteSeries(_ context.Context, day, symbol string, series domain.BarSeries) error {
	dir := filepath.Join(w.root, day)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create day directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, symbol+".csv.tmp")
	if err != nil {
		return fmt.Errorf("create temp file for %s: %w", symbol, err)
	}

	if _, err := tmp.WriteString(renderCSV(series)); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write series %s: %w", symbol, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("close temp file for %s: %w", symbol, err)
	}

	final := filepath.Join(dir, symbol+".csv")
	if err := os.Rename(tmp.Name(), final); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("rename series %s into place: %w", symbol, err)
	}
	return nil
}

// renderCSV renders a bar series in the output layout.
func renderCSV(series domain.BarSeries) string {
	var sb strings.Builder
	sb.WriteString("Timestamp,Open,High,Low,Close\n")
	for _, b := range series {
		sb.WriteString(b.Timestamp.Format(timestampLayout))
		sb.WriteByte(',')
		sb.WriteString(formatPrice(b.Open))
		sb.WriteByte(',')
		sb.WriteString(formatPrice(b.High))
		sb.WriteByte(',')
		sb.WriteString(formatPrice(b.Low))
		sb.WriteByte(',')
		sb.WriteString(formatPrice(b.Close))
		sb.WriteByte('\n')
	}
	return sb.String()
}

func formatPrice(p float64) string {
	return strconv.FormatFloat(p, 'f', -1, 64)
}
