package ingestion

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"go.uber.org/zap"

	"nfo-bars/internal/storage/file"
)

// DiscoverDays scans the data directory for paired day files and returns
// the trading days that have both an instrument table and a tick map,
// sorted ascending. Days with a missing half are logged and skipped.
func DiscoverDays(dir string, log *zap.Logger) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read data directory %s: %w", dir, err)
	}

	instruments := make(map[string]bool)
	ticks := make(map[string]bool)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if day, ok := strings.CutSuffix(name, file.InstrumentsSuffix); ok {
			instruments[day] = true
		} else if day, ok := strings.CutSuffix(name, file.TicksSuffix); ok {
			ticks[day] = true
		}
	}

	var days []string
	for day := range instruments {
		if ticks[day] {
			days = append(days, day)
			continue
		}
		log.Warn("no tick file for day, skipping", zap.String("day", day))
	}
	for day := range ticks {
		if !instruments[day] {
			log.Warn("no instrument file for day, skipping", zap.String("day", day))
		}
	}

	sort.Strings(days)
	return days, nil
}
