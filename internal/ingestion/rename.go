package ingestion

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"nfo-bars/internal/domain"
)

// NormalizeDayFiles renames extracted day files from the upstream
// layout <name>_<date>.json to the date-first layout <date>_<name>.json
// so files of one day sort and pair together. Files that do not match
// the expected shape are skipped, as are files whose target already
// exists.
func NormalizeDayFiles(dir string, log *zap.Logger) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("read data directory %s: %w", dir, err)
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		target, ok := dateFirstName(entry.Name())
		if !ok {
			log.Debug("skipping non-day file", zap.String("file", entry.Name()))
			continue
		}
		if target == entry.Name() {
			continue
		}

		targetPath := filepath.Join(dir, target)
		if _, err := os.Stat(targetPath); err == nil {
			log.Debug("target already exists", zap.String("file", target))
			continue
		}

		if err := os.Rename(filepath.Join(dir, entry.Name()), targetPath); err != nil {
			return fmt.Errorf("rename %s: %w", entry.Name(), err)
		}
		log.Info("renamed day file", zap.String("from", entry.Name()), zap.String("to", target))
	}

	return nil
}

// dateFirstName converts <name>_<date>.json to <date>_<name>.json.
// A name already in date-first form is returned unchanged.
func dateFirstName(name string) (string, bool) {
	base, ok := strings.CutSuffix(name, ".json")
	if !ok {
		return "", false
	}

	if i := strings.Index(base, "_"); i > 0 {
		if _, err := time.Parse(domain.DayLayout, base[:i]); err == nil {
			return name, true // already date-first
		}
	}

	i := strings.LastIndex(base, "_")
	if i < 0 {
		return "", false
	}
	rest, date := base[:i], base[i+1:]
	if _, err := time.Parse(domain.DayLayout, date); err != nil {
		return "", false
	}
	return date + "_" + rest + ".json", true
}
