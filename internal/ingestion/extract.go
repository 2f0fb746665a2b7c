// Package ingestion prepares day files for the pipeline: archive
// extraction, file-name normalization and day discovery.
package ingestion

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// archiveExtensions recognized by the extraction stage.
var archiveExtensions = map[string]bool{
	".zip": true,
	".7z":  true,
	".rar": true,
}

// ExtractArchives extracts every recognized archive in srcDir into
// dstDir using the external 7-Zip executable. Daily archives sometimes
// contain inner archives, so a second pass extracts those in place and
// removes the intermediates. Returns the number of archives extracted;
// zero with a nil error means none were found.
func ExtractArchives(ctx context.Context, sevenZip, srcDir, dstDir string, log *zap.Logger) (int, error) {
	if err := os.MkdirAll(dstDir, 0o755); err != nil {
		return 0, fmt.Errorf("create extraction directory %s: %w", dstDir, err)
	}

	extracted, err := extractDir(ctx, sevenZip, srcDir, dstDir, false, log)
	if err != nil {
		return extracted, err
	}
	if extracted == 0 {
		return 0, nil
	}

	inner, err := extractDir(ctx, sevenZip, dstDir, dstDir, true, log)
	return extracted + inner, err
}

// extractDir extracts every archive directly inside srcDir into dstDir.
// With removeSource set, a successfully extracted archive is deleted.
func extractDir(ctx context.Context, sevenZip, srcDir, dstDir string, removeSource bool, log *zap.Logger) (int, error) {
	entries, err := os.ReadDir(srcDir)
	if err != nil {
		return 0, fmt.Errorf("read archive directory %s: %w", srcDir, err)
	}

	extracted := 0
	for _, entry := range entries {
		if entry.IsDir() || !archiveExtensions[strings.ToLower(filepath.Ext(entry.Name()))] {
			continue
		}

		archive := filepath.Join(srcDir, entry.Name())
		log.Info("extracting archive", zap.String("archive", entry.Name()))

		cmd := exec.CommandContext(ctx, sevenZip, "x", archive, "-o"+dstDir, "-y")
		out, err := cmd.CombinedOutput()
		if err != nil {
			return extracted, fmt.Errorf("extract %s: %w: %s", entry.Name(), err, strings.TrimSpace(string(out)))
		}
		extracted++

		if removeSource {
			if err := os.Remove(archive); err != nil {
				return extracted, fmt.Errorf("remove inner archive %s: %w", entry.Name(), err)
			}
		}
	}

	return extracted, nil
}
