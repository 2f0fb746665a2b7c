// Command extract unpacks raw day archives and normalizes the
// extracted file names to the date-first layout the pipeline expects.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"nfo-bars/internal/config"
	"nfo-bars/internal/ingestion"
)

func main() {
	configPath := flag.String("config", "", "Path to YAML config file (env vars with NFO_ prefix override)")
	flag.Parse()

	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := run(logger, *configPath); err != nil {
		logger.Fatal("extract failed", zap.Error(err))
	}
}

func run(logger *zap.Logger, configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if cfg.Input.ArchiveDir == "" {
		return fmt.Errorf("input.archive_dir is not set")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	extracted, err := ingestion.ExtractArchives(ctx, cfg.Input.SevenZip, cfg.Input.ArchiveDir, cfg.Input.DataDir, logger)
	if err != nil {
		return fmt.Errorf("extract archives: %w", err)
	}
	if err := ingestion.NormalizeDayFiles(cfg.Input.DataDir, logger); err != nil {
		return fmt.Errorf("normalize day files: %w", err)
	}

	days, err := ingestion.DiscoverDays(cfg.Input.DataDir, logger)
	if err != nil {
		return fmt.Errorf("discover days: %w", err)
	}
	logger.Info("extraction complete",
		zap.Int("archives", extracted),
		zap.Int("days", len(days)))
	return nil
}
