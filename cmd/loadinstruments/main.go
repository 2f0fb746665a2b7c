// Command loadinstruments copies per-day instrument tables from the
// data directory into PostgreSQL, so the pipeline can run with
// input.instrument_source = postgres.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"nfo-bars/internal/config"
	"nfo-bars/internal/ingestion"
	"nfo-bars/internal/storage"
	"nfo-bars/internal/storage/file"
	"nfo-bars/internal/storage/migrations"
	pgstore "nfo-bars/internal/storage/postgres"
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
		logger.Fatal("load failed", zap.Error(err))
	}
}

func run(logger *zap.Logger, configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if cfg.Input.PostgresDSN == "" {
		return fmt.Errorf("input.postgres_dsn is not set")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	days, err := ingestion.DiscoverDays(cfg.Input.DataDir, logger)
	if err != nil {
		return fmt.Errorf("discover days: %w", err)
	}
	if len(days) == 0 {
		return fmt.Errorf("no day files in %s", cfg.Input.DataDir)
	}

	pool, err := pgstore.NewPool(ctx, cfg.Input.PostgresDSN)
	if err != nil {
		return fmt.Errorf("connect postgres: %w", err)
	}
	defer pool.Close()
	if err := migrations.RunPostgresMigrations(ctx, pool); err != nil {
		return fmt.Errorf("postgres migrations: %w", err)
	}

	src := file.NewInstrumentStore(cfg.Input.DataDir)
	dst := pgstore.NewInstrumentStore(pool)

	loaded := 0
	for _, day := range days {
		table, err := src.GetByDay(ctx, day)
		if err != nil {
			return fmt.Errorf("read instruments for %s: %w", day, err)
		}
		if err := dst.InsertBulk(ctx, day, table); err != nil {
			if errors.Is(err, storage.ErrDuplicateKey) {
				logger.Info("day already loaded", zap.String("day", day))
				continue
			}
			return fmt.Errorf("load instruments for %s: %w", day, err)
		}
		logger.Info("day loaded", zap.String("day", day), zap.Int("rows", len(table)))
		loaded++
	}

	logger.Info("load complete", zap.Int("days", loaded), zap.Int("skipped", len(days)-loaded))
	return nil
}
