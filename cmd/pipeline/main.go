package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"go.uber.org/zap"

	"nfo-bars/internal/config"
	"nfo-bars/internal/ingestion"
	"nfo-bars/internal/instruments"
	"nfo-bars/internal/observability"
	"nfo-bars/internal/pipeline"
	"nfo-bars/internal/storage"
	chstore "nfo-bars/internal/storage/clickhouse"
	"nfo-bars/internal/storage/file"
	"nfo-bars/internal/storage/fs"
	"nfo-bars/internal/storage/migrations"
	pgstore "nfo-bars/internal/storage/postgres"
)

func main() {
	configPath := flag.String("config", "", "Path to YAML config file (env vars with NFO_ prefix override)")
	daysFlag := flag.String("days", "", "Comma-separated trading days (YYYY-MM-DD) to process; default: all discovered days")
	skipExtract := flag.Bool("skip-extract", false, "Skip archive extraction even when input.archive_dir is set")
	flag.Parse()

	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := run(logger, *configPath, *daysFlag, *skipExtract); err != nil {
		logger.Fatal("pipeline failed", zap.Error(err))
	}
}

func run(logger *zap.Logger, configPath, daysFlag string, skipExtract bool) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	location, err := cfg.Location()
	if err != nil {
		return fmt.Errorf("resolve timezone: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	metrics := observability.NewMetrics("")
	if cfg.Metrics.Enabled {
		addr := fmt.Sprintf(":%d", cfg.Metrics.Port)
		go func() {
			mux := http.NewServeMux()
			mux.Handle("/metrics", observability.Handler())
			mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
				w.Write([]byte("ok"))
			})
			logger.Info("metrics server listening", zap.String("addr", addr))
			if err := http.ListenAndServe(addr, mux); err != nil && err != http.ErrServerClosed {
				logger.Error("metrics server error", zap.Error(err))
			}
		}()
	}

	if cfg.Input.ArchiveDir != "" && !skipExtract {
		extracted, err := ingestion.ExtractArchives(ctx, cfg.Input.SevenZip, cfg.Input.ArchiveDir, cfg.Input.DataDir, logger)
		if err != nil {
			return fmt.Errorf("extract archives: %w", err)
		}
		logger.Info("archives extracted", zap.Int("count", extracted))
	}
	if err := ingestion.NormalizeDayFiles(cfg.Input.DataDir, logger); err != nil {
		return fmt.Errorf("normalize day files: %w", err)
	}

	days, err := resolveDays(daysFlag, cfg.Input.DataDir, logger)
	if err != nil {
		return err
	}
	if len(days) == 0 {
		return fmt.Errorf("no trading days to process in %s", cfg.Input.DataDir)
	}
	logger.Info("trading days resolved", zap.Int("count", len(days)))

	instrumentStore, cleanup, err := buildInstrumentStore(ctx, cfg)
	if err != nil {
		return err
	}
	if cleanup != nil {
		defer cleanup()
	}

	barWriter, err := buildBarWriter(ctx, cfg)
	if err != nil {
		return err
	}

	dayRunner := pipeline.NewDayRunner(pipeline.DayOptions{
		Instruments: instrumentStore,
		Ticks:       file.NewTickStore(cfg.Input.DataDir),
		Bars:        barWriter,
		Index: instruments.Predicates{
			Tradingsymbol:  cfg.Select.IndexTradingsymbol,
			Name:           cfg.Select.IndexName,
			InstrumentType: cfg.Select.IndexInstrumentType,
			Segment:        cfg.Select.IndexSegment,
		},
		Underlying:    cfg.Select.UnderlyingName,
		Exchange:      cfg.Select.Exchange,
		IndexSymbol:   cfg.Output.IndexSymbol,
		Location:      location,
		OptionWorkers: cfg.Workers.Options,
		Logger:        logger,
		Metrics:       metrics,
	})
	runner := pipeline.NewRunner(pipeline.RunnerOptions{
		Day:        dayRunner,
		DayWorkers: cfg.Workers.Days,
		Logger:     logger,
		Metrics:    metrics,
	})

	result, err := runner.Run(ctx, days)
	if err != nil {
		return err
	}

	logger.Info("run complete",
		zap.Int("days_processed", result.DaysProcessed),
		zap.Int("days_failed", result.DaysFailed),
		zap.Int("series_written", result.SeriesWritten),
		zap.Int("symbols_skipped", result.SymbolsSkipped))
	for _, msg := range result.Errors {
		logger.Warn("run issue", zap.String("detail", msg))
	}
	if result.Failed() {
		return fmt.Errorf("%d of %d days failed", result.DaysFailed, len(days))
	}
	return nil
}

// resolveDays returns the explicit -days list or discovers paired day
// files in the data directory.
func resolveDays(daysFlag, dataDir string, logger *zap.Logger) ([]string, error) {
	if daysFlag == "" {
		days, err := ingestion.DiscoverDays(dataDir, logger)
		if err != nil {
			return nil, fmt.Errorf("discover days: %w", err)
		}
		return days, nil
	}
	var days []string
	for _, day := range strings.Split(daysFlag, ",") {
		if day = strings.TrimSpace(day); day != "" {
			days = append(days, day)
		}
	}
	return days, nil
}

func buildInstrumentStore(ctx context.Context, cfg *config.Config) (storage.InstrumentStore, func(), error) {
	switch cfg.Input.InstrumentSource {
	case "postgres":
		pool, err := pgstore.NewPool(ctx, cfg.Input.PostgresDSN)
		if err != nil {
			return nil, nil, fmt.Errorf("connect postgres: %w", err)
		}
		if err := migrations.RunPostgresMigrations(ctx, pool); err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("postgres migrations: %w", err)
		}
		return pgstore.NewInstrumentStore(pool), pool.Close, nil
	default:
		return file.NewInstrumentStore(cfg.Input.DataDir), nil, nil
	}
}

func buildBarWriter(ctx context.Context, cfg *config.Config) (storage.BarWriter, error) {
	switch cfg.Output.Sink {
	case "clickhouse":
		conn, err := migrations.RunClickhouseMigrations(ctx, cfg.Output.ClickHouseDSN)
		if err != nil {
			return nil, fmt.Errorf("clickhouse migrations: %w", err)
		}
		return chstore.NewBarWriter(conn), nil
	default:
		return fs.NewBarWriter(cfg.Output.Root), nil
	}
}
