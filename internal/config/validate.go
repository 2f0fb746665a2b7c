package config

import (
	"errors"
	"fmt"
)

// Validate checks that all required fields are set and values are valid.
func (c *Config) Validate() error {
	switch c.Input.InstrumentSource {
	case "file":
	case "postgres":
		if c.Input.PostgresDSN == "" {
			return errors.New("input.postgres_dsn is required for the postgres instrument source")
		}
	default:
		return fmt.Errorf("input.instrument_source must be file or postgres, got %q", c.Input.InstrumentSource)
	}

	switch c.Output.Sink {
	case "csv":
	case "clickhouse":
		if c.Output.ClickHouseDSN == "" {
			return errors.New("output.clickhouse_dsn is required for the clickhouse sink")
		}
	default:
		return fmt.Errorf("output.sink must be csv or clickhouse, got %q", c.Output.Sink)
	}

	if c.Workers.Days < 1 {
		return errors.New("workers.days must be >= 1")
	}
	if c.Workers.Options < 1 {
		return errors.New("workers.options must be >= 1")
	}

	if c.Metrics.Port < 1 || c.Metrics.Port > 65535 {
		return fmt.Errorf("metrics.port must be between 1 and 65535, got %d", c.Metrics.Port)
	}

	return nil
}
