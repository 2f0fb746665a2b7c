// Package config loads and validates the pipeline configuration.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is the full pipeline configuration. The processing core takes
// no configuration beyond the session zone and selection criteria; the
// rest belongs to the driver.
type Config struct {
	Input   InputConfig     `mapstructure:"input"`
	Output  OutputConfig    `mapstructure:"output"`
	Session SessionConfig   `mapstructure:"session"`
	Select  SelectionConfig `mapstructure:"selection"`
	Workers WorkersConfig   `mapstructure:"workers"`
	Metrics MetricsConfig   `mapstructure:"metrics"`
}

// InputConfig describes where day files come from.
type InputConfig struct {
	// ArchiveDir holds .zip/.7z/.rar archives to extract before
	// processing. Empty disables the extraction stage.
	ArchiveDir string `mapstructure:"archive_dir"`
	// SevenZip is the 7-Zip executable used for extraction.
	SevenZip string `mapstructure:"seven_zip"`
	// DataDir holds (or receives, after extraction) the per-day JSON files.
	DataDir string `mapstructure:"data_dir"`
	// InstrumentSource selects the instrument table backend: file|postgres.
	InstrumentSource string `mapstructure:"instrument_source"`
	// PostgresDSN backs the postgres instrument source.
	PostgresDSN string `mapstructure:"postgres_dsn"`
}

// OutputConfig describes the bar series sink.
type OutputConfig struct {
	// Sink selects the output backend: csv|clickhouse.
	Sink string `mapstructure:"sink"`
	// Root is the CSV output directory.
	Root string `mapstructure:"root"`
	// ClickHouseDSN backs the clickhouse sink.
	ClickHouseDSN string `mapstructure:"clickhouse_dsn"`
	// IndexSymbol is the fixed file/series name for the index output.
	IndexSymbol string `mapstructure:"index_symbol"`
}

// SessionConfig pins the session grid's time zone.
type SessionConfig struct {
	Timezone string `mapstructure:"timezone"`
}

// SelectionConfig identifies the index and its option chain in the
// instrument table.
type SelectionConfig struct {
	IndexTradingsymbol  string `mapstructure:"index_tradingsymbol"`
	IndexName           string `mapstructure:"index_name"`
	IndexInstrumentType string `mapstructure:"index_instrument_type"`
	IndexSegment        string `mapstructure:"index_segment"`
	UnderlyingName      string `mapstructure:"underlying_name"`
	Exchange            string `mapstructure:"exchange"`
}

// WorkersConfig bounds the worker pools.
type WorkersConfig struct {
	// Days is the number of trading days processed concurrently.
	Days int `mapstructure:"days"`
	// Options is the number of option symbols aggregated concurrently
	// within one day.
	Options int `mapstructure:"options"`
}

// MetricsConfig controls the Prometheus endpoint.
type MetricsConfig struct {
	Enabled bool `mapstructure:"enabled"`
	Port    int  `mapstructure:"port"`
}

// Load reads the YAML config at path, applies NFO_* environment
// overrides and defaults, and validates the result. An empty path loads
// defaults and environment only.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("NFO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Location resolves the configured session time zone.
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Session.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load session timezone %q: %w", c.Session.Timezone, err)
	}
	return loc, nil
}
