// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New(ctx) initializer to build a Config with defaults.
// - External errors are wrapped with this package's sentinel errors.
package config

import (
	"context"
	"fmt"
	"strings"
)

// Source kinds accepted for Config.Source.
const (
	SourceCSV      = "csv"
	SourceSQLite   = "sqlite"
	SourcePostgres = "postgres"
)

// Malformed row policies accepted for Config.MalformedPolicy.
const (
	PolicyFail = "fail"
	PolicySkip = "skip"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the log handler: text or json.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// Source selects where raw tables come from: csv, sqlite or postgres.
	Source string `koanf:"source"`

	// DataDir holds the CSV exports when Source is csv.
	DataDir string `koanf:"data_dir"`

	// File names inside DataDir. Empty means the loader default.
	TeamsFile string `koanf:"teams_file"`
	GamesFile string `koanf:"games_file"`
	PlaysFile string `koanf:"plays_file"`

	// DatabaseDSN is required for SQL sources.
	DatabaseDSN string `koanf:"database_dsn"`

	// RedisURL enables the shared result cache, e.g. redis://localhost:6379/0.
	RedisURL string `koanf:"redis_url"`

	// CacheTTLSeconds bounds the lifetime of cached summaries.
	CacheTTLSeconds int `koanf:"cache_ttl_seconds"`

	// RefreshIntervalSeconds enables the background refresher when positive.
	RefreshIntervalSeconds int `koanf:"refresh_interval_seconds"`

	// RefreshLimitSeconds is the minimum spacing of POST /api/refresh calls.
	// Zero leaves them unlimited.
	RefreshLimitSeconds int `koanf:"refresh_limit_seconds"`

	// KeyPlayLimit is the default number of key plays per summary.
	KeyPlayLimit int `koanf:"key_play_limit"`

	// WarmWorkers precomputes every team's dashboard summary after each
	// rebuild when positive.
	WarmWorkers int `koanf:"warm_workers"`

	// MalformedPolicy decides what happens to rows with an unparseable clock.
	MalformedPolicy string `koanf:"malformed_policy"`
}

// New creates a Config populated with defaults.
func New(_ context.Context) *Config {
	return &Config{
		LogLevel:               "info",
		LogFormat:              "text",
		Addr:                   ":9080",
		Source:                 SourceCSV,
		DataDir:                "data",
		CacheTTLSeconds:        300,
		RefreshIntervalSeconds: 0,
		RefreshLimitSeconds:    10,
		KeyPlayLimit:           5,
		WarmWorkers:            2,
		MalformedPolicy:        PolicyFail,
	}
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Addr) == "" {
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	}
	switch c.Source {
	case SourceCSV:
		if c.DataDir == "" {
			return fmt.Errorf("%w: data_dir must not be empty for csv source", ErrInvalidConfig)
		}
	case SourceSQLite, SourcePostgres:
		if c.DatabaseDSN == "" {
			return fmt.Errorf("%w: database_dsn is required for %s source", ErrInvalidConfig, c.Source)
		}
	default:
		return fmt.Errorf("%w: unknown source %q", ErrInvalidConfig, c.Source)
	}
	switch c.MalformedPolicy {
	case PolicyFail, PolicySkip:
	default:
		return fmt.Errorf("%w: unknown malformed_policy %q", ErrInvalidConfig, c.MalformedPolicy)
	}
	if c.CacheTTLSeconds < 0 || c.RefreshIntervalSeconds < 0 || c.RefreshLimitSeconds < 0 {
		return fmt.Errorf("%w: durations must not be negative", ErrInvalidConfig)
	}
	if c.KeyPlayLimit < 0 {
		return fmt.Errorf("%w: key_play_limit must not be negative", ErrInvalidConfig)
	}
	if c.WarmWorkers < 0 {
		return fmt.Errorf("%w: warm_workers must not be negative", ErrInvalidConfig)
	}
	return nil
}
