// Package config loads the service configuration.
package config

import (
	"errors"
	"fmt"
	"time"

	"insights-display-service/internal/insights/core/labels"
	"insights-display-service/internal/logging"
)

// Defaults.
const (
	DefaultHTTPAddr        = ":8080"
	DefaultShutdownTimeout = 5 * time.Second
	DefaultMaxOpenConns    = 20
	DefaultMaxIdleConns    = 10
	DefaultConnMaxLifetime = 30 * time.Minute
	DefaultLogLevel        = "info"
	DefaultLogFormat       = logging.FormatText
	DefaultHistogramBins   = 10
	minHistogramBins       = 2
	maxHistogramBins       = 100
)

var (
	ErrMissingDSN       = errors.New("postgres.dsn must be set")
	ErrMissingAddr      = errors.New("http.addr must be set")
	ErrInvalidPool      = errors.New("postgres pool sizes must be non-negative")
	ErrInvalidTimeout   = errors.New("http.shutdown_timeout must be positive")
	ErrInvalidLogLevel  = errors.New("log.level must be debug, info, warn or error")
	ErrInvalidLogFormat = errors.New("log.format must be text or json")
	ErrInvalidBins      = errors.New("insights.default_histogram_bins must be between 2 and 100")
)

// Config is the top-level configuration. Field tags use mapstructure for
// viper unmarshalling.
type Config struct {
	HTTP     HTTPConfig     `mapstructure:"http"`
	Postgres PostgresConfig `mapstructure:"postgres"`
	Log      LogConfig      `mapstructure:"log"`
	Labels   LabelsConfig   `mapstructure:"labels"`
	Insights InsightsConfig `mapstructure:"insights"`
}

type HTTPConfig struct {
	Addr            string        `mapstructure:"addr"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type PostgresConfig struct {
	DSN             string        `mapstructure:"dsn"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// LabelsConfig is the display configuration handed to the label core.
// Viper lowercases map keys; the label core matches property and event
// names case-insensitively against them.
type LabelsConfig struct {
	PropertyFormats map[string]string `mapstructure:"property_formats"`
	EventLabels     map[string]string `mapstructure:"event_labels"`
}

type InsightsConfig struct {
	DefaultHistogramBins int `mapstructure:"default_histogram_bins"`
}

// Validate checks Config invariants and returns the first error found.
func (c *Config) Validate() error {
	if c.HTTP.Addr == "" {
		return ErrMissingAddr
	}
	if c.HTTP.ShutdownTimeout <= 0 {
		return ErrInvalidTimeout
	}

	if c.Postgres.DSN == "" {
		return ErrMissingDSN
	}
	if c.Postgres.MaxOpenConns < 0 || c.Postgres.MaxIdleConns < 0 {
		return ErrInvalidPool
	}

	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return ErrInvalidLogLevel
	}
	if c.Log.Format != logging.FormatText && c.Log.Format != logging.FormatJSON {
		return ErrInvalidLogFormat
	}

	if b := c.Insights.DefaultHistogramBins; b < minHistogramBins || b > maxHistogramBins {
		return ErrInvalidBins
	}

	_, err := c.Labels.Formats()
	return err
}

// Formats parses the configured property formats.
func (l LabelsConfig) Formats() (map[string]labels.PropertyFormat, error) {
	out := make(map[string]labels.PropertyFormat, len(l.PropertyFormats))
	for prop, raw := range l.PropertyFormats {
		f, err := labels.ParsePropertyFormat(raw)
		if err != nil {
			return nil, fmt.Errorf("labels.property_formats.%s: %w", prop, err)
		}
		out[prop] = f
	}
	return out, nil
}
