package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// configName is the config file name without extension.
const configName = "insights"

// configType is the config file format.
const configType = "yaml"

// envPrefix is the environment variable prefix, e.g. INSIGHTS_HTTP_ADDR.
const envPrefix = "INSIGHTS"

// legacyDSNEnv is still honoured for postgres.dsn.
const legacyDSNEnv = "POSTGRES_DSN"

// Load reads configuration from file, env vars and defaults. If configPath
// is empty the file is searched in the working directory and
// /etc/insights-display-service; a missing file is not an error.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	applyDefaults(v)

	v.SetConfigType(configType)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.BindEnv("postgres.dsn", envPrefix+"_POSTGRES_DSN", legacyDSNEnv); err != nil {
		return nil, fmt.Errorf("bind env: %w", err)
	}

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName(configName)
		v.AddConfigPath(".")
		v.AddConfigPath("/etc/insights-display-service")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &cfg, nil
}

func applyDefaults(v *viper.Viper) {
	v.SetDefault("http.addr", DefaultHTTPAddr)
	v.SetDefault("http.shutdown_timeout", DefaultShutdownTimeout)

	v.SetDefault("postgres.max_open_conns", DefaultMaxOpenConns)
	v.SetDefault("postgres.max_idle_conns", DefaultMaxIdleConns)
	v.SetDefault("postgres.conn_max_lifetime", DefaultConnMaxLifetime)

	v.SetDefault("log.level", DefaultLogLevel)
	v.SetDefault("log.format", DefaultLogFormat)

	v.SetDefault("insights.default_histogram_bins", DefaultHistogramBins)
}
