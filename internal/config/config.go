// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New(ctx) initializer to build a Config with defaults.
// - All loading functions accept context.Context as the first parameter.
// - Validation failures wrap ErrInvalidConfig, loading failures ErrLoadConfig.
package config

import (
	"context"
	"fmt"
	"net"
	"strconv"
	"time"
)

// Store drivers understood by the query executor.
const (
	DriverMySQL  = "mysql"
	DriverSQLite = "sqlite3"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level" validate:"omitempty,oneof=debug info warn warning error"`

	// LogFormat selects the log handler: text or json.
	LogFormat string `koanf:"log_format" validate:"oneof=text json"`

	// Addr configures the HTTP listen address, e.g. ":8501".
	Addr string `koanf:"addr" validate:"required"`

	// DBDriver selects the store driver: mysql or sqlite3.
	DBDriver string `koanf:"db_driver" validate:"oneof=mysql sqlite3"`

	// DBHost and DBPort locate the MySQL server.
	DBHost string `koanf:"db_host" validate:"required_if=DBDriver mysql"`
	DBPort int    `koanf:"db_port" validate:"gte=0,lte=65535"`

	// DBUser and DBPassword are the MySQL credentials.
	DBUser     string `koanf:"db_user" validate:"required_if=DBDriver mysql"`
	DBPassword string `koanf:"db_password"`

	// DBName is the database name, or the file path for sqlite3.
	DBName string `koanf:"db_name" validate:"required"`

	// QueryCacheTTLSeconds enables the query cache when positive.
	QueryCacheTTLSeconds int `koanf:"query_cache_ttl" validate:"gte=0"`

	// QueryCacheSize bounds the number of cached query results.
	QueryCacheSize int `koanf:"query_cache_size" validate:"gte=0"`

	// MetricsEnabled turns Prometheus recording on or off for serve.
	MetricsEnabled bool `koanf:"metrics_enabled"`

	// MetricsNamespace and MetricsSubsystem prefix every metric name.
	MetricsNamespace string `koanf:"metrics_namespace" validate:"required"`
	MetricsSubsystem string `koanf:"metrics_subsystem"`

	// MetricsBuckets overrides the latency histogram buckets (milliseconds).
	MetricsBuckets []float64 `koanf:"metrics_buckets" validate:"dive,gt=0"`

	// MetricsLabels are constant labels attached to every metric.
	MetricsLabels map[string]string `koanf:"metrics_labels"`
}

// New creates a Config with defaults matching a local MySQL install.
func New(_ context.Context) *Config {
	return &Config{
		LogLevel:       "info",
		LogFormat:      "text",
		Addr:           ":8501",
		DBDriver:       DriverMySQL,
		DBHost:         "localhost",
		DBPort:         3306,
		DBUser:         "root",
		DBPassword:     "",
		DBName:         "project",
		QueryCacheSize: 128,

		MetricsEnabled:   true,
		MetricsNamespace: "tennis",
		MetricsSubsystem: "dashboard",
	}
}

// QueryCacheTTL returns the cache time-to-live; zero disables caching.
func (c *Config) QueryCacheTTL() time.Duration {
	return time.Duration(c.QueryCacheTTLSeconds) * time.Second
}

// DBAddr returns host:port for network drivers.
func (c *Config) DBAddr() string {
	return net.JoinHostPort(c.DBHost, strconv.Itoa(c.DBPort))
}

// String renders the store target without the password.
func (c *Config) String() string {
	if c.DBDriver == DriverSQLite {
		return fmt.Sprintf("%s:%s", c.DBDriver, c.DBName)
	}
	return fmt.Sprintf("%s://%s@%s/%s", c.DBDriver, c.DBUser, c.DBAddr(), c.DBName)
}
