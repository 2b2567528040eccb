// Package config loads environment-driven configuration for migration runs.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds configuration for a migration run. All values come from the
// environment, optionally seeded from a .env file.
type Config struct {
	// SourceDriver selects the legacy database driver: postgres or mysql.
	SourceDriver string `env:"SOURCE_DRIVER" envDefault:"postgres"`

	// SourceDSN is the connection string for the legacy database.
	SourceDSN string `env:"SOURCE_DATABASE_URL"`

	// TargetDSN is the connection string for the destination Postgres.
	TargetDSN string `env:"TARGET_DATABASE_URL"`

	// SupabaseURL is the Supabase project URL for REST writes (optional).
	SupabaseURL string `env:"SUPABASE_URL"`

	// SupabaseKey is the service-role key for REST writes.
	SupabaseKey string `env:"SUPABASE_SERVICE_KEY"`

	// UseREST routes target writes through the Supabase REST API instead of
	// a direct SQL connection.
	UseREST bool `env:"TARGET_USE_REST" envDefault:"false"`

	// BatchSize is the number of legacy rows fetched and inserted per batch.
	BatchSize int `env:"MIGRATION_BATCH_SIZE" envDefault:"500"`

	// BatchDelay is the fixed pause between batches to avoid overloading the
	// destination.
	BatchDelay time.Duration `env:"MIGRATION_BATCH_DELAY" envDefault:"250ms"`

	// JournalPath is the sqlite file recording past runs.
	JournalPath string `env:"MIGRATION_JOURNAL" envDefault:"dispatch-migrate.db"`

	// MetricsAddr is the listen address for the /metrics server. Empty
	// disables the server.
	MetricsAddr string `env:"METRICS_ADDR"`

	// LogLevel is the logrus level name.
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

// Load reads configuration from the environment. If envFile is non-empty it
// is loaded first; a missing default .env file is not an error.
func Load(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return Config{}, fmt.Errorf("load env file %s: %w", envFile, err)
		}
	} else {
		_ = godotenv.Load()
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks cross-field constraints and required values.
func (c Config) Validate() error {
	if c.SourceDriver != "postgres" && c.SourceDriver != "mysql" {
		return fmt.Errorf("SOURCE_DRIVER must be postgres or mysql (got %q)", c.SourceDriver)
	}
	if c.SourceDSN == "" {
		return fmt.Errorf("SOURCE_DATABASE_URL is required")
	}
	// A SQL connection is always required: ID maps and existing-ID sets are
	// read over SQL even when writes go through REST.
	if c.TargetDSN == "" {
		return fmt.Errorf("TARGET_DATABASE_URL is required")
	}
	if c.UseREST && (c.SupabaseURL == "" || c.SupabaseKey == "") {
		return fmt.Errorf("TARGET_USE_REST requires SUPABASE_URL and SUPABASE_SERVICE_KEY")
	}
	if c.BatchSize < 1 {
		return fmt.Errorf("MIGRATION_BATCH_SIZE must be positive (got %d)", c.BatchSize)
	}
	if c.BatchDelay < 0 {
		return fmt.Errorf("MIGRATION_BATCH_DELAY must not be negative (got %s)", c.BatchDelay)
	}
	return nil
}
