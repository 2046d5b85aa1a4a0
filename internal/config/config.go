package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds runtime settings for the CLI. Values come from the
// environment (optionally via a .env file) and can be overridden by flags.
type Config struct {
	// AsOfDate overrides "today" for window calculations. Zero means the
	// system date.
	AsOfDate time.Time

	Debug         bool
	NoInteractive bool
}

func Load() (*Config, error) {
	// .env is optional; real env vars win either way.
	_ = godotenv.Load()

	cfg := &Config{}

	if v := os.Getenv("WASHTRACK_DATE"); v != "" {
		d, err := time.Parse("2006-01-02", v)
		if err != nil {
			return nil, fmt.Errorf("invalid WASHTRACK_DATE %q, use YYYY-MM-DD: %w", v, err)
		}
		cfg.AsOfDate = d
	}

	cfg.Debug = envBool("WASHTRACK_DEBUG")
	cfg.NoInteractive = envBool("WASHTRACK_NO_INTERACTIVE")

	return cfg, nil
}

// ResolveAsOf applies precedence: explicit flag value, then env override,
// then the system date truncated to midnight UTC.
func (c *Config) ResolveAsOf(flagValue string) (time.Time, error) {
	if flagValue != "" {
		d, err := time.Parse("2006-01-02", flagValue)
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid date %q, use YYYY-MM-DD: %w", flagValue, err)
		}
		return d, nil
	}
	if !c.AsOfDate.IsZero() {
		return c.AsOfDate, nil
	}
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), nil
}

func envBool(key string) bool {
	v, err := strconv.ParseBool(os.Getenv(key))
	return err == nil && v
}
