// Package appconfig holds process-level ambient settings that sit outside
// the nginx-style routing config from spec §4.1: worker pool size, log
// level/format, and the startup banner delay. These are collected once at
// process startup from CLI flags and defaults, then threaded explicitly
// through cmd/httpd rather than kept as package-level singletons, modeled
// on the teacher's pkg/config Service/Load shape but deliberately smaller
// since this project has no env/YAML layering.
package appconfig

import (
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/relaykit/httpd/internal/workerpool"
	"github.com/relaykit/httpd/pkg/logger"
)

var validate = validator.New()

// Config is the full set of ambient process settings.
type Config struct {
	// WorkerPoolSize is the number of goroutines handling accepted
	// connections concurrently (spec §5: "a bounded pool of worker
	// threads (default 4)").
	WorkerPoolSize int `validate:"min=1"`

	// LogLevel controls verbosity of pkg/logger output.
	LogLevel logger.LogLevel `validate:"required,oneof=debug info warn error disabled"`

	// LogJSON selects structured JSON log output over human-readable text.
	LogJSON bool

	// StartupBannerDelay is a non-negative duration validated with the
	// rest of Config. No code path reads it: the server accepts
	// connections as soon as it starts, whatever its value.
	StartupBannerDelay time.Duration `validate:"min=0"`
}

// Default returns the settings used when no CLI flags override them.
func Default() *Config {
	return &Config{
		WorkerPoolSize:     workerpool.DefaultSize,
		LogLevel:           logger.InfoLevel,
		LogJSON:            false,
		StartupBannerDelay: 0,
	}
}

// Validate checks c's fields against their struct tags, returning a
// wrapped error naming the first violation.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid appconfig: %w", err)
	}
	return nil
}

// LoggerConfig builds a pkg/logger.Config from c.
func (c *Config) LoggerConfig() *logger.Config {
	return &logger.Config{
		Level:      c.LogLevel,
		Output:     os.Stdout,
		JSON:       c.LogJSON,
		AddSource:  false,
		TimeFormat: "15:04:05",
	}
}
