// Package config provides dispatcher configuration loaded from environment variables.
package config

import (
	"fmt"
	"log/slog"

	"github.com/kelseyhightower/envconfig"

	"github.com/morezero/functioneer/pkg/dispatcher"
)

const logPrefix = "config:LoadConfig"

// Config holds functioneer configuration.
type Config struct {
	// Rendering
	ReturnStructuredJSON bool `envconfig:"FUNCTIONEER_RETURN_STRUCTURED_JSON" default:"true"`
	AttachHelpOnError    bool `envconfig:"FUNCTIONEER_ATTACH_HELP_ON_ERROR" default:"true"`

	// Logging
	VerboseLogging bool   `envconfig:"FUNCTIONEER_VERBOSE_LOGGING" default:"false"`
	LogLevel       string `envconfig:"LOG_LEVEL" default:"info"`
}

// LoadConfig loads configuration from environment variables.
func LoadConfig() (*Config, error) {
	var c Config
	if err := envconfig.Process("", &c); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate checks the log level.
func (c *Config) Validate() error {
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
		return nil
	}
	return fmt.Errorf("%s - LOG_LEVEL must be one of debug, info, warn, error; got %q", logPrefix, c.LogLevel)
}

// SlogLevel returns the slog level named by LogLevel, defaulting to info.
// VerboseLogging lowers it to debug so trace lines are shown.
func (c *Config) SlogLevel() slog.Level {
	if c.VerboseLogging {
		return slog.LevelDebug
	}
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// DispatcherOptions maps the configuration onto dispatcher options. Verbose
// output goes to log.
func (c *Config) DispatcherOptions(log *slog.Logger) dispatcher.Options {
	return dispatcher.Options{
		ReturnStructuredJSON: c.ReturnStructuredJSON,
		AttachHelpOnError:    c.AttachHelpOnError,
		VerboseLogging:       c.VerboseLogging,
		Logger:               log,
	}
}
