// Package logger configures the global zerolog logger from the
// environment. Everything else in the portal logs through zerolog's
// package-level logger.
package logger

import (
	"os"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Config is read from PORTAL_LOG_* environment variables.
type Config struct {
	Level  string `envconfig:"LOG_LEVEL" default:"info"`
	Pretty bool   `envconfig:"LOG_PRETTY" default:"false"`
}

// Setup installs the global logger. Invalid levels fall back to info
// rather than failing startup.
func Setup() error {
	var cfg Config
	if err := envconfig.Process("portal", &cfg); err != nil {
		return err
	}

	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	zerolog.TimeFieldFormat = time.RFC3339

	if cfg.Pretty {
		log.Logger = log.Output(zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.RFC3339,
		})
	}

	return nil
}
