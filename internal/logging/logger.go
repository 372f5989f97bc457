package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/Eursukkul/flight-booking-service/config"
	"github.com/rs/zerolog"
)

// New constructs a zerolog logger from the logging section.
// Unknown levels fall back to info; format "console" gives human-readable output.
func New(cfg config.LoggingConfig, env, service string) *zerolog.Logger {
	return newWithWriter(os.Stdout, cfg, env, service)
}

func newWithWriter(out io.Writer, cfg config.LoggingConfig, env, service string) *zerolog.Logger {
	level := zerolog.InfoLevel
	if parsed, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(cfg.Level))); err == nil && parsed != zerolog.NoLevel {
		level = parsed
	}

	if strings.ToLower(strings.TrimSpace(cfg.Format)) == "console" {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	zerolog.TimeFieldFormat = time.RFC3339Nano
	logger := zerolog.New(out).
		Level(level).
		With().
		Timestamp().
		Str("service", service).
		Str("env", env).
		Logger()

	return &logger
}
