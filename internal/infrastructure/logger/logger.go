package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const serviceName = "accountledger"

// Config holds logger configuration.
type Config struct {
	Level  string // trace, debug, info, warn, error
	Format string // json, console
}

// New creates a new zerolog logger writing to stdout.
func New(cfg Config) zerolog.Logger {
	return NewWithWriter(cfg, os.Stdout)
}

// NewWithWriter creates a logger writing to out. Debug and trace loggers
// also record the caller.
func NewWithWriter(cfg Config, out io.Writer) zerolog.Logger {
	if cfg.Format == "console" {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	level := parseLevel(cfg.Level)
	ctx := zerolog.New(out).Level(level).With().Timestamp().Str("service", serviceName)
	if level <= zerolog.DebugLevel {
		ctx = ctx.Caller()
	}

	return ctx.Logger()
}

// parseLevel falls back to info for empty or unknown names.
func parseLevel(name string) zerolog.Level {
	level, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(name)))
	if err != nil || level == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return level
}
