// Package logging builds the charmbracelet/log logger used across todoterm.
package logging

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"
)

// Options holds configuration for the logger.
type Options struct {
	Level           log.Level
	Formatter       log.Formatter
	ReportTimestamp bool
	Prefix          string
}

// DefaultOptions returns the options used when nothing is configured.
// Only warnings and errors reach stderr so command output stays clean.
func DefaultOptions() Options {
	return Options{
		Level:     log.WarnLevel,
		Formatter: log.TextFormatter,
		Prefix:    "todoterm",
	}
}

// New creates a logger writing to w.
func New(w io.Writer, opts Options) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Level:           opts.Level,
		Formatter:       opts.Formatter,
		ReportTimestamp: opts.ReportTimestamp,
		Prefix:          opts.Prefix,
	})
}

// FromConfig creates a logger from string configuration values as found in
// the config file, environment or flags.
func FromConfig(w io.Writer, level, format string) (*log.Logger, error) {
	opts := DefaultOptions()

	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}
	f, err := ParseFormatter(format)
	if err != nil {
		return nil, err
	}
	opts.Level = lvl
	opts.Formatter = f
	// Machine readable output always carries a timestamp.
	opts.ReportTimestamp = f != log.TextFormatter
	return New(w, opts), nil
}

// ParseLevel parses a level name. An empty name means the default level.
func ParseLevel(level string) (log.Level, error) {
	level = strings.ToLower(strings.TrimSpace(level))
	if level == "" {
		return DefaultOptions().Level, nil
	}
	if level == "warning" {
		level = "warn"
	}
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return 0, fmt.Errorf("invalid log level %q: want debug, info, warn or error", level)
	}
	return lvl, nil
}

// ParseFormatter parses a formatter name. An empty name means text.
func ParseFormatter(format string) (log.Formatter, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "text":
		return log.TextFormatter, nil
	case "json":
		return log.JSONFormatter, nil
	case "logfmt":
		return log.LogfmtFormatter, nil
	default:
		return 0, fmt.Errorf("invalid log format %q: want text, json or logfmt", format)
	}
}

// Discard returns a logger that drops everything.
func Discard() *log.Logger {
	return log.New(io.Discard)
}
