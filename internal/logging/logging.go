// Package logging builds the process-wide slog.Logger from config and
// environment overrides.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/riordanpawley/overlayctl/internal/config"
)

const (
	EnvLogLevel  = "OVERLAYCTL_LOG_LEVEL"
	EnvLogFile   = "OVERLAYCTL_LOG_FILE"
	EnvLogFormat = "OVERLAYCTL_LOG_FORMAT"
)

// Profile selects where logs go when no file is configured.
type Profile int

const (
	// ProfileCLI writes to stderr.
	ProfileCLI Profile = iota
	// ProfileTUI discards output, since the terminal belongs to the UI.
	ProfileTUI
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// New returns a logger for cfg after applying environment overrides. The
// returned closer releases the log file, if one was opened.
func New(cfg config.LogConfig, profile Profile) (*slog.Logger, io.Closer, error) {
	applyEnvOverrides(&cfg)

	level, ok := parseLevel(cfg.Level)
	if !ok {
		return nil, nil, fmt.Errorf("unknown log level %q (expected debug, info, warn, or error)", cfg.Level)
	}

	var (
		w      io.Writer = os.Stderr
		closer io.Closer = nopCloser{}
	)
	switch {
	case cfg.File != "":
		f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open log file: %w", err)
		}
		w, closer = f, f
	case profile == ProfileTUI:
		w = io.Discard
	}

	logger, err := NewWithWriter(w, cfg.Format, level)
	if err != nil {
		closer.Close()
		return nil, nil, err
	}
	return logger, closer, nil
}

// NewWithWriter builds a text or json handler on w.
func NewWithWriter(w io.Writer, format string, level slog.Level) (*slog.Logger, error) {
	opts := &slog.HandlerOptions{Level: level}
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "text":
		return slog.New(slog.NewTextHandler(w, opts)), nil
	case "json":
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	default:
		return nil, fmt.Errorf("unknown log format %q (expected text or json)", format)
	}
}

// Discard returns a logger that drops everything. Useful in tests.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func applyEnvOverrides(cfg *config.LogConfig) {
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		cfg.Level = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFile)); v != "" {
		cfg.File = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFormat)); v != "" {
		cfg.Format = v
	}
}

func parseLevel(raw string) (slog.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "info":
		return slog.LevelInfo, true
	case "debug", "trace":
		return slog.LevelDebug, true
	case "warn", "warning":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	default:
		return slog.LevelInfo, false
	}
}
