package config

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

// NewLogger opens the configured log file for appending and returns a text
// logger writing to it. The returned writer must be closed by the caller.
// With no file configured, the logger discards everything.
func NewLogger(cfg LogConfig) (*slog.Logger, io.WriteCloser, error) {
	if cfg.File == "" {
		return slog.New(slog.DiscardHandler), nopCloser{io.Discard}, nil
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		return nil, nil, fmt.Errorf("log level: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(cfg.File), 0o755); err != nil {
		return nil, nil, fmt.Errorf("creating log directory: %w", err)
	}
	f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file: %w", err)
	}
	return slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: level})), f, nil
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }
