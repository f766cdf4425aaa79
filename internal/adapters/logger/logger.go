// Package logger implements a logging adapter using log/slog.
package logger

import (
	"io"
	"log/slog"
	"os"
	"sync"

	"go.trai.ch/docullim/internal/core/ports"
)

// Logger implements ports.Logger using log/slog.
type Logger struct {
	logger   *slog.Logger
	mu       sync.RWMutex
	jsonMode bool
	output   io.Writer
}

// New creates a new Logger writing pretty output to stderr.
func New() ports.Logger {
	return &Logger{
		logger: slog.New(NewPrettyHandler(os.Stderr, nil)),
		output: os.Stderr,
	}
}

// SetOutput updates the logger's output destination, keeping the current mode.
// If w is nil, os.Stderr is used.
func (l *Logger) SetOutput(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if w == nil {
		w = os.Stderr
	}
	l.output = w
	l.logger = slog.New(l.handler())
}

// SetJSON switches between JSON and pretty logging.
func (l *Logger) SetJSON(enable bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.jsonMode = enable
	l.logger = slog.New(l.handler())
}

func (l *Logger) handler() slog.Handler {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}
	if l.jsonMode {
		return slog.NewJSONHandler(l.output, opts)
	}
	return NewPrettyHandler(l.output, opts)
}

// Info logs an informational message.
func (l *Logger) Info(msg string) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.Info(msg)
}

// Warn logs a warning message.
func (l *Logger) Warn(msg string) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.Warn(msg)
}

// Error logs an error with its cause chain.
func (l *Logger) Error(err error) {
	if err == nil {
		return
	}

	l.mu.RLock()
	defer l.mu.RUnlock()

	entries := collectErrorEntries(err)
	if l.jsonMode {
		attrs := []any{"error", err.Error()}
		for _, e := range entries {
			for k, v := range e.Metadata {
				attrs = append(attrs, k, v)
			}
		}
		l.logger.Error("operation failed", attrs...)
		return
	}

	l.logger.Error(formatErrorEntries(entries))
}
