// Package logger is the structured logging facade used across remindr.
// Call sites depend on the Logger interface; the backend (slog or zap) is
// chosen once at startup from configuration.
package logger

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
)

// Backend names accepted in configuration
const (
	BackendSlog = "slog"
	BackendZap  = "zap"
)

// Logger is implemented by every backend
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)

	// With returns a child logger that adds fields to every entry
	With(fields ...Field) Logger
	// WithContext returns a child logger carrying the request values stored in ctx
	WithContext(ctx context.Context) Logger

	Level() Level
}

// Config holds logging configuration
type Config struct {
	Level Level
	// Format is "json" or "text"
	Format string
	// Backend is "slog" or "zap"
	Backend   string
	AddSource bool
	// Output defaults to stdout
	Output io.Writer
}

// DefaultConfig returns JSON logs at info level through slog
func DefaultConfig() Config {
	return Config{
		Level:   LevelInfo,
		Format:  "json",
		Backend: BackendSlog,
	}
}

// New builds a Logger for cfg.Backend
func New(cfg Config) (Logger, error) {
	if cfg.Output == nil {
		cfg.Output = os.Stdout
	}
	switch strings.ToLower(cfg.Backend) {
	case "", BackendSlog:
		return NewSlogLogger(cfg), nil
	case BackendZap:
		return NewZapLogger(cfg), nil
	default:
		return nil, fmt.Errorf("unknown log backend %q", cfg.Backend)
	}
}

var (
	defaultMu     sync.RWMutex
	defaultLogger Logger
)

// SetDefault replaces the process-wide logger
func SetDefault(l Logger) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultLogger = l
}

// Default returns the process-wide logger, creating a slog one on first use
func Default() Logger {
	defaultMu.RLock()
	l := defaultLogger
	defaultMu.RUnlock()
	if l != nil {
		return l
	}

	defaultMu.Lock()
	defer defaultMu.Unlock()
	if defaultLogger == nil {
		defaultLogger = NewSlogLogger(DefaultConfig())
	}
	return defaultLogger
}

func Debug(msg string, fields ...Field) { Default().Debug(msg, fields...) }
func Info(msg string, fields ...Field)  { Default().Info(msg, fields...) }
func Warn(msg string, fields ...Field)  { Default().Warn(msg, fields...) }
func Error(msg string, fields ...Field) { Default().Error(msg, fields...) }
func With(fields ...Field) Logger       { return Default().With(fields...) }
