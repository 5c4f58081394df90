// Package logger provides structured logging for the client built on zap.
package logger

import (
	"strings"

	"go.uber.org/zap"
)

// Logger wraps a zap logger so callers can initialize it once and share it.
type Logger struct {
	// Log is the underlying zap logger.
	Log *zap.Logger
}

// New returns a Logger with a no-op zap logger. Call Init to replace it
// with a configured one.
func New() *Logger {
	return &Logger{Log: zap.NewNop()}
}

// Init builds a production zap logger at the given level and installs it.
func (l *Logger) Init(level string) error {
	lvl, err := zap.ParseAtomicLevel(strings.ToLower(level))
	if err != nil {
		return err
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = lvl
	z, err := cfg.Build()
	if err != nil {
		return err
	}
	l.Log = z
	return nil
}
