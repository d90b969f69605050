// Package logger wraps zap construction so the rest of the server can ask
// for a configured structured logger without repeating encoder setup.
package logger

import (
	"go.uber.org/zap"
)

// Logger holds the application-wide zap logger.
type Logger struct {
	// Log is the underlying zap logger; nop until Init is called.
	Log *zap.Logger
}

// New returns a Logger with a no-op core. Call Init to activate it.
func New() *Logger {
	return &Logger{Log: zap.NewNop()}
}

// Init builds a production zap logger at the given level ("debug", "info",
// "warn", "error"). It replaces the no-op logger on success.
func (l *Logger) Init(level string) error {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return err
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = lvl
	logger, err := cfg.Build()
	if err != nil {
		return err
	}
	l.Log = logger
	return nil
}
