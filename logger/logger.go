// logger/logger.go
package logger

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Log is the process-wide logger. It is a no-op until Init is called, so
// packages and tests can log without setup.
var Log = zap.NewNop().Sugar()

// Init builds the global logger. level is a zap level name ("debug", "info",
// ...); an empty level means info.
func Init(level string, development bool) error {
	cfg := zap.NewProductionConfig()
	if development {
		cfg = zap.NewDevelopmentConfig()
	}
	if level != "" {
		lvl, err := zapcore.ParseLevel(level)
		if err != nil {
			return fmt.Errorf("invalid log level %q: %w", level, err)
		}
		cfg.Level = zap.NewAtomicLevelAt(lvl)
	}

	l, err := cfg.Build()
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	Log = l.Sugar()
	return nil
}

// Sync flushes buffered log entries. Typically deferred from main.
func Sync() {
	_ = Log.Sync()
}
