// Package logger provides structured logging using Zap.
package logger

import (
	"fmt"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	sugar *zap.SugaredLogger
	once  sync.Once

	// level is shared by every encoder so SetLevel applies after Init.
	level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
)

// Init initializes the global logger for the given environment.
// "production" logs JSON at info, "test" discards everything, and any other
// value gets the human-readable development encoder at debug.
func Init(env string) {
	once.Do(func() {
		var cfg zap.Config
		switch env {
		case "production":
			cfg = zap.NewProductionConfig()
		case "test":
			sugar = zap.NewNop().Sugar()
			return
		default:
			cfg = zap.NewDevelopmentConfig()
			level.SetLevel(zapcore.DebugLevel)
		}
		cfg.Level = level

		base, err := cfg.Build()
		if err != nil {
			base = zap.NewNop()
		}
		sugar = base.Sugar()
	})
}

// SetLevel changes the minimum level of the global logger. An empty level
// keeps the environment's default.
func SetLevel(name string) error {
	if name == "" {
		return nil
	}
	lvl, err := zapcore.ParseLevel(name)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", name, err)
	}
	level.SetLevel(lvl)
	return nil
}

// Level reports the current minimum level.
func Level() zapcore.Level {
	return level.Level()
}

// Get returns the global sugared logger.
// If Init has not been called, it initializes a development logger.
func Get() *zap.SugaredLogger {
	if sugar == nil {
		Init("development")
	}
	return sugar
}

// Named returns a child logger tagged with a component name.
func Named(component string) *zap.SugaredLogger {
	return Get().Named(component)
}

// Sync flushes any buffered log entries. Call this before application exit.
func Sync() {
	if sugar != nil {
		_ = sugar.Sync()
	}
}
