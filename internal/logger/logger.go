// Package logger provides the process-wide structured logger, built on Zap.
package logger

import (
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	sugar *zap.SugaredLogger
	once  sync.Once
)

// Init initializes the global logger for the given environment.
// "production" logs JSON at info level; any other environment logs
// human-readable console output at debug level. A non-empty level
// ("debug", "warn", ...) overrides the environment default.
func Init(env, level string) {
	once.Do(func() {
		base, err := build(env, level)
		if err != nil {
			base = zap.NewNop()
		}
		sugar = base.Sugar().With("service", "finsight")
	})
}

func build(env, level string) (*zap.Logger, error) {
	cfg := zap.NewDevelopmentConfig()
	if env == "production" {
		cfg = zap.NewProductionConfig()
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	}
	if level != "" {
		lvl, err := zap.ParseAtomicLevel(level)
		if err != nil {
			return nil, err
		}
		cfg.Level = lvl
	}
	return cfg.Build()
}

// Get returns the global sugared logger.
// If Init has not been called, it initializes a development logger.
func Get() *zap.SugaredLogger {
	Init("development", "")
	return sugar
}

// Sync flushes any buffered log entries. Call this before application exit.
func Sync() {
	if sugar != nil {
		_ = sugar.Sync()
	}
}
