// Package logging provides the process-wide zap logger.
package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var globalLogger = zap.NewNop()

// Config holds logging configuration.
type Config struct {
	Level      string // debug, info, warn, error
	OutputPath string // stderr, stdout, or a file path; empty discards
}

// New builds a console logger from cfg. An empty output path yields a no-op logger.
func New(cfg Config) (*zap.Logger, error) {
	if cfg.OutputPath == "" {
		return zap.NewNop(), nil
	}

	level := zapcore.InfoLevel
	if cfg.Level != "" {
		if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
			return nil, err
		}
	}

	config := zap.NewDevelopmentConfig()
	config.Level = zap.NewAtomicLevelAt(level)
	config.OutputPaths = []string{cfg.OutputPath}
	config.ErrorOutputPaths = []string{"stderr"}
	config.DisableStacktrace = true

	return config.Build()
}

// Init replaces the global logger with one built from cfg.
func Init(cfg Config) error {
	logger, err := New(cfg)
	if err != nil {
		return err
	}

	globalLogger = logger

	return nil
}

// L returns the global logger.
func L() *zap.Logger {
	return globalLogger
}

// Sync flushes any buffered log entries.
func Sync() error {
	return globalLogger.Sync()
}
