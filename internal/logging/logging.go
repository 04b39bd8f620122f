// Package logging builds the zap loggers used across the application.
package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/NewJerseyStyle/TheBlueprint-Project/internal/config"
)

// Logger pairs a zap logger with the level it was built with so the level
// can follow configuration reloads.
type Logger struct {
	*zap.Logger
	level zap.AtomicLevel
}

// New builds a json (production) or console (development) logger.
func New(cfg config.Logging) (*Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
	}

	var zc zap.Config
	switch cfg.Format {
	case "console":
		zc = zap.NewDevelopmentConfig()
	default:
		zc = zap.NewProductionConfig()
	}
	zc.Level = zap.NewAtomicLevelAt(level)

	logger, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}
	return &Logger{Logger: logger, level: zc.Level}, nil
}

// Level returns the current level.
func (l *Logger) Level() zapcore.Level {
	return l.level.Level()
}

// SetLevel changes the level without rebuilding the logger. Unknown level
// names are ignored.
func (l *Logger) SetLevel(name string) {
	level, err := zapcore.ParseLevel(name)
	if err != nil {
		l.Warn("Ignoring unknown log level", zap.String("level", name))
		return
	}
	if level != l.level.Level() {
		l.level.SetLevel(level)
		l.Info("Log level changed", zap.String("level", level.String()))
	}
}

// Follow keeps the level in sync with reloaded configuration.
func (l *Logger) Follow(w *config.Watcher) {
	w.OnChange(func(c *config.Config) {
		l.SetLevel(c.Logging.Level)
	})
}
