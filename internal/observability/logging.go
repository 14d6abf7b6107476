// Package observability builds the liftgen loggers: the root logger from the
// logging configuration, and per-run children that tag every compiled input
// of one batch with a shared run ID.
package observability

import (
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/cory-johannsen/liftgen/internal/config"
)

// RootName names the root logger; component loggers are children of it
// (liftgen.compiler, liftgen.batch).
const RootName = "liftgen"

// RunIDKey is the log field carrying a batch run's ID.
const RunIDKey = "run_id"

// NewLogger creates a structured logger from the given logging configuration.
// Log output goes to stderr so that it never interleaves with tool output on
// stdout.
//
// Precondition: cfg.Level must be one of "debug", "info", "warn", "error".
// Precondition: cfg.Format must be "json" or "console".
// Postcondition: Returns a configured zap.Logger or a non-nil error.
func NewLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("parsing log level %q: %w", cfg.Level, err)
	}

	var zapCfg zap.Config
	switch cfg.Format {
	case "json":
		zapCfg = zap.NewProductionConfig()
	case "console":
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.DisableStacktrace = true
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	default:
		return nil, fmt.Errorf("unknown log format %q", cfg.Format)
	}

	zapCfg.Level = zap.NewAtomicLevelAt(level)
	zapCfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	zapCfg.OutputPaths = []string{"stderr"}
	zapCfg.ErrorOutputPaths = []string{"stderr"}

	logger, err := zapCfg.Build()
	if err != nil {
		return nil, fmt.Errorf("building logger: %w", err)
	}
	return logger.Named(RootName), nil
}

// RunLogger returns a child of base whose entries carry a fresh run ID, and
// that ID.
//
// Precondition: base must be non-nil.
// Postcondition: Each call yields a distinct run ID.
func RunLogger(base *zap.Logger) (*zap.Logger, string) {
	id := uuid.NewString()
	return base.With(zap.String(RunIDKey, id)), id
}
