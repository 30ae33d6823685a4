// Package logging builds the zap loggers used by the command-line tools.
package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New returns a JSON production logger at info level, or a human-readable
// development logger at debug level when verbose is set. Both write to
// stderr so table output on stdout stays clean.
func New(verbose bool) (*zap.Logger, error) {
	if verbose {
		cfg := zap.NewDevelopmentConfig()
		cfg.OutputPaths = []string{"stderr"}
		return cfg.Build()
	}
	cfg := zap.NewProductionConfig()
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.OutputPaths = []string{"stderr"}
	return cfg.Build()
}

// Must is New for callers that cannot proceed without a logger. It falls
// back to a no-op logger instead of panicking.
func Must(verbose bool) *zap.Logger {
	logger, err := New(verbose)
	if err != nil {
		return zap.NewNop()
	}
	return logger
}
