// Package logging builds the zap-backed logr.Logger used across the
// codebase and carries it through contexts.
package logging

import (
	"context"
	"fmt"

	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Verbosity levels used with logr's V().
const (
	INFO  = 0
	DEBUG = 1
)

// NewLogger returns a zap-backed logr.Logger. Verbosity 0 logs run
// milestones only; DEBUG adds per-iteration detail. Development mode
// switches to the human-readable console encoder.
func NewLogger(verbosity int, development bool) (logr.Logger, error) {
	var zcfg zap.Config
	if development {
		zcfg = zap.NewDevelopmentConfig()
	} else {
		zcfg = zap.NewProductionConfig()
	}
	// logr V(n) maps to zap level -n.
	zcfg.Level = zap.NewAtomicLevelAt(zapcore.Level(-verbosity))
	zl, err := zcfg.Build()
	if err != nil {
		return logr.Logger{}, fmt.Errorf("building zap logger: %w", err)
	}
	return zapr.NewLogger(zl), nil
}

// IntoContext returns a context carrying log.
func IntoContext(ctx context.Context, log logr.Logger) context.Context {
	return logr.NewContext(ctx, log)
}

// FromContext returns the logger carried by ctx, or a discarding logger
// when none is set.
func FromContext(ctx context.Context) logr.Logger {
	return logr.FromContextOrDiscard(ctx)
}
