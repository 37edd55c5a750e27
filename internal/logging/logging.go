// Package logging provides the optional structured logger used for
// decode diagnostics.
//
// By default, steel emits no logs at all: a nil *zap.Logger is treated
// as a no-op sink everywhere this package's helpers are used. A caller
// can supply their own *zap.Logger via (*steel.Definition).WithLogger;
// Definition.Load then emits one debug entry per loaded record. Declare,
// lazy Get and the offset evaluator do not log.
package logging

import "go.uber.org/zap"

// Debug logs a debug-level diagnostic if logger is non-nil.
func Debug(logger *zap.Logger, msg string, fields ...zap.Field) {
	if logger == nil {
		return
	}
	logger.Debug(msg, fields...)
}

// Warn logs a warning-level diagnostic if logger is non-nil.
func Warn(logger *zap.Logger, msg string, fields ...zap.Field) {
	if logger == nil {
		return
	}
	logger.Warn(msg, fields...)
}
