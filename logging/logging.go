// Package logging injects a structured logger into the demuxer, muxer and
// format layer without forcing every call site to import zap directly.
//
// The logger is a constructor dependency rather than a global: every
// stateful type (Demuxer, Muxer, LocalSetFormat, ...) takes a Logger
// through a functional option or field, and falls back to Nop() when the
// caller doesn't supply one.
package logging

import "go.uber.org/zap"

// Logger is the minimal logging surface the core depends on. It is satisfied
// by *zap.SugaredLogger.
type Logger interface {
	Debugw(msg string, keysAndValues ...any)
	Infow(msg string, keysAndValues ...any)
	Warnw(msg string, keysAndValues ...any)
	Errorw(msg string, keysAndValues ...any)
}

// Nop returns a Logger that discards everything, used when a caller
// constructs a demuxer, muxer or format without supplying one.
func Nop() Logger {
	return zap.NewNop().Sugar()
}

// NewDevelopment returns a human-readable Logger suitable for CLIs and tests.
func NewDevelopment() Logger {
	l, err := zap.NewDevelopment()
	if err != nil {
		return Nop()
	}

	return l.Sugar()
}

// NewProduction returns a JSON Logger suitable for production services
// embedding goklv.
func NewProduction() Logger {
	l, err := zap.NewProduction()
	if err != nil {
		return Nop()
	}

	return l.Sugar()
}
