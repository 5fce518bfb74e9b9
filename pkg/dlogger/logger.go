// Package dlogger builds the zap loggers handed to stores, sources and
// parsers. Output is production JSON; the level is selected by name
// from configuration.
package dlogger

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Log levels accepted in configuration.
const (
	LogLevelDebug = "debug"
	LogLevelInfo  = "info"
	LogLevelNone  = "none"
)

// New builds a logger at the named level. An empty level defaults to
// info; "none" yields a no-op logger, for library consumers carrying
// their own logging.
func New(logLevel string) (*zap.Logger, error) {
	var lvl zapcore.Level
	switch logLevel {
	case LogLevelNone:
		return zap.NewNop(), nil
	case LogLevelDebug:
		lvl = zapcore.DebugLevel
	case LogLevelInfo, "":
		lvl = zapcore.InfoLevel
	default:
		return nil, fmt.Errorf("unknown log level: %q", logLevel)
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.DisableStacktrace = true
	return cfg.Build()
}

// MustNew is New for wiring paths where the level has already been
// validated
func MustNew(logLevel string) *zap.Logger {
	l, err := New(logLevel)
	if err != nil {
		panic(err)
	}
	return l
}
