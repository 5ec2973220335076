// Package dlogger builds the zap logger used by gitlet commands.
//
// Logs are diagnostics only: they go to stderr in a compact console format,
// so that the output of commands on stdout stays untouched.
package dlogger

import (
	"os"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	// LogLevelDebug sets the log level to debug
	LogLevelDebug = "debug"

	// LogLevelInfo sets the log level to info
	LogLevelInfo = "info"

	// LogLevelWarn sets the log level to warn
	LogLevelWarn = "warn"

	// LogLevelError sets the log level to error
	LogLevelError = "error"

	// LogLevelNone sets logger to no logging
	LogLevelNone = "none"
)

// ParseLevel resolves a log level name. The empty name stands for "none".
func ParseLevel(logLevel string) (zapcore.Level, bool, error) {
	switch logLevel {
	case "", LogLevelNone:
		return zapcore.InfoLevel, false, nil
	case LogLevelDebug, LogLevelInfo, LogLevelWarn, LogLevelError:
		var lvl zapcore.Level
		if err := lvl.UnmarshalText([]byte(logLevel)); err != nil {
			return lvl, false, err
		}
		return lvl, true, nil
	default:
		return zapcore.InfoLevel, false, errors.Errorf("unsupported log level %q", logLevel)
	}
}

// GetLogger returns a console logger writing to stderr with the specified level
func GetLogger(logLevel string) (*zap.Logger, error) {
	return newLogger(logLevel, zapcore.Lock(os.Stderr))
}

func newLogger(logLevel string, out zapcore.WriteSyncer) (*zap.Logger, error) {
	lvl, enabled, err := ParseLevel(logLevel)
	if err != nil {
		return nil, err
	}
	if !enabled {
		return zap.NewNop(), nil
	}

	enc := zap.NewDevelopmentEncoderConfig()
	enc.TimeKey = ""
	enc.CallerKey = ""
	enc.StacktraceKey = ""
	enc.NameKey = ""
	enc.EncodeLevel = zapcore.CapitalLevelEncoder

	core := zapcore.NewCore(zapcore.NewConsoleEncoder(enc), out, zap.NewAtomicLevelAt(lvl))
	return zap.New(core, zap.ErrorOutput(out)), nil
}
