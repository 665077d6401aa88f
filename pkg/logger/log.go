/*
 * Copyright 2022 Holoinsight Project Authors. Licensed under Apache-2.0.
 */

// Package logger writes diagnostics to stderr. stdout is reserved for extracted records.
package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type (
	alwaysLevel     struct{}
	loggerComposite struct {
		logger *zap.Logger
	}
)

var (
	zapLogger    *loggerComposite
	DebugEnabled = false
)

// init initializes default logger (to stderr)
func init() {
	SetLogger(newConsoleLogger(zapcore.Lock(os.Stderr)))
}

func (a alwaysLevel) Enabled(level zapcore.Level) bool {
	return true
}

func newConsoleLogger(w zapcore.WriteSyncer) *zap.Logger {
	encoderConfig := zapcore.EncoderConfig{
		TimeKey:          "time",
		LevelKey:         "level",
		NameKey:          "logger",
		CallerKey:        "caller",
		MessageKey:       "msg",
		StacktraceKey:    "stacktrace",
		ConsoleSeparator: " ",
		LineEnding:       zapcore.DefaultLineEnding,
		EncodeLevel:      zapcore.LowercaseLevelEncoder,
		EncodeTime:       zapcore.TimeEncoderOfLayout("2006-01-02 15:04:05.000"),
		EncodeDuration:   zapcore.SecondsDurationEncoder,
	}
	return zap.New(zapcore.NewCore(zapcore.NewConsoleEncoder(encoderConfig), w, alwaysLevel{}))
}

// SetupZapLogger configures diagnostics for one run.
func SetupZapLogger(verbose bool) {
	DebugEnabled = verbose
}

// SetLogger replaces the underlying logger, tests use it with zaptest/observer.
func SetLogger(l *zap.Logger) {
	zapLogger = &loggerComposite{
		logger: l,
	}
}

// Sync flushes buffered log entries, errors are ignored because stderr may not support fsync.
func Sync() {
	_ = zapLogger.logger.Sync()
}

func Debugz(msg string, fields ...zap.Field) {
	if DebugEnabled {
		zapLogger.logger.Debug(msg, fields...)
	}
}

func Warnz(msg string, fields ...zap.Field) {
	zapLogger.logger.Warn(msg, fields...)
}
