// Package logging wraps zap, grounded on
// MuhammadChandra19-exchange/pkg/logger's Options/New pattern, trimmed to
// the subset this engine needs.
package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger wraps a zap.SugaredLogger so callers can pass structured
// key/value pairs without needing zap.Field literals.
type Logger struct {
	sugar *zap.SugaredLogger
}

// Options configures logger construction.
type Options struct {
	Level       zapcore.Level
	OutputPaths []string
}

func DefaultOptions() Options {
	return Options{Level: zapcore.InfoLevel, OutputPaths: []string{"stdout"}}
}

// New builds a production-style JSON logger with the message key renamed
// to "message".
func New(opts Options) (*Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(opts.Level)
	cfg.OutputPaths = opts.OutputPaths
	cfg.EncoderConfig.MessageKey = "message"
	cfg.EncoderConfig.TimeKey = "timestamp"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	z, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		return nil, err
	}
	return &Logger{sugar: z.Sugar()}, nil
}

// NewNop returns a logger that discards everything, for tests.
func NewNop() *Logger {
	return &Logger{sugar: zap.NewNop().Sugar()}
}

func (l *Logger) Debugw(msg string, kv ...any) { l.sugar.Debugw(msg, kv...) }
func (l *Logger) Infow(msg string, kv ...any)  { l.sugar.Infow(msg, kv...) }
func (l *Logger) Warnw(msg string, kv ...any)  { l.sugar.Warnw(msg, kv...) }
func (l *Logger) Errorw(msg string, kv ...any) { l.sugar.Errorw(msg, kv...) }

// Sync flushes any buffered log entries.
func (l *Logger) Sync() error { return l.sugar.Sync() }
