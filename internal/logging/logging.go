// Package logging provides the Logger interface every tagcache/builder/
// genre component logs through, keeping the teacher's decoupled-interface
// shape (rockbox.Logger: Info/Error/Debug) while backing the default
// implementation with go.uber.org/zap instead of fmt.Printf.
package logging

import (
	"go.uber.org/zap"
)

// Logger is the narrow logging interface every package in this module
// depends on, never a concrete backend.
type Logger interface {
	Info(msg string, args ...interface{})
	Error(msg string, args ...interface{})
	Debug(msg string, args ...interface{})
}

// NopLogger discards everything. Used as the default for library callers
// that never configure a Logger.
type NopLogger struct{}

func (NopLogger) Info(string, ...interface{})  {}
func (NopLogger) Error(string, ...interface{}) {}
func (NopLogger) Debug(string, ...interface{}) {}

// ZapLogger is the default production Logger, backed by a zap sugared
// logger.
type ZapLogger struct {
	sugar *zap.SugaredLogger
}

// NewZapLogger builds a ZapLogger around a production zap configuration,
// or a development one (console-friendly, debug-enabled) when dev is true.
func NewZapLogger(dev bool) (*ZapLogger, error) {
	var z *zap.Logger
	var err error
	if dev {
		z, err = zap.NewDevelopment()
	} else {
		z, err = zap.NewProduction()
	}
	if err != nil {
		return nil, err
	}
	return &ZapLogger{sugar: z.Sugar()}, nil
}

func (l *ZapLogger) Info(msg string, args ...interface{})  { l.sugar.Infof(msg, args...) }
func (l *ZapLogger) Error(msg string, args ...interface{}) { l.sugar.Errorf(msg, args...) }
func (l *ZapLogger) Debug(msg string, args ...interface{}) { l.sugar.Debugf(msg, args...) }

// Sync flushes any buffered log entries. Callers should defer this after
// constructing a ZapLogger.
func (l *ZapLogger) Sync() error { return l.sugar.Sync() }
