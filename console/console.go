// Package console builds the zap logger used by the counter.
//
// Under js/wasm the lines go to the browser's devtools console: error
// level and above through console.error, everything else through
// console.log. Native builds write to stderr.
package console

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New returns a logger at info level, or debug level when debug is set.
func New(debug bool) *zap.Logger {
	level := zapcore.InfoLevel
	if debug {
		level = zapcore.DebugLevel
	}
	return NewWithSinks(level, infoSink(), errorSink())
}

// NewWithSinks builds the logger over explicit sinks. Entries below error
// level go to info, the rest to errs.
func NewWithSinks(level zapcore.Level, info, errs zapcore.WriteSyncer) *zap.Logger {
	enc := zapcore.NewConsoleEncoder(encoderConfig())
	lowPriority := zap.LevelEnablerFunc(func(l zapcore.Level) bool {
		return l >= level && l < zapcore.ErrorLevel
	})
	highPriority := zap.LevelEnablerFunc(func(l zapcore.Level) bool {
		return l >= level && l >= zapcore.ErrorLevel
	})
	core := zapcore.NewTee(
		zapcore.NewCore(enc, zapcore.Lock(info), lowPriority),
		zapcore.NewCore(enc, zapcore.Lock(errs), highPriority),
	)
	return zap.New(core)
}

func encoderConfig() zapcore.EncoderConfig {
	cfg := zap.NewDevelopmentEncoderConfig()
	// The devtools console timestamps every line already.
	cfg.TimeKey = ""
	cfg.CallerKey = ""
	return cfg
}
