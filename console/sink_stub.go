//go:build !(js && wasm)

package console

import (
	"os"

	"go.uber.org/zap/zapcore"
)

// Native builds have no devtools console; both streams go to stderr.

func infoSink() zapcore.WriteSyncer  { return zapcore.AddSync(os.Stderr) }
func errorSink() zapcore.WriteSyncer { return zapcore.AddSync(os.Stderr) }
