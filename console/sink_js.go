//go:build js && wasm

package console

import (
	"strings"
	"syscall/js"

	"go.uber.org/zap/zapcore"
)

// jsSink forwards each encoded entry to a method of the global console.
type jsSink struct {
	method string
}

func (s jsSink) Write(p []byte) (int, error) {
	console := js.Global().Get("console")
	if console.Truthy() {
		console.Call(s.method, strings.TrimRight(string(p), "\n"))
	}
	return len(p), nil
}

func (jsSink) Sync() error { return nil }

func infoSink() zapcore.WriteSyncer  { return jsSink{method: "log"} }
func errorSink() zapcore.WriteSyncer { return jsSink{method: "error"} }
