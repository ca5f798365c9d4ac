//go:build js && wasm

// Package dialogs wraps the browser's blocking dialogs.
package dialogs

import (
	"syscall/js"
)

// Alert shows msg in a modal alert. It does nothing when the host has no
// alert function.
func Alert(msg string) {
	if fn := js.Global().Get("alert"); fn.Truthy() {
		fn.Invoke(msg)
	}
}
