// Package web embeds the page that hosts the counter.
package web

import _ "embed"

// Index is the stock host page. It carries the default display and
// trigger elements and loads config.js, wasm_exec.js and main.wasm
// relative to its own URL.
//
//go:embed index.html
var Index []byte
