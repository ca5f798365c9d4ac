//go:build js && wasm

package main

import (
	"syscall/js"

	"go.uber.org/zap"

	"github.com/vcrobe/clickcounter/config"
	"github.com/vcrobe/clickcounter/console"
	"github.com/vcrobe/clickcounter/counter"
	"github.com/vcrobe/clickcounter/dialogs"
	"github.com/vcrobe/clickcounter/dom"
)

func main() {
	// 1. Read the page configuration; fall back to the defaults on error.
	cfg, cfgErr := config.FromJSON(pageConfig())
	if cfgErr != nil {
		cfg = config.Default()
	}

	log := console.New(cfg.Debug)
	if cfgErr != nil {
		log.Warn("ignoring page configuration", zap.Error(cfgErr))
	}

	doc, ok := dom.NewBrowser()
	if !ok {
		log.Error("no document available")
		return
	}

	// 2. Bind once the page structure is parsed.
	counter.Attach(doc, cfg, func(c *counter.Controller, err error) {
		if err != nil {
			log.Error("counter initialization failed", zap.Error(err))
			if cfg.AlertOnError {
				dialogs.Alert("Counter failed to start: " + err.Error())
			}
			return
		}
		log.Info("counter ready", zap.String("counter", c.ID()))
	}, counter.WithLogger(log))

	// Keep the Go program running
	select {}
}

// pageConfig returns window.counterConfig as JSON, or nil when unset.
func pageConfig() []byte {
	v := js.Global().Get("counterConfig")
	if !v.Truthy() {
		return nil
	}
	s := js.Global().Get("JSON").Call("stringify", v)
	if s.Type() != js.TypeString {
		return nil
	}
	return []byte(s.String())
}
