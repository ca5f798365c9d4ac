package counter

import (
	"github.com/pkg/errors"

	"github.com/vcrobe/clickcounter/config"
	"github.com/vcrobe/clickcounter/dom"
	"github.com/vcrobe/clickcounter/events"
	"github.com/vcrobe/clickcounter/vdom"
)

// Attach waits for doc to become ready, renders View into cfg.Mount when
// one is configured, then creates and binds a Controller. Attaching again
// to elements a live controller is bound to reports ErrAlreadyBound and
// leaves that controller untouched. done receives
// the bound controller or the initialization error; it runs exactly once
// unless the returned subscription is cancelled before the document is
// ready.
func Attach(doc dom.Document, cfg config.Config, done func(*Controller, error), opts ...Option) *events.Subscription {
	return doc.OnReady(func() {
		c, err := attach(doc, cfg, opts...)
		done(c, err)
	})
}

func attach(doc dom.Document, cfg config.Config, opts ...Option) (*Controller, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.Mount != "" {
		if err := mount(doc, cfg); err != nil {
			return nil, err
		}
	}
	c, err := New(doc, cfg, opts...)
	if err != nil {
		return nil, err
	}
	if err := c.Bind(); err != nil {
		return nil, err
	}
	return c, nil
}

// mount renders View into cfg.Mount unless an earlier attach already did.
func mount(doc dom.Document, cfg config.Config) error {
	if _, ok := doc.ElementByID(cfg.TriggerID); ok {
		return nil
	}
	if _, ok := vdom.RenderToID(doc, cfg.Mount, View(cfg)); !ok {
		return errors.Wrapf(ErrMissingElement, "mount %q", cfg.Mount)
	}
	return nil
}
