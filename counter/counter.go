// Package counter implements the click counter: a controller that owns an
// integer, binds to a display element and a trigger control, and writes
// the value to the display on every activation.
//
// The controller is driven by the host's event loop, which delivers one
// event at a time. It is not safe for concurrent use.
package counter

import (
	"strconv"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/vcrobe/clickcounter/config"
	"github.com/vcrobe/clickcounter/dom"
	"github.com/vcrobe/clickcounter/events"
	"github.com/vcrobe/clickcounter/signals"
)

// ErrMissingElement is returned when a required element id does not
// resolve in the document.
var ErrMissingElement = errors.New("counter: required element not found")

// ErrAlreadyBound is returned when the display or trigger already belongs
// to another bound controller.
var ErrAlreadyBound = errors.New("counter: element already bound")

// BoundAttr marks the display and trigger of a bound controller. Its
// value is the controller's ID.
const BoundAttr = "data-counter-bound"

// Controller keeps the display in sync with the click count.
type Controller struct {
	id      string
	log     *zap.Logger
	value   *signals.Signal[int]
	display dom.Element
	trigger dom.Element

	clickSub  *events.Subscription
	renderSub *events.Subscription
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the logger. The default discards everything.
func WithLogger(log *zap.Logger) Option {
	return func(c *Controller) {
		if log != nil {
			c.log = log
		}
	}
}

// New resolves the display and trigger elements named by cfg and returns
// an unbound controller with value 0. The display is not written until
// the first activation.
func New(doc dom.Document, cfg config.Config, opts ...Option) (*Controller, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Controller{
		id:    uuid.NewString(),
		log:   zap.NewNop(),
		value: signals.NewSignal(0),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.log = c.log.With(zap.String("counter", c.id))

	var err error
	if c.display, err = resolve(doc, cfg.DisplayID); err != nil {
		return nil, err
	}
	if c.trigger, err = resolve(doc, cfg.TriggerID); err != nil {
		return nil, err
	}
	if err := c.checkFree(); err != nil {
		return nil, err
	}

	c.renderSub = c.value.Subscribe(c.render)

	c.log.Debug("counter resolved",
		zap.String("display", cfg.DisplayID),
		zap.String("trigger", cfg.TriggerID))
	return c, nil
}

func resolve(doc dom.Document, id string) (dom.Element, error) {
	el, ok := doc.ElementByID(id)
	if !ok {
		return nil, errors.Wrapf(ErrMissingElement, "id %q", id)
	}
	return el, nil
}

// ID returns the controller's instance id.
func (c *Controller) ID() string {
	return c.id
}

// Value returns the current count.
func (c *Controller) Value() int {
	return c.value.Get()
}

// Bound reports whether the click handler is registered.
func (c *Controller) Bound() bool {
	return c.clickSub != nil
}

// Bind registers the click handler on the trigger and marks both elements
// with BoundAttr. Calling Bind on a bound controller does nothing. Binding
// elements another controller has marked fails with ErrAlreadyBound, so the
// trigger never carries more than one handler however often
// initialization runs.
func (c *Controller) Bind() error {
	if c.Bound() {
		c.log.Debug("counter already bound")
		return nil
	}
	if err := c.checkFree(); err != nil {
		return err
	}
	c.display.SetAttribute(BoundAttr, c.id)
	c.trigger.SetAttribute(BoundAttr, c.id)
	c.clickSub = c.trigger.AddEventListener(events.Click, c.Activate)
	c.log.Debug("counter bound")
	return nil
}

// Unbind removes the click handler and the marks. The value is kept, and a
// later Bind resumes counting from it.
func (c *Controller) Unbind() {
	if !c.Bound() {
		return
	}
	c.clickSub.Unsubscribe()
	c.clickSub = nil
	for _, el := range []dom.Element{c.display, c.trigger} {
		if c.owns(el) {
			el.RemoveAttribute(BoundAttr)
		}
	}
	c.log.Debug("counter unbound")
}

// Close unbinds the controller and detaches it from the display. A closed
// controller still counts activations but no longer renders them.
func (c *Controller) Close() {
	c.Unbind()
	c.renderSub.Unsubscribe()
}

// Activate adds one to the value and writes it to the display before
// returning, unless another controller owns the display.
func (c *Controller) Activate() {
	v := c.value.Update(func(n int) int { return n + 1 })
	c.log.Debug("counter activated", zap.Int("value", v))
}

func (c *Controller) render(v int) {
	if !c.owns(c.display) {
		return
	}
	c.display.SetTextContent(strconv.Itoa(v))
}

// owns reports whether el is unmarked or marked by c.
func (c *Controller) owns(el dom.Element) bool {
	owner, ok := el.Attribute(BoundAttr)
	return !ok || owner == c.id
}

// checkFree fails when another controller has marked the display or
// the trigger.
func (c *Controller) checkFree() error {
	for _, el := range []dom.Element{c.display, c.trigger} {
		if !c.owns(el) {
			owner, _ := el.Attribute(BoundAttr)
			return errors.Wrapf(ErrAlreadyBound, "id %q is bound to counter %s", el.ID(), owner)
		}
	}
	return nil
}
