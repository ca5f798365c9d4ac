//go:build js && wasm

package dom

import (
	"strings"
	"syscall/js"

	"github.com/vcrobe/clickcounter/events"
)

// Compile-time assertions that the browser types implement the interfaces.
var (
	_ Document = (*Browser)(nil)
	_ Element  = (*browserElement)(nil)
)

// Browser is the Document backed by the page's global `document`.
type Browser struct {
	doc js.Value
}

// NewBrowser returns the page document. ok is false when no global
// document exists, e.g. in a worker.
func NewBrowser() (*Browser, bool) {
	doc := js.Global().Get("document")
	if !doc.Truthy() {
		return nil, false
	}
	return &Browser{doc: doc}, true
}

// ElementByID implements Document.
func (b *Browser) ElementByID(id string) (Element, bool) {
	el := b.doc.Call("getElementById", id)
	if !el.Truthy() {
		return nil, false
	}
	return &browserElement{v: el}, true
}

// CreateElement implements Document.
func (b *Browser) CreateElement(tag string) Element {
	return &browserElement{v: b.doc.Call("createElement", tag)}
}

// OnReady implements Document. A readyState other than "loading" means
// DOMContentLoaded has already fired.
func (b *Browser) OnReady(fn func()) *events.Subscription {
	if b.doc.Get("readyState").String() != "loading" {
		fn()
		return events.NewSubscription(nil)
	}
	return listen(b.doc, events.Ready, fn, true)
}

type browserElement struct {
	v js.Value
}

func (e *browserElement) ID() string {
	return e.v.Get("id").String()
}

func (e *browserElement) Tag() string {
	return strings.ToLower(e.v.Get("tagName").String())
}

func (e *browserElement) TextContent() string {
	return e.v.Get("textContent").String()
}

func (e *browserElement) SetTextContent(text string) {
	e.v.Set("textContent", text)
}

func (e *browserElement) Attribute(name string) (string, bool) {
	if !e.v.Call("hasAttribute", name).Bool() {
		return "", false
	}
	return e.v.Call("getAttribute", name).String(), true
}

func (e *browserElement) SetAttribute(name string, value any) {
	e.v.Call("setAttribute", name, value)
}

func (e *browserElement) RemoveAttribute(name string) {
	e.v.Call("removeAttribute", name)
}

func (e *browserElement) AppendChild(child Element) {
	if c, ok := child.(*browserElement); ok {
		e.v.Call("appendChild", c.v)
	}
}

func (e *browserElement) AddEventListener(event string, handler func()) *events.Subscription {
	return listen(e.v, event, handler, false)
}

// listen registers a js.Func on target and returns a subscription that
// removes the listener and releases the function. A once listener
// unsubscribes itself after its first invocation.
func listen(target js.Value, event string, handler func(), once bool) *events.Subscription {
	var sub *events.Subscription
	cb := js.FuncOf(func(this js.Value, args []js.Value) any {
		handler()
		if once {
			sub.Unsubscribe()
		}
		return nil
	})
	sub = events.NewSubscription(func() {
		target.Call("removeEventListener", event, cb)
		cb.Release()
	})
	target.Call("addEventListener", event, cb)
	return sub
}
