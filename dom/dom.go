// Package dom describes the part of the host document the counter needs.
//
// The interfaces have no build tags. The browser implementation lives in
// dom_js.go behind js/wasm tags and package memdom provides an in-memory
// document for native tests.
package dom

import "github.com/vcrobe/clickcounter/events"

// Element is a handle to a single node of the host document.
type Element interface {
	// ID returns the element's id attribute, or "" when it has none.
	ID() string

	// Tag returns the lower-case tag name.
	Tag() string

	// TextContent returns the concatenated text of the element.
	TextContent() string

	// SetTextContent replaces the element's children with a single text node.
	SetTextContent(text string)

	// Attribute returns the named attribute. ok is false when it is unset.
	Attribute(name string) (value string, ok bool)

	// SetAttribute sets an attribute. Values are stringified by the host.
	SetAttribute(name string, value any)

	// RemoveAttribute removes an attribute if present.
	RemoveAttribute(name string)

	// AppendChild appends child as the last child of the element.
	AppendChild(child Element)

	// AddEventListener registers handler for the named event. The returned
	// subscription removes exactly this registration.
	AddEventListener(event string, handler func()) *events.Subscription
}

// Document is the host document.
type Document interface {
	// ElementByID resolves an element by id. ok is false when no element
	// carries the id.
	ElementByID(id string) (el Element, ok bool)

	// CreateElement creates a detached element with the given tag.
	CreateElement(tag string) Element

	// OnReady runs fn once the document structure is parsed. If that has
	// already happened fn runs before OnReady returns and the returned
	// subscription is a no-op.
	OnReady(fn func()) *events.Subscription
}
