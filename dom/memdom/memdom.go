// Package memdom is an in-memory dom.Document for tests and tooling.
//
// Documents are built from real markup with golang.org/x/net/html, start
// in the loading state, and only fire ready callbacks once Load is called,
// which mirrors DOMContentLoaded in a browser. Events are dispatched
// synchronously in registration order.
package memdom

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/vcrobe/clickcounter/dom"
	"github.com/vcrobe/clickcounter/events"
)

var (
	_ dom.Document = (*Document)(nil)
	_ dom.Element  = (*Node)(nil)
)

// Document is an in-memory HTML document.
type Document struct {
	root   *Node
	loaded bool
	nextID uint64
	ready  []listener
}

type listener struct {
	id uint64
	fn func()
}

// Node is an element or text node of a Document.
type Node struct {
	doc       *Document
	parent    *Node
	tag       string // "" for text nodes
	text      string
	attrs     []html.Attribute
	children  []*Node
	listeners map[string][]listener
}

// New returns an empty document with html, head and body elements.
func New() *Document {
	doc, err := ParseString("<!DOCTYPE html><html><head></head><body></body></html>")
	if err != nil {
		panic(err)
	}
	return doc
}

// Parse builds a Document from HTML markup.
func Parse(r io.Reader) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, errors.Wrap(err, "memdom: parse html")
	}
	doc := &Document{}
	doc.root = doc.convert(root, nil)
	return doc, nil
}

// ParseString is Parse over a string.
func ParseString(markup string) (*Document, error) {
	return Parse(strings.NewReader(markup))
}

func (d *Document) convert(n *html.Node, parent *Node) *Node {
	var out *Node
	switch n.Type {
	case html.DocumentNode:
		out = &Node{doc: d, parent: parent, tag: "#document"}
	case html.ElementNode:
		attrs := make([]html.Attribute, len(n.Attr))
		copy(attrs, n.Attr)
		out = &Node{doc: d, parent: parent, tag: n.Data, attrs: attrs}
	case html.TextNode:
		return &Node{doc: d, parent: parent, text: n.Data}
	default:
		return nil
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if child := d.convert(c, out); child != nil {
			out.children = append(out.children, child)
		}
	}
	return out
}

// Load marks the document as parsed and runs pending ready callbacks.
// Subsequent calls do nothing.
func (d *Document) Load() {
	if d.loaded {
		return
	}
	d.loaded = true
	pending := d.ready
	d.ready = nil
	for _, l := range pending {
		l.fn()
	}
}

// Loaded reports whether Load has been called.
func (d *Document) Loaded() bool {
	return d.loaded
}

// OnReady implements dom.Document.
func (d *Document) OnReady(fn func()) *events.Subscription {
	if d.loaded {
		fn()
		return events.NewSubscription(nil)
	}
	id := d.id()
	d.ready = append(d.ready, listener{id: id, fn: fn})
	return events.NewSubscription(func() {
		d.ready = without(d.ready, id)
	})
}

// ElementByID implements dom.Document. The first element in document
// order wins when ids are duplicated.
func (d *Document) ElementByID(id string) (dom.Element, bool) {
	if n := d.find(id); n != nil {
		return n, true
	}
	return nil, false
}

// Node returns the concrete node for id, or nil.
func (d *Document) Node(id string) *Node {
	return d.find(id)
}

// CountByID returns how many elements carry id.
func (d *Document) CountByID(id string) int {
	count := 0
	d.root.walk(func(n *Node) bool {
		if n.tag != "" && n.ID() == id {
			count++
		}
		return true
	})
	return count
}

// CreateElement implements dom.Document.
func (d *Document) CreateElement(tag string) dom.Element {
	return &Node{doc: d, tag: strings.ToLower(tag)}
}

// Body returns the body element.
func (d *Document) Body() *Node {
	var body *Node
	d.root.walk(func(n *Node) bool {
		if n.tag == atom.Body.String() {
			body = n
			return false
		}
		return true
	})
	return body
}

// HTML renders the whole document.
func (d *Document) HTML() string {
	var buf bytes.Buffer
	for _, c := range d.root.children {
		_ = html.Render(&buf, c.toHTML())
	}
	return buf.String()
}

func (d *Document) find(id string) *Node {
	var found *Node
	d.root.walk(func(n *Node) bool {
		if n.tag != "" && n.ID() == id {
			found = n
			return false
		}
		return true
	})
	return found
}

func (d *Document) id() uint64 {
	d.nextID++
	return d.nextID
}

// walk visits n and its descendants depth first until visit returns false.
func (n *Node) walk(visit func(*Node) bool) bool {
	if !visit(n) {
		return false
	}
	for _, c := range n.children {
		if !c.walk(visit) {
			return false
		}
	}
	return true
}

// ID implements dom.Element.
func (n *Node) ID() string {
	v, _ := n.Attribute("id")
	return v
}

// Tag implements dom.Element.
func (n *Node) Tag() string {
	return n.tag
}

// Attribute implements dom.Element.
func (n *Node) Attribute(name string) (string, bool) {
	for _, a := range n.attrs {
		if a.Key == name {
			return a.Val, true
		}
	}
	return "", false
}

// SetAttribute implements dom.Element.
func (n *Node) SetAttribute(name string, value any) {
	val := stringify(value)
	for i, a := range n.attrs {
		if a.Key == name {
			n.attrs[i].Val = val
			return
		}
	}
	n.attrs = append(n.attrs, html.Attribute{Key: name, Val: val})
}

// RemoveAttribute implements dom.Element.
func (n *Node) RemoveAttribute(name string) {
	for i, a := range n.attrs {
		if a.Key == name {
			n.attrs = append(n.attrs[:i], n.attrs[i+1:]...)
			return
		}
	}
}

// TextContent implements dom.Element.
func (n *Node) TextContent() string {
	if n.tag == "" {
		return n.text
	}
	var b strings.Builder
	for _, c := range n.children {
		b.WriteString(c.TextContent())
	}
	return b.String()
}

// SetTextContent implements dom.Element.
func (n *Node) SetTextContent(text string) {
	if n.tag == "" {
		n.text = text
		return
	}
	for _, c := range n.children {
		c.parent = nil
	}
	n.children = nil
	if text != "" {
		n.children = []*Node{{doc: n.doc, parent: n, text: text}}
	}
}

// AppendChild implements dom.Element. Elements from another
// implementation are ignored.
func (n *Node) AppendChild(child dom.Element) {
	c, ok := child.(*Node)
	if !ok {
		return
	}
	c.Remove()
	c.parent = n
	n.children = append(n.children, c)
}

// Children returns the element children of n.
func (n *Node) Children() []*Node {
	var out []*Node
	for _, c := range n.children {
		if c.tag != "" {
			out = append(out, c)
		}
	}
	return out
}

// Remove detaches n from its parent. Listeners stay registered but the
// node is no longer reachable through the document.
func (n *Node) Remove() {
	p := n.parent
	if p == nil {
		return
	}
	for i, c := range p.children {
		if c == n {
			p.children = append(p.children[:i], p.children[i+1:]...)
			break
		}
	}
	n.parent = nil
}

// AddEventListener implements dom.Element.
func (n *Node) AddEventListener(event string, handler func()) *events.Subscription {
	if n.listeners == nil {
		n.listeners = make(map[string][]listener)
	}
	id := n.doc.id()
	n.listeners[event] = append(n.listeners[event], listener{id: id, fn: handler})
	return events.NewSubscription(func() {
		n.listeners[event] = without(n.listeners[event], id)
	})
}

// Dispatch fires event on n, running its listeners synchronously in
// registration order. It returns the number of listeners run.
func (n *Node) Dispatch(event string) int {
	pending := append([]listener(nil), n.listeners[event]...)
	for _, l := range pending {
		l.fn()
	}
	return len(pending)
}

// Click dispatches a click event.
func (n *Node) Click() int {
	return n.Dispatch(events.Click)
}

// ListenerCount returns the number of listeners registered for event.
func (n *Node) ListenerCount(event string) int {
	return len(n.listeners[event])
}

// OuterHTML renders n and its descendants.
func (n *Node) OuterHTML() string {
	var buf bytes.Buffer
	_ = html.Render(&buf, n.toHTML())
	return buf.String()
}

func (n *Node) toHTML() *html.Node {
	if n.tag == "" {
		return &html.Node{Type: html.TextNode, Data: n.text}
	}
	out := &html.Node{
		Type:     html.ElementNode,
		Data:     n.tag,
		DataAtom: atom.Lookup([]byte(n.tag)),
		Attr:     append([]html.Attribute(nil), n.attrs...),
	}
	for _, c := range n.children {
		out.AppendChild(c.toHTML())
	}
	return out
}

func without(ls []listener, id uint64) []listener {
	for i, l := range ls {
		if l.id == id {
			return append(ls[:i:i], ls[i+1:]...)
		}
	}
	return ls
}

// stringify converts an attribute value the way the browser's
// setAttribute does for primitive values.
func stringify(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}
