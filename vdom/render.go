package vdom

import (
	"sort"

	"github.com/vcrobe/clickcounter/dom"
)

// RenderToID builds n and appends it to the element with the given id.
// ok is false, and nothing is built, when that element does not exist.
func RenderToID(doc dom.Document, id string, n *VNode) (el dom.Element, ok bool) {
	mount, found := doc.ElementByID(id)
	if !found || n == nil {
		return nil, found
	}
	el = Build(doc, n)
	mount.AppendChild(el)
	return el, true
}

// Build creates the detached element tree for n.
func Build(doc dom.Document, n *VNode) dom.Element {
	el := doc.CreateElement(n.Tag)

	// Sorted so that renders are reproducible.
	names := make([]string, 0, len(n.Attributes))
	for name := range n.Attributes {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		el.SetAttribute(name, n.Attributes[name])
	}

	if n.Text != "" {
		el.SetTextContent(n.Text)
		return el
	}
	for _, c := range n.Children {
		if c != nil {
			el.AppendChild(Build(doc, c))
		}
	}
	return el
}
