// Package vdom describes element trees in Go and builds them in a
// dom.Document. No build tags — the same tree renders into the browser
// and into memdom.
package vdom

// VNode is an element to be created: a tag, its attributes, and either a
// text body or child elements. Text wins when both are set.
type VNode struct {
	Tag        string
	Attributes map[string]any
	Text       string
	Children   []*VNode
}

// Element returns a VNode with child elements.
func Element(tag string, attrs map[string]any, children ...*VNode) *VNode {
	return &VNode{Tag: tag, Attributes: attrs, Children: children}
}

// TextElement returns a VNode whose body is text.
func TextElement(tag, text string, attrs map[string]any) *VNode {
	return &VNode{Tag: tag, Attributes: attrs, Text: text}
}

// Div is Element("div", ...).
func Div(attrs map[string]any, children ...*VNode) *VNode {
	return Element("div", attrs, children...)
}

// Paragraph is a <p> holding text.
func Paragraph(text string, attrs map[string]any) *VNode {
	return TextElement("p", text, attrs)
}

// Button is a <button> labelled with text.
func Button(label string, attrs map[string]any) *VNode {
	return TextElement("button", label, attrs)
}

// Find returns the first node in v's subtree whose id attribute equals id.
func (v *VNode) Find(id string) *VNode {
	if v == nil {
		return nil
	}
	if got, ok := v.Attributes["id"]; ok && got == id {
		return v
	}
	for _, c := range v.Children {
		if n := c.Find(id); n != nil {
			return n
		}
	}
	return nil
}
