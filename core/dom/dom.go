// Package dom defines the read-only element tree the Markdown engine consumes.
// Trees are built once from a parsed golang.org/x/net/html document and are
// never mutated afterwards, so they can be shared freely between goroutines.
package dom

import (
	"strings"

	"golang.org/x/net/html/atom"
)

// Node is either a *Text leaf or an *Element.
type Node interface {
	node()
}

// Text is opaque character data.
type Text struct {
	Data string
}

// Attribute is a single key/value pair in document order.
type Attribute struct {
	Key string
	Val string
}

// Element is a tagged node with ordered attributes and children.
// Tag is atom 0 for names outside the HTML atom table.
type Element struct {
	Tag      atom.Atom
	Name     string
	Attrs    []Attribute
	Children []Node
}

func (*Text) node()    {}
func (*Element) node() {}

// NewText creates a Text leaf.
func NewText(data string) *Text {
	return &Text{Data: data}
}

// NewElement creates an Element, resolving name to its atom.
func NewElement(name string, attrs []Attribute, children ...Node) *Element {
	name = strings.ToLower(name)
	return &Element{
		Tag:      atom.Lookup([]byte(name)),
		Name:     name,
		Attrs:    attrs,
		Children: children,
	}
}

// Attr returns the value of the first attribute named key.
func (e *Element) Attr(key string) (string, bool) {
	for _, a := range e.Attrs {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// AttrOr returns the first value for key, or fallback if absent.
func (e *Element) AttrOr(key, fallback string) string {
	if v, ok := e.Attr(key); ok {
		return v
	}
	return fallback
}

// ChildElements returns the element children with the given tag, in order.
func (e *Element) ChildElements(tag atom.Atom) []*Element {
	var out []*Element
	for _, c := range e.Children {
		if el, ok := c.(*Element); ok && el.Tag == tag {
			out = append(out, el)
		}
	}
	return out
}

// FirstChild returns the first element child with the given tag, or nil.
func (e *Element) FirstChild(tag atom.Atom) *Element {
	for _, c := range e.Children {
		if el, ok := c.(*Element); ok && el.Tag == tag {
			return el
		}
	}
	return nil
}

// TextContent concatenates every Text leaf under n in document order,
// ignoring element structure entirely.
func TextContent(n Node) string {
	var buf strings.Builder
	var walk func(Node)
	walk = func(n Node) {
		switch n := n.(type) {
		case *Text:
			buf.WriteString(n.Data)
		case *Element:
			for _, c := range n.Children {
				walk(c)
			}
		}
	}
	walk(n)
	return buf.String()
}
