package dom

import (
	"bytes"
	"fmt"
	"io"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// FragmentName is the Name of the synthetic root returned for fragment parses.
const FragmentName = "#fragment"

// Parse reads a full HTML document. If the document parse fails the input is
// re-parsed as a <body> fragment and the resulting nodes are wrapped in a
// synthetic html/body pair so callers always get a single root.
func Parse(r io.Reader) (*html.Node, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading html: %w", err)
	}

	doc, err := html.Parse(bytes.NewReader(src))
	if err == nil {
		return doc, nil
	}

	body := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, ferr := html.ParseFragment(bytes.NewReader(src), body)
	if ferr != nil {
		return nil, fmt.Errorf("parsing html: %w (fragment fallback: %v)", err, ferr)
	}
	for _, n := range nodes {
		body.AppendChild(n)
	}
	root := &html.Node{Type: html.DocumentNode}
	htmlEl := &html.Node{Type: html.ElementNode, Data: "html", DataAtom: atom.Html}
	htmlEl.AppendChild(body)
	root.AppendChild(htmlEl)
	return root, nil
}

// FromHTML copies an x/net/html subtree into the engine's node model.
// Comments, doctypes and other non-content nodes are dropped. Document nodes
// become a passthrough Element named FragmentName.
func FromHTML(n *html.Node) Node {
	switch n.Type {
	case html.TextNode:
		return &Text{Data: n.Data}
	case html.ElementNode:
		el := &Element{
			Tag:  n.DataAtom,
			Name: n.Data,
		}
		if len(n.Attr) > 0 {
			el.Attrs = make([]Attribute, 0, len(n.Attr))
			for _, a := range n.Attr {
				el.Attrs = append(el.Attrs, Attribute{Key: a.Key, Val: a.Val})
			}
		}
		el.Children = childrenFromHTML(n)
		return el
	case html.DocumentNode:
		return &Element{Name: FragmentName, Children: childrenFromHTML(n)}
	default:
		return nil
	}
}

func childrenFromHTML(n *html.Node) []Node {
	var out []Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if child := FromHTML(c); child != nil {
			out = append(out, child)
		}
	}
	return out
}
