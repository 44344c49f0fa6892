package markdown

import (
	"strings"
	"unicode"

	"github.com/gaurav-prasanna/pagemd/core/dom"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

const fenceMarker = "```"

// rawSnippetAttr holds the exact clipboard text on code hosts that decorate
// the visible snippet heavily.
const rawSnippetAttr = "data-snippet-clipboard-copy-content"

// renderPre emits a fenced block. A lone <code> child is rendered normally;
// anything else (highlighter spans and the like) is flattened to its text.
func renderPre(e *dom.Element, ctx Context) string {
	var content string
	if code := soleCodeChild(e); code != nil {
		content = renderChildren(code, ctx)
	} else {
		content = dom.TextContent(e)
	}
	return fenced(html.UnescapeString(content))
}

func soleCodeChild(e *dom.Element) *dom.Element {
	if len(e.Children) != 1 {
		return nil
	}
	if el, ok := e.Children[0].(*dom.Element); ok && el.Tag == atom.Code {
		return el
	}
	return nil
}

// renderDiv is transparent unless the div carries a raw snippet, in which
// case the snippet replaces the div's children entirely.
func renderDiv(e *dom.Element, ctx Context) string {
	if raw, ok := e.Attr(rawSnippetAttr); ok && strings.TrimSpace(raw) != "" {
		return fenced(strings.TrimSpace(html.UnescapeString(raw)))
	}
	return renderChildren(e, ctx)
}

func fenced(content string) string {
	content = strings.TrimRightFunc(content, unicode.IsSpace)
	return "\n" + fenceMarker + "\n" + content + "\n" + fenceMarker + "\n"
}

func isFence(line string) bool {
	return strings.HasPrefix(strings.TrimLeftFunc(line, unicode.IsSpace), fenceMarker)
}
