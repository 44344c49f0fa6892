// Package markdown renders a dom tree into Markdown text.
//
// Rendering is a depth-first walk: each element is dispatched by tag to one
// formatter, formatters recurse into their children and return the fragment
// they produced, and the fragments are concatenated bottom-up. Tags without a
// formatter render their children only. PostProcess then tidies blank lines
// and stray indentation outside fenced code.
//
// The package is pure: no I/O, no shared mutable state. Concurrent
// conversions of any trees are safe.
package markdown

import (
	"strings"

	"github.com/gaurav-prasanna/pagemd/core/dom"
	"golang.org/x/net/html/atom"
)

type formatter func(e *dom.Element, ctx Context) string

// skipped elements are discarded together with their whole subtree.
var skipped = map[atom.Atom]bool{
	atom.Script: true,
	atom.Style:  true,
	atom.Button: true,
	atom.Form:   true,
	atom.Input:  true,
	atom.Nav:    true,
	atom.Footer: true,
}

// formatters maps tags to their renderer. Filled in init because the
// formatters recurse back into Render.
var formatters map[atom.Atom]formatter

func init() {
	formatters = map[atom.Atom]formatter{
		atom.H1: renderHeading,
		atom.H2: renderHeading,
		atom.H3: renderHeading,
		atom.H4: renderHeading,
		atom.H5: renderHeading,
		atom.H6: renderHeading,
		atom.P:  renderParagraph,
		atom.Br: renderLineBreak,
		atom.Hr: renderRule,

		atom.A:      renderLink,
		atom.Img:    renderImage,
		atom.Strong: renderBold,
		atom.B:      renderBold,
		atom.Em:     renderItalic,
		atom.I:      renderItalic,
		atom.Del:    renderStrikethrough,
		atom.S:      renderStrikethrough,
		atom.Code:   renderInlineCode,

		atom.Ul: renderUnorderedList,
		atom.Ol: renderOrderedList,
		atom.Li: renderListItem,

		atom.Pre:        renderPre,
		atom.Div:        renderDiv,
		atom.Blockquote: renderBlockquote,

		atom.Table: renderTable,
		atom.Thead: renderTableHead,
		atom.Tbody: renderTableBody,
		atom.Tr:    renderRow,

		atom.Dl: renderDefinitionList,
		atom.Dt: renderTerm,
		atom.Dd: renderDefinition,
	}
}

// Convert renders root with a fresh context and post-processes the result.
// This is the entry point for callers outside the package.
func Convert(root dom.Node, opts Options) string {
	return PostProcess(Render(root, NewContext(opts)))
}

// Render dispatches a single node. Text is returned verbatim.
func Render(n dom.Node, ctx Context) string {
	switch n := n.(type) {
	case *dom.Text:
		return n.Data
	case *dom.Element:
		if skipped[n.Tag] {
			return ""
		}
		if ctx.depth >= ctx.maxDepth() {
			return dom.TextContent(n)
		}
		ctx.depth++
		if f, ok := formatters[n.Tag]; ok {
			return f(n, ctx)
		}
		return renderChildren(n, ctx)
	default:
		return ""
	}
}

// RenderNodes concatenates the rendering of nodes in order. No separator is
// inserted; spacing is each formatter's job.
func RenderNodes(nodes []dom.Node, ctx Context) string {
	var b strings.Builder
	for _, n := range nodes {
		b.WriteString(Render(n, ctx))
	}
	return b.String()
}

func renderChildren(e *dom.Element, ctx Context) string {
	return RenderNodes(e.Children, ctx)
}
