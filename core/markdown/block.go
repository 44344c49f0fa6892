package markdown

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/gaurav-prasanna/pagemd/core/dom"
	"golang.org/x/net/html/atom"
)

var headingLevels = map[atom.Atom]int{
	atom.H1: 1,
	atom.H2: 2,
	atom.H3: 3,
	atom.H4: 4,
	atom.H5: 5,
	atom.H6: 6,
}

func renderHeading(e *dom.Element, ctx Context) string {
	level := headingLevels[e.Tag]
	return "\n" + strings.Repeat("#", level) + " " + strings.TrimSpace(renderChildren(e, ctx)) + "\n"
}

func renderParagraph(e *dom.Element, ctx Context) string {
	return "\n\n" + strings.TrimSpace(renderChildren(e, ctx)) + "\n"
}

func renderLineBreak(*dom.Element, Context) string {
	return "  \n"
}

func renderRule(*dom.Element, Context) string {
	return "\n\n---\n\n"
}

func renderUnorderedList(e *dom.Element, ctx Context) string {
	return renderList(e, ctx, func(int) string { return "- " })
}

func renderOrderedList(e *dom.Element, ctx Context) string {
	return renderList(e, ctx, func(i int) string { return strconv.Itoa(i+1) + ". " })
}

// renderList renders only the <li> children; marker numbers count items,
// not siblings.
func renderList(e *dom.Element, ctx Context, marker func(int) string) string {
	var b strings.Builder
	for i, li := range e.ChildElements(atom.Li) {
		b.WriteString(Render(li, ctx.withListMarker(marker(i))))
	}
	if ctx.inListItem {
		return "\n\n" + b.String()
	}
	return "\n" + b.String() + "\n"
}

// renderListItem puts nested lists after the item text, separated by a blank
// line, instead of indenting them.
func renderListItem(e *dom.Element, ctx Context) string {
	var nested, rest []dom.Node
	for _, c := range e.Children {
		if el, ok := c.(*dom.Element); ok && (el.Tag == atom.Ul || el.Tag == atom.Ol) {
			nested = append(nested, c)
			continue
		}
		rest = append(rest, c)
	}

	marker := ctx.listMarker
	if marker == "" {
		marker = "- "
	}
	out := marker + strings.TrimSpace(RenderNodes(rest, ctx))
	if len(nested) > 0 {
		out += RenderNodes(nested, ctx.withInListItem(true))
	}
	return out + "\n"
}

// renderBlockquote prefixes every line of the quoted content with "> ".
// Runs of blank lines collapse to a single ">" separator and lines lose their
// leading whitespace, except inside fenced code, which is quoted verbatim.
func renderBlockquote(e *dom.Element, ctx Context) string {
	content := strings.TrimSpace(renderChildren(e, ctx))

	var out []string
	inFence, pendingBreak := false, false
	for _, line := range strings.Split(content, "\n") {
		switch {
		case isFence(line):
			inFence = !inFence
			line = strings.TrimLeftFunc(line, unicode.IsSpace)
		case inFence:
			if line == "" {
				out = append(out, ">")
				continue
			}
		default:
			line = strings.TrimLeftFunc(line, unicode.IsSpace)
			if line == "" {
				pendingBreak = true
				continue
			}
		}
		if pendingBreak && len(out) > 0 {
			out = append(out, ">")
		}
		pendingBreak = false
		out = append(out, "> "+line)
	}
	if len(out) == 0 {
		return ""
	}
	return "\n" + strings.Join(out, "\n") + "\n"
}

func renderDefinitionList(e *dom.Element, ctx Context) string {
	var b strings.Builder
	for _, c := range e.Children {
		if el, ok := c.(*dom.Element); ok && (el.Tag == atom.Dt || el.Tag == atom.Dd) {
			b.WriteString(Render(el, ctx))
		}
	}
	return "\n\n" + b.String() + "\n\n"
}

func renderTerm(e *dom.Element, ctx Context) string {
	return "**" + strings.TrimSpace(renderChildren(e, ctx)) + "**\n"
}

func renderDefinition(e *dom.Element, ctx Context) string {
	return ": " + strings.TrimSpace(renderChildren(e, ctx)) + "\n\n"
}
