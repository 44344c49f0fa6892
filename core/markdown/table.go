package markdown

import (
	"strings"

	"github.com/gaurav-prasanna/pagemd/core/dom"
	"golang.org/x/net/html/atom"
)

// renderTable finds thead and tbody by tag rather than position. Without a
// tbody, direct <tr> children are the body rows.
func renderTable(e *dom.Element, ctx Context) string {
	head := e.FirstChild(atom.Thead)
	body := e.FirstChild(atom.Tbody)

	var rows []*dom.Element
	if body != nil {
		rows = body.ChildElements(atom.Tr)
	} else {
		rows = e.ChildElements(atom.Tr)
	}

	var b strings.Builder
	switch {
	case head != nil:
		b.WriteString(Render(head, ctx))
	case len(rows) > 0 && isHeaderRow(rows[0]):
		b.WriteString(headerRow(rows[0].ChildElements(atom.Th), ctx))
		rows = rows[1:]
	}

	bodyCtx := ctx.withCellTag(atom.Td)
	for _, tr := range rows {
		b.WriteString(Render(tr, bodyCtx))
	}
	return "\n" + b.String() + "\n"
}

func renderTableHead(e *dom.Element, ctx Context) string {
	tr := e.FirstChild(atom.Tr)
	if tr == nil {
		return ""
	}
	return headerRow(tr.ChildElements(atom.Th), ctx)
}

func renderTableBody(e *dom.Element, ctx Context) string {
	ctx = ctx.withCellTag(atom.Td)
	var b strings.Builder
	for _, tr := range e.ChildElements(atom.Tr) {
		b.WriteString(Render(tr, ctx))
	}
	return b.String()
}

// renderRow keeps cells of the active cell tag plus <th>, dropping
// everything else such as inter-cell whitespace.
func renderRow(e *dom.Element, ctx Context) string {
	var cells []*dom.Element
	for _, c := range e.Children {
		if el, ok := c.(*dom.Element); ok && (el.Tag == ctx.cellTag || el.Tag == atom.Th) {
			cells = append(cells, el)
		}
	}
	if len(cells) == 0 {
		return ""
	}
	return formatRow(cells, ctx) + "\n"
}

func headerRow(cells []*dom.Element, ctx Context) string {
	if len(cells) == 0 {
		return ""
	}
	return formatRow(cells, ctx) + "\n" + separatorRow(len(cells)) + "\n"
}

// isHeaderRow reports whether every cell of tr is a <th>.
func isHeaderRow(tr *dom.Element) bool {
	ths := 0
	for _, c := range tr.Children {
		el, ok := c.(*dom.Element)
		if !ok {
			continue
		}
		switch el.Tag {
		case atom.Th:
			ths++
		case atom.Td:
			return false
		}
	}
	return ths > 0
}

func formatRow(cells []*dom.Element, ctx Context) string {
	parts := make([]string, len(cells))
	for i, cell := range cells {
		parts[i] = strings.TrimSpace(renderCell(cell, ctx))
	}
	return "| " + strings.Join(parts, " | ") + " |"
}

// renderCell goes through Render so cells count toward the depth ceiling.
func renderCell(cell *dom.Element, ctx Context) string {
	return Render(cell, ctx)
}

func separatorRow(n int) string {
	parts := make([]string, n)
	for i := range parts {
		parts[i] = "---"
	}
	return "| " + strings.Join(parts, " | ") + " |"
}
