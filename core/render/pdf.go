package render

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/gaurav-prasanna/pagemd/core"
	"github.com/jung-kurt/gofpdf"
	"github.com/yuin/goldmark/ast"
	extast "github.com/yuin/goldmark/extension/ast"
)

// PDFRenderer renders Markdown content as a PDF document.
// Images are not embedded; their alt text is kept inline.
type PDFRenderer struct{}

// NewPDFRenderer creates a PDFRenderer.
func NewPDFRenderer() *PDFRenderer {
	return &PDFRenderer{}
}

var headingSizes = map[int]float64{1: 18, 2: 15, 3: 13, 4: 12, 5: 11, 6: 10}

type pdfWriter struct {
	pdf *gofpdf.Fpdf
	tr  func(string) string
	src []byte
}

// Render converts Markdown into PDF bytes.
func (r *PDFRenderer) Render(markdown string, meta core.PageMetadata) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 15)
	pdf.SetTitle(meta.Title, true)
	pdf.AddPage()

	w := &pdfWriter{
		pdf: pdf,
		tr:  pdf.UnicodeTranslatorFromDescriptor(""),
		src: []byte(markdown),
	}

	if meta.Title != "" {
		pdf.SetFont("Helvetica", "B", 18)
		pdf.MultiCell(0, 8, w.tr(meta.Title), "", "L", false)
		pdf.Ln(4)
	}
	if meta.URL != "" {
		pdf.SetFont("Helvetica", "I", 9)
		pdf.SetTextColor(100, 100, 100)
		pdf.MultiCell(0, 5, w.tr("Source: "+meta.URL), "", "L", false)
		pdf.SetTextColor(0, 0, 0)
		pdf.Ln(6)
	}

	doc := parseMarkdown(w.src)
	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		w.block(n, 0)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("writing PDF: %w", err)
	}
	return buf.Bytes(), nil
}

// Extension returns the file extension for PDF output.
func (r *PDFRenderer) Extension() string {
	return ".pdf"
}

func (w *pdfWriter) block(n ast.Node, indent int) {
	switch node := n.(type) {
	case *ast.Heading:
		w.heading(inlineText(node, w.src), node.Level)
	case *ast.Paragraph, *ast.TextBlock:
		w.paragraph(inlineText(node, w.src), indent)
	case *ast.FencedCodeBlock, *ast.CodeBlock:
		w.code(linesText(node, w.src))
	case *ast.List:
		w.list(node, indent)
	case *ast.Blockquote:
		w.pdf.SetTextColor(90, 90, 90)
		w.pdf.SetFont("Helvetica", "I", 10)
		w.indented(indent+1, blockText(node, w.src))
		w.pdf.SetTextColor(0, 0, 0)
		w.pdf.Ln(3)
	case *extast.Table:
		w.table(node)
	case *ast.ThematicBreak:
		w.rule()
	}
}

func (w *pdfWriter) heading(text string, level int) {
	size, ok := headingSizes[level]
	if !ok {
		size = 10
	}
	w.pdf.Ln(4)
	w.pdf.SetFont("Helvetica", "B", size)
	w.pdf.MultiCell(0, size*0.6, w.tr(text), "", "L", false)
	w.pdf.Ln(2)
}

func (w *pdfWriter) paragraph(text string, indent int) {
	if text == "" {
		return
	}
	w.pdf.SetFont("Helvetica", "", 10)
	w.indented(indent, text)
	if indent == 0 {
		w.pdf.Ln(3)
	}
}

func (w *pdfWriter) code(text string) {
	w.pdf.Ln(2)
	w.pdf.SetFont("Courier", "", 9)
	w.pdf.SetFillColor(245, 245, 245)
	for _, line := range strings.Split(text, "\n") {
		w.pdf.MultiCell(0, 4.5, w.tr(line), "", "L", true)
	}
	w.pdf.Ln(3)
}

func (w *pdfWriter) list(l *ast.List, indent int) {
	num := l.Start
	for item := l.FirstChild(); item != nil; item = item.NextSibling() {
		marker := "• "
		if l.IsOrdered() {
			marker = fmt.Sprintf("%d. ", num)
			num++
		}

		first := true
		for c := item.FirstChild(); c != nil; c = c.NextSibling() {
			if sub, ok := c.(*ast.List); ok {
				w.list(sub, indent+1)
				continue
			}
			text := blockText(c, w.src)
			if first {
				text = marker + text
				first = false
			}
			w.pdf.SetFont("Helvetica", "", 10)
			w.indented(indent, text)
		}
	}
	if indent == 0 {
		w.pdf.Ln(3)
	}
}

func (w *pdfWriter) table(t *extast.Table) {
	left, _, right, _ := w.pdf.GetMargins()
	pageWidth, _ := w.pdf.GetPageSize()
	usable := pageWidth - left - right

	for row := t.FirstChild(); row != nil; row = row.NextSibling() {
		cells := cellTexts(row, w.src)
		if len(cells) == 0 {
			continue
		}
		header := row.Kind() == extast.KindTableHeader
		style := ""
		if header {
			style = "B"
			w.pdf.SetFillColor(230, 230, 230)
		}
		w.pdf.SetFont("Helvetica", style, 9)

		width := usable / float64(len(cells))
		for _, cell := range cells {
			w.pdf.CellFormat(width, 6, w.tr(cell), "1", 0, "L", header, 0, "")
		}
		w.pdf.Ln(-1)
	}
	w.pdf.Ln(3)
}

func (w *pdfWriter) rule() {
	left, _, right, _ := w.pdf.GetMargins()
	pageWidth, _ := w.pdf.GetPageSize()
	y := w.pdf.GetY() + 2
	w.pdf.SetDrawColor(180, 180, 180)
	w.pdf.Line(left, y, pageWidth-right, y)
	w.pdf.Ln(5)
}

func (w *pdfWriter) indented(indent int, text string) {
	left, _, _, _ := w.pdf.GetMargins()
	offset := float64(indent) * 6
	w.pdf.SetX(left + offset)
	w.pdf.MultiCell(0, 5, w.tr(text), "", "L", false)
}
