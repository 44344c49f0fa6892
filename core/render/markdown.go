// Package render provides output renderers for the pagemd pipeline.
// Markdown is the canonical format; JSON and PDF are derived from a goldmark
// parse of that Markdown.
package render

import (
	"bytes"
	"fmt"

	"github.com/gaurav-prasanna/pagemd/core"
	"gopkg.in/yaml.v3"
)

// Output format names accepted by ForFormat.
const (
	FormatMarkdown = "markdown"
	FormatJSON     = "json"
	FormatPDF      = "pdf"
)

// ForFormat returns the Renderer for the named format.
func ForFormat(format string, frontMatter bool) (core.Renderer, error) {
	switch format {
	case "", FormatMarkdown:
		return NewMarkdownRenderer(frontMatter), nil
	case FormatJSON:
		return NewJSONRenderer(), nil
	case FormatPDF:
		return NewPDFRenderer(), nil
	default:
		return nil, fmt.Errorf("unknown format %q (want %s, %s or %s)", format, FormatMarkdown, FormatJSON, FormatPDF)
	}
}

// MarkdownRenderer writes Markdown as-is, optionally preceded by a YAML
// front matter block built from the page metadata.
type MarkdownRenderer struct {
	FrontMatter bool
}

// NewMarkdownRenderer creates a MarkdownRenderer.
func NewMarkdownRenderer(frontMatter bool) *MarkdownRenderer {
	return &MarkdownRenderer{FrontMatter: frontMatter}
}

// Render returns the Markdown as bytes.
func (r *MarkdownRenderer) Render(markdown string, meta core.PageMetadata) ([]byte, error) {
	if !r.FrontMatter {
		return []byte(markdown), nil
	}

	header, err := yaml.Marshal(meta)
	if err != nil {
		return nil, fmt.Errorf("marshaling front matter: %w", err)
	}

	var buf bytes.Buffer
	buf.WriteString("---\n")
	buf.Write(header)
	buf.WriteString("---\n\n")
	buf.WriteString(markdown)
	return buf.Bytes(), nil
}

// Extension returns the file extension for Markdown output.
func (r *MarkdownRenderer) Extension() string {
	return ".md"
}
