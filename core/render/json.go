package render

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/gaurav-prasanna/pagemd/core"
	"github.com/yuin/goldmark/ast"
	extast "github.com/yuin/goldmark/extension/ast"
)

// JSONRenderer produces structured JSON output from Markdown.
type JSONRenderer struct{}

// NewJSONRenderer creates a JSONRenderer.
func NewJSONRenderer() *JSONRenderer {
	return &JSONRenderer{}
}

// Render parses the Markdown and reports its structure alongside the
// original text and page metadata.
func (r *JSONRenderer) Render(markdown string, meta core.PageMetadata) ([]byte, error) {
	src := []byte(markdown)
	doc := parseMarkdown(src)

	structure, err := collectStructure(doc, src)
	if err != nil {
		return nil, fmt.Errorf("walking markdown: %w", err)
	}
	sections, text := collectSections(doc, src)

	page := core.PageJSON{
		Metadata: meta,
		Content: core.PageContent{
			Text:     text,
			Markdown: markdown,
			Sections: sections,
		},
		Structure: structure,
	}

	data, err := json.MarshalIndent(page, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling JSON: %w", err)
	}
	return data, nil
}

// Extension returns the file extension for JSON output.
func (r *JSONRenderer) Extension() string {
	return ".json"
}

func collectStructure(doc ast.Node, src []byte) (core.PageStructure, error) {
	s := core.PageStructure{
		Headings: []core.Heading{},
		Links:    []core.Link{},
	}

	err := ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch node := n.(type) {
		case *ast.Heading:
			s.Headings = append(s.Headings, core.Heading{Level: node.Level, Text: inlineText(node, src)})
		case *ast.Link:
			s.Links = append(s.Links, core.Link{Text: inlineText(node, src), Href: string(node.Destination)})
		case *ast.AutoLink:
			url := string(node.URL(src))
			s.Links = append(s.Links, core.Link{Text: url, Href: url})
		case *ast.Image:
			s.Images++
		case *ast.FencedCodeBlock, *ast.CodeBlock:
			s.CodeBlocks++
		case *extast.Table:
			s.Tables++
		case *ast.ListItem:
			s.ListItems++
		}
		return ast.WalkContinue, nil
	})
	return s, err
}

// collectSections splits the top-level blocks at headings. Text before the
// first heading belongs to no section but is part of the plain text.
func collectSections(doc ast.Node, src []byte) ([]core.Section, string) {
	var (
		sections []core.Section
		current  *core.Section
		body     []string
		all      []string
	)

	flush := func() {
		if current != nil {
			current.Text = strings.Join(body, "\n\n")
			sections = append(sections, *current)
		}
		body = nil
	}

	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		t := blockText(n, src)
		if t != "" {
			all = append(all, t)
		}

		if h, ok := n.(*ast.Heading); ok {
			flush()
			current = &core.Section{Heading: t, Level: h.Level}
			continue
		}
		if t != "" {
			body = append(body, t)
		}
	}
	flush()

	return sections, strings.Join(all, "\n\n")
}
