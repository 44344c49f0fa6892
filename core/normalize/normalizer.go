// Package normalize implements the Normalizer interface.
// It turns an HTML page into Markdown, the canonical intermediate format for
// all downstream renderers. Two engines are available: the native engine in
// core/markdown, and html-to-markdown as a reference implementation.
package normalize

import (
	"errors"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/gaurav-prasanna/pagemd/core"
	"github.com/gaurav-prasanna/pagemd/core/dom"
	"github.com/gaurav-prasanna/pagemd/core/extract"
	"github.com/gaurav-prasanna/pagemd/core/markdown"
)

// Engine names accepted by NewForEngine.
const (
	EngineNative  = "native"
	EngineLibrary = "library"
)

// ErrEmptyInput is returned for blank HTML input.
var ErrEmptyInput = errors.New("empty HTML input")

// Options configures a normalizer.
type Options struct {
	Markdown markdown.Options

	// MainOnly converts only the main content container instead of <body>.
	MainOnly bool
}

// NewForEngine returns the Normalizer for the named engine.
func NewForEngine(engine string, opts Options) (core.Normalizer, error) {
	switch engine {
	case "", EngineNative:
		return New(opts), nil
	case EngineLibrary:
		return NewLibrary(opts), nil
	default:
		return nil, fmt.Errorf("unknown engine %q (want %s or %s)", engine, EngineNative, EngineLibrary)
	}
}

// MarkdownNormalizer converts HTML with the native engine.
type MarkdownNormalizer struct {
	opts      Options
	extractor core.Extractor
}

// New creates a MarkdownNormalizer.
func New(opts Options) *MarkdownNormalizer {
	return &MarkdownNormalizer{opts: opts, extractor: extract.New()}
}

// Normalize parses html, picks the content root and renders it.
func (n *MarkdownNormalizer) Normalize(html string) (*core.ConversionResult, error) {
	doc, err := parseDocument(html)
	if err != nil {
		return nil, err
	}
	result := &core.ConversionResult{
		Title:    extract.Title(doc),
		Language: extract.Language(doc),
	}

	content, err := selectContent(doc, n.opts.MainOnly, n.extractor)
	if err != nil {
		return nil, err
	}
	if content.Length() == 0 {
		return result, nil
	}

	root := dom.FromHTML(content.Get(0))
	result.Markdown = markdown.Convert(root, n.opts.Markdown)
	return result, nil
}

func parseDocument(html string) (*goquery.Document, error) {
	if strings.TrimSpace(html) == "" {
		return nil, ErrEmptyInput
	}
	root, err := dom.Parse(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}
	return goquery.NewDocumentFromNode(root), nil
}

func selectContent(doc *goquery.Document, mainOnly bool, ex core.Extractor) (*goquery.Selection, error) {
	if !mainOnly {
		return extract.Body(doc), nil
	}
	sel, err := ex.Extract(doc)
	if err != nil {
		return nil, fmt.Errorf("extracting main content: %w", err)
	}
	return sel, nil
}
