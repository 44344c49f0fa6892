package normalize

import (
	"fmt"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/PuerkitoBio/goquery"
	"github.com/gaurav-prasanna/pagemd/core"
	"github.com/gaurav-prasanna/pagemd/core/extract"
)

// LibraryNormalizer converts HTML using html-to-markdown. It shares title and
// content selection with MarkdownNormalizer so the two engines can be
// compared on identical input. Only MainOnly is honoured.
type LibraryNormalizer struct {
	opts      Options
	extractor core.Extractor
}

// NewLibrary creates a LibraryNormalizer.
func NewLibrary(opts Options) *LibraryNormalizer {
	return &LibraryNormalizer{opts: opts, extractor: extract.New()}
}

// Normalize converts the selected content with html-to-markdown.
func (n *LibraryNormalizer) Normalize(html string) (*core.ConversionResult, error) {
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
	fragment, err := goquery.OuterHtml(content)
	if err != nil {
		return nil, fmt.Errorf("serializing content: %w", err)
	}

	md, err := htmltomarkdown.ConvertString(fragment)
	if err != nil {
		return nil, fmt.Errorf("converting HTML to markdown: %w", err)
	}
	result.Markdown = md
	return result, nil
}
