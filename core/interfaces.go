// Package core defines the pipeline interfaces for pagemd.
// Each stage of the pipeline is a small interface so stages can be swapped
// and tested in isolation: fetch -> normalize -> render -> write.
package core

import (
	"context"

	"github.com/PuerkitoBio/goquery"
)

// FetchResult holds the raw HTML and response metadata from a fetch.
type FetchResult struct {
	URL        string
	StatusCode int
	HTML       string
}

// ConversionResult is what a Normalizer produces for one page.
type ConversionResult struct {
	Markdown string `json:"markdown"`
	Title    string `json:"title"`
	Language string `json:"language,omitempty"`
}

// PageMetadata holds metadata about the converted source.
type PageMetadata struct {
	URL       string `json:"url" yaml:"source"`
	Domain    string `json:"domain,omitempty" yaml:"domain,omitempty"`
	Path      string `json:"path" yaml:"-"`
	Title     string `json:"title" yaml:"title,omitempty"`
	Language  string `json:"language,omitempty" yaml:"language,omitempty"`
	FetchedAt string `json:"fetched_at" yaml:"fetched_at"` // ISO8601
}

// Section represents a heading-delimited section of content.
type Section struct {
	Heading string `json:"heading"`
	Level   int    `json:"level"`
	Text    string `json:"text"`
}

// Heading represents a single heading found in the content.
type Heading struct {
	Level int    `json:"level"`
	Text  string `json:"text"`
}

// Link represents a hyperlink found in the content.
type Link struct {
	Text string `json:"text"`
	Href string `json:"href"`
}

// PageContent holds the text and structured content of a page.
type PageContent struct {
	Text     string    `json:"text"`
	Markdown string    `json:"markdown"`
	Sections []Section `json:"sections"`
}

// PageStructure holds structural counts parsed back out of the Markdown.
type PageStructure struct {
	Headings   []Heading `json:"headings"`
	Links      []Link    `json:"links"`
	Images     int       `json:"images"`
	CodeBlocks int       `json:"code_blocks"`
	Tables     int       `json:"tables"`
	ListItems  int       `json:"list_items"`
}

// PageJSON is the complete JSON output for a single page.
type PageJSON struct {
	Metadata  PageMetadata  `json:"metadata"`
	Content   PageContent   `json:"content"`
	Structure PageStructure `json:"structure"`
}

// Fetcher retrieves raw HTML from a URL or local path.
type Fetcher interface {
	Fetch(ctx context.Context, source string) (*FetchResult, error)
}

// Extractor narrows a parsed document to the part worth converting.
type Extractor interface {
	Extract(doc *goquery.Document) (*goquery.Selection, error)
}

// Normalizer converts HTML into Markdown (the canonical format).
type Normalizer interface {
	Normalize(html string) (*ConversionResult, error)
}

// Renderer converts Markdown (and metadata) into a final output format.
type Renderer interface {
	Render(markdown string, meta PageMetadata) ([]byte, error)
	// Extension returns the file extension for this renderer (e.g. ".md", ".pdf").
	Extension() string
}
