// Package extract implements the Extractor interface and the small document
// heuristics the converter needs before rendering:
//  1. Title lookup (<title>, falling back to the Open Graph title)
//  2. Body selection, so <head> never reaches the engine
//  3. Optional main-content isolation with noise removal
package extract

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// noiseSelectors are removed before main-content isolation. Images and
// figures stay: the engine renders them.
var noiseSelectors = []string{
	"noscript", "header", "aside",
	"iframe", "video", "audio",
	"svg", "canvas",
	"select", "textarea",
	".sidebar", ".menu", ".navigation", ".ads", ".advertisement",
	"[role=navigation]", "[aria-hidden=true]",
}

// containerTags are tried in order when isolating the main content.
var containerTags = []string{"main", "article", "body"}

// MainContentExtractor strips noise and returns the best content container.
type MainContentExtractor struct{}

// New creates a MainContentExtractor.
func New() *MainContentExtractor {
	return &MainContentExtractor{}
}

// Extract removes noise from doc (in place) and returns the first <main>,
// <article> or <body> found.
func (e *MainContentExtractor) Extract(doc *goquery.Document) (*goquery.Selection, error) {
	for _, sel := range noiseSelectors {
		doc.Find(sel).Remove()
	}

	for _, tag := range containerTags {
		sel := doc.Find(tag)
		if sel.Length() > 0 {
			return sel.First(), nil
		}
	}
	return nil, fmt.Errorf("no content container found in HTML")
}

// Title returns the <title> text, or the og:title meta content when the
// document has no usable <title>.
func Title(doc *goquery.Document) string {
	if t := strings.TrimSpace(doc.Find("title").First().Text()); t != "" {
		return t
	}
	og, _ := doc.Find(`meta[property="og:title"]`).First().Attr("content")
	return strings.TrimSpace(og)
}

// Language returns the lang attribute of the <html> element, if any.
func Language(doc *goquery.Document) string {
	lang, _ := doc.Find("html").First().Attr("lang")
	return strings.TrimSpace(lang)
}

// Body returns the <body> element, or the whole document when there is none.
func Body(doc *goquery.Document) *goquery.Selection {
	if body := doc.Find("body"); body.Length() > 0 {
		return body.First()
	}
	return doc.Selection
}
