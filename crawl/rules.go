// Package crawl discovers the pages of a site for batch conversion.
// sitemap.xml is consulted first; without one the crawler walks links
// breadth-first from the start page.
package crawl

import (
	"net/url"
	"path"
	"strings"

	"github.com/gaurav-prasanna/pagemd/core/markdown"
)

// staticExtensions are file extensions that never hold HTML worth converting.
var staticExtensions = map[string]bool{
	".png": true, ".jpg": true, ".jpeg": true, ".gif": true,
	".svg": true, ".webp": true, ".ico": true, ".bmp": true,
	".css": true, ".js": true, ".mjs": true, ".json": true, ".xml": true,
	".woff": true, ".woff2": true, ".ttf": true, ".eot": true,
	".mp4": true, ".webm": true, ".mp3": true, ".wav": true,
	".zip": true, ".tar": true, ".gz": true,
	".pdf": true, ".doc": true, ".docx": true, ".xls": true, ".xlsx": true,
}

// IsSameSite reports whether rawURL is served from host. Hosts compare
// case-insensitively and a leading "www." is ignored on both sides.
func IsSameSite(rawURL string, host string) bool {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	return siteKey(parsed.Host) == siteKey(host)
}

func siteKey(host string) string {
	return strings.TrimPrefix(strings.ToLower(host), "www.")
}

// IsStaticAsset reports whether rawURL points at an image, stylesheet,
// script, archive or other non-HTML resource.
func IsStaticAsset(rawURL string) bool {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	return staticExtensions[strings.ToLower(path.Ext(parsed.Path))]
}

// NormalizeURL strips fragments and trailing slashes for deduplication.
func NormalizeURL(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	parsed.Fragment = ""
	parsed.RawFragment = ""
	parsed.Host = strings.ToLower(parsed.Host)
	if parsed.Path != "/" {
		parsed.Path = strings.TrimSuffix(parsed.Path, "/")
		parsed.RawPath = ""
	}
	return parsed.String()
}

// resolveLink turns an href found on base into an absolute http(s) URL.
// Links rejected by the Markdown link policy, and in-page anchors, are
// dropped so the crawl follows exactly what the converted pages link to.
func resolveLink(href string, base *url.URL) (string, bool) {
	if strings.HasPrefix(strings.TrimSpace(href), "#") {
		return "", false
	}
	safe, ok := markdown.SafeURL(href)
	if !ok {
		return "", false
	}
	ref, err := url.Parse(safe)
	if err != nil {
		return "", false
	}
	resolved := base.ResolveReference(ref)
	if resolved.Scheme != "http" && resolved.Scheme != "https" {
		return "", false
	}
	resolved.Fragment = ""
	return resolved.String(), true
}
