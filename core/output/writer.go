// Package output handles file naming and writing for pagemd outputs.
// The flat layout derives one filename from the whole source
// (https://example.com/docs/intro -> example_com_docs_intro.md). The mirrored
// layout reproduces the URL path under the output directory, which is what
// crawls use. An output directory of "-" streams everything to stdout.
package output

import (
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Stdout is the OutputDir value that writes to the Writer's Stdout.
const Stdout = "-"

// Layout selects how output paths are derived from sources.
type Layout int

const (
	// Flat writes every output directly into OutputDir.
	Flat Layout = iota
	// Mirrored recreates the source URL path below OutputDir.
	Mirrored
)

// Writer writes rendered output to disk or stdout. It is safe for
// concurrent use.
type Writer struct {
	OutputDir string
	Layout    Layout

	mu     sync.Mutex
	stdout io.Writer
}

// New creates a Writer targeting the given output directory.
// If outputDir is empty, it defaults to the current working directory.
func New(outputDir string, layout Layout) (*Writer, error) {
	w := &Writer{OutputDir: outputDir, Layout: layout, stdout: os.Stdout}
	if outputDir == Stdout {
		return w, nil
	}

	if outputDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getting working directory: %w", err)
		}
		w.OutputDir = wd
	}

	if err := os.MkdirAll(w.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}
	return w, nil
}

// NewStream creates a Writer that sends all output to out.
func NewStream(out io.Writer) *Writer {
	return &Writer{OutputDir: Stdout, stdout: out}
}

// Write stores data for source and returns where it went.
func (w *Writer) Write(source string, data []byte, ext string) (string, error) {
	if w.OutputDir == Stdout {
		w.mu.Lock()
		defer w.mu.Unlock()
		if _, err := w.stdout.Write(data); err != nil {
			return "", fmt.Errorf("writing to stdout: %w", err)
		}
		return Stdout, nil
	}

	rel := Filename(source)
	if w.Layout == Mirrored {
		rel = mirroredPath(source)
	}
	path := filepath.Join(w.OutputDir, rel+ext)

	if dir := filepath.Dir(path); dir != w.OutputDir {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", fmt.Errorf("creating directory %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("writing file %s: %w", path, err)
	}
	return path, nil
}

// Filename converts a source into a flat filename without extension.
// URLs become host_path_segments; local files keep their base name.
func Filename(source string) string {
	parsed, err := url.Parse(source)
	if err != nil || parsed.Host == "" {
		base := filepath.Base(source)
		if source == Stdout || base == "." || base == string(filepath.Separator) {
			return "stdin"
		}
		return sanitize(strings.TrimSuffix(base, filepath.Ext(base)))
	}

	parts := []string{sanitize(parsed.Host)}
	path := strings.Trim(parsed.Path, "/")
	if path != "" {
		for _, seg := range strings.Split(path, "/") {
			parts = append(parts, sanitize(seg))
		}
	}
	return strings.Join(parts, "_")
}

// mirroredPath maps https://site.com/docs/intro to docs/intro and the site
// root to index. Non-URL sources fall back to the flat name.
func mirroredPath(source string) string {
	parsed, err := url.Parse(source)
	if err != nil || parsed.Host == "" {
		return Filename(source)
	}

	urlPath := strings.Trim(parsed.Path, "/")
	if urlPath == "" {
		return "index"
	}
	urlPath = strings.TrimSuffix(urlPath, filepath.Ext(urlPath))

	segs := strings.Split(urlPath, "/")
	for i, seg := range segs {
		segs[i] = sanitize(seg)
	}
	return filepath.Join(segs...)
}

// sanitize replaces characters other than ASCII letters, digits and '-'
// with underscores.
func sanitize(s string) string {
	var b strings.Builder
	for _, ch := range s {
		if (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || (ch >= '0' && ch <= '9') || ch == '-' {
			b.WriteRune(ch)
		} else {
			b.WriteRune('_')
		}
	}
	return b.String()
}
