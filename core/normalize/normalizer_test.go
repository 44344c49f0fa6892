package normalize

import (
	"errors"
	"strings"
	"testing"

	"github.com/gaurav-prasanna/pagemd/core/markdown"
)

const page = `<!DOCTYPE html>
<html lang="en">
<head>
  <title>Guide</title>
  <style>body { color: red }</style>
</head>
<body>
  <nav><a href="/">Home</a></nav>
  <header>Banner</header>
  <main>
    <h1>Install</h1>
    <p>Run <code>make</code> then <a href="javascript:go()">go</a>.</p>
    <img src="data:image/png;base64,AAAA" alt="logo">
  </main>
  <footer>(c) 2024</footer>
</body>
</html>`

func TestMarkdownNormalizer_Normalize(t *testing.T) {
	res, err := New(Options{}).Normalize(page)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Title != "Guide" {
		t.Errorf("expected title %q, got %q", "Guide", res.Title)
	}
	if res.Language != "en" {
		t.Errorf("expected language %q, got %q", "en", res.Language)
	}

	want := "Banner\n\n# Install\n\nRun `make` then go.\n\n![logo](data:image/png;base64...)\n\n"
	if res.Markdown != want {
		t.Errorf("expected %q, got %q", want, res.Markdown)
	}
	for _, leaked := range []string{"color: red", "Home", "(c) 2024"} {
		if strings.Contains(res.Markdown, leaked) {
			t.Errorf("expected %q to be excluded, got %q", leaked, res.Markdown)
		}
	}
}

func TestMarkdownNormalizer_MainOnlyAndDataURIs(t *testing.T) {
	n := New(Options{MainOnly: true, Markdown: markdown.Options{KeepDataURIs: true}})
	res, err := n.Normalize(page)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(res.Markdown, "Banner") {
		t.Errorf("expected header to be removed, got %q", res.Markdown)
	}
	if !strings.HasPrefix(res.Markdown, "# Install\n") {
		t.Errorf("expected markdown to start with heading, got %q", res.Markdown)
	}
	if !strings.Contains(res.Markdown, "](data:image/png;base64,AAAA)") {
		t.Errorf("expected full data URI, got %q", res.Markdown)
	}
}

func TestMarkdownNormalizer_Fragment(t *testing.T) {
	res, err := New(Options{}).Normalize(`<h1>Hello World</h1>`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Markdown != "# Hello World\n" {
		t.Errorf("expected %q, got %q", "# Hello World\n", res.Markdown)
	}
	if res.Title != "" {
		t.Errorf("expected empty title, got %q", res.Title)
	}
}

func TestMarkdownNormalizer_EmptyInput(t *testing.T) {
	_, err := New(Options{}).Normalize("  \n ")
	if !errors.Is(err, ErrEmptyInput) {
		t.Errorf("expected ErrEmptyInput, got %v", err)
	}
}

func TestNewForEngine(t *testing.T) {
	tests := []struct {
		engine  string
		wantErr bool
	}{
		{"", false},
		{EngineNative, false},
		{EngineLibrary, false},
		{"pandoc", true},
	}
	for _, tt := range tests {
		_, err := NewForEngine(tt.engine, Options{})
		if (err != nil) != tt.wantErr {
			t.Errorf("engine %q: expected error=%v, got %v", tt.engine, tt.wantErr, err)
		}
	}
}

func TestLibraryNormalizer_Normalize(t *testing.T) {
	res, err := NewLibrary(Options{MainOnly: true}).Normalize(page)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Title != "Guide" {
		t.Errorf("expected title %q, got %q", "Guide", res.Title)
	}
	if !strings.Contains(res.Markdown, "# Install") {
		t.Errorf("expected heading in output, got %q", res.Markdown)
	}
}
