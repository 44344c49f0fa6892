package fetch

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestFetch_HTTP(t *testing.T) {
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte("<h1>Hi</h1>"))
	}))
	defer srv.Close()

	res, err := New(WithUserAgent("test-agent")).Fetch(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.HTML != "<h1>Hi</h1>" {
		t.Errorf("expected body %q, got %q", "<h1>Hi</h1>", res.HTML)
	}
	if res.StatusCode != http.StatusOK {
		t.Errorf("expected status 200, got %d", res.StatusCode)
	}
	if gotUA != "test-agent" {
		t.Errorf("expected user agent %q, got %q", "test-agent", gotUA)
	}
}

func TestFetch_HTTPTranscodesCharset(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=iso-8859-1")
		w.Write([]byte("<p>caf\xe9</p>"))
	}))
	defer srv.Close()

	res, err := New().Fetch(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.HTML != "<p>café</p>" {
		t.Errorf("expected UTF-8 body %q, got %q", "<p>café</p>", res.HTML)
	}
}

func TestFetch_HTTPStatusError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	if _, err := New().Fetch(context.Background(), srv.URL); err == nil {
		t.Fatal("expected error for 404")
	}
}

func TestFetch_LocalFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "page.html")
	if err := os.WriteFile(path, []byte("<p>local</p>"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	for _, src := range []string{path, "file://" + path} {
		res, err := New().Fetch(context.Background(), src)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", src, err)
		}
		if res.HTML != "<p>local</p>" {
			t.Errorf("%s: expected %q, got %q", src, "<p>local</p>", res.HTML)
		}
	}
}

func TestFetch_Stdin(t *testing.T) {
	f := New()
	f.Stdin = strings.NewReader("<p>piped</p>")
	res, err := f.Fetch(context.Background(), StdinSource)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.HTML != "<p>piped</p>" {
		t.Errorf("expected %q, got %q", "<p>piped</p>", res.HTML)
	}
}

func TestFetch_UnsupportedScheme(t *testing.T) {
	_, err := New().Fetch(context.Background(), "ftp://example.com/index.html")
	if !errors.Is(err, ErrUnsupportedSource) {
		t.Errorf("expected ErrUnsupportedSource, got %v", err)
	}
}

func TestIsRemote(t *testing.T) {
	tests := []struct {
		src  string
		want bool
	}{
		{"https://example.com", true},
		{"http://example.com/a", true},
		{"docs/index.html", false},
		{"file:///tmp/x.html", false},
	}
	for _, tt := range tests {
		if got := IsRemote(tt.src); got != tt.want {
			t.Errorf("IsRemote(%q): expected %v, got %v", tt.src, tt.want, got)
		}
	}
}

func TestWithTimeout_KeepsSuppliedClient(t *testing.T) {
	shared := &http.Client{}
	f := New(WithClient(shared), WithTimeout(5*time.Second))
	if shared.Timeout != 0 {
		t.Errorf("expected supplied client to be untouched, got timeout %v", shared.Timeout)
	}
	if f.client.Timeout != 5*time.Second {
		t.Errorf("expected 5s, got %v", f.client.Timeout)
	}

	f = New(WithTimeout(time.Second), WithClient(shared))
	if f.client != shared {
		t.Error("expected later WithClient to win")
	}
}
