package server

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gaurav-prasanna/pagemd/core"
	"github.com/gaurav-prasanna/pagemd/core/config"
)

func newTestServer(mutate func(*config.Config)) *Server {
	cfg := config.Default()
	if mutate != nil {
		mutate(&cfg)
	}
	return NewServer(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func post(s *Server, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestServer(nil).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if rec.Body.String() != `{"status":"ok"}` {
		t.Errorf("unexpected body %q", rec.Body.String())
	}
}

func TestConvert_Markdown(t *testing.T) {
	rec := post(newTestServer(nil), "/api/convert", `<h1>Hello</h1><p>World <strong>bold</strong></p>`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/markdown") {
		t.Errorf("expected markdown content type, got %q", ct)
	}
	want := "# Hello\n\nWorld **bold**\n"
	if rec.Body.String() != want {
		t.Errorf("expected %q, got %q", want, rec.Body.String())
	}
}

func TestConvert_JSON(t *testing.T) {
	page := `<html><head><title>T</title></head><body><img src="data:image/png;base64,QUJD" alt="x"></body></html>`
	rec := post(newTestServer(nil), "/api/convert?format=json&keep_data_uris=true", page)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var res core.ConversionResult
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if res.Title != "T" {
		t.Errorf("expected title %q, got %q", "T", res.Title)
	}
	if res.Markdown != "![x](data:image/png;base64,QUJD)" {
		t.Errorf("expected full data URI, got %q", res.Markdown)
	}
}

func TestConvert_DataURITruncatedByDefault(t *testing.T) {
	rec := post(newTestServer(nil), "/api/convert", `<img src="data:image/png;base64,QUJD" alt="x">`)
	if rec.Body.String() != "![x](data:image/png;base64...)" {
		t.Errorf("expected truncated data URI, got %q", rec.Body.String())
	}
}

func TestConvert_BadRequests(t *testing.T) {
	tests := []struct {
		name   string
		target string
		body   string
		code   int
	}{
		{"empty body", "/api/convert", "  ", http.StatusBadRequest},
		{"bad format", "/api/convert?format=pdf", "<p>x</p>", http.StatusBadRequest},
		{"bad bool", "/api/convert?main_only=maybe", "<p>x</p>", http.StatusBadRequest},
	}
	s := newTestServer(nil)
	for _, tt := range tests {
		rec := post(s, tt.target, tt.body)
		if rec.Code != tt.code {
			t.Errorf("%s: expected %d, got %d", tt.name, tt.code, rec.Code)
		}
		if !strings.Contains(rec.Body.String(), `"error"`) {
			t.Errorf("%s: expected JSON error body, got %q", tt.name, rec.Body.String())
		}
	}
}

func TestConvert_BodyTooLarge(t *testing.T) {
	s := newTestServer(func(c *config.Config) { c.Server.MaxBodyBytes = 16 })
	rec := post(s, "/api/convert", "<p>"+strings.Repeat("x", 64)+"</p>")
	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Errorf("expected 413, got %d", rec.Code)
	}
}

func TestConvert_MethodNotAllowed(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestServer(nil).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/convert", nil))
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected 405, got %d", rec.Code)
	}
}
