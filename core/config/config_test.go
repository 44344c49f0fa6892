package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pagemd.toml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.MaxDepth != 512 {
		t.Errorf("expected max depth 512, got %d", cfg.MaxDepth)
	}
	if cfg.Engine != "native" || cfg.Format != "markdown" {
		t.Errorf("unexpected engine/format: %q/%q", cfg.Engine, cfg.Format)
	}
	if cfg.Server.Addr != ":8090" {
		t.Errorf("expected addr :8090, got %q", cfg.Server.Addr)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("expected defaults to validate, got %v", err)
	}
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `
keep_data_uris = true
max_depth = 64
format = "json"
timeout = "5s"

[crawl]
max_pages = 7

[server]
addr = "127.0.0.1:9000"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !cfg.KeepDataURIs {
		t.Error("expected keep_data_uris to be true")
	}
	if cfg.MaxDepth != 64 {
		t.Errorf("expected max depth 64, got %d", cfg.MaxDepth)
	}
	if cfg.Format != "json" {
		t.Errorf("expected format json, got %q", cfg.Format)
	}
	if cfg.Timeout != 5*time.Second {
		t.Errorf("expected timeout 5s, got %s", cfg.Timeout)
	}
	if cfg.Crawl.MaxPages != 7 {
		t.Errorf("expected max pages 7, got %d", cfg.Crawl.MaxPages)
	}
	if cfg.Server.Addr != "127.0.0.1:9000" {
		t.Errorf("expected addr from file, got %q", cfg.Server.Addr)
	}
	if cfg.Server.MaxBodyBytes != 10<<20 {
		t.Errorf("expected default body limit, got %d", cfg.Server.MaxBodyBytes)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "max_depth = 64\nengine = \"library\"\n")
	t.Setenv("PAGEMD_MAX_DEPTH", "8")
	t.Setenv("PAGEMD_MAIN_ONLY", "true")
	t.Setenv("PAGEMD_JOBS", "not-a-number")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.MaxDepth != 8 {
		t.Errorf("expected env max depth 8, got %d", cfg.MaxDepth)
	}
	if !cfg.MainOnly {
		t.Error("expected main_only from env")
	}
	if cfg.Engine != "library" {
		t.Errorf("expected engine from file, got %q", cfg.Engine)
	}
	if cfg.Jobs != Default().Jobs {
		t.Errorf("expected unparsable env to keep default jobs, got %d", cfg.Jobs)
	}
}

func TestLoad_UnknownKey(t *testing.T) {
	path := writeConfig(t, "max_dept = 3\n")
	_, err := Load(path)
	if !errors.Is(err, ErrInvalid) {
		t.Errorf("expected ErrInvalid, got %v", err)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"engine", func(c *Config) { c.Engine = "pandoc" }},
		{"format", func(c *Config) { c.Format = "docx" }},
		{"max depth", func(c *Config) { c.MaxDepth = 0 }},
		{"jobs", func(c *Config) { c.Jobs = -1 }},
		{"timeout", func(c *Config) { c.Timeout = 0 }},
		{"max pages", func(c *Config) { c.Crawl.MaxPages = 0 }},
		{"body limit", func(c *Config) { c.Server.MaxBodyBytes = 0 }},
	}
	for _, tt := range tests {
		cfg := Default()
		tt.mutate(&cfg)
		if err := cfg.Validate(); !errors.Is(err, ErrInvalid) {
			t.Errorf("%s: expected ErrInvalid, got %v", tt.name, err)
		}
	}
}

func TestMarkdownOptions(t *testing.T) {
	cfg := Default()
	cfg.KeepDataURIs = true
	cfg.MaxDepth = 10
	opts := cfg.MarkdownOptions()
	if !opts.KeepDataURIs || opts.MaxDepth != 10 {
		t.Errorf("unexpected markdown options: %+v", opts)
	}
	if !cfg.NormalizeOptions().Markdown.KeepDataURIs {
		t.Error("expected normalize options to carry markdown options")
	}
}
