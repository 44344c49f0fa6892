// Package config loads pagemd settings. Later layers win: built-in defaults,
// then a TOML file, then PAGEMD_* environment variables. Command-line flags
// are applied on top by the cmd package.
package config

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/gaurav-prasanna/pagemd/core/markdown"
	"github.com/gaurav-prasanna/pagemd/core/normalize"
	"github.com/gaurav-prasanna/pagemd/core/render"
)

// DefaultFile is read from the working directory when no path is given.
const DefaultFile = "pagemd.toml"

// ErrInvalid is returned when a configuration value is out of range.
var ErrInvalid = errors.New("invalid configuration")

type Config struct {
	// Engine options
	KeepDataURIs bool   `toml:"keep_data_uris"`
	MaxDepth     int    `toml:"max_depth"`
	MainOnly     bool   `toml:"main_only"`
	Engine       string `toml:"engine"`

	// Output
	Format      string `toml:"format"`
	FrontMatter bool   `toml:"front_matter"`
	OutputDir   string `toml:"output_dir"`

	// Fetching
	Jobs      int           `toml:"jobs"`
	Timeout   time.Duration `toml:"timeout"`
	UserAgent string        `toml:"user_agent"`

	Crawl  CrawlConfig  `toml:"crawl"`
	Server ServerConfig `toml:"server"`
}

type CrawlConfig struct {
	MaxPages int `toml:"max_pages"`
}

type ServerConfig struct {
	Addr         string `toml:"addr"`
	MaxBodyBytes int64  `toml:"max_body_bytes"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		MaxDepth: markdown.DefaultMaxDepth,
		Engine:   normalize.EngineNative,
		Format:   render.FormatMarkdown,
		Jobs:     runtime.GOMAXPROCS(0),
		Timeout:  30 * time.Second,
		Crawl:    CrawlConfig{MaxPages: 100},
		Server: ServerConfig{
			Addr:         ":8090",
			MaxBodyBytes: 10 << 20, // 10MB
		},
	}
}

// Load builds a Config from defaults, the TOML file at path and the
// environment. An empty path reads DefaultFile if it exists.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		if _, err := os.Stat(DefaultFile); err == nil {
			path = DefaultFile
		}
	}
	if path != "" {
		meta, err := toml.DecodeFile(path, &cfg)
		if err != nil {
			return Config{}, fmt.Errorf("reading config %s: %w", path, err)
		}
		if undecoded := meta.Undecoded(); len(undecoded) > 0 {
			keys := make([]string, len(undecoded))
			for i, k := range undecoded {
				keys[i] = k.String()
			}
			return Config{}, fmt.Errorf("%w: unknown keys in %s: %s", ErrInvalid, path, strings.Join(keys, ", "))
		}
	}

	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) applyEnv() {
	c.KeepDataURIs = envBool("PAGEMD_KEEP_DATA_URIS", c.KeepDataURIs)
	c.MaxDepth = envInt("PAGEMD_MAX_DEPTH", c.MaxDepth)
	c.MainOnly = envBool("PAGEMD_MAIN_ONLY", c.MainOnly)
	c.Engine = envOr("PAGEMD_ENGINE", c.Engine)

	c.Format = envOr("PAGEMD_FORMAT", c.Format)
	c.FrontMatter = envBool("PAGEMD_FRONT_MATTER", c.FrontMatter)
	c.OutputDir = envOr("PAGEMD_OUTPUT_DIR", c.OutputDir)

	c.Jobs = envInt("PAGEMD_JOBS", c.Jobs)
	c.Timeout = envDuration("PAGEMD_TIMEOUT", c.Timeout)
	c.UserAgent = envOr("PAGEMD_USER_AGENT", c.UserAgent)

	c.Crawl.MaxPages = envInt("PAGEMD_CRAWL_MAX_PAGES", c.Crawl.MaxPages)
	c.Server.Addr = envOr("PAGEMD_ADDR", c.Server.Addr)
	c.Server.MaxBodyBytes = envInt64("PAGEMD_MAX_BODY_BYTES", c.Server.MaxBodyBytes)
}

// Validate reports the first out-of-range value.
func (c Config) Validate() error {
	switch c.Engine {
	case normalize.EngineNative, normalize.EngineLibrary:
	default:
		return fmt.Errorf("%w: engine %q (want %s or %s)", ErrInvalid, c.Engine, normalize.EngineNative, normalize.EngineLibrary)
	}
	switch c.Format {
	case render.FormatMarkdown, render.FormatJSON, render.FormatPDF:
	default:
		return fmt.Errorf("%w: format %q", ErrInvalid, c.Format)
	}
	if c.MaxDepth <= 0 {
		return fmt.Errorf("%w: max_depth must be positive, got %d", ErrInvalid, c.MaxDepth)
	}
	if c.Jobs <= 0 {
		return fmt.Errorf("%w: jobs must be positive, got %d", ErrInvalid, c.Jobs)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("%w: timeout must be positive, got %s", ErrInvalid, c.Timeout)
	}
	if c.Crawl.MaxPages <= 0 {
		return fmt.Errorf("%w: crawl.max_pages must be positive, got %d", ErrInvalid, c.Crawl.MaxPages)
	}
	if c.Server.MaxBodyBytes <= 0 {
		return fmt.Errorf("%w: server.max_body_bytes must be positive, got %d", ErrInvalid, c.Server.MaxBodyBytes)
	}
	return nil
}

// MarkdownOptions returns the subset of settings the conversion engine reads.
func (c Config) MarkdownOptions() markdown.Options {
	return markdown.Options{KeepDataURIs: c.KeepDataURIs, MaxDepth: c.MaxDepth}
}

// NormalizeOptions returns the settings for a normalizer.
func (c Config) NormalizeOptions() normalize.Options {
	return normalize.Options{Markdown: c.MarkdownOptions(), MainOnly: c.MainOnly}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
