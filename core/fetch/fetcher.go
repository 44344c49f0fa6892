// Package fetch implements the Fetcher interface.
// Sources are http(s) URLs, file:// URLs, local paths, or "-" for stdin.
// HTTP bodies are transcoded to UTF-8 according to their declared or sniffed
// charset before they reach the parser.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/gaurav-prasanna/pagemd/core"
	"golang.org/x/net/html/charset"
)

const (
	defaultTimeout   = 30 * time.Second
	defaultUserAgent = "pagemd/1.0 (https://github.com/gaurav-prasanna/pagemd)"
)

// StdinSource is the source name that reads from Fetcher.Stdin.
const StdinSource = "-"

// ErrUnsupportedSource is returned for URL schemes the fetcher cannot load.
var ErrUnsupportedSource = errors.New("unsupported source")

// Fetcher loads HTML over HTTP or from the local filesystem.
type Fetcher struct {
	client    *http.Client
	userAgent string

	// Stdin is read for the "-" source.
	Stdin io.Reader
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the HTTP client timeout. The timeout applies to a copy of
// the current client, so a client passed to WithClient is never modified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		if d > 0 {
			c := *f.client
			c.Timeout = d
			f.client = &c
		}
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		if ua != "" {
			f.userAgent = ua
		}
	}
}

// WithClient replaces the HTTP client.
func WithClient(c *http.Client) Option {
	return func(f *Fetcher) {
		if c != nil {
			f.client = c
		}
	}
}

// New creates a Fetcher with a sensible timeout.
func New(opts ...Option) *Fetcher {
	f := &Fetcher{
		client:    &http.Client{Timeout: defaultTimeout},
		userAgent: defaultUserAgent,
		Stdin:     os.Stdin,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// IsRemote reports whether source is an http(s) URL.
func IsRemote(source string) bool {
	u, err := url.Parse(source)
	if err != nil {
		return false
	}
	return u.Scheme == "http" || u.Scheme == "https"
}

// Fetch retrieves the HTML content of source.
func (f *Fetcher) Fetch(ctx context.Context, source string) (*core.FetchResult, error) {
	if source == StdinSource {
		return f.fetchReader(f.Stdin, source)
	}

	u, err := url.Parse(source)
	if err != nil || u.Scheme == "" || isWindowsDrive(u.Scheme) {
		return f.fetchFile(source)
	}

	switch u.Scheme {
	case "http", "https":
		return f.fetchHTTP(ctx, source)
	case "file":
		return f.fetchFile(u.Path)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedSource, source)
	}
}

func (f *Fetcher) fetchHTTP(ctx context.Context, rawURL string) (*core.FetchResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("unexpected status %d for %s", resp.StatusCode, rawURL)
	}

	body, err := charset.NewReader(resp.Body, resp.Header.Get("Content-Type"))
	if err != nil {
		return nil, fmt.Errorf("detecting charset: %w", err)
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	return &core.FetchResult{
		URL:        rawURL,
		StatusCode: resp.StatusCode,
		HTML:       string(data),
	}, nil
}

func (f *Fetcher) fetchFile(path string) (*core.FetchResult, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer file.Close()
	return f.fetchReader(file, path)
}

func (f *Fetcher) fetchReader(r io.Reader, name string) (*core.FetchResult, error) {
	if r == nil {
		return nil, fmt.Errorf("%w: no reader for %s", ErrUnsupportedSource, name)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", name, err)
	}
	return &core.FetchResult{URL: name, HTML: string(data)}, nil
}

// isWindowsDrive treats "c:" style prefixes as paths rather than schemes.
func isWindowsDrive(scheme string) bool {
	return len(scheme) == 1 && strings.ContainsAny(strings.ToLower(scheme), "abcdefghijklmnopqrstuvwxyz")
}
