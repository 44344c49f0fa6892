package crawl

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/gaurav-prasanna/pagemd/core"
)

const (
	defaultMaxPages = 100
	sitemapTimeout  = 15 * time.Second
	maxSitemapBytes = 10 << 20
)

type sitemapURL struct {
	Loc string `xml:"loc"`
}

type urlSet struct {
	URLs []sitemapURL `xml:"url"`
}

// Crawler discovers same-site pages starting from a URL.
type Crawler struct {
	Fetcher  core.Fetcher
	Client   *http.Client
	MaxPages int
	Log      *slog.Logger
}

// New creates a Crawler that fetches pages with fetcher and stops after
// maxPages URLs.
func New(fetcher core.Fetcher, maxPages int, log *slog.Logger) *Crawler {
	if maxPages <= 0 {
		maxPages = defaultMaxPages
	}
	if log == nil {
		log = slog.Default()
	}
	return &Crawler{
		Fetcher:  fetcher,
		Client:   &http.Client{Timeout: sitemapTimeout},
		MaxPages: maxPages,
		Log:      log,
	}
}

// Discover returns the pages to convert for baseURL, with baseURL first.
// sitemap.xml wins when it lists any page; otherwise links are followed
// breadth-first.
func (c *Crawler) Discover(ctx context.Context, baseURL string) ([]string, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		return nil, fmt.Errorf("invalid start URL %q: must be an absolute http(s) URL", baseURL)
	}

	sitemap := fmt.Sprintf("%s://%s/sitemap.xml", parsed.Scheme, parsed.Host)
	urls, err := c.fromSitemap(ctx, sitemap, baseURL, parsed.Host)
	if err != nil {
		c.Log.Debug("sitemap unavailable, crawling links", "sitemap", sitemap, "error", err)
	} else if len(urls) > 1 {
		c.Log.Info("using sitemap", "sitemap", sitemap, "pages", len(urls))
		return urls, nil
	}

	return c.fromLinks(ctx, baseURL, parsed.Host)
}

func (c *Crawler) fromSitemap(ctx context.Context, sitemapURL, baseURL, host string) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, sitemapURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	resp, err := c.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching sitemap: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("sitemap returned %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxSitemapBytes))
	if err != nil {
		return nil, fmt.Errorf("reading sitemap: %w", err)
	}

	var set urlSet
	if err := xml.Unmarshal(body, &set); err != nil {
		return nil, fmt.Errorf("parsing sitemap: %w", err)
	}

	queue := NewQueue()
	queue.Add(NormalizeURL(baseURL))
	for _, u := range set.URLs {
		if queue.Len() >= c.MaxPages {
			break
		}
		loc := strings.TrimSpace(u.Loc)
		if IsSameSite(loc, host) && !IsStaticAsset(loc) {
			queue.Add(NormalizeURL(loc))
		}
	}
	return queue.All(), nil
}

func (c *Crawler) fromLinks(ctx context.Context, startURL, host string) ([]string, error) {
	queue := NewQueue()
	queue.Add(NormalizeURL(startURL))

	for queue.HasNext() && queue.Len() < c.MaxPages {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		current := queue.Next()

		result, err := c.Fetcher.Fetch(ctx, current)
		if err != nil {
			c.Log.Warn("skipping page", "url", current, "error", err)
			continue
		}

		links, err := extractLinks(result.HTML, current)
		if err != nil {
			c.Log.Warn("extracting links", "url", current, "error", err)
			continue
		}
		for _, link := range links {
			if queue.Len() >= c.MaxPages {
				break
			}
			if IsSameSite(link, host) && !IsStaticAsset(link) {
				queue.Add(NormalizeURL(link))
			}
		}
	}

	c.Log.Info("crawl finished", "start", startURL, "pages", queue.Len())
	return queue.All(), nil
}

// extractLinks returns the absolute targets of every <a href> on the page.
func extractLinks(html string, pageURL string) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}
	base, err := url.Parse(pageURL)
	if err != nil {
		return nil, fmt.Errorf("parsing page URL: %w", err)
	}
	if href, ok := doc.Find("base[href]").First().Attr("href"); ok {
		if ref, err := url.Parse(href); err == nil {
			base = base.ResolveReference(ref)
		}
	}

	var links []string
	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		if resolved, ok := resolveLink(href, base); ok {
			links = append(links, resolved)
		}
	})
	return links, nil
}
