// Package pipeline wires the stages together:
// fetch -> normalize -> render -> write.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"runtime"
	"time"

	"github.com/gaurav-prasanna/pagemd/core"
	"github.com/gaurav-prasanna/pagemd/core/fetch"
	"golang.org/x/sync/errgroup"
)

// Sink stores rendered output and reports where it went.
type Sink interface {
	Write(source string, data []byte, ext string) (string, error)
}

// Pipeline converts sources end to end.
type Pipeline struct {
	Fetcher    core.Fetcher
	Normalizer core.Normalizer
	Renderer   core.Renderer
	Sink       Sink
	Log        *slog.Logger

	// Now stamps PageMetadata.FetchedAt. Defaults to time.Now.
	Now func() time.Time
}

// Result describes one converted source.
type Result struct {
	Source string
	Path   string
	Meta   core.PageMetadata
	Err    error
}

// Report collects the outcome of a batch in input order.
type Report struct {
	Results []Result
}

// Failed returns the results that carry an error.
func (r *Report) Failed() []Result {
	var failed []Result
	for _, res := range r.Results {
		if res.Err != nil {
			failed = append(failed, res)
		}
	}
	return failed
}

// Process runs one source through every stage.
func (p *Pipeline) Process(ctx context.Context, source string) (Result, error) {
	res := Result{Source: source}

	fetched, err := p.Fetcher.Fetch(ctx, source)
	if err != nil {
		return res, fmt.Errorf("fetch: %w", err)
	}

	converted, err := p.Normalizer.Normalize(fetched.HTML)
	if err != nil {
		return res, fmt.Errorf("normalize: %w", err)
	}

	res.Meta = p.metadata(source, converted)

	data, err := p.Renderer.Render(converted.Markdown, res.Meta)
	if err != nil {
		return res, fmt.Errorf("render: %w", err)
	}

	res.Path, err = p.Sink.Write(source, data, p.Renderer.Extension())
	if err != nil {
		return res, fmt.Errorf("write: %w", err)
	}

	p.logger().Debug("converted", "source", source, "path", res.Path, "bytes", len(data))
	return res, nil
}

// Run processes sources with at most jobs conversions in flight. Failures
// are recorded per source and do not stop the batch; only cancellation of
// ctx does.
func (p *Pipeline) Run(ctx context.Context, sources []string, jobs int) (*Report, error) {
	report := &Report{Results: make([]Result, len(sources))}
	if len(sources) == 0 {
		return report, nil
	}
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(sources)))

	for i, src := range sources {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				report.Results[i] = Result{Source: src, Err: err}
				return err
			}

			res, err := p.Process(gctx, src)
			res.Err = err
			if err != nil {
				p.logger().Warn("conversion failed", "source", src, "error", err)
			}
			report.Results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return report, err
	}
	return report, ctx.Err()
}

func (p *Pipeline) metadata(source string, converted *core.ConversionResult) core.PageMetadata {
	now := time.Now
	if p.Now != nil {
		now = p.Now
	}

	meta := core.PageMetadata{
		URL:       source,
		Title:     converted.Title,
		Language:  converted.Language,
		FetchedAt: now().UTC().Format(time.RFC3339),
	}
	if fetch.IsRemote(source) {
		if parsed, err := url.Parse(source); err == nil {
			meta.Domain = parsed.Host
			meta.Path = parsed.Path
		}
	} else {
		meta.Path = source
	}
	return meta
}

func (p *Pipeline) logger() *slog.Logger {
	if p.Log != nil {
		return p.Log
	}
	return slog.Default()
}
