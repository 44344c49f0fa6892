// Package cmd: convert command.
// Orchestrates fetch -> normalize -> render -> write for every source, and
// expands sources into whole sites with --crawl.
package cmd

import (
	"fmt"
	"io"
	"time"

	"github.com/gaurav-prasanna/pagemd/core/fetch"
	"github.com/gaurav-prasanna/pagemd/core/normalize"
	"github.com/gaurav-prasanna/pagemd/core/output"
	"github.com/gaurav-prasanna/pagemd/core/pipeline"
	"github.com/gaurav-prasanna/pagemd/core/render"
	"github.com/gaurav-prasanna/pagemd/crawl"
	"github.com/spf13/cobra"
)

var (
	flagFormat       string
	flagFrontMatter  bool
	flagKeepDataURIs bool
	flagMaxDepth     int
	flagMainOnly     bool
	flagEngine       string
	flagOutputDir    string
	flagJobs         int
	flagTimeout      time.Duration
	flagUserAgent    string
	flagCrawl        bool
	flagMaxPages     int
)

var convertCmd = &cobra.Command{
	Use:   "convert <source>...",
	Short: "Convert HTML pages to Markdown, JSON or PDF",
	Long: `Convert fetches each source (an http(s) URL, a local file, a file:// URL,
or "-" for stdin), turns its HTML into Markdown and writes the result in the
chosen format.

Examples:
  pagemd convert https://example.com
  pagemd convert page.html -o -
  pagemd convert https://example.com/docs --crawl --format json -o ./out
  curl -s https://example.com | pagemd convert - --main-only -o -`,
	Args: cobra.MinimumNArgs(1),
	RunE: runConvert,
}

func init() {
	rootCmd.AddCommand(convertCmd)

	f := convertCmd.Flags()
	f.StringVarP(&flagFormat, "format", "f", render.FormatMarkdown, "Output format: markdown, json or pdf")
	f.BoolVar(&flagFrontMatter, "front-matter", false, "Prepend YAML front matter to Markdown output")
	f.BoolVar(&flagKeepDataURIs, "keep-data-uris", false, "Keep inline data: image payloads instead of truncating them")
	f.IntVar(&flagMaxDepth, "max-depth", 0, "Element nesting depth rendered structurally (default 512)")
	f.BoolVar(&flagMainOnly, "main-only", false, "Convert only the main content area")
	f.StringVar(&flagEngine, "engine", normalize.EngineNative, "Conversion engine: native or library")
	f.StringVarP(&flagOutputDir, "output_dir", "o", "", `Output directory, or "-" for stdout (default: current directory)`)
	f.IntVarP(&flagJobs, "jobs", "j", 0, "Sources converted in parallel (default: number of CPUs)")
	f.DurationVar(&flagTimeout, "timeout", 0, "HTTP timeout per request (default 30s)")
	f.StringVar(&flagUserAgent, "user-agent", "", "User-Agent header for HTTP requests")
	f.BoolVar(&flagCrawl, "crawl", false, "Convert every page discovered from each URL")
	f.IntVar(&flagMaxPages, "max-pages", 0, "Page limit per crawl (default 100)")
}

// applyConvertFlags copies explicitly set flags over the loaded config.
func applyConvertFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	if f.Changed("format") {
		cfg.Format = flagFormat
	}
	if f.Changed("front-matter") {
		cfg.FrontMatter = flagFrontMatter
	}
	if f.Changed("keep-data-uris") {
		cfg.KeepDataURIs = flagKeepDataURIs
	}
	if f.Changed("max-depth") {
		cfg.MaxDepth = flagMaxDepth
	}
	if f.Changed("main-only") {
		cfg.MainOnly = flagMainOnly
	}
	if f.Changed("engine") {
		cfg.Engine = flagEngine
	}
	if f.Changed("output_dir") {
		cfg.OutputDir = flagOutputDir
	}
	if f.Changed("jobs") {
		cfg.Jobs = flagJobs
	}
	if f.Changed("timeout") {
		cfg.Timeout = flagTimeout
	}
	if f.Changed("user-agent") {
		cfg.UserAgent = flagUserAgent
	}
	if f.Changed("max-pages") {
		cfg.Crawl.MaxPages = flagMaxPages
	}
}

func runConvert(cmd *cobra.Command, args []string) error {
	applyConvertFlags(cmd)
	if err := cfg.Validate(); err != nil {
		return err
	}

	fetcher := fetch.New(fetch.WithTimeout(cfg.Timeout), fetch.WithUserAgent(cfg.UserAgent))
	fetcher.Stdin = cmd.InOrStdin()

	normalizer, err := normalize.NewForEngine(cfg.Engine, cfg.NormalizeOptions())
	if err != nil {
		return err
	}
	renderer, err := render.ForFormat(cfg.Format, cfg.FrontMatter)
	if err != nil {
		return err
	}

	layout := output.Flat
	if flagCrawl {
		layout = output.Mirrored
	}
	var writer *output.Writer
	if cfg.OutputDir == output.Stdout {
		writer = output.NewStream(cmd.OutOrStdout())
	} else if writer, err = output.New(cfg.OutputDir, layout); err != nil {
		return fmt.Errorf("initializing output writer: %w", err)
	}

	// Status lines must not interleave with documents streamed to stdout.
	status := cmd.OutOrStdout()
	if cfg.OutputDir == output.Stdout {
		status = cmd.ErrOrStderr()
	}

	sources := args
	if flagCrawl {
		if sources, err = discover(cmd, fetcher, args, status); err != nil {
			return err
		}
	}

	p := &pipeline.Pipeline{
		Fetcher:    fetcher,
		Normalizer: normalizer,
		Renderer:   renderer,
		Sink:       writer,
		Log:        logger,
	}
	report, err := p.Run(cmd.Context(), sources, cfg.Jobs)
	if err != nil {
		return err
	}

	for _, res := range report.Results {
		if res.Err != nil {
			statusf(status, failColor, "✗ %s: %v", res.Source, res.Err)
		} else if res.Path != output.Stdout {
			statusf(status, okColor, "✓ Written: %s", res.Path)
		}
	}

	if failed := len(report.Failed()); failed > 0 {
		return fmt.Errorf("%d/%d sources failed", failed, len(sources))
	}
	return nil
}

// discover expands every URL argument into the pages of its site. Local
// sources are passed through unchanged.
func discover(cmd *cobra.Command, fetcher *fetch.Fetcher, args []string, status io.Writer) ([]string, error) {
	crawler := crawl.New(fetcher, cfg.Crawl.MaxPages, logger)
	seen := make(map[string]bool)
	var sources []string

	for _, arg := range args {
		pages := []string{arg}
		if fetch.IsRemote(arg) {
			fmt.Fprintf(status, "Discovering pages from %s...\n", arg)
			found, err := crawler.Discover(cmd.Context(), arg)
			if err != nil {
				return nil, fmt.Errorf("discovering pages: %w", err)
			}
			fmt.Fprintf(status, "Found %d pages to process\n", len(found))
			pages = found
		}
		for _, page := range pages {
			if !seen[page] {
				seen[page] = true
				sources = append(sources, page)
			}
		}
	}
	return sources, nil
}
