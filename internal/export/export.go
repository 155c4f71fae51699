// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package export drives a full export run: it selects publishable pages,
// renders each one to Markdown with front matter, writes it under the
// content directory and clears the page's publish flag.
package export

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"golang.org/x/sync/errgroup"

	"github.com/pdiddy/notion-export/internal/frontmatter"
	"github.com/pdiddy/notion-export/internal/layout"
	"github.com/pdiddy/notion-export/internal/ledger"
	"github.com/pdiddy/notion-export/internal/metrics"
	"github.com/pdiddy/notion-export/internal/render"
	"github.com/pdiddy/notion-export/pkg/types"
)

// Source lists publishable pages and acknowledges exported ones.
type Source interface {
	QueryPublishable(ctx context.Context) ([]types.PageMeta, error)
	MarkExported(ctx context.Context, pageID string) error
}

// Recorder stores the history of successful exports.
type Recorder interface {
	Record(ctx context.Context, e ledger.Entry) error
}

// Outcome describes one exported page.
type Outcome struct {
	PageID  string
	Title   string
	DocPath string
	Assets  int
}

// PageFailure pairs a page with the error that stopped it.
type PageFailure struct {
	PageID string
	Title  string
	Err    error
}

// BatchResult holds the outcome of an export run.
type BatchResult struct {
	Exported int
	Skipped  int
	Failed   int
	Outcomes []Outcome
	Failures []PageFailure
}

// Total returns the number of pages considered.
func (r BatchResult) Total() int {
	return r.Exported + r.Skipped + r.Failed
}

// HasFailures reports whether any page failed.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// Exporter runs exports against a Source.
type Exporter struct {
	source  Source
	loader  render.ChildLoader
	assets  render.AssetMaterializer
	fs      afero.Fs
	cfg     types.ExportConfig
	ledger  Recorder
	metrics *metrics.Run
	log     logrus.FieldLogger
}

// Option configures an Exporter.
type Option func(*Exporter)

// WithLedger records every successful export in r.
func WithLedger(r Recorder) Option {
	return func(e *Exporter) { e.ledger = r }
}

// WithMetrics collects run metrics into m.
func WithMetrics(m *metrics.Run) Option {
	return func(e *Exporter) { e.metrics = m }
}

// WithLogger sets the logger used for diagnostics.
func WithLogger(log logrus.FieldLogger) Option {
	return func(e *Exporter) { e.log = log }
}

// New returns an Exporter. Pages come from source, block children from
// loader, hosted files are saved through assets and documents are written
// to fs.
func New(source Source, loader render.ChildLoader, assets render.AssetMaterializer, fs afero.Fs, cfg types.ExportConfig, opts ...Option) *Exporter {
	e := &Exporter{
		source: source,
		loader: loader,
		assets: assets,
		fs:     fs,
		cfg:    cfg,
		log:    logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Run exports every publishable page and prints one status line per page
// followed by a summary. With ContinueOnError a failed page is reported
// and the run goes on; otherwise the first failure stops the run, the
// remaining pages, including those it interrupts, are skipped and the
// error is returned.
func (e *Exporter) Run(ctx context.Context, w io.Writer) (BatchResult, error) {
	pages, err := e.source.QueryPublishable(ctx)
	if err != nil {
		return BatchResult{}, fmt.Errorf("querying publishable pages: %w", err)
	}
	fmt.Fprintf(w, "found %d publishable page(s)\n", len(pages))

	workers := e.cfg.Workers
	if workers <= 0 {
		workers = 1
	}

	var (
		mu     sync.Mutex
		result BatchResult
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for _, page := range pages {
		g.Go(func() error {
			if gctx.Err() != nil {
				mu.Lock()
				result.Skipped++
				fmt.Fprintf(w, "skipped:  %s\n", pageLabel(page))
				mu.Unlock()
				return nil
			}

			start := time.Now()
			out, err := e.ExportPage(gctx, page)

			mu.Lock()
			defer mu.Unlock()
			if err != nil && gctx.Err() != nil && errors.Is(err, context.Canceled) {
				// Interrupted by an earlier failure or by the caller.
				result.Skipped++
				fmt.Fprintf(w, "skipped:  %s\n", pageLabel(page))
				return nil
			}
			if err != nil {
				e.observe(metrics.StatusFailed, start)
				result.Failed++
				result.Failures = append(result.Failures, PageFailure{PageID: page.ID, Title: page.Title, Err: err})
				fmt.Fprintf(w, "failed:   %s (%v)\n", pageLabel(page), err)
				e.log.WithError(err).WithField("page", page.ID).Error("page export failed")
				if !e.cfg.ContinueOnError {
					return fmt.Errorf("exporting %s: %w", pageLabel(page), err)
				}
				return nil
			}

			e.observe(metrics.StatusExported, start)
			result.Exported++
			result.Outcomes = append(result.Outcomes, out)
			fmt.Fprintf(w, "exported: %s -> %s\n", pageLabel(page), out.DocPath)
			return nil
		})
	}
	runErr := g.Wait()
	if runErr == nil {
		runErr = ctx.Err()
	}

	fmt.Fprintf(w, "\nBatch summary: %d exported, %d skipped, %d failed (total: %d)\n",
		result.Exported, result.Skipped, result.Failed, result.Total())
	return result, runErr
}

// ExportPage writes one page and then clears its publish flag. The flag is
// only touched after the document is on disk, and not at all in dry-run
// mode.
func (e *Exporter) ExportPage(ctx context.Context, page types.PageMeta) (Outcome, error) {
	target, err := layout.Resolve(e.cfg.ContentDir, page.Slug, page.PublishDate)
	if err != nil {
		return Outcome{}, fmt.Errorf("resolving output path: %w", err)
	}

	assets := &countingAssets{inner: e.assets}

	header, err := frontmatter.NewBuilder(assets, e.cfg.Properties).Build(ctx, page, target.Dir)
	if err != nil {
		return Outcome{}, fmt.Errorf("building front matter: %w", err)
	}

	blocks, err := e.loader.LoadChildren(ctx, page.ID)
	if err != nil {
		return Outcome{}, fmt.Errorf("loading blocks: %w", err)
	}

	body, err := e.newRenderer(assets).Render(ctx, blocks, target.Dir, 0)
	if err != nil {
		return Outcome{}, fmt.Errorf("rendering: %w", err)
	}

	if err := e.persist(target, header+body); err != nil {
		return Outcome{}, err
	}

	out := Outcome{
		PageID:  page.ID,
		Title:   page.Title,
		DocPath: target.DocPath,
		Assets:  int(assets.saved.Load()),
	}

	if e.ledger != nil {
		if err := e.ledger.Record(ctx, ledger.Entry{
			PageID:  out.PageID,
			Title:   out.Title,
			DocPath: out.DocPath,
			Assets:  out.Assets,
		}); err != nil {
			e.log.WithError(err).WithField("page", page.ID).Warn("ledger record failed")
		}
	}

	if e.cfg.DryRun {
		e.log.WithField("page", page.ID).Debug("dry run, publish flag left set")
		return out, nil
	}
	if err := e.source.MarkExported(ctx, page.ID); err != nil {
		return out, fmt.Errorf("marking exported: %w", err)
	}
	return out, nil
}

func (e *Exporter) newRenderer(assets render.AssetMaterializer) *render.Renderer {
	opts := []render.Option{
		render.WithLogger(e.log),
		render.WithPageLinkBase(e.cfg.PageLinkBase),
	}
	if e.metrics != nil {
		opts = append(opts, render.WithUnsupportedHook(e.metrics.Unsupported))
	}
	return render.New(e.loader, assets, opts...)
}

func (e *Exporter) persist(target layout.OutputTarget, doc string) error {
	if err := e.fs.MkdirAll(target.Dir, 0o755); err != nil {
		return fmt.Errorf("creating directory %s: %w", target.Dir, err)
	}
	if err := afero.WriteFile(e.fs, target.DocPath, []byte(doc), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", target.DocPath, err)
	}
	return nil
}

func (e *Exporter) observe(status string, start time.Time) {
	if e.metrics != nil {
		e.metrics.ObservePage(status, time.Since(start))
	}
}

func pageLabel(p types.PageMeta) string {
	if p.Title != "" {
		return fmt.Sprintf("%q (%s)", p.Title, p.ID)
	}
	return p.ID
}

// countingAssets counts the files saved for one page.
type countingAssets struct {
	inner render.AssetMaterializer
	saved atomic.Int32
}

func (c *countingAssets) Materialize(ctx context.Context, rawURL, dir string) (string, error) {
	name, err := c.inner.Materialize(ctx, rawURL, dir)
	if err == nil {
		c.saved.Add(1)
	}
	return name, err
}
