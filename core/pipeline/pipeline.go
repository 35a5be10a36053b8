// Package pipeline drives one feedpipe run:
// fetch → parse → normalize → render → name → write, once per entry.
//
// Entries are independent. A broken entry is logged and skipped; a write
// failure is logged and counted, and either aborts the run (fail-fast) or
// is reported when the run ends.
package pipeline

import (
	"context"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/gaurav-prasanna/feedpipe/core"
	"github.com/gaurav-prasanna/feedpipe/core/entry"
	"github.com/gaurav-prasanna/feedpipe/core/output"
	"github.com/gaurav-prasanna/feedpipe/core/render"
	"github.com/gaurav-prasanna/feedpipe/core/slug"
	"github.com/gaurav-prasanna/feedpipe/core/xmltree"
)

// Stats summarizes a run.
type Stats struct {
	Entries int
	Written int
	Skipped int
	Failed  int
	Paths   []string
}

// Pipeline wires the stages together.
type Pipeline struct {
	fetcher    core.Fetcher
	normalizer *entry.Normalizer
	renderer   *render.TemplateRenderer
	writer     *output.Writer
	logger     *zap.Logger
	progress   io.Writer
	failFast   bool
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets the structured logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(p *Pipeline) {
		if l != nil {
			p.logger = l
		}
	}
}

// WithProgress sets where one "✓ Written" line per file is printed.
func WithProgress(w io.Writer) Option {
	return func(p *Pipeline) {
		if w != nil {
			p.progress = w
		}
	}
}

// WithFailFast aborts the run on the first write failure.
func WithFailFast(v bool) Option {
	return func(p *Pipeline) {
		p.failFast = v
	}
}

// New creates a Pipeline.
func New(
	fetcher core.Fetcher,
	normalizer *entry.Normalizer,
	renderer *render.TemplateRenderer,
	writer *output.Writer,
	opts ...Option,
) *Pipeline {
	p := &Pipeline{
		fetcher:    fetcher,
		normalizer: normalizer,
		renderer:   renderer,
		writer:     writer,
		logger:     zap.NewNop(),
		progress:   io.Discard,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run fetches and parses the feed at feedURL, then processes every entry.
// Fetch and parse failures abort before anything is written.
func (p *Pipeline) Run(ctx context.Context, feedURL, template string) (Stats, error) {
	p.logger.Debug("fetching feed", zap.String("url", feedURL))

	result, err := p.fetcher.Fetch(ctx, feedURL)
	if err != nil {
		return Stats{}, err
	}

	doc, err := xmltree.Parse(result.Body)
	if err != nil {
		return Stats{}, fmt.Errorf("%s: %w", feedURL, err)
	}
	return p.Process(ctx, doc, template)
}

// Process renders and writes every entry of doc in document order.
// Output already written is kept whatever happens later in the run.
func (p *Pipeline) Process(ctx context.Context, doc *xmltree.Document, template string) (Stats, error) {
	feed := doc.Feed()
	entries := doc.Entries()
	stats := Stats{Entries: len(entries)}

	p.logger.Info("processing feed", zap.Int("entries", len(entries)))

	for i, raw := range entries {
		if err := ctx.Err(); err != nil {
			return stats, err
		}

		e, err := p.normalizer.Normalize(raw, feed)
		if err != nil {
			p.logger.Warn("skipping entry", zap.Int("index", i), zap.Error(err))
			stats.Skipped++
			continue
		}

		res, err := p.renderer.Render(template, e)
		if err != nil {
			p.logger.Warn("skipping entry",
				zap.Int("index", i), zap.String("id", e.ID), zap.Error(err))
			stats.Skipped++
			continue
		}

		path, err := p.writer.Write(slug.For(res.Date, res.Title), []byte(res.Output))
		if err != nil {
			err = fmt.Errorf("%w: entry %d (%s): %v", core.ErrWrite, i, e.ID, err)
			p.logger.Error("write failed", zap.Int("index", i), zap.String("id", e.ID), zap.Error(err))
			stats.Failed++
			if p.failFast {
				return stats, err
			}
			continue
		}

		stats.Written++
		stats.Paths = append(stats.Paths, path)
		p.logger.Debug("entry written", zap.Int("index", i), zap.String("id", e.ID), zap.String("path", path))
		fmt.Fprintf(p.progress, "✓ Written: %s\n", path)
	}

	if stats.Failed > 0 {
		return stats, fmt.Errorf("%w: %d/%d entries failed", core.ErrWrite, stats.Failed, stats.Entries)
	}
	return stats, nil
}
