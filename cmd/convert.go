// Package cmd — convert command.
// This is the main command that orchestrates the pipeline:
// fetch → parse → normalize → render → write, once per feed entry.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gaurav-prasanna/feedpipe/config"
	"github.com/gaurav-prasanna/feedpipe/core/convert"
	"github.com/gaurav-prasanna/feedpipe/core/entry"
	"github.com/gaurav-prasanna/feedpipe/core/extract"
	"github.com/gaurav-prasanna/feedpipe/core/fetch"
	"github.com/gaurav-prasanna/feedpipe/core/output"
	"github.com/gaurav-prasanna/feedpipe/core/pipeline"
	"github.com/gaurav-prasanna/feedpipe/core/render"
	"github.com/gaurav-prasanna/feedpipe/logging"
)

func newConvertCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "convert [feed_url] [template_file] [output_dir]",
		Short: "Write one Markdown file per feed entry",
		Long: `Convert fetches a feed, normalizes every entry (Atom, RSS, Media-RSS),
fills the entry into the template and writes <output_dir>/<date>-<title>.md.

Inputs may also come from flags, FEEDPIPE_* environment variables, or
GitHub Action inputs (INPUT_FEED_URL, INPUT_TEMPLATE_FILE, INPUT_OUTPUT_DIR).

Template placeholders:
  [ID] [DATE] [LINK] [TITLE] [DESCRIPTION] [CONTENT] [MARKDOWN] [AUTHOR]
  [VIDEO] [IMAGE] [IMAGES] [CATEGORIES] [VIEWS] [RATING]

Examples:
  feedpipe convert https://example.com/feed.xml template.md ./posts
  feedpipe convert --feed_url https://example.com/atom --template_file t.md --output_dir out`,
		Args: cobra.MaximumNArgs(3),
		RunE: runConvert,
	}

	c.Flags().String(config.KeyFeedURL, "", "Feed URL (Atom or RSS)")
	c.Flags().String(config.KeyTemplateFile, "", "Markdown template file")
	c.Flags().String(config.KeyOutputDir, "", "Output directory (created if absent)")
	c.Flags().String(config.KeyUserAgent, fetch.DefaultUserAgent, "User-Agent for the feed request")
	c.Flags().Duration(config.KeyTimeout, fetch.DefaultTimeout, "Feed request timeout")
	c.Flags().Bool(config.KeyFailFast, false, "Stop at the first file that cannot be written")
	c.Flags().String(config.KeyLogLevel, logging.DefaultLevel, "Log level (debug, info, warn, error)")

	return c
}

func runConvert(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cmd.Flags(), args, cfgFile)
	if err != nil {
		return err
	}
	// Template and inputs are checked before any network activity.
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	template, err := os.ReadFile(cfg.TemplateFile)
	if err != nil {
		return fmt.Errorf("reading template: %w", err)
	}

	writer, err := output.New(cfg.OutputDir)
	if err != nil {
		return fmt.Errorf("initializing output writer: %w", err)
	}

	p := pipeline.New(
		fetch.New(fetch.WithUserAgent(cfg.UserAgent), fetch.WithTimeout(cfg.Timeout)),
		entry.NewNormalizer(extract.New()),
		render.NewTemplateRenderer(convert.New()),
		writer,
		pipeline.WithLogger(logger.With(zap.String("feed", cfg.FeedURL))),
		pipeline.WithProgress(cmd.OutOrStdout()),
		pipeline.WithFailFast(cfg.FailFast),
	)

	stats, err := p.Run(cmd.Context(), cfg.FeedURL, string(template))
	logger.Info("run finished",
		zap.Int("entries", stats.Entries),
		zap.Int("written", stats.Written),
		zap.Int("skipped", stats.Skipped),
		zap.Int("failed", stats.Failed),
	)
	return err
}
