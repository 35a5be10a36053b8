// Package convert implements the Converter interface.
// It turns the HTML carried in feed entries into Markdown using
// html-to-markdown with fenced code blocks and hyphen bullets.
package convert

import (
	"fmt"
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
)

const (
	codeBlockFence   = "```"
	bulletListMarker = "-"
)

// MarkdownConverter converts HTML fragments to Markdown.
type MarkdownConverter struct {
	conv *converter.Converter
}

// New creates a MarkdownConverter.
func New() *MarkdownConverter {
	return &MarkdownConverter{
		conv: converter.NewConverter(
			converter.WithPlugins(
				base.NewBasePlugin(),
				commonmark.NewCommonmarkPlugin(
					commonmark.WithCodeBlockFence(codeBlockFence),
					commonmark.WithBulletListMarker(bulletListMarker),
				),
			),
		),
	}
}

// Convert returns the Markdown form of html. Blank input is returned as ""
// without touching the converter.
func (c *MarkdownConverter) Convert(html string) (string, error) {
	if strings.TrimSpace(html) == "" {
		return "", nil
	}

	markdown, err := c.conv.ConvertString(html)
	if err != nil {
		return "", fmt.Errorf("converting HTML to markdown: %w", err)
	}
	return strings.TrimSpace(markdown), nil
}
