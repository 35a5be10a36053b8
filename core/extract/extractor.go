// Package extract implements the Extractor interface.
// It reduces an HTML fragment to plain text, the way a feed reader shows
// an excerpt: tags dropped, entities decoded, text kept in document order.
package extract

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// noiseSelectors are elements whose text never belongs in an excerpt.
var noiseSelectors = []string{
	"script", "style", "noscript", "template",
}

// HTMLExtractor strips markup from HTML fragments.
type HTMLExtractor struct{}

// New creates an HTMLExtractor.
func New() *HTMLExtractor {
	return &HTMLExtractor{}
}

// Extract returns the text content of the fragment. Text that is not HTML
// at all passes through unchanged.
func (e *HTMLExtractor) Extract(html string) (string, error) {
	if !strings.Contains(html, "<") {
		return html, nil
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("parsing HTML: %w", err)
	}

	for _, sel := range noiseSelectors {
		doc.Find(sel).Remove()
	}

	return doc.Find("body").Text(), nil
}
