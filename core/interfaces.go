// Package core defines the shared types and pipeline interfaces for feedpipe.
// Each stage of the pipeline is a clean, testable interface.
package core

import (
	"context"
	"strings"
)

// UnknownAuthor is substituted when an entry carries no author at all.
const UnknownAuthor = "Unknown Author"

// FetchResult holds the raw feed body and response metadata from a fetch.
type FetchResult struct {
	URL         string
	StatusCode  int
	ContentType string
	Body        []byte
}

// Entry is the normalized, format-agnostic representation of one feed item.
// Every field is always set; absence in the source is the empty string or
// an empty slice.
type Entry struct {
	ID          string   `json:"id"`
	Date        string   `json:"date"` // verbatim from the feed
	Link        string   `json:"link"`
	Title       string   `json:"title"`
	Content     string   `json:"content"`
	Description string   `json:"description"`
	Author      string   `json:"author"`
	Categories  []string `json:"categories"`
	Video       string   `json:"video"`
	Image       string   `json:"image"`
	Images      []string `json:"images"`
	Views       string   `json:"views"`
	Rating      string   `json:"rating"`
}

// CategoriesString returns the categories joined with commas.
func (e Entry) CategoriesString() string {
	return strings.Join(e.Categories, ",")
}

// ImagesString returns the image URLs joined with commas.
func (e Entry) ImagesString() string {
	return strings.Join(e.Images, ",")
}

// Fetcher retrieves a raw feed body from a URL.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*FetchResult, error)
}

// Extractor reduces an HTML fragment to its plain text.
type Extractor interface {
	Extract(html string) (string, error)
}

// Converter converts an HTML fragment into Markdown.
type Converter interface {
	Convert(html string) (string, error)
}
