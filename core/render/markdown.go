// Package render substitutes entry fields into Markdown templates.
//
// A template is free text containing bracketed placeholders such as
// [TITLE] or [LINK]. The renderer knows a fixed vocabulary of placeholders;
// any other bracketed text is copied through untouched.
package render

import (
	"fmt"
	"strings"

	"github.com/gaurav-prasanna/feedpipe/core"
)

// Placeholders in the order they are documented.
const (
	PlaceholderID          = "ID"
	PlaceholderDate        = "DATE"
	PlaceholderLink        = "LINK"
	PlaceholderTitle       = "TITLE"
	PlaceholderDescription = "DESCRIPTION"
	PlaceholderContent     = "CONTENT"
	PlaceholderMarkdown    = "MARKDOWN"
	PlaceholderAuthor      = "AUTHOR"
	PlaceholderVideo       = "VIDEO"
	PlaceholderImage       = "IMAGE"
	PlaceholderImages      = "IMAGES"
	PlaceholderCategories  = "CATEGORIES"
	PlaceholderViews       = "VIEWS"
	PlaceholderRating      = "RATING"
)

// Placeholders lists every recognized placeholder name.
var Placeholders = []string{
	PlaceholderID, PlaceholderDate, PlaceholderLink, PlaceholderTitle,
	PlaceholderDescription, PlaceholderContent, PlaceholderMarkdown,
	PlaceholderAuthor, PlaceholderVideo, PlaceholderImage, PlaceholderImages,
	PlaceholderCategories, PlaceholderViews, PlaceholderRating,
}

// Result is a rendered entry plus the fields a caller needs to name it.
type Result struct {
	Output string
	Date   string
	Title  string
}

// TemplateRenderer renders entries into a template.
type TemplateRenderer struct {
	converter core.Converter
}

// NewTemplateRenderer creates a TemplateRenderer. The converter produces
// the [MARKDOWN] value from the entry content.
func NewTemplateRenderer(converter core.Converter) *TemplateRenderer {
	return &TemplateRenderer{converter: converter}
}

// Render replaces every recognized placeholder in template with the
// matching entry field in a single left-to-right pass.
func (r *TemplateRenderer) Render(template string, e core.Entry) (Result, error) {
	values, err := r.values(template, e)
	if err != nil {
		return Result{}, err
	}

	var b strings.Builder
	b.Grow(len(template))

	rest := template
	for {
		open := strings.IndexByte(rest, '[')
		if open < 0 {
			b.WriteString(rest)
			break
		}
		b.WriteString(rest[:open])
		rest = rest[open:]

		end := strings.IndexByte(rest, ']')
		if end < 0 {
			b.WriteString(rest)
			break
		}
		if v, ok := values[rest[1:end]]; ok {
			b.WriteString(v)
			rest = rest[end+1:]
			continue
		}
		// Not ours: emit the bracket and rescan from the next byte so that
		// "[[TITLE]]" still resolves the inner placeholder.
		b.WriteByte('[')
		rest = rest[1:]
	}

	return Result{Output: b.String(), Date: e.Date, Title: e.Title}, nil
}

// values builds the lookup table. Markdown conversion runs only when the
// template asks for it.
func (r *TemplateRenderer) values(template string, e core.Entry) (map[string]string, error) {
	values := map[string]string{
		PlaceholderID:          e.ID,
		PlaceholderDate:        e.Date,
		PlaceholderLink:        e.Link,
		PlaceholderTitle:       collapse(e.Title),
		PlaceholderDescription: collapse(e.Description),
		PlaceholderContent:     e.Content,
		PlaceholderMarkdown:    "",
		PlaceholderAuthor:      e.Author,
		PlaceholderVideo:       e.Video,
		PlaceholderImage:       e.Image,
		PlaceholderImages:      e.ImagesString(),
		PlaceholderCategories:  e.CategoriesString(),
		PlaceholderViews:       e.Views,
		PlaceholderRating:      e.Rating,
	}

	if r.converter != nil && strings.Contains(template, "["+PlaceholderMarkdown+"]") {
		md, err := r.converter.Convert(e.Content)
		if err != nil {
			return nil, fmt.Errorf("rendering [%s]: %w", PlaceholderMarkdown, err)
		}
		values[PlaceholderMarkdown] = md
	}
	return values, nil
}

// collapse folds whitespace runs into single spaces and trims the ends.
func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
