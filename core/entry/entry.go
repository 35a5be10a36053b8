// Package entry normalizes raw feed items into core.Entry.
//
// A raw item is first classified into one of two variants, AtomEntry or
// RSSEntry, each with its own field lookup rules. Media-RSS groups are an
// orthogonal extension that either variant may carry; when present their
// fields are laid over the base result.
package entry

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/gaurav-prasanna/feedpipe/core"
	"github.com/gaurav-prasanna/feedpipe/core/chunk"
	"github.com/gaurav-prasanna/feedpipe/core/extract"
	"github.com/gaurav-prasanna/feedpipe/core/xmltree"
)

// imageTypes is the MIME allow-list for [core.Entry.Images].
var imageTypes = map[string]bool{
	"image/png":  true,
	"image/jpeg": true,
	"image/jpg":  true,
	"image/gif":  true,
}

var titleStrip = regexp.MustCompile(`[^\w\s-]`)

// Entry is a classified raw feed item. It is either AtomEntry or RSSEntry.
type Entry interface {
	raw() *xmltree.Node
}

// AtomEntry is an item that carries its own <id>. Feed holds the enclosing
// <feed> element, used for the feed-level author fallback.
type AtomEntry struct {
	Node *xmltree.Node
	Feed *xmltree.Node
}

// RSSEntry is any other item.
type RSSEntry struct {
	Node *xmltree.Node
}

func (a AtomEntry) raw() *xmltree.Node { return a.Node }
func (r RSSEntry) raw() *xmltree.Node  { return r.Node }

// Classify decides the variant of raw. It fails with core.ErrMalformedEntry
// when raw is missing or is a bare text node rather than an element tree.
func Classify(raw, feed *xmltree.Node) (Entry, error) {
	if raw == nil {
		return nil, fmt.Errorf("%w: entry is nil", core.ErrMalformedEntry)
	}
	if raw.IsLeaf() && raw.Value() != "" {
		return nil, fmt.Errorf("%w: <%s> holds only text", core.ErrMalformedEntry, raw.Name)
	}
	if raw.Has("id") {
		return AtomEntry{Node: raw, Feed: feed}, nil
	}
	return RSSEntry{Node: raw}, nil
}

// HasMedia reports whether the item carries a Media-RSS group.
func HasMedia(e Entry) bool {
	return e.raw().Has("media:group")
}

// Normalizer extracts core.Entry values from raw feed items.
type Normalizer struct {
	extractor core.Extractor
	excerpt   *chunk.Chunker
}

// NewNormalizer creates a Normalizer. A nil extractor selects the default
// HTML extractor.
func NewNormalizer(extractor core.Extractor) *Normalizer {
	if extractor == nil {
		extractor = extract.New()
	}
	return &Normalizer{
		extractor: extractor,
		excerpt:   chunk.New(chunk.DefaultSize),
	}
}

// Normalize classifies raw and extracts its canonical fields. Missing fields
// never cause an error; only a structurally broken item does.
func (n *Normalizer) Normalize(raw, feed *xmltree.Node) (core.Entry, error) {
	classified, err := Classify(raw, feed)
	if err != nil {
		return core.Entry{}, err
	}

	var e core.Entry
	switch v := classified.(type) {
	case AtomEntry:
		e = n.atom(v)
	case RSSEntry:
		e, err = n.rss(v)
		if err != nil {
			return core.Entry{}, err
		}
	}

	overlayMedia(&e, classified.raw().First("media:group"))
	e.Images = images(classified.raw())
	e.Categories = categories(classified.raw())
	return e, nil
}

func (n *Normalizer) atom(a AtomEntry) core.Entry {
	node := a.Node
	return core.Entry{
		ID:          node.First("id").Value(),
		Date:        firstOf(node.First("updated").Value(), node.First("published").Value()),
		Link:        atomLink(node),
		Title:       title(node.First("title")),
		Content:     text(node.First("content")),
		Description: text(node.First("summary")),
		Author: firstOf(
			node.Find("author", "name").Value(),
			a.Feed.Find("author", "name").Value(),
			core.UnknownAuthor,
		),
	}
}

func (n *Normalizer) rss(r RSSEntry) (core.Entry, error) {
	node := r.Node
	group := node.First("media:group")

	content := firstOf(
		node.First("description").Raw(),
		group.First("media:description").Raw(),
		node.First("content:encoded").Raw(),
		node.First("content").Raw(),
	)

	var excerpt string
	if content != "" {
		plain, err := n.extractor.Extract(content)
		if err != nil {
			return core.Entry{}, fmt.Errorf("%w: %v", core.ErrMalformedEntry, err)
		}
		excerpt = n.excerpt.First(plain)
	}

	return core.Entry{
		ID: firstOf(
			node.First("yt:videoId").Value(),
			node.First("id").Value(),
			node.First("guid").Value(),
		),
		Date: firstOf(
			node.First("published").Value(),
			node.First("pubDate").Value(),
			node.First("updated").Value(),
			node.First("dc:date").Value(),
		),
		Link:        firstOf(node.First("link").Attr("href"), node.First("link").Value()),
		Title:       title(node.First("title")),
		Content:     content,
		Description: firstOf(group.First("media:description").Raw(), excerpt),
		Author: firstOf(
			node.Find("author", "name").Value(),
			node.Find("author", "n").Value(),
			node.First("author").Value(),
			node.First("dc:creator").Value(),
			core.UnknownAuthor,
		),
	}, nil
}

// overlayMedia copies Media-RSS group fields over e. Nothing is set when
// the group is absent.
func overlayMedia(e *core.Entry, group *xmltree.Node) {
	if group == nil {
		return
	}
	e.Description = firstOf(group.First("media:description").Raw(), e.Description)
	e.Video = group.First("media:content").Attr("url")
	e.Image = group.First("media:thumbnail").Attr("url")

	community := group.First("media:community")
	e.Views = community.First("media:statistics").Attr("views")
	e.Rating = community.First("media:starRating").Attr("average")
}

// atomLink prefers the rel="alternate" link, then the first link.
func atomLink(node *xmltree.Node) string {
	links := node.All("link")
	for _, l := range links {
		if l.Attr("rel") == "alternate" {
			return l.Attr("href")
		}
	}
	if len(links) > 0 {
		return links[0].Attr("href")
	}
	return ""
}

func categories(node *xmltree.Node) []string {
	out := []string{}
	for _, c := range node.All("category") {
		v := strings.TrimSpace(firstOf(c.Value(), c.Attr("term"), c.Attr("label")))
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}

// images collects image URLs from enclosures, or from media:content when
// the item has no enclosures.
func images(node *xmltree.Node) []string {
	candidates := node.All("enclosure")
	if len(candidates) == 0 {
		candidates = node.All("media:content")
	}

	out := []string{}
	for _, c := range candidates {
		if !imageTypes[strings.ToLower(strings.TrimSpace(c.Attr("type")))] {
			continue
		}
		if url := c.Attr("url"); url != "" {
			out = append(out, url)
		}
	}
	return out
}

// title keeps word characters, whitespace and hyphens only.
func title(node *xmltree.Node) string {
	return titleStrip.ReplaceAllString(text(node), "")
}

// text returns an element's text. XHTML constructs keep their markup as
// child elements, so their descendant text is used instead.
func text(node *xmltree.Node) string {
	if node.Attr("type") == "xhtml" {
		return node.InnerText()
	}
	return node.Raw()
}

// firstOf returns the first value that is not blank, or "".
func firstOf(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
