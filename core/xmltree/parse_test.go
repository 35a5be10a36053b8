package xmltree_test

import (
	"errors"
	"testing"

	"github.com/mmcdole/gofeed"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gaurav-prasanna/feedpipe/core"
	"github.com/gaurav-prasanna/feedpipe/core/xmltree"
)

const atomFeed = `<?xml version="1.0" encoding="utf-8"?>
<feed xmlns="http://www.w3.org/2005/Atom"
      xmlns:media="http://search.yahoo.com/mrss/"
      xmlns:yt="http://www.youtube.com/xml/schemas/2015">
  <title>Example Feed</title>
  <author><name>John Doe</name></author>
  <entry>
    <id>urn:x</id>
    <yt:videoId>abc</yt:videoId>
    <link rel="alternate" href="http://example.org/a"/>
    <media:group>
      <media:title>Clip</media:title>
    </media:group>
  </entry>
  <entry>
    <id>urn:y</id>
  </entry>
</feed>`

const rssFeed = `<?xml version="1.0"?>
<rss version="2.0" xmlns:dc="http://purl.org/dc/elements/1.1/">
  <channel>
    <title>Test Feed</title>
    <item>
      <title>First &amp; best</title>
      <dc:creator>Jane</dc:creator>
      <guid isPermaLink="false">item-1</guid>
    </item>
    <item><title>Second&nbsp;item</title></item>
    <item><title>Third</title></item>
  </channel>
</rss>`

const rdfFeed = `<?xml version="1.0"?>
<rdf:RDF xmlns:rdf="http://www.w3.org/1999/02/22-rdf-syntax-ns#" xmlns="http://purl.org/rss/1.0/">
  <channel rdf:about="http://example.com/"><title>RDF</title></channel>
  <item rdf:about="http://example.com/1"><title>One</title></item>
</rdf:RDF>`

func TestParse_Atom(t *testing.T) {
	t.Parallel()

	doc, err := xmltree.Parse([]byte(atomFeed))
	require.NoError(t, err)

	assert.Equal(t, gofeed.FeedTypeAtom, doc.Type)
	assert.Equal(t, "feed", doc.Root.Name)
	assert.Equal(t, "John Doe", doc.Feed().Find("author", "name").Value())

	entries := doc.Entries()
	require.Len(t, entries, 2)

	first := entries[0]
	assert.Equal(t, "urn:x", first.First("id").Value())
	assert.Equal(t, "abc", first.First("yt:videoId").Value())
	assert.Equal(t, "alternate", first.First("link").Attr("rel"))
	assert.Equal(t, "Clip", first.Find("media:group", "media:title").Value())
}

func TestParse_RSS(t *testing.T) {
	t.Parallel()

	doc, err := xmltree.Parse([]byte(rssFeed))
	require.NoError(t, err)

	assert.Equal(t, gofeed.FeedTypeRSS, doc.Type)
	assert.Equal(t, "channel", doc.Feed().Name)

	entries := doc.Entries()
	require.Len(t, entries, 3)
	assert.Equal(t, "First & best", entries[0].First("title").Value())
	assert.Equal(t, "Jane", entries[0].First("dc:creator").Value())
	assert.Equal(t, "false", entries[0].First("guid").Attr("isPermaLink"))
	assert.Equal(t, "Second\u00a0item", entries[1].First("title").Value())
}

func TestParse_RDF(t *testing.T) {
	t.Parallel()

	doc, err := xmltree.Parse([]byte(rdfFeed))
	require.NoError(t, err)

	assert.Equal(t, "channel", doc.Feed().Name)
	entries := doc.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, "One", entries[0].First("title").Value())
	assert.Equal(t, "http://example.com/1", entries[0].Attr("rdf:about"))
}

func TestParse_Failures(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		body string
	}{
		{name: "json feed", body: `{"version": "https://jsonfeed.org/version/1", "items": []}`},
		{name: "html page", body: `<!DOCTYPE html><html><body>nope</body></html>`},
		{name: "empty", body: ``},
		{name: "truncated rss", body: `<rss version="2.0"><channel><item><title>x</title>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := xmltree.Parse([]byte(tt.body))
			require.Error(t, err)
			assert.True(t, errors.Is(err, core.ErrParse), "expected ErrParse, got %v", err)
		})
	}
}

func TestNode_NilSafe(t *testing.T) {
	t.Parallel()

	var n *xmltree.Node
	assert.Nil(t, n.First("x"))
	assert.Nil(t, n.Find("a", "b"))
	assert.Empty(t, n.All("x"))
	assert.Equal(t, "", n.Attr("href"))
	assert.Equal(t, "", n.Value())
	assert.Equal(t, "", n.InnerText())
	assert.False(t, n.Has("x"))
}

func TestNode_InnerText(t *testing.T) {
	t.Parallel()

	n := &xmltree.Node{
		Name: "content",
		Children: []*xmltree.Node{
			{Name: "div", Children: []*xmltree.Node{
				{Name: "p", Text: "Hello "},
				{Name: "b", Text: "world"},
			}},
		},
	}
	assert.Equal(t, "Hello world", n.InnerText())
}
