package xmltree

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/mmcdole/gofeed"
	"golang.org/x/net/html/charset"

	"github.com/gaurav-prasanna/feedpipe/core"
)

const xmlNamespaceURL = "http://www.w3.org/XML/1998/namespace"

// Document is a parsed feed.
type Document struct {
	Type gofeed.FeedType
	Root *Node
}

// Parse validates that data is an Atom or RSS document and builds its tree.
// Failures wrap core.ErrParse.
func Parse(data []byte) (*Document, error) {
	feedType := gofeed.DetectFeedType(bytes.NewReader(data))
	if feedType != gofeed.FeedTypeAtom && feedType != gofeed.FeedTypeRSS {
		return nil, fmt.Errorf("%w: not an Atom or RSS document", core.ErrParse)
	}

	root, err := build(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrParse, err)
	}
	return &Document{Type: feedType, Root: root}, nil
}

// Feed returns the node holding feed-level metadata: <feed> for Atom,
// <channel> for RSS. RDF documents without a channel fall back to the root.
func (d *Document) Feed() *Node {
	switch {
	case d.Root.Name == "rss":
		return d.Root.First("channel")
	case isRDF(d.Root):
		if ch := d.Root.First("channel"); ch != nil {
			return ch
		}
	}
	return d.Root
}

// Entries returns the feed's entry nodes in document order.
func (d *Document) Entries() []*Node {
	switch {
	case d.Root.Name == "feed":
		return d.Root.All("entry")
	case d.Root.Name == "rss":
		return d.Root.Find("channel").All("item")
	case isRDF(d.Root):
		// RSS 1.0 keeps items as siblings of the channel.
		return d.Root.All("item")
	}
	return nil
}

func isRDF(n *Node) bool {
	return n.Name == "RDF" || strings.HasSuffix(n.Name, ":RDF")
}

type frame struct {
	node   *Node
	text   strings.Builder
	prefix map[string]string // namespace URL -> document prefix
}

func build(data []byte) (*Node, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	dec.CharsetReader = charset.NewReaderLabel
	dec.Entity = xml.HTMLEntity

	var (
		root  *Node
		stack []*frame
	)
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			var scope map[string]string
			if len(stack) > 0 {
				scope = stack[len(stack)-1].prefix
			}
			scope = declare(scope, t.Attr)

			n := &Node{Name: qualify(scope, t.Name), Attrs: attrs(scope, t.Attr)}
			if len(stack) == 0 {
				if root != nil {
					return nil, errors.New("multiple root elements")
				}
				root = n
			} else {
				parent := stack[len(stack)-1].node
				parent.Children = append(parent.Children, n)
			}
			stack = append(stack, &frame{node: n, prefix: scope})

		case xml.EndElement:
			top := stack[len(stack)-1]
			top.node.Text = top.text.String()
			stack = stack[:len(stack)-1]

		case xml.CharData:
			if len(stack) > 0 {
				stack[len(stack)-1].text.Write(t)
			}
		}
	}

	if root == nil {
		return nil, errors.New("empty document")
	}
	return root, nil
}

// declare returns the scope extended with any xmlns declarations in attrs.
// The parent map is copied only when something new is declared.
func declare(parent map[string]string, attrs []xml.Attr) map[string]string {
	scope := parent
	copied := false
	for _, a := range attrs {
		var prefix string
		switch {
		case a.Name.Space == "xmlns":
			prefix = a.Name.Local
		case a.Name.Space == "" && a.Name.Local == "xmlns":
			prefix = ""
		default:
			continue
		}
		if !copied {
			scope = make(map[string]string, len(parent)+1)
			for k, v := range parent {
				scope[k] = v
			}
			copied = true
		}
		scope[a.Value] = prefix
	}
	return scope
}

func qualify(scope map[string]string, name xml.Name) string {
	if name.Space == "" {
		return name.Local
	}
	if name.Space == xmlNamespaceURL {
		return "xml:" + name.Local
	}
	if prefix, ok := scope[name.Space]; ok {
		if prefix == "" {
			return name.Local
		}
		return prefix + ":" + name.Local
	}
	// Undeclared prefixes are left untranslated by the decoder.
	return name.Space + ":" + name.Local
}

func attrs(scope map[string]string, in []xml.Attr) map[string]string {
	if len(in) == 0 {
		return nil
	}
	out := make(map[string]string, len(in))
	for _, a := range in {
		switch {
		case a.Name.Space == "xmlns":
			out["xmlns:"+a.Name.Local] = a.Value
		default:
			out[qualify(scope, a.Name)] = a.Value
		}
	}
	return out
}
