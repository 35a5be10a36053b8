// Package xmltree parses a feed document into a generic element tree that
// stays faithful to the source: repeatable elements are kept as ordered
// lists, attributes live in a map, and namespaced elements are addressed by
// their document prefix (e.g. "media:group").
package xmltree

import "strings"

// Node is one XML element.
type Node struct {
	Name     string
	Attrs    map[string]string
	Text     string // character data directly under this element, untrimmed
	Children []*Node
}

// All returns the child elements named name, in document order.
func (n *Node) All(name string) []*Node {
	if n == nil {
		return nil
	}
	var out []*Node
	for _, c := range n.Children {
		if c.Name == name {
			out = append(out, c)
		}
	}
	return out
}

// First returns the first child element named name, or nil.
func (n *Node) First(name string) *Node {
	if n == nil {
		return nil
	}
	for _, c := range n.Children {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// Find walks the first matching child for each name in path.
func (n *Node) Find(path ...string) *Node {
	cur := n
	for _, name := range path {
		cur = cur.First(name)
		if cur == nil {
			return nil
		}
	}
	return cur
}

// Has reports whether a child element named name exists.
func (n *Node) Has(name string) bool {
	return n.First(name) != nil
}

// Attr returns the attribute value, or "" when absent or n is nil.
func (n *Node) Attr(name string) string {
	if n == nil {
		return ""
	}
	return n.Attrs[name]
}

// Raw returns the untrimmed character data, or "" when n is nil.
func (n *Node) Raw() string {
	if n == nil {
		return ""
	}
	return n.Text
}

// Value returns the trimmed character data, or "" when n is nil.
func (n *Node) Value() string {
	return strings.TrimSpace(n.Raw())
}

// InnerText returns the character data of n and all its descendants.
// Mixed content is concatenated with child text after the element's own text.
func (n *Node) InnerText() string {
	if n == nil {
		return ""
	}
	var b strings.Builder
	b.WriteString(n.Text)
	for _, c := range n.Children {
		b.WriteString(c.InnerText())
	}
	return b.String()
}

// IsLeaf reports whether n has no child elements and no attributes.
func (n *Node) IsLeaf() bool {
	return n != nil && len(n.Children) == 0 && len(n.Attrs) == 0
}
