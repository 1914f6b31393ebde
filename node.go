package wikiloop

import "strings"

// NodeKind identifies the variant of a Node.
type NodeKind int

// Node kinds. The kind is decided once when the page is parsed.
const (
	TextNode NodeKind = iota
	CommentNode
	ElementNode
)

// Node is a parsed page node: a text node, a comment node, or an element
// with a tag name, attributes, and children in document order.
type Node struct {
	Kind NodeKind

	// Data holds the text of text and comment nodes.
	Data string

	// Tag is the lower-case tag name of element nodes.
	Tag      string
	Attrs    map[string]string
	Children []*Node
}

// NewText returns a text node.
func NewText(data string) *Node {
	return &Node{Kind: TextNode, Data: data}
}

// NewComment returns a comment node.
func NewComment(data string) *Node {
	return &Node{Kind: CommentNode, Data: data}
}

// NewElement returns an element node with the given attributes and children.
func NewElement(tag string, attrs map[string]string, children ...*Node) *Node {
	return &Node{Kind: ElementNode, Tag: tag, Attrs: attrs, Children: children}
}

// IsElement reports whether n is an element with the given tag.
func (n *Node) IsElement(tag string) bool {
	return n != nil && n.Kind == ElementNode && n.Tag == tag
}

// Attr returns the value of the attribute and whether it is present.
func (n *Node) Attr(key string) (string, bool) {
	if n == nil || n.Attrs == nil {
		return "", false
	}
	v, ok := n.Attrs[key]
	return v, ok
}

// HasAttr reports whether n carries the attribute, even with an empty value.
func (n *Node) HasAttr(key string) bool {
	_, ok := n.Attr(key)
	return ok
}

// FindAll returns the descendant elements of n with the given tag, in
// document order. n itself is not included.
func (n *Node) FindAll(tag string) []*Node {
	var found []*Node
	var walk func(*Node)
	walk = func(parent *Node) {
		for _, c := range parent.Children {
			if c.IsElement(tag) {
				found = append(found, c)
			}
			walk(c)
		}
	}
	if n != nil {
		walk(n)
	}
	return found
}

// Text returns the concatenated text of n and its descendants.
// Comments are not included.
func (n *Node) Text() string {
	var sb strings.Builder
	var walk func(*Node)
	walk = func(n *Node) {
		switch n.Kind {
		case TextNode:
			sb.WriteString(n.Data)
		case ElementNode:
			for _, c := range n.Children {
				walk(c)
			}
		}
	}
	if n != nil {
		walk(n)
	}
	return sb.String()
}
