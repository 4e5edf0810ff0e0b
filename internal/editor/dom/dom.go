// Package dom provides tree helpers over golang.org/x/net/html nodes.
// The editing engine treats a single element node as its editable surface;
// every structural read or rewrite the engine performs goes through this
// package so that boundary arithmetic (rune offsets in text nodes, child
// indexes in elements) stays in one place.
package dom

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ParseFragment parses markup as the children of a div-like container and
// returns the detached top-level nodes.
func ParseFragment(markup string) ([]*html.Node, error) {
	ctx := &html.Node{Type: html.ElementNode, Data: "div", DataAtom: atom.Div}
	nodes, err := html.ParseFragment(strings.NewReader(markup), ctx)
	if err != nil {
		return nil, err
	}
	for _, n := range nodes {
		Detach(n)
	}
	return nodes, nil
}

// Render serializes a single node (including the node itself).
func Render(n *html.Node) string {
	var b strings.Builder
	_ = html.Render(&b, n)
	return b.String()
}

// RenderChildren serializes the children of n without n's own tag, which is
// how the engine exposes the surface content to callers.
func RenderChildren(n *html.Node) string {
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		_ = html.Render(&b, c)
	}
	return b.String()
}

// NewElement creates a detached element node for the given tag name.
func NewElement(tag string) *html.Node {
	tag = strings.ToLower(tag)
	return &html.Node{
		Type:     html.ElementNode,
		Data:     tag,
		DataAtom: atom.Lookup([]byte(tag)),
	}
}

// NewText creates a detached text node.
func NewText(text string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: text}
}

// Clone deep-copies a node and its subtree. The copy is detached.
func Clone(n *html.Node) *html.Node {
	if n == nil {
		return nil
	}
	cp := &html.Node{
		Type:      n.Type,
		DataAtom:  n.DataAtom,
		Data:      n.Data,
		Namespace: n.Namespace,
	}
	if len(n.Attr) > 0 {
		cp.Attr = make([]html.Attribute, len(n.Attr))
		copy(cp.Attr, n.Attr)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		cp.AppendChild(Clone(c))
	}
	return cp
}

// IsElement reports whether n is an element node.
func IsElement(n *html.Node) bool {
	return n != nil && n.Type == html.ElementNode
}

// IsText reports whether n is a text node.
func IsText(n *html.Node) bool {
	return n != nil && n.Type == html.TextNode
}

// TagName returns the lower-cased tag name of an element, or "" for
// anything that is not an element.
func TagName(n *html.Node) string {
	if !IsElement(n) {
		return ""
	}
	return strings.ToLower(n.Data)
}

// TagIs reports whether n is an element with one of the given tag names.
// Comparison is case-insensitive; the names passed in must be lower case.
func TagIs(n *html.Node, tags ...string) bool {
	name := TagName(n)
	if name == "" {
		return false
	}
	for _, t := range tags {
		if name == t {
			return true
		}
	}
	return false
}

// Attr returns the value of the named attribute and whether it is present.
func Attr(n *html.Node, key string) (string, bool) {
	if n == nil {
		return "", false
	}
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// SetAttr sets or replaces the named attribute.
func SetAttr(n *html.Node, key, val string) {
	for i := range n.Attr {
		if n.Attr[i].Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

// RemoveAttr deletes the named attribute if present.
func RemoveAttr(n *html.Node, key string) {
	for i := range n.Attr {
		if n.Attr[i].Key == key {
			n.Attr = append(n.Attr[:i], n.Attr[i+1:]...)
			return
		}
	}
}

// AttrsEqual reports whether two elements carry an identical attribute set:
// same count and the same key→value pairs regardless of order.
func AttrsEqual(a, b *html.Node) bool {
	if len(a.Attr) != len(b.Attr) {
		return false
	}
	for _, aa := range a.Attr {
		val, ok := Attr(b, aa.Key)
		if !ok || val != aa.Val {
			return false
		}
	}
	return true
}

// TextLen returns the length of a text node's data in runes. Non-text nodes
// report zero.
func TextLen(n *html.Node) int {
	if !IsText(n) {
		return 0
	}
	return utf8.RuneCountInString(n.Data)
}

// MaxOffset returns the largest valid boundary offset inside n: the rune
// length for text nodes, the child count for everything else.
func MaxOffset(n *html.Node) int {
	if IsText(n) {
		return TextLen(n)
	}
	return ChildCount(n)
}

// NodeText returns the concatenated text of n's subtree with no separators.
func NodeText(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(x *html.Node) {
		if IsText(x) {
			b.WriteString(x.Data)
			return
		}
		for c := x.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	if n != nil {
		walk(n)
	}
	return b.String()
}

// PlainText projects n's subtree to plain text, inserting a newline after
// each block-level child and for each line break.
func PlainText(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(x *html.Node) {
		switch {
		case IsText(x):
			b.WriteString(x.Data)
		case TagIs(x, "br"):
			b.WriteString("\n")
		default:
			for c := x.FirstChild; c != nil; c = c.NextSibling {
				walk(c)
			}
			if IsBlock(x) && x.NextSibling != nil {
				b.WriteString("\n")
			}
		}
	}
	if n != nil {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	return b.String()
}
