package dom

import (
	"strings"

	"golang.org/x/net/html"
)

// blockTags are elements that establish their own line in the plain-text
// projection and act as block boundaries for format resolution.
var blockTags = map[string]bool{
	"p": true, "div": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"ul": true, "ol": true, "li": true,
	"blockquote": true, "pre": true,
	"article": true, "section": true, "figure": true,
	"table": true, "tr": true, "hr": true,
}

// inlineMergeTags is the allow-list of inline elements the normalizer is
// permitted to merge, flatten, and empty-prune.
var inlineMergeTags = map[string]bool{
	"b": true, "strong": true,
	"i": true, "em": true,
	"u": true, "ins": true,
	"s": true, "strike": true, "del": true,
	"sub": true, "sup": true,
	"code": true, "span": true, "a": true, "mark": true,
}

// preserveTags are elements that stay meaningful with no children.
var preserveTags = map[string]bool{
	"br": true, "hr": true, "img": true, "input": true,
}

// IsBlock reports whether n is a block-level element.
func IsBlock(n *html.Node) bool {
	return blockTags[TagName(n)]
}

// IsBlockTag reports whether the lower-case tag name is block-level.
func IsBlockTag(tag string) bool {
	return blockTags[tag]
}

// IsMergeableInline reports whether n is on the inline allow-list the
// normalizer operates over.
func IsMergeableInline(n *html.Node) bool {
	return inlineMergeTags[TagName(n)]
}

// IsPreserved reports whether n must survive normalization even when it
// has no content.
func IsPreserved(n *html.Node) bool {
	return preserveTags[TagName(n)]
}

// IsLineBreak reports whether n is a br element.
func IsLineBreak(n *html.Node) bool {
	return TagIs(n, "br")
}

// HasTextContent reports whether n's subtree contains any non-whitespace
// text.
func HasTextContent(n *html.Node) bool {
	return strings.TrimSpace(NodeText(n)) != ""
}

// IsEmptyElement reports whether an element holds nothing but whitespace:
// no element children and no non-whitespace text.
func IsEmptyElement(n *html.Node) bool {
	if !IsElement(n) {
		return false
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if !IsText(c) || strings.TrimSpace(c.Data) != "" {
			return false
		}
	}
	return true
}

// IsTrivialElement reports whether n carries no content of its own: not a
// preserved element, and holding at most whitespace text and a single line
// break. An emptied surface leaves one such paragraph behind.
func IsTrivialElement(n *html.Node) bool {
	if !IsElement(n) || IsPreserved(n) {
		return false
	}
	breaks := 0
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch {
		case IsText(c):
			if strings.TrimSpace(c.Data) != "" {
				return false
			}
		case IsLineBreak(c):
			breaks++
			if breaks > 1 {
				return false
			}
		default:
			return false
		}
	}
	return true
}

// InsidePreformatted reports whether n sits under a pre or code ancestor,
// where whitespace is significant and must not be rewritten.
func InsidePreformatted(n *html.Node) bool {
	for x := n.Parent; x != nil; x = x.Parent {
		if TagIs(x, "pre", "code") {
			return true
		}
	}
	return false
}
