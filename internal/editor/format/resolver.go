// Package format computes structured formatting snapshots from points in
// the editable surface. Semantic marks resolve by tag identity on the
// ancestor chain; visual properties merge tag detection with inline-style
// cascade lookups so engine-specific markup (style spans, legacy attrs)
// reports the same state as semantic tags.
package format

import (
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/net/html"

	"github.com/zjrosen/plume/internal/editor/dom"
)

var headingTag = regexp.MustCompile(`^h([1-6])$`)

// alignmentBlocks are block ancestors whose computed alignment applies to
// the resolution point.
var alignmentBlocks = map[string]bool{
	"p": true, "div": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"li": true, "blockquote": true, "article": true, "section": true,
}

// Resolver computes State snapshots against a fixed editable surface.
type Resolver struct {
	root   *html.Node
	styles *styleCache
}

// NewResolver builds a resolver bound to the given editable surface root.
func NewResolver(root *html.Node) *Resolver {
	return &Resolver{root: root, styles: newStyleCache()}
}

// Compute resolves the format state at a boundary point. For non-collapsed
// ranges callers pass the range start; the resolver skips boundary
// artifacts (whitespace-only leading text, element offsets) to anchor on
// the first node of actual selected content. A nil node or a point outside
// the editable surface yields the default state.
func (r *Resolver) Compute(node *html.Node, offset int, collapsed bool) State {
	state := Default()
	if node == nil {
		return state
	}

	anchor := node
	if !collapsed {
		anchor = contentAnchor(node, offset)
	}
	el := anchor
	if dom.IsText(el) {
		el = el.Parent
	}
	if el == nil || !dom.Contains(r.root, el) {
		return state
	}

	state.Bold = r.hasTag(el, "b", "strong") || isBoldWeight(r.styles.computedStyle(el, "font-weight"))
	state.Italic = r.hasTag(el, "i", "em")
	state.Underline = r.hasTag(el, "u", "ins") || r.hasDecoration(el, "underline")
	state.Strike = r.hasTag(el, "s", "strike", "del") || r.hasDecoration(el, "line-through")
	state.Code = r.hasTag(el, "code")
	state.Subscript = r.hasTag(el, "sub")
	state.Superscript = r.hasTag(el, "sup")

	if link := r.findTag(el, "a"); link != nil {
		state.Link, _ = dom.Attr(link, "href")
	}
	if h := r.findMatch(el, func(n *html.Node) bool { return headingTag.MatchString(dom.TagName(n)) }); h != nil {
		state.Heading = int(dom.TagName(h)[1] - '0')
	}
	if list := r.findTag(el, "ol", "ul"); list != nil {
		if dom.TagIs(list, "ol") {
			state.List = ListOrdered
		} else {
			state.List = ListUnordered
		}
	}
	state.Blockquote = r.hasTag(el, "blockquote")
	state.Alignment = r.alignment(el)

	state.FontSize = r.styles.computedStyle(el, "font-size")
	state.FontFamily = r.styles.computedStyle(el, "font-family")
	state.Color = r.styles.computedStyle(el, "color")
	state.BackgroundColor = r.background(el)

	return state
}

// findMatch walks from el toward the editable root (exclusive) and returns
// the first ancestor satisfying match.
func (r *Resolver) findMatch(el *html.Node, match func(*html.Node) bool) *html.Node {
	for x := el; x != nil && x != r.root; x = x.Parent {
		if match(x) {
			return x
		}
	}
	return nil
}

func (r *Resolver) findTag(el *html.Node, tags ...string) *html.Node {
	return r.findMatch(el, func(n *html.Node) bool { return dom.TagIs(n, tags...) })
}

func (r *Resolver) hasTag(el *html.Node, tags ...string) bool {
	return r.findTag(el, tags...) != nil
}

// hasDecoration checks both the line-only property and the legacy combined
// property, since markup in the wild populates either.
func (r *Resolver) hasDecoration(el *html.Node, keyword string) bool {
	if strings.Contains(r.styles.computedStyle(el, "text-decoration-line"), keyword) {
		return true
	}
	return strings.Contains(r.styles.computedStyle(el, "text-decoration"), keyword)
}

// alignment prefers, in ancestry order: an inline text-align declaration,
// the legacy align attribute, then computed alignment on the nearest
// block-level ancestor. Unresolvable values fall through to the next
// candidate; the final fallback is left.
func (r *Resolver) alignment(el *html.Node) Alignment {
	for x := el; x != nil && x != r.root; x = x.Parent {
		if !dom.IsElement(x) {
			continue
		}
		if v := r.styles.inlineStyle(x, "text-align"); v != "" {
			if a, ok := canonicalAlignment(v); ok {
				return a
			}
		}
		if v, ok := dom.Attr(x, "align"); ok {
			if a, ok := canonicalAlignment(v); ok {
				return a
			}
		}
		if alignmentBlocks[dom.TagName(x)] {
			if a, ok := canonicalAlignment(r.styles.computedStyle(x, "text-align")); ok {
				return a
			}
		}
	}
	if a, ok := canonicalAlignment(r.styles.computedStyle(el, "text-align")); ok {
		return a
	}
	return AlignLeft
}

// canonicalAlignment maps raw alignment values onto the four canonical
// ones. Vendor-prefixed center variants, logical start/end, and full all
// normalize; anything unrecognized reports false.
func canonicalAlignment(v string) (Alignment, bool) {
	v = strings.ToLower(strings.TrimSpace(v))
	v = strings.TrimPrefix(v, "-webkit-")
	v = strings.TrimPrefix(v, "-moz-")
	switch v {
	case "left", "center", "right", "justify":
		return Alignment(v), true
	case "start":
		return AlignLeft, true
	case "end":
		return AlignRight, true
	case "full", "justify-all":
		return AlignJustify, true
	}
	return "", false
}

// background walks ancestry for the first non-transparent inline
// background declaration.
func (r *Resolver) background(el *html.Node) string {
	for x := el; x != nil && x != r.root; x = x.Parent {
		if !dom.IsElement(x) {
			continue
		}
		v := r.styles.inlineStyle(x, "background-color")
		switch strings.ToLower(v) {
		case "", "transparent", "none", "rgba(0, 0, 0, 0)", "rgba(0,0,0,0)":
			continue
		}
		return v
	}
	return ""
}

func isBoldWeight(v string) bool {
	v = strings.ToLower(strings.TrimSpace(v))
	if v == "bold" || v == "bolder" {
		return true
	}
	n, err := strconv.Atoi(v)
	return err == nil && n >= 700
}

// contentAnchor walks forward from a range start boundary to the first
// node holding actual selected content: whitespace-only leading text is
// skipped and element boundaries descend into the child at the offset.
func contentAnchor(node *html.Node, offset int) *html.Node {
	n, off := node, offset
	for {
		if dom.IsText(n) {
			if strings.TrimSpace(n.Data) != "" || n.NextSibling == nil {
				return n
			}
			n, off = n.NextSibling, 0
			continue
		}
		child := dom.ChildAt(n, off)
		if child == nil {
			return n
		}
		n, off = child, 0
	}
}
