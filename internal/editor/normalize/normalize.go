// Package normalize canonicalizes the markup that native editing commands
// leave behind. The pipeline is an ordered list of independent tree-rewrite
// passes; each is total and idempotent in isolation, and the order is fixed
// because later passes assume the invariants established by earlier ones
// (flattening only considers sole-child nesting because merging has already
// collapsed sibling duplication). A pass can still expose work for an
// earlier one, so Normalize sweeps the list until nothing changes.
package normalize

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"

	"github.com/zjrosen/plume/internal/editor/dom"
)

// Pass is a single tree-rewrite phase over the editable surface.
type Pass struct {
	Name string
	Run  func(root *html.Node)
}

// Passes returns the standard pipeline in execution order.
func Passes() []Pass {
	return []Pass{
		{Name: "merge-adjacent-inlines", Run: mergeAdjacentInlines},
		{Name: "remove-empty-inlines", Run: removeEmptyInlines},
		{Name: "flatten-redundant-nesting", Run: flattenRedundantNesting},
		{Name: "whitespace-cleanup", Run: cleanWhitespace},
		{Name: "strip-engine-junk", Run: stripEngineJunk},
	}
}

// maxSweeps bounds the fixpoint loop. Real trees settle in one or two
// sweeps; the bound is a hard stop against a pathological rewrite cycle.
const maxSweeps = 4

// Normalize runs the pipeline over the surface rooted at root until a
// sweep changes nothing, then coalesces adjacent text nodes. A single
// ordered sweep is not enough: unwrapping a junk span or dropping an
// empty inline can leave newly adjacent mergeable siblings behind, work
// only an earlier pass knows how to finish. Idempotent and safe to call
// redundantly.
func Normalize(root *html.Node) {
	for i := 0; i < maxSweeps; i++ {
		before := dom.RenderChildren(root)
		for _, pass := range Passes() {
			pass.Run(root)
		}
		if dom.RenderChildren(root) == before {
			break
		}
	}
	dom.CoalesceText(root)
	// Coalescing can splice two short space runs into one long one; the
	// trailing sweep keeps a second Normalize from seeing new work.
	cleanWhitespace(root)
}

// mergeable reports whether b can fold into a: both on the inline
// allow-list with the same tag and an identical attribute set.
func mergeable(a, b *html.Node) bool {
	return dom.IsMergeableInline(a) && dom.IsElement(b) &&
		dom.TagName(a) == dom.TagName(b) && dom.AttrsEqual(a, b)
}

func mergeAdjacentInlines(n *html.Node) {
	c := n.FirstChild
	for c != nil {
		next := c.NextSibling
		if next != nil && mergeable(c, next) {
			dom.MoveChildren(c, next)
			n.RemoveChild(next)
			// The sibling list changed; retry from the same node.
			continue
		}
		c = next
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if dom.IsElement(c) {
			mergeAdjacentInlines(c)
		}
	}
}

// removeEmptyInlines prunes allow-listed inline elements that hold nothing
// but whitespace. Post-order, so nests of empties collapse in one pass.
// Preserved elements (line breaks, rules, images, inputs) keep their hosts
// alive by counting as element children.
func removeEmptyInlines(n *html.Node) {
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		if dom.IsElement(c) {
			removeEmptyInlines(c)
			if dom.IsMergeableInline(c) && dom.IsEmptyElement(c) {
				n.RemoveChild(c)
			}
		}
		c = next
	}
}

func flattenRedundantNesting(n *html.Node) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if !dom.IsElement(c) {
			continue
		}
		flattenRedundantNesting(c)
		for {
			only := c.FirstChild
			if only == nil || only.NextSibling != nil || !mergeable(c, only) {
				break
			}
			dom.Unwrap(only)
		}
	}
}

var (
	nbspRun  = regexp.MustCompile(" {2,}")
	spaceRun = regexp.MustCompile(` {3,}`)
)

// cleanWhitespace rewrites text outside preformatted ancestors: runs of
// two or more non-breaking spaces become equivalent regular spaces, and
// runs of three or more regular spaces collapse to two. Deliberate double
// spacing survives; single non-breaking spaces survive.
func cleanWhitespace(n *html.Node) {
	if dom.IsText(n) {
		if dom.InsidePreformatted(n) {
			return
		}
		n.Data = nbspRun.ReplaceAllStringFunc(n.Data, func(run string) string {
			return strings.Repeat(" ", utf8.RuneCountInString(run))
		})
		n.Data = spaceRun.ReplaceAllString(n.Data, "  ")
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		cleanWhitespace(c)
	}
}

// stripEngineJunk removes caret-positioning artifacts: zero-width-space
// and BOM characters, text nodes made solely of them, and attribute-less
// generic spans.
func stripEngineJunk(n *html.Node) {
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		switch {
		case dom.IsText(c):
			stripped := strings.Map(dropJunkRune, c.Data)
			if stripped == "" && c.Data != "" {
				n.RemoveChild(c)
			} else {
				c.Data = stripped
			}
		case dom.IsElement(c):
			stripEngineJunk(c)
			if dom.TagIs(c, "span") && len(c.Attr) == 0 {
				dom.Unwrap(c)
			}
		}
		c = next
	}
}

func dropJunkRune(r rune) rune {
	if r == '\u200b' || r == '\ufeff' {
		return -1
	}
	return r
}
