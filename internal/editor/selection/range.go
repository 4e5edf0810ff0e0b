// Package selection owns range values, boundary normalization, and the
// selection lifecycle for an editable surface. Ranges are plain values:
// every read hands back an owned copy, and writing the active selection is
// an explicit operation, never a side effect of a getter.
package selection

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"

	"github.com/zjrosen/plume/internal/editor/dom"
)

// Boundary is a point in the document: a rune offset inside a text node,
// or a child index inside an element.
type Boundary struct {
	Node   *html.Node
	Offset int
}

// Range delimits a span of content between two boundaries. Start never
// follows End once a range has passed through Manager.Set.
type Range struct {
	Start Boundary
	End   Boundary
}

// Collapsed reports whether the range is a caret.
func (r Range) Collapsed() bool {
	return r.Start.Node == r.End.Node && r.Start.Offset == r.End.Offset
}

// Normalize corrects boundary artifacts produced by native range
// computation: anchors stuck at the end of exited text nodes, root-level
// over-selection from triple clicks, trailing empty anchors, and trailing
// line breaks. Pure: the input is unchanged, collapsed ranges pass
// through untouched, and the result always lies within the surface rooted
// at root.
func Normalize(root *html.Node, rng Range) Range {
	if rng.Collapsed() {
		return rng
	}
	out := rng

	// A start sitting exactly at the end of a text node with a next
	// sibling anchors inside a node the selection has already exited;
	// move it immediately before that sibling.
	if s := out.Start; dom.IsText(s.Node) && s.Offset == dom.TextLen(s.Node) && s.Node.NextSibling != nil && s.Node.Parent != nil {
		out.Start = Boundary{Node: s.Node.Parent, Offset: dom.ChildIndex(s.Node) + 1}
	}

	// An end on the root itself at a non-zero child offset is root-level
	// over-selection; descend to the end of the child preceding the
	// offset.
	if e := out.End; e.Node == root && e.Offset > 0 {
		if child := dom.ChildAt(root, e.Offset-1); child != nil {
			out.End = Boundary{Node: child, Offset: dom.MaxOffset(child)}
		}
	}

	// An end at offset zero of a non-root container is a trailing empty
	// anchor in the next block; trim it to immediately before that
	// container.
	if e := out.End; e.Offset == 0 && e.Node != root && e.Node.Parent != nil {
		out.End = Boundary{Node: e.Node.Parent, Offset: dom.ChildIndex(e.Node)}
	}

	// An end just past a line-break child includes a trailing visual
	// break (triple-click artifact); exclude it.
	if e := out.End; dom.IsElement(e.Node) && e.Offset > 0 {
		if dom.IsLineBreak(dom.ChildAt(e.Node, e.Offset-1)) {
			out.End = Boundary{Node: e.Node, Offset: e.Offset - 1}
		}
	}

	return out
}

// Clamp forces both boundaries into valid offsets for their nodes and
// orders Start before End. It returns the adjusted range.
func Clamp(rng Range) Range {
	rng.Start.Offset = clampOffset(rng.Start)
	rng.End.Offset = clampOffset(rng.End)
	if rng.Start.Node != nil && rng.End.Node != nil &&
		dom.ComparePoints(rng.Start.Node, rng.Start.Offset, rng.End.Node, rng.End.Offset) > 0 {
		rng.Start, rng.End = rng.End, rng.Start
	}
	return rng
}

func clampOffset(b Boundary) int {
	if b.Node == nil || b.Offset < 0 {
		return 0
	}
	if limit := dom.MaxOffset(b.Node); b.Offset > limit {
		return limit
	}
	return b.Offset
}

// TextOffset returns the plain-text rune offset of a boundary within root,
// i.e. the length of the text that precedes it.
func TextOffset(root *html.Node, b Boundary) int {
	return utf8.RuneCountInString(RangeText(root, Range{
		Start: Boundary{Node: root, Offset: 0},
		End:   b,
	}))
}

// RangeText projects the content between the range boundaries to plain
// text, walking text nodes under root in document order.
func RangeText(root *html.Node, rng Range) string {
	if rng.Collapsed() {
		return ""
	}
	var b strings.Builder
	done := false
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if done {
			return
		}
		if dom.IsText(n) {
			length := dom.TextLen(n)
			if dom.ComparePoints(n, length, rng.Start.Node, rng.Start.Offset) <= 0 {
				return
			}
			if dom.ComparePoints(n, 0, rng.End.Node, rng.End.Offset) >= 0 {
				done = true
				return
			}
			from, to := 0, length
			if rng.Start.Node == n {
				from = rng.Start.Offset
			}
			if rng.End.Node == n {
				to = rng.End.Offset
			}
			runes := []rune(n.Data)
			b.WriteString(string(runes[from:to]))
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	return b.String()
}

// BoundaryAtTextOffset maps a plain-text rune offset back into a boundary,
// the inverse of TextOffset. Offsets past the end of the text land at the
// end of the last text node; a document with no text yields a boundary at
// the end of root.
func BoundaryAtTextOffset(root *html.Node, offset int) Boundary {
	if offset < 0 {
		offset = 0
	}
	remaining := offset
	var last *html.Node
	var found *Boundary
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if found != nil {
			return
		}
		if dom.IsText(n) {
			last = n
			length := dom.TextLen(n)
			if remaining <= length {
				found = &Boundary{Node: n, Offset: remaining}
				return
			}
			remaining -= length
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	if found != nil {
		return *found
	}
	if last != nil {
		return Boundary{Node: last, Offset: dom.TextLen(last)}
	}
	return Boundary{Node: root, Offset: dom.MaxOffset(root)}
}

// FromTextOffsets builds a range between two plain-text rune offsets.
// History entries record offsets in this projection, so an embedder can
// turn a restored snapshot back into a live selection.
func FromTextOffsets(root *html.Node, start, end int) Range {
	return Clamp(Range{
		Start: BoundaryAtTextOffset(root, start),
		End:   BoundaryAtTextOffset(root, end),
	})
}
