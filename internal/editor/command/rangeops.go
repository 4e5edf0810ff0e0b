package command

import (
	"strings"

	"golang.org/x/net/html"

	"github.com/zjrosen/plume/internal/editor/dom"
	"github.com/zjrosen/plume/internal/editor/selection"
)

// anchorElement resolves a range to the element its start sits in.
func anchorElement(rng selection.Range) *html.Node {
	n := rng.Start.Node
	if dom.IsText(n) {
		return n.Parent
	}
	return n
}

// findAncestorTag walks from n up to root exclusive and returns the first
// element matching one of the tags.
func findAncestorTag(root, n *html.Node, tags ...string) *html.Node {
	for x := n; x != nil && x != root; x = x.Parent {
		if dom.TagIs(x, tags...) {
			return x
		}
	}
	return nil
}

// splitBoundaries splits text nodes under the range boundaries so that
// every text node afterwards lies entirely inside or entirely outside the
// range. The returned range is adjusted to the split nodes.
func splitBoundaries(rng selection.Range) selection.Range {
	if s := rng.Start; dom.IsText(s.Node) && s.Offset > 0 && s.Offset < dom.TextLen(s.Node) {
		tail := dom.SplitText(s.Node, s.Offset)
		if tail != nil {
			if rng.End.Node == s.Node {
				rng.End = selection.Boundary{Node: tail, Offset: rng.End.Offset - s.Offset}
			}
			rng.Start = selection.Boundary{Node: tail, Offset: 0}
		}
	}
	if e := rng.End; dom.IsText(e.Node) && e.Offset > 0 && e.Offset < dom.TextLen(e.Node) {
		// The head keeps the in-range text, so the boundary stays put.
		dom.SplitText(e.Node, e.Offset)
	}
	return rng
}

// textsInRange collects the text nodes fully covered by the range. Call
// splitBoundaries first so partial coverage cannot occur.
func textsInRange(root *html.Node, rng selection.Range) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if dom.IsText(n) {
			if dom.ComparePoints(n, 0, rng.Start.Node, rng.Start.Offset) >= 0 &&
				dom.ComparePoints(n, dom.TextLen(n), rng.End.Node, rng.End.Offset) <= 0 {
				out = append(out, n)
			}
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	return out
}

// wrapRange wraps every covered text segment in its own fresh element from
// wrap. Adjacent identical wrappers merge in the normalizer, so
// per-segment wrapping converges to clean markup. Whitespace-only segments
// are skipped; a wrapper holding only whitespace would be pruned along
// with its content.
func wrapRange(root *html.Node, rng selection.Range, wrap func() *html.Node) {
	rng = splitBoundaries(rng)
	for _, tn := range textsInRange(root, rng) {
		if strings.TrimSpace(tn.Data) == "" {
			continue
		}
		parent := tn.Parent
		if parent == nil {
			continue
		}
		w := wrap()
		dom.InsertBefore(parent, w, tn)
		dom.AppendChild(w, tn)
	}
}

// textWithin reports whether el has visible text and all of it lies inside
// the range.
func textWithin(el *html.Node, rng selection.Range) bool {
	found, ok := false, true
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if dom.IsText(n) {
			if strings.TrimSpace(n.Data) == "" {
				return
			}
			found = true
			if dom.ComparePoints(n, 0, rng.Start.Node, rng.Start.Offset) < 0 ||
				dom.ComparePoints(n, dom.TextLen(n), rng.End.Node, rng.End.Offset) > 0 {
				ok = false
			}
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(el)
	return found && ok
}

// removeMarks unwraps every formatting element whose text is fully covered
// by the range. Unwrapping exposes nested marks, so the scan restarts until
// a fixpoint.
func removeMarks(root *html.Node, rng selection.Range, tags ...string) {
	for {
		target := coveredMark(root, rng, tags)
		if target == nil {
			return
		}
		dom.Unwrap(target)
	}
}

func coveredMark(root *html.Node, rng selection.Range, tags []string) *html.Node {
	var found *html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if found != nil {
			return
		}
		if n != root && dom.TagIs(n, tags...) && textWithin(n, rng) {
			found = n
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	return found
}

// deleteRange removes the covered content: fully covered text nodes and
// childless elements are detached, emptied wrappers are left for the
// normalizer. It returns the boundary where the removed content used to
// start, suitable for inserting replacement nodes.
func deleteRange(root *html.Node, rng selection.Range) selection.Boundary {
	rng = splitBoundaries(rng)
	var doomed []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if dom.IsText(n) {
			if dom.ComparePoints(n, 0, rng.Start.Node, rng.Start.Offset) >= 0 &&
				dom.ComparePoints(n, dom.TextLen(n), rng.End.Node, rng.End.Offset) <= 0 {
				doomed = append(doomed, n)
			}
			return
		}
		if dom.IsElement(n) && n != root && n.FirstChild == nil {
			idx := dom.ChildIndex(n)
			if dom.ComparePoints(n.Parent, idx, rng.Start.Node, rng.Start.Offset) >= 0 &&
				dom.ComparePoints(n.Parent, idx+1, rng.End.Node, rng.End.Offset) <= 0 {
				doomed = append(doomed, n)
			}
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)

	// Capture the insertion point before detaching shifts child indexes.
	at := rng.Start
	if dom.IsText(at.Node) {
		parent, prev := at.Node.Parent, at.Node.PrevSibling
		survives := true
		for _, n := range doomed {
			if n == at.Node {
				survives = false
				break
			}
		}
		switch {
		case survives:
			at = selection.Boundary{Node: parent, Offset: dom.ChildIndex(at.Node) + 1}
		case prev != nil:
			at = selection.Boundary{Node: parent, Offset: dom.ChildIndex(prev) + 1}
		default:
			at = selection.Boundary{Node: parent, Offset: 0}
		}
	}
	for _, n := range doomed {
		dom.Detach(n)
	}
	return at
}

// insertNodesAt places nodes at a boundary, splitting a text node when the
// boundary falls inside one.
func insertNodesAt(b selection.Boundary, nodes []*html.Node) {
	if b.Node == nil {
		return
	}
	if dom.IsText(b.Node) {
		parent := b.Node.Parent
		if parent == nil {
			return
		}
		var ref *html.Node
		switch {
		case b.Offset <= 0:
			ref = b.Node
		case b.Offset >= dom.TextLen(b.Node):
			ref = b.Node.NextSibling
		default:
			ref = dom.SplitText(b.Node, b.Offset)
		}
		for _, n := range nodes {
			dom.InsertBefore(parent, n, ref)
		}
		return
	}
	ref := dom.ChildAt(b.Node, b.Offset)
	for _, n := range nodes {
		dom.InsertBefore(b.Node, n, ref)
	}
}

// insertFragment places parsed nodes at a boundary. Block-level nodes are
// hoisted to the top level so a paragraph never swallows another block,
// which would not survive a render and reparse round trip.
func insertFragment(root *html.Node, b selection.Boundary, nodes []*html.Node) {
	if len(nodes) == 0 || b.Node == nil {
		return
	}
	hasBlock := false
	for _, n := range nodes {
		if dom.IsBlock(n) {
			hasBlock = true
			break
		}
	}
	if hasBlock && b.Node != root {
		if top := topLevelOf(root, b.Node); top != nil {
			for i := len(nodes) - 1; i >= 0; i-- {
				dom.InsertAfter(root, nodes[i], top)
			}
			return
		}
	}
	insertNodesAt(b, nodes)
}

// topLevelOf returns the direct child of root that contains n, or nil when
// n is root itself or outside it.
func topLevelOf(root, n *html.Node) *html.Node {
	for x := n; x != nil; x = x.Parent {
		if x.Parent == root {
			return x
		}
	}
	return nil
}

// topAnchor resolves a boundary to the top-level child it falls in. End
// boundaries on the root point one past the covered child.
func topAnchor(root *html.Node, b selection.Boundary, isEnd bool) *html.Node {
	if b.Node == nil {
		return nil
	}
	if b.Node == root {
		idx := b.Offset
		if isEnd && idx > 0 {
			idx--
		}
		if child := dom.ChildAt(root, idx); child != nil {
			return child
		}
		return root.LastChild
	}
	return topLevelOf(root, b.Node)
}

// coveredTopLevel lists the direct children of root spanned by the range,
// in document order.
func coveredTopLevel(root *html.Node, rng selection.Range) []*html.Node {
	first := topAnchor(root, rng.Start, false)
	last := topAnchor(root, rng.End, true)
	if first == nil || last == nil {
		return nil
	}
	var covered []*html.Node
	for n := first; n != nil; n = n.NextSibling {
		covered = append(covered, n)
		if n == last {
			break
		}
	}
	return covered
}

// ensureBlocks wraps loose inline runs among the covered top-level nodes
// into paragraphs so block commands always have a block to act on.
func ensureBlocks(root *html.Node, covered []*html.Node) []*html.Node {
	var blocks []*html.Node
	for i := 0; i < len(covered); {
		n := covered[i]
		if dom.IsBlock(n) {
			blocks = append(blocks, n)
			i++
			continue
		}
		p := dom.NewElement("p")
		dom.InsertBefore(root, p, n)
		for i < len(covered) && !dom.IsBlock(covered[i]) {
			dom.AppendChild(p, covered[i])
			i++
		}
		blocks = append(blocks, p)
	}
	return blocks
}

// blocksForRange resolves the range to the top-level blocks it covers,
// wrapping loose inline content into paragraphs on the way.
func blocksForRange(root *html.Node, rng selection.Range) []*html.Node {
	covered := coveredTopLevel(root, rng)
	if covered == nil {
		return nil
	}
	return ensureBlocks(root, covered)
}

// wrapBlocks moves the blocks into a fresh wrapper element inserted at the
// first block's position and returns the wrapper.
func wrapBlocks(root *html.Node, blocks []*html.Node, tag string) *html.Node {
	if len(blocks) == 0 {
		return nil
	}
	w := dom.NewElement(tag)
	dom.InsertBefore(root, w, blocks[0])
	for _, b := range blocks {
		dom.AppendChild(w, b)
	}
	return w
}

// unwrapList dissolves a list container, turning each item back into a
// paragraph at the list's position.
func unwrapList(root, list *html.Node) {
	for c := list.FirstChild; c != nil; c = list.FirstChild {
		if dom.TagIs(c, "li") {
			p := dom.NewElement("p")
			dom.MoveChildren(p, c)
			dom.InsertBefore(root, p, list)
			list.RemoveChild(c)
			continue
		}
		dom.InsertBefore(root, c, list)
	}
	dom.Detach(list)
}

// renameList swaps a list container's tag, keeping its items.
func renameList(list *html.Node, tag string) *html.Node {
	if list.Parent == nil {
		return list
	}
	repl := dom.NewElement(tag)
	dom.InsertBefore(list.Parent, repl, list)
	dom.MoveChildren(repl, list)
	dom.Detach(list)
	return repl
}

// setBlockTag replaces block's tag, moving the children over and dropping
// attributes. List and table containers are left alone since renaming them
// would destroy their structure. Returns the surviving element.
func setBlockTag(block *html.Node, tag string) *html.Node {
	if dom.TagName(block) == tag || dom.TagIs(block, "ul", "ol", "table") {
		return block
	}
	if block.Parent == nil {
		return block
	}
	repl := dom.NewElement(tag)
	dom.InsertBefore(block.Parent, repl, block)
	dom.MoveChildren(repl, block)
	dom.Detach(block)
	return repl
}

// setStyleProperty rewrites n's style attribute with prop set to value,
// keeping unrelated declarations.
func setStyleProperty(n *html.Node, prop, value string) {
	raw, _ := dom.Attr(n, "style")
	var decls []string
	for _, part := range strings.Split(raw, ";") {
		name, _, found := strings.Cut(part, ":")
		if !found || strings.EqualFold(strings.TrimSpace(name), prop) {
			continue
		}
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			decls = append(decls, trimmed)
		}
	}
	decls = append(decls, prop+": "+value)
	dom.SetAttr(n, "style", strings.Join(decls, "; "))
}
