package dom

import "golang.org/x/net/html"

// ChildCount returns the number of direct children of n.
func ChildCount(n *html.Node) int {
	count := 0
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		count++
	}
	return count
}

// ChildAt returns the i-th direct child of n, or nil when out of range.
func ChildAt(n *html.Node, i int) *html.Node {
	if i < 0 {
		return nil
	}
	c := n.FirstChild
	for ; c != nil && i > 0; c = c.NextSibling {
		i--
	}
	return c
}

// ChildIndex returns n's position among its parent's children, or -1 when
// n is detached.
func ChildIndex(n *html.Node) int {
	if n == nil || n.Parent == nil {
		return -1
	}
	i := 0
	for c := n.Parent.FirstChild; c != nil; c = c.NextSibling {
		if c == n {
			return i
		}
		i++
	}
	return -1
}

// Contains reports whether n is ancestor itself or a descendant of it.
func Contains(ancestor, n *html.Node) bool {
	for x := n; x != nil; x = x.Parent {
		if x == ancestor {
			return true
		}
	}
	return false
}

// Detach removes n from its parent. Detaching an already-detached node is
// a no-op.
func Detach(n *html.Node) {
	if n != nil && n.Parent != nil {
		n.Parent.RemoveChild(n)
	}
}

// InsertBefore inserts n under parent ahead of ref. A nil ref appends.
// n is detached from any previous parent first.
func InsertBefore(parent, n, ref *html.Node) {
	Detach(n)
	if ref == nil {
		parent.AppendChild(n)
		return
	}
	parent.InsertBefore(n, ref)
}

// InsertAfter inserts n under parent immediately after ref. A nil ref
// prepends.
func InsertAfter(parent, n, ref *html.Node) {
	if ref == nil {
		InsertBefore(parent, n, parent.FirstChild)
		return
	}
	InsertBefore(parent, n, ref.NextSibling)
}

// AppendChild appends n as the last child of parent, detaching it first.
func AppendChild(parent, n *html.Node) {
	Detach(n)
	parent.AppendChild(n)
}

// Unwrap replaces n with its own children, preserving order. A detached
// node is simply emptied.
func Unwrap(n *html.Node) {
	parent := n.Parent
	for c := n.FirstChild; c != nil; c = n.FirstChild {
		n.RemoveChild(c)
		if parent != nil {
			parent.InsertBefore(c, n)
		}
	}
	Detach(n)
}

// MoveChildren moves every child of src to the end of dst, preserving order.
func MoveChildren(dst, src *html.Node) {
	for c := src.FirstChild; c != nil; c = src.FirstChild {
		src.RemoveChild(c)
		dst.AppendChild(c)
	}
}

// ReplaceChildren removes every child of n and appends the given nodes.
func ReplaceChildren(n *html.Node, children ...*html.Node) {
	for c := n.FirstChild; c != nil; c = n.FirstChild {
		n.RemoveChild(c)
	}
	for _, c := range children {
		AppendChild(n, c)
	}
}

// SplitText splits a text node at a rune offset and returns the node that
// holds the tail. An offset at or past either end leaves the node intact
// and returns nil.
func SplitText(n *html.Node, offset int) *html.Node {
	if !IsText(n) || n.Parent == nil {
		return nil
	}
	runes := []rune(n.Data)
	if offset <= 0 || offset >= len(runes) {
		return nil
	}
	tail := NewText(string(runes[offset:]))
	n.Data = string(runes[:offset])
	InsertAfter(n.Parent, tail, n)
	return tail
}

// CoalesceText merges runs of adjacent text-node children throughout n's
// subtree and drops text nodes that end up empty.
func CoalesceText(n *html.Node) {
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		if IsText(c) {
			for next != nil && IsText(next) {
				c.Data += next.Data
				after := next.NextSibling
				n.RemoveChild(next)
				next = after
			}
			if c.Data == "" {
				n.RemoveChild(c)
			}
		} else {
			CoalesceText(c)
		}
		c = next
	}
}

// nodePath returns the child-index path from the tree root down to n.
func nodePath(n *html.Node) []int {
	var path []int
	for x := n; x.Parent != nil; x = x.Parent {
		path = append([]int{ChildIndex(x)}, path...)
	}
	return path
}

// ComparePoints orders two boundary points within the same tree. It returns
// -1 when (n1,o1) precedes (n2,o2) in document order, 1 when it follows,
// and 0 when the points are identical.
func ComparePoints(n1 *html.Node, o1 int, n2 *html.Node, o2 int) int {
	if n1 == n2 {
		switch {
		case o1 < o2:
			return -1
		case o1 > o2:
			return 1
		default:
			return 0
		}
	}
	p1 := append(nodePath(n1), o1)
	p2 := append(nodePath(n2), o2)
	for i := 0; i < len(p1) && i < len(p2); i++ {
		if p1[i] != p2[i] {
			if p1[i] < p2[i] {
				return -1
			}
			return 1
		}
	}
	// One path is a prefix of the other: the shorter one is the ancestor
	// and its offset already consumed the shared stretch.
	if len(p1) < len(p2) {
		return -1
	}
	return 1
}
