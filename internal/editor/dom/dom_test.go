package dom

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
	"pgregory.net/rapid"
)

func TestParseFragment_ReturnsDetachedNodes(t *testing.T) {
	nodes, err := ParseFragment("<p>hello</p><p>world</p>")
	require.NoError(t, err, "fragment should parse")
	require.Len(t, nodes, 2, "expected two top-level paragraphs")

	for _, n := range nodes {
		assert.Nil(t, n.Parent, "parsed fragment nodes should be detached")
	}
	assert.Equal(t, "p", TagName(nodes[0]))
	assert.Equal(t, "hello", NodeText(nodes[0]))
}

func TestRenderChildren_OmitsContainerTag(t *testing.T) {
	root := NewElement("div")
	nodes, err := ParseFragment("<p>a</p><p>b</p>")
	require.NoError(t, err)
	for _, n := range nodes {
		AppendChild(root, n)
	}

	assert.Equal(t, "<p>a</p><p>b</p>", RenderChildren(root))
}

func TestClone_IsDeepAndDetached(t *testing.T) {
	nodes, err := ParseFragment(`<p class="x">a<b>b</b></p>`)
	require.NoError(t, err)
	orig := nodes[0]

	cp := Clone(orig)
	require.NotSame(t, orig, cp)
	assert.Nil(t, cp.Parent)
	assert.Equal(t, Render(orig), Render(cp), "clone should serialize identically")

	// Mutating the copy must not leak into the original.
	cp.FirstChild.Data = "changed"
	assert.Equal(t, "a", orig.FirstChild.Data)
}

func TestAttrHelpers(t *testing.T) {
	n := NewElement("span")
	_, ok := Attr(n, "style")
	assert.False(t, ok)

	SetAttr(n, "style", "color: red")
	val, ok := Attr(n, "style")
	require.True(t, ok)
	assert.Equal(t, "color: red", val)

	SetAttr(n, "style", "color: blue")
	val, _ = Attr(n, "style")
	assert.Equal(t, "color: blue", val, "SetAttr should replace in place")

	RemoveAttr(n, "style")
	_, ok = Attr(n, "style")
	assert.False(t, ok)
}

func TestAttrsEqual_IgnoresOrder(t *testing.T) {
	a := NewElement("a")
	SetAttr(a, "href", "https://example.com")
	SetAttr(a, "target", "_blank")

	b := NewElement("a")
	SetAttr(b, "target", "_blank")
	SetAttr(b, "href", "https://example.com")

	assert.True(t, AttrsEqual(a, b))

	SetAttr(b, "rel", "noopener")
	assert.False(t, AttrsEqual(a, b), "extra attribute should break equality")
}

func TestChildIndexAndChildAt(t *testing.T) {
	root := NewElement("div")
	first := NewText("a")
	second := NewElement("b")
	third := NewText("c")
	AppendChild(root, first)
	AppendChild(root, second)
	AppendChild(root, third)

	assert.Equal(t, 3, ChildCount(root))
	assert.Equal(t, 1, ChildIndex(second))
	assert.Same(t, third, ChildAt(root, 2))
	assert.Nil(t, ChildAt(root, 3), "out of range should return nil")
	assert.Equal(t, -1, ChildIndex(NewText("detached")))
}

func TestUnwrap_PromotesChildren(t *testing.T) {
	nodes, err := ParseFragment("<p>a<b>bc</b>d</p>")
	require.NoError(t, err)
	p := nodes[0]
	bold := ChildAt(p, 1)
	require.Equal(t, "b", TagName(bold))

	Unwrap(bold)
	CoalesceText(p)

	assert.Equal(t, "<p>abcd</p>", Render(p))
	assert.Nil(t, bold.Parent)
}

func TestCoalesceText_MergesAdjacentRuns(t *testing.T) {
	root := NewElement("div")
	AppendChild(root, NewText("ab"))
	AppendChild(root, NewText("cd"))
	AppendChild(root, NewText(""))
	child := NewElement("p")
	AppendChild(child, NewText("x"))
	AppendChild(child, NewText("y"))
	AppendChild(root, child)

	CoalesceText(root)

	require.Equal(t, 2, ChildCount(root))
	assert.Equal(t, "abcd", root.FirstChild.Data)
	assert.Equal(t, 1, ChildCount(child))
	assert.Equal(t, "xy", child.FirstChild.Data)
}

func TestComparePoints(t *testing.T) {
	nodes, err := ParseFragment("<p>ab<b>cd</b>ef</p>")
	require.NoError(t, err)
	p := nodes[0]
	first := ChildAt(p, 0)
	bold := ChildAt(p, 1)
	boldText := bold.FirstChild
	last := ChildAt(p, 2)

	tests := []struct {
		name string
		n1   *html.Node
		o1   int
		n2   *html.Node
		o2   int
		want int
	}{
		{"same point", first, 1, first, 1, 0},
		{"offset order in one node", first, 0, first, 2, -1},
		{"sibling order", first, 2, last, 0, -1},
		{"descent follows element point", p, 1, boldText, 1, -1},
		{"element point after descendant", p, 2, boldText, 1, 1},
		{"reverse", last, 1, boldText, 0, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ComparePoints(tt.n1, tt.o1, tt.n2, tt.o2))
		})
	}
}

func TestPlainText_BlockBoundaries(t *testing.T) {
	root := NewElement("div")
	nodes, err := ParseFragment("<p>one</p><p>two<br>three</p>")
	require.NoError(t, err)
	for _, n := range nodes {
		AppendChild(root, n)
	}

	assert.Equal(t, "one\ntwo\nthree", PlainText(root))
}

func TestIsEmptyElement(t *testing.T) {
	tests := []struct {
		name   string
		markup string
		want   bool
	}{
		{"no children", "<b></b>", true},
		{"whitespace only", "<b>   </b>", true},
		{"nbsp only", "<b> </b>", true},
		{"real text", "<b>x</b>", false},
		{"line break child", "<b><br/></b>", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nodes, err := ParseFragment(tt.markup)
			require.NoError(t, err)
			require.Len(t, nodes, 1)
			assert.Equal(t, tt.want, IsEmptyElement(nodes[0]))
		})
	}
}

func TestIsTrivialElement(t *testing.T) {
	tests := []struct {
		name   string
		markup string
		want   bool
	}{
		{"empty paragraph", "<p></p>", true},
		{"paragraph with line break", "<p><br/></p>", true},
		{"paragraph with whitespace and break", "<p> <br/> </p>", true},
		{"paragraph with text", "<p>x</p>", false},
		{"paragraph with two breaks", "<p><br/><br/></p>", false},
		{"paragraph with image", `<p><img src="https://e.example/x.png"/></p>`, false},
		{"lone image", `<img src="https://e.example/x.png"/>`, false},
		{"lone rule", "<hr/>", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nodes, err := ParseFragment(tt.markup)
			require.NoError(t, err)
			require.Len(t, nodes, 1)
			assert.Equal(t, tt.want, IsTrivialElement(nodes[0]))
		})
	}
}

func TestProperty_CloneRendersIdentically(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		words := rapid.SliceOfN(rapid.StringMatching(`[a-z]{1,8}`), 1, 5).Draw(t, "words")
		markup := "<p>"
		for i, w := range words {
			if i%2 == 1 {
				markup += "<b>" + w + "</b>"
			} else {
				markup += w
			}
		}
		markup += "</p>"

		nodes, err := ParseFragment(markup)
		require.NoError(t, err)
		require.Len(t, nodes, 1)

		cp := Clone(nodes[0])
		require.Equal(t, Render(nodes[0]), Render(cp))
	})
}
