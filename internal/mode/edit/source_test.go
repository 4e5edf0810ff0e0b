package edit

import (
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
)

func TestHighlightMarkup_PreservesText(t *testing.T) {
	in := `<p class="x">hello <b>bold</b></p>`
	out := ansi.Strip(highlightMarkup(in))
	assert.Equal(t, in, out, "highlighting must not change the markup text")
}

func TestHighlightMarkup_SelfClosingTag(t *testing.T) {
	out := ansi.Strip(highlightMarkup(`<p>a</p><hr/><p>b</p>`))
	assert.Contains(t, out, "<hr/>")
}

func TestHighlightMarkup_CharacterReferences(t *testing.T) {
	in := `<p>a &amp; b &#8212; c &#x2014; d</p>`
	out := ansi.Strip(highlightMarkup(in))
	assert.Equal(t, in, out, "entity styling must not change the raw text")
}

func TestHighlightMarkup_Comment(t *testing.T) {
	out := ansi.Strip(highlightMarkup(`<p>a</p><!-- note -->`))
	assert.Contains(t, out, "<!-- note -->")
}

func TestHighlightMarkup_EmptyInput(t *testing.T) {
	assert.Equal(t, "", highlightMarkup(""))
}
