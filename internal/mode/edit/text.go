package edit

import (
	"unicode"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// Caret positions are rune offsets into the document's plain-text
// projection, matching what the engine's text-offset selection API and
// history snapshots use. Arrow keys still have to move over whole
// grapheme clusters (emoji, combining marks), so the movement helpers
// walk cluster boundaries and report them as rune offsets.

// prevBoundary returns the rune offset of the grapheme boundary before
// offset, or 0 when already at the start.
func prevBoundary(text string, offset int) int {
	if offset <= 0 {
		return 0
	}
	prev := 0
	pos := 0
	state := -1
	for len(text) > 0 {
		cluster, rest, _, newState := uniseg.StepString(text, state)
		next := pos + len([]rune(cluster))
		if next >= offset {
			return prev
		}
		prev = next
		pos = next
		text = rest
		state = newState
	}
	return prev
}

// nextBoundary returns the rune offset of the grapheme boundary after
// offset, clamped to the text length.
func nextBoundary(text string, offset int) int {
	pos := 0
	state := -1
	for len(text) > 0 {
		cluster, rest, _, newState := uniseg.StepString(text, state)
		next := pos + len([]rune(cluster))
		if pos >= offset {
			return next
		}
		pos = next
		text = rest
		state = newState
	}
	return pos
}

// prevWord returns the rune offset of the start of the word before
// offset: skip any whitespace to the left, then the run of non-space.
func prevWord(text string, offset int) int {
	runes := []rune(text)
	if offset > len(runes) {
		offset = len(runes)
	}
	i := offset
	for i > 0 && unicode.IsSpace(runes[i-1]) {
		i--
	}
	for i > 0 && !unicode.IsSpace(runes[i-1]) {
		i--
	}
	return i
}

// nextWord returns the rune offset just past the word after offset.
func nextWord(text string, offset int) int {
	runes := []rune(text)
	if offset < 0 {
		offset = 0
	}
	i := offset
	for i < len(runes) && unicode.IsSpace(runes[i]) {
		i++
	}
	for i < len(runes) && !unicode.IsSpace(runes[i]) {
		i++
	}
	return i
}

// clampOffset keeps an offset inside [0, rune length of text].
func clampOffset(text string, offset int) int {
	if offset < 0 {
		return 0
	}
	if n := len([]rune(text)); offset > n {
		return n
	}
	return offset
}

// displayColumn returns the terminal column of a rune offset, counting
// cell widths so CJK and emoji report where the caret actually sits.
func displayColumn(text string, offset int) int {
	runes := []rune(text)
	if offset > len(runes) {
		offset = len(runes)
	}
	return runewidth.StringWidth(string(runes[:offset]))
}
