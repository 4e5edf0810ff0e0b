package editor

// Typed formatting surface. Each method is a thin call into the command
// pipeline; Execute accepts the same names directly.

// Bold toggles bold over the selection.
func (e *Editor) Bold() { e.Execute("bold") }

// Italic toggles italic over the selection.
func (e *Editor) Italic() { e.Execute("italic") }

// Underline toggles underline over the selection.
func (e *Editor) Underline() { e.Execute("underline") }

// Strikethrough toggles strikethrough over the selection.
func (e *Editor) Strikethrough() { e.Execute("strikethrough") }

// Code toggles inline code over the selection.
func (e *Editor) Code() { e.Execute("code") }

// Subscript toggles subscript over the selection.
func (e *Editor) Subscript() { e.Execute("subscript") }

// Superscript toggles superscript over the selection.
func (e *Editor) Superscript() { e.Execute("superscript") }

// RemoveFormat strips inline marks from the selection. Links survive.
func (e *Editor) RemoveFormat() { e.Execute("removeFormat") }

// Heading converts the selection's blocks to the given level. Level 0
// converts back to paragraphs.
func (e *Editor) Heading(level int) { e.Execute("heading", level) }

// Paragraph converts the selection's blocks to paragraphs.
func (e *Editor) Paragraph() { e.Execute("paragraph") }

// Blockquote toggles a blockquote around the selection's blocks.
func (e *Editor) Blockquote() { e.Execute("blockquote") }

// CodeBlock converts the selection's blocks to preformatted blocks.
func (e *Editor) CodeBlock() { e.Execute("codeBlock") }

// OrderedList toggles an ordered list over the selection's blocks.
func (e *Editor) OrderedList() { e.Execute("orderedList") }

// UnorderedList toggles an unordered list over the selection's blocks.
func (e *Editor) UnorderedList() { e.Execute("unorderedList") }

// AlignLeft left-aligns the selection's blocks.
func (e *Editor) AlignLeft() { e.Execute("alignLeft") }

// AlignCenter centers the selection's blocks.
func (e *Editor) AlignCenter() { e.Execute("alignCenter") }

// AlignRight right-aligns the selection's blocks.
func (e *Editor) AlignRight() { e.Execute("alignRight") }

// AlignJustify justifies the selection's blocks.
func (e *Editor) AlignJustify() { e.Execute("alignJustify") }

// Indent increases the selection's block indentation.
func (e *Editor) Indent() { e.Execute("indent") }

// Outdent decreases the selection's block indentation.
func (e *Editor) Outdent() { e.Execute("outdent") }

// Link wraps the selection in a link, or retargets the link the caret
// sits inside.
func (e *Editor) Link(url string) { e.Execute("link", url) }

// Unlink removes links covering the selection.
func (e *Editor) Unlink() { e.Execute("unlink") }

// InsertHorizontalRule inserts a rule after the selection's block.
func (e *Editor) InsertHorizontalRule() { e.Execute("insertHorizontalRule") }

// InsertHTML sanitizes markup and inserts it at the selection.
func (e *Editor) InsertHTML(markup string) { e.Execute("insertHTML", markup) }

// InsertText inserts plain text at the selection.
func (e *Editor) InsertText(text string) { e.Execute("insertText", text) }

// SetFontSize applies a font size. Bare numbers mean pixels.
func (e *Editor) SetFontSize(size any) { e.Execute("setFontSize", size) }

// SetFontFamily applies a font family to the selection.
func (e *Editor) SetFontFamily(family string) { e.Execute("setFontFamily", family) }

// SetTextColor applies a text color to the selection.
func (e *Editor) SetTextColor(color string) { e.Execute("setTextColor", color) }

// SetBackgroundColor applies a background color to the selection.
func (e *Editor) SetBackgroundColor(color string) { e.Execute("setBackgroundColor", color) }

// Undo steps the document back one history entry.
func (e *Editor) Undo() { e.Execute("undo") }

// Redo steps the document forward one history entry.
func (e *Editor) Redo() { e.Execute("redo") }

// Paste inserts externally copied markup. The paste scrubber runs ahead
// of the regular insert sanitization, so office-suite noise never
// reaches the document.
func (e *Editor) Paste(markup string) {
	e.mu.Lock()
	if e.destroyed {
		e.mu.Unlock()
		return
	}
	scrubbed := e.sanitizer.SanitizePaste(markup)
	e.exec.Execute("insertHTML", scrubbed)
	pending := e.takeEmits()
	e.mu.Unlock()
	fire(pending)
}
