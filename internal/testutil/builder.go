// Package testutil provides builders for document markup used in tests.
package testutil

import (
	"fmt"
	"strings"
)

// BlockOption configures a block added to a DocBuilder.
type BlockOption func(*blockData)

// blockData holds the attributes for one block.
type blockData struct {
	align string
	style string
}

// Align sets the block's text-align inline style.
func Align(value string) BlockOption {
	return func(b *blockData) { b.align = value }
}

// Style sets a raw inline style on the block.
func Style(css string) BlockOption {
	return func(b *blockData) { b.style = css }
}

// DocBuilder accumulates blocks and serializes them to markup.
type DocBuilder struct {
	blocks []string
}

// NewDoc creates an empty document builder.
func NewDoc() *DocBuilder {
	return &DocBuilder{}
}

// P appends a paragraph. Inline fragments from B/I/A/Code interleave with
// plain text.
func (d *DocBuilder) P(content string, opts ...BlockOption) *DocBuilder {
	return d.block("p", content, opts...)
}

// H appends a heading of the given level.
func (d *DocBuilder) H(level int, content string, opts ...BlockOption) *DocBuilder {
	return d.block(fmt.Sprintf("h%d", level), content, opts...)
}

// Quote appends a blockquote wrapping a paragraph.
func (d *DocBuilder) Quote(content string, opts ...BlockOption) *DocBuilder {
	return d.block("blockquote", "<p>"+content+"</p>", opts...)
}

// Pre appends a preformatted block.
func (d *DocBuilder) Pre(content string, opts ...BlockOption) *DocBuilder {
	return d.block("pre", content, opts...)
}

// List appends an ordered or unordered list with one item per entry.
func (d *DocBuilder) List(ordered bool, items ...string) *DocBuilder {
	tag := "ul"
	if ordered {
		tag = "ol"
	}
	var sb strings.Builder
	for _, item := range items {
		sb.WriteString("<li>" + item + "</li>")
	}
	return d.block(tag, sb.String())
}

// HR appends a horizontal rule.
func (d *DocBuilder) HR() *DocBuilder {
	d.blocks = append(d.blocks, "<hr/>")
	return d
}

// Raw appends markup verbatim.
func (d *DocBuilder) Raw(markup string) *DocBuilder {
	d.blocks = append(d.blocks, markup)
	return d
}

// Build serializes the accumulated blocks.
func (d *DocBuilder) Build() string {
	return strings.Join(d.blocks, "")
}

func (d *DocBuilder) block(tag, content string, opts ...BlockOption) *DocBuilder {
	var data blockData
	for _, opt := range opts {
		opt(&data)
	}
	attrs := ""
	style := data.style
	if data.align != "" {
		if style != "" {
			style += "; "
		}
		style += "text-align: " + data.align
	}
	if style != "" {
		attrs = fmt.Sprintf(` style=%q`, style)
	}
	d.blocks = append(d.blocks, fmt.Sprintf("<%s%s>%s</%s>", tag, attrs, content, tag))
	return d
}

// B wraps text in a bold element.
func B(text string) string { return "<b>" + text + "</b>" }

// I wraps text in an italic element.
func I(text string) string { return "<i>" + text + "</i>" }

// U wraps text in an underline element.
func U(text string) string { return "<u>" + text + "</u>" }

// S wraps text in a strikethrough element.
func S(text string) string { return "<s>" + text + "</s>" }

// Code wraps text in an inline code element.
func Code(text string) string { return "<code>" + text + "</code>" }

// A wraps text in a link to url.
func A(url, text string) string {
	return fmt.Sprintf(`<a href=%q>%s</a>`, url, text)
}

// Span wraps text in a styled span.
func Span(css, text string) string {
	return fmt.Sprintf(`<span style=%q>%s</span>`, css, text)
}
