package edit

import (
	"regexp"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/net/html"

	"github.com/zjrosen/plume/internal/ui/styles"
)

var entityPattern = regexp.MustCompile(`&(#x?[0-9a-fA-F]+|[a-zA-Z][a-zA-Z0-9]*);`)

var (
	markupTagStyle     lipgloss.Style
	markupAttrStyle    lipgloss.Style
	markupStringStyle  lipgloss.Style
	markupEntityStyle  lipgloss.Style
	markupCommentStyle lipgloss.Style
	markupPunctStyle   lipgloss.Style
	markupTextStyle    lipgloss.Style
)

func rebuildMarkupStyles() {
	markupTagStyle = lipgloss.NewStyle().Foreground(styles.MarkupTagColor)
	markupAttrStyle = lipgloss.NewStyle().Foreground(styles.MarkupAttrColor)
	markupStringStyle = lipgloss.NewStyle().Foreground(styles.MarkupStringColor)
	markupEntityStyle = lipgloss.NewStyle().Foreground(styles.MarkupEntityColor)
	markupCommentStyle = lipgloss.NewStyle().Foreground(styles.MarkupCommentColor)
	markupPunctStyle = lipgloss.NewStyle().Foreground(styles.MarkupPunctColor)
	markupTextStyle = lipgloss.NewStyle().Foreground(styles.MarkupTextColor)
}

// writeText styles a raw text run, picking out character references
// (&amp;, &#8212;, ...) so escaped punctuation stands apart from prose.
func writeText(b *strings.Builder, raw string) {
	last := 0
	for _, loc := range entityPattern.FindAllStringIndex(raw, -1) {
		if loc[0] > last {
			b.WriteString(markupTextStyle.Render(raw[last:loc[0]]))
		}
		b.WriteString(markupEntityStyle.Render(raw[loc[0]:loc[1]]))
		last = loc[1]
	}
	if last < len(raw) {
		b.WriteString(markupTextStyle.Render(raw[last:]))
	}
}

// highlightMarkup colorizes serialized document markup for the source
// pane. It re-tokenizes the already-sanitized output, so malformed input
// is not a concern; an unexpected tokenizer error just returns the rest
// of the input unstyled.
func highlightMarkup(markup string) string {
	tz := html.NewTokenizer(strings.NewReader(markup))
	var b strings.Builder
	for {
		tt := tz.Next()
		switch tt {
		case html.ErrorToken:
			return b.String()

		case html.TextToken:
			writeText(&b, string(tz.Raw()))

		case html.CommentToken:
			b.WriteString(markupCommentStyle.Render(string(tz.Raw())))

		case html.DoctypeToken:
			b.WriteString(markupCommentStyle.Render(string(tz.Raw())))

		case html.StartTagToken, html.SelfClosingTagToken:
			name, hasAttr := tz.TagName()
			b.WriteString(markupPunctStyle.Render("<"))
			b.WriteString(markupTagStyle.Render(string(name)))
			for hasAttr {
				var key, val []byte
				key, val, hasAttr = tz.TagAttr()
				b.WriteString(" ")
				b.WriteString(markupAttrStyle.Render(string(key)))
				b.WriteString(markupPunctStyle.Render("="))
				b.WriteString(markupStringStyle.Render(`"` + string(val) + `"`))
			}
			if tt == html.SelfClosingTagToken {
				b.WriteString(markupPunctStyle.Render("/>"))
			} else {
				b.WriteString(markupPunctStyle.Render(">"))
			}

		case html.EndTagToken:
			name, _ := tz.TagName()
			b.WriteString(markupPunctStyle.Render("</"))
			b.WriteString(markupTagStyle.Render(string(name)))
			b.WriteString(markupPunctStyle.Render(">"))
		}
	}
}
