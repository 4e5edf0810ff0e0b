package command

import (
	"fmt"
	"strconv"

	"golang.org/x/net/html"

	"github.com/zjrosen/plume/internal/editor/dom"
	"github.com/zjrosen/plume/internal/editor/history"
	"github.com/zjrosen/plume/internal/editor/selection"
)

// markTags lists the inline formatting elements clear-formatting strips.
// Links survive it, matching what editors conventionally do.
var markTags = []string{
	"b", "strong", "i", "em", "u", "ins", "s", "strike", "del",
	"sub", "sup", "code", "span", "mark",
}

// builtins returns the built-in command table.
func builtins() []*Command {
	return []*Command{
		{Name: "bold", Category: "inline", Kind: KindToggle, RequiresSelection: true, Toolbar: true,
			Handler: toggleMark("b", "b", "strong")},
		{Name: "italic", Category: "inline", Kind: KindToggle, RequiresSelection: true, Toolbar: true,
			Handler: toggleMark("i", "i", "em")},
		{Name: "underline", Category: "inline", Kind: KindToggle, RequiresSelection: true, Toolbar: true,
			Handler: toggleMark("u", "u", "ins")},
		{Name: "strikethrough", Category: "inline", Kind: KindToggle, RequiresSelection: true, Toolbar: true,
			Handler: toggleMark("s", "s", "strike", "del")},
		{Name: "code", Category: "inline", Kind: KindToggle, RequiresSelection: true, Toolbar: true,
			Handler: toggleMark("code", "code")},
		{Name: "subscript", Category: "inline", Kind: KindToggle, RequiresSelection: true, ExclusiveGroup: "script",
			Handler: toggleMark("sub", "sub")},
		{Name: "superscript", Category: "inline", Kind: KindToggle, RequiresSelection: true, ExclusiveGroup: "script",
			Handler: toggleMark("sup", "sup")},
		{Name: "removeFormat", Category: "inline", Kind: KindAction, RequiresSelection: true, Toolbar: true,
			Handler: removeFormatHandler},

		{Name: "heading", Category: "block", Kind: KindApply, ExclusiveGroup: "block", Toolbar: true,
			Handler: headingHandler},
		{Name: "paragraph", Category: "block", Kind: KindApply, ExclusiveGroup: "block", Toolbar: true,
			Handler: blockTagHandler("p")},
		{Name: "blockquote", Category: "block", Kind: KindToggle, ExclusiveGroup: "block", Toolbar: true,
			Handler: blockquoteHandler},
		{Name: "codeBlock", Category: "block", Kind: KindApply, ExclusiveGroup: "block", Toolbar: true,
			Handler: blockTagHandler("pre")},
		{Name: "orderedList", Category: "block", Kind: KindToggle, ExclusiveGroup: "list", Toolbar: true,
			Handler: listHandler("ol")},
		{Name: "unorderedList", Category: "block", Kind: KindToggle, ExclusiveGroup: "list", Toolbar: true,
			Handler: listHandler("ul")},
		{Name: "alignLeft", Category: "block", Kind: KindApply, ExclusiveGroup: "alignment", Toolbar: true,
			Handler: alignHandler("left")},
		{Name: "alignCenter", Category: "block", Kind: KindApply, ExclusiveGroup: "alignment", Toolbar: true,
			Handler: alignHandler("center")},
		{Name: "alignRight", Category: "block", Kind: KindApply, ExclusiveGroup: "alignment", Toolbar: true,
			Handler: alignHandler("right")},
		{Name: "alignJustify", Category: "block", Kind: KindApply, ExclusiveGroup: "alignment", Toolbar: true,
			Handler: alignHandler("justify")},
		{Name: "indent", Category: "block", Kind: KindAction,
			Handler: indentHandler},
		{Name: "outdent", Category: "block", Kind: KindAction,
			Handler: outdentHandler},

		{Name: "link", Category: "insert", Kind: KindApply, Toolbar: true,
			CanExecute: linkEnabled, Handler: linkHandler},
		{Name: "unlink", Category: "insert", Kind: KindAction,
			Handler: unlinkHandler},
		{Name: "insertHorizontalRule", Category: "insert", Kind: KindAction, Toolbar: true,
			Handler: insertHorizontalRuleHandler},
		{Name: "insertHTML", Category: "insert", Kind: KindApply,
			Handler: insertHTMLHandler},
		{Name: "insertText", Category: "insert", Kind: KindApply,
			Handler: insertTextHandler},

		{Name: "setFontSize", Category: "style", Kind: KindApply, RequiresSelection: true,
			Handler: styleSpan("font-size", cssLength)},
		{Name: "setFontFamily", Category: "style", Kind: KindApply, RequiresSelection: true,
			Handler: styleSpan("font-family", cssString)},
		{Name: "setTextColor", Category: "style", Kind: KindApply, RequiresSelection: true,
			Handler: styleSpan("color", cssString)},
		{Name: "setBackgroundColor", Category: "style", Kind: KindApply, RequiresSelection: true,
			Handler: styleSpan("background-color", cssString)},

		{Name: "undo", Category: "history", Kind: KindAction, Toolbar: true,
			CanExecute: func(ctx *Context) bool { return ctx.History.CanUndo() },
			Handler:    undoHandler},
		{Name: "redo", Category: "history", Kind: KindAction, Toolbar: true,
			CanExecute: func(ctx *Context) bool { return ctx.History.CanRedo() },
			Handler:    redoHandler},
	}
}

// toggleMark builds a handler that unwraps the nearest ancestor matching
// one of matchTags when present, and otherwise wraps the selected text in
// applyTag. With no ancestor and a collapsed selection there is nothing to
// act on.
func toggleMark(applyTag string, matchTags ...string) func(*Context) error {
	return func(ctx *Context) error {
		state, ok := ctx.Selection.Current()
		if !ok {
			return nil
		}
		if a := findAncestorTag(ctx.Root, anchorElement(state.Range), matchTags...); a != nil {
			dom.Unwrap(a)
			return nil
		}
		if state.Collapsed {
			return nil
		}
		wrapRange(ctx.Root, state.Range, func() *html.Node {
			return dom.NewElement(applyTag)
		})
		return nil
	}
}

func removeFormatHandler(ctx *Context) error {
	state, ok := ctx.Selection.Current()
	if !ok || state.Collapsed {
		return nil
	}
	rng := splitBoundaries(state.Range)
	removeMarks(ctx.Root, rng, markTags...)
	return nil
}

// headingHandler formats the covered blocks as the given heading level.
// Without a level it formats back to a paragraph, which is how a heading
// gets removed.
func headingHandler(ctx *Context) error {
	if len(ctx.Args) == 0 {
		return setBlocks(ctx, "p")
	}
	level, ok := intArg(ctx.Args, 0)
	if !ok {
		return nil
	}
	if level == 0 {
		return setBlocks(ctx, "p")
	}
	if level < 1 || level > 6 {
		return nil
	}
	return setBlocks(ctx, "h"+strconv.Itoa(level))
}

func blockTagHandler(tag string) func(*Context) error {
	return func(ctx *Context) error {
		return setBlocks(ctx, tag)
	}
}

func setBlocks(ctx *Context, tag string) error {
	state, ok := ctx.Selection.Current()
	if !ok {
		return nil
	}
	for _, block := range blocksForRange(ctx.Root, state.Range) {
		setBlockTag(block, tag)
	}
	return nil
}

// blockquoteHandler toggles. An active blockquote turns back into plain
// paragraphs; anything else gets wrapped in a fresh one.
func blockquoteHandler(ctx *Context) error {
	state, ok := ctx.Selection.Current()
	if !ok {
		return nil
	}
	if state.Format.Blockquote {
		bq := findAncestorTag(ctx.Root, anchorElement(state.Range), "blockquote")
		if bq == nil {
			return nil
		}
		if blockChildrenOnly(bq) {
			dom.Unwrap(bq)
		} else {
			setBlockTag(bq, "p")
		}
		return nil
	}
	wrapBlocks(ctx.Root, blocksForRange(ctx.Root, state.Range), "blockquote")
	return nil
}

func blockChildrenOnly(n *html.Node) bool {
	if n.FirstChild == nil {
		return false
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if !dom.IsBlock(c) {
			return false
		}
	}
	return true
}

func listHandler(tag string) func(*Context) error {
	other := "ol"
	if tag == "ol" {
		other = "ul"
	}
	return func(ctx *Context) error {
		state, ok := ctx.Selection.Current()
		if !ok {
			return nil
		}
		blocks := blocksForRange(ctx.Root, state.Range)
		if len(blocks) == 0 {
			return nil
		}
		switch {
		case dom.TagIs(blocks[0], tag):
			for _, b := range blocks {
				if dom.TagIs(b, tag) {
					unwrapList(ctx.Root, b)
				}
			}
		case dom.TagIs(blocks[0], other):
			for _, b := range blocks {
				if dom.TagIs(b, other) {
					renameList(b, tag)
				}
			}
		default:
			list := dom.NewElement(tag)
			dom.InsertBefore(ctx.Root, list, blocks[0])
			for _, b := range blocks {
				if dom.TagIs(b, tag, other) {
					continue
				}
				li := dom.NewElement("li")
				dom.MoveChildren(li, b)
				dom.Detach(b)
				dom.AppendChild(list, li)
			}
		}
		return nil
	}
}

func alignHandler(value string) func(*Context) error {
	return func(ctx *Context) error {
		state, ok := ctx.Selection.Current()
		if !ok {
			return nil
		}
		for _, block := range blocksForRange(ctx.Root, state.Range) {
			setStyleProperty(block, "text-align", value)
		}
		return nil
	}
}

func indentHandler(ctx *Context) error {
	state, ok := ctx.Selection.Current()
	if !ok {
		return nil
	}
	wrapBlocks(ctx.Root, blocksForRange(ctx.Root, state.Range), "blockquote")
	return nil
}

func outdentHandler(ctx *Context) error {
	state, ok := ctx.Selection.Current()
	if !ok {
		return nil
	}
	if bq := findAncestorTag(ctx.Root, anchorElement(state.Range), "blockquote"); bq != nil {
		dom.Unwrap(bq)
	}
	return nil
}

func linkEnabled(ctx *Context) bool {
	state, ok := ctx.Selection.Current()
	if !ok {
		return false
	}
	return !state.Collapsed || state.Format.Link != ""
}

// linkHandler mutates the destination of an enclosing link in place rather
// than nesting a second anchor. Without an enclosing link it wraps the
// selected text; a collapsed, non-linked selection is a no-op.
func linkHandler(ctx *Context) error {
	url, ok := stringArg(ctx.Args, 0)
	if !ok || url == "" {
		return nil
	}
	state, ok := ctx.Selection.Current()
	if !ok {
		return nil
	}
	if a := findAncestorTag(ctx.Root, anchorElement(state.Range), "a"); a != nil {
		dom.SetAttr(a, "href", url)
		return nil
	}
	if state.Collapsed {
		return nil
	}
	wrapRange(ctx.Root, state.Range, func() *html.Node {
		a := dom.NewElement("a")
		dom.SetAttr(a, "href", url)
		return a
	})
	return nil
}

func unlinkHandler(ctx *Context) error {
	state, ok := ctx.Selection.Current()
	if !ok {
		return nil
	}
	if a := findAncestorTag(ctx.Root, anchorElement(state.Range), "a"); a != nil {
		dom.Unwrap(a)
		return nil
	}
	if !state.Collapsed {
		removeMarks(ctx.Root, splitBoundaries(state.Range), "a")
	}
	return nil
}

func insertHorizontalRuleHandler(ctx *Context) error {
	hr := dom.NewElement("hr")
	state, ok := ctx.Selection.Current()
	if !ok {
		dom.AppendChild(ctx.Root, hr)
		return nil
	}
	if top := topAnchor(ctx.Root, state.Range.Start, false); top != nil {
		dom.InsertAfter(ctx.Root, hr, top)
		return nil
	}
	dom.AppendChild(ctx.Root, hr)
	return nil
}

func insertHTMLHandler(ctx *Context) error {
	markup, ok := stringArg(ctx.Args, 0)
	if !ok || markup == "" {
		return nil
	}
	nodes, err := dom.ParseFragment(ctx.Sanitizer.Sanitize(markup))
	if err != nil {
		return fmt.Errorf("parse inserted markup: %w", err)
	}
	insertFragment(ctx.Root, insertionPoint(ctx), nodes)
	return nil
}

func insertTextHandler(ctx *Context) error {
	text, ok := stringArg(ctx.Args, 0)
	if !ok {
		return nil
	}
	// Empty text deletes a non-collapsed selection and nothing else.
	if text == "" {
		if state, ok := ctx.Selection.Current(); ok && !state.Collapsed {
			deleteRange(ctx.Root, state.Range)
		}
		return nil
	}
	insertFragment(ctx.Root, insertionPoint(ctx), []*html.Node{dom.NewText(text)})
	return nil
}

// insertionPoint resolves where inserted content lands: at the caret, in
// place of a non-collapsed selection's content, or at the end of the
// surface when there is no selection at all.
func insertionPoint(ctx *Context) selection.Boundary {
	state, ok := ctx.Selection.Current()
	if !ok {
		return selection.Boundary{Node: ctx.Root, Offset: dom.ChildCount(ctx.Root)}
	}
	if state.Collapsed {
		return state.Range.Start
	}
	return deleteRange(ctx.Root, state.Range)
}

// styleSpan builds a handler that wraps the selection in spans carrying a
// single inline style property.
func styleSpan(prop string, coerce func(arg any) (string, bool)) func(*Context) error {
	return func(ctx *Context) error {
		if len(ctx.Args) == 0 {
			return nil
		}
		value, ok := coerce(ctx.Args[0])
		if !ok || value == "" {
			return nil
		}
		state, ok := ctx.Selection.Current()
		if !ok || state.Collapsed {
			return nil
		}
		wrapRange(ctx.Root, state.Range, func() *html.Node {
			span := dom.NewElement("span")
			setStyleProperty(span, prop, value)
			return span
		})
		return nil
	}
}

// cssString accepts string arguments only; anything else is malformed.
func cssString(arg any) (string, bool) {
	s, ok := arg.(string)
	return s, ok
}

// cssLength accepts strings as-is, interpreting bare numbers as pixels.
func cssLength(arg any) (string, bool) {
	switch v := arg.(type) {
	case string:
		if v == "" {
			return "", false
		}
		if _, err := strconv.ParseFloat(v, 64); err == nil {
			return v + "px", true
		}
		return v, true
	case int:
		return strconv.Itoa(v) + "px", true
	case int64:
		return strconv.FormatInt(v, 10) + "px", true
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64) + "px", true
	default:
		return "", false
	}
}

func undoHandler(ctx *Context) error {
	entry, ok := ctx.History.Undo()
	if !ok {
		return nil
	}
	return applyEntry(ctx, entry)
}

func redoHandler(ctx *Context) error {
	entry, ok := ctx.History.Redo()
	if !ok {
		return nil
	}
	return applyEntry(ctx, entry)
}

// applyEntry replaces the surface content with a history snapshot. The
// active selection is cleared since its boundaries point into the old
// tree.
func applyEntry(ctx *Context, entry history.Entry) error {
	nodes, err := dom.ParseFragment(entry.Content)
	if err != nil {
		return fmt.Errorf("parse history snapshot: %w", err)
	}
	dom.ReplaceChildren(ctx.Root, nodes...)
	ctx.Selection.ClearActive()
	return nil
}
