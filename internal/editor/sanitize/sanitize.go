// Package sanitize filters externally supplied markup before it reaches
// the editable surface. Disallowed but harmless tags are unwrapped so their
// content survives; script and style payloads are dropped outright. Pasted
// markup gets an extra pre-pass that strips office-suite and cloud-editor
// noise before the policy runs.
package sanitize

import (
	"regexp"

	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/net/html"

	"github.com/zjrosen/plume/internal/editor/dom"
)

// allowedStyles are the inline style properties the engine understands.
// Everything else (mso-* junk included) is dropped by the policy.
var allowedStyles = []string{
	"color",
	"background-color",
	"font-size",
	"font-family",
	"font-weight",
	"font-style",
	"text-align",
	"text-decoration",
	"text-decoration-line",
}

var (
	htmlComments   = regexp.MustCompile(`(?s)<!--.*?-->`)
	xmlBlocks      = regexp.MustCompile(`(?is)<xml.*?</xml>`)
	styleBlocks    = regexp.MustCompile(`(?is)<style.*?</style>`)
	namespacedTags = regexp.MustCompile(`(?i)</?[a-z]+:[^>]*>`)
	headLinkMeta   = regexp.MustCompile(`(?i)<(?:meta|link)[^>]*>`)
	msoClasses     = regexp.MustCompile(`(?i)\sclass="mso[^"]*"`)
	msoStyleDecls  = regexp.MustCompile(`(?i)mso-[^:;"']+:[^;"']*;?`)
	// Google Docs wraps the whole payload in a guid-tagged b or span; the
	// wrapper must go before the policy strips the id, or everything
	// inside a b wrapper turns bold.
	docsGuidWrap = regexp.MustCompile(`(?is)<(b|span)[^>]*docs-internal-guid[^>]*>(.*)</(?:b|span)>`)
)

// Sanitizer owns a fixed markup policy shared by content replacement and
// paste handling.
type Sanitizer struct {
	policy *bluemonday.Policy
}

// New builds the engine's sanitizer policy.
func New() *Sanitizer {
	p := bluemonday.NewPolicy()

	p.AllowElements(
		"p", "div", "br", "hr",
		"h1", "h2", "h3", "h4", "h5", "h6",
		"ul", "ol", "li", "blockquote", "pre",
		"b", "strong", "i", "em", "u", "ins", "s", "strike", "del",
		"sub", "sup", "code", "span", "mark", "a", "img",
	)

	p.AllowAttrs("href", "target", "rel").OnElements("a")
	p.AllowAttrs("src", "alt", "width", "height").OnElements("img")
	p.AllowAttrs("class", "data-type").OnElements("span")
	p.AllowAttrs("align").OnElements(
		"p", "div", "h1", "h2", "h3", "h4", "h5", "h6", "li", "blockquote",
	)
	p.AllowStyles(allowedStyles...).Globally()

	p.AllowURLSchemes("http", "https", "mailto")
	p.RequireParseableURLs(true)
	p.SkipElementsContent("script", "style", "head", "title")

	return &Sanitizer{policy: p}
}

// Sanitize filters a markup string through the policy, then prunes inline
// elements the filtering left empty.
func (s *Sanitizer) Sanitize(markup string) string {
	return dropEmpties(s.policy.Sanitize(markup))
}

// SanitizePaste strips office-suite and cloud-editor markup noise, then
// applies the same policy as Sanitize. Paste payloads never bypass the
// policy.
func (s *Sanitizer) SanitizePaste(markup string) string {
	markup = htmlComments.ReplaceAllString(markup, "")
	markup = xmlBlocks.ReplaceAllString(markup, "")
	markup = styleBlocks.ReplaceAllString(markup, "")
	markup = namespacedTags.ReplaceAllString(markup, "")
	markup = headLinkMeta.ReplaceAllString(markup, "")
	markup = msoClasses.ReplaceAllString(markup, "")
	markup = msoStyleDecls.ReplaceAllString(markup, "")
	markup = docsGuidWrap.ReplaceAllString(markup, "$2")
	return s.Sanitize(markup)
}

// dropEmpties prunes inline elements the policy left with nothing but
// whitespace, under the normalizer's emptiness rule: preserved elements
// (line breaks, rules, images) count as content and keep their hosts.
func dropEmpties(markup string) string {
	nodes, err := dom.ParseFragment(markup)
	if err != nil {
		return markup
	}
	root := dom.NewElement("div")
	for _, n := range nodes {
		dom.AppendChild(root, n)
	}
	pruneEmptyInlines(root)
	return dom.RenderChildren(root)
}

func pruneEmptyInlines(n *html.Node) {
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		if dom.IsElement(c) {
			pruneEmptyInlines(c)
			if dom.IsMergeableInline(c) && dom.IsEmptyElement(c) {
				n.RemoveChild(c)
			}
		}
		c = next
	}
}
