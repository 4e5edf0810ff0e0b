package format

import (
	"context"
	"strings"
	"time"

	"github.com/aymerick/douceur/parser"
	"golang.org/x/net/html"

	"github.com/zjrosen/plume/internal/cachemanager"
	"github.com/zjrosen/plume/internal/editor/dom"
)

// styleTTL bounds how long parsed declaration lists stay cached. Style
// attribute strings repeat heavily across a document, so ancestry walks see
// high hit rates on the parse cache.
const styleTTL = 10 * time.Minute

func newStyleCache() *styleCache {
	inner := cachemanager.NewInMemoryCacheManager[string, map[string]string](
		"style-parse",
		cachemanager.DefaultExpiration,
		cachemanager.DefaultCleanupInterval,
	)
	return &styleCache{
		cache: cachemanager.NewReadThroughCache(inner, parseDeclarations, false),
	}
}

// styleCache memoizes douceur parses of raw style attribute strings.
type styleCache struct {
	cache *cachemanager.ReadThroughCache[string, map[string]string, string]
}

// parseDeclarations parses a style attribute into property→value form.
// Later declarations of the same property win, matching cascade order.
func parseDeclarations(_ context.Context, raw string) (map[string]string, error) {
	decls, err := parser.ParseDeclarations(raw)
	if err != nil {
		return nil, err
	}
	props := make(map[string]string, len(decls))
	for _, d := range decls {
		props[strings.ToLower(d.Property)] = strings.TrimSpace(d.Value)
	}
	return props, nil
}

// inlineStyle returns the value of prop declared directly on n's style
// attribute, or "" when absent or unparseable.
func (s *styleCache) inlineStyle(n *html.Node, prop string) string {
	raw, ok := dom.Attr(n, "style")
	if !ok || strings.TrimSpace(raw) == "" {
		return ""
	}
	props, err := s.cache.Get(context.Background(), raw, raw, styleTTL)
	if err != nil {
		return ""
	}
	return props[prop]
}

// computedStyle approximates the rendered value of prop at n by walking
// n's own tree toward its root and returning the nearest inline
// declaration. The walk keys off the node's actual tree, so detached
// fragments and surfaces hosted in a foreign document resolve against
// their own context rather than the resolver's.
func (s *styleCache) computedStyle(n *html.Node, prop string) string {
	for x := n; x != nil; x = x.Parent {
		if !dom.IsElement(x) {
			continue
		}
		if v := s.inlineStyle(x, prop); v != "" {
			return v
		}
	}
	return ""
}
