// Package follow walks article pages by following the first valid link of
// each page.
package follow

import (
	"iter"
	"log/slog"
	"net/url"
	"strings"

	"github.com/fwojciec/wikiloop"
)

const (
	// DefaultDomain is the domain followed pages belong to.
	DefaultDomain = "wikipedia.org"

	// ArticlePrefix is the path prefix of article pages.
	ArticlePrefix = "/wiki/"
)

// Ensure Selector implements wikiloop.LinkSelector at compile time.
var _ wikiloop.LinkSelector = (*Selector)(nil)

// Selector picks the first link of an article that is not external, not a
// link to the page itself, not a meta page, and not inside parentheses or
// italics.
// Selector is safe for concurrent use by multiple goroutines.
type Selector struct {
	// Domain restricts the pages the selector accepts.
	// Subdomains are accepted. Defaults to DefaultDomain when empty.
	Domain string

	Logger *slog.Logger
}

// NewSelector creates a Selector for DefaultDomain.
func NewSelector(logger *slog.Logger) *Selector {
	return &Selector{Domain: DefaultDomain, Logger: logger}
}

// FirstLink returns the first valid link of the main-content region.
// Paragraphs are read in document order; within a paragraph, links are
// considered in document order and only while no parenthesis is open.
func (s *Selector) FirstLink(pageURL string, main *wikiloop.Node) (string, error) {
	page, err := url.Parse(pageURL)
	if err != nil {
		return "", wikiloop.Errorf(wikiloop.EINVALID, "invalid page URL: %v", err)
	}
	if !s.inDomain(page.Hostname()) {
		return "", wikiloop.Errorf(wikiloop.EINVALID, "%s is not a %s page", pageURL, s.domain())
	}
	if main == nil {
		return "", nil
	}

	paragraphs := main.FindAll("p")
	for _, p := range paragraphs {
		if len(p.FindAll("p")) > 0 {
			return "", wikiloop.Errorf(wikiloop.EINVALID, "nested paragraphs on %s", pageURL)
		}
	}

	warn := func() {
		s.logger().Warn("unbalanced parenthesis", "url", pageURL)
	}

	for _, p := range paragraphs {
		for link := range candidateLinks(p, warn) {
			if !link.HasAttr("href") {
				continue
			}
			href, _ := link.Attr("href")
			target, ok := resolveURL(page, href)
			if !ok {
				continue
			}
			if isArticleLink(page, target) {
				return target.String(), nil
			}
		}
	}

	return "", nil
}

func (s *Selector) domain() string {
	if s.Domain == "" {
		return DefaultDomain
	}
	return s.Domain
}

func (s *Selector) inDomain(host string) bool {
	host = strings.ToLower(host)
	domain := strings.ToLower(s.domain())
	return host == domain || strings.HasSuffix(host, "."+domain)
}

func (s *Selector) logger() *slog.Logger {
	if s.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return s.Logger
}

// isArticleLink reports whether target is another article on the same wiki.
func isArticleLink(page, target *url.URL) bool {
	switch {
	case !strings.EqualFold(target.Hostname(), page.Hostname()):
		return false
	case !strings.HasPrefix(target.Path, ArticlePrefix):
		return false
	case strings.EqualFold(target.Path, page.Path):
		return false
	case strings.Contains(target.Path, ":"):
		// Category:, File:, Help: and other namespaces.
		return false
	}
	return true
}

// candidateLinks yields the anchors of paragraph that are outside
// parentheses and italics, in document order.
func candidateLinks(paragraph *wikiloop.Node, warn func()) iter.Seq[*wikiloop.Node] {
	return func(yield func(*wikiloop.Node) bool) {
		walk(paragraph, 0, warn, yield)
	}
}

// walk visits n depth-first. It takes the parenthesis depth in effect before
// n and returns the depth after n, and false once yield asks to stop.
func walk(n *wikiloop.Node, depth int, warn func(), yield func(*wikiloop.Node) bool) (int, bool) {
	switch {
	case n.Kind == wikiloop.TextNode:
		depth += strings.Count(n.Data, "(") - strings.Count(n.Data, ")")
		if depth < 0 {
			warn()
			depth = 0
		}
		return depth, true
	case n.Kind == wikiloop.CommentNode:
		return depth, true
	case n.IsElement("a") && depth == 0:
		return depth, yield(n)
	case isItalic(n):
		return depth, true
	}

	for _, c := range n.Children {
		var ok bool
		if depth, ok = walk(c, depth, warn, yield); !ok {
			return depth, false
		}
	}
	return depth, true
}

// isItalic reports whether n renders its contents in italics: emphasis
// and hatnotes.
func isItalic(n *wikiloop.Node) bool {
	if n.IsElement("i") {
		return true
	}
	if n.IsElement("div") {
		role, _ := n.Attr("role")
		return role == "note"
	}
	return false
}

// resolveURL resolves href against base.
func resolveURL(base *url.URL, href string) (*url.URL, bool) {
	ref, err := url.Parse(href)
	if err != nil {
		return nil, false
	}
	return base.ResolveReference(ref), true
}
