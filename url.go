package wikiloop

import (
	"net/url"
	"strings"
)

// PageKey returns the identity of the page at rawURL: its host and path,
// case-folded. Fragments and queries do not distinguish pages.
// Unparseable input is case-folded as is.
func PageKey(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return strings.ToLower(rawURL)
	}
	return strings.ToLower(u.Hostname()) + strings.ToLower(u.Path)
}

// SamePage reports whether a and b address the same page.
func SamePage(a, b string) bool {
	return PageKey(a) == PageKey(b)
}

// NormalizeURL case-folds rawURL.
func NormalizeURL(rawURL string) string {
	return strings.ToLower(rawURL)
}
