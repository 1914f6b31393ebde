package mock

import "github.com/fwojciec/wikiloop"

var _ wikiloop.LinkSelector = (*LinkSelector)(nil)

// LinkSelector is a mock implementation of wikiloop.LinkSelector.
type LinkSelector struct {
	FirstLinkFn func(pageURL string, main *wikiloop.Node) (string, error)
}

func (s *LinkSelector) FirstLink(pageURL string, main *wikiloop.Node) (string, error) {
	return s.FirstLinkFn(pageURL, main)
}
