package wikiloop

// LinkSelector picks the link a journey follows out of a page.
type LinkSelector interface {
	// FirstLink returns the absolute URL of the first valid article link
	// in the main-content region of the page at pageURL.
	// Returns an empty string and nil error when the page has no valid link.
	// Returns EINVALID if pageURL is outside the followed domain or the
	// region breaks the parser's structural guarantees.
	FirstLink(pageURL string, main *Node) (string, error)
}
