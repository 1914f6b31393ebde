package wikiloop

// Summary defaults.
const (
	// DefaultImage is shown for pages without a thumbnail.
	DefaultImage = "https://www.wikipedia.org/portal/wikipedia.org/assets/img/Wikipedia-logo-v2.png"

	// ExcerptParagraphs is the number of leading paragraphs read for an excerpt.
	ExcerptParagraphs = 15

	// ExcerptLength is the number of characters kept in an excerpt.
	ExcerptLength = 250

	// ExcerptEllipsis is appended to every excerpt.
	ExcerptEllipsis = "..."
)

// Document is a parsed article page.
type Document struct {
	// Main is the main-content region of the page.
	// Nil when the page has none.
	Main *Node

	// Title is the first heading of the main-content region.
	Title string

	// Image is the source of the first thumbnail image, as written in the page.
	// Empty when the page has no thumbnail.
	Image string

	// Excerpt is the truncated text of the leading paragraphs.
	Excerpt string
}

// Parser turns raw HTML into a Document.
type Parser interface {
	Parse(html string) (*Document, error)
}

// PageSummary describes one page of a journey.
type PageSummary struct {
	URL   string `json:"url"`
	Title string `json:"title"`
	Image string `json:"image"`
	Text  string `json:"text"`
}

// Excerpt truncates text to ExcerptLength characters and appends ExcerptEllipsis.
func Excerpt(text string) string {
	runes := []rune(text)
	if len(runes) > ExcerptLength {
		runes = runes[:ExcerptLength]
	}
	return string(runes) + ExcerptEllipsis
}
