// Package goquery parses article pages into wikiloop documents using goquery.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/wikiloop"
	"golang.org/x/net/html"
)

// Selectors for the parts of an article page.
const (
	// MainSelector matches the main-content region, which excludes
	// navigation and sidebar chrome.
	MainSelector = `div[role="main"]`

	headingSelector   = "h1"
	thumbnailSelector = "img.thumbimage"
	paragraphSelector = "p"
)

// Ensure Parser implements wikiloop.Parser at compile time.
var _ wikiloop.Parser = (*Parser)(nil)

// Parser parses article HTML.
type Parser struct{}

// NewParser creates a new Parser.
func NewParser() *Parser {
	return &Parser{}
}

// Parse parses html and extracts the main-content region along with the
// title, thumbnail, and excerpt used to summarize the page.
// A page without a main-content region yields a Document with a nil Main.
func (p *Parser) Parse(htmlContent string) (*wikiloop.Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlContent))
	if err != nil {
		return nil, wikiloop.Errorf(wikiloop.EINVALID, "failed to parse HTML: %v", err)
	}

	pageTitle := strings.TrimSpace(doc.Find("title").First().Text())

	main := doc.Find(MainSelector).First()
	if main.Length() == 0 {
		return &wikiloop.Document{Title: pageTitle}, nil
	}

	title := strings.TrimSpace(main.Find(headingSelector).First().Text())
	if title == "" {
		title = pageTitle
	}

	image, _ := main.Find(thumbnailSelector).First().Attr("src")

	return &wikiloop.Document{
		Main:    convert(main.Get(0)),
		Title:   title,
		Image:   image,
		Excerpt: excerpt(main),
	}, nil
}

// excerpt joins the text of the leading paragraphs and truncates it.
func excerpt(main *goquery.Selection) string {
	var sb strings.Builder
	main.Find(paragraphSelector).EachWithBreak(func(i int, sel *goquery.Selection) bool {
		sb.WriteString(sel.Text())
		return i+1 < wikiloop.ExcerptParagraphs
	})
	return wikiloop.Excerpt(sb.String())
}

// convert turns an html.Node subtree into a wikiloop.Node subtree.
// Node types other than text, comment and element are dropped.
func convert(n *html.Node) *wikiloop.Node {
	switch n.Type {
	case html.TextNode:
		return wikiloop.NewText(n.Data)
	case html.CommentNode:
		return wikiloop.NewComment(n.Data)
	case html.ElementNode:
		attrs := make(map[string]string, len(n.Attr))
		for _, a := range n.Attr {
			if _, ok := attrs[a.Key]; !ok {
				attrs[a.Key] = a.Val
			}
		}
		el := wikiloop.NewElement(n.Data, attrs)
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if child := convert(c); child != nil {
				el.Children = append(el.Children, child)
			}
		}
		return el
	default:
		return nil
	}
}
