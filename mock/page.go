package mock

import "github.com/fwojciec/wikiloop"

var _ wikiloop.Parser = (*Parser)(nil)

// Parser is a mock implementation of wikiloop.Parser.
type Parser struct {
	ParseFn func(html string) (*wikiloop.Document, error)
}

func (p *Parser) Parse(html string) (*wikiloop.Document, error) {
	return p.ParseFn(html)
}
