package mock

import "github.com/fwojciec/sitewalk"

var _ sitewalk.Parser = (*Parser)(nil)

// Parser is a mock implementation of sitewalk.Parser.
type Parser struct {
	ParseFn func(body []byte, contentType string) (*sitewalk.Document, error)
}

func (p *Parser) Parse(body []byte, contentType string) (*sitewalk.Document, error) {
	return p.ParseFn(body, contentType)
}
