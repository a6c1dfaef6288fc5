// Package goquery extracts anchors from HTML pages using
// github.com/PuerkitoBio/goquery.
package goquery

import (
	"bytes"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/sitewalk"
)

var _ sitewalk.Parser = (*Parser)(nil)

// Parser implements sitewalk.Parser.
type Parser struct{}

// NewParser creates a new Parser.
func NewParser() *Parser {
	return &Parser{}
}

// Parse returns every anchor with a non-empty href, in document order.
// When the body does not look like genuine HTML the returned document carries
// a Warning and no anchors.
func (p *Parser) Parse(body []byte, contentType string) (*sitewalk.Document, error) {
	if warning := MarkupWarning(body, contentType); warning != "" {
		return &sitewalk.Document{Warning: warning}, nil
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, sitewalk.Errorf(sitewalk.EMARKUP, "failed to parse HTML: %v", err)
	}

	result := &sitewalk.Document{}
	doc.Find("a").Each(func(_ int, sel *goquery.Selection) {
		href, exists := sel.Attr("href")
		if !exists {
			return
		}
		href = strings.TrimSpace(href)
		if href == "" {
			return
		}
		result.Anchors = append(result.Anchors, sitewalk.Anchor{
			Href: href,
			Text: strings.TrimSpace(sel.Text()),
		})
	})

	return result, nil
}
