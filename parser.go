package sitewalk

// Anchor is an <a> element that carries an href attribute.
type Anchor struct {
	Href string
	Text string
}

// Document is the result of parsing a fetched page.
type Document struct {
	Anchors []Anchor

	// Warning is non-empty when the markup does not look like genuine HTML,
	// for example an XML document served as a page. Callers should not trust
	// links extracted from such a document.
	Warning string
}

// Parser extracts anchors from page bodies.
type Parser interface {
	// Parse reads body as HTML. The contentType is the response's
	// Content-Type header and may be empty.
	Parse(body []byte, contentType string) (*Document, error)
}
