package goquery

import (
	"bytes"
	"fmt"
	"mime"
	"strings"

	"github.com/beevik/etree"
)

var utf8BOM = []byte("\xef\xbb\xbf")

// MarkupWarning returns a description of why body does not look like HTML,
// or an empty string if it does. A body is suspect when it carries an XML
// declaration or an XML content type and its root element is not <html>.
func MarkupWarning(body []byte, contentType string) string {
	trimmed := bytes.TrimSpace(bytes.TrimPrefix(body, utf8BOM))
	xmlDecl := hasPrefixFold(trimmed, "<?xml")
	xmlType := isXMLContentType(contentType)
	if !xmlDecl && !xmlType {
		return ""
	}

	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(trimmed); err != nil || doc.Root() == nil {
		// Malformed XML: only tolerate it if it still looks like XHTML.
		if bytes.Contains(bytes.ToLower(trimmed), []byte("<html")) {
			return ""
		}
		if xmlDecl {
			return "document starts with an XML declaration"
		}
		return fmt.Sprintf("content type %q is XML", contentType)
	}

	root := doc.Root()
	if strings.EqualFold(root.Tag, "html") {
		return ""
	}
	return fmt.Sprintf("document looks like XML (root element <%s>)", root.Tag)
}

func hasPrefixFold(b []byte, prefix string) bool {
	return len(b) >= len(prefix) && strings.EqualFold(string(b[:len(prefix)]), prefix)
}

// isXMLContentType reports whether the media type is XML other than XHTML.
func isXMLContentType(contentType string) bool {
	if contentType == "" {
		return false
	}
	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	switch {
	case mt == "application/xhtml+xml":
		return false
	case mt == "text/xml", mt == "application/xml":
		return true
	default:
		return strings.HasSuffix(mt, "+xml")
	}
}
