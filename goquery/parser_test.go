package goquery_test

import (
	"testing"

	"github.com/fwojciec/sitewalk"
	"github.com/fwojciec/sitewalk/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParser_Parse(t *testing.T) {
	t.Parallel()

	t.Run("extracts anchors in document order", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
			<nav><a href="/about">About</a></nav>
			<main>
				<a href="https://example.com/blog?page=2">Blog</a>
				<a>No href</a>
				<a href="">Empty</a>
				<a href="  ">Blank</a>
				<a href="#top"> Top </a>
			</main>
		</body></html>`

		doc, err := goquery.NewParser().Parse([]byte(html), "text/html")
		require.NoError(t, err)

		assert.Empty(t, doc.Warning)
		assert.Equal(t, []sitewalk.Anchor{
			{Href: "/about", Text: "About"},
			{Href: "https://example.com/blog?page=2", Text: "Blog"},
			{Href: "#top", Text: "Top"},
		}, doc.Anchors)
	})

	t.Run("tolerates malformed HTML", func(t *testing.T) {
		t.Parallel()

		doc, err := goquery.NewParser().Parse([]byte(`<div><a href="/x">x<p>unclosed`), "")
		require.NoError(t, err)

		assert.Empty(t, doc.Warning)
		require.Len(t, doc.Anchors, 1)
		assert.Equal(t, "/x", doc.Anchors[0].Href)
	})

	t.Run("flags XML served as a page", func(t *testing.T) {
		t.Parallel()

		xml := `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0"><channel><link>https://example.com/</link><a href="/x">x</a></channel></rss>`

		doc, err := goquery.NewParser().Parse([]byte(xml), "text/html")
		require.NoError(t, err)

		assert.Contains(t, doc.Warning, "rss")
		assert.Empty(t, doc.Anchors)
	})
}

func TestMarkupWarning(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		body        string
		contentType string
		warn        bool
	}{
		{"plain HTML", `<!DOCTYPE html><html><body></body></html>`, "text/html", false},
		{"XHTML with declaration", `<?xml version="1.0"?><html xmlns="http://www.w3.org/1999/xhtml"><body/></html>`, "", false},
		{"XHTML content type", `<html><body/></html>`, "application/xhtml+xml", false},
		{"sitemap", `<?xml version="1.0"?><urlset><url><loc>https://x.com</loc></url></urlset>`, "", true},
		{"declaration after BOM", "\xef\xbb\xbf<?xml version=\"1.0\"?><feed></feed>", "", true},
		{"XML content type without declaration", `<feed><entry/></feed>`, "application/atom+xml", true},
		{"broken XML declaration", `<?xml version="1.0"?><note><to>`, "", true},
		{"broken XHTML", `<?xml version="1.0"?><html><body><br></body></html>`, "", false},
		{"unparseable content type", `<html></html>`, "text/html; charset", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := goquery.MarkupWarning([]byte(tt.body), tt.contentType)
			if tt.warn {
				assert.NotEmpty(t, got)
			} else {
				assert.Empty(t, got)
			}
		})
	}
}
