package sitewalk

import (
	"net/url"
	"strings"
)

// pageExtensions are file extensions that are assumed to serve HTML.
var pageExtensions = []string{".html", ".htm", ".php", ".asp", ".aspx", ".jsp"}

// Canonicalize returns the deduplication key for a URL: the query component
// and fragment are removed along with any trailing slashes.
// Input that does not parse as a URL is returned unchanged.
//
// Canonicalize is idempotent.
func Canonicalize(rawURL string) string {
	if _, err := url.Parse(rawURL); err != nil {
		return rawURL
	}
	s := StripFragment(rawURL)
	if idx := strings.IndexByte(s, '?'); idx != -1 {
		s = s[:idx]
	}
	return strings.TrimRight(s, "/")
}

// StripFragment removes the fragment, if any, from a URL.
func StripFragment(rawURL string) string {
	if idx := strings.IndexByte(rawURL, '#'); idx != -1 {
		return rawURL[:idx]
	}
	return rawURL
}

// LooksLikePage reports whether a URL plausibly identifies an HTML page.
// Extensionless paths are treated as page routes; otherwise the path must end
// with a known page extension. This is a heuristic, not a content-type check.
func LooksLikePage(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	path := u.Path
	last := path[strings.LastIndexByte(path, '/')+1:]
	if !strings.Contains(last, ".") {
		return true
	}
	lower := strings.ToLower(path)
	for _, ext := range pageExtensions {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}
