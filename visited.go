package sitewalk

// VisitedSet records canonical URLs already claimed by a crawl.
// Implementations are safe for concurrent use.
type VisitedSet interface {
	// Add inserts the URL and reports whether it was not already present.
	Add(url string) bool

	// Contains reports whether the URL has been added.
	Contains(url string) bool

	// Len returns the number of URLs added.
	Len() int
}
