package crawl

import "sync"

// Frontier holds discovered URLs that have not been fetched yet.
// URLs are popped in last-in, first-out order, which approximates a
// depth-first walk. Deduplication is the visited set's job, not the frontier's.
// It is safe for concurrent use by multiple goroutines.
type Frontier struct {
	mu    sync.Mutex
	stack []string
}

// NewFrontier creates an empty Frontier.
func NewFrontier() *Frontier {
	return &Frontier{}
}

// Push adds URLs so that urls[0] is popped first.
func (f *Frontier) Push(urls ...string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := len(urls) - 1; i >= 0; i-- {
		f.stack = append(f.stack, urls[i])
	}
}

// Pop returns the next URL.
// The bool result is false if the frontier is empty.
func (f *Frontier) Pop() (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	n := len(f.stack)
	if n == 0 {
		return "", false
	}
	url := f.stack[n-1]
	f.stack = f.stack[:n-1]
	return url, true
}

// Len returns the number of URLs waiting to be fetched.
func (f *Frontier) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.stack)
}
