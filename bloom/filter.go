// Package bloom provides URL deduplication using Bloom filters.
package bloom

import (
	"sync"

	"github.com/bits-and-blooms/bloom/v3"
	"github.com/fwojciec/sitewalk"
)

// Filter wraps a Bloom filter for URL deduplication.
type Filter struct {
	f *bloom.BloomFilter
}

// NewFilter creates a new Bloom filter sized for n expected items
// with the given false positive rate.
func NewFilter(n uint, fpRate float64) *Filter {
	return &Filter{
		f: bloom.NewWithEstimates(n, fpRate),
	}
}

// Add adds a URL to the filter.
func (f *Filter) Add(url string) {
	f.f.AddString(url)
}

// Test returns true if the URL might be in the filter.
// False positives are possible; false negatives are not.
func (f *Filter) Test(url string) bool {
	return f.f.TestString(url)
}

// TestAndAdd adds the URL and reports whether it might already have been present.
func (f *Filter) TestAndAdd(url string) bool {
	return f.f.TestAndAddString(url)
}

// EstimatedCount returns the approximate number of items in the filter.
func (f *Filter) EstimatedCount() uint {
	return uint(f.f.ApproximatedSize())
}

var _ sitewalk.VisitedSet = (*VisitedSet)(nil)

// VisitedSet is a fixed-memory sitewalk.VisitedSet for very large crawls.
// A false positive makes Add report an unseen URL as already visited, so
// some pages may be missed, but no URL is ever accepted twice.
// It is safe for concurrent use.
type VisitedSet struct {
	mu     sync.Mutex
	filter *Filter
	n      int
}

// NewVisitedSet creates a VisitedSet sized for n expected URLs.
func NewVisitedSet(n uint, fpRate float64) *VisitedSet {
	return &VisitedSet{filter: NewFilter(n, fpRate)}
}

// Add records the URL. It returns false if the URL was probably seen before.
func (s *VisitedSet) Add(url string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.filter.TestAndAdd(url) {
		return false
	}
	s.n++
	return true
}

// Contains reports whether the URL was probably added.
func (s *VisitedSet) Contains(url string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filter.Test(url)
}

// Len returns the number of URLs accepted by Add.
func (s *VisitedSet) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.n
}
