package crawl

import (
	"sync"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/sitewalk"
)

var _ sitewalk.VisitedSet = (*VisitedSet)(nil)

const visitedShards = 32

// VisitedSet is an exact, concurrent sitewalk.VisitedSet. URLs are spread
// over mutex-guarded shards by their xxhash.
type VisitedSet struct {
	shards [visitedShards]visitedShard
}

type visitedShard struct {
	mu   sync.Mutex
	urls map[string]struct{}
}

// NewVisitedSet creates an empty VisitedSet.
func NewVisitedSet() *VisitedSet {
	s := &VisitedSet{}
	for i := range s.shards {
		s.shards[i].urls = make(map[string]struct{})
	}
	return s
}

func (s *VisitedSet) shard(url string) *visitedShard {
	return &s.shards[xxhash.Sum64String(url)%visitedShards]
}

// Add records the URL and reports whether it was new.
func (s *VisitedSet) Add(url string) bool {
	sh := s.shard(url)
	sh.mu.Lock()
	defer sh.mu.Unlock()
	if _, ok := sh.urls[url]; ok {
		return false
	}
	sh.urls[url] = struct{}{}
	return true
}

// Contains reports whether the URL was added.
func (s *VisitedSet) Contains(url string) bool {
	sh := s.shard(url)
	sh.mu.Lock()
	defer sh.mu.Unlock()
	_, ok := sh.urls[url]
	return ok
}

// Len returns the number of URLs in the set.
func (s *VisitedSet) Len() int {
	n := 0
	for i := range s.shards {
		sh := &s.shards[i]
		sh.mu.Lock()
		n += len(sh.urls)
		sh.mu.Unlock()
	}
	return n
}
