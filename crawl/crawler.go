// Package crawl discovers the pages of a site. It evaluates the site's
// robots.txt, then walks in-scope links from a seed with a bounded pool of
// fetch workers and a single coordinator that owns deduplication.
package crawl

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/fwojciec/sitewalk"
	"github.com/google/uuid"
)

// Crawler discovers in-scope pages reachable from a seed URL.
type Crawler struct {
	Fetcher sitewalk.Fetcher
	Parser  sitewalk.Parser
	Robots  sitewalk.RobotsService

	// NewVisitedSet creates the visited set for each crawl. Defaults to an
	// exact set from NewVisitedSet.
	NewVisitedSet func() sitewalk.VisitedSet

	// Concurrency is the number of fetch workers. Defaults to 1, which
	// fetches pages one at a time.
	Concurrency int

	// MaxPages bounds the number of page fetches. Zero means unlimited.
	MaxPages int

	// RetryDelays are the waits between retries of a page whose fetch
	// failed in transport. Nil disables retries.
	RetryDelays []time.Duration

	// Logf receives retry notices. Optional.
	Logf LogFunc
}

// SkipReason explains why a URL was not fetched or not followed.
type SkipReason int

const (
	// SkipStatus is a page that answered with a non-200 status.
	SkipStatus SkipReason = iota
	// SkipRedirect is a page that exceeded the redirect limit.
	SkipRedirect
	// SkipTransport is a page that could not be fetched.
	SkipTransport
	// SkipMarkup is a page whose body did not look like HTML.
	SkipMarkup
	// SkipDisallowed is a link excluded by robots.txt.
	SkipDisallowed
	// SkipOffDomain is a link outside the crawl scope.
	SkipOffDomain
	// SkipAsset is a discovered URL that does not look like a page and is
	// therefore not fetched.
	SkipAsset
	// SkipDuplicate is a link whose canonical URL was already discovered.
	SkipDuplicate
	// SkipInvalid is an href that could not be parsed.
	SkipInvalid
)

func (r SkipReason) String() string {
	switch r {
	case SkipStatus:
		return "status"
	case SkipRedirect:
		return "redirect"
	case SkipTransport:
		return "transport"
	case SkipMarkup:
		return "markup"
	case SkipDisallowed:
		return "disallowed"
	case SkipOffDomain:
		return "off-domain"
	case SkipAsset:
		return "asset"
	case SkipDuplicate:
		return "duplicate"
	case SkipInvalid:
		return "invalid"
	}
	return fmt.Sprintf("SkipReason(%d)", int(r))
}

// skipReasonFor maps a page failure to its skip reason.
func skipReasonFor(err error) SkipReason {
	switch sitewalk.ErrorCode(err) {
	case sitewalk.ESTATUS:
		return SkipStatus
	case sitewalk.EREDIRECT:
		return SkipRedirect
	case sitewalk.EMARKUP:
		return SkipMarkup
	default:
		return SkipTransport
	}
}

// Stats counts what happened during a crawl.
type Stats struct {
	// Fetched is the number of pages fetched and parsed successfully.
	Fetched int
	// Skipped counts skipped pages and links by reason.
	Skipped map[SkipReason]int
	// Unfetched is the number of pages left in the frontier when the crawl
	// stopped early because of MaxPages or cancellation.
	Unfetched int
}

// Count returns the number of skips recorded for reason.
func (s Stats) Count(reason SkipReason) int {
	return s.Skipped[reason]
}

// Failed returns the number of pages that were attempted but yielded no links.
func (s Stats) Failed() int {
	return s.Count(SkipStatus) + s.Count(SkipRedirect) + s.Count(SkipTransport) + s.Count(SkipMarkup)
}

// Complete reports whether every discovered page was fetched successfully.
func (s Stats) Complete() bool {
	return s.Unfetched == 0 && s.Failed() == 0
}

func (s *Stats) skip(reason SkipReason) {
	if s.Skipped == nil {
		s.Skipped = make(map[SkipReason]int)
	}
	s.Skipped[reason]++
}

// Result holds the outcome of a traversal.
type Result struct {
	// Visited lists canonical URLs in discovery order.
	Visited []string
	Stats   Stats
}

// Report is the outcome of a full crawl of one seed.
type Report struct {
	ID          string
	Seed        string
	Domains     []string
	SiteAllowed bool
	Visited     []string
	Stats       Stats
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	// ProgressDiscovered reports a newly discovered canonical URL.
	ProgressDiscovered ProgressType = iota
	// ProgressSkipped reports a failed page or a link excluded by robots.txt.
	ProgressSkipped
	// ProgressFinished is sent once when the traversal ends.
	ProgressFinished
)

// ProgressEvent reports progress during a crawl.
type ProgressEvent struct {
	Type   ProgressType
	URL    string
	Reason SkipReason
	Error  error
}

// ProgressFunc is a callback for reporting crawl progress. It is called from
// a single goroutine.
type ProgressFunc func(event ProgressEvent)

// Crawl validates the seed, evaluates robots.txt for its site and, when the
// site may be crawled, traverses it.
func (c *Crawler) Crawl(ctx context.Context, seed string, progress ProgressFunc) (*Report, error) {
	u, err := url.Parse(seed)
	if err != nil {
		return nil, sitewalk.Errorf(sitewalk.EINVALID, "invalid seed URL %q: %v", seed, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, sitewalk.Errorf(sitewalk.EINVALID, "seed URL %q must use http or https", seed)
	}

	scope, err := sitewalk.NewScope(seed)
	if err != nil {
		return nil, err
	}

	policy, err := c.Robots.Evaluate(ctx, seed)
	if err != nil {
		return nil, fmt.Errorf("robots evaluation: %w", err)
	}

	report := &Report{
		ID:          uuid.New().String(),
		Seed:        seed,
		Domains:     scope.Hosts(),
		SiteAllowed: policy.SiteAllowed(),
	}
	if !policy.SiteAllowed() {
		return report, nil
	}

	result, err := c.Traverse(ctx, seed, scope, policy, progress)
	if result != nil {
		report.Visited = result.Visited
		report.Stats = result.Stats
	}
	return report, err
}

// Traverse walks in-scope links from seed and returns every canonical URL it
// discovered. Each canonical URL is fetched at most once. Page failures are
// recorded in the result's Stats and never stop the walk; only context
// cancellation does, in which case the partial result is returned together
// with the context's error.
func (c *Crawler) Traverse(ctx context.Context, seed string, scope *sitewalk.Scope, policy *sitewalk.RobotsPolicy, progress ProgressFunc) (*Result, error) {
	if progress == nil {
		progress = func(ProgressEvent) {}
	}

	result := &Result{}
	if !policy.SiteAllowed() {
		progress(ProgressEvent{Type: ProgressFinished})
		return result, nil
	}

	w := &walker{
		crawler:  c,
		scope:    scope,
		policy:   policy,
		visited:  c.newVisitedSet(),
		frontier: NewFrontier(),
		result:   result,
		progress: progress,
	}

	start := sitewalk.StripFragment(seed)
	w.discover(sitewalk.Canonicalize(start))

	err := w.run(ctx, start)
	progress(ProgressEvent{Type: ProgressFinished})
	return result, err
}

func (c *Crawler) newVisitedSet() sitewalk.VisitedSet {
	if c.NewVisitedSet != nil {
		return c.NewVisitedSet()
	}
	return NewVisitedSet()
}

func (c *Crawler) concurrency() int {
	if c.Concurrency <= 0 {
		return 1
	}
	return c.Concurrency
}
