package crawl

import (
	"context"
	"net/url"
	"strings"

	"github.com/fwojciec/sitewalk"
	"golang.org/x/sync/errgroup"
)

// pageResult holds the outcome of fetching and parsing a single page.
type pageResult struct {
	url  string
	base *url.URL
	doc  *sitewalk.Document
	err  error
}

// walker holds the state of one traversal. Everything except the frontier
// and the visited set is touched only by the coordinator goroutine.
type walker struct {
	crawler  *Crawler
	scope    *sitewalk.Scope
	policy   *sitewalk.RobotsPolicy
	visited  sitewalk.VisitedSet
	frontier *Frontier
	result   *Result
	progress ProgressFunc

	dispatched int
}

// run fetches start and then everything reachable from it. Workers only
// fetch and parse; the coordinator loop filters links, deduplicates them
// and feeds the frontier.
func (w *walker) run(ctx context.Context, start string) error {
	concurrency := w.crawler.concurrency()

	workCh := make(chan string, concurrency)
	resultCh := make(chan pageResult)

	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < concurrency; i++ {
		g.Go(func() error {
			for pageURL := range workCh {
				res := w.crawler.processPage(gctx, pageURL)
				select {
				case resultCh <- res:
				case <-gctx.Done():
					return gctx.Err()
				}
			}
			return nil
		})
	}

	// Close result channel when all workers are done
	go func() {
		_ = g.Wait()
		close(resultCh)
	}()

	pending := 0 // URLs currently being processed
	next := start

coordinatorLoop:
	for {
		if pending == 0 && (next == "" || w.limitReached()) {
			break coordinatorLoop
		}
		if ctx.Err() != nil {
			break coordinatorLoop
		}

		// A nil channel disables the dispatch case.
		var dispatch chan<- string
		if next != "" && !w.limitReached() {
			dispatch = workCh
		}

		select {
		case <-ctx.Done():
			break coordinatorLoop
		case dispatch <- next:
			w.dispatched++
			pending++
			next = ""
		case res, ok := <-resultCh:
			if !ok {
				break coordinatorLoop
			}
			pending--
			w.handle(res)
		}

		if next == "" && !w.limitReached() {
			next, _ = w.frontier.Pop()
		}
	}

	close(workCh)
	for range resultCh {
		// Results arriving after cancellation are discarded.
	}

	w.result.Stats.Unfetched = w.frontier.Len()
	if next != "" {
		w.result.Stats.Unfetched++
	}
	return ctx.Err()
}

func (w *walker) limitReached() bool {
	limit := w.crawler.MaxPages
	return limit > 0 && w.dispatched >= limit
}

// discover records a new canonical URL.
func (w *walker) discover(canonical string) bool {
	if !w.visited.Add(canonical) {
		return false
	}
	w.result.Visited = append(w.result.Visited, canonical)
	w.progress(ProgressEvent{Type: ProgressDiscovered, URL: canonical})
	return true
}

func (w *walker) skip(rawURL string, reason SkipReason, err error) {
	w.result.Stats.skip(reason)
	w.progress(ProgressEvent{Type: ProgressSkipped, URL: rawURL, Reason: reason, Error: err})
}

// handle filters the links of a completed page and pushes new pages to the
// frontier in document order.
func (w *walker) handle(res pageResult) {
	if res.err != nil {
		w.skip(res.url, skipReasonFor(res.err), res.err)
		return
	}
	w.result.Stats.Fetched++

	var pages []string
	for _, a := range res.doc.Anchors {
		href := strings.TrimSpace(a.Href)
		if href == "" {
			continue
		}
		ref, err := url.Parse(href)
		if err != nil {
			w.result.Stats.skip(SkipInvalid)
			continue
		}
		abs := res.base.ResolveReference(ref)
		if (abs.Scheme != "http" && abs.Scheme != "https") || !w.scope.Contains(abs.Host) {
			w.result.Stats.skip(SkipOffDomain)
			continue
		}

		link := abs.String()
		if !w.policy.Permits(link) {
			w.skip(link, SkipDisallowed, nil)
			continue
		}

		canonical := sitewalk.Canonicalize(sitewalk.StripFragment(link))
		if !w.discover(canonical) {
			w.result.Stats.skip(SkipDuplicate)
			continue
		}
		if !sitewalk.LooksLikePage(canonical) {
			w.result.Stats.skip(SkipAsset)
			continue
		}
		pages = append(pages, canonical)
	}
	w.frontier.Push(pages...)
}

// processPage fetches and parses a single page. It runs on a worker.
func (c *Crawler) processPage(ctx context.Context, pageURL string) pageResult {
	result := pageResult{url: pageURL}

	resp, err := FetchWithRetryDelays(ctx, pageURL, c.Fetcher.Fetch, c.Logf, c.RetryDelays)
	if err != nil {
		result.err = err
		return result
	}

	doc, err := c.Parser.Parse(resp.Body, resp.ContentType)
	if err != nil {
		result.err = sitewalk.Errorf(sitewalk.EMARKUP, "parsing %s: %v", pageURL, err)
		return result
	}
	if doc.Warning != "" {
		result.err = sitewalk.Errorf(sitewalk.EMARKUP, "%s: %s", pageURL, doc.Warning)
		return result
	}

	// Links are relative to where the page actually lives.
	base, err := url.Parse(resp.URL)
	if err != nil || resp.URL == "" {
		base, err = url.Parse(pageURL)
		if err != nil {
			result.err = sitewalk.Errorf(sitewalk.EINVALID, "invalid page URL %q: %v", pageURL, err)
			return result
		}
	}

	result.base = base
	result.doc = doc
	return result
}
