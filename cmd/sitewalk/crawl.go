package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/fwojciec/sitewalk"
	"github.com/fwojciec/sitewalk/crawl"
)

// Run executes the crawl command.
func (c *CrawlCmd) Run(deps *Dependencies) error {
	progress := func(e crawl.ProgressEvent) {
		switch e.Type {
		case crawl.ProgressDiscovered:
			fmt.Fprintln(deps.Stdout, e.URL)
		case crawl.ProgressSkipped:
			if e.Reason == crawl.SkipDisallowed {
				deps.Logger.Info("disallowed URL, skipping", "url", e.URL)
				return
			}
			deps.Logger.Warn("skipping page", "url", e.URL, "reason", e.Reason.String(), "err", e.Error)
		}
	}

	report, err := deps.Crawler.Crawl(deps.Ctx, c.URL, progress)
	if report == nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", sitewalk.ErrorMessage(err))
		return err
	}

	if !report.SiteAllowed {
		fmt.Fprintf(deps.Stdout, "Access to %s is not allowed by robots.txt\n", c.URL)
		return nil
	}

	fmt.Fprintln(deps.Stdout, "Final list:")
	for _, u := range report.Visited {
		fmt.Fprintln(deps.Stdout, u)
	}
	fmt.Fprintln(deps.Stderr, summary(report))

	if err != nil {
		// The crawl was interrupted; the partial list is not saved.
		return err
	}

	if deps.Store != nil {
		if err := deps.Store.Save(deps.Ctx, report.Visited); err != nil {
			_ = deps.Store.Abort()
			fmt.Fprintf(deps.Stderr, "error saving %s: %v\n", deps.Store.Path(), err)
			return err
		}
		if err := deps.Store.Commit(); err != nil {
			fmt.Fprintf(deps.Stderr, "error committing: %v\n", err)
			return err
		}
	}

	return nil
}

// summary describes the crawl's outcome in one line.
func summary(report *crawl.Report) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Fetched %d pages, discovered %d URLs", report.Stats.Fetched, len(report.Visited))

	reasons := make([]crawl.SkipReason, 0, len(report.Stats.Skipped))
	for r := range report.Stats.Skipped {
		reasons = append(reasons, r)
	}
	sort.Slice(reasons, func(i, j int) bool { return reasons[i] < reasons[j] })

	if len(reasons) > 0 {
		b.WriteString("; skipped")
		for _, r := range reasons {
			fmt.Fprintf(&b, " %s=%d", r, report.Stats.Skipped[r])
		}
	}
	if report.Stats.Unfetched > 0 {
		fmt.Fprintf(&b, "; %d pages left unfetched", report.Stats.Unfetched)
	}
	return b.String()
}
