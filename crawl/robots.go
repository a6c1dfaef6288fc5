package crawl

import (
	"context"
	"net/url"

	"github.com/fwojciec/sitewalk"
	"github.com/fwojciec/sitewalk/robotstxt"
)

var _ sitewalk.RobotsService = (*RobotsEvaluator)(nil)

// RobotsEvaluator fetches a site's robots.txt once and turns it into a
// sitewalk.RobotsPolicy.
type RobotsEvaluator struct {
	Fetcher sitewalk.Fetcher
	Mode    sitewalk.MatchMode

	// UserAgent selects the robots.txt group in MatchStandard mode.
	UserAgent string
}

// Evaluate implements sitewalk.RobotsService. Any failure to retrieve or
// read robots.txt permits the whole site.
func (e *RobotsEvaluator) Evaluate(ctx context.Context, seedURL string) (*sitewalk.RobotsPolicy, error) {
	u, err := url.Parse(seedURL)
	if err != nil {
		return nil, sitewalk.Errorf(sitewalk.EINVALID, "invalid seed URL %q: %v", seedURL, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, sitewalk.Errorf(sitewalk.EINVALID, "seed URL %q must be absolute", seedURL)
	}

	robotsURL := (&url.URL{Scheme: u.Scheme, Host: u.Host, Path: "/robots.txt"}).String()
	resp, err := e.Fetcher.Fetch(ctx, robotsURL)
	if err != nil {
		return sitewalk.AllowAll(), nil
	}

	rules := sitewalk.ParseRobots(string(resp.Body))

	var group sitewalk.RobotsGroup
	if e.Mode == sitewalk.MatchStandard {
		g, err := robotstxt.NewGroup(resp.Body, e.UserAgent)
		if err != nil {
			return sitewalk.AllowAll(), nil
		}
		group = g
	}

	return sitewalk.NewRobotsPolicy(rules, u.Path, e.Mode, group), nil
}
