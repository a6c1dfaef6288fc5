package sitewalk

import (
	"context"
	"net/url"
	"strings"
)

// MatchMode selects how discovered URLs are checked against robots rules.
type MatchMode int

const (
	// MatchSubstring matches a rule anywhere in the absolute URL.
	MatchSubstring MatchMode = iota
	// MatchPrefix matches a rule as a prefix of the URL's path and query.
	MatchPrefix
	// MatchStandard evaluates the robots.txt group for the crawler's user agent.
	MatchStandard
)

// String returns the flag value for the mode.
func (m MatchMode) String() string {
	switch m {
	case MatchPrefix:
		return "prefix"
	case MatchStandard:
		return "standard"
	default:
		return "substring"
	}
}

// ParseMatchMode converts a flag value into a MatchMode.
func ParseMatchMode(s string) (MatchMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "substring":
		return MatchSubstring, nil
	case "prefix":
		return MatchPrefix, nil
	case "standard":
		return MatchStandard, nil
	}
	return MatchSubstring, Errorf(EINVALID, "unknown robots match mode %q", s)
}

// RobotsRules are the Allow and Disallow values read from a robots.txt file,
// in file order. User-agent groups are not distinguished.
type RobotsRules struct {
	Allowed    []string
	Disallowed []string
}

// ParseRobots reads Allow and Disallow lines from robots.txt content.
// Keys are case-insensitive, comments are ignored, and directives without a
// value are skipped. Everything else in the file is ignored.
func ParseRobots(text string) RobotsRules {
	var rules RobotsRules
	for _, line := range strings.Split(text, "\n") {
		if idx := strings.IndexByte(line, '#'); idx != -1 {
			line = line[:idx]
		}
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		value = strings.TrimSpace(value)
		if value == "" {
			continue
		}
		switch strings.ToLower(strings.TrimSpace(key)) {
		case "disallow":
			rules.Disallowed = append(rules.Disallowed, value)
		case "allow":
			rules.Allowed = append(rules.Allowed, value)
		}
	}
	return rules
}

// Blocks reports whether the rules forbid crawling from seedPath.
// A "Disallow: /" blocks the whole site. Otherwise the seed is blocked when it
// starts with a disallowed prefix and with no allowed prefix.
func (r RobotsRules) Blocks(seedPath string) bool {
	if seedPath == "" {
		seedPath = "/"
	}
	for _, d := range r.Disallowed {
		if d == "/" {
			return true
		}
	}
	for _, d := range r.Disallowed {
		if strings.HasPrefix(seedPath, d) && !hasAnyPrefix(seedPath, r.Allowed) {
			return true
		}
	}
	return false
}

// RobotsGroup tests URL paths against the robots.txt group that applies to
// one user agent.
type RobotsGroup interface {
	Test(path string) bool
}

// RobotsPolicy is the crawl permission derived from a site's robots.txt.
// It is built once per crawl and is safe for concurrent reads.
type RobotsPolicy struct {
	siteAllowed bool
	allowed     []string
	disallowed  []string
	mode        MatchMode
	group       RobotsGroup
}

// AllowAll returns a policy that permits everything. It is used when
// robots.txt cannot be retrieved.
func AllowAll() *RobotsPolicy {
	return &RobotsPolicy{siteAllowed: true}
}

// BlockAll returns a policy that forbids crawling the site.
func BlockAll() *RobotsPolicy {
	return &RobotsPolicy{}
}

// NewRobotsPolicy decides whether the seed may be crawled and returns the
// resulting policy. In MatchStandard mode the group decides both the seed and
// later URLs; a nil group permits everything.
func NewRobotsPolicy(rules RobotsRules, seedPath string, mode MatchMode, group RobotsGroup) *RobotsPolicy {
	if mode == MatchStandard {
		if group != nil && !group.Test(requestPath(seedPath)) {
			return BlockAll()
		}
		return &RobotsPolicy{siteAllowed: true, mode: mode, group: group}
	}
	if rules.Blocks(seedPath) {
		return BlockAll()
	}
	return &RobotsPolicy{
		siteAllowed: true,
		allowed:     append([]string(nil), rules.Allowed...),
		disallowed:  append([]string(nil), rules.Disallowed...),
		mode:        mode,
	}
}

// SiteAllowed reports whether the crawl may start at all.
func (p *RobotsPolicy) SiteAllowed() bool { return p.siteAllowed }

// Allowed returns a copy of the allowed rules.
func (p *RobotsPolicy) Allowed() []string { return append([]string(nil), p.allowed...) }

// Disallowed returns a copy of the disallowed rules.
func (p *RobotsPolicy) Disallowed() []string { return append([]string(nil), p.disallowed...) }

// Mode returns the match mode used by Permits.
func (p *RobotsPolicy) Mode() MatchMode { return p.mode }

// Permits reports whether an absolute URL may be crawled. An allowed rule
// wins over a disallowed one; URLs matching neither are permitted.
func (p *RobotsPolicy) Permits(rawURL string) bool {
	if !p.siteAllowed {
		return false
	}
	switch p.mode {
	case MatchStandard:
		if p.group == nil {
			return true
		}
		u, err := url.Parse(rawURL)
		if err != nil {
			return false
		}
		return p.group.Test(u.RequestURI())
	case MatchPrefix:
		u, err := url.Parse(rawURL)
		if err != nil {
			return false
		}
		target := u.RequestURI()
		if hasAnyPrefix(target, p.allowed) {
			return true
		}
		return !hasAnyPrefix(target, p.disallowed)
	default:
		if containsAny(rawURL, p.allowed) {
			return true
		}
		return !containsAny(rawURL, p.disallowed)
	}
}

// RobotsService evaluates a site's robots.txt for a crawl seed.
type RobotsService interface {
	// Evaluate fetches robots.txt for the seed's host and returns the policy.
	// Retrieval failures fail open with AllowAll. An error is returned only
	// when the seed URL itself is invalid.
	Evaluate(ctx context.Context, seedURL string) (*RobotsPolicy, error)
}

func requestPath(p string) string {
	if p == "" {
		return "/"
	}
	return p
}

func hasAnyPrefix(s string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
