// Package robotstxt evaluates robots.txt files with standard group semantics
// using github.com/temoto/robotstxt.
package robotstxt

import (
	"github.com/fwojciec/sitewalk"
	"github.com/temoto/robotstxt"
)

var _ sitewalk.RobotsGroup = (*Group)(nil)

// Group is the robots.txt group that applies to one user agent.
type Group struct {
	group *robotstxt.Group
}

// NewGroup parses body and selects the group for userAgent, falling back to
// the "*" group. A file with no matching group permits everything.
func NewGroup(body []byte, userAgent string) (*Group, error) {
	data, err := robotstxt.FromBytes(body)
	if err != nil {
		return nil, sitewalk.Errorf(sitewalk.EINVALID, "parsing robots.txt: %v", err)
	}
	return &Group{group: data.FindGroup(userAgent)}, nil
}

// Test reports whether path may be crawled.
func (g *Group) Test(path string) bool {
	return g.group.Test(path)
}
