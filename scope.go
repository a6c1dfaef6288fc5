package sitewalk

import (
	"net/url"
	"strings"
)

// Scope is the set of hosts a crawl may fetch from.
type Scope struct {
	hosts []string
}

// NewScope builds the in-scope host set for a seed URL: the seed's host and,
// when the host has exactly one dot (a bare second-level domain such as
// example.com), its www-prefixed variant.
func NewScope(seedURL string) (*Scope, error) {
	u, err := url.Parse(seedURL)
	if err != nil {
		return nil, Errorf(EINVALID, "invalid seed URL: %v", err)
	}
	if u.Host == "" {
		return nil, Errorf(EINVALID, "seed URL %q has no host", seedURL)
	}
	host := strings.ToLower(u.Host)
	s := &Scope{hosts: []string{host}}
	if strings.Count(host, ".") == 1 {
		s.hosts = append(s.hosts, "www."+host)
	}
	return s, nil
}

// Contains reports whether host (a URL authority, port included) is in scope.
func (s *Scope) Contains(host string) bool {
	host = strings.ToLower(host)
	for _, h := range s.hosts {
		if h == host {
			return true
		}
	}
	return false
}

// Hosts returns a copy of the in-scope hosts.
func (s *Scope) Hosts() []string {
	return append([]string(nil), s.hosts...)
}
