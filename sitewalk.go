// Package sitewalk discovers every in-domain, crawlable page reachable from
// a seed URL while honoring the site's robots.txt and never fetching the same
// page twice.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., http/, goquery/, bloom/).
package sitewalk
