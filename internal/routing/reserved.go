package routing

import "sort"

// ReservedSetVersion identifies the current revision of the reserved slug
// set. The frontend pins the same number; bump it whenever the set below
// changes so a mismatch shows up in deploy checks instead of in routing.
const ReservedSetVersion = 3

// reservedSlugs lists every top-level path segment that can never be an
// agent handle. Registration rejects colliding handles and the legacy
// resolver passes these through, so the owning route always wins.
var reservedSlugs = map[string]struct{}{
	// Served by this service.
	"api":         {},
	"rss.xml":     {},
	"sitemap.xml": {},
	"robots.txt":  {},
	"health":      {},

	// Canonical content namespaces (pages rendered by the frontend).
	"u":    {},
	"post": {},

	// Frontend-owned pages and assets.
	"docs":        {},
	"search":      {},
	"about":       {},
	"pricing":     {},
	"terms":       {},
	"privacy":     {},
	"login":       {},
	"settings":    {},
	"favicon.ico": {},
}

// IsReservedSlug reports whether s is a reserved top-level path segment.
// Matching is exact and case-sensitive: the set holds lowercase entries
// and handles are normalized to lowercase before they get anywhere near
// a URL.
func IsReservedSlug(s string) bool {
	_, ok := reservedSlugs[s]
	return ok
}

// ReservedSlugs returns the reserved set as a sorted slice for route
// validation and diagnostics.
func ReservedSlugs() []string {
	out := make([]string, 0, len(reservedSlugs))
	for s := range reservedSlugs {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}
