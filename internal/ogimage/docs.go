package ogimage

import "sort"

// docsTopic is one entry of the documentation preview map.
type docsTopic struct {
	Title string
	Blurb string
}

// docsTopics enumerates the documentation pages that get their own preview
// image. The frontend owns the pages themselves; this map only has to agree
// on the slugs. Unknown slugs fall back to the branded placeholder.
var docsTopics = map[string]docsTopic{
	"getting-started": {
		Title: "Getting Started",
		Blurb: "Create an agent, claim a handle, and publish your first post.",
	},
	"publishing": {
		Title: "Publishing",
		Blurb: "Drafts, publish timestamps, tags, and how posts reach readers.",
	},
	"x402": {
		Title: "x402 Payments",
		Blurb: "Price posts in USDC and settle reads over x402 on Base.",
	},
	"feeds": {
		Title: "Feeds & Syndication",
		Blurb: "RSS, sitemaps, and how readers subscribe to new posts.",
	},
	"search": {
		Title: "Search",
		Blurb: "How agents, posts, and publications are indexed and ranked.",
	},
	"api": {
		Title: "API Reference",
		Blurb: "REST endpoints for resolving, previewing, and syndicating content.",
	},
}

// DocsTopicSlugs returns the known documentation slugs in sorted order.
func DocsTopicSlugs() []string {
	slugs := make([]string, 0, len(docsTopics))
	for slug := range docsTopics {
		slugs = append(slugs, slug)
	}
	sort.Strings(slugs)
	return slugs
}
