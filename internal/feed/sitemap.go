package feed

import (
	"encoding/xml"
	"fmt"
	"time"

	"github.com/papermint/papermint-backend/internal/domain"
	"github.com/papermint/papermint-backend/internal/routing"
)

const sitemapNamespace = "http://www.sitemaps.org/schemas/sitemap/0.9"

// SitemapEntry is one <url> of the sitemap.
type SitemapEntry struct {
	Loc     string
	LastMod *time.Time
}

// SitemapEntries builds the crawler entries: the site root first, then one
// canonical URL per post with lastmod taken from its publish time.
func SitemapEntries(baseURL string, posts []*domain.Post) []SitemapEntry {
	entries := make([]SitemapEntry, 0, len(posts)+1)
	entries = append(entries, SitemapEntry{Loc: baseURL + "/"})
	for _, post := range posts {
		entries = append(entries, SitemapEntry{
			Loc:     baseURL + routing.PostPath(post.ID),
			LastMod: post.PublishedAt,
		})
	}
	return entries
}

type sitemapDoc struct {
	XMLName xml.Name     `xml:"urlset"`
	Xmlns   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc     string `xml:"loc"`
	LastMod string `xml:"lastmod,omitempty"`
}

// RenderSitemap serializes entries into a sitemap urlset, order preserved.
func (s *Serializer) RenderSitemap(entries []SitemapEntry) ([]byte, error) {
	urls := make([]sitemapURL, 0, len(entries))
	for _, entry := range entries {
		u := sitemapURL{Loc: entry.Loc}
		if entry.LastMod != nil {
			u.LastMod = entry.LastMod.UTC().Format("2006-01-02")
		}
		urls = append(urls, u)
	}

	doc := sitemapDoc{
		Xmlns: sitemapNamespace,
		URLs:  urls,
	}

	out, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal sitemap: %w", err)
	}

	return append([]byte(xml.Header), out...), nil
}
