package rest

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/papermint/papermint-backend/internal/config"
	"github.com/papermint/papermint-backend/internal/domain"
	"github.com/papermint/papermint-backend/internal/feed"
)

// postLister is the slice of the post repository the syndication
// endpoints need.
type postLister interface {
	ListPublished(ctx context.Context, limit int) ([]*domain.Post, error)
}

// FeedHandler serves the RSS feed, the sitemap, and robots.txt. Unlike
// the preview images these endpoints fail loudly: serving a truncated
// or empty document would make aggregators drop items that still
// exist, so a repository error is a plain 500.
type FeedHandler struct {
	posts      postLister
	serializer *feed.Serializer
	logger     *slog.Logger
	site       config.SiteConfig
	itemLimit  int
}

func NewFeedHandler(posts postLister, serializer *feed.Serializer, logger *slog.Logger, site config.SiteConfig, feedCfg config.FeedConfig) *FeedHandler {
	return &FeedHandler{
		posts:      posts,
		serializer: serializer,
		logger:     logger,
		site:       site,
		itemLimit:  feedCfg.ItemLimit,
	}
}

func (h *FeedHandler) RSS(w http.ResponseWriter, r *http.Request) {
	posts, err := h.posts.ListPublished(r.Context(), h.itemLimit)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "list published posts for rss", slog.String("error", err.Error()))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	items := make([]feed.Item, 0, len(posts))
	for _, p := range posts {
		items = append(items, feed.ItemFromPost(h.site.BaseURL, p))
	}

	doc, err := h.serializer.Render(feed.Channel{
		Title:       h.site.Name,
		Link:        h.site.BaseURL,
		Description: h.site.FeedDescription,
	}, items)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "render rss", slog.String("error", err.Error()))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	writeXML(w, "application/rss+xml; charset=utf-8", doc)
}

func (h *FeedHandler) Sitemap(w http.ResponseWriter, r *http.Request) {
	posts, err := h.posts.ListPublished(r.Context(), h.itemLimit)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "list published posts for sitemap", slog.String("error", err.Error()))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	doc, err := h.serializer.RenderSitemap(feed.SitemapEntries(h.site.BaseURL, posts))
	if err != nil {
		h.logger.ErrorContext(r.Context(), "render sitemap", slog.String("error", err.Error()))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	writeXML(w, "application/xml; charset=utf-8", doc)
}

func (h *FeedHandler) Robots(w http.ResponseWriter, r *http.Request) {
	body := "User-agent: *\nAllow: /\n\nSitemap: " + h.site.BaseURL + "/sitemap.xml\n"
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Cache-Control", "public, max-age=86400")
	w.Write([]byte(body))
}

// writeXML sends a fully rendered document. Feeds are not cached at the
// HTTP layer so new posts show up on the next poll.
func writeXML(w http.ResponseWriter, contentType string, doc []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("Content-Length", strconv.Itoa(len(doc)))
	w.Write(doc)
}
