package rest

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/papermint/papermint-backend/internal/config"
	"github.com/papermint/papermint-backend/internal/routing"
	"github.com/papermint/papermint-backend/internal/transport/middleware"
)

// Deps carries the wired handlers the router mounts.
type Deps struct {
	OG       *OGHandler
	Feed     *FeedHandler
	Health   *HealthHandler
	Resolver *ResolverHandler
	Limiter  *middleware.RateLimiter
}

// NewRouter registers every route and wraps the mux in the shared
// middleware chain. The catch-all legacy routes make route ownership a
// correctness issue: a static route whose top segment is not reserved
// would be shadowed for agents who register that handle, so NewRouter
// refuses to start with one.
func NewRouter(cfg config.Config, logger *slog.Logger, deps Deps) (http.Handler, error) {
	limited := middleware.Middleware(func(next http.Handler) http.Handler { return next })
	if cfg.RateLimit.Enabled && deps.Limiter != nil {
		limited = deps.Limiter.Limit(cfg.RateLimit.RPS, cfg.RateLimit.Burst)
	}

	routes := []struct {
		pattern string
		handler http.HandlerFunc
		limited bool
	}{
		{"GET /api/og", deps.OG.Global, true},
		{"GET /api/og/docs/{topic}", deps.OG.Docs, true},
		{"GET /api/og/search", deps.OG.Search, true},
		{"GET /api/og/post/{id}", deps.OG.Post, true},

		{"GET /rss.xml", deps.Feed.RSS, true},
		{"GET /sitemap.xml", deps.Feed.Sitemap, true},
		{"GET /robots.txt", deps.Feed.Robots, false},

		{"GET /health", deps.Health.Health, false},
		{"GET /health/live", deps.Health.Live, false},
		{"GET /health/ready", deps.Health.Ready, false},

		{"GET /{handle}", deps.Resolver.Resolve, false},
		{"GET /{handle}/{publicationID}", deps.Resolver.Resolve, false},
	}

	mux := http.NewServeMux()
	for _, rt := range routes {
		if err := checkRoutePattern(rt.pattern); err != nil {
			return nil, err
		}
		var h http.Handler = rt.handler
		if rt.limited {
			h = limited(h)
		}
		mux.Handle(rt.pattern, h)
	}

	chain := middleware.Chain(
		middleware.RequestID(),
		middleware.Logger(logger),
		middleware.Recovery(logger),
		middleware.CORS(cfg.CORS),
	)
	return chain(mux), nil
}

// checkRoutePattern enforces that a route with a static top-level path
// segment also reserves that segment. The reserved set is what keeps
// handle registration from claiming these paths, so the two must move
// together.
func checkRoutePattern(pattern string) error {
	path := pattern
	if _, rest, ok := strings.Cut(pattern, " "); ok {
		path = rest
	}
	seg := strings.TrimPrefix(path, "/")
	if i := strings.IndexByte(seg, '/'); i >= 0 {
		seg = seg[:i]
	}
	if seg == "" || strings.HasPrefix(seg, "{") {
		return nil
	}
	if !routing.IsReservedSlug(seg) {
		return fmt.Errorf("route %q: top-level segment %q is not a reserved slug", pattern, seg)
	}
	return nil
}
