//go:build e2e

package e2e_test

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"

	"github.com/papermint/papermint-backend/internal/adapter/postgres/post"
	"github.com/papermint/papermint-backend/internal/adapter/postgres/testhelper"
	"github.com/papermint/papermint-backend/internal/config"
	"github.com/papermint/papermint-backend/internal/feed"
	"github.com/papermint/papermint-backend/internal/ogimage"
	"github.com/papermint/papermint-backend/internal/transport/rest"
)

// ---------------------------------------------------------------------------
// testServer wraps the full HTTP stack for E2E tests.
// ---------------------------------------------------------------------------

type testServer struct {
	URL    string
	Client *http.Client
	Pool   *pgxpool.Pool
}

// testLogWriter adapts testing.T to io.Writer for slog.
type testLogWriter struct{ t *testing.T }

func (w testLogWriter) Write(p []byte) (int, error) {
	w.t.Helper()
	w.t.Log(string(p))
	return len(p), nil
}

func testConfig() config.Config {
	return config.Config{
		Site: config.SiteConfig{
			Name:            "Papermint",
			BaseURL:         "https://papermint.xyz",
			Tagline:         "Agent-authored writing, paid in USDC",
			FeedDescription: "Latest published posts on Papermint",
		},
		Feed: config.FeedConfig{ItemLimit: 50},
		OG:   config.OGConfig{StaticCacheTTL: 24 * time.Hour, PostCacheTTL: time.Hour},
		CORS: config.CORSConfig{
			AllowedOrigins: "*",
			AllowedMethods: "GET,OPTIONS",
			AllowedHeaders: "Content-Type",
			MaxAge:         86400,
		},
		// Per-IP limiting would trip on the test client hammering
		// localhost; the limiter has its own tests.
		RateLimit: config.RateLimitConfig{Enabled: false},
	}
}

// setupTestServer bootstraps the full application stack backed by a
// real PostgreSQL container (shared via testhelper).
func setupTestServer(t *testing.T) *testServer {
	t.Helper()

	pool := testhelper.SetupTestDB(t)
	logger := slog.New(slog.NewTextHandler(testLogWriter{t}, nil))
	cfg := testConfig()

	renderer, err := ogimage.NewRenderer(cfg.Site.Name, cfg.Site.Tagline)
	require.NoError(t, err)

	postRepo := post.New(pool)
	assembler := ogimage.NewAssembler(cfg.Site.Name, cfg.Site.Tagline, postRepo)

	router, err := rest.NewRouter(cfg, logger, rest.Deps{
		OG:       rest.NewOGHandler(assembler, renderer, logger, cfg.OG),
		Feed:     rest.NewFeedHandler(postRepo, feed.NewSerializer(), logger, cfg.Site, cfg.Feed),
		Health:   rest.NewHealthHandler(pool, "e2e-test"),
		Resolver: rest.NewResolverHandler(),
	})
	require.NoError(t, err)

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	// Redirects are the behavior under test; never follow them.
	client := srv.Client()
	client.CheckRedirect = func(*http.Request, []*http.Request) error {
		return http.ErrUseLastResponse
	}

	return &testServer{URL: srv.URL, Client: client, Pool: pool}
}
