package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/papermint/papermint-backend/internal/adapter/postgres"
	"github.com/papermint/papermint-backend/internal/adapter/postgres/post"
	"github.com/papermint/papermint-backend/internal/config"
	"github.com/papermint/papermint-backend/internal/feed"
	"github.com/papermint/papermint-backend/internal/ogimage"
	"github.com/papermint/papermint-backend/internal/transport/middleware"
	"github.com/papermint/papermint-backend/internal/transport/rest"
)

// Run is the application entry point. It loads configuration, connects
// to the database, assembles the resolution and distribution endpoints,
// and serves HTTP until the context is cancelled or a termination
// signal arrives.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	renderer, err := ogimage.NewRenderer(cfg.Site.Name, cfg.Site.Tagline)
	if err != nil {
		return fmt.Errorf("build og renderer: %w", err)
	}

	postRepo := post.New(pool)
	assembler := ogimage.NewAssembler(cfg.Site.Name, cfg.Site.Tagline, postRepo)

	limiter := middleware.NewRateLimiter(time.Minute)
	defer limiter.Stop()

	router, err := rest.NewRouter(*cfg, logger, rest.Deps{
		OG:       rest.NewOGHandler(assembler, renderer, logger, cfg.OG),
		Feed:     rest.NewFeedHandler(postRepo, feed.NewSerializer(), logger, cfg.Site, cfg.Feed),
		Health:   rest.NewHealthHandler(pool, BuildVersion()),
		Resolver: rest.NewResolverHandler(),
		Limiter:  limiter,
	})
	if err != nil {
		return fmt.Errorf("build router: %w", err)
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}

	logger.Info("shutdown complete")
	return nil
}
