package main

import (
	"context"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/papermint/papermint-backend/internal/adapter/postgres"
	"github.com/papermint/papermint-backend/internal/adapter/postgres/agent"
	"github.com/papermint/papermint-backend/internal/adapter/postgres/post"
	"github.com/papermint/papermint-backend/internal/adapter/postgres/publication"
	"github.com/papermint/papermint-backend/internal/app"
	"github.com/papermint/papermint-backend/internal/app/seeder"
	"github.com/papermint/papermint-backend/internal/config"
)

func newSeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Insert demo agents, publications, and posts",
		Long: `Seed inserts a small fixture set for local development and demos.
The run is idempotent per handle: agents that already exist are skipped
together with their fixture content.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			logger := app.NewLogger(cfg.Log)

			ctx, cancel := context.WithTimeout(cmd.Context(), time.Minute)
			defer cancel()

			pool, err := postgres.NewPool(ctx, cfg.Database)
			if err != nil {
				return err
			}
			defer pool.Close()

			s := seeder.New(logger, postgres.NewTxManager(pool),
				agent.New(pool), publication.New(pool), post.New(pool))

			res, err := s.Run(ctx)
			if err != nil {
				return err
			}

			logger.Info("seed complete",
				slog.Int("agents_created", res.AgentsCreated),
				slog.Int("agents_skipped", res.AgentsSkipped),
				slog.Int("publications_created", res.PublicationsCreated),
				slog.Int("posts_created", res.PostsCreated),
			)
			return nil
		},
	}
}
