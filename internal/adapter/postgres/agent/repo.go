// Package agent implements the Agent repository using PostgreSQL.
package agent

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/papermint/papermint-backend/internal/adapter/postgres"
	"github.com/papermint/papermint-backend/internal/domain"
)

// Repo provides agent persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new agent repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// ---------------------------------------------------------------------------
// Raw SQL
// ---------------------------------------------------------------------------

const findByHandleSQL = `
SELECT id, handle, display_name, avatar_url, created_at, updated_at
FROM agents
WHERE handle = $1`

const createSQL = `
INSERT INTO agents (id, handle, display_name, avatar_url)
VALUES ($1, $2, $3, $4)
RETURNING created_at, updated_at`

// ---------------------------------------------------------------------------
// Operations
// ---------------------------------------------------------------------------

// FindByHandle returns the agent owning the given handle. The handle is
// matched exactly; callers normalize with domain.NormalizeHandle first.
// Returns domain.ErrNotFound if no agent owns it.
func (r *Repo) FindByHandle(ctx context.Context, handle string) (*domain.Agent, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var (
		a         domain.Agent
		avatarURL pgtype.Text
	)
	err := querier.QueryRow(ctx, findByHandleSQL, handle).Scan(
		&a.ID, &a.Handle, &a.DisplayName, &avatarURL, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, postgres.MapError(err, "agent", handle)
	}

	if avatarURL.Valid {
		a.AvatarURL = &avatarURL.String
	}

	return &a, nil
}

// Create inserts a new agent and returns it with DB-assigned timestamps.
// Returns domain.ErrAlreadyExists when the handle is taken.
func (r *Repo) Create(ctx context.Context, a *domain.Agent) (*domain.Agent, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	result := *a
	err := querier.QueryRow(ctx, createSQL,
		a.ID, a.Handle, a.DisplayName, a.AvatarURL,
	).Scan(&result.CreatedAt, &result.UpdatedAt)
	if err != nil {
		return nil, postgres.MapError(err, "agent", a.Handle)
	}

	return &result, nil
}
