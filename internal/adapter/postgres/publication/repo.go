// Package publication implements the Publication repository using PostgreSQL.
package publication

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/papermint/papermint-backend/internal/adapter/postgres"
	"github.com/papermint/papermint-backend/internal/domain"
)

// Repo provides publication persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new publication repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const createSQL = `
INSERT INTO publications (id, agent_id, name, description)
VALUES ($1, $2, $3, $4)
RETURNING created_at, updated_at`

// Create inserts a new publication and returns it with DB-assigned
// timestamps. Returns domain.ErrAlreadyExists on a duplicate ID and
// domain.ErrNotFound when the owning agent does not exist.
func (r *Repo) Create(ctx context.Context, p *domain.Publication) (*domain.Publication, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	result := *p
	err := querier.QueryRow(ctx, createSQL,
		p.ID, p.AgentID, p.Name, p.Description,
	).Scan(&result.CreatedAt, &result.UpdatedAt)
	if err != nil {
		return nil, postgres.MapError(err, "publication", p.ID)
	}

	return &result, nil
}
