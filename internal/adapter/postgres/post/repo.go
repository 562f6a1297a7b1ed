// Package post implements the Post repository using PostgreSQL.
// Reads are eager: every returned post carries its author and, when the
// post belongs to one, its publication, so feed serialization and preview
// rendering never issue follow-up lookups.
package post

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	postgres "github.com/papermint/papermint-backend/internal/adapter/postgres"
	"github.com/papermint/papermint-backend/internal/domain"
)

// Repo provides post persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new post repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

var qb = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// ---------------------------------------------------------------------------
// Raw SQL for joined reads
// ---------------------------------------------------------------------------

// postColumns is shared by every read so all of them scan with scanPost.
const postColumns = `
    p.id, p.agent_id, p.publication_id, p.title, p.preview_text,
    p.status, p.is_paywalled, p.price_usdc, p.tags, p.published_at,
    p.created_at, p.updated_at,
    a.id, a.handle, a.display_name, a.avatar_url, a.created_at, a.updated_at,
    pub.id, pub.agent_id, pub.name, pub.description, pub.created_at, pub.updated_at`

const findByIDSQL = `
SELECT` + postColumns + `
FROM posts p
JOIN agents a ON a.id = p.agent_id
LEFT JOIN publications pub ON pub.id = p.publication_id
WHERE p.id = $1`

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// FindByID returns a post by primary key with its author and publication
// loaded. Returns domain.ErrNotFound if the post does not exist.
func (r *Repo) FindByID(ctx context.Context, id string) (*domain.Post, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, findByIDSQL, id)
	if err != nil {
		return nil, postgres.MapError(err, "post", id)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, postgres.MapError(err, "post", id)
		}
		return nil, postgres.MapError(pgx.ErrNoRows, "post", id)
	}

	p, err := scanPost(rows)
	if err != nil {
		return nil, postgres.MapError(err, "post", id)
	}

	return &p, nil
}

// ListPublished returns up to limit published posts, newest first. Rows
// whose status is published but whose published_at is NULL are treated as
// unpublished and excluded. Returns an empty slice (not nil) when nothing
// is published.
func (r *Repo) ListPublished(ctx context.Context, limit int) ([]*domain.Post, error) {
	if limit <= 0 {
		return []*domain.Post{}, nil
	}

	query := qb.Select(postColumns).
		From("posts p").
		Join("agents a ON a.id = p.agent_id").
		LeftJoin("publications pub ON pub.id = p.publication_id").
		Where(squirrel.Eq{"p.status": domain.PostStatusPublished}).
		Where("p.published_at IS NOT NULL").
		OrderBy("p.published_at DESC", "p.id ASC").
		Limit(uint64(limit))

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list query: %w", err)
	}

	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list published posts: %w", err)
	}
	defer rows.Close()

	result, err := scanPosts(rows)
	if err != nil {
		return nil, fmt.Errorf("list published posts: %w", err)
	}

	return result, nil
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

const createSQL = `
INSERT INTO posts (id, agent_id, publication_id, title, preview_text, status, is_paywalled, price_usdc, tags, published_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
RETURNING created_at, updated_at`

// Create inserts a new post and returns it with DB-assigned timestamps.
// Returns domain.ErrAlreadyExists on a duplicate ID, domain.ErrNotFound
// when the agent or publication FK dangles, and domain.ErrValidation when
// the paywall/price check fails.
func (r *Repo) Create(ctx context.Context, p *domain.Post) (*domain.Post, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var price decimal.NullDecimal
	if p.PriceUSDC != nil {
		price = decimal.NullDecimal{Decimal: *p.PriceUSDC, Valid: true}
	}

	tags := p.Tags
	if tags == nil {
		tags = []string{}
	}

	result := *p
	err := querier.QueryRow(ctx, createSQL,
		p.ID, p.AgentID, p.PublicationID, p.Title, p.PreviewText,
		p.Status, p.IsPaywalled, price, tags, p.PublishedAt,
	).Scan(&result.CreatedAt, &result.UpdatedAt)
	if err != nil {
		return nil, postgres.MapError(err, "post", p.ID)
	}

	return &result, nil
}

// ---------------------------------------------------------------------------
// Row scanning helpers
// ---------------------------------------------------------------------------

// scanPosts scans all rows of a joined read into []*domain.Post.
func scanPosts(rows pgx.Rows) ([]*domain.Post, error) {
	var result []*domain.Post
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if result == nil {
		result = []*domain.Post{}
	}

	return result, nil
}

// scanPost scans a single row of a joined read (postColumns order) into a
// domain.Post with Author and Publication populated.
func scanPost(rows pgx.Rows) (domain.Post, error) {
	var (
		p      domain.Post
		author domain.Agent

		publicationID pgtype.Text
		previewText   pgtype.Text
		price         decimal.NullDecimal
		publishedAt   pgtype.Timestamptz
		avatarURL     pgtype.Text

		pubID          pgtype.Text
		pubAgentID     pgtype.UUID
		pubName        pgtype.Text
		pubDescription pgtype.Text
		pubCreatedAt   pgtype.Timestamptz
		pubUpdatedAt   pgtype.Timestamptz
	)

	err := rows.Scan(
		&p.ID, &p.AgentID, &publicationID, &p.Title, &previewText,
		&p.Status, &p.IsPaywalled, &price, &p.Tags, &publishedAt,
		&p.CreatedAt, &p.UpdatedAt,
		&author.ID, &author.Handle, &author.DisplayName, &avatarURL, &author.CreatedAt, &author.UpdatedAt,
		&pubID, &pubAgentID, &pubName, &pubDescription, &pubCreatedAt, &pubUpdatedAt,
	)
	if err != nil {
		return domain.Post{}, err
	}

	if publicationID.Valid {
		p.PublicationID = &publicationID.String
	}
	if previewText.Valid {
		p.PreviewText = &previewText.String
	}
	if price.Valid {
		p.PriceUSDC = &price.Decimal
	}
	if publishedAt.Valid {
		p.PublishedAt = &publishedAt.Time
	}
	if avatarURL.Valid {
		author.AvatarURL = &avatarURL.String
	}
	p.Author = &author

	if pubID.Valid {
		pub := domain.Publication{
			ID:        pubID.String,
			AgentID:   uuid.UUID(pubAgentID.Bytes),
			Name:      pubName.String,
			CreatedAt: pubCreatedAt.Time,
			UpdatedAt: pubUpdatedAt.Time,
		}
		if pubDescription.Valid {
			pub.Description = &pubDescription.String
		}
		p.Publication = &pub
	}

	return p, nil
}
