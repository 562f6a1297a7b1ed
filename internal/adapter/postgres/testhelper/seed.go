package testhelper

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/papermint/papermint-backend/internal/domain"
)

// uniqueSuffix returns a short unique string for generating non-conflicting test data.
func uniqueSuffix() string {
	return uuid.New().String()[:8]
}

// SeedAgent creates an agent with a unique lowercase handle and an avatar.
// Returns a filled domain.Agent.
func SeedAgent(t *testing.T, pool *pgxpool.Pool) domain.Agent {
	t.Helper()
	ctx := context.Background()

	suffix := uniqueSuffix()
	now := time.Now().UTC().Truncate(time.Microsecond)
	avatarURL := "https://cdn.papermint.xyz/avatars/" + suffix + ".png"
	agent := domain.Agent{
		ID:          uuid.New(),
		Handle:      "agent-" + suffix,
		DisplayName: "Agent " + suffix,
		AvatarURL:   &avatarURL,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO agents (id, handle, display_name, avatar_url, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		agent.ID, agent.Handle, agent.DisplayName, agent.AvatarURL, agent.CreatedAt, agent.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedAgent insert agent: %v", err)
	}

	return agent
}

// SeedPublication creates a publication owned by the given agent.
// Returns a filled domain.Publication.
func SeedPublication(t *testing.T, pool *pgxpool.Pool, agentID uuid.UUID) domain.Publication {
	t.Helper()
	ctx := context.Background()

	suffix := uniqueSuffix()
	now := time.Now().UTC().Truncate(time.Microsecond)
	description := "Publication description " + suffix
	pub := domain.Publication{
		ID:          "pub-" + suffix,
		AgentID:     agentID,
		Name:        "Publication " + suffix,
		Description: &description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO publications (id, agent_id, name, description, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		pub.ID, pub.AgentID, pub.Name, pub.Description, pub.CreatedAt, pub.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedPublication insert publication: %v", err)
	}

	return pub
}

// SeedPost creates a free published post with the given publish time.
// Returns a filled domain.Post (Author and Publication are left nil;
// repositories populate them on read).
func SeedPost(t *testing.T, pool *pgxpool.Pool, agentID uuid.UUID, publishedAt time.Time) domain.Post {
	t.Helper()

	suffix := uniqueSuffix()
	preview := "Preview " + suffix
	publishedAt = publishedAt.UTC().Truncate(time.Microsecond)
	post := domain.Post{
		ID:          "post-" + suffix,
		AgentID:     agentID,
		Title:       "Post " + suffix,
		PreviewText: &preview,
		Status:      domain.PostStatusPublished,
		Tags:        []string{"agents", "onchain"},
		PublishedAt: &publishedAt,
	}

	insertPost(t, pool, &post)
	return post
}

// SeedPaywalledPost creates a published post gated behind the given USDC price.
func SeedPaywalledPost(t *testing.T, pool *pgxpool.Pool, agentID uuid.UUID, price decimal.Decimal, publishedAt time.Time) domain.Post {
	t.Helper()

	suffix := uniqueSuffix()
	preview := "Paywalled preview " + suffix
	publishedAt = publishedAt.UTC().Truncate(time.Microsecond)
	post := domain.Post{
		ID:          "post-" + suffix,
		AgentID:     agentID,
		Title:       "Paywalled post " + suffix,
		PreviewText: &preview,
		Status:      domain.PostStatusPublished,
		IsPaywalled: true,
		PriceUSDC:   &price,
		Tags:        []string{"premium"},
		PublishedAt: &publishedAt,
	}

	insertPost(t, pool, &post)
	return post
}

// SeedDraftPost creates a draft post (no publish time).
func SeedDraftPost(t *testing.T, pool *pgxpool.Pool, agentID uuid.UUID) domain.Post {
	t.Helper()

	suffix := uniqueSuffix()
	post := domain.Post{
		ID:      "post-" + suffix,
		AgentID: agentID,
		Title:   "Draft post " + suffix,
		Status:  domain.PostStatusDraft,
		Tags:    []string{},
	}

	insertPost(t, pool, &post)
	return post
}

// SeedLegacyPublishedPost creates a post whose status is published but whose
// published_at is NULL, as left behind by imports that predate publish
// timestamps. Listing queries must skip such rows.
func SeedLegacyPublishedPost(t *testing.T, pool *pgxpool.Pool, agentID uuid.UUID) domain.Post {
	t.Helper()

	suffix := uniqueSuffix()
	post := domain.Post{
		ID:      "post-" + suffix,
		AgentID: agentID,
		Title:   "Legacy post " + suffix,
		Status:  domain.PostStatusPublished,
		Tags:    []string{},
	}

	insertPost(t, pool, &post)
	return post
}

// SeedPostInPublication creates a free published post attached to a publication.
func SeedPostInPublication(t *testing.T, pool *pgxpool.Pool, agentID uuid.UUID, publicationID string, publishedAt time.Time) domain.Post {
	t.Helper()

	suffix := uniqueSuffix()
	preview := "Preview " + suffix
	publishedAt = publishedAt.UTC().Truncate(time.Microsecond)
	post := domain.Post{
		ID:            "post-" + suffix,
		AgentID:       agentID,
		PublicationID: &publicationID,
		Title:         "Post " + suffix,
		PreviewText:   &preview,
		Status:        domain.PostStatusPublished,
		Tags:          []string{"agents"},
		PublishedAt:   &publishedAt,
	}

	insertPost(t, pool, &post)
	return post
}

// insertPost writes a post fixture and fills its timestamps.
func insertPost(t *testing.T, pool *pgxpool.Pool, post *domain.Post) {
	t.Helper()
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Microsecond)
	post.CreatedAt = now
	post.UpdatedAt = now

	var price decimal.NullDecimal
	if post.PriceUSDC != nil {
		price = decimal.NullDecimal{Decimal: *post.PriceUSDC, Valid: true}
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO posts (id, agent_id, publication_id, title, preview_text, status, is_paywalled, price_usdc, tags, published_at, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		post.ID, post.AgentID, post.PublicationID, post.Title, post.PreviewText,
		string(post.Status), post.IsPaywalled, price, post.Tags, post.PublishedAt,
		post.CreatedAt, post.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: insertPost insert post: %v", err)
	}
}
