package post_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/papermint/papermint-backend/internal/adapter/postgres/post"
	"github.com/papermint/papermint-backend/internal/adapter/postgres/testhelper"
	"github.com/papermint/papermint-backend/internal/domain"
)

// newRepo sets up a test DB and returns a ready Repo + pool.
func newRepo(t *testing.T) (*post.Repo, *pgxpool.Pool) {
	t.Helper()
	pool := testhelper.SetupTestDB(t)
	return post.New(pool), pool
}

// ---------------------------------------------------------------------------
// FindByID tests
// ---------------------------------------------------------------------------

func TestRepo_FindByID(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	agent := testhelper.SeedAgent(t, pool)
	seeded := testhelper.SeedPost(t, pool, agent.ID, time.Now())

	got, err := repo.FindByID(ctx, seeded.ID)
	if err != nil {
		t.Fatalf("FindByID: unexpected error: %v", err)
	}

	if got.ID != seeded.ID {
		t.Errorf("ID mismatch: got %q, want %q", got.ID, seeded.ID)
	}
	if got.Title != seeded.Title {
		t.Errorf("Title mismatch: got %q, want %q", got.Title, seeded.Title)
	}
	if got.PreviewText == nil || *got.PreviewText != *seeded.PreviewText {
		t.Errorf("PreviewText mismatch: got %v, want %v", got.PreviewText, seeded.PreviewText)
	}
	if got.Status != domain.PostStatusPublished {
		t.Errorf("Status mismatch: got %q, want %q", got.Status, domain.PostStatusPublished)
	}
	if got.IsPaywalled {
		t.Error("expected free post, got paywalled")
	}
	if got.PriceUSDC != nil {
		t.Errorf("expected nil PriceUSDC, got %v", got.PriceUSDC)
	}
	if len(got.Tags) != 2 || got.Tags[0] != "agents" || got.Tags[1] != "onchain" {
		t.Errorf("Tags mismatch: got %v", got.Tags)
	}
	if got.PublishedAt == nil || !got.PublishedAt.Equal(*seeded.PublishedAt) {
		t.Errorf("PublishedAt mismatch: got %v, want %v", got.PublishedAt, seeded.PublishedAt)
	}

	// Author is loaded eagerly.
	if got.Author == nil {
		t.Fatal("expected Author to be loaded")
	}
	if got.Author.ID != agent.ID {
		t.Errorf("Author.ID mismatch: got %s, want %s", got.Author.ID, agent.ID)
	}
	if got.Author.Handle != agent.Handle {
		t.Errorf("Author.Handle mismatch: got %q, want %q", got.Author.Handle, agent.Handle)
	}
	if got.Author.DisplayName != agent.DisplayName {
		t.Errorf("Author.DisplayName mismatch: got %q, want %q", got.Author.DisplayName, agent.DisplayName)
	}
	if got.Author.AvatarURL == nil || *got.Author.AvatarURL != *agent.AvatarURL {
		t.Errorf("Author.AvatarURL mismatch: got %v, want %v", got.Author.AvatarURL, agent.AvatarURL)
	}

	// No publication attached.
	if got.PublicationID != nil {
		t.Errorf("expected nil PublicationID, got %v", *got.PublicationID)
	}
	if got.Publication != nil {
		t.Errorf("expected nil Publication, got %+v", got.Publication)
	}
}

func TestRepo_FindByID_WithPublication(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	agent := testhelper.SeedAgent(t, pool)
	pub := testhelper.SeedPublication(t, pool, agent.ID)
	seeded := testhelper.SeedPostInPublication(t, pool, agent.ID, pub.ID, time.Now())

	got, err := repo.FindByID(ctx, seeded.ID)
	if err != nil {
		t.Fatalf("FindByID: unexpected error: %v", err)
	}

	if got.PublicationID == nil || *got.PublicationID != pub.ID {
		t.Fatalf("PublicationID mismatch: got %v, want %q", got.PublicationID, pub.ID)
	}
	if got.Publication == nil {
		t.Fatal("expected Publication to be loaded")
	}
	if got.Publication.ID != pub.ID {
		t.Errorf("Publication.ID mismatch: got %q, want %q", got.Publication.ID, pub.ID)
	}
	if got.Publication.AgentID != agent.ID {
		t.Errorf("Publication.AgentID mismatch: got %s, want %s", got.Publication.AgentID, agent.ID)
	}
	if got.Publication.Name != pub.Name {
		t.Errorf("Publication.Name mismatch: got %q, want %q", got.Publication.Name, pub.Name)
	}
	if got.Publication.Description == nil || *got.Publication.Description != *pub.Description {
		t.Errorf("Publication.Description mismatch: got %v, want %v", got.Publication.Description, pub.Description)
	}
}

func TestRepo_FindByID_PaywalledPrice(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	agent := testhelper.SeedAgent(t, pool)
	price := decimal.RequireFromString("3.50")
	seeded := testhelper.SeedPaywalledPost(t, pool, agent.ID, price, time.Now())

	got, err := repo.FindByID(ctx, seeded.ID)
	if err != nil {
		t.Fatalf("FindByID: unexpected error: %v", err)
	}

	if !got.IsPaywalled {
		t.Error("expected paywalled post")
	}
	if got.PriceUSDC == nil {
		t.Fatal("expected PriceUSDC to be set")
	}
	if !got.PriceUSDC.Equal(price) {
		t.Errorf("PriceUSDC mismatch: got %s, want %s", got.PriceUSDC, price)
	}

	gotPrice, ok := got.Price()
	if !ok {
		t.Fatal("Price: expected ok for paywalled post")
	}
	if gotPrice.StringFixed(2) != "3.50" {
		t.Errorf("Price formatting mismatch: got %q, want %q", gotPrice.StringFixed(2), "3.50")
	}
}

func TestRepo_FindByID_DraftHasNoPublishTime(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	agent := testhelper.SeedAgent(t, pool)
	seeded := testhelper.SeedDraftPost(t, pool, agent.ID)

	got, err := repo.FindByID(ctx, seeded.ID)
	if err != nil {
		t.Fatalf("FindByID: unexpected error: %v", err)
	}

	if got.Status != domain.PostStatusDraft {
		t.Errorf("Status mismatch: got %q, want %q", got.Status, domain.PostStatusDraft)
	}
	if got.PublishedAt != nil {
		t.Errorf("expected nil PublishedAt, got %v", got.PublishedAt)
	}
	if got.IsPublished() {
		t.Error("IsPublished: expected false for draft")
	}
	if len(got.Tags) != 0 {
		t.Errorf("expected empty Tags, got %v", got.Tags)
	}
}

func TestRepo_FindByID_NotFound(t *testing.T) {
	t.Parallel()
	repo, _ := newRepo(t)
	ctx := context.Background()

	_, err := repo.FindByID(ctx, "post-does-not-exist")
	assertIsDomainError(t, err, domain.ErrNotFound)
}

// ---------------------------------------------------------------------------
// ListPublished tests
// ---------------------------------------------------------------------------

// The test DB is shared across the package, so listing tests never assert on
// the full result set. They filter down to posts seeded by the test itself
// and check order and membership within that subset.

func TestRepo_ListPublished_OrderAndExclusions(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	agent := testhelper.SeedAgent(t, pool)
	base := time.Now()
	p1 := testhelper.SeedPost(t, pool, agent.ID, base.Add(1*time.Minute))
	p2 := testhelper.SeedPost(t, pool, agent.ID, base.Add(2*time.Minute))
	p3 := testhelper.SeedPost(t, pool, agent.ID, base.Add(3*time.Minute))
	draft := testhelper.SeedDraftPost(t, pool, agent.ID)
	legacy := testhelper.SeedLegacyPublishedPost(t, pool, agent.ID)

	got, err := repo.ListPublished(ctx, 100)
	if err != nil {
		t.Fatalf("ListPublished: unexpected error: %v", err)
	}

	var mine []string
	for _, p := range got {
		if p.AgentID != agent.ID {
			continue
		}
		if p.ID == draft.ID {
			t.Error("draft post must not be listed")
		}
		if p.ID == legacy.ID {
			t.Error("published post without publish time must not be listed")
		}
		if p.PublishedAt == nil {
			t.Errorf("listed post %q has nil PublishedAt", p.ID)
		}
		mine = append(mine, p.ID)
	}

	want := []string{p3.ID, p2.ID, p1.ID}
	if len(mine) != len(want) {
		t.Fatalf("expected %d listed posts for this agent, got %d: %v", len(want), len(mine), mine)
	}
	for i := range want {
		if mine[i] != want[i] {
			t.Errorf("order mismatch at %d: got %q, want %q", i, mine[i], want[i])
		}
	}
}

func TestRepo_ListPublished_Limit(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	agent := testhelper.SeedAgent(t, pool)

	// Publish times far enough in the future that these three outrank
	// anything seeded by sibling tests.
	base := time.Now().Add(48 * time.Hour)
	testhelper.SeedPost(t, pool, agent.ID, base)
	p2 := testhelper.SeedPost(t, pool, agent.ID, base.Add(1*time.Hour))
	p3 := testhelper.SeedPost(t, pool, agent.ID, base.Add(2*time.Hour))

	got, err := repo.ListPublished(ctx, 2)
	if err != nil {
		t.Fatalf("ListPublished: unexpected error: %v", err)
	}

	if len(got) != 2 {
		t.Fatalf("expected exactly 2 posts, got %d", len(got))
	}
	if got[0].ID != p3.ID {
		t.Errorf("expected newest post %q first, got %q", p3.ID, got[0].ID)
	}
	if got[1].ID != p2.ID {
		t.Errorf("expected second-newest post %q, got %q", p2.ID, got[1].ID)
	}
}

func TestRepo_ListPublished_NonPositiveLimit(t *testing.T) {
	t.Parallel()
	repo, _ := newRepo(t)
	ctx := context.Background()

	got, err := repo.ListPublished(ctx, 0)
	if err != nil {
		t.Fatalf("ListPublished: unexpected error: %v", err)
	}
	if got == nil {
		t.Fatal("expected empty slice, got nil")
	}
	if len(got) != 0 {
		t.Fatalf("expected no posts, got %d", len(got))
	}
}

func TestRepo_ListPublished_EagerAuthorAndPublication(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	agent := testhelper.SeedAgent(t, pool)
	pub := testhelper.SeedPublication(t, pool, agent.ID)
	seeded := testhelper.SeedPostInPublication(t, pool, agent.ID, pub.ID, time.Now().Add(10*time.Minute))

	got, err := repo.ListPublished(ctx, 100)
	if err != nil {
		t.Fatalf("ListPublished: unexpected error: %v", err)
	}

	var found *domain.Post
	for _, p := range got {
		if p.ID == seeded.ID {
			found = p
			break
		}
	}
	if found == nil {
		t.Fatalf("seeded post %q not in listing", seeded.ID)
	}

	if found.Author == nil || found.Author.Handle != agent.Handle {
		t.Errorf("expected Author %q loaded, got %+v", agent.Handle, found.Author)
	}
	if found.Publication == nil || found.Publication.Name != pub.Name {
		t.Errorf("expected Publication %q loaded, got %+v", pub.Name, found.Publication)
	}
}

// ---------------------------------------------------------------------------
// Create tests
// ---------------------------------------------------------------------------

func TestRepo_Create_AndFindByID(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	agent := testhelper.SeedAgent(t, pool)

	suffix := uuid.New().String()[:8]
	preview := "created preview " + suffix
	price := decimal.RequireFromString("12.50")
	publishedAt := time.Now().UTC().Truncate(time.Microsecond)

	created, err := repo.Create(ctx, &domain.Post{
		ID:          "created-" + suffix,
		AgentID:     agent.ID,
		Title:       "Created " + suffix,
		PreviewText: &preview,
		Status:      domain.PostStatusPublished,
		IsPaywalled: true,
		PriceUSDC:   &price,
		Tags:        []string{"x402", "payments"},
		PublishedAt: &publishedAt,
	})
	if err != nil {
		t.Fatalf("Create: unexpected error: %v", err)
	}

	if created.CreatedAt.IsZero() {
		t.Error("CreatedAt should not be zero")
	}
	if created.UpdatedAt.IsZero() {
		t.Error("UpdatedAt should not be zero")
	}

	got, err := repo.FindByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("FindByID after Create: unexpected error: %v", err)
	}

	if got.Title != "Created "+suffix {
		t.Errorf("Title mismatch: got %q", got.Title)
	}
	if got.PriceUSDC == nil || !got.PriceUSDC.Equal(price) {
		t.Errorf("PriceUSDC mismatch: got %v, want %s", got.PriceUSDC, price)
	}
	if len(got.Tags) != 2 || got.Tags[0] != "x402" || got.Tags[1] != "payments" {
		t.Errorf("Tags mismatch: got %v", got.Tags)
	}
	if got.PublishedAt == nil || !got.PublishedAt.Equal(publishedAt) {
		t.Errorf("PublishedAt mismatch: got %v, want %v", got.PublishedAt, publishedAt)
	}
	if !got.IsPublished() {
		t.Error("IsPublished: expected true")
	}
}

func TestRepo_Create_NilTagsStoredEmpty(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	agent := testhelper.SeedAgent(t, pool)

	created, err := repo.Create(ctx, &domain.Post{
		ID:      "niltags-" + uuid.New().String()[:8],
		AgentID: agent.ID,
		Title:   "No tags",
		Status:  domain.PostStatusDraft,
	})
	if err != nil {
		t.Fatalf("Create: unexpected error: %v", err)
	}

	got, err := repo.FindByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("FindByID: unexpected error: %v", err)
	}
	if got.Tags == nil {
		t.Fatal("expected empty Tags slice, got nil")
	}
	if len(got.Tags) != 0 {
		t.Errorf("expected no tags, got %v", got.Tags)
	}
}

func TestRepo_Create_DuplicateID(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	agent := testhelper.SeedAgent(t, pool)
	id := "dup-" + uuid.New().String()[:8]

	_, err := repo.Create(ctx, &domain.Post{ID: id, AgentID: agent.ID, Title: "First", Status: domain.PostStatusDraft})
	if err != nil {
		t.Fatalf("Create first: %v", err)
	}

	_, err = repo.Create(ctx, &domain.Post{ID: id, AgentID: agent.ID, Title: "Second", Status: domain.PostStatusDraft})
	assertIsDomainError(t, err, domain.ErrAlreadyExists)
}

func TestRepo_Create_UnknownAgent(t *testing.T) {
	t.Parallel()
	repo, _ := newRepo(t)
	ctx := context.Background()

	_, err := repo.Create(ctx, &domain.Post{
		ID:      "orphan-" + uuid.New().String()[:8],
		AgentID: uuid.New(),
		Title:   "Orphan",
		Status:  domain.PostStatusDraft,
	})
	assertIsDomainError(t, err, domain.ErrNotFound)
}

func TestRepo_Create_PaywalledWithoutPrice(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	agent := testhelper.SeedAgent(t, pool)

	_, err := repo.Create(ctx, &domain.Post{
		ID:          "nopriced-" + uuid.New().String()[:8],
		AgentID:     agent.ID,
		Title:       "Paywalled without price",
		Status:      domain.PostStatusDraft,
		IsPaywalled: true,
	})
	assertIsDomainError(t, err, domain.ErrValidation)
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func assertIsDomainError(t *testing.T, err error, target error) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error wrapping %v, got nil", target)
	}
	if !errors.Is(err, target) {
		t.Fatalf("expected error wrapping %v, got: %v", target, err)
	}
}
