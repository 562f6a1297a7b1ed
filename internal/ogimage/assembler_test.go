package ogimage_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/papermint/papermint-backend/internal/domain"
	"github.com/papermint/papermint-backend/internal/ogimage"
)

type postFinderStub struct {
	post  *domain.Post
	err   error
	gotID string
}

func (s *postFinderStub) FindByID(_ context.Context, id string) (*domain.Post, error) {
	s.gotID = id
	if s.err != nil {
		return nil, s.err
	}
	return s.post, nil
}

func newAssembler(posts ogimage.PostFinder) *ogimage.Assembler {
	return ogimage.NewAssembler("Papermint", "Publishing for autonomous agents", posts)
}

func TestAssemble_Global(t *testing.T) {
	t.Parallel()
	a := newAssembler(nil)

	card, err := a.Assemble(context.Background(), ogimage.GlobalVariant())
	require.NoError(t, err)
	assert.Equal(t, "Papermint", card.Title)
	assert.Equal(t, "Publishing for autonomous agents", card.Subtitle)
	assert.Empty(t, card.Badge)
}

func TestAssemble_Search(t *testing.T) {
	t.Parallel()
	a := newAssembler(nil)

	card, err := a.Assemble(context.Background(), ogimage.SearchVariant())
	require.NoError(t, err)
	assert.Equal(t, "Search Papermint", card.Title)
	assert.NotEmpty(t, card.Description)
}

func TestAssemble_Docs(t *testing.T) {
	t.Parallel()
	a := newAssembler(nil)

	card, err := a.Assemble(context.Background(), ogimage.DocsVariant("x402"))
	require.NoError(t, err)
	assert.Equal(t, "x402 Payments", card.Title)
	assert.Equal(t, "Papermint Docs", card.Subtitle)
	assert.NotEmpty(t, card.Description)
}

func TestAssemble_Docs_UnknownSlug(t *testing.T) {
	t.Parallel()
	a := newAssembler(nil)

	_, err := a.Assemble(context.Background(), ogimage.DocsVariant("not-a-topic"))
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAssemble_Docs_SlugsAreKnown(t *testing.T) {
	t.Parallel()
	a := newAssembler(nil)

	slugs := ogimage.DocsTopicSlugs()
	require.NotEmpty(t, slugs)
	for _, slug := range slugs {
		card, err := a.Assemble(context.Background(), ogimage.DocsVariant(slug))
		require.NoError(t, err, "slug %q", slug)
		assert.NotEmpty(t, card.Title, "slug %q", slug)
	}
}

func TestAssemble_Post_Free(t *testing.T) {
	t.Parallel()
	preview := "What agents read when nobody is watching."
	finder := &postFinderStub{post: &domain.Post{
		ID:          "post-1",
		Title:       "First Light",
		PreviewText: &preview,
		Status:      domain.PostStatusPublished,
		Author:      &domain.Agent{DisplayName: "Ada Lovelace", Handle: "ada"},
	}}
	a := newAssembler(finder)

	card, err := a.Assemble(context.Background(), ogimage.PostVariant("post-1"))
	require.NoError(t, err)
	assert.Equal(t, "post-1", finder.gotID)
	assert.Equal(t, "First Light", card.Title)
	assert.Equal(t, "by Ada Lovelace", card.Subtitle)
	assert.Equal(t, "Free · x402 on Base", card.Badge)
	assert.Equal(t, preview, card.Description)
}

func TestAssemble_Post_PaywalledPrice(t *testing.T) {
	t.Parallel()
	price := decimal.NewFromInt(3)
	finder := &postFinderStub{post: &domain.Post{
		ID:          "post-2",
		Title:       "Paid Thoughts",
		Status:      domain.PostStatusPublished,
		IsPaywalled: true,
		PriceUSDC:   &price,
		Author:      &domain.Agent{DisplayName: "Ada Lovelace"},
	}}
	a := newAssembler(finder)

	card, err := a.Assemble(context.Background(), ogimage.PostVariant("post-2"))
	require.NoError(t, err)
	assert.Equal(t, "$3.00 USDC · x402 on Base", card.Badge)
}

func TestAssemble_Post_InPublication(t *testing.T) {
	t.Parallel()
	price := decimal.RequireFromString("12.5")
	finder := &postFinderStub{post: &domain.Post{
		ID:          "post-3",
		Title:       "Market Microstructure for Bots",
		Status:      domain.PostStatusPublished,
		IsPaywalled: true,
		PriceUSDC:   &price,
		Author:      &domain.Agent{DisplayName: "Ada Lovelace"},
		Publication: &domain.Publication{Name: "Machine Economy"},
	}}
	a := newAssembler(finder)

	card, err := a.Assemble(context.Background(), ogimage.PostVariant("post-3"))
	require.NoError(t, err)
	assert.Equal(t, "by Ada Lovelace in Machine Economy", card.Subtitle)
	assert.Equal(t, "$12.50 USDC · x402 on Base", card.Badge)
}

func TestAssemble_Post_NilPreviewText(t *testing.T) {
	t.Parallel()
	finder := &postFinderStub{post: &domain.Post{
		ID:     "post-4",
		Title:  "Untitled preview",
		Status: domain.PostStatusPublished,
		Author: &domain.Agent{DisplayName: "Ada Lovelace"},
	}}
	a := newAssembler(finder)

	card, err := a.Assemble(context.Background(), ogimage.PostVariant("post-4"))
	require.NoError(t, err)
	assert.Empty(t, card.Description)
}

func TestAssemble_Post_NotFound(t *testing.T) {
	t.Parallel()
	finder := &postFinderStub{err: fmt.Errorf("post nope: %w", domain.ErrNotFound)}
	a := newAssembler(finder)

	_, err := a.Assemble(context.Background(), ogimage.PostVariant("nope"))
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAssemble_Post_NoRepository(t *testing.T) {
	t.Parallel()
	a := newAssembler(nil)

	_, err := a.Assemble(context.Background(), ogimage.PostVariant("post-1"))
	require.Error(t, err)
}

func TestAssemble_UnknownKind(t *testing.T) {
	t.Parallel()
	a := newAssembler(nil)

	_, err := a.Assemble(context.Background(), ogimage.Variant{Kind: ogimage.Kind("poster")})
	require.Error(t, err)
}

func TestVariant_RequiresDataAccess(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		variant ogimage.Variant
		want    bool
	}{
		{"global", ogimage.GlobalVariant(), false},
		{"docs", ogimage.DocsVariant("x402"), false},
		{"search", ogimage.SearchVariant(), false},
		{"post", ogimage.PostVariant("post-1"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.variant.RequiresDataAccess())
		})
	}
}

func TestKind_IsValid(t *testing.T) {
	t.Parallel()

	for _, k := range []ogimage.Kind{ogimage.KindGlobal, ogimage.KindDocs, ogimage.KindSearch, ogimage.KindPost} {
		assert.True(t, k.IsValid(), "kind %q", k)
	}
	assert.False(t, ogimage.Kind("").IsValid())
	assert.False(t, ogimage.Kind("banner").IsValid())
}
