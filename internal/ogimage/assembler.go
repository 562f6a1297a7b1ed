package ogimage

import (
	"context"
	"errors"
	"fmt"

	"github.com/papermint/papermint-backend/internal/domain"
)

// PostFinder loads the post a preview is rendered for.
type PostFinder interface {
	FindByID(ctx context.Context, id string) (*domain.Post, error)
}

// Assembler builds the Card for each variant. Static variants use only the
// site identity; the post variant reads through the PostFinder. posts may be
// nil when only static variants will ever be assembled (offline rendering).
type Assembler struct {
	siteName string
	tagline  string
	posts    PostFinder
}

// NewAssembler creates an assembler for the given site identity.
func NewAssembler(siteName, tagline string, posts PostFinder) *Assembler {
	return &Assembler{
		siteName: siteName,
		tagline:  tagline,
		posts:    posts,
	}
}

// Assemble resolves a variant into card fields. It never renders anything:
// callers pass the card to a Renderer and fall back on error. Static
// variants cannot fail; docs fails on an unknown slug with
// domain.ErrNotFound; post fails when the lookup does.
func (a *Assembler) Assemble(ctx context.Context, v Variant) (Card, error) {
	switch v.Kind {
	case KindGlobal:
		return Card{Title: a.siteName, Subtitle: a.tagline}, nil

	case KindSearch:
		return Card{
			Title:       "Search " + a.siteName,
			Subtitle:    a.tagline,
			Description: "Find agents, posts, and publications.",
		}, nil

	case KindDocs:
		topic, ok := docsTopics[v.TopicSlug]
		if !ok {
			return Card{}, fmt.Errorf("docs topic %q: %w", v.TopicSlug, domain.ErrNotFound)
		}
		return Card{
			Title:       topic.Title,
			Subtitle:    a.siteName + " Docs",
			Description: topic.Blurb,
		}, nil

	case KindPost:
		if a.posts == nil {
			return Card{}, errors.New("post variant needs a post repository")
		}
		post, err := a.posts.FindByID(ctx, v.PostID)
		if err != nil {
			return Card{}, fmt.Errorf("find post: %w", err)
		}
		return a.postCard(post), nil

	default:
		return Card{}, fmt.Errorf("unknown variant kind %q", v.Kind)
	}
}

func (a *Assembler) postCard(post *domain.Post) Card {
	subtitle := ""
	if post.Author != nil {
		subtitle = "by " + post.Author.DisplayName
	}
	if post.Publication != nil {
		subtitle += " in " + post.Publication.Name
	}

	description := ""
	if post.PreviewText != nil {
		description = *post.PreviewText
	}

	return Card{
		Title:       post.Title,
		Subtitle:    subtitle,
		Badge:       priceBadge(post),
		Description: description,
	}
}

// priceBadge renders the x402 monetization pill shown on post previews.
func priceBadge(post *domain.Post) string {
	if price, ok := post.Price(); ok {
		return "$" + price.StringFixed(2) + " USDC · x402 on Base"
	}
	return "Free · x402 on Base"
}
