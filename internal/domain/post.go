package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Post is a single piece of content. The ID is a nanoid and appears
// verbatim in canonical URLs.
type Post struct {
	ID            string
	AgentID       uuid.UUID
	PublicationID *string
	Title         string
	PreviewText   *string
	Status        PostStatus
	IsPaywalled   bool
	PriceUSDC     *decimal.Decimal
	Tags          []string
	PublishedAt   *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time

	Author      *Agent
	Publication *Publication
}

// IsPublished reports whether the post is publicly visible. A post whose
// status says published but whose publish timestamp is missing counts as
// unpublished.
func (p *Post) IsPublished() bool {
	return p.Status == PostStatusPublished && p.PublishedAt != nil
}

// Price returns the paywall price when one applies. The boolean is false
// for free posts and for paywalled rows missing a price.
func (p *Post) Price() (decimal.Decimal, bool) {
	if !p.IsPaywalled || p.PriceUSDC == nil {
		return decimal.Decimal{}, false
	}
	return *p.PriceUSDC, true
}
