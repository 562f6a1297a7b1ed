// Package feed serializes syndication documents: the RSS 2.0 feed with the
// x402 monetization extension, and the crawler sitemap. Serializers are pure
// and order-preserving; callers supply posts already filtered, sorted, and
// capped.
package feed

import (
	"encoding/xml"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/papermint/papermint-backend/internal/domain"
	"github.com/papermint/papermint-backend/internal/routing"
)

const (
	dcNamespace = "http://purl.org/dc/elements/1.1/"

	// x402Namespace declares the per-item monetization extension. Extension-
	// aware readers match on the namespace URI, not the prefix.
	x402Namespace = "https://papermint.xyz/ns/x402"
)

// Channel describes the feed itself.
type Channel struct {
	Title       string
	Link        string
	Description string
}

// Item is one feed entry, already mapped from the domain. Description falls
// back to Title and PublishedAt falls back to the render time, so a feed
// render cannot fail on missing fields.
type Item struct {
	Title       string
	Link        string
	Description string
	Author      string
	Categories  []string
	PublishedAt *time.Time
	Paywalled   bool
	PriceUSDC   *decimal.Decimal
}

// ItemFromPost maps a post to its feed entry. baseURL must carry no trailing
// slash (config validation guarantees this).
func ItemFromPost(baseURL string, post *domain.Post) Item {
	item := Item{
		Title:       post.Title,
		Link:        baseURL + routing.PostPath(post.ID),
		Categories:  post.Tags,
		PublishedAt: post.PublishedAt,
		Paywalled:   post.IsPaywalled,
	}
	if post.PreviewText != nil {
		item.Description = *post.PreviewText
	}
	if post.Author != nil {
		item.Author = post.Author.DisplayName
	}
	if price, ok := post.Price(); ok {
		item.PriceUSDC = &price
	}
	return item
}

// Serializer renders feed documents.
type Serializer struct {
	now func() time.Time
}

// NewSerializer creates a feed serializer.
func NewSerializer() *Serializer {
	return &Serializer{now: time.Now}
}

// ---------------------------------------------------------------------------
// RSS 2.0 document shape
// ---------------------------------------------------------------------------

// Prefixed element names ("dc:creator") are emitted literally; encoding/xml
// only splits namespace syntax on marshal for space-separated tags.

type rssDoc struct {
	XMLName       xml.Name   `xml:"rss"`
	Version       string     `xml:"version,attr"`
	DCNamespace   string     `xml:"xmlns:dc,attr"`
	X402Namespace string     `xml:"xmlns:x402,attr"`
	Channel       rssChannel `xml:"channel"`
}

type rssChannel struct {
	Title       string    `xml:"title"`
	Link        string    `xml:"link"`
	Description string    `xml:"description"`
	Items       []rssItem `xml:"item"`
}

type rssItem struct {
	Title       string   `xml:"title"`
	Link        string   `xml:"link"`
	Description string   `xml:"description"`
	Creator     string   `xml:"dc:creator,omitempty"`
	Categories  []string `xml:"category,omitempty"`
	GUID        rssGUID  `xml:"guid"`
	PubDate     string   `xml:"pubDate"`
	Paywalled   bool     `xml:"x402:paywalled"`
	PriceUSDC   string   `xml:"x402:priceUsdc,omitempty"`
}

type rssGUID struct {
	IsPermaLink string `xml:"isPermaLink,attr"`
	Value       string `xml:",chardata"`
}

// ---------------------------------------------------------------------------
// Rendering
// ---------------------------------------------------------------------------

// Render serializes the channel and items into an RSS 2.0 document. Items
// appear in input order; nothing is re-sorted or re-capped here.
func (s *Serializer) Render(channel Channel, items []Item) ([]byte, error) {
	rssItems := make([]rssItem, 0, len(items))
	for _, item := range items {
		rssItems = append(rssItems, s.buildItem(item))
	}

	doc := rssDoc{
		Version:       "2.0",
		DCNamespace:   dcNamespace,
		X402Namespace: x402Namespace,
		Channel: rssChannel{
			Title:       channel.Title,
			Link:        channel.Link,
			Description: channel.Description,
			Items:       rssItems,
		},
	}

	out, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal rss: %w", err)
	}

	return append([]byte(xml.Header), out...), nil
}

func (s *Serializer) buildItem(item Item) rssItem {
	description := item.Description
	if description == "" {
		description = item.Title
	}

	pubDate := s.now().UTC()
	if item.PublishedAt != nil {
		pubDate = item.PublishedAt.UTC()
	}

	out := rssItem{
		Title:       item.Title,
		Link:        item.Link,
		Description: description,
		Creator:     item.Author,
		Categories:  item.Categories,
		GUID:        rssGUID{IsPermaLink: "true", Value: item.Link},
		PubDate:     pubDate.Format(time.RFC1123Z),
		Paywalled:   item.Paywalled,
	}
	if item.PriceUSDC != nil {
		out.PriceUSDC = item.PriceUSDC.StringFixed(2)
	}
	return out
}
