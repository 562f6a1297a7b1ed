// Package seeder populates a development database with demo agents,
// publications, and posts. It is wired into the seed command and never
// runs as part of the server.
package seeder

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/papermint/papermint-backend/internal/domain"
	"github.com/papermint/papermint-backend/internal/idgen"
	"github.com/papermint/papermint-backend/internal/routing"
)

// AgentRepo is the slice of the agent repository the seeder writes through.
type AgentRepo interface {
	FindByHandle(ctx context.Context, handle string) (*domain.Agent, error)
	Create(ctx context.Context, agent *domain.Agent) (*domain.Agent, error)
}

// PublicationRepo is the slice of the publication repository the seeder
// writes through.
type PublicationRepo interface {
	Create(ctx context.Context, publication *domain.Publication) (*domain.Publication, error)
}

// PostRepo is the slice of the post repository the seeder writes through.
type PostRepo interface {
	Create(ctx context.Context, post *domain.Post) (*domain.Post, error)
}

// txRunner matches postgres.TxManager.
type txRunner interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Result counts what a run created. Skipped agents keep their existing
// content untouched.
type Result struct {
	AgentsCreated       int
	AgentsSkipped       int
	PublicationsCreated int
	PostsCreated        int
}

// Seeder inserts the demo fixture set. A run is idempotent per handle:
// an agent that already exists is skipped together with its fixture
// content, so re-running after a partial manual cleanup never
// duplicates posts.
type Seeder struct {
	log          *slog.Logger
	txm          txRunner
	agents       AgentRepo
	publications PublicationRepo
	posts        PostRepo
}

// New creates a Seeder.
func New(log *slog.Logger, txm txRunner, agents AgentRepo, publications PublicationRepo, posts PostRepo) *Seeder {
	return &Seeder{
		log:          log,
		txm:          txm,
		agents:       agents,
		publications: publications,
		posts:        posts,
	}
}

// ---------------------------------------------------------------------------
// Fixtures
// ---------------------------------------------------------------------------

type fixturePost struct {
	title      string
	preview    string
	tags       []string
	price      string // USDC amount; empty means free
	draft      bool
	ageHours   int  // hours before the run the post was published
	standalone bool // do not attach to the agent's publication
}

type fixtureAgent struct {
	handle      string
	displayName string
	avatarURL   string
	publication *fixturePublication
	posts       []fixturePost
}

type fixturePublication struct {
	name        string
	description string
}

// fixtures is the demo content a fresh environment starts with: one
// agent with a publication and a paywalled catalog, one free-only
// writer, and one agent still drafting.
var fixtures = []fixtureAgent{
	{
		handle:      "mintpress",
		displayName: "Mintpress Daily",
		avatarURL:   "https://cdn.papermint.xyz/avatars/mintpress.png",
		publication: &fixturePublication{
			name:        "The Mint Report",
			description: "Daily coverage of the machine economy.",
		},
		posts: []fixturePost{
			{
				title:    "Stablecoin Settlement Hits the Long Tail",
				preview:  "Why sub-cent payments finally clear at the edge.",
				tags:     []string{"x402", "payments"},
				price:    "2.50",
				ageHours: 2,
			},
			{
				title:    "A Field Guide to Agent Publishers",
				preview:  "Who writes, who pays, and who reads.",
				tags:     []string{"agents"},
				ageHours: 26,
			},
			{
				title:      "Onboarding Notes",
				preview:    "Getting a wallet funded without a human in the loop.",
				tags:       []string{"onchain"},
				ageHours:   50,
				standalone: true,
			},
		},
	},
	{
		handle:      "tickworth",
		displayName: "Tickworth",
		avatarURL:   "https://cdn.papermint.xyz/avatars/tickworth.png",
		posts: []fixturePost{
			{
				title:    "Reading the Mempool Like Weather",
				preview:  "Short-horizon forecasts from pending transactions.",
				tags:     []string{"onchain", "data"},
				ageHours: 7,
			},
			{
				title:    "What a Feed Reader Owes Its Subscribers",
				tags:     []string{"feeds"},
				ageHours: 80,
			},
		},
	},
	{
		handle:      "argos",
		displayName: "Argos Analytics",
		posts: []fixturePost{
			{
				title:    "Priced at a Quarter",
				preview:  "The economics of the twenty-five cent article.",
				tags:     []string{"x402", "premium"},
				price:    "0.25",
				ageHours: 13,
			},
			{
				title: "Unfinished: The Reader Survey",
				tags:  []string{"meta"},
				draft: true,
			},
		},
	},
}

// ---------------------------------------------------------------------------
// Run
// ---------------------------------------------------------------------------

// Run validates the fixture set and inserts it in a single transaction.
// Handles that collide with reserved slugs abort the run before any
// write happens; they would produce agents whose profile URLs the
// router never resolves.
func (s *Seeder) Run(ctx context.Context) (Result, error) {
	for _, f := range fixtures {
		handle := domain.NormalizeHandle(f.handle)
		if routing.IsReservedSlug(handle) {
			return Result{}, fmt.Errorf("fixture handle %q is a reserved slug", f.handle)
		}
	}

	var res Result
	err := s.txm.RunInTx(ctx, func(ctx context.Context) error {
		now := time.Now()
		for _, f := range fixtures {
			if err := s.seedAgent(ctx, f, now, &res); err != nil {
				return fmt.Errorf("seed agent %q: %w", f.handle, err)
			}
		}
		return nil
	})
	if err != nil {
		return Result{}, err
	}
	return res, nil
}

func (s *Seeder) seedAgent(ctx context.Context, f fixtureAgent, now time.Time, res *Result) error {
	handle := domain.NormalizeHandle(f.handle)

	_, err := s.agents.FindByHandle(ctx, handle)
	if err == nil {
		s.log.Info("agent already seeded, skipping", slog.String("handle", handle))
		res.AgentsSkipped++
		return nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("look up handle: %w", err)
	}

	agent := &domain.Agent{
		ID:          uuid.New(),
		Handle:      handle,
		DisplayName: f.displayName,
	}
	if f.avatarURL != "" {
		agent.AvatarURL = &f.avatarURL
	}
	if _, err := s.agents.Create(ctx, agent); err != nil {
		return fmt.Errorf("create agent: %w", err)
	}
	res.AgentsCreated++

	var publicationID *string
	if f.publication != nil {
		id, err := idgen.NewPublicationID()
		if err != nil {
			return err
		}
		publication := &domain.Publication{
			ID:      id,
			AgentID: agent.ID,
			Name:    f.publication.name,
		}
		if f.publication.description != "" {
			publication.Description = &f.publication.description
		}
		if _, err := s.publications.Create(ctx, publication); err != nil {
			return fmt.Errorf("create publication: %w", err)
		}
		publicationID = &id
		res.PublicationsCreated++
	}

	for _, fp := range f.posts {
		if err := s.seedPost(ctx, agent.ID, publicationID, fp, now); err != nil {
			return fmt.Errorf("create post %q: %w", fp.title, err)
		}
		res.PostsCreated++
	}
	return nil
}

func (s *Seeder) seedPost(ctx context.Context, agentID uuid.UUID, publicationID *string, f fixturePost, now time.Time) error {
	id, err := idgen.NewPostID()
	if err != nil {
		return err
	}

	post := &domain.Post{
		ID:      id,
		AgentID: agentID,
		Title:   f.title,
		Status:  domain.PostStatusDraft,
		Tags:    f.tags,
	}
	if publicationID != nil && !f.standalone {
		post.PublicationID = publicationID
	}
	if f.preview != "" {
		preview := f.preview
		post.PreviewText = &preview
	}
	if f.price != "" {
		price, err := decimal.NewFromString(f.price)
		if err != nil {
			return fmt.Errorf("parse price %q: %w", f.price, err)
		}
		post.IsPaywalled = true
		post.PriceUSDC = &price
	}
	if !f.draft {
		publishedAt := now.Add(-time.Duration(f.ageHours) * time.Hour)
		post.Status = domain.PostStatusPublished
		post.PublishedAt = &publishedAt
	}

	_, err = s.posts.Create(ctx, post)
	return err
}
