package catalog

import (
	"context"

	domcat "github.com/quizdex/quizdex/internal/domain/catalog"
)

// FeedFilter narrows the public feed.
type FeedFilter struct {
	// Text filters by title/custom-id substring ("" disables).
	Text string
	// CategoryID restricts the feed to one category ("" disables).
	CategoryID string
	// Limit and Offset select the page window.
	Limit  int
	Offset int
}

// Repository defines the storage contract for catalog reads. Returned
// tests carry their categories and are ordered by creation timestamp
// descending.
type Repository interface {
	ListPublic(ctx context.Context, f FeedFilter) ([]domcat.Test, error)
	GetByID(ctx context.Context, id string) (domcat.Test, error)
	GetByCustomID(ctx context.Context, customID string) (domcat.Test, error)
	GetBySlug(ctx context.Context, slug string) (domcat.Test, error)
	ListByCreator(ctx context.Context, creatorID string) ([]domcat.Test, error)
	// LastCustomID returns the highest custom id with the given prefix
	// ("" when none exist).
	LastCustomID(ctx context.Context, prefix string) (string, error)
}

// CreatorReader resolves public creator profiles for result enrichment.
type CreatorReader interface {
	Creators(ctx context.Context, ids []string) (map[string]domcat.Creator, error)
}
