package search

import (
	"context"

	"github.com/quizdex/quizdex/internal/domain/catalog"
)

// CandidateFilter narrows the candidate set the store has to return.
// The store may prefilter by substring match; the service re-checks
// visibility and computes scores in-process.
type CandidateFilter struct {
	// Text is the free-text query used for substring prefiltering
	// ("" disables the prefilter).
	Text string
	// Creator restricts candidates to one owner ("" for the public/admin branch).
	Creator string
	// Viewer is the caller identifier, used to include the caller's own
	// non-public tests.
	Viewer string
	// ViewerIsAdmin lifts the public-only restriction.
	ViewerIsAdmin bool
}

// TestSource defines the storage contract for candidate retrieval.
// Returned tests carry their categories and are ordered by creation
// timestamp descending.
type TestSource interface {
	ListCandidates(ctx context.Context, f CandidateFilter) ([]catalog.Test, error)
}

// AdminChecker resolves whether a caller is an administrator.
type AdminChecker interface {
	IsAdmin(ctx context.Context, actorID string) (bool, error)
}
