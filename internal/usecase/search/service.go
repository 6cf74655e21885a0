// Package search implements the ranked test search use case.
package search

import (
	"context"
	"fmt"
	"sort"

	"github.com/quizdex/quizdex/internal/domain"
	"github.com/quizdex/quizdex/internal/domain/actor"
	"github.com/quizdex/quizdex/internal/domain/search/match"
	"github.com/quizdex/quizdex/internal/domain/search/policy"
	"github.com/quizdex/quizdex/internal/domain/search/query"
	"github.com/quizdex/quizdex/internal/domain/search/result"
)

// Service scores candidate tests by match locality and returns a
// paginated, score-ordered result set. Read-only; no retries.
type Service struct {
	tests  TestSource
	admins AdminChecker
}

// New creates a ranked-search service.
func New(tests TestSource, admins AdminChecker) *Service {
	return &Service{tests: tests, admins: admins}
}

// Search executes a ranked search for the given caller.
//
// Without a creator filter an unresolved caller is rejected with
// ErrUnauthorized rather than silently answered with the empty set, so
// permission problems never masquerade as no-results.
func (s *Service) Search(
	ctx context.Context, caller actor.Actor, q *query.Query,
) ([]result.ScoredTest, error) {
	if caller.Anonymous() && !q.HasCreator() {
		return nil, fmt.Errorf("%w: caller identity required for catalog-wide search", domain.ErrUnauthorized)
	}

	caller, err := s.resolveAdmin(ctx, caller)
	if err != nil {
		return nil, err
	}

	candidates, err := s.tests.ListCandidates(ctx, CandidateFilter{
		Text:          q.Text(),
		Creator:       q.Creator(),
		Viewer:        caller.ID(),
		ViewerIsAdmin: caller.Admin(),
	})
	if err != nil {
		return nil, fmt.Errorf("list candidates: %w", err)
	}

	scored := make([]result.ScoredTest, 0, len(candidates))
	for i := range candidates {
		t := &candidates[i]
		if !policy.Visible(t, caller, q.Creator()) {
			continue
		}
		score, mt := match.Evaluate(t, q.Text())
		if score < q.MinScore() {
			continue
		}
		scored = append(scored, result.New(candidates[i], score, mt))
	}

	// Score descending, most recent first on ties.
	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].Score() != scored[j].Score() {
			return scored[i].Score() > scored[j].Score()
		}
		return scored[i].Test().CreatedAt().After(scored[j].Test().CreatedAt())
	})

	return paginate(scored, q.Offset(), q.Limit()), nil
}

// resolveAdmin consults the administrator check unless the caller is
// anonymous or already marked.
func (s *Service) resolveAdmin(ctx context.Context, caller actor.Actor) (actor.Actor, error) {
	if caller.Anonymous() || caller.Admin() {
		return caller, nil
	}
	admin, err := s.admins.IsAdmin(ctx, caller.ID())
	if err != nil {
		return actor.Actor{}, fmt.Errorf("resolve admin status: %w", err)
	}
	return caller.WithAdmin(admin), nil
}

func paginate(items []result.ScoredTest, offset, limit int) []result.ScoredTest {
	if offset >= len(items) {
		return nil
	}
	items = items[offset:]
	if len(items) > limit {
		items = items[:limit]
	}
	return items
}
