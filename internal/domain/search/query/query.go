// Package query defines the validated ranked-search request.
package query

import (
	"fmt"

	"github.com/quizdex/quizdex/internal/domain"
)

// Search parameter limits and defaults.
const (
	DefaultLimit    = 50
	MaxLimit        = 200
	DefaultMinScore = 0.1
	MaxQueryLength  = 1024
)

// Bounds are the search window bounds applied during validation.
// Deployments override them via configuration; non-positive or
// out-of-range fields fall back to the package defaults.
type Bounds struct {
	DefaultLimit    int
	MaxLimit        int
	DefaultMinScore float64
}

// DefaultBounds returns the package default bounds.
func DefaultBounds() Bounds {
	return Bounds{
		DefaultLimit:    DefaultLimit,
		MaxLimit:        MaxLimit,
		DefaultMinScore: DefaultMinScore,
	}
}

func (b Bounds) normalized() Bounds {
	if b.DefaultLimit <= 0 {
		b.DefaultLimit = DefaultLimit
	}
	if b.MaxLimit <= 0 {
		b.MaxLimit = MaxLimit
	}
	if b.DefaultMinScore < 0 || b.DefaultMinScore > 1 {
		b.DefaultMinScore = DefaultMinScore
	}
	return b
}

// Query is a validated ranked-search request.
type Query struct {
	text     string
	limit    int
	offset   int
	minScore float64
	creator  string
}

// New validates and normalizes search parameters under the default bounds.
// Defaults: limit=50, offset=0, minScore=0.1. Limit is capped at MaxLimit so a
// caller cannot force unbounded result-set construction. minScore is treated
// as explicitly provided via hasMinScore (0.0 is a meaningful threshold).
func New(text string, limit, offset int, minScore float64, hasMinScore bool, creator string) (Query, error) {
	return NewBounded(text, limit, offset, minScore, hasMinScore, creator, DefaultBounds())
}

// NewBounded is New with deployment-configured bounds.
func NewBounded(text string, limit, offset int, minScore float64, hasMinScore bool, creator string, b Bounds) (Query, error) {
	b = b.normalized()

	if len(text) > MaxQueryLength {
		return Query{}, fmt.Errorf("%w: query too long (max %d chars)", domain.ErrInvalidArgument, MaxQueryLength)
	}
	if limit < 0 {
		return Query{}, fmt.Errorf("%w: limit must be non-negative, got %d", domain.ErrInvalidArgument, limit)
	}
	if offset < 0 {
		return Query{}, fmt.Errorf("%w: offset must be non-negative, got %d", domain.ErrInvalidArgument, offset)
	}
	if minScore < 0 || minScore > 1 {
		return Query{}, fmt.Errorf("%w: min_score must be between 0 and 1", domain.ErrInvalidArgument)
	}
	if limit == 0 {
		limit = b.DefaultLimit
	}
	if limit > b.MaxLimit {
		limit = b.MaxLimit
	}
	if !hasMinScore {
		minScore = b.DefaultMinScore
	}

	return Query{
		text:     text,
		limit:    limit,
		offset:   offset,
		minScore: minScore,
		creator:  creator,
	}, nil
}

// Text returns the free-text query. Empty text matches everything at the
// contains tier.
func (q *Query) Text() string { return q.text }

// Limit returns the maximum results to return.
func (q *Query) Limit() int { return q.limit }

// Offset returns the number of ordered results to skip.
func (q *Query) Offset() int { return q.offset }

// MinScore returns the inclusive lower score threshold.
func (q *Query) MinScore() float64 { return q.minScore }

// Creator returns the creator filter ("" when absent).
func (q *Query) Creator() string { return q.creator }

// HasCreator reports whether the candidate set is restricted to one owner.
func (q *Query) HasCreator() bool { return q.creator != "" }
