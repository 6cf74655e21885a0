// Package result defines a scored search hit.
package result

import (
	"github.com/quizdex/quizdex/internal/domain/catalog"
	"github.com/quizdex/quizdex/internal/domain/search/match"
)

// ScoredTest is a catalog test plus its computed relevance.
type ScoredTest struct {
	test      catalog.Test
	score     float64
	matchType match.Type
}

// New creates a scored search hit.
func New(t catalog.Test, score float64, mt match.Type) ScoredTest {
	return ScoredTest{test: t, score: score, matchType: mt}
}

// Test returns the underlying catalog test.
func (s *ScoredTest) Test() *catalog.Test { return &s.test }

// Score returns the relevance score in [0,1].
func (s *ScoredTest) Score() float64 { return s.score }

// MatchType returns the field the test matched on.
func (s *ScoredTest) MatchType() match.Type { return s.matchType }
