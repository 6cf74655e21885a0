// Package match assigns relevance scores to tests by match locality.
package match

import (
	"strings"

	"github.com/quizdex/quizdex/internal/domain/catalog"
)

// Type names the field a test matched on, for display.
type Type string

const (
	TypeTitle       Type = "title"
	TypeCategory    Type = "category"
	TypeTag         Type = "tag"
	TypeDescription Type = "description"
	// TypeNone marks a test that matched nothing.
	TypeNone Type = "none"
)

// Score tiers. The first applicable tier wins; lower tiers are ignored.
const (
	ScoreExact         = 1.0
	ScoreTitleContains = 0.8
	ScoreCategory      = 0.6
	ScoreTag           = 0.5
	ScoreDescription   = 0.3
	ScoreNone          = 0.0
)

// Evaluate computes the relevance score and match type of a test for a query
// in a single case-insensitive pass. Exact title/custom-id matches report
// TypeTitle. Empty queries land every test in the title-contains tier.
func Evaluate(t *catalog.Test, query string) (float64, Type) {
	q := strings.ToLower(query)
	title := strings.ToLower(t.Title())
	customID := strings.ToLower(t.CustomID())

	if title == q || (customID != "" && customID == q) {
		return ScoreExact, TypeTitle
	}
	if strings.Contains(title, q) || strings.Contains(customID, q) {
		return ScoreTitleContains, TypeTitle
	}
	for _, c := range t.Categories() {
		if strings.Contains(strings.ToLower(c.Name()), q) {
			return ScoreCategory, TypeCategory
		}
	}
	for _, tag := range t.Tags() {
		if strings.Contains(strings.ToLower(tag), q) {
			return ScoreTag, TypeTag
		}
	}
	if strings.Contains(strings.ToLower(t.Description()), q) {
		return ScoreDescription, TypeDescription
	}
	return ScoreNone, TypeNone
}
