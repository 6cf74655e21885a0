package chi

import (
	"time"

	domcat "github.com/quizdex/quizdex/internal/domain/catalog"
	"github.com/quizdex/quizdex/internal/domain/search/result"
	cataloguc "github.com/quizdex/quizdex/internal/usecase/catalog"
)

// Error codes returned in the response body alongside the HTTP status.
const (
	codeBadRequest       = "bad_request"
	codeValidationFailed = "validation_failed"
	codeUnauthorized     = "unauthorized"
	codeNotFound         = "not_found"
	codeStoreUnavailable = "store_unavailable"
	codeTimeout          = "timeout"
	codeInternalError    = "internal_error"
)

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type categoryDTO struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type creatorDTO struct {
	ID       string `json:"id"`
	Name     string `json:"name,omitempty"`
	Avatar   string `json:"avatar,omitempty"`
	Verified bool   `json:"verified"`
}

type testDTO struct {
	ID             string        `json:"id"`
	Title          string        `json:"title"`
	Description    string        `json:"description,omitempty"`
	CustomID       string        `json:"customId,omitempty"`
	Slug           string        `json:"slug,omitempty"`
	CoverImage     string        `json:"coverImage,omitempty"`
	TotalQuestions int           `json:"totalQuestions"`
	Duration       int           `json:"duration"`
	TestType       string        `json:"testType,omitempty"`
	Difficulty     string        `json:"difficulty,omitempty"`
	CreatedAt      time.Time     `json:"createdAt"`
	CreatedBy      string        `json:"createdBy,omitempty"`
	Visibility     string        `json:"visibility,omitempty"`
	IsPublic       bool          `json:"isPublic"`
	Tags           []string      `json:"tags,omitempty"`
	Categories     []categoryDTO `json:"categories,omitempty"`
	Creator        *creatorDTO   `json:"creator,omitempty"`

	// Set only on search results.
	MatchScore *float64 `json:"matchScore,omitempty"`
	MatchType  string   `json:"matchType,omitempty"`
}

type searchResponse struct {
	Items  []testDTO `json:"items"`
	Total  int       `json:"total"`
	Limit  int       `json:"limit"`
	Offset int       `json:"offset"`
}

type feedResponse struct {
	Items   []testDTO `json:"items"`
	Page    int       `json:"page"`
	HasMore bool      `json:"hasMore"`
}

type listResponse struct {
	Items []testDTO `json:"items"`
	Total int       `json:"total"`
}

type nextIDResponse struct {
	CustomID string `json:"customId"`
}

type healthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

func testToDTO(t *domcat.Test) testDTO {
	dto := testDTO{
		ID:             t.ID(),
		Title:          t.Title(),
		Description:    t.Description(),
		CustomID:       t.CustomID(),
		Slug:           t.Slug(),
		CoverImage:     t.CoverImage(),
		TotalQuestions: t.TotalQuestions(),
		Duration:       t.Duration(),
		TestType:       t.TestType(),
		Difficulty:     string(t.Difficulty()),
		CreatedAt:      t.CreatedAt().UTC(),
		CreatedBy:      t.CreatedBy(),
		Visibility:     string(t.Visibility()),
		IsPublic:       t.IsPublic(),
		Tags:           t.Tags(),
	}
	for _, c := range t.Categories() {
		dto.Categories = append(dto.Categories, categoryDTO{ID: c.ID(), Name: c.Name()})
	}
	return dto
}

func scoredToDTO(s *result.ScoredTest) testDTO {
	dto := testToDTO(s.Test())
	score := s.Score()
	dto.MatchScore = &score
	dto.MatchType = string(s.MatchType())
	return dto
}

func itemToDTO(item cataloguc.Item) testDTO {
	dto := testToDTO(&item.Test)
	if item.Creator != nil {
		dto.Creator = &creatorDTO{
			ID:       item.Creator.ID,
			Name:     item.Creator.Name,
			Avatar:   item.Creator.Avatar,
			Verified: item.Creator.Verified,
		}
	}
	return dto
}

func itemsToDTO(items []cataloguc.Item) []testDTO {
	out := make([]testDTO, len(items))
	for i := range items {
		out[i] = itemToDTO(items[i])
	}
	return out
}
