package catalog

import (
	"strings"
	"testing"
	"time"
)

var createdAt = time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC)

func TestNew_Valid(t *testing.T) {
	tt, err := New("id-1", "Algebra Basics", createdAt, "creator-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tt.ID() != "id-1" || tt.Title() != "Algebra Basics" {
		t.Errorf("unexpected fields: %q %q", tt.ID(), tt.Title())
	}
}

func TestNew_Invalid(t *testing.T) {
	tests := []struct {
		name      string
		id, title string
		createdAt time.Time
	}{
		{"missing id", "", "Title", createdAt},
		{"blank title", "id", "   ", createdAt},
		{"title too long", "id", strings.Repeat("x", MaxTitleLength+1), createdAt},
		{"zero createdAt", "id", "Title", time.Time{}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := New(tc.id, tc.title, tc.createdAt, "c"); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestWithCategories_DoesNotMutateReceiver(t *testing.T) {
	base := Reconstruct(
		"id-1", "T", "", "", "", "", 0, 0, "", DifficultyEasy,
		createdAt, "c", VisibilityPublic, true, nil,
	)
	enriched := base.WithCategories([]Category{NewCategory("c1", "Math")})
	if len(base.Categories()) != 0 {
		t.Error("receiver mutated by WithCategories")
	}
	if len(enriched.Categories()) != 1 || enriched.Categories()[0].Name() != "Math" {
		t.Errorf("categories = %+v, want one 'Math'", enriched.Categories())
	}
}

func TestReconstruct_RoundTrip(t *testing.T) {
	tt := Reconstruct(
		"id-2", "History Quiz", "about rome", "M005", "history-quiz", "cover.png",
		12, 45, "quiz", DifficultyHard,
		createdAt, "creator-2", VisibilityPrivate, false,
		[]string{"history", "rome"},
	)
	if tt.CustomID() != "M005" || tt.Slug() != "history-quiz" {
		t.Errorf("unexpected identifiers: %q %q", tt.CustomID(), tt.Slug())
	}
	if tt.TotalQuestions() != 12 || tt.Duration() != 45 {
		t.Errorf("unexpected counters: %d %d", tt.TotalQuestions(), tt.Duration())
	}
	if tt.IsPublic() || tt.Visibility() != VisibilityPrivate {
		t.Error("visibility not preserved")
	}
	if len(tt.Tags()) != 2 {
		t.Errorf("tags = %v", tt.Tags())
	}
}
