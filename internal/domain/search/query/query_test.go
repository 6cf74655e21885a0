package query

import (
	"errors"
	"strings"
	"testing"

	"github.com/quizdex/quizdex/internal/domain"
)

func TestNew_Defaults(t *testing.T) {
	q, err := New("algebra", 0, 0, 0, false, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.Limit() != DefaultLimit {
		t.Errorf("limit = %d, want %d", q.Limit(), DefaultLimit)
	}
	if q.Offset() != 0 {
		t.Errorf("offset = %d, want 0", q.Offset())
	}
	if q.MinScore() != DefaultMinScore {
		t.Errorf("minScore = %v, want %v", q.MinScore(), DefaultMinScore)
	}
	if q.HasCreator() {
		t.Error("HasCreator should be false")
	}
}

func TestNew_ExplicitZeroMinScore(t *testing.T) {
	q, err := New("algebra", 10, 0, 0, true, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.MinScore() != 0 {
		t.Errorf("minScore = %v, want 0 (explicitly provided)", q.MinScore())
	}
}

func TestNew_LimitCapped(t *testing.T) {
	q, err := New("algebra", MaxLimit+500, 0, 0, false, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.Limit() != MaxLimit {
		t.Errorf("limit = %d, want cap %d", q.Limit(), MaxLimit)
	}
}

func TestNew_InvalidArguments(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		limit    int
		offset   int
		minScore float64
	}{
		{"negative limit", "q", -1, 0, 0},
		{"negative offset", "q", 10, -5, 0},
		{"minScore below range", "q", 10, 0, -0.1},
		{"minScore above range", "q", 10, 0, 1.5},
		{"query too long", strings.Repeat("x", MaxQueryLength+1), 10, 0, 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := New(tc.text, tc.limit, tc.offset, tc.minScore, true, "")
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.Is(err, domain.ErrInvalidArgument) {
				t.Errorf("expected ErrInvalidArgument, got %v", err)
			}
		})
	}
}

func TestNew_EmptyTextAllowed(t *testing.T) {
	if _, err := New("", 10, 0, 0, false, ""); err != nil {
		t.Fatalf("empty query text should be allowed, got %v", err)
	}
}

func TestNewBounded_ConfiguredBounds(t *testing.T) {
	b := Bounds{DefaultLimit: 10, MaxLimit: 20, DefaultMinScore: 0.4}

	q, err := NewBounded("algebra", 0, 0, 0, false, "", b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.Limit() != 10 {
		t.Errorf("limit = %d, want configured default 10", q.Limit())
	}
	if q.MinScore() != 0.4 {
		t.Errorf("minScore = %v, want configured default 0.4", q.MinScore())
	}

	q, err = NewBounded("algebra", 500, 0, 0, false, "", b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.Limit() != 20 {
		t.Errorf("limit = %d, want configured cap 20", q.Limit())
	}
}

func TestNewBounded_ZeroBoundsFallBack(t *testing.T) {
	q, err := NewBounded("algebra", 0, 0, 0, false, "", Bounds{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.Limit() != DefaultLimit {
		t.Errorf("limit = %d, want %d", q.Limit(), DefaultLimit)
	}
	if q.MinScore() != DefaultMinScore {
		t.Errorf("minScore = %v, want %v", q.MinScore(), DefaultMinScore)
	}
}

func TestNew_CreatorFilter(t *testing.T) {
	q, err := New("", 10, 0, 0, false, "creator-7")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !q.HasCreator() || q.Creator() != "creator-7" {
		t.Errorf("creator = %q, want creator-7", q.Creator())
	}
}
