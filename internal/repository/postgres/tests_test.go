package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"

	"github.com/quizdex/quizdex/internal/domain"
	"github.com/quizdex/quizdex/internal/usecase/catalog"
	"github.com/quizdex/quizdex/internal/usecase/search"
)

var testCols = []string{
	"id", "title", "description", "custom_id", "slug", "cover_image",
	"total_questions", "duration", "test_type", "difficulty",
	"created_at", "created_by", "visibility", "is_public", "tags",
}

var scanTime = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func addTestRow(rows *sqlmock.Rows, id, title, createdBy string, isPublic bool) *sqlmock.Rows {
	return rows.AddRow(
		id, title, "a description", "M001", title+"-slug", "",
		10, 30, "quiz", "medium",
		scanTime, createdBy, "public", isPublic, "{golang,sql}",
	)
}

func newMock(t *testing.T) (*TestRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return NewTestRepo(db), mock
}

func expectNoErr(t *testing.T, mock sqlmock.Sqlmock) {
	t.Helper()
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestListCandidates_HydratesTestsAndCategories(t *testing.T) {
	repo, mock := newMock(t)

	rows := sqlmock.NewRows(testCols)
	addTestRow(rows, "t1", "Go Basics", "alice", true)
	addTestRow(rows, "t2", "SQL Basics", "alice", true)

	mock.ExpectQuery("SELECT (.+) FROM tests t").
		WithArgs("", false, "bob", "basics").
		WillReturnRows(rows)

	catRows := sqlmock.NewRows([]string{"test_id", "id", "name"}).
		AddRow("t1", "c1", "Programming")
	mock.ExpectQuery("SELECT tc.test_id, c.id, c.name").
		WithArgs(pq.Array([]string{"t1", "t2"})).
		WillReturnRows(catRows)

	tests, err := repo.ListCandidates(context.Background(), search.CandidateFilter{
		Text:   "basics",
		Viewer: "bob",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tests) != 2 {
		t.Fatalf("expected 2 tests, got %d", len(tests))
	}
	if tests[0].ID() != "t1" || tests[0].Title() != "Go Basics" {
		t.Errorf("unexpected first test: %s / %s", tests[0].ID(), tests[0].Title())
	}
	cats := tests[0].Categories()
	if len(cats) != 1 || cats[0].Name() != "Programming" {
		t.Errorf("expected category Programming on t1, got %v", cats)
	}
	if len(tests[1].Categories()) != 0 {
		t.Errorf("expected no categories on t2")
	}
	tags := tests[0].Tags()
	if len(tags) != 2 || tags[0] != "golang" {
		t.Errorf("unexpected tags: %v", tags)
	}
	expectNoErr(t, mock)
}

func TestListCandidates_EscapesLikeText(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectQuery("SELECT (.+) FROM tests t").
		WithArgs("", false, "bob", `50\% off\\ sale\_day`).
		WillReturnRows(sqlmock.NewRows(testCols))

	_, err := repo.ListCandidates(context.Background(), search.CandidateFilter{
		Text:   `50% off\ sale_day`,
		Viewer: "bob",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	expectNoErr(t, mock)
}

func TestListCandidates_QueryError(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectQuery("SELECT (.+) FROM tests t").
		WillReturnError(errors.New("connection refused"))

	_, err := repo.ListCandidates(context.Background(), search.CandidateFilter{Viewer: "bob"})
	if !errors.Is(err, domain.ErrStoreUnavailable) {
		t.Errorf("expected ErrStoreUnavailable, got %v", err)
	}
}

func TestListCandidates_Timeout(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectQuery("SELECT (.+) FROM tests t").
		WillReturnError(context.DeadlineExceeded)

	_, err := repo.ListCandidates(context.Background(), search.CandidateFilter{Viewer: "bob"})
	if !errors.Is(err, domain.ErrTimeout) {
		t.Errorf("expected ErrTimeout, got %v", err)
	}
}

func TestListPublic_WindowArgs(t *testing.T) {
	repo, mock := newMock(t)

	rows := sqlmock.NewRows(testCols)
	addTestRow(rows, "t1", "Feed Item", "alice", true)

	mock.ExpectQuery("SELECT (.+) FROM tests t").
		WithArgs("", "", 12, 24).
		WillReturnRows(rows)
	mock.ExpectQuery("SELECT tc.test_id, c.id, c.name").
		WithArgs(pq.Array([]string{"t1"})).
		WillReturnRows(sqlmock.NewRows([]string{"test_id", "id", "name"}))

	tests, err := repo.ListPublic(context.Background(), catalog.FeedFilter{Limit: 12, Offset: 24})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tests) != 1 {
		t.Fatalf("expected 1 test, got %d", len(tests))
	}
	expectNoErr(t, mock)
}

func TestGetByCustomID_Found(t *testing.T) {
	repo, mock := newMock(t)

	rows := sqlmock.NewRows(testCols)
	addTestRow(rows, "t1", "Algebra", "alice", true)

	mock.ExpectQuery("SELECT (.+) FROM tests t WHERE t.custom_id").
		WithArgs("M001").
		WillReturnRows(rows)
	mock.ExpectQuery("SELECT tc.test_id, c.id, c.name").
		WithArgs(pq.Array([]string{"t1"})).
		WillReturnRows(sqlmock.NewRows([]string{"test_id", "id", "name"}))

	got, err := repo.GetByCustomID(context.Background(), "M001")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.CustomID() != "M001" {
		t.Errorf("expected custom id M001, got %q", got.CustomID())
	}
	expectNoErr(t, mock)
}

func TestGetBySlug_NotFound(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectQuery("SELECT (.+) FROM tests t WHERE t.slug").
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows(testCols))

	_, err := repo.GetBySlug(context.Background(), "missing")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestListByCreator(t *testing.T) {
	repo, mock := newMock(t)

	rows := sqlmock.NewRows(testCols)
	addTestRow(rows, "t1", "Mine", "alice", false)

	mock.ExpectQuery("SELECT (.+) FROM tests t WHERE t.created_by").
		WithArgs("alice").
		WillReturnRows(rows)
	mock.ExpectQuery("SELECT tc.test_id, c.id, c.name").
		WithArgs(pq.Array([]string{"t1"})).
		WillReturnRows(sqlmock.NewRows([]string{"test_id", "id", "name"}))

	tests, err := repo.ListByCreator(context.Background(), "alice")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tests) != 1 || tests[0].CreatedBy() != "alice" {
		t.Fatalf("unexpected result: %+v", tests)
	}
	expectNoErr(t, mock)
}

func TestLastCustomID(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectQuery("SELECT t.custom_id").
		WithArgs("M").
		WillReturnRows(sqlmock.NewRows([]string{"custom_id"}).AddRow("M042"))

	got, err := repo.LastCustomID(context.Background(), "M")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "M042" {
		t.Errorf("expected M042, got %q", got)
	}
	expectNoErr(t, mock)
}

func TestLastCustomID_NonePresent(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectQuery("SELECT t.custom_id").
		WithArgs("YT").
		WillReturnRows(sqlmock.NewRows([]string{"custom_id"}))

	got, err := repo.LastCustomID(context.Background(), "YT")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "" {
		t.Errorf("expected empty custom id, got %q", got)
	}
}
