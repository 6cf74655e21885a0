package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/lib/pq"

	domcat "github.com/quizdex/quizdex/internal/domain/catalog"
	"github.com/quizdex/quizdex/internal/usecase/catalog"
	"github.com/quizdex/quizdex/internal/usecase/search"
)

// TestRepo implements usecase/search.TestSource and
// usecase/catalog.Repository over the tests table.
type TestRepo struct {
	db *sql.DB
}

// NewTestRepo creates a test repository.
func NewTestRepo(db *sql.DB) *TestRepo {
	return &TestRepo{db: db}
}

// Ping checks database connectivity.
func (r *TestRepo) Ping(ctx context.Context) error {
	if err := r.db.PingContext(ctx); err != nil {
		return mapError(err)
	}
	return nil
}

// ListCandidates returns search candidates ordered by creation time
// descending. The SQL prefilter mirrors the in-process visibility and
// match rules so non-matching rows never leave the database; the
// usecase re-applies both authoritatively.
func (r *TestRepo) ListCandidates(ctx context.Context, f search.CandidateFilter) ([]domcat.Test, error) {
	query := `
		SELECT ` + testColumns + `
		FROM tests t
		WHERE ($1 = '' OR t.created_by = $1)
		  AND ($2 OR t.is_public OR t.created_by = $3)
		  AND ($4 = ''
		       OR t.title ILIKE '%' || $4 || '%'
		       OR t.custom_id ILIKE '%' || $4 || '%'
		       OR t.description ILIKE '%' || $4 || '%'
		       OR EXISTS (
		            SELECT 1 FROM unnest(t.tags) AS tag
		            WHERE tag ILIKE '%' || $4 || '%')
		       OR EXISTS (
		            SELECT 1 FROM test_categories tc
		            JOIN categories c ON c.id = tc.category_id
		            WHERE tc.test_id = t.id AND c.name ILIKE '%' || $4 || '%'))
		ORDER BY t.created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, f.Creator, f.ViewerIsAdmin, f.Viewer, escapeLike(f.Text))
	if err != nil {
		return nil, fmt.Errorf("list candidates: %w", mapError(err))
	}
	defer rows.Close()

	tests, err := collectTests(rows)
	if err != nil {
		return nil, fmt.Errorf("list candidates: %w", mapError(err))
	}
	return r.attachCategories(ctx, tests)
}

// ListPublic returns one feed page of public tests, most recent first.
func (r *TestRepo) ListPublic(ctx context.Context, f catalog.FeedFilter) ([]domcat.Test, error) {
	query := `
		SELECT ` + testColumns + `
		FROM tests t
		WHERE t.is_public
		  AND ($1 = ''
		       OR t.title ILIKE '%' || $1 || '%'
		       OR t.custom_id ILIKE '%' || $1 || '%')
		  AND ($2 = '' OR EXISTS (
		        SELECT 1 FROM test_categories tc
		        WHERE tc.test_id = t.id AND tc.category_id = $2))
		ORDER BY t.created_at DESC
		LIMIT $3 OFFSET $4`

	rows, err := r.db.QueryContext(ctx, query, escapeLike(f.Text), f.CategoryID, f.Limit, f.Offset)
	if err != nil {
		return nil, fmt.Errorf("list public tests: %w", mapError(err))
	}
	defer rows.Close()

	tests, err := collectTests(rows)
	if err != nil {
		return nil, fmt.Errorf("list public tests: %w", mapError(err))
	}
	return r.attachCategories(ctx, tests)
}

// GetByID fetches one test by primary key.
func (r *TestRepo) GetByID(ctx context.Context, id string) (domcat.Test, error) {
	return r.getOne(ctx, "t.id = $1", id)
}

// GetByCustomID fetches one test by its human-assigned identifier.
func (r *TestRepo) GetByCustomID(ctx context.Context, customID string) (domcat.Test, error) {
	return r.getOne(ctx, "t.custom_id = $1", customID)
}

// GetBySlug fetches one test by URL slug.
func (r *TestRepo) GetBySlug(ctx context.Context, slug string) (domcat.Test, error) {
	return r.getOne(ctx, "t.slug = $1", slug)
}

func (r *TestRepo) getOne(ctx context.Context, where, arg string) (domcat.Test, error) {
	query := `SELECT ` + testColumns + ` FROM tests t WHERE ` + where

	t, err := scanTest(r.db.QueryRowContext(ctx, query, arg))
	if err != nil {
		return domcat.Test{}, fmt.Errorf("get test: %w", mapError(err))
	}

	enriched, err := r.attachCategories(ctx, []domcat.Test{t})
	if err != nil {
		return domcat.Test{}, err
	}
	return enriched[0], nil
}

// ListByCreator returns all tests of one creator, most recent first.
func (r *TestRepo) ListByCreator(ctx context.Context, creatorID string) ([]domcat.Test, error) {
	query := `
		SELECT ` + testColumns + `
		FROM tests t
		WHERE t.created_by = $1
		ORDER BY t.created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, creatorID)
	if err != nil {
		return nil, fmt.Errorf("list tests by creator: %w", mapError(err))
	}
	defer rows.Close()

	tests, err := collectTests(rows)
	if err != nil {
		return nil, fmt.Errorf("list tests by creator: %w", mapError(err))
	}
	return r.attachCategories(ctx, tests)
}

// LastCustomID returns the highest custom id with the given prefix, or
// "" when none exist. Ordering is numeric on the suffix so M010 sorts
// after M009 rather than after M01.
func (r *TestRepo) LastCustomID(ctx context.Context, prefix string) (string, error) {
	query := `
		SELECT t.custom_id
		FROM tests t
		WHERE t.custom_id LIKE $1 || '%'
		  AND t.custom_id ~ ('^' || $1 || '[0-9]+$')
		ORDER BY length(t.custom_id) DESC, t.custom_id DESC
		LIMIT 1`

	var customID string
	err := r.db.QueryRowContext(ctx, query, prefix).Scan(&customID)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("last custom id: %w", mapError(err))
	}
	return customID, nil
}

// attachCategories batch-loads categories for the given tests.
func (r *TestRepo) attachCategories(ctx context.Context, tests []domcat.Test) ([]domcat.Test, error) {
	if len(tests) == 0 {
		return tests, nil
	}

	ids := make([]string, len(tests))
	for i := range tests {
		ids[i] = tests[i].ID()
	}

	query := `
		SELECT tc.test_id, c.id, c.name
		FROM test_categories tc
		JOIN categories c ON c.id = tc.category_id
		WHERE tc.test_id = ANY($1)`

	rows, err := r.db.QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("load categories: %w", mapError(err))
	}
	defer rows.Close()

	byTest := make(map[string][]domcat.Category)
	for rows.Next() {
		var testID, catID, catName string
		if err := rows.Scan(&testID, &catID, &catName); err != nil {
			return nil, fmt.Errorf("load categories: %w", mapError(err))
		}
		byTest[testID] = append(byTest[testID], domcat.NewCategory(catID, catName))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load categories: %w", mapError(err))
	}

	out := make([]domcat.Test, len(tests))
	for i := range tests {
		out[i] = tests[i].WithCategories(byTest[tests[i].ID()])
	}
	return out, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike escapes LIKE pattern metacharacters so user text matches
// stored values literally inside the ILIKE prefilters.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

func collectTests(rows *sql.Rows) ([]domcat.Test, error) {
	var tests []domcat.Test
	for rows.Next() {
		t, err := scanTest(rows)
		if err != nil {
			return nil, err
		}
		tests = append(tests, t)
	}
	return tests, rows.Err()
}
