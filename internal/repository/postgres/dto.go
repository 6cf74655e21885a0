package postgres

import (
	"database/sql"
	"time"

	"github.com/lib/pq"

	domcat "github.com/quizdex/quizdex/internal/domain/catalog"
)

// testColumns is the select list every test query shares, in scanTest order.
const testColumns = `t.id, t.title, t.description, t.custom_id, t.slug, t.cover_image,
	t.total_questions, t.duration, t.test_type, t.difficulty,
	t.created_at, t.created_by, t.visibility, t.is_public, t.tags`

type rowScanner interface {
	Scan(dest ...any) error
}

// scanTest hydrates one test row. Nullable text columns come back as
// empty strings on the domain object.
func scanTest(row rowScanner) (domcat.Test, error) {
	var (
		id, title      string
		description    sql.NullString
		customID       sql.NullString
		slug           sql.NullString
		coverImage     sql.NullString
		totalQuestions sql.NullInt64
		duration       sql.NullInt64
		testType       sql.NullString
		difficulty     sql.NullString
		createdAt      time.Time
		createdBy      sql.NullString
		visibility     sql.NullString
		isPublic       bool
		tags           pq.StringArray
	)

	err := row.Scan(
		&id, &title, &description, &customID, &slug, &coverImage,
		&totalQuestions, &duration, &testType, &difficulty,
		&createdAt, &createdBy, &visibility, &isPublic, &tags,
	)
	if err != nil {
		return domcat.Test{}, err
	}

	return domcat.Reconstruct(
		id, title, description.String, customID.String, slug.String, coverImage.String,
		int(totalQuestions.Int64), int(duration.Int64),
		testType.String, domcat.Difficulty(difficulty.String),
		createdAt, createdBy.String,
		domcat.Visibility(visibility.String), isPublic,
		[]string(tags),
	), nil
}
