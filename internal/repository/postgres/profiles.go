package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	domcat "github.com/quizdex/quizdex/internal/domain/catalog"
)

// ProfileRepo implements usecase/catalog.CreatorReader over the
// profiles table.
type ProfileRepo struct {
	db *sql.DB
}

// NewProfileRepo creates a profile repository.
func NewProfileRepo(db *sql.DB) *ProfileRepo {
	return &ProfileRepo{db: db}
}

// Creators resolves public profiles for the given user ids. Missing
// profiles are simply absent from the result map.
func (r *ProfileRepo) Creators(ctx context.Context, ids []string) (map[string]domcat.Creator, error) {
	if len(ids) == 0 {
		return map[string]domcat.Creator{}, nil
	}

	query := `
		SELECT p.id, p.name, p.avatar, p.verified
		FROM profiles p
		WHERE p.id = ANY($1)`

	rows, err := r.db.QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("load creators: %w", mapError(err))
	}
	defer rows.Close()

	out := make(map[string]domcat.Creator, len(ids))
	for rows.Next() {
		var (
			id       string
			name     sql.NullString
			avatar   sql.NullString
			verified sql.NullBool
		)
		if err := rows.Scan(&id, &name, &avatar, &verified); err != nil {
			return nil, fmt.Errorf("load creators: %w", mapError(err))
		}
		out[id] = domcat.Creator{
			ID:       id,
			Name:     name.String,
			Avatar:   avatar.String,
			Verified: verified.Bool,
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load creators: %w", mapError(err))
	}
	return out, nil
}
