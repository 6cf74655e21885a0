package postgres

import (
	"context"
	"database/sql"
	"fmt"
)

// AdminRepo implements the administrator check. Membership is an email
// allow-list joined through the profile, so removing the admins row
// revokes the role without touching the profile.
type AdminRepo struct {
	db *sql.DB
}

// NewAdminRepo creates an admin repository.
func NewAdminRepo(db *sql.DB) *AdminRepo {
	return &AdminRepo{db: db}
}

// IsAdmin reports whether the user's profile email is on the admin
// allow-list. Unknown users are not admins.
func (r *AdminRepo) IsAdmin(ctx context.Context, userID string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1
			FROM admins a
			JOIN profiles p ON p.email = a.email
			WHERE p.id = $1)`

	var admin bool
	if err := r.db.QueryRowContext(ctx, query, userID).Scan(&admin); err != nil {
		return false, fmt.Errorf("check admin: %w", mapError(err))
	}
	return admin, nil
}
