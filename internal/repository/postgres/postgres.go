// Package postgres implements the catalog repositories over Postgres.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/lib/pq" // PostgreSQL driver

	"github.com/quizdex/quizdex/internal/config"
	"github.com/quizdex/quizdex/internal/domain"
)

// Open connects to Postgres, configures the pool and verifies
// connectivity before returning.
func Open(ctx context.Context, cfg config.DatabaseConfig) (*sql.DB, error) {
	db, err := sql.Open("postgres", cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.ConnLifetimeSec) * time.Second)

	pingCtx, cancel := context.WithTimeout(ctx, time.Duration(cfg.QueryTimeoutSec)*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	return db, nil
}

// mapError translates driver errors into domain sentinels.
func mapError(err error) error {
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return domain.ErrNotFound
	case errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("%w: %v", domain.ErrTimeout, err)
	default:
		return fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
}
