// Package admincache caches administrator status lookups in a
// key-value store so the admin check does not hit Postgres on every
// request.
package admincache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/quizdex/quizdex/internal/db"
)

const defaultTTL = 5 * time.Minute

// store is the consumer interface for the admin cache (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// checker is the inner admin lookup.
type checker interface {
	IsAdmin(ctx context.Context, userID string) (bool, error)
}

// CachedChecker caches admin status with a TTL. Entries expire rather
// than being invalidated, so a revoked admin keeps elevated reads for
// at most the TTL.
type CachedChecker struct {
	inner      checker
	store      store
	keyPrefix  string
	ttl        time.Duration
	cacheTotal *prometheus.CounterVec
	logger     *zap.Logger
}

// New creates a caching decorator.
// cacheTotal is a counter vec with label "result" ("hit"/"miss"), passed explicitly.
func New(
	inner checker,
	s store,
	keyPrefix string,
	ttl time.Duration,
	cacheTotal *prometheus.CounterVec,
	logger *zap.Logger,
) *CachedChecker {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &CachedChecker{
		inner:      inner,
		store:      s,
		keyPrefix:  keyPrefix,
		ttl:        ttl,
		cacheTotal: cacheTotal,
		logger:     logger,
	}
}

// IsAdmin returns the cached admin status or consults the inner checker.
func (c *CachedChecker) IsAdmin(ctx context.Context, userID string) (bool, error) {
	key := c.cacheKey(userID)

	if admin, ok := c.getFromCache(ctx, key); ok {
		c.incCache("hit")
		return admin, nil
	}

	c.incCache("miss")

	admin, err := c.inner.IsAdmin(ctx, userID)
	if err != nil {
		return false, fmt.Errorf("check admin status: %w", err)
	}

	c.putToCache(ctx, key, admin)
	return admin, nil
}

func (c *CachedChecker) incCache(result string) {
	if c.cacheTotal != nil {
		c.cacheTotal.WithLabelValues(result).Inc()
	}
}

func (c *CachedChecker) cacheKey(userID string) string {
	return c.keyPrefix + "admin:" + userID
}

func (c *CachedChecker) getFromCache(ctx context.Context, key string) (bool, bool) {
	data, err := c.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, db.ErrKeyNotFound) {
			c.logger.Warn("admin cache read failed", zap.Error(err))
		}
		return false, false
	}
	switch string(data) {
	case "1":
		return true, true
	case "0":
		return false, true
	default:
		return false, false
	}
}

func (c *CachedChecker) putToCache(ctx context.Context, key string, admin bool) {
	val := []byte("0")
	if admin {
		val = []byte("1")
	}
	if err := c.store.SetWithTTL(ctx, key, val, c.ttl); err != nil {
		// Cache write failures are non-fatal; the lookup already succeeded.
		c.logger.Warn("admin cache write failed", zap.Error(err))
	}
}
