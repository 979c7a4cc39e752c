// Package cache keeps read results fresh for a short window and drops them
// when the underlying data changes.
package cache

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/vladimiradmaev/drink-helper/internal/logger"
)

// Scopes group cached reads so a mutation can drop everything it affects.
const (
	ScopeUser          = "user"
	ScopeDrinkLogs     = "drinkLogs"
	ScopeGoals         = "goals"
	ScopeStats         = "stats"
	ScopeConsultations = "consultations"
)

// Store is the byte-level backend of a QueryCache.
type Store interface {
	// Get returns ok=false on a miss.
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	DeletePrefix(ctx context.Context, prefix string) error
}

// QueryCache caches JSON-encoded query results per user and scope.
type QueryCache struct {
	store Store
	ttl   time.Duration
}

// Config holds configuration for a QueryCache
type Config struct {
	Store Store
	// TTL is the freshness window of a cached read.
	TTL time.Duration
}

func New(cfg Config) *QueryCache {
	return &QueryCache{store: cfg.Store, ttl: cfg.TTL}
}

// Key builds the cache key of one query. All keys of a user and scope share
// the prefix returned by ScopePrefix.
func Key(userID, scope string, parts ...string) string {
	return ScopePrefix(userID, scope) + strings.Join(parts, ":")
}

func ScopePrefix(userID, scope string) string {
	return "user:" + userID + ":" + scope + ":"
}

// Invalidate drops the cached reads of userID in the given scopes. Failures
// are logged, a stale read expires with the TTL anyway.
func (c *QueryCache) Invalidate(ctx context.Context, userID string, scopes ...string) {
	if c == nil {
		return
	}
	for _, scope := range scopes {
		if err := c.store.DeletePrefix(ctx, ScopePrefix(userID, scope)); err != nil {
			logger.Warn("Failed to invalidate cache", "user_id", userID, "scope", scope, "error", err)
		}
	}
}

// Fetch returns the cached value of key, or runs load and caches its result.
// A failed load is retried once. Cache failures never fail the read. A nil
// cache just runs load with the retry.
func Fetch[T any](ctx context.Context, c *QueryCache, key string, load func(context.Context) (T, error)) (T, error) {
	if c != nil {
		if raw, ok, err := c.store.Get(ctx, key); err != nil {
			logger.Warn("Cache read failed", "key", key, "error", err)
		} else if ok {
			var cached T
			if err := json.Unmarshal(raw, &cached); err == nil {
				return cached, nil
			}
			logger.Warn("Discarding undecodable cache entry", "key", key)
		}
	}

	value, err := load(ctx)
	if err != nil {
		logger.Warn("Query failed, retrying once", "key", key, "error", err)
		value, err = load(ctx)
		if err != nil {
			return value, err
		}
	}

	if c != nil {
		raw, err := json.Marshal(value)
		if err != nil {
			logger.Warn("Failed to encode cache entry", "key", key, "error", err)
			return value, nil
		}
		if err := c.store.Set(ctx, key, raw, c.ttl); err != nil {
			logger.Warn("Cache write failed", "key", key, "error", err)
		}
	}
	return value, nil
}
