package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/markshelf/markshelf/internal/model"
)

// Cache key layout and TTLs for account lookups. Every request passes
// the user-validation gate, so this is the hot path.
const (
	accountKeyPrefix  = "account:"
	negCacheKeySuffix = ":neg"

	// DefaultAccountTTL is the TTL for cached account data.
	DefaultAccountTTL = 1 * time.Hour

	// NegativeCacheTTL is the TTL for unknown-username entries.
	NegativeCacheTTL = 5 * time.Minute
)

// ErrCacheMiss is returned when a key is not present in the cache.
var ErrCacheMiss = errors.New("cache miss")

// AccountKey returns the cache key for a username.
func AccountKey(username string) string {
	return accountKeyPrefix + username
}

// GetAccount retrieves an account from cache by username.
// Returns ErrCacheMiss if not found.
func (c *Cache) GetAccount(ctx context.Context, username string) (*model.Account, error) {
	key := AccountKey(username)

	result, err := c.client.HGetAll(ctx, key).Result()
	if err != nil {
		return nil, fmt.Errorf("redis hgetall failed: %w", err)
	}

	if len(result) == 0 {
		return nil, ErrCacheMiss
	}

	cached := &model.CachedAccount{
		ID:        result["id"],
		Username:  result["username"],
		CreatedAt: result["created_at"],
	}

	return cached.ToAccount(), nil
}

// SetAccount stores an account in cache keyed by username.
func (c *Cache) SetAccount(ctx context.Context, account *model.Account) error {
	key := AccountKey(account.Username)
	cached := account.ToCachedAccount()

	fields := map[string]any{
		"id":         cached.ID,
		"username":   cached.Username,
		"created_at": cached.CreatedAt,
	}

	pipe := c.client.Pipeline()
	pipe.HSet(ctx, key, fields)
	pipe.Expire(ctx, key, DefaultAccountTTL)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to cache account: %w", err)
	}

	// Remove negative cache if exists
	c.client.Del(ctx, key+negCacheKeySuffix)

	return nil
}

// SetNegativeAccount records that a username does not exist, so repeated
// probes for unknown users skip the database.
func (c *Cache) SetNegativeAccount(ctx context.Context, username string) error {
	key := AccountKey(username) + negCacheKeySuffix
	if err := c.client.Set(ctx, key, "1", NegativeCacheTTL).Err(); err != nil {
		return fmt.Errorf("failed to set negative cache: %w", err)
	}
	return nil
}

// IsNegativelyCached reports whether a username is negatively cached.
func (c *Cache) IsNegativelyCached(ctx context.Context, username string) (bool, error) {
	key := AccountKey(username) + negCacheKeySuffix
	n, err := c.client.Exists(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("redis exists failed: %w", err)
	}
	return n > 0, nil
}

// DeleteAccount removes an account and its negative entry from cache.
func (c *Cache) DeleteAccount(ctx context.Context, username string) error {
	key := AccountKey(username)

	pipe := c.client.Pipeline()
	pipe.Del(ctx, key)
	pipe.Del(ctx, key+negCacheKeySuffix)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete account from cache: %w", err)
	}

	return nil
}
