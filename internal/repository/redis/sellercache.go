package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// keyPrefix namespaces seller cache entries in the shared Redis instance.
const keyPrefix = "gocart:seller:store:"

// SellerCache caches the approved store id per user. Only positive results
// are cached: approved is a terminal status, so a cached entry can never
// point at a store that later loses approval. Negative results are never
// cached, so a freshly approved seller is visible immediately.
type SellerCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSellerCache creates a seller-authorization cache with the given TTL.
func NewSellerCache(client *redis.Client, ttl time.Duration) *SellerCache {
	return &SellerCache{client: client, ttl: ttl}
}

// GetStoreID returns the cached approved store id for the user, or "" on a
// cache miss.
func (c *SellerCache) GetStoreID(ctx context.Context, userID string) (string, error) {
	storeID, err := c.client.Get(ctx, keyPrefix+userID).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", nil
		}
		return "", fmt.Errorf("get seller cache: %w", err)
	}
	return storeID, nil
}

// SetStoreID records the approved store id for the user.
func (c *SellerCache) SetStoreID(ctx context.Context, userID, storeID string) error {
	if err := c.client.Set(ctx, keyPrefix+userID, storeID, c.ttl).Err(); err != nil {
		return fmt.Errorf("set seller cache: %w", err)
	}
	return nil
}
