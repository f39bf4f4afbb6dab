package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

// Default TTL for cached analysis results. The dataset only changes on
// redeploy, so a long TTL is safe.
const ResultTTL = 12 * time.Hour

// ResultCache stores computed ranking and comparison responses in Redis.
// A nil *ResultCache is a no-op, so callers never branch on "cache enabled".
type ResultCache struct {
	client *redis.Client
	ttl    time.Duration
}

// New creates a cache over an existing Redis client.
func New(client *redis.Client, ttl time.Duration) *ResultCache {
	if ttl <= 0 {
		ttl = ResultTTL
	}
	return &ResultCache{client: client, ttl: ttl}
}

// Key derives a deterministic cache key from an operation name and its
// request payload.
func Key(op string, req any) string {
	b, err := json.Marshal(req)
	if err != nil {
		return ""
	}
	sum := sha256.Sum256(b)
	return "scout:" + op + ":" + hex.EncodeToString(sum[:8])
}

// Get returns the cached payload for key, or false on miss or any Redis
// error. Errors degrade to a miss: the caller just recomputes.
func (c *ResultCache) Get(ctx context.Context, key string) ([]byte, bool) {
	if c == nil || key == "" {
		return nil, false
	}
	b, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	return b, true
}

// Set stores the payload for key with the configured TTL. Failures are
// dropped; caching is best effort.
func (c *ResultCache) Set(ctx context.Context, key string, payload []byte) {
	if c == nil || key == "" {
		return
	}
	_ = c.client.Set(ctx, key, payload, c.ttl).Err()
}
