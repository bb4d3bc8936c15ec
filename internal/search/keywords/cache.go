// internal/search/keywords/cache.go
package keywords

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"influencer-search-workers/internal/common/logger"
	"influencer-search-workers/internal/common/metrics"
)

const cacheKeyPrefix = "keywords:match:"

// CachedStore serves Match results from Redis and falls back to the wrapped
// store on a miss. Redis failures degrade to uncached lookups.
type CachedStore struct {
	next   Store
	redis  *redis.Client
	ttl    time.Duration
	logger logger.Logger
}

func NewCachedStore(next Store, rdb *redis.Client, ttl time.Duration, log logger.Logger) *CachedStore {
	return &CachedStore{next: next, redis: rdb, ttl: ttl, logger: log}
}

// CacheKey is the Redis key for a normalized term list.
func CacheKey(normalized []string) string {
	sum := sha256.Sum256([]byte(strings.Join(normalized, "\x1f")))
	return cacheKeyPrefix + hex.EncodeToString(sum[:])
}

func (c *CachedStore) Match(ctx context.Context, terms []string) ([]string, error) {
	terms = NormalizeTerms(terms)
	if len(terms) == 0 {
		return []string{}, nil
	}
	key := CacheKey(terms)

	val, err := c.redis.Get(ctx, key).Result()
	switch {
	case err == nil:
		var ids []string
		if jsonErr := json.Unmarshal([]byte(val), &ids); jsonErr == nil {
			metrics.KeywordCacheLookups.WithLabelValues("hit").Inc()
			if ids == nil {
				ids = []string{}
			}
			return ids, nil
		}
		metrics.KeywordCacheLookups.WithLabelValues("error").Inc()
		c.logger.Warn("discarding unreadable keyword cache entry", map[string]interface{}{"key": key})
	case errors.Is(err, redis.Nil):
		metrics.KeywordCacheLookups.WithLabelValues("miss").Inc()
	default:
		metrics.KeywordCacheLookups.WithLabelValues("error").Inc()
		c.logger.Warn("keyword cache read failed", map[string]interface{}{"key": key, "error": err})
	}

	ids, err := c.next.Match(ctx, terms)
	if err != nil {
		return nil, err
	}

	data, _ := json.Marshal(ids)
	if err := c.redis.Set(ctx, key, data, c.ttl).Err(); err != nil {
		c.logger.Warn("keyword cache write failed", map[string]interface{}{"key": key, "error": err})
	}
	return ids, nil
}
