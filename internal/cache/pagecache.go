package cache

import (
	"context"
	"fmt"
	"time"

	"quill/internal/observability"

	"github.com/redis/go-redis/v9"
)

// feedKeyPrefix scopes every cached feed page so InvalidateFeed can
// clear them all without touching other keyspaces (rate limits etc).
const feedKeyPrefix = "feed:"

// FeedPageKey builds the cache key for one rendered index page.
// The key is derived from the route and the page query parameter.
func FeedPageKey(page int) string {
	return fmt.Sprintf("%sindex:page:%d", feedKeyPrefix, page)
}

// GetPage returns the cached response body for key, if present.
// A disabled cache always misses.
func GetPage(ctx context.Context, key string) ([]byte, bool) {
	if client == nil {
		return nil, false
	}
	b, err := client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		observability.FeedCacheRequests.WithLabelValues("miss").Inc()
		return nil, false
	}
	if err != nil {
		observability.FeedCacheRequests.WithLabelValues("miss").Inc()
		return nil, false
	}
	observability.FeedCacheRequests.WithLabelValues("hit").Inc()
	return b, true
}

// SetPage stores a rendered response body under key with the given TTL.
// Best-effort: cache failures never fail the request.
func SetPage(ctx context.Context, key string, body []byte, ttl time.Duration) {
	if client == nil || ttl <= 0 {
		return
	}
	if err := client.Set(ctx, key, body, ttl).Err(); err != nil {
		// already counted by the metrics hook
		_ = err
	}
}

// InvalidateFeed removes every cached feed page. This is the explicit
// invalidate-all operation; pages are otherwise only dropped by TTL
// expiry, never on writes.
func InvalidateFeed(ctx context.Context) error {
	if client == nil {
		return nil
	}
	iter := client.Scan(ctx, 0, feedKeyPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		if err := client.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}
