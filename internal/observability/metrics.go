// Package observability provides Prometheus metrics and OpenTelemetry tracing.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrors counts Redis errors by operation type.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "quill_redis_errors_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// FeedCacheRequests counts page-cache lookups by result (hit or miss).
	FeedCacheRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "quill_feed_cache_requests_total",
		Help: "Feed page cache lookups by result",
	}, []string{"result"})

	// PostsCreated counts successfully persisted posts.
	PostsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "quill_posts_created_total",
		Help: "Total number of posts created",
	})

	// CommentsCreated counts successfully persisted comments.
	CommentsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "quill_comments_created_total",
		Help: "Total number of comments created",
	})
)
