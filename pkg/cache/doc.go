// Package cache provides an optional Redis-backed cache for paginated API
// responses.
//
// The cache stores the raw body of one page request under a deterministic
// key derived from the resource name and pagination parameters. Entries
// expire after a fixed TTL; there is no conditional-request machinery, the
// upstream API serves static collections.
//
// # Basic Usage
//
//	redisClient := redis.NewClient(&redis.Options{
//		Addr: "localhost:6379",
//	})
//
//	manager := cache.NewManager(redisClient, time.Hour)
//
//	key := cache.Key{Resource: "users", Page: 1, Limit: 100}
//
//	data, err := manager.Get(ctx, key)
//	if err == cache.ErrCacheMiss {
//		// fetch from the API, then manager.Set(ctx, key, body)
//	}
//
// # Metrics
//
// The cache manager exports Prometheus metrics:
//
//   - analytics_cache_hits_total - Cache hits
//   - analytics_cache_misses_total - Cache misses
//   - analytics_cache_errors_total{operation} - Cache operation errors
//
// Cache failures are never fatal: the API client treats any cache error as a
// miss and falls back to a direct request.
package cache
