// Package cache provides Redis-backed caching of fully processed city
// page results.
//
// The store implements a cache-aside pattern with two expiry horizons:
//
//   - Each entry carries its own staleness deadline set by the caller's
//     write-through TTL (pkg/cities uses 60 seconds).
//   - The Redis key itself lives for the store's retention window
//     (default 10 minutes) so the backend reclaims space on its own.
//
// The shorter of the two determines staleness: a stale entry found on
// read is deleted and reported as a miss. Entries are never mutated in
// place; a Set overwrites the whole entry.
//
// # Basic Usage
//
//	redisClient := redis.NewClient(&redis.Options{
//		Addr: "localhost:6379",
//	})
//
//	store := cache.NewStore(redisClient)
//
//	key := cache.Key{Country: "Germany", Page: 1, Limit: 10}
//
//	entry, err := store.Get(ctx, key)
//	if err == cache.ErrCacheMiss {
//		// fetch, clean, then store.Set(ctx, key, data, 60*time.Second)
//	}
//
// # Metrics
//
// The store exports Prometheus metrics:
//
//   - pollution_cache_hits_total{layer="redis"} - Cache hits
//   - pollution_cache_misses_total - Cache misses
//   - pollution_cache_size_bytes{layer="redis"} - Bytes read/written
//   - pollution_cache_errors_total{operation} - Cache operation errors
package cache
