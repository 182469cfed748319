package controllers

import (
	"context"
	"errors"
	"log"
	"time"

	"PickEm/api/cache"
)

const (
	scoreboardCacheKey = "scoreboard:v1"
	scoreboardCacheTTL = 5 * time.Minute

	liveScoresCacheKey = "live_scores:v1"
	liveScoresCacheTTL = 2 * time.Minute
)

func invalidateScoreboardCache(ctx context.Context) {
	if err := cache.Delete(ctx, scoreboardCacheKey); err != nil {
		log.Printf("[cache] invalidate scoreboard: %v", err)
	}
}

// storeCached writes v, treating a missing redis client as a no-op.
func storeCached(ctx context.Context, key string, v any, ttl time.Duration) {
	if err := cache.SetJSON(ctx, key, v, ttl); err != nil && !errors.Is(err, cache.ErrNotInitialized) {
		log.Printf("[cache] set %s: %v", key, err)
	}
}
