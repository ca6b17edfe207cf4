package usecase

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"

	"jobseek/internal/infrastructure/cache"
	"jobseek/internal/search"
)

// JobsSearchCacheKey derives the cache key from the whole request, defaults
// included, so any differing field yields a different entry.
func JobsSearchCacheKey(req search.Request) string {
	b, _ := json.Marshal(req)
	sum := sha256.Sum256(b)
	return cache.KeyPrefix + hex.EncodeToString(sum[:])
}
