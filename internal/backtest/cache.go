package backtest

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"time"

	cache "github.com/patrickmn/go-cache"
	"github.com/yourusername/signal-bench/internal/models"
)

// ResultCache provides in-memory caching of completed backtest results,
// keyed by a stable hash of the full request. Failed and timed-out results
// are never cached.
type ResultCache struct {
	cache *cache.Cache
	ttl   time.Duration
}

// NewResultCache creates a result cache with the given entry TTL
func NewResultCache(ttl time.Duration) *ResultCache {
	return &ResultCache{
		cache: cache.New(ttl, ttl*2),
		ttl:   ttl,
	}
}

// Get retrieves a cached result for an identical request
func (rc *ResultCache) Get(req models.BacktestRequest) (*models.BacktestResult, bool) {
	if entry, found := rc.cache.Get(HashRequest(req)); found {
		if result, ok := entry.(*models.BacktestResult); ok {
			copied := *result
			return &copied, true
		}
	}
	return nil, false
}

// Set stores a completed result
func (rc *ResultCache) Set(req models.BacktestRequest, result *models.BacktestResult) {
	if result == nil || result.Status != models.StatusCompleted {
		return
	}
	copied := *result
	rc.cache.Set(HashRequest(req), &copied, rc.ttl)
}

// ItemCount returns the number of cached results
func (rc *ResultCache) ItemCount() int {
	return rc.cache.ItemCount()
}

// Flush clears the cache
func (rc *ResultCache) Flush() {
	rc.cache.Flush()
}

// HashRequest creates a stable hash over the full request: name, capital,
// cost model, prices and signals
func HashRequest(req models.BacktestRequest) string {
	data, _ := json.Marshal(req)
	hash := sha256.Sum256(data)
	return fmt.Sprintf("%x", hash)
}
