package statsapi

import (
	"fmt"
	"sync"
	"time"

	cache "github.com/patrickmn/go-cache"

	"github.com/radgator13/mlb-nrfi-predictor/internal/metrics"
)

// CacheKey identifies one cached upstream response by endpoint and arguments
type CacheKey struct {
	Endpoint string
	Args     string
}

// String returns string representation of cache key
func (k CacheKey) String() string {
	return fmt.Sprintf("%s:%s", k.Endpoint, k.Args)
}

// ResponseCache provides time-bounded memoization of parsed upstream
// responses. Entries expire after the configured TTL; staleness is checked on
// every lookup.
type ResponseCache struct {
	cache     *cache.Cache
	ttl       time.Duration
	maxSize   int
	mu        sync.RWMutex
	hitCount  uint64
	missCount uint64
}

// NewResponseCache creates a new response cache
func NewResponseCache(ttl time.Duration, maxSize int) *ResponseCache {
	return &ResponseCache{
		cache:   cache.New(ttl, ttl*2),
		ttl:     ttl,
		maxSize: maxSize,
	}
}

// Get retrieves a cached response, or nil when absent or expired
func (rc *ResponseCache) Get(key CacheKey) interface{} {
	rc.mu.Lock()
	defer rc.mu.Unlock()

	if value, found := rc.cache.Get(key.String()); found {
		rc.hitCount++
		rc.updateMetrics()
		return value
	}

	rc.missCount++
	rc.updateMetrics()
	return nil
}

// Set stores a parsed response in cache
func (rc *ResponseCache) Set(key CacheKey, value interface{}) {
	rc.mu.Lock()
	defer rc.mu.Unlock()

	if rc.cache.ItemCount() >= rc.maxSize {
		rc.cache.DeleteExpired()
	}

	rc.cache.Set(key.String(), value, rc.ttl)
}

// Clear flushes the entire cache
func (rc *ResponseCache) Clear() {
	rc.mu.Lock()
	defer rc.mu.Unlock()

	rc.cache.Flush()
	rc.hitCount = 0
	rc.missCount = 0
}

// Stats returns cache statistics
func (rc *ResponseCache) Stats() (hits, misses uint64, ratio float64) {
	rc.mu.RLock()
	defer rc.mu.RUnlock()
	return rc.statsLocked()
}

func (rc *ResponseCache) statsLocked() (hits, misses uint64, ratio float64) {
	hits = rc.hitCount
	misses = rc.missCount
	total := hits + misses
	if total > 0 {
		ratio = float64(hits) / float64(total)
	}
	return
}

// updateMetrics updates Prometheus metrics. Callers must hold rc.mu.
func (rc *ResponseCache) updateMetrics() {
	_, _, ratio := rc.statsLocked()
	metrics.ResponseCacheHitRatio.Set(ratio)
}

// ItemCount returns the number of items in cache
func (rc *ResponseCache) ItemCount() int {
	return rc.cache.ItemCount()
}
