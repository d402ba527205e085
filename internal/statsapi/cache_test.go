package statsapi

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/radgator13/mlb-nrfi-predictor/internal/models"
)

// TestCacheKeyString tests cache key string representation
func TestCacheKeyString(t *testing.T) {
	key := CacheKey{Endpoint: "stats", Args: "543037:pitching"}
	assert.Equal(t, "stats:543037:pitching", key.String())
}

// TestResponseCacheGet tests cache Get operation
func TestResponseCacheGet(t *testing.T) {
	cache := NewResponseCache(time.Hour, 100)
	defer cache.Clear()

	// Get non-existent key should return nil
	value := cache.Get(CacheKey{Endpoint: "schedule", Args: "2024-06-01"})
	assert.Nil(t, value)
}

// TestResponseCacheSet tests cache Set operation
func TestResponseCacheSet(t *testing.T) {
	cache := NewResponseCache(time.Hour, 100)
	defer cache.Clear()

	key := CacheKey{Endpoint: "roster", Args: "147"}
	cache.Set(key, []int{592450, 596142})

	value := cache.Get(key)
	require.NotNil(t, value)
	assert.Equal(t, []int{592450, 596142}, value.([]int))
}

// TestResponseCacheExpiration tests cache TTL expiration
func TestResponseCacheExpiration(t *testing.T) {
	cache := NewResponseCache(100*time.Millisecond, 100)
	defer cache.Clear()

	key := CacheKey{Endpoint: "stats", Args: "543037:pitching"}
	cache.Set(key, models.StatSnapshot{"era": "3.17"})

	// Should be in cache immediately
	require.NotNil(t, cache.Get(key))

	// Wait for expiration
	time.Sleep(150 * time.Millisecond)

	// Should be expired now
	assert.Nil(t, cache.Get(key))
}

// TestResponseCacheStats tests hit/miss accounting
func TestResponseCacheStats(t *testing.T) {
	cache := NewResponseCache(time.Hour, 100)
	defer cache.Clear()

	key := CacheKey{Endpoint: "schedule", Args: "2024-06-01"}
	cache.Get(key) // miss
	cache.Set(key, []models.Game{})
	cache.Get(key) // hit

	hits, misses, ratio := cache.Stats()
	assert.Equal(t, uint64(1), hits)
	assert.Equal(t, uint64(1), misses)
	assert.InDelta(t, 0.5, ratio, 1e-9)
}

// TestResponseCacheClear tests flushing resets entries and counters
func TestResponseCacheClear(t *testing.T) {
	cache := NewResponseCache(time.Hour, 100)

	key := CacheKey{Endpoint: "roster", Args: "147"}
	cache.Set(key, []int{1})
	require.NotNil(t, cache.Get(key))

	cache.Clear()

	assert.Equal(t, 0, cache.ItemCount())
	hits, misses, _ := cache.Stats()
	assert.Equal(t, uint64(0), hits)
	assert.Equal(t, uint64(0), misses)
}
