package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"sync"
	"time"

	"corpusqa/internal/domain"
)

// RetrievalCache caches retrieval results per (query, topK). The serving
// index is immutable for the process lifetime, so cached results stay
// valid until the TTL expires or Clear is called after a rebuild.
type RetrievalCache struct {
	mu      sync.RWMutex
	entries map[string]*cacheEntry
	order   []string
	maxSize int
	ttl     time.Duration
}

type cacheEntry struct {
	result    domain.RetrievalResult
	timestamp time.Time
}

func NewRetrievalCache(maxSize int, ttl time.Duration) *RetrievalCache {
	if maxSize <= 0 {
		maxSize = 100
	}
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &RetrievalCache{
		entries: make(map[string]*cacheEntry),
		order:   make([]string, 0, maxSize),
		maxSize: maxSize,
		ttl:     ttl,
	}
}

func cacheKey(query string, topK int) string {
	data := []byte(query)
	data = append(data, byte(topK>>8), byte(topK))
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:16])
}

// Get returns the cached result for the query, if present and fresh.
func (c *RetrievalCache) Get(query string, topK int) (domain.RetrievalResult, bool) {
	key := cacheKey(query, topK)

	c.mu.RLock()
	entry, exists := c.entries[key]
	c.mu.RUnlock()

	if !exists {
		return domain.RetrievalResult{}, false
	}
	if time.Since(entry.timestamp) > c.ttl {
		c.mu.Lock()
		c.evict(key)
		c.mu.Unlock()
		return domain.RetrievalResult{}, false
	}
	return entry.result, true
}

// Put stores a retrieval result, evicting the oldest entry when full.
func (c *RetrievalCache) Put(query string, topK int, result domain.RetrievalResult) {
	key := cacheKey(query, topK)

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[key]; !exists && len(c.entries) >= c.maxSize {
		oldest := c.order[0]
		c.evict(oldest)
	}

	if _, exists := c.entries[key]; !exists {
		c.order = append(c.order, key)
	}
	c.entries[key] = &cacheEntry{
		result:    result,
		timestamp: time.Now(),
	}
}

// Clear drops all entries. Callers invoke it after an index rebuild.
func (c *RetrievalCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*cacheEntry)
	c.order = c.order[:0]
}

// Len returns the number of cached entries.
func (c *RetrievalCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// evict removes a key; callers must hold the write lock.
func (c *RetrievalCache) evict(key string) {
	delete(c.entries, key)
	for i, k := range c.order {
		if k == key {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
}
