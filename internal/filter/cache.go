package filter

import (
	"fmt"
	"slices"
	"sync"
)

// verdictCache is an unbounded, mutex-guarded memo of verdicts.
type verdictCache struct {
	mu      sync.RWMutex
	entries map[string]Verdict
}

func newVerdictCache() *verdictCache {
	return &verdictCache{entries: make(map[string]Verdict)}
}

func (c *verdictCache) get(key string) (Verdict, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	v, ok := c.entries[key]
	if !ok {
		return Verdict{}, false
	}
	return v.clone(), true
}

func (c *verdictCache) set(key string, v Verdict) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = v.clone()
}

// setIfAbsent stores v unless key already has an entry. It returns the entry
// held under key afterwards and whether v was stored.
func (c *verdictCache) setIfAbsent(key string, v Verdict) (Verdict, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if existing, ok := c.entries[key]; ok {
		return existing.clone(), false
	}
	c.entries[key] = v.clone()
	return v, true
}

func (c *verdictCache) clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]Verdict)
}

func (c *verdictCache) stats() CacheStats {
	c.mu.RLock()
	defer c.mu.RUnlock()

	keys := make([]string, 0, len(c.entries))
	for k := range c.entries {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return CacheStats{Size: len(keys), Keys: keys}
}

// CacheKey is the memo key for a track under s: "{trackID}-{level}-{strictMode}".
func CacheKey(trackID string, s Settings) string {
	return fmt.Sprintf("%s-%s-%t", trackID, s.Level, s.StrictMode)
}

// StrictCacheKey extends [CacheKey] with blockUnknown and minConfidence.
func StrictCacheKey(trackID string, s Settings) string {
	return fmt.Sprintf("%s-%t-%g", CacheKey(trackID, s), s.BlockUnknown, s.MinConfidence)
}
