package rtss

import (
	"sync"

	"golang.org/x/sync/singleflight"
)

// cacheEntry holds one generated program pair and its bookkeeping.
type cacheEntry struct {
	result *GeneratedProgramSet
	refs   int
	use    uint64 // generation counter for LRU trimming
}

// ProgramCache maps fingerprints to generated program pairs. At most
// one build per fingerprint is ever in flight; concurrent requests for
// the same fingerprint block on the first build, requests for
// different fingerprints proceed in parallel.
type ProgramCache struct {
	mu      sync.Mutex
	group   singleflight.Group
	entries map[Fingerprint]*cacheEntry
	clock   uint64
}

// NewProgramCache returns an empty cache.
func NewProgramCache() *ProgramCache {
	return &ProgramCache{entries: make(map[Fingerprint]*cacheEntry)}
}

// GetOrBuild returns the cached result for the fingerprint, invoking
// build to produce it when absent. The returned result is the same
// instance for every caller of the same fingerprint; each successful
// call takes one reference.
func (c *ProgramCache) GetOrBuild(fp Fingerprint, build func() (*GeneratedProgramSet, error)) (*GeneratedProgramSet, error) {
	v, err, _ := c.group.Do(string(fp), func() (interface{}, error) {
		c.mu.Lock()
		if e, ok := c.entries[fp]; ok {
			c.mu.Unlock()
			return e.result, nil
		}
		c.mu.Unlock()

		result, err := build()
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		c.entries[fp] = &cacheEntry{result: result}
		c.mu.Unlock()
		return result, nil
	})
	if err != nil {
		return nil, err
	}
	result := v.(*GeneratedProgramSet)

	c.mu.Lock()
	if e, ok := c.entries[fp]; ok {
		e.refs++
		c.clock++
		e.use = c.clock
	}
	c.mu.Unlock()
	return result, nil
}

// Lookup returns the cached result without building, and whether it
// was present. No reference is taken.
func (c *ProgramCache) Lookup(fp Fingerprint) (*GeneratedProgramSet, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[fp]
	if !ok {
		return nil, false
	}
	return e.result, true
}

// Release drops one reference. Entries at zero references stay cached
// until Trim evicts them.
func (c *ProgramCache) Release(fp Fingerprint) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if e, ok := c.entries[fp]; ok && e.refs > 0 {
		e.refs--
	}
}

// Trim evicts least-recently-used unreferenced entries until at most
// max remain. Returns the number evicted.
func (c *ProgramCache) Trim(max int) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	evicted := 0
	for len(c.entries) > max {
		var oldest Fingerprint
		var oldestUse uint64
		found := false
		for fp, e := range c.entries {
			if e.refs > 0 {
				continue
			}
			if !found || e.use < oldestUse {
				oldest, oldestUse, found = fp, e.use, true
			}
		}
		if !found {
			break
		}
		delete(c.entries, oldest)
		evicted++
	}
	return evicted
}

// Invalidate evicts all entries matching the predicate, regardless of
// reference count. Returns the number evicted.
func (c *ProgramCache) Invalidate(pred func(Fingerprint) bool) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	evicted := 0
	for fp := range c.entries {
		if pred(fp) {
			delete(c.entries, fp)
			evicted++
		}
	}
	return evicted
}

// Len returns the number of cached entries.
func (c *ProgramCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Drained reports whether the cache holds no entries. Factory registry
// mutations require a drained cache.
func (c *ProgramCache) Drained() bool { return c.Len() == 0 }
