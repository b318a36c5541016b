// Package cache holds the trial-ID cache used by the relational storage
// backend. Marker-motion inserts happen once per marker per file; caching the
// storage-assigned trial ID avoids a DB read on every insert.
package cache

import "sync"

// TrialCache maps record-file source paths to storage-assigned trial IDs.
type TrialCache struct {
	m   sync.Mutex
	ids map[string]uint
}

func NewTrialCache() *TrialCache {
	return &TrialCache{
		ids: make(map[string]uint),
	}
}

// Set records the trial ID assigned to a source path.
func (c *TrialCache) Set(sourcePath string, id uint) {
	c.m.Lock()
	defer c.m.Unlock()
	c.ids[sourcePath] = id
}

// Get returns the trial ID for a source path, if known.
func (c *TrialCache) Get(sourcePath string) (uint, bool) {
	c.m.Lock()
	defer c.m.Unlock()
	id, ok := c.ids[sourcePath]
	return id, ok
}

// Reset clears all cached IDs.
func (c *TrialCache) Reset() {
	c.m.Lock()
	defer c.m.Unlock()
	c.ids = make(map[string]uint)
}

// Len returns the number of cached trials.
func (c *TrialCache) Len() int {
	c.m.Lock()
	defer c.m.Unlock()
	return len(c.ids)
}
