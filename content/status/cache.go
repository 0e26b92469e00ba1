package status

import (
	"sync"

	"github.com/urandom/feedkeeper/content"
)

// Cache holds the single canonical ArticleStatus for every article id seen
// during the lifetime of the process. It is unbounded; entries are only
// removed when their statuses are deleted from the store.
type Cache struct {
	mu       sync.RWMutex
	statuses map[content.ArticleID]*content.ArticleStatus
}

func NewCache() *Cache {
	return &Cache{statuses: map[content.ArticleID]*content.ArticleStatus{}}
}

func (c *Cache) Get(id content.ArticleID) *content.ArticleStatus {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.statuses[id]
}

// Missing returns the ids that have no cached status, without duplicates.
func (c *Cache) Missing(ids []content.ArticleID) []content.ArticleID {
	c.mu.RLock()
	defer c.mu.RUnlock()

	seen := make(map[content.ArticleID]struct{}, len(ids))
	var missing []content.ArticleID
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}

		if _, ok := c.statuses[id]; !ok {
			missing = append(missing, id)
		}
	}

	return missing
}

// AddIfNotCached stores s unless a status with the same id is already
// cached. It returns the canonical status, which callers must use in
// place of s.
func (c *Cache) AddIfNotCached(s *content.ArticleStatus) *content.ArticleStatus {
	c.mu.Lock()
	defer c.mu.Unlock()

	if existing, ok := c.statuses[s.ArticleID]; ok {
		return existing
	}

	c.statuses[s.ArticleID] = s

	return s
}

func (c *Cache) Remove(ids ...content.ArticleID) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, id := range ids {
		delete(c.statuses, id)
	}
}

func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.statuses)
}

// Each calls cb for a snapshot of all cached statuses.
func (c *Cache) Each(cb func(*content.ArticleStatus)) {
	c.mu.RLock()
	all := make([]*content.ArticleStatus, 0, len(c.statuses))
	for _, s := range c.statuses {
		all = append(all, s)
	}
	c.mu.RUnlock()

	for _, s := range all {
		cb(s)
	}
}
