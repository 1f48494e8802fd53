// Package cache implements domain.DictionaryCache in process memory and on Redis.
package cache

import (
	"context"
	"sync"
	"time"

	"lexiguide/internal/domain"
)

type memoryItem struct {
	entry     domain.DictionaryEntry
	expiresAt time.Time
}

// MemoryCache is a mutex-guarded map whose entries expire lazily on read.
type MemoryCache struct {
	mu    sync.RWMutex
	items map[string]memoryItem
	now   func() time.Time
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{
		items: make(map[string]memoryItem),
		now:   time.Now,
	}
}

func (c *MemoryCache) Get(_ context.Context, key string) (*domain.DictionaryEntry, bool, error) {
	c.mu.RLock()
	item, ok := c.items[key]
	c.mu.RUnlock()
	if !ok {
		return nil, false, nil
	}

	if !item.expiresAt.IsZero() && c.now().After(item.expiresAt) {
		c.mu.Lock()
		if cur, still := c.items[key]; still && cur.expiresAt.Equal(item.expiresAt) {
			delete(c.items, key)
		}
		c.mu.Unlock()
		return nil, false, nil
	}

	entry := item.entry
	entry.Definitions = append([]domain.Definition(nil), item.entry.Definitions...)
	return &entry, true, nil
}

// Set stores a copy of entry. A non-positive ttl never expires.
func (c *MemoryCache) Set(_ context.Context, key string, entry *domain.DictionaryEntry, ttl time.Duration) error {
	if entry == nil {
		return nil
	}
	item := memoryItem{entry: *entry}
	item.entry.Definitions = append([]domain.Definition(nil), entry.Definitions...)
	if ttl > 0 {
		item.expiresAt = c.now().Add(ttl)
	}

	c.mu.Lock()
	c.items[key] = item
	c.mu.Unlock()
	return nil
}

// Len reports how many entries are held, expired ones included.
func (c *MemoryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

var _ domain.DictionaryCache = (*MemoryCache)(nil)
