// Package cache keeps fetched submission rows close to the API so requests
// do not go back to blob storage or the form service.
package cache

import (
	"context"
	"os"
	"strconv"
	"sync"

	"github.com/aresleonardo123/dashboard-trl/internal/source"
)

// RowCache stores datasets by key. Get returns (nil, nil) on a miss.
type RowCache interface {
	Get(ctx context.Context, key string) ([]source.Row, error)
	Set(ctx context.Context, key string, rows []source.Row) error
	Delete(ctx context.Context, key string) error
}

// MemoryRows is a thread-safe LRU RowCache.
type MemoryRows struct {
	mu      sync.Mutex
	maxSize int
	entries map[string][]source.Row
	order   []string // oldest first
}

// NewMemoryRows creates a cache with the given maximum number of datasets.
// If maxSize <= 0, it defaults to 8.
func NewMemoryRows(maxSize int) *MemoryRows {
	if maxSize <= 0 {
		maxSize = 8
	}
	return &MemoryRows{
		maxSize: maxSize,
		entries: make(map[string][]source.Row),
	}
}

// NewMemoryRowsFromEnv creates a cache sized by the TRL_ROW_CACHE_SIZE env var.
func NewMemoryRowsFromEnv() *MemoryRows {
	size := 8
	if v := os.Getenv("TRL_ROW_CACHE_SIZE"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			size = parsed
		}
	}
	return NewMemoryRows(size)
}

// Get retrieves a dataset, marking it most recently used.
func (c *MemoryRows) Get(_ context.Context, key string) ([]source.Row, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	rows, ok := c.entries[key]
	if !ok {
		return nil, nil
	}
	c.moveToEnd(key)
	return rows, nil
}

// Set adds a dataset, evicting the oldest if full.
func (c *MemoryRows) Set(_ context.Context, key string, rows []source.Row) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.entries[key]; ok {
		c.entries[key] = rows
		c.moveToEnd(key)
		return nil
	}

	for len(c.entries) >= c.maxSize && len(c.order) > 0 {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.entries, oldest)
	}

	c.entries[key] = rows
	c.order = append(c.order, key)
	return nil
}

// Delete drops a dataset.
func (c *MemoryRows) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.entries[key]; !ok {
		return nil
	}
	delete(c.entries, key)
	for i, k := range c.order {
		if k == key {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	return nil
}

func (c *MemoryRows) moveToEnd(key string) {
	for i, k := range c.order {
		if k == key {
			c.order = append(c.order[:i], c.order[i+1:]...)
			c.order = append(c.order, key)
			return
		}
	}
}
