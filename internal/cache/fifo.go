// Convene - Fair Meeting Place Recommendation Engine
// Copyright 2026 Convene Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/convenehq/convene

package cache

import (
	"sync"

	"github.com/convenehq/convene/internal/metrics"
)

// FIFO is a thread-safe bounded cache with insertion-order eviction.
//
// Capacity is a hard ceiling: inserting into a full cache always evicts the
// single oldest-inserted entry first. Entries never expire by time; the
// cache is scoped to the process lifetime and cleared only by capacity
// pressure (or an explicit Clear). Insert plus eviction happen as one
// atomic step under the lock, so concurrent writers cannot corrupt the
// insertion order.
//
// Updating an existing key replaces its value in place and does not refresh
// its position in the eviction order.
type FIFO struct {
	mu       sync.RWMutex
	name     string // metrics label
	capacity int
	entries  map[string]interface{}
	order    []string // insertion order, oldest first
	stats    Stats
}

// Stats tracks cache performance counters.
type Stats struct {
	Hits      int64
	Misses    int64
	Evictions int64
}

// NewFIFO creates a bounded FIFO cache. The name is used as the metrics
// label. Capacity must be positive; values below 1 are clamped to 1.
func NewFIFO(name string, capacity int) *FIFO {
	if capacity < 1 {
		capacity = 1
	}
	return &FIFO{
		name:     name,
		capacity: capacity,
		entries:  make(map[string]interface{}, capacity),
		order:    make([]string, 0, capacity),
	}
}

// Get retrieves a value by key. Returns (nil, false) on a miss.
func (c *FIFO) Get(key string) (interface{}, bool) {
	c.mu.Lock()
	value, ok := c.entries[key]
	if ok {
		c.stats.Hits++
	} else {
		c.stats.Misses++
	}
	c.mu.Unlock()

	if ok {
		metrics.CacheHits.WithLabelValues(c.name).Inc()
	} else {
		metrics.CacheMisses.WithLabelValues(c.name).Inc()
	}
	return value, ok
}

// Set stores a value. If the cache is at capacity and the key is new, the
// oldest entry is evicted before insertion.
func (c *FIFO) Set(key string, value interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[key]; exists {
		c.entries[key] = value
		return
	}

	if len(c.entries) >= c.capacity {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.entries, oldest)
		c.stats.Evictions++
		metrics.CacheEvictions.WithLabelValues(c.name).Inc()
	}

	c.entries[key] = value
	c.order = append(c.order, key)
	metrics.CacheSize.WithLabelValues(c.name).Set(float64(len(c.entries)))
}

// Len returns the current number of entries.
func (c *FIFO) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Capacity returns the configured hard ceiling.
func (c *FIFO) Capacity() int {
	return c.capacity
}

// Clear removes all entries.
func (c *FIFO) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]interface{}, c.capacity)
	c.order = c.order[:0]
	metrics.CacheSize.WithLabelValues(c.name).Set(0)
}

// GetStats returns a snapshot of the cache counters.
func (c *FIFO) GetStats() Stats {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.stats
}
