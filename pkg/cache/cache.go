// Package cache is a small JSON read-through cache with a Redis backend and
// an in-process fallback for single-node or test deployments.
package cache

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/shashiranjanraj/orderdesk/pkg/metrics"
)

// Store caches JSON-encoded values by key.
type Store interface {
	// Get decodes the cached value into dest. found is false on a miss.
	Get(ctx context.Context, key string, dest any) (found bool, err error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
}

// Memory is an in-process Store. Expired entries are dropped when read.
type Memory struct {
	mu    sync.RWMutex
	items map[string]memoryItem
	now   func() time.Time
}

type memoryItem struct {
	data      []byte
	expiresAt time.Time
}

func (i memoryItem) expired(now time.Time) bool {
	return !i.expiresAt.IsZero() && now.After(i.expiresAt)
}

func NewMemory() *Memory {
	return &Memory{items: make(map[string]memoryItem), now: time.Now}
}

func (m *Memory) Get(_ context.Context, key string, dest any) (bool, error) {
	m.mu.RLock()
	item, ok := m.items[key]
	m.mu.RUnlock()

	if ok && item.expired(m.now()) {
		m.mu.Lock()
		// re-check: a concurrent Set may have replaced it
		if cur, still := m.items[key]; still && cur.expired(m.now()) {
			delete(m.items, key)
		}
		m.mu.Unlock()
		ok = false
	}
	if !ok {
		metrics.CacheMisses.WithLabelValues("memory").Inc()
		return false, nil
	}
	if err := json.Unmarshal(item.data, dest); err != nil {
		return false, err
	}
	metrics.CacheHits.WithLabelValues("memory").Inc()
	return true, nil
}

// Set stores value; ttl <= 0 keeps it until deleted.
func (m *Memory) Set(_ context.Context, key string, value any, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	item := memoryItem{data: data}
	if ttl > 0 {
		item.expiresAt = m.now().Add(ttl)
	}

	m.mu.Lock()
	m.items[key] = item
	m.mu.Unlock()
	return nil
}

func (m *Memory) Del(_ context.Context, keys ...string) error {
	m.mu.Lock()
	for _, k := range keys {
		delete(m.items, k)
	}
	m.mu.Unlock()
	return nil
}
