package cache

import (
	"context"
	"sync"
	"time"
)

// memoryEntry is a single cached value with expiration tracking.
type memoryEntry struct {
	value     []byte
	expiresAt time.Time
}

// Memory is an in-process Cache with per-key TTL expiration. It is the
// fallback when Redis is not reachable at startup, and the test double for
// the service layer. A background goroutine periodically removes expired
// entries; reads also check expiry so a stale entry is never served.
type Memory struct {
	mu     sync.RWMutex
	items  map[string]memoryEntry
	stopCh chan struct{}
	once   sync.Once
}

// NewMemory creates a Memory cache and starts its cleanup goroutine.
func NewMemory() *Memory {
	m := &Memory{
		items:  make(map[string]memoryEntry),
		stopCh: make(chan struct{}),
	}
	go m.startCleanup()
	return m
}

// Get returns the value for key, or (nil, nil) when absent or expired.
func (m *Memory) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	entry, ok := m.items[key]
	m.mu.RUnlock()

	if !ok {
		return nil, nil
	}
	if time.Now().After(entry.expiresAt) {
		m.mu.Lock()
		// Re-check under the write lock; a concurrent Set may have refreshed it.
		if e, still := m.items[key]; still && time.Now().After(e.expiresAt) {
			delete(m.items, key)
		}
		m.mu.Unlock()
		return nil, nil
	}
	return entry.value, nil
}

// Set stores value under key with the given TTL.
func (m *Memory) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	m.mu.Lock()
	m.items[key] = memoryEntry{value: value, expiresAt: time.Now().Add(ttl)}
	m.mu.Unlock()
	return nil
}

// Del removes the given keys.
func (m *Memory) Del(_ context.Context, keys ...string) error {
	m.mu.Lock()
	for _, key := range keys {
		delete(m.items, key)
	}
	m.mu.Unlock()
	return nil
}

// Ping always succeeds for the in-process cache.
func (m *Memory) Ping(_ context.Context) error {
	return nil
}

// Close stops the cleanup goroutine.
func (m *Memory) Close() error {
	m.once.Do(func() { close(m.stopCh) })
	return nil
}

// Len returns the number of entries, including not-yet-collected expired ones.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.items)
}

// startCleanup periodically removes expired entries.
func (m *Memory) startCleanup() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.cleanup()
		case <-m.stopCh:
			return
		}
	}
}

// cleanup removes all expired entries.
func (m *Memory) cleanup() {
	now := time.Now()
	m.mu.Lock()
	for key, entry := range m.items {
		if now.After(entry.expiresAt) {
			delete(m.items, key)
		}
	}
	m.mu.Unlock()
}
