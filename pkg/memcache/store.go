// pkg/memcache/store.go
package mem

import (
	"sync"
	"time"
)

// Store is an in-process key/value map with optional per-key expiry.
type Store interface {
	// Set stores value under key. A ttl <= 0 never expires.
	Set(key string, value string, ttl time.Duration)

	// Get returns the value if present and not expired.
	Get(key string) (string, bool)

	// SetMany stores all values under one lock, without expiry.
	SetMany(values map[string]string)

	Delete(key string)

	// Purge drops expired entries and returns how many were removed.
	Purge() int
}

type entry struct {
	value     string
	expiresAt time.Time
}

func (e entry) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && now.After(e.expiresAt)
}

type MemStore struct {
	mu   sync.RWMutex
	data map[string]entry
	now  func() time.Time
}

func NewMemStore() *MemStore {
	return &MemStore{
		data: make(map[string]entry),
		now:  time.Now,
	}
}

func (s *MemStore) Set(key string, value string, ttl time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e := entry{value: value}
	if ttl > 0 {
		e.expiresAt = s.now().Add(ttl)
	}
	s.data[key] = e
}

func (s *MemStore) Get(key string) (string, bool) {
	s.mu.RLock()
	e, ok := s.data[key]
	s.mu.RUnlock()

	if !ok {
		return "", false
	}
	if e.expired(s.now()) {
		s.mu.Lock()
		// re-check, another writer may have refreshed it
		if cur, ok := s.data[key]; ok && cur.expired(s.now()) {
			delete(s.data, key)
		}
		s.mu.Unlock()
		return "", false
	}
	return e.value, true
}

func (s *MemStore) SetMany(values map[string]string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for k, v := range values {
		s.data[k] = entry{value: v}
	}
}

func (s *MemStore) Delete(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
}

func (s *MemStore) Purge() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	removed := 0
	for k, e := range s.data {
		if e.expired(now) {
			delete(s.data, k)
			removed++
		}
	}
	return removed
}
