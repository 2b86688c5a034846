package mem

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func newTestStore(now *time.Time) *MemStore {
	s := NewMemStore()
	s.now = func() time.Time { return *now }
	return s
}

func TestMemStoreExpiry(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	s := newTestStore(&now)

	s.Set("draft", "v1", time.Minute)
	s.Set("forever", "v2", 0)

	v, ok := s.Get("draft")
	assert.True(t, ok)
	assert.Equal(t, "v1", v)

	now = now.Add(2 * time.Minute)
	_, ok = s.Get("draft")
	assert.False(t, ok)

	v, ok = s.Get("forever")
	assert.True(t, ok)
	assert.Equal(t, "v2", v)
}

func TestMemStorePurge(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	s := newTestStore(&now)

	s.Set("a", "1", time.Second)
	s.Set("b", "2", time.Hour)
	s.Set("c", "3", 0)

	now = now.Add(time.Minute)
	assert.Equal(t, 1, s.Purge())

	_, ok := s.Get("b")
	assert.True(t, ok)
}

func TestMemStoreSetManyAndDelete(t *testing.T) {
	s := NewMemStore()
	s.SetMany(map[string]string{"fd_leads": "[]", "fd_views": "0"})

	v, ok := s.Get("fd_views")
	assert.True(t, ok)
	assert.Equal(t, "0", v)

	s.Delete("fd_views")
	_, ok = s.Get("fd_views")
	assert.False(t, ok)
}
