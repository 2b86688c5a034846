package repositories

import (
	"context"

	mem "fdweb/pkg/memcache"
)

type memorySlotStore struct {
	store mem.Store
}

func NewMemorySlotStore(store mem.Store) SlotStore {
	return &memorySlotStore{store: store}
}

func (r *memorySlotStore) Get(_ context.Context, key string) (string, bool, error) {
	v, ok := r.store.Get(key)
	return v, ok, nil
}

func (r *memorySlotStore) Set(_ context.Context, key, value string) error {
	r.store.Set(key, value, 0)
	return nil
}

func (r *memorySlotStore) SetMany(_ context.Context, values map[string]string) error {
	r.store.SetMany(values)
	return nil
}

func (r *memorySlotStore) Close() error { return nil }
