package repositories

import "context"

// SlotStore persists the ledger's named text slots.
type SlotStore interface {
	// Get reports found=false for a slot that was never written.
	Get(ctx context.Context, key string) (value string, found bool, err error)
	Set(ctx context.Context, key, value string) error
	// SetMany writes all values or none of them.
	SetMany(ctx context.Context, values map[string]string) error
	Close() error
}
