package repositories

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
	"github.com/rotisserie/eris"
)

type redisSlotStore struct {
	client *redis.Client
	prefix string
}

func NewRedisSlotStore(client *redis.Client, prefix string) SlotStore {
	return &redisSlotStore{client: client, prefix: prefix}
}

func (r *redisSlotStore) key(k string) string {
	return r.prefix + k
}

func (r *redisSlotStore) Get(ctx context.Context, key string) (string, bool, error) {
	v, err := r.client.Get(ctx, r.key(key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, eris.Wrapf(err, "redis: get slot %s", key)
	}
	return v, true, nil
}

func (r *redisSlotStore) Set(ctx context.Context, key, value string) error {
	if err := r.client.Set(ctx, r.key(key), value, 0).Err(); err != nil {
		return eris.Wrapf(err, "redis: set slot %s", key)
	}
	return nil
}

// SetMany runs inside MULTI/EXEC.
func (r *redisSlotStore) SetMany(ctx context.Context, values map[string]string) error {
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for k, v := range values {
			pipe.Set(ctx, r.key(k), v, 0)
		}
		return nil
	})
	if err != nil {
		return eris.Wrap(err, "redis: set slots")
	}
	return nil
}

func (r *redisSlotStore) Close() error {
	return r.client.Close()
}
