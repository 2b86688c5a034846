package db_fx

import (
	"context"
	"fmt"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"fdweb/internal/config"
	"fdweb/internal/infra"
	"fdweb/internal/repositories"
	mem "fdweb/pkg/memcache"
)

var Module = fx.Provide(
	provideSlotStore)

// provideSlotStore opens the configured backend. Closing it is left to the
// ledger, which owns the store.
func provideSlotStore(cfg *config.Config, store mem.Store, logger *zap.Logger) (repositories.SlotStore, error) {
	ctx := context.Background()

	switch cfg.Storage.Driver {
	case "memory":
		logger.Warn("using in-memory storage; leads are lost on restart")
		return repositories.NewMemorySlotStore(store), nil
	case "redis":
		client, err := infra.NewRedis(ctx, cfg.Storage.Redis)
		if err != nil {
			return nil, err
		}
		logger.Info("connected to redis", zap.String("address", cfg.Storage.Redis.Address))
		return repositories.NewRedisSlotStore(client, cfg.Storage.KeyPrefix), nil
	case "postgres":
		db, err := infra.InitPostgresql(ctx, cfg.Storage.Postgres, logger)
		if err != nil {
			return nil, err
		}
		return repositories.NewPostgresSlotStore(db), nil
	default:
		return nil, fmt.Errorf("unsupported storage driver: %s", cfg.Storage.Driver)
	}
}
