package memcache_fx

import (
	"context"
	"time"

	"go.uber.org/fx"
	"go.uber.org/zap"

	mem "fdweb/pkg/memcache"
)

const purgeInterval = time.Minute

var Module = fx.Options(
	fx.Provide(provideMemStore),
	fx.Invoke(startJanitor),
)

func provideMemStore() mem.Store {
	return mem.NewMemStore()
}

// startJanitor drops expired drafts once a minute.
func startJanitor(lc fx.Lifecycle, store mem.Store, logger *zap.Logger) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go func() {
				defer close(done)
				ticker := time.NewTicker(purgeInterval)
				defer ticker.Stop()
				for {
					select {
					case <-ctx.Done():
						return
					case <-ticker.C:
						if n := store.Purge(); n > 0 {
							logger.Debug("purged expired entries", zap.Int("count", n))
						}
					}
				}
			}()
			return nil
		},
		OnStop: func(context.Context) error {
			cancel()
			<-done
			return nil
		},
	})
}
