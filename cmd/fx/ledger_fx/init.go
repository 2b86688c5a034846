package ledger_fx

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"fdweb/internal/repositories"
	"fdweb/internal/services"
)

var Module = fx.Provide(provideLedger)

func provideLedger(lc fx.Lifecycle, store repositories.SlotStore, logger *zap.Logger) services.LedgerServiceInterface {
	ledger := services.NewLedgerService(store, logger)

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return ledger.Init(ctx)
		},
		OnStop: func(context.Context) error {
			return ledger.Close()
		},
	})
	return ledger
}
