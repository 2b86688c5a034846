package config_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"

	"fdweb/internal/config"
	"fdweb/pkg/logger"
)

var Module = fx.Provide(
	config.Load,
	provideLogger,
)

func provideLogger(lc fx.Lifecycle, cfg *config.Config) (*zap.Logger, error) {
	log, err := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	if err != nil {
		return nil, err
	}
	log = log.With(zap.String("app", cfg.App.Name), zap.String("env", cfg.App.Environment))

	lc.Append(fx.StopHook(func() {
		_ = log.Sync()
	}))
	return log, nil
}
