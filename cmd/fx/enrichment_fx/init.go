package enrichment_fx

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"fdweb/internal/config"
	"fdweb/internal/services"
	"fdweb/pkg/utils"
)

var Module = fx.Provide(
	ProvideGenerativeClient,
	ProvideEnrichmentService,
	ProvideEnrichmentTasks,
)

// ProvideGenerativeClient creates the model client for the configured
// provider. Without an API key every call falls back to canned content.
func ProvideGenerativeClient(lc fx.Lifecycle, cfg *config.Config, logger *zap.Logger) (utils.GenerativeClientInterface, error) {
	ec := cfg.Enrichment
	client, err := utils.NewGenerativeClient(context.Background(), utils.GenerativeConfig{
		Provider:   ec.Provider,
		APIKey:     ec.APIKey,
		TextModel:  ec.TextModel,
		ImageModel: ec.ImageModel,
		MaxTokens:  ec.MaxTokens,
	})
	if err != nil {
		return nil, err
	}

	if ec.APIKey == "" {
		logger.Warn("no enrichment API key configured; serving fallback content")
	} else {
		logger.Info("enrichment client ready", zap.String("provider", ec.Provider), zap.String("model", ec.TextModel))
	}

	lc.Append(fx.StopHook(client.Close))
	return client, nil
}

func ProvideEnrichmentService(cfg *config.Config, client utils.GenerativeClientInterface, logger *zap.Logger) services.EnrichmentServiceInterface {
	return services.NewEnrichmentService(client, cfg.Enrichment.Timeout, logger)
}

func ProvideEnrichmentTasks(lc fx.Lifecycle, cfg *config.Config, enrichment services.EnrichmentServiceInterface, logger *zap.Logger) services.EnrichmentTasksInterface {
	tasks := services.NewEnrichmentTasks(enrichment, cfg.Enrichment.TaskTTL, logger)
	lc.Append(fx.StopHook(tasks.Close))
	return tasks
}
