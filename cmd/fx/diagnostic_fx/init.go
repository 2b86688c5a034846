package diagnostic_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"

	"fdweb/internal/config"
	"fdweb/internal/models/lead_models"
	"fdweb/internal/services"
	mem "fdweb/pkg/memcache"
)

var Module = fx.Provide(
	lead_models.DefaultServiceCatalog,
	services.NewROIService,
	provideShareCodec,
	provideHandoff,
	provideResults,
	provideTemplates,
	provideCollector,
)

func provideShareCodec(cfg *config.Config) services.ShareCodecInterface {
	return services.NewShareCodec(cfg.App.PublicURL)
}

func provideHandoff(cfg *config.Config) services.HandoffServiceInterface {
	return services.NewHandoffService(cfg.Handoff.WhatsAppPhone, cfg.Handoff.ContactName)
}

func provideResults(
	roi services.ROIServiceInterface,
	codec services.ShareCodecInterface,
	handoff services.HandoffServiceInterface,
) services.ResultsServiceInterface {
	return services.NewResultsService(roi, codec, handoff)
}

func provideTemplates(catalog *lead_models.ServiceCatalog) services.TemplateServiceInterface {
	return services.NewTemplateService(catalog)
}

func provideCollector(
	cfg *config.Config,
	drafts mem.Store,
	ledger services.LedgerServiceInterface,
	results services.ResultsServiceInterface,
	notifier services.LeadNotifierInterface,
	logger *zap.Logger,
) services.CollectorServiceInterface {
	return services.NewCollectorService(drafts, cfg.Session.DraftTTL, ledger, results, notifier, logger)
}
