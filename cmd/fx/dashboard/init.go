package dashboard

import (
	"go.uber.org/fx"

	"fdweb/internal/services"
)

var Module = fx.Provide(
	services.NewAnalyticsService,
)
