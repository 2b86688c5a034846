package controllers_fx

import (
	"go.uber.org/fx"

	"fdweb/internal/api/controllers"
)

var Module = fx.Options(
	fx.Provide(controllers.NewDiagnosticController),
	fx.Provide(controllers.NewShareController),
	fx.Provide(controllers.NewTrackingController),
	fx.Provide(controllers.NewEnrichmentController),
	fx.Provide(controllers.NewTemplateController),
	fx.Provide(controllers.NewDashboardController))
