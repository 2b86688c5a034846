package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"

	"fdweb/cmd/fx/config_fx"
	"fdweb/cmd/fx/controllers_fx"
	"fdweb/cmd/fx/dashboard"
	"fdweb/cmd/fx/db_fx"
	"fdweb/cmd/fx/diagnostic_fx"
	"fdweb/cmd/fx/enrichment_fx"
	"fdweb/cmd/fx/ledger_fx"
	"fdweb/cmd/fx/mail_fx"
	"fdweb/cmd/fx/memcache_fx"
	"fdweb/internal/api/controllers"
	"fdweb/internal/config"
	"fdweb/pkg/middleware"
)

func main() {
	app := newApp(
		fx.WithLogger(func(logger *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: logger.Named("fx")}
		}),
	)
	app.Run()
}

func newApp(opts ...fx.Option) *fx.App {
	return fx.New(append(opts, appOptions())...)
}

func appOptions() fx.Option {
	return fx.Options(
		config_fx.Module,
		memcache_fx.Module,
		db_fx.Module,
		ledger_fx.Module,
		mail_fx.Module,
		diagnostic_fx.Module,
		enrichment_fx.Module,
		dashboard.Module,
		controllers_fx.Module,

		fx.Provide(ProvideRouter),
		fx.Invoke(StartServer),
	)
}

func StartServer(lc fx.Lifecycle, cfg *config.Config, engine *gin.Engine, logger *zap.Logger) {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				logger.Info("starting HTTP server", zap.String("addr", srv.Addr))
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					logger.Fatal("failed to start server", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("stopping HTTP server")
			shutdownCtx, cancel := context.WithTimeout(ctx, cfg.Server.ShutdownTimeout)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type RouterParams struct {
	fx.In

	Config     *config.Config
	Logger     *zap.Logger
	Diagnostic *controllers.DiagnosticController
	Share      *controllers.ShareController
	Tracking   *controllers.TrackingController
	Enrichment *controllers.EnrichmentController
	Templates  *controllers.TemplateController
	Dashboard  *controllers.DashboardController
}

func ProvideRouter(p RouterParams) *gin.Engine {
	if p.Config.App.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.TraceIDMiddleware())
	r.Use(middleware.RequestLogger(p.Logger))
	r.Use(middleware.CORSMiddleware(p.Config.Server.AllowedOrigins))

	RegisterRoutes(r, p)

	return r
}

func RegisterRoutes(r *gin.Engine, p RouterParams) {
	r.GET("/healthz", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	r.POST("/track/view", p.Tracking.TrackView)

	sessions := r.Group("/diagnostics/sessions")
	sessions.POST("", p.Diagnostic.StartSession)
	sessions.GET("/:id", p.Diagnostic.GetSession)
	sessions.PUT("/:id/profile", p.Diagnostic.UpdateProfile)
	sessions.PUT("/:id/population", p.Diagnostic.SelectPopulation)
	sessions.PUT("/:id/service", p.Diagnostic.SelectService)
	sessions.PUT("/:id/budget", p.Diagnostic.SelectBudget)
	sessions.POST("/:id/next", p.Diagnostic.Next)
	sessions.POST("/:id/back", p.Diagnostic.Back)
	sessions.POST("/:id/finalize", p.Diagnostic.Finalize)
	r.POST("/diagnostics/roi", p.Diagnostic.EstimateROI)

	shareGroup := r.Group("/share")
	shareGroup.POST("", p.Share.CreateShare)
	shareGroup.GET("/:token", p.Share.OpenShared)

	enrichmentGroup := r.Group("/enrichment")
	enrichmentGroup.POST("/market", p.Enrichment.AnalyzeMarket)
	enrichmentGroup.POST("/mockup", p.Enrichment.GenerateMockup)
	enrichmentGroup.POST("/refine", p.Enrichment.RefineContent)
	enrichmentGroup.POST("/handoff", p.Enrichment.EditorHandoff)
	enrichmentGroup.POST("/tasks/:viewId", p.Enrichment.StartTask)
	enrichmentGroup.GET("/tasks/:viewId", p.Enrichment.GetTask)
	enrichmentGroup.DELETE("/tasks/:viewId", p.Enrichment.CancelTask)

	r.GET("/templates", p.Templates.ListTemplates)

	adminGroup := r.Group("/admin", middleware.AdminFlagMiddleware())
	adminGroup.GET("/metrics", p.Dashboard.GetMetrics)
	adminGroup.GET("/dashboard", p.Dashboard.GetDashboard)
	adminGroup.POST("/reset", p.Dashboard.ResetAll)
}
