package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"fdweb/internal/models/request_models"
	"fdweb/internal/services"
	"fdweb/pkg/utils"
)

// DashboardController serves the admin panel. Routes are mounted behind
// middleware.AdminFlagMiddleware.
type DashboardController struct {
	analytics services.AnalyticsServiceInterface
	ledger    services.LedgerServiceInterface
	logger    *zap.Logger
}

func NewDashboardController(
	analytics services.AnalyticsServiceInterface,
	ledger services.LedgerServiceInterface,
	logger *zap.Logger,
) *DashboardController {
	return &DashboardController{
		analytics: analytics,
		ledger:    ledger,
		logger:    logger,
	}
}

// GetMetrics godoc
// @Summary Headline metrics
// @Description Views, quiz starts, completions, projected revenue and conversion rate
// @Tags Dashboard
// @Produce json
// @Param admin query string true "must be true"
// @Success 200 {object} response_models.Metrics
// @Failure 404 {object} utils.APIResponse
// @Failure 503 {object} utils.APIResponse
// @Router /admin/metrics [get]
func (d *DashboardController) GetMetrics(c *gin.Context) {
	m, err := d.analytics.ComputeMetrics(c.Request.Context())
	if err != nil {
		utils.HandleServiceError(c, d.logger, err)
		return
	}
	utils.RespondSuccess(c, m, "Metrics fetched successfully")
}

// GetDashboard godoc
// @Summary Admin dashboard report
// @Description Metrics plus funnel rates, service mix and the recent leads table
// @Tags Dashboard
// @Produce json
// @Param admin query string true "must be true"
// @Success 200 {object} response_models.DashboardReport
// @Failure 404 {object} utils.APIResponse
// @Failure 503 {object} utils.APIResponse
// @Router /admin/dashboard [get]
func (d *DashboardController) GetDashboard(c *gin.Context) {
	report, err := d.analytics.BuildDashboard(c.Request.Context())
	if err != nil {
		utils.HandleServiceError(c, d.logger, err)
		return
	}
	utils.RespondSuccess(c, report, "Dashboard data fetched successfully")
}

// ResetAll godoc
// @Summary Wipe all leads and counters
// @Description Irreversible. Requires {"confirm": true}.
// @Tags Dashboard
// @Accept json
// @Produce json
// @Param admin query string true "must be true"
// @Param request body request_models.ResetRequest true "Confirmation"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Router /admin/reset [post]
func (d *DashboardController) ResetAll(c *gin.Context) {
	var req request_models.ResetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid reset request")
		return
	}

	if err := d.ledger.ResetAll(c.Request.Context(), req.Confirm); err != nil {
		utils.HandleServiceError(c, d.logger, err)
		return
	}
	d.logger.Warn("ledger reset", zap.String("client_ip", c.ClientIP()), zap.String("trace_id", c.GetString("trace_id")))
	utils.RespondSuccess(c, nil, "All data cleared")
}
