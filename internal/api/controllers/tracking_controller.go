package controllers

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"fdweb/internal/models/response_models"
	"fdweb/internal/services"
	"fdweb/pkg/middleware"
	"fdweb/pkg/utils"
)

type TrackingController struct {
	ledger  services.LedgerServiceInterface
	results services.ResultsServiceInterface
	logger  *zap.Logger
}

func NewTrackingController(
	ledger services.LedgerServiceInterface,
	results services.ResultsServiceInterface,
	logger *zap.Logger,
) *TrackingController {
	return &TrackingController{ledger: ledger, results: results, logger: logger}
}

// TrackView godoc
// @Summary Record a landing page view
// @Description Counts the view. With ?lead= the shared diagnosis is returned as well; a bad token is ignored.
// @Tags Tracking
// @Produce json
// @Param lead query string false "Share token"
// @Param admin query string false "true shows the admin entry point"
// @Success 200 {object} response_models.TrackViewResponse
// @Failure 503 {object} utils.APIResponse
// @Router /track/view [post]
func (t *TrackingController) TrackView(c *gin.Context) {
	views, err := t.ledger.RecordView(c.Request.Context())
	if err != nil {
		utils.HandleServiceError(c, t.logger, err)
		return
	}

	out := response_models.TrackViewResponse{
		Views: views,
		Admin: middleware.IsAdmin(c),
	}
	if token := c.Query("lead"); token != "" {
		shared, err := t.results.FromToken(token)
		if err != nil {
			t.logger.Debug("ignoring invalid share token", zap.Error(err))
		} else {
			out.Shared = shared
		}
	}

	utils.RespondSuccess(c, out, "View recorded")
}
