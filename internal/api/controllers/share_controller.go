package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"fdweb/internal/models/lead_models"
	"fdweb/internal/services"
	"fdweb/pkg/utils"
)

type ShareController struct {
	results services.ResultsServiceInterface
	logger  *zap.Logger
}

func NewShareController(results services.ResultsServiceInterface, logger *zap.Logger) *ShareController {
	return &ShareController{results: results, logger: logger}
}

// OpenShared godoc
// @Summary Open a shared diagnosis
// @Description Decodes the token and recomputes the ROI. Nothing is stored.
// @Tags Share
// @Produce json
// @Param token path string true "Share token"
// @Success 200 {object} response_models.DiagnosticResultResponse
// @Failure 400 {object} utils.APIResponse
// @Router /share/{token} [get]
func (s *ShareController) OpenShared(c *gin.Context) {
	result, err := s.results.FromToken(c.Param("token"))
	if err != nil {
		utils.HandleServiceError(c, s.logger, err)
		return
	}
	utils.RespondSuccess(c, result, "Shared diagnosis decoded successfully")
}

// CreateShare godoc
// @Summary Build a share link for a diagnostic request
// @Tags Share
// @Accept json
// @Produce json
// @Param request body lead_models.DiagnosticRequest true "Diagnostic request"
// @Success 200 {object} response_models.ShareTokenResponse
// @Failure 400 {object} utils.APIResponse
// @Router /share [post]
func (s *ShareController) CreateShare(c *gin.Context) {
	var req lead_models.DiagnosticRequest
	if err := c.ShouldBindJSON(&req); err != nil || !req.ServiceType.Valid() {
		utils.RespondError(c, http.StatusBadRequest, "A diagnostic request with a valid serviceType is required")
		return
	}

	shared, err := s.results.Share(req)
	if err != nil {
		utils.HandleServiceError(c, s.logger, err)
		return
	}
	utils.RespondSuccess(c, shared, "Share link created")
}
