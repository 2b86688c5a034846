package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"fdweb/internal/models/lead_models"
	"fdweb/internal/models/request_models"
	"fdweb/internal/models/response_models"
	"fdweb/internal/services"
	"fdweb/pkg/utils"
)

type EnrichmentController struct {
	enrichment services.EnrichmentServiceInterface
	tasks      services.EnrichmentTasksInterface
	handoff    services.HandoffServiceInterface
	logger     *zap.Logger
}

func NewEnrichmentController(
	enrichment services.EnrichmentServiceInterface,
	tasks services.EnrichmentTasksInterface,
	handoff services.HandoffServiceInterface,
	logger *zap.Logger,
) *EnrichmentController {
	return &EnrichmentController{
		enrichment: enrichment,
		tasks:      tasks,
		handoff:    handoff,
		logger:     logger,
	}
}

// AnalyzeMarket godoc
// @Summary Local market analysis
// @Description Always answers 200; provider failures come back as the fixed fallback with fallback=true
// @Tags Enrichment
// @Accept json
// @Produce json
// @Param request body request_models.MarketAnalysisRequest true "Niche and location"
// @Success 200 {object} response_models.MarketAnalysis
// @Failure 400 {object} utils.APIResponse
// @Router /enrichment/market [post]
func (e *EnrichmentController) AnalyzeMarket(c *gin.Context) {
	var req request_models.MarketAnalysisRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "niche and city are required")
		return
	}
	analysis := e.enrichment.AnalyzeMarket(c.Request.Context(), req.Niche, req.City, lead_models.NormalizeState(req.State))
	utils.RespondSuccess(c, analysis, "Market analysis ready")
}

// GenerateMockup godoc
// @Summary Generate site mockup content
// @Tags Enrichment
// @Accept json
// @Produce json
// @Param request body request_models.MockupRequest true "Business and niche"
// @Success 200 {object} lead_models.AIPageContent
// @Failure 400 {object} utils.APIResponse
// @Router /enrichment/mockup [post]
func (e *EnrichmentController) GenerateMockup(c *gin.Context) {
	var req request_models.MockupRequest
	if err := c.ShouldBindJSON(&req); err != nil || !req.ServiceType.Valid() {
		utils.RespondError(c, http.StatusBadRequest, "businessName and a valid serviceType are required")
		return
	}
	content := e.enrichment.GenerateMockupContent(c.Request.Context(), req.BusinessName, req.Niche, req.ServiceType, req.City)
	utils.RespondSuccess(c, content, "Mockup content ready")
}

// RefineContent godoc
// @Summary Edit mockup content with a free text instruction
// @Description On provider failure the current content is returned unchanged
// @Tags Enrichment
// @Accept json
// @Produce json
// @Param request body request_models.RefineContentRequest true "Current content and instruction"
// @Success 200 {object} lead_models.AIPageContent
// @Failure 400 {object} utils.APIResponse
// @Router /enrichment/refine [post]
func (e *EnrichmentController) RefineContent(c *gin.Context) {
	var req request_models.RefineContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "instruction is required")
		return
	}
	content := e.enrichment.RefineContent(c.Request.Context(), req.Current, req.Instruction, req.LocationContext)
	utils.RespondSuccess(c, content, "Content refined")
}

// EditorHandoff godoc
// @Summary Hand the edited draft over on WhatsApp
// @Tags Enrichment
// @Accept json
// @Produce json
// @Param request body request_models.EditorHandoffRequest true "Content and location"
// @Success 200 {object} response_models.EditorHandoffResponse
// @Router /enrichment/handoff [post]
func (e *EnrichmentController) EditorHandoff(c *gin.Context) {
	var req request_models.EditorHandoffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid editor content")
		return
	}
	utils.RespondSuccess(c, response_models.EditorHandoffResponse{
		Content:     req.Content,
		WhatsAppURL: e.handoff.EditorLink(req.Content.Title, req.Location),
	}, "Handoff link ready")
}

// StartTask godoc
// @Summary Start background enrichment for a results view
// @Description Runs market analysis and mockup generation in parallel. Starting again for the same view supersedes the previous task.
// @Tags Enrichment
// @Accept json
// @Produce json
// @Param viewId path string true "Results view ID"
// @Param request body lead_models.DiagnosticRequest true "Lead shown in the view"
// @Success 202 {object} response_models.EnrichmentTask
// @Failure 400 {object} utils.APIResponse
// @Router /enrichment/tasks/{viewId} [post]
func (e *EnrichmentController) StartTask(c *gin.Context) {
	var lead lead_models.DiagnosticRequest
	if err := c.ShouldBindJSON(&lead); err != nil || !lead.ServiceType.Valid() {
		utils.RespondError(c, http.StatusBadRequest, "A diagnostic request with a valid serviceType is required")
		return
	}

	task := e.tasks.Start(c.Param("viewId"), lead)
	utils.RespondAccepted(c, task, "Enrichment started")
}

// GetTask godoc
// @Summary Poll a background enrichment
// @Tags Enrichment
// @Produce json
// @Param viewId path string true "Results view ID"
// @Success 200 {object} response_models.EnrichmentTask
// @Failure 404 {object} utils.APIResponse
// @Router /enrichment/tasks/{viewId} [get]
func (e *EnrichmentController) GetTask(c *gin.Context) {
	task, err := e.tasks.Get(c.Param("viewId"))
	if err != nil {
		utils.HandleServiceError(c, e.logger, err)
		return
	}
	utils.RespondSuccess(c, task, "Enrichment task fetched")
}

// CancelTask godoc
// @Summary Discard a background enrichment
// @Tags Enrichment
// @Produce json
// @Param viewId path string true "Results view ID"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /enrichment/tasks/{viewId} [delete]
func (e *EnrichmentController) CancelTask(c *gin.Context) {
	if err := e.tasks.Cancel(c.Param("viewId")); err != nil {
		utils.HandleServiceError(c, e.logger, err)
		return
	}
	utils.RespondSuccess(c, nil, "Enrichment task discarded")
}
