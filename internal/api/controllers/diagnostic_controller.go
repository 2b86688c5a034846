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

type DiagnosticController struct {
	collector services.CollectorServiceInterface
	roi       services.ROIServiceInterface
	logger    *zap.Logger
}

func NewDiagnosticController(
	collector services.CollectorServiceInterface,
	roi services.ROIServiceInterface,
	logger *zap.Logger,
) *DiagnosticController {
	return &DiagnosticController{
		collector: collector,
		roi:       roi,
		logger:    logger,
	}
}

// StartSession godoc
// @Summary Start a diagnostic session
// @Description Opens a new four step diagnostic form and counts a quiz start
// @Tags Diagnostics
// @Produce json
// @Success 201 {object} response_models.QuizSessionResponse
// @Failure 503 {object} utils.APIResponse
// @Router /diagnostics/sessions [post]
func (d *DiagnosticController) StartSession(c *gin.Context) {
	session, err := d.collector.Start(c.Request.Context())
	if err != nil {
		utils.HandleServiceError(c, d.logger, err)
		return
	}
	utils.RespondCreated(c, session, "Diagnostic session started")
}

// GetSession godoc
// @Summary Get a diagnostic session
// @Tags Diagnostics
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} response_models.QuizSessionResponse
// @Failure 404 {object} utils.APIResponse
// @Router /diagnostics/sessions/{id} [get]
func (d *DiagnosticController) GetSession(c *gin.Context) {
	session, err := d.collector.Get(c.Param("id"))
	if err != nil {
		utils.HandleServiceError(c, d.logger, err)
		return
	}
	utils.RespondSuccess(c, session, "Diagnostic session fetched successfully")
}

// UpdateProfile godoc
// @Summary Fill step 1
// @Description Company name, niche, city and state. The state is upper-cased and cut to two letters.
// @Tags Diagnostics
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body request_models.ProfileRequest true "Profile"
// @Success 200 {object} response_models.QuizSessionResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse
// @Router /diagnostics/sessions/{id}/profile [put]
func (d *DiagnosticController) UpdateProfile(c *gin.Context) {
	var req request_models.ProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid profile: "+err.Error())
		return
	}

	session, err := d.collector.UpdateProfile(c.Param("id"), services.ProfileInput{
		UserName: req.UserName,
		Niche:    req.Niche,
		City:     req.City,
		State:    req.State,
		HasSite:  req.HasSite,
		Goal:     req.Goal,
	})
	d.respondSession(c, session, err)
}

// SelectPopulation godoc
// @Summary Pick the city size (step 2)
// @Tags Diagnostics
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body request_models.PopulationRequest true "One of 8000, 50000, 200000, 1000000"
// @Success 200 {object} response_models.QuizSessionResponse
// @Router /diagnostics/sessions/{id}/population [put]
func (d *DiagnosticController) SelectPopulation(c *gin.Context) {
	var req request_models.PopulationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "cityPopulation is required")
		return
	}
	session, err := d.collector.SelectPopulation(c.Param("id"), req.CityPopulation)
	d.respondSession(c, session, err)
}

// SelectService godoc
// @Summary Pick the project type (step 3)
// @Tags Diagnostics
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body request_models.ServiceRequest true "site | ecommerce | system"
// @Success 200 {object} response_models.QuizSessionResponse
// @Router /diagnostics/sessions/{id}/service [put]
func (d *DiagnosticController) SelectService(c *gin.Context) {
	var req request_models.ServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "serviceType is required")
		return
	}
	session, err := d.collector.SelectService(c.Param("id"), req.ServiceType)
	d.respondSession(c, session, err)
}

// SelectBudget godoc
// @Summary Pick the monthly budget (step 4)
// @Tags Diagnostics
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body request_models.BudgetRequest true "One of 200, 500, 1200, 5000"
// @Success 200 {object} response_models.QuizSessionResponse
// @Router /diagnostics/sessions/{id}/budget [put]
func (d *DiagnosticController) SelectBudget(c *gin.Context) {
	var req request_models.BudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "budget is required")
		return
	}
	session, err := d.collector.SelectBudget(c.Param("id"), req.Budget)
	d.respondSession(c, session, err)
}

// Next godoc
// @Summary Go to the next step
// @Tags Diagnostics
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} response_models.QuizSessionResponse
// @Failure 422 {object} utils.APIResponse
// @Router /diagnostics/sessions/{id}/next [post]
func (d *DiagnosticController) Next(c *gin.Context) {
	session, err := d.collector.Next(c.Param("id"))
	d.respondSession(c, session, err)
}

// Back godoc
// @Summary Go back one step
// @Tags Diagnostics
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} response_models.QuizSessionResponse
// @Failure 409 {object} utils.APIResponse
// @Router /diagnostics/sessions/{id}/back [post]
func (d *DiagnosticController) Back(c *gin.Context) {
	session, err := d.collector.Back(c.Param("id"))
	d.respondSession(c, session, err)
}

// Finalize godoc
// @Summary Generate the diagnosis
// @Description Stamps an FD-NNNN id on the draft, stores the lead and returns the results screen
// @Tags Diagnostics
// @Produce json
// @Param id path string true "Session ID"
// @Success 201 {object} response_models.DiagnosticResultResponse
// @Failure 409 {object} utils.APIResponse
// @Failure 422 {object} utils.APIResponse
// @Failure 503 {object} utils.APIResponse
// @Router /diagnostics/sessions/{id}/finalize [post]
func (d *DiagnosticController) Finalize(c *gin.Context) {
	result, err := d.collector.Finalize(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.HandleServiceError(c, d.logger, err)
		return
	}
	utils.RespondCreated(c, result, "Diagnostic generated successfully")
}

// EstimateROI godoc
// @Summary Estimate ROI for a diagnostic request
// @Tags Diagnostics
// @Accept json
// @Produce json
// @Param request body lead_models.DiagnosticRequest true "Diagnostic request"
// @Success 200 {object} response_models.ROIResult
// @Failure 400 {object} utils.APIResponse
// @Router /diagnostics/roi [post]
func (d *DiagnosticController) EstimateROI(c *gin.Context) {
	var req lead_models.DiagnosticRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid diagnostic request")
		return
	}
	if req.CityPopulation < 0 {
		utils.RespondError(c, http.StatusBadRequest, "cityPopulation must not be negative")
		return
	}
	utils.RespondSuccess(c, d.roi.Estimate(req), "ROI estimated successfully")
}

func (d *DiagnosticController) respondSession(c *gin.Context, session *response_models.QuizSessionResponse, err error) {
	if err != nil {
		utils.HandleServiceError(c, d.logger, err)
		return
	}
	utils.RespondSuccess(c, session, "Diagnostic session updated")
}
