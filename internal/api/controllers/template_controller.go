package controllers

import (
	"github.com/gin-gonic/gin"

	"fdweb/internal/models/lead_models"
	"fdweb/internal/models/response_models"
	"fdweb/internal/services"
	"fdweb/pkg/utils"
)

type TemplateController struct {
	templates services.TemplateServiceInterface
}

func NewTemplateController(templates services.TemplateServiceInterface) *TemplateController {
	return &TemplateController{templates: templates}
}

// ListTemplates godoc
// @Summary List starting templates
// @Description Templates for a plan name, or for the plan of a service type. Unknown plans get "Site Essencial".
// @Tags Templates
// @Produce json
// @Param plan query string false "Plan name"
// @Param service query string false "site | ecommerce | system"
// @Success 200 {object} response_models.TemplateListResponse
// @Router /templates [get]
func (t *TemplateController) ListTemplates(c *gin.Context) {
	var (
		plan string
		list []lead_models.TemplateDefinition
	)
	if svc := c.Query("service"); svc != "" && c.Query("plan") == "" {
		plan, list = t.templates.ForService(lead_models.ServiceType(svc))
	} else {
		plan, list = t.templates.ForPlan(c.Query("plan"))
	}

	utils.RespondSuccess(c, response_models.TemplateListResponse{Plan: plan, Templates: list}, "Templates fetched successfully")
}
