package request_models

import "fdweb/internal/models/lead_models"

type MarketAnalysisRequest struct {
	Niche string `json:"niche" binding:"required,max=120"`
	City  string `json:"city" binding:"required,max=120"`
	State string `json:"state" binding:"max=8"`
}

type MockupRequest struct {
	BusinessName string                  `json:"businessName" binding:"required,max=120"`
	Niche        string                  `json:"niche" binding:"max=120"`
	ServiceType  lead_models.ServiceType `json:"serviceType" binding:"required"`
	City         string                  `json:"city" binding:"max=120"`
}

type RefineContentRequest struct {
	Current         lead_models.AIPageContent `json:"current"`
	Instruction     string                    `json:"instruction" binding:"required,max=2000"`
	LocationContext string                    `json:"locationContext" binding:"max=240"`
}

type EditorHandoffRequest struct {
	Content  lead_models.AIPageContent `json:"content"`
	Location string                    `json:"location" binding:"max=240"`
}
