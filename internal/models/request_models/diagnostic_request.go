package request_models

import "fdweb/internal/models/lead_models"

type ProfileRequest struct {
	UserName string              `json:"userName" binding:"max=120"`
	Niche    string              `json:"niche" binding:"max=120"`
	City     string              `json:"city" binding:"max=120"`
	State    string              `json:"state" binding:"max=8"`
	HasSite  lead_models.HasSite `json:"hasSite" binding:"omitempty,oneof=yes no"`
	Goal     lead_models.Goal    `json:"goal" binding:"omitempty,oneof=sales brand system all"`
}

type PopulationRequest struct {
	CityPopulation int `json:"cityPopulation" binding:"required"`
}

type ServiceRequest struct {
	ServiceType lead_models.ServiceType `json:"serviceType" binding:"required"`
}

type BudgetRequest struct {
	Budget int `json:"budget" binding:"required"`
}

type ResetRequest struct {
	Confirm bool `json:"confirm"`
}
