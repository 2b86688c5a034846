package response_models

import "fdweb/internal/models/lead_models"

// ROIResult is derived from a lead on every read and never stored.
type ROIResult struct {
	EstimatedReach      int64   `json:"estimated_reach"`
	PotentialConversion float64 `json:"potential_conversion"` // percent
	EstimatedRevenue    string  `json:"estimated_revenue"`
	RevenueValue        float64 `json:"revenue_value"`
	PackageRecommended  string  `json:"package_recommended"`
	PlanName            string  `json:"plan_name"`
	PriceStart          int64   `json:"price_start"`
}

type QuizSessionResponse struct {
	SessionID   string                        `json:"session_id"`
	CurrentStep int                           `json:"current_step"`
	TotalSteps  int                           `json:"total_steps"`
	Draft       lead_models.DiagnosticRequest `json:"draft"`
	CanGoBack   bool                          `json:"can_go_back"`
	CanAdvance  bool                          `json:"can_advance"`
	CanFinalize bool                          `json:"can_finalize"`
}

// DiagnosticResultResponse is what the results screen renders.
type DiagnosticResultResponse struct {
	Lead        lead_models.DiagnosticRequest `json:"lead"`
	ROI         ROIResult                     `json:"roi"`
	ShareToken  string                        `json:"share_token"`
	ShareURL    string                        `json:"share_url"`
	WhatsAppURL string                        `json:"whatsapp_url"`
}

type TrackViewResponse struct {
	Views  int64                     `json:"views"`
	Admin  bool                      `json:"admin"`
	Shared *DiagnosticResultResponse `json:"shared,omitempty"`
}

type ShareTokenResponse struct {
	Token string `json:"token"`
	URL   string `json:"url"`
}
