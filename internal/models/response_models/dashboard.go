package response_models

import "fdweb/internal/models/lead_models"

// Metrics are the headline numbers of the admin panel.
type Metrics struct {
	Views            int64   `json:"views"`
	QuizStarts       int64   `json:"quiz_starts"`
	Completions      int64   `json:"completions"`
	ProjectedRevenue int64   `json:"projected_revenue"`
	ConversionRate   float64 `json:"conversion_rate"` // percent
}

type ServiceMixItem struct {
	ServiceType lead_models.ServiceType `json:"service_type"`
	Label       string                  `json:"label"`
	Count       int64                   `json:"count"`
	Revenue     int64                   `json:"revenue"`
	Percent     float64                 `json:"percent"`
}

type LeadRow struct {
	ID          string                  `json:"id"`
	UserName    string                  `json:"user_name"`
	Niche       string                  `json:"niche"`
	City        string                  `json:"city"`
	State       string                  `json:"state"`
	ServiceType lead_models.ServiceType `json:"service_type"`
	Package     string                  `json:"package"`
	Price       int64                   `json:"price"`
	PriceText   string                  `json:"price_text"`
	ShareToken  string                  `json:"share_token"`
	ShareURL    string                  `json:"share_url"`
}

type DashboardReport struct {
	Metrics          Metrics          `json:"metrics"`
	ProjectedRevenue string           `json:"projected_revenue_text"`
	AverageTicket    float64          `json:"average_ticket"`
	QuizStartRate    float64          `json:"quiz_start_rate"`
	CompletionRate   float64          `json:"completion_rate"`
	ServiceMix       []ServiceMixItem `json:"service_mix"`
	RecentLeads      []LeadRow        `json:"recent_leads"`
}
