package response_models

import (
	"time"

	"fdweb/internal/models/lead_models"
)

type MarketAnalysis struct {
	Demand        string   `json:"demand"`
	Competitors   []string `json:"competitors"`
	Opportunity   string   `json:"opportunity"`
	AverageTicket string   `json:"average_ticket"`
	Fallback      bool     `json:"fallback"`
}

type EnrichmentTaskStatus string

const (
	TaskLoading EnrichmentTaskStatus = "loading"
	TaskReady   EnrichmentTaskStatus = "ready"
)

type EnrichmentTask struct {
	ID         string                     `json:"id"`
	ViewID     string                     `json:"view_id"`
	Status     EnrichmentTaskStatus       `json:"status"`
	Market     *MarketAnalysis            `json:"market,omitempty"`
	Mockup     *lead_models.AIPageContent `json:"mockup,omitempty"`
	StartedAt  time.Time                  `json:"started_at"`
	FinishedAt *time.Time                 `json:"finished_at,omitempty"`
}

type EditorHandoffResponse struct {
	Content     lead_models.AIPageContent `json:"content"`
	WhatsAppURL string                    `json:"whatsapp_url"`
}

type TemplateListResponse struct {
	Plan      string                           `json:"plan"`
	Templates []lead_models.TemplateDefinition `json:"templates"`
}
