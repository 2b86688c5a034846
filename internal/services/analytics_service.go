package services

import (
	"context"

	"github.com/shopspring/decimal"

	"fdweb/internal/models/lead_models"
	resp "fdweb/internal/models/response_models"
	"fdweb/pkg/utils"
)

type AnalyticsServiceInterface interface {
	ComputeMetrics(ctx context.Context) (*resp.Metrics, error)
	BuildDashboard(ctx context.Context) (*resp.DashboardReport, error)
}

type analyticsService struct {
	ledger  LedgerServiceInterface
	catalog *lead_models.ServiceCatalog
	codec   ShareCodecInterface
}

func NewAnalyticsService(ledger LedgerServiceInterface, catalog *lead_models.ServiceCatalog, codec ShareCodecInterface) AnalyticsServiceInterface {
	return &analyticsService{ledger: ledger, catalog: catalog, codec: codec}
}

func (s *analyticsService) ComputeMetrics(ctx context.Context) (*resp.Metrics, error) {
	snap, err := s.ledger.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	m := s.metrics(snap)
	return &m, nil
}

func (s *analyticsService) metrics(snap lead_models.LedgerSnapshot) resp.Metrics {
	var projected int64
	for _, lead := range snap.Leads {
		projected += s.catalog.Lookup(lead.ServiceType).Price
	}

	completions := int64(len(snap.Leads))
	return resp.Metrics{
		Views:            snap.Views,
		QuizStarts:       snap.QuizStarts,
		Completions:      completions,
		ProjectedRevenue: projected,
		ConversionRate:   conversionRate(completions, snap.Views),
	}
}

func (s *analyticsService) BuildDashboard(ctx context.Context) (*resp.DashboardReport, error) {
	snap, err := s.ledger.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	// ---------- Headline ----------
	m := s.metrics(snap)

	var avgTicket float64
	if m.Completions > 0 {
		avgTicket = decimal.NewFromInt(m.ProjectedRevenue).
			Div(decimal.NewFromInt(m.Completions)).
			Round(2).
			InexactFloat64()
	}

	// ---------- Service mix ----------
	counts := map[lead_models.ServiceType]int64{}
	revenue := map[lead_models.ServiceType]int64{}
	for _, lead := range snap.Leads {
		offer := s.catalog.Lookup(lead.ServiceType)
		counts[offer.Type]++
		revenue[offer.Type] += offer.Price
	}
	mix := make([]resp.ServiceMixItem, 0, len(counts))
	for _, offer := range s.catalog.Offers() {
		mix = append(mix, resp.ServiceMixItem{
			ServiceType: offer.Type,
			Label:       offer.Label,
			Count:       counts[offer.Type],
			Revenue:     revenue[offer.Type],
			Percent:     percent(counts[offer.Type], m.Completions),
		})
	}

	// ---------- Recent leads (newest first) ----------
	rows := make([]resp.LeadRow, 0, len(snap.Leads))
	for i := len(snap.Leads) - 1; i >= 0; i-- {
		lead := snap.Leads[i]
		offer := s.catalog.Lookup(lead.ServiceType)

		row := resp.LeadRow{
			ID:          lead.ID,
			UserName:    lead.UserName,
			Niche:       lead.Niche,
			City:        lead.City,
			State:       lead.State,
			ServiceType: lead.ServiceType,
			Package:     offer.Label,
			Price:       offer.Price,
			PriceText:   utils.FormatBRL(decimal.NewFromInt(offer.Price)),
		}
		if token, err := s.codec.Encode(lead); err == nil {
			row.ShareToken = token
			row.ShareURL = s.codec.Link(token)
		}
		rows = append(rows, row)
	}

	return &resp.DashboardReport{
		Metrics:          m,
		ProjectedRevenue: utils.FormatBRL(decimal.NewFromInt(m.ProjectedRevenue)),
		AverageTicket:    avgTicket,
		QuizStartRate:    percent(m.QuizStarts, m.Views),
		CompletionRate:   percent(m.Completions, m.QuizStarts),
		ServiceMix:       mix,
		RecentLeads:      rows,
	}, nil
}

// conversionRate is completions/views*100, unrounded, 0 without views.
func conversionRate(completions, views int64) float64 {
	if views <= 0 {
		return 0
	}
	return float64(completions) * 100 / float64(views)
}

// percent returns part/whole*100 rounded to two places, 0 when whole is 0.
func percent(part, whole int64) float64 {
	if whole <= 0 {
		return 0
	}
	return decimal.NewFromInt(part).
		Mul(decimal.NewFromInt(100)).
		Div(decimal.NewFromInt(whole)).
		Round(2).
		InexactFloat64()
}
