package services

import (
	"github.com/shopspring/decimal"

	"fdweb/internal/models/lead_models"
	"fdweb/internal/models/response_models"
	"fdweb/pkg/utils"
)

const (
	smallCityThreshold  = 15000
	smallCityMultiplier = "0.35"
	largeCityMultiplier = "0.15"
	reachShare          = "0.4"
)

type ROIServiceInterface interface {
	Estimate(req lead_models.DiagnosticRequest) response_models.ROIResult
}

type ROIService struct {
	catalog *lead_models.ServiceCatalog
}

func NewROIService(catalog *lead_models.ServiceCatalog) ROIServiceInterface {
	return &ROIService{catalog: catalog}
}

func (s *ROIService) Estimate(req lead_models.DiagnosticRequest) response_models.ROIResult {
	return EstimateROI(s.catalog, req)
}

// EstimateROI is a pure function of the request and the catalog.
//
//	reach   = floor(population * multiplier * 0.4)
//	revenue = reach * conversionRate * avgTicket
//
// multiplier is 0.35 below 15,000 inhabitants and 0.15 from there on.
func EstimateROI(catalog *lead_models.ServiceCatalog, req lead_models.DiagnosticRequest) response_models.ROIResult {
	offer := catalog.Lookup(req.ServiceType)

	population := int64(req.CityPopulation)
	if population < 0 {
		population = 0
	}

	reach := decimal.NewFromInt(population).
		Mul(CityMultiplier(req.CityPopulation)).
		Mul(decimal.RequireFromString(reachShare)).
		Floor()

	rate := decimal.NewFromFloat(offer.ConversionRate)
	revenue := reach.Mul(rate).Mul(decimal.NewFromInt(offer.AvgTicket))

	return response_models.ROIResult{
		EstimatedReach:      reach.IntPart(),
		PotentialConversion: rate.Mul(decimal.NewFromInt(100)).InexactFloat64(),
		EstimatedRevenue:    utils.FormatBRL(revenue),
		RevenueValue:        revenue.InexactFloat64(),
		PackageRecommended:  offer.Label,
		PlanName:            offer.PlanName,
		PriceStart:          offer.Price,
	}
}

func CityMultiplier(population int) decimal.Decimal {
	if population < smallCityThreshold {
		return decimal.RequireFromString(smallCityMultiplier)
	}
	return decimal.RequireFromString(largeCityMultiplier)
}
