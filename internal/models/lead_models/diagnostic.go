package lead_models

import (
	"strings"
	"unicode/utf8"
)

type ServiceType string

const (
	ServiceSite      ServiceType = "site"
	ServiceEcommerce ServiceType = "ecommerce"
	ServiceSystem    ServiceType = "system"
)

func (s ServiceType) Valid() bool {
	switch s {
	case ServiceSite, ServiceEcommerce, ServiceSystem:
		return true
	}
	return false
}

type HasSite string

const (
	HasSiteYes HasSite = "yes"
	HasSiteNo  HasSite = "no"
)

type Goal string

const (
	GoalSales  Goal = "sales"
	GoalBrand  Goal = "brand"
	GoalSystem Goal = "system"
	GoalAll    Goal = "all"
)

const stateMaxLen = 2

// PopulationBuckets are the region sizes offered on step 2 of the collector.
var PopulationBuckets = []int{8000, 50000, 200000, 1000000}

// BudgetBuckets are the budget tiers offered on step 4 of the collector.
var BudgetBuckets = []int{200, 500, 1200, 5000}

// DiagnosticRequest is one lead. The json names are shared with the browser
// (share tokens, persisted ledger) and must stay stable.
type DiagnosticRequest struct {
	ID             string         `json:"id"`
	UserName       string         `json:"userName"`
	Niche          string         `json:"niche"`
	City           string         `json:"city"`
	State          string         `json:"state"`
	CityPopulation int            `json:"cityPopulation"`
	HasSite        HasSite        `json:"hasSite,omitempty"`
	Goal           Goal           `json:"goal,omitempty"`
	Budget         int            `json:"budget"`
	ServiceType    ServiceType    `json:"serviceType"`
	AIContent      *AIPageContent `json:"aiContent,omitempty"`
}

// Complete reports whether the fields needed to finalize a lead are filled.
func (d DiagnosticRequest) Complete() bool {
	return strings.TrimSpace(d.UserName) != "" &&
		strings.TrimSpace(d.City) != "" &&
		strings.TrimSpace(d.State) != ""
}

// Location renders "city - state" the way the handoff messages show it.
func (d DiagnosticRequest) Location() string {
	return d.City + " - " + d.State
}

// NormalizeState drops whitespace, uppercases a state code and keeps at most
// two characters.
func NormalizeState(state string) string {
	s := strings.ToUpper(strings.Join(strings.Fields(state), ""))
	if utf8.RuneCountInString(s) <= stateMaxLen {
		return s
	}
	return string([]rune(s)[:stateMaxLen])
}

func ValidPopulation(pop int) bool {
	return inBuckets(PopulationBuckets, pop)
}

func ValidBudget(budget int) bool {
	return inBuckets(BudgetBuckets, budget)
}

func inBuckets(buckets []int, v int) bool {
	for _, b := range buckets {
		if b == v {
			return true
		}
	}
	return false
}

func PopulationLabel(pop int) string {
	if pop <= 10000 {
		return "Cidade Pequena"
	}
	return "Grande Centro"
}

func BudgetLabel(budget int) string {
	if budget <= 500 {
		return "Essencial"
	}
	return "Profissional"
}

// NewDraft returns the request the collector starts from.
func NewDraft() DiagnosticRequest {
	return DiagnosticRequest{
		CityPopulation: PopulationBuckets[0],
		HasSite:        HasSiteNo,
		Goal:           GoalAll,
		Budget:         BudgetBuckets[0],
		ServiceType:    ServiceSite,
	}
}
