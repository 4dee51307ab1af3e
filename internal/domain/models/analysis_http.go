package models

// HealthRequest carries the raw financials for a health assessment.
type HealthRequest struct {
	Financials CompanyFinancials `json:"financials" validate:"required"`
}

// ValuationRequest carries financials plus aggregation knobs.
type ValuationRequest struct {
	Financials      CompanyFinancials `json:"financials" validate:"required"`
	ConfidenceLevel float64           `json:"confidence_level" default:"0.95"`
	Benchmark       *float64          `json:"benchmark,omitempty"`
}

// TrendRequest asks for a market trend analysis for one symbol.
type TrendRequest struct {
	Symbol   string     `json:"symbol" validate:"required"`
	Snapshot *MarketSnapshot `json:"snapshot,omitempty"`
	News     []NewsItem `json:"news,omitempty"`
	Horizon  int        `json:"horizon" default:"5" validate:"min=1,max=30"`
}

// CompareRequest names the entities to compare. Each entity carries its own
// financials; analyses run per entity before comparison.
type CompareRequest struct {
	Entities []CompareEntityRequest `json:"entities" validate:"required,min=2,dive"`
}

// CompareEntityRequest is one entity in a comparison request.
type CompareEntityRequest struct {
	Name       string            `json:"name" validate:"required"`
	Financials CompanyFinancials `json:"financials" validate:"required"`
}

// ComprehensiveRequest asks for the combined health + valuation (+ trend)
// analysis of a single company.
type ComprehensiveRequest struct {
	Name         string            `json:"name" validate:"required"`
	Financials   CompanyFinancials `json:"financials" validate:"required"`
	Symbol       string            `json:"symbol,omitempty"`
	IncludeTrend bool              `json:"include_trend" default:"false"`
}
