package models

// CompanyFinancials holds raw company inputs. All numeric fields are optional:
// a nil pointer means "unknown", which is different from zero.
// Extra keys sent by clients live in Extensions and are passed through untouched.
type CompanyFinancials struct {
	Revenue            *float64 `json:"revenue,omitempty"`
	NetIncome          *float64 `json:"net_income,omitempty"`
	TotalAssets        *float64 `json:"total_assets,omitempty"`
	TotalLiabilities   *float64 `json:"total_liabilities,omitempty"`
	CurrentAssets      *float64 `json:"current_assets,omitempty"`
	CurrentLiabilities *float64 `json:"current_liabilities,omitempty"`
	Cash               *float64 `json:"cash,omitempty"`
	RevenueGrowth      *float64 `json:"revenue_growth,omitempty"`
	ProfitGrowth       *float64 `json:"profit_growth,omitempty"`
	MarketCap          *float64 `json:"market_cap,omitempty"`
	PERatio            *float64 `json:"pe_ratio,omitempty"`
	IndustryAvgPE      *float64 `json:"industry_avg_pe,omitempty"`

	Extensions map[string]float64 `json:"extensions,omitempty"`
}

// Metric is a derived numeric that may be undefined when its inputs are
// missing or the computation would divide by zero. Undefined metrics are
// skipped by downstream rules instead of surfacing NaN or Inf.
type Metric struct {
	Val float64 `json:"value"`
	Def bool    `json:"defined"`
}

// DefinedMetric builds a defined metric.
func DefinedMetric(v float64) Metric { return Metric{Val: v, Def: true} }

// UndefinedMetric builds an undefined metric.
func UndefinedMetric() Metric { return Metric{} }

// Value returns the metric value; check Defined before trusting it.
func (m Metric) Value() float64 { return m.Val }

// Defined reports whether the metric carries a usable value.
func (m Metric) Defined() bool { return m.Def }

// NormalizedCompany is the normalizer output: the raw record plus derived
// ratios, each explicitly defined or undefined.
type NormalizedCompany struct {
	CompanyFinancials

	ProfitMargin     Metric `json:"profit_margin"`
	DebtToAssetRatio Metric `json:"debt_to_asset_ratio"`
	CurrentRatio     Metric `json:"current_ratio"`
}
