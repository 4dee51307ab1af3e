package engine

import (
	"math"

	"CorpFin360/internal/domain/models"
)

// NormalizeCompany validates raw financials and derives secondary ratios.
// Derived metrics are computed only when every operand is present and the
// divisor is non-zero; otherwise the metric stays undefined and downstream
// rules that need it simply skip. Extra keys in Extensions pass through
// untouched.
func NormalizeCompany(f models.CompanyFinancials) (models.NormalizedCompany, error) {
	if err := checkFinite(f); err != nil {
		return models.NormalizedCompany{}, err
	}

	n := models.NormalizedCompany{CompanyFinancials: f}
	n.ProfitMargin = ratio(f.NetIncome, f.Revenue)
	n.DebtToAssetRatio = ratio(f.TotalLiabilities, f.TotalAssets)
	n.CurrentRatio = ratio(f.CurrentAssets, f.CurrentLiabilities)
	return n, nil
}

func ratio(num, den *float64) models.Metric {
	if num == nil || den == nil || *den == 0 {
		return models.UndefinedMetric()
	}
	return models.DefinedMetric(*num / *den)
}

func checkFinite(f models.CompanyFinancials) error {
	fields := map[string]*float64{
		"revenue":           f.Revenue,
		"net_income":        f.NetIncome,
		"total_assets":      f.TotalAssets,
		"total_liabilities": f.TotalLiabilities,
		"current_assets":    f.CurrentAssets,
		"current_liabilities": f.CurrentLiabilities,
		"cash":            f.Cash,
		"revenue_growth":  f.RevenueGrowth,
		"profit_growth":   f.ProfitGrowth,
		"market_cap":      f.MarketCap,
		"pe_ratio":        f.PERatio,
		"industry_avg_pe": f.IndustryAvgPE,
	}
	for name, v := range fields {
		if v != nil && (math.IsNaN(*v) || math.IsInf(*v, 0)) {
			return NewErrorf(ErrInvalidInput, "field %s is not a finite number", name)
		}
	}
	for name, v := range f.Extensions {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return NewErrorf(ErrInvalidInput, "extension %s is not a finite number", name)
		}
	}
	return nil
}
