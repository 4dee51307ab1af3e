package features

import "CorpFin360/internal/domain/models"

// BuildCompanyVector flattens normalized financials into the feature map the
// model service expects. Only present fields are emitted; the models impute
// the rest. Derived ratios ride along under their own keys, and extensions
// pass through untouched.
func BuildCompanyVector(n models.NormalizedCompany) map[string]float64 {
	v := make(map[string]float64, 16)
	put(v, "revenue", n.Revenue)
	put(v, "net_income", n.NetIncome)
	put(v, "total_assets", n.TotalAssets)
	put(v, "total_liabilities", n.TotalLiabilities)
	put(v, "current_assets", n.CurrentAssets)
	put(v, "current_liabilities", n.CurrentLiabilities)
	put(v, "cash", n.Cash)
	put(v, "revenue_growth", n.RevenueGrowth)
	put(v, "profit_growth", n.ProfitGrowth)
	put(v, "market_cap", n.MarketCap)
	put(v, "pe_ratio", n.PERatio)
	put(v, "industry_avg_pe", n.IndustryAvgPE)
	putMetric(v, "profit_margin", n.ProfitMargin)
	putMetric(v, "debt_to_asset_ratio", n.DebtToAssetRatio)
	putMetric(v, "current_ratio", n.CurrentRatio)
	for k, val := range n.Extensions {
		v[k] = val
	}
	return v
}

// BuildMarketVector flattens a market snapshot into the trend model's
// feature map.
func BuildMarketVector(s *models.MarketSnapshot) map[string]float64 {
	v := make(map[string]float64, 20)
	if s == nil {
		return v
	}
	put(v, "current_price", s.CurrentPrice)
	put(v, "price_change", s.PriceChange)
	put(v, "price_change_percent", s.PriceChangePercent)
	put(v, "volume", s.Volume)
	put(v, "volume_change", s.VolumeChange)
	put(v, "ma_20", s.MovingAverage20)
	put(v, "ma_50", s.MovingAverage50)
	put(v, "rsi", s.RSI)
	put(v, "macd", s.MACD)
	put(v, "bollinger_upper", s.BollingerUpper)
	put(v, "bollinger_lower", s.BollingerLower)
	put(v, "fear_greed_index", s.FearGreedIndex)
	put(v, "vix", s.VIX)
	put(v, "interest_rate", s.InterestRate)
	put(v, "inflation_rate", s.InflationRate)
	put(v, "gdp_growth", s.GDPGrowth)
	put(v, "unemployment_rate", s.UnemploymentRate)
	put(v, "sector_performance", s.SectorPerformance)
	put(v, "industry_trend", s.IndustryTrend)
	for k, val := range s.Extensions {
		v[k] = val
	}
	return v
}

func put(v map[string]float64, key string, f *float64) {
	if f != nil {
		v[key] = *f
	}
}

func putMetric(v map[string]float64, key string, m models.Metric) {
	if m.Defined() {
		v[key] = m.Value()
	}
}
