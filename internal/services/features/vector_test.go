package features

import (
	"testing"

	"CorpFin360/internal/domain/models"
)

func f64(v float64) *float64 { return &v }

func TestBuildCompanyVector(t *testing.T) {
	n := models.NormalizedCompany{
		CompanyFinancials: models.CompanyFinancials{
			Revenue:    f64(5_000_000),
			NetIncome:  f64(750_000),
			Extensions: map[string]float64{"ev_ebitda": 12.5},
		},
		ProfitMargin: models.DefinedMetric(0.15),
	}
	v := BuildCompanyVector(n)
	if v["revenue"] != 5_000_000 || v["net_income"] != 750_000 {
		t.Fatalf("vector %v", v)
	}
	if v["profit_margin"] != 0.15 {
		t.Fatalf("derived ratio missing: %v", v)
	}
	if v["ev_ebitda"] != 12.5 {
		t.Fatalf("extension missing: %v", v)
	}
	if _, ok := v["total_assets"]; ok {
		t.Fatalf("absent field must not be emitted")
	}
	if _, ok := v["debt_to_asset_ratio"]; ok {
		t.Fatalf("undefined metric must not be emitted")
	}
}

func TestBuildMarketVector(t *testing.T) {
	v := BuildMarketVector(&models.MarketSnapshot{
		CurrentPrice: f64(101.5),
		RSI:          f64(68),
	})
	if v["current_price"] != 101.5 || v["rsi"] != 68 {
		t.Fatalf("vector %v", v)
	}
	if len(BuildMarketVector(nil)) != 0 {
		t.Fatalf("nil snapshot must yield empty vector")
	}
}
