package engine

import (
	"reflect"
	"testing"

	"CorpFin360/internal/domain/models"
)

func TestSynthesizeBorderlineGrowth(t *testing.T) {
	// health 78 -> Good, risk 25 -> Low: must fire the growth rule
	n, err := NormalizeCompany(models.CompanyFinancials{
		Revenue:          f64(5_000_000),
		NetIncome:        f64(750_000),
		TotalAssets:      f64(8_000_000),
		TotalLiabilities: f64(3_000_000),
	})
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	recs := Synthesize(RuleInput{
		Health:      models.HealthGood,
		HealthScore: 78,
		Risk:        models.RiskLow,
		RiskScore:   25,
		Company:     n,
	})
	if len(recs) == 0 {
		t.Fatalf("expected at least one recommendation")
	}
	found := false
	for _, r := range recs {
		if r.Category == "Growth" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a Growth recommendation, got %+v", recs)
	}
}

func TestSynthesizeNeedsAttentionNeverEmpty(t *testing.T) {
	cases := []RuleInput{
		{Health: models.HealthCritical, Risk: models.RiskLow},
		{Health: models.HealthPoor, Risk: models.RiskMedium},
		{Health: models.HealthFair, Risk: models.RiskHigh},
		{Health: models.HealthGood, Risk: models.RiskCritical},
	}
	for _, in := range cases {
		if recs := Synthesize(in); len(recs) == 0 {
			t.Fatalf("empty recommendations for %+v", in)
		}
	}
}

func TestSynthesizeFallback(t *testing.T) {
	// excellent health, medium risk, no ratios: nothing fires except the
	// catch-all monitoring entry
	recs := Synthesize(RuleInput{Health: models.HealthExcellent, Risk: models.RiskMedium})
	if len(recs) != 1 {
		t.Fatalf("expected exactly one fallback recommendation, got %d", len(recs))
	}
	if recs[0].Category != "General" || recs[0].Priority != models.PriorityLow {
		t.Fatalf("unexpected fallback %+v", recs[0])
	}
}

func TestSynthesizeIdempotent(t *testing.T) {
	n, err := NormalizeCompany(models.CompanyFinancials{
		Revenue:            f64(1_000_000),
		NetIncome:          f64(20_000),
		TotalAssets:        f64(900_000),
		TotalLiabilities:   f64(700_000),
		CurrentAssets:      f64(100_000),
		CurrentLiabilities: f64(200_000),
		RevenueGrowth:      f64(-0.1),
	})
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	in := RuleInput{
		Health:      models.HealthPoor,
		HealthScore: 30,
		Risk:        models.RiskHigh,
		RiskScore:   65,
		Company:     n,
	}
	first := Synthesize(in)
	second := Synthesize(in)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("synthesize is not deterministic:\n%+v\n%+v", first, second)
	}
	// every distressed-ratio rule should have fired in order
	if len(first) < 5 {
		t.Fatalf("expected distressed company to trigger many rules, got %d", len(first))
	}
}

func TestSynthesizeSkipsUndefinedMetrics(t *testing.T) {
	// no ratios defined: margin/leverage/liquidity rules must stay silent
	recs := Synthesize(RuleInput{Health: models.HealthFair, Risk: models.RiskMedium})
	for _, r := range recs {
		switch r.Category {
		case "Profitability", "Leverage", "Liquidity":
			t.Fatalf("rule on undefined metric fired: %+v", r)
		}
	}
}
