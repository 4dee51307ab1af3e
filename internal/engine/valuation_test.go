package engine

import (
	"math"
	"strings"
	"testing"

	"CorpFin360/internal/domain/models"
)

func TestAggregateValuationEnsembleStats(t *testing.T) {
	preds := map[string]float64{
		"linear":        4_000_000,
		"random_forest": 4_500_000,
		"gradient":      6_000_000,
	}
	res, err := AggregateValuation(preds, models.NormalizedCompany{}, AggregateOptions{ConfidenceLevel: 0.95})
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if math.Abs(res.EnsembleMean-4_833_333.33) > 0.01 {
		t.Fatalf("mean %v", res.EnsembleMean)
	}
	if math.Abs(res.EnsembleStd-1_040_833.0) > 1_000 {
		t.Fatalf("std %v", res.EnsembleStd)
	}
	ci := res.ConfidenceInterval
	if ci.Lower > res.PointEstimate || res.PointEstimate > ci.Upper {
		t.Fatalf("interval %v does not contain point %v", ci, res.PointEstimate)
	}
	found := false
	for _, ins := range res.Insights {
		if ins.Type == models.InsightWarning && strings.Contains(ins.Message, "High uncertainty") {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected high uncertainty warning, insights %+v", res.Insights)
	}
}

func TestAggregateValuationBenchmarkPicksClosest(t *testing.T) {
	preds := map[string]float64{
		"linear":   1_000_000,
		"gradient": 2_000_000,
	}
	bench := 1_900_000.0
	res, err := AggregateValuation(preds, models.NormalizedCompany{}, AggregateOptions{Benchmark: &bench})
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if res.BestModel != "gradient" || res.PointEstimate != 2_000_000 {
		t.Fatalf("got %s / %v", res.BestModel, res.PointEstimate)
	}
}

func TestAggregateValuationBestModelFallback(t *testing.T) {
	preds := map[string]float64{
		"linear":   1_000_000,
		"gradient": 2_000_000,
	}
	res, err := AggregateValuation(preds, models.NormalizedCompany{}, AggregateOptions{BestModel: "linear"})
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if res.PointEstimate != 1_000_000 {
		t.Fatalf("point %v", res.PointEstimate)
	}

	// unknown best model falls back to the ensemble mean
	res, err = AggregateValuation(preds, models.NormalizedCompany{}, AggregateOptions{BestModel: "missing"})
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if res.PointEstimate != res.EnsembleMean || res.BestModel != "" {
		t.Fatalf("expected ensemble mean fallback, got %+v", res)
	}
}

func TestAggregateValuationInvalidConfidenceLevel(t *testing.T) {
	preds := map[string]float64{"linear": 1}
	for _, level := range []float64{-0.5, 1, 1.5, math.NaN()} {
		_, err := AggregateValuation(preds, models.NormalizedCompany{}, AggregateOptions{ConfidenceLevel: level})
		if KindOf(err) != ErrInvalidConfidenceLevel {
			t.Fatalf("level %v: expected invalid confidence level, got %v", level, err)
		}
	}
}

func TestAggregateValuationEmptyEnsemble(t *testing.T) {
	_, err := AggregateValuation(nil, models.NormalizedCompany{}, AggregateOptions{})
	if KindOf(err) != ErrMissingScore {
		t.Fatalf("expected missing score, got %v", err)
	}
	_, err = AggregateValuation(map[string]float64{"linear": math.NaN()}, models.NormalizedCompany{}, AggregateOptions{})
	if KindOf(err) != ErrMissingScore {
		t.Fatalf("expected missing score for NaN, got %v", err)
	}
}

func TestAggregateValuationNonNegativeLower(t *testing.T) {
	preds := map[string]float64{
		"a": 100_000,
		"b": 2_000_000,
		"c": 50_000,
	}
	res, err := AggregateValuation(preds, models.NormalizedCompany{}, AggregateOptions{})
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if res.ConfidenceInterval.Lower < 0 {
		t.Fatalf("lower bound %v is negative", res.ConfidenceInterval.Lower)
	}
	if res.ConfidenceInterval.Lower > res.PointEstimate || res.PointEstimate > res.ConfidenceInterval.Upper {
		t.Fatalf("interval invariant violated: %+v", res)
	}
}

func TestAggregateValuationPositiveInsights(t *testing.T) {
	n, err := NormalizeCompany(models.CompanyFinancials{
		Revenue:       f64(1_000_000),
		NetIncome:     f64(300_000),
		RevenueGrowth: f64(0.3),
	})
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	res, err := AggregateValuation(map[string]float64{"linear": 5_000_000}, n, AggregateOptions{})
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	positives := 0
	for _, ins := range res.Insights {
		if ins.Type == models.InsightPositive {
			positives++
		}
	}
	if positives != 2 {
		t.Fatalf("expected growth and margin insights, got %+v", res.Insights)
	}
}

func TestAggregateValuationDefaultLevel(t *testing.T) {
	res, err := AggregateValuation(map[string]float64{"linear": 1_000_000}, models.NormalizedCompany{}, AggregateOptions{})
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if res.ConfidenceInterval.ConfidenceLevel != 0.95 {
		t.Fatalf("default level %v", res.ConfidenceInterval.ConfidenceLevel)
	}
}
