package engine

import (
	"math"
	"testing"

	"CorpFin360/internal/domain/models"
)

func TestBuildTrendBullish(t *testing.T) {
	snap := &models.MarketSnapshot{CurrentPrice: f64(100)}
	res, err := BuildTrend(models.TrendScores{
		Prices:       []float64{101, 103, 108},
		Volatilities: []float64{0.12, 0.15, 0.2},
	}, snap)
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if res.TrendDirection != models.TrendBullish {
		t.Fatalf("direction %s", res.TrendDirection)
	}
	if len(res.PricePredictions) != 3 || res.PricePredictions[0].Step != 1 {
		t.Fatalf("price points %+v", res.PricePredictions)
	}
	for _, v := range res.VolatilityPredictions {
		if v.RiskLevel != "Moderate" {
			t.Fatalf("risk level %s for %v", v.RiskLevel, v.Volatility)
		}
	}
	if len(res.Recommendations) == 0 {
		t.Fatalf("expected recommendations")
	}
}

func TestBuildTrendNeutralBand(t *testing.T) {
	snap := &models.MarketSnapshot{CurrentPrice: f64(100)}
	res, err := BuildTrend(models.TrendScores{Prices: []float64{101, 102, 103}}, snap)
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if res.TrendDirection != models.TrendNeutral {
		t.Fatalf("3%% move should stay neutral, got %s", res.TrendDirection)
	}
	if len(res.Recommendations) == 0 {
		t.Fatalf("neutral trend still needs a recommendation")
	}
}

func TestBuildTrendBearishHighVol(t *testing.T) {
	snap := &models.MarketSnapshot{CurrentPrice: f64(100)}
	res, err := BuildTrend(models.TrendScores{
		Prices:       []float64{95, 92, 88},
		Volatilities: []float64{0.3, 0.55},
	}, snap)
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if res.TrendDirection != models.TrendBearish {
		t.Fatalf("direction %s", res.TrendDirection)
	}
	categories := map[string]bool{}
	for _, r := range res.Recommendations {
		categories[r.Category] = true
	}
	if !categories["Market Position"] || !categories["Risk Management"] {
		t.Fatalf("recommendations %+v", res.Recommendations)
	}
}

func TestBuildTrendMissingForecast(t *testing.T) {
	_, err := BuildTrend(models.TrendScores{}, nil)
	if KindOf(err) != ErrMissingScore {
		t.Fatalf("expected missing score, got %v", err)
	}
	_, err = BuildTrend(models.TrendScores{Prices: []float64{math.NaN()}}, nil)
	if KindOf(err) != ErrMissingScore {
		t.Fatalf("expected missing score for NaN, got %v", err)
	}
}

func TestBuildTrendSentiment(t *testing.T) {
	s := -0.5
	res, err := BuildTrend(models.TrendScores{
		Prices:    []float64{100, 100, 100},
		Sentiment: &s,
	}, &models.MarketSnapshot{CurrentPrice: f64(100)})
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if res.SentimentCategory != "Negative" {
		t.Fatalf("sentiment category %s", res.SentimentCategory)
	}
	found := false
	for _, r := range res.Recommendations {
		if r.Category == "Sentiment" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected sentiment recommendation, got %+v", res.Recommendations)
	}
}

func TestKeyFactors(t *testing.T) {
	s := &models.MarketSnapshot{
		RSI:            f64(75),
		VIX:            f64(35),
		FearGreedIndex: f64(10),
		InterestRate:   f64(5.5),
	}
	factors := keyFactors(s)
	if len(factors) != 4 {
		t.Fatalf("factors %+v", factors)
	}
	if keyFactors(nil) != nil {
		t.Fatalf("nil snapshot should yield no factors")
	}
}
