package engine

import (
	"math"
	"testing"

	"CorpFin360/internal/domain/models"
)

func TestClassifyHealthBands(t *testing.T) {
	cases := []struct {
		score float64
		want  models.HealthCategory
	}{
		{100, models.HealthExcellent},
		{80, models.HealthExcellent},
		{79.99, models.HealthGood},
		{78, models.HealthGood},
		{60, models.HealthGood},
		{59.99, models.HealthFair},
		{40, models.HealthFair},
		{39.99, models.HealthPoor},
		{20, models.HealthPoor},
		{19.99, models.HealthCritical},
		{0, models.HealthCritical},
	}
	for _, c := range cases {
		got, err := ClassifyHealth(c.score)
		if err != nil {
			t.Fatalf("score %v: unexpected error %v", c.score, err)
		}
		if got != c.want {
			t.Fatalf("score %v: got %s want %s", c.score, got, c.want)
		}
	}
}

func TestClassifyHealthCoversRange(t *testing.T) {
	// every score in [0,100] must land in exactly one band
	for s := 0.0; s <= 100.0; s += 0.5 {
		got, err := ClassifyHealth(s)
		if err != nil {
			t.Fatalf("score %v: %v", s, err)
		}
		if got == "" {
			t.Fatalf("score %v: empty category", s)
		}
	}
}

func TestClassifyHealthClamps(t *testing.T) {
	got, err := ClassifyHealth(150)
	if err != nil || got != models.HealthExcellent {
		t.Fatalf("got %s, %v", got, err)
	}
	got, err = ClassifyHealth(-10)
	if err != nil || got != models.HealthCritical {
		t.Fatalf("got %s, %v", got, err)
	}
}

func TestClassifyHealthNaN(t *testing.T) {
	_, err := ClassifyHealth(math.NaN())
	if KindOf(err) != ErrMissingScore {
		t.Fatalf("expected missing score, got %v", err)
	}
}

func TestClassifyRiskBands(t *testing.T) {
	cases := []struct {
		score float64
		want  models.RiskCategory
	}{
		{0, models.RiskLow},
		{25, models.RiskLow},
		{29.99, models.RiskLow},
		{30, models.RiskMedium},
		{59.99, models.RiskMedium},
		{60, models.RiskHigh},
		{79.99, models.RiskHigh},
		{80, models.RiskCritical},
		{100, models.RiskCritical},
	}
	for _, c := range cases {
		got, err := ClassifyRisk(c.score)
		if err != nil {
			t.Fatalf("score %v: unexpected error %v", c.score, err)
		}
		if got != c.want {
			t.Fatalf("score %v: got %s want %s", c.score, got, c.want)
		}
	}
}

func TestClassifyTrend(t *testing.T) {
	cases := []struct {
		momentum float64
		want     models.TrendDirection
	}{
		{0.10, models.TrendBullish},
		{0.051, models.TrendBullish},
		{0.05, models.TrendNeutral},
		{0, models.TrendNeutral},
		{-0.05, models.TrendNeutral},
		{-0.051, models.TrendBearish},
		{-0.2, models.TrendBearish},
	}
	for _, c := range cases {
		got, conf, err := ClassifyTrend(c.momentum)
		if err != nil {
			t.Fatalf("momentum %v: %v", c.momentum, err)
		}
		if got != c.want {
			t.Fatalf("momentum %v: got %s want %s", c.momentum, got, c.want)
		}
		if conf <= 0 || conf > 1 {
			t.Fatalf("momentum %v: confidence %v out of range", c.momentum, conf)
		}
	}
}

func TestClassifyVolatility(t *testing.T) {
	cases := []struct {
		vol  float64
		want string
	}{
		{0.05, "Low"},
		{0.1, "Moderate"},
		{0.2, "Moderate"},
		{0.3, "High"},
		{0.6, "Extreme"},
	}
	for _, c := range cases {
		if got := ClassifyVolatility(c.vol); got != c.want {
			t.Fatalf("vol %v: got %s want %s", c.vol, got, c.want)
		}
	}
}

func TestClassifySentiment(t *testing.T) {
	cases := []struct {
		score float64
		want  string
	}{
		{0.8, "Very Positive"},
		{0.5, "Positive"},
		{0, "Neutral"},
		{-0.5, "Negative"},
		{-0.9, "Very Negative"},
	}
	for _, c := range cases {
		if got := ClassifySentiment(c.score); got != c.want {
			t.Fatalf("score %v: got %s want %s", c.score, got, c.want)
		}
	}
}
