package engine

import (
	"strings"
	"testing"

	"CorpFin360/internal/domain/models"
)

func valuationOf(point float64) *models.ValuationResult {
	return &models.ValuationResult{PointEstimate: point}
}

func TestCompareSignificantGap(t *testing.T) {
	res, err := Compare([]models.ComparisonEntity{
		{Name: "Acme", Valuation: valuationOf(1_000_000)},
		{Name: "Globex", Valuation: valuationOf(4_000_000)},
	})
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	found := false
	for _, ins := range res.Insights {
		if strings.Contains(ins.Message, "Acme") && strings.Contains(ins.Message, "Globex") &&
			strings.Contains(ins.Message, "gap") {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected significant gap insight, got %+v", res.Insights)
	}
}

func TestCompareNoGapBelowThreshold(t *testing.T) {
	res, err := Compare([]models.ComparisonEntity{
		{Name: "Acme", Valuation: valuationOf(1_000_000)},
		{Name: "Globex", Valuation: valuationOf(1_500_000)},
	})
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	for _, ins := range res.Insights {
		if strings.Contains(ins.Message, "gap") {
			t.Fatalf("unexpected gap insight %+v", ins)
		}
	}
}

func TestCompareInsufficientEntities(t *testing.T) {
	_, err := Compare([]models.ComparisonEntity{
		{Name: "Acme", Valuation: valuationOf(1_000_000)},
	})
	if KindOf(err) != ErrInsufficientEntities {
		t.Fatalf("expected insufficient entities, got %v", err)
	}

	// errored entities do not count as valid
	_, err = Compare([]models.ComparisonEntity{
		{Name: "Acme", Valuation: valuationOf(1_000_000)},
		{Name: "Globex", Err: NewError(ErrPredictorUnavailable, "predictor unreachable")},
	})
	if KindOf(err) != ErrInsufficientEntities {
		t.Fatalf("expected insufficient entities, got %v", err)
	}
}

func TestComparePartialFailure(t *testing.T) {
	res, err := Compare([]models.ComparisonEntity{
		{Name: "Acme", Valuation: valuationOf(1_000_000)},
		{Name: "Globex", Valuation: valuationOf(1_200_000)},
		{Name: "Initech", Err: NewError(ErrMissingScore, "valuation model returned nothing")},
	})
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if len(res.Failed) != 1 || res.Failed[0].Name != "Initech" {
		t.Fatalf("failed entities %+v", res.Failed)
	}
	if res.Failed[0].Message != "valuation model returned nothing" {
		t.Fatalf("failure message %q", res.Failed[0].Message)
	}
	if len(res.Ranking) != 2 {
		t.Fatalf("ranking should exclude failed entities, got %v", res.Ranking)
	}
}

func TestCompareRanking(t *testing.T) {
	res, err := Compare([]models.ComparisonEntity{
		{Name: "Small", Valuation: valuationOf(500_000)},
		{Name: "Big", Valuation: valuationOf(5_000_000)},
		{Name: "Mid", Valuation: valuationOf(2_000_000)},
	})
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	want := []string{"Big", "Mid", "Small"}
	for i, name := range want {
		if res.Ranking[i] != name {
			t.Fatalf("ranking %v, want %v", res.Ranking, want)
		}
	}
}

func TestCompareHealthProfiles(t *testing.T) {
	good := &models.HealthAssessment{HealthCategory: models.HealthGood, RiskCategory: models.RiskLow}
	poor := &models.HealthAssessment{HealthCategory: models.HealthPoor, RiskCategory: models.RiskHigh}

	res, err := Compare([]models.ComparisonEntity{
		{Name: "Acme", Health: good, Valuation: valuationOf(1_000_000)},
		{Name: "Globex", Health: good, Valuation: valuationOf(1_100_000)},
	})
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if len(res.Similarities) == 0 {
		t.Fatalf("expected shared health similarity, got %+v", res)
	}

	res, err = Compare([]models.ComparisonEntity{
		{Name: "Acme", Health: good, Valuation: valuationOf(1_000_000)},
		{Name: "Globex", Health: poor, Valuation: valuationOf(1_100_000)},
	})
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if len(res.Differences) == 0 {
		t.Fatalf("expected health difference, got %+v", res)
	}
}

func TestCompareSummaryCounts(t *testing.T) {
	res, err := Compare([]models.ComparisonEntity{
		{Name: "Acme", Valuation: valuationOf(1_000_000)},
		{Name: "Globex", Valuation: valuationOf(1_100_000)},
	})
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if !strings.Contains(res.Summary, "2 entities") {
		t.Fatalf("summary %q", res.Summary)
	}
}
