package usecase

import (
	"context"
	"math"
	"reflect"
	"testing"
	"time"

	"CorpFin360/internal/domain/models"
	"CorpFin360/internal/engine"
	"CorpFin360/pkg/config"
)

type fakeHealth struct {
	scores models.HealthScores
	errs   []error // consumed one per call, nil slice means always succeed
	calls  int
}

func (f *fakeHealth) Predict(ctx context.Context, features map[string]float64) (models.HealthScores, error) {
	f.calls++
	if len(f.errs) > 0 {
		err := f.errs[0]
		f.errs = f.errs[1:]
		if err != nil {
			return models.HealthScores{}, err
		}
	}
	return f.scores, nil
}

type fakeValuation struct {
	scores models.ValuationScores
	err    error
}

func (f *fakeValuation) Predict(ctx context.Context, features map[string]float64) (models.ValuationScores, error) {
	if f.err != nil {
		return models.ValuationScores{}, f.err
	}
	return f.scores, nil
}

type fakeTrend struct {
	scores models.TrendScores
	err    error
}

func (f *fakeTrend) Predict(ctx context.Context, features map[string]float64, news []models.NewsItem, horizon int) (models.TrendScores, error) {
	if f.err != nil {
		return models.TrendScores{}, f.err
	}
	return f.scores, nil
}

type fakeStatus struct{ status models.PredictorStatus }

func (f *fakeStatus) Status(ctx context.Context) (models.PredictorStatus, error) {
	return f.status, nil
}

func f64(v float64) *float64 { return &v }

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Predictor.RetryAttempts = 3
	cfg.Predictor.RetryBackoff = time.Millisecond
	return cfg
}

func newTestAnalyzer(h *fakeHealth, v *fakeValuation, tr *fakeTrend, opts ...AnalyzerOption) *Analyzer {
	if h == nil {
		h = &fakeHealth{scores: models.HealthScores{HealthScore: 78, RiskScore: 25}}
	}
	if v == nil {
		v = &fakeValuation{scores: models.ValuationScores{
			Predictions: map[string]float64{"linear": 4_000_000, "forest": 4_500_000, "gradient": 6_000_000},
		}}
	}
	if tr == nil {
		tr = &fakeTrend{scores: models.TrendScores{Prices: []float64{100, 102, 108}}}
	}
	return NewAnalyzer(testConfig(), nil, h, v, tr, &fakeStatus{}, opts...)
}

func sampleFinancials() models.CompanyFinancials {
	return models.CompanyFinancials{
		Revenue:          f64(5_000_000),
		NetIncome:        f64(750_000),
		TotalAssets:      f64(8_000_000),
		TotalLiabilities: f64(3_000_000),
	}
}

func TestAssessFinancialHealth(t *testing.T) {
	a := newTestAnalyzer(nil, nil, nil)
	out, err := a.AssessFinancialHealth(context.Background(), sampleFinancials())
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if out.HealthCategory != models.HealthGood || out.RiskCategory != models.RiskLow {
		t.Fatalf("classification %s/%s", out.HealthCategory, out.RiskCategory)
	}
	if len(out.Recommendations) == 0 {
		t.Fatalf("expected recommendations")
	}
	if out.GeneratedAt == "" {
		t.Fatalf("missing generation timestamp")
	}
}

func TestAssessFinancialHealthRetryTransparent(t *testing.T) {
	transient := engine.NewError(engine.ErrPredictorUnavailable, "connection refused")
	flaky := &fakeHealth{
		scores: models.HealthScores{HealthScore: 78, RiskScore: 25},
		errs:   []error{transient, nil},
	}
	clean := &fakeHealth{scores: models.HealthScores{HealthScore: 78, RiskScore: 25}}

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	clock := WithClock(func() time.Time { return now })

	got, err := newTestAnalyzer(flaky, nil, nil, clock).AssessFinancialHealth(context.Background(), sampleFinancials())
	if err != nil {
		t.Fatalf("retried call failed: %v", err)
	}
	if flaky.calls != 2 {
		t.Fatalf("expected 2 attempts, got %d", flaky.calls)
	}
	want, err := newTestAnalyzer(clean, nil, nil, clock).AssessFinancialHealth(context.Background(), sampleFinancials())
	if err != nil {
		t.Fatalf("clean call failed: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("retried response differs from clean response:\n%+v\n%+v", got, want)
	}
}

func TestAssessFinancialHealthValidationNotRetried(t *testing.T) {
	h := &fakeHealth{scores: models.HealthScores{HealthScore: 50, RiskScore: 50}}
	a := newTestAnalyzer(h, nil, nil)
	bad := models.CompanyFinancials{Revenue: f64(math.Inf(1))}
	if _, err := a.AssessFinancialHealth(context.Background(), bad); engine.KindOf(err) != engine.ErrInvalidInput {
		t.Fatalf("expected invalid input, got %v", err)
	}
	if h.calls != 0 {
		t.Fatalf("predictor called despite validation failure")
	}
}

func TestEstimateValuation(t *testing.T) {
	a := newTestAnalyzer(nil, nil, nil)
	out, err := a.EstimateValuation(context.Background(), sampleFinancials(), 0.95, nil)
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if out.ConfidenceInterval.Lower > out.PointEstimate || out.PointEstimate > out.ConfidenceInterval.Upper {
		t.Fatalf("interval invariant violated: %+v", out)
	}
	if out.GeneratedAt == "" {
		t.Fatalf("missing generation timestamp")
	}
}

func TestAnalyzeTrendUsesFeedSnapshot(t *testing.T) {
	feed := snapshotMap{"AAPL": {CurrentPrice: f64(100)}}
	a := newTestAnalyzer(nil, nil, &fakeTrend{scores: models.TrendScores{Prices: []float64{102, 105, 108}}}, WithFeed(feed))
	out, err := a.AnalyzeTrend(context.Background(), "AAPL", nil, nil, 3)
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if out.TrendDirection != models.TrendBullish {
		t.Fatalf("direction %s", out.TrendDirection)
	}
}

type snapshotMap map[string]*models.MarketSnapshot

func (m snapshotMap) Latest(symbol string) (*models.MarketSnapshot, bool) {
	s, ok := m[symbol]
	return s, ok
}

func TestCompareTwoEntities(t *testing.T) {
	good := &fakeValuation{scores: models.ValuationScores{Predictions: map[string]float64{"linear": 1_000_000}}}
	a := newTestAnalyzer(nil, good, nil)
	out, err := a.Compare(context.Background(), []models.CompareEntityRequest{
		{Name: "Acme", Financials: sampleFinancials()},
		{Name: "Globex", Financials: sampleFinancials()},
	})
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if len(out.Ranking) != 2 {
		t.Fatalf("ranking %v", out.Ranking)
	}
}

func TestCompareTooFewEntities(t *testing.T) {
	a := newTestAnalyzer(nil, nil, nil)
	_, err := a.Compare(context.Background(), []models.CompareEntityRequest{
		{Name: "Acme", Financials: sampleFinancials()},
	})
	if engine.KindOf(err) != engine.ErrInsufficientEntities {
		t.Fatalf("expected insufficient entities, got %v", err)
	}
}

func TestCompareAllPredictorsDown(t *testing.T) {
	down := &fakeValuation{err: engine.NewError(engine.ErrPredictorUnavailable, "down")}
	a := newTestAnalyzer(nil, down, nil)
	_, err := a.Compare(context.Background(), []models.CompareEntityRequest{
		{Name: "Acme", Financials: sampleFinancials()},
		{Name: "Globex", Financials: sampleFinancials()},
	})
	if engine.KindOf(err) != engine.ErrInsufficientEntities {
		t.Fatalf("expected insufficient entities, got %v", err)
	}
}

func TestComprehensiveIsolatesFailures(t *testing.T) {
	down := &fakeValuation{err: engine.NewError(engine.ErrPredictorUnavailable, "valuation service down")}
	a := newTestAnalyzer(nil, down, nil)
	out, err := a.Comprehensive(context.Background(), models.ComprehensiveRequest{
		Name:       "Acme",
		Financials: sampleFinancials(),
	})
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if out.Health == nil {
		t.Fatalf("health should have succeeded")
	}
	if out.Valuation != nil || len(out.Failures) != 1 {
		t.Fatalf("valuation failure not isolated: %+v", out)
	}
	if len(out.Recommendations) == 0 {
		t.Fatalf("expected merged recommendations")
	}
}

func TestComprehensiveAllInvalidInputNotRetryable(t *testing.T) {
	a := newTestAnalyzer(nil, nil, nil)
	_, err := a.Comprehensive(context.Background(), models.ComprehensiveRequest{
		Name:       "Acme",
		Financials: models.CompanyFinancials{Revenue: f64(math.Inf(1))},
	})
	if engine.KindOf(err) != engine.ErrInvalidInput {
		t.Fatalf("expected invalid input, got %v", err)
	}
	if engine.IsRetryable(err) {
		t.Fatalf("validation failure marked retryable: %v", err)
	}
}

func TestComprehensiveAllTransientStaysRetryable(t *testing.T) {
	down := engine.NewError(engine.ErrPredictorUnavailable, "down")
	h := &fakeHealth{errs: []error{down, down, down, down}}
	v := &fakeValuation{err: down}
	a := newTestAnalyzer(h, v, nil)
	_, err := a.Comprehensive(context.Background(), models.ComprehensiveRequest{
		Name:       "Acme",
		Financials: sampleFinancials(),
	})
	if engine.KindOf(err) != engine.ErrPredictorUnavailable {
		t.Fatalf("expected predictor unavailable, got %v", err)
	}
}
