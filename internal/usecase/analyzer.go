package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"CorpFin360/internal/domain/models"
	domrepo "CorpFin360/internal/domain/repository"
	domsvc "CorpFin360/internal/domain/service"
	"CorpFin360/internal/engine"
	"CorpFin360/internal/services/features"
	"CorpFin360/pkg/cache"
	"CorpFin360/pkg/config"
	"CorpFin360/pkg/logger"
	"CorpFin360/pkg/util"
)

// SnapshotProvider serves the latest known market snapshot for a symbol.
type SnapshotProvider interface {
	Latest(symbol string) (*models.MarketSnapshot, bool)
}

// Analyzer orchestrates the analytics pipeline: normalize, predict, classify,
// aggregate, synthesize. Each request runs the steps strictly in that order;
// requests are independent and share no mutable state.
type Analyzer struct {
	health    domsvc.HealthPredictor
	valuation domsvc.ValuationPredictor
	trend     domsvc.TrendPredictor
	status    domsvc.StatusReporter

	cache     cache.Service
	publisher domrepo.Publisher
	history   domrepo.HistoryStore
	metrics   domrepo.Metrics
	feed      SnapshotProvider
	log       *logger.Logger

	attempts  int
	backoff   time.Duration
	bestModel string
	ttl       struct{ health, valuation, trend time.Duration }
	now       func() time.Time
}

type AnalyzerOption func(*Analyzer)

// WithCache enables result caching keyed by the normalized feature vector.
func WithCache(c cache.Service, health, valuation, trend time.Duration) AnalyzerOption {
	return func(a *Analyzer) {
		a.cache = c
		a.ttl.health = health
		a.ttl.valuation = valuation
		a.ttl.trend = trend
	}
}

// WithPublisher emits a record for every completed analysis.
func WithPublisher(p domrepo.Publisher) AnalyzerOption {
	return func(a *Analyzer) { a.publisher = p }
}

// WithHistory persists completed analyses.
func WithHistory(h domrepo.HistoryStore) AnalyzerOption {
	return func(a *Analyzer) { a.history = h }
}

// WithMetrics records analysis counters and predictor latencies.
func WithMetrics(m domrepo.Metrics) AnalyzerOption {
	return func(a *Analyzer) { a.metrics = m }
}

// WithFeed supplies live market snapshots for trend requests without one.
func WithFeed(f SnapshotProvider) AnalyzerOption {
	return func(a *Analyzer) { a.feed = f }
}

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) AnalyzerOption {
	return func(a *Analyzer) { a.now = now }
}

func NewAnalyzer(cfg *config.Config, log *logger.Logger, health domsvc.HealthPredictor, valuation domsvc.ValuationPredictor, trend domsvc.TrendPredictor, status domsvc.StatusReporter, opts ...AnalyzerOption) *Analyzer {
	a := &Analyzer{
		health:    health,
		valuation: valuation,
		trend:     trend,
		status:    status,
		log:       log,
		attempts:  cfg.Predictor.RetryAttempts,
		backoff:   cfg.Predictor.RetryBackoff,
		bestModel: cfg.Predictor.BestModel,
		now:       time.Now,
	}
	if a.attempts < 1 {
		a.attempts = 1
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// AssessFinancialHealth runs the full health pipeline for one company.
func (a *Analyzer) AssessFinancialHealth(ctx context.Context, fin models.CompanyFinancials) (*models.HealthAssessment, error) {
	n, err := engine.NormalizeCompany(fin)
	if err != nil {
		a.countError("health")
		return nil, err
	}
	vec := features.BuildCompanyVector(n)

	key := cacheKey("health", vec)
	if a.cache != nil {
		var cached models.HealthAssessment
		if err := a.cache.Get(ctx, key, &cached); err == nil {
			return &cached, nil
		}
	}

	scores, err := a.predictHealth(ctx, vec)
	if err != nil {
		a.countError("health")
		return nil, err
	}

	healthCat, err := engine.ClassifyHealth(scores.HealthScore)
	if err != nil {
		a.countError("health")
		return nil, err
	}
	riskCat, err := engine.ClassifyRisk(scores.RiskScore)
	if err != nil {
		a.countError("health")
		return nil, err
	}

	out := &models.HealthAssessment{
		HealthScore:    scores.HealthScore,
		HealthCategory: healthCat,
		RiskScore:      scores.RiskScore,
		RiskCategory:   riskCat,
		Recommendations: engine.Synthesize(engine.RuleInput{
			Health:      healthCat,
			HealthScore: scores.HealthScore,
			Risk:        riskCat,
			RiskScore:   scores.RiskScore,
			Company:     n,
		}),
		GeneratedAt: util.FormatTimestamp(a.now()),
	}

	a.cacheSet(ctx, key, out, a.ttl.health)
	a.record(ctx, &models.AnalysisRecord{
		Kind:        "health",
		Score:       out.HealthScore,
		Category:    string(out.HealthCategory),
		GeneratedAt: a.now(),
	})
	return out, nil
}

// EstimateValuation runs the valuation ensemble pipeline.
func (a *Analyzer) EstimateValuation(ctx context.Context, fin models.CompanyFinancials, confidenceLevel float64, benchmark *float64) (*models.ValuationResult, error) {
	n, err := engine.NormalizeCompany(fin)
	if err != nil {
		a.countError("valuation")
		return nil, err
	}
	vec := features.BuildCompanyVector(n)

	key := cacheKey("valuation", map[string]interface{}{"features": vec, "level": confidenceLevel, "benchmark": benchmark})
	if a.cache != nil {
		var cached models.ValuationResult
		if err := a.cache.Get(ctx, key, &cached); err == nil {
			return &cached, nil
		}
	}

	scores, err := a.predictValuation(ctx, vec)
	if err != nil {
		a.countError("valuation")
		return nil, err
	}

	best := scores.BestModel
	if best == "" {
		best = a.bestModel
	}
	res, err := engine.AggregateValuation(scores.Predictions, n, engine.AggregateOptions{
		ConfidenceLevel: confidenceLevel,
		Benchmark:       benchmark,
		BestModel:       best,
	})
	if err != nil {
		a.countError("valuation")
		return nil, err
	}
	res.GeneratedAt = util.FormatTimestamp(a.now())

	a.cacheSet(ctx, key, &res, a.ttl.valuation)
	a.record(ctx, &models.AnalysisRecord{
		Kind:        "valuation",
		Score:       res.PointEstimate,
		Category:    res.BestModel,
		GeneratedAt: a.now(),
	})
	return &res, nil
}

// AnalyzeTrend runs the market trend pipeline for one symbol. When the
// request carries no snapshot the latest one from the live feed is used.
func (a *Analyzer) AnalyzeTrend(ctx context.Context, symbol string, snap *models.MarketSnapshot, news []models.NewsItem, horizon int) (*models.TrendAnalysis, error) {
	if snap == nil && a.feed != nil {
		if s, ok := a.feed.Latest(symbol); ok {
			snap = s
		}
	}
	vec := features.BuildMarketVector(snap)

	key := cacheKey("trend", map[string]interface{}{"symbol": symbol, "features": vec, "horizon": horizon})
	if a.cache != nil {
		var cached models.TrendAnalysis
		if err := a.cache.Get(ctx, key, &cached); err == nil {
			return &cached, nil
		}
	}

	scores, err := a.predictTrend(ctx, vec, news, horizon)
	if err != nil {
		a.countError("trend")
		return nil, err
	}

	res, err := engine.BuildTrend(scores, snap)
	if err != nil {
		a.countError("trend")
		return nil, err
	}
	res.GeneratedAt = util.FormatTimestamp(a.now())

	a.cacheSet(ctx, key, &res, a.ttl.trend)
	a.record(ctx, &models.AnalysisRecord{
		Kind:        "trend",
		Subject:     symbol,
		Score:       res.ConfidenceScore,
		Category:    string(res.TrendDirection),
		GeneratedAt: a.now(),
	})
	return &res, nil
}

// Compare analyzes each entity independently, in parallel, then contrasts
// the survivors. One entity's failure never aborts the others.
func (a *Analyzer) Compare(ctx context.Context, entities []models.CompareEntityRequest) (*models.ComparisonResult, error) {
	if len(entities) < 2 {
		return nil, engine.NewErrorf(engine.ErrInsufficientEntities, "comparison needs at least 2 entities, got %d", len(entities))
	}

	results := make([]models.ComparisonEntity, len(entities))
	var wg sync.WaitGroup
	for i, e := range entities {
		wg.Add(1)
		go func(i int, e models.CompareEntityRequest) {
			defer wg.Done()
			results[i] = a.analyzeEntity(ctx, e)
		}(i, e)
	}
	wg.Wait()

	res, err := engine.Compare(results)
	if err != nil {
		a.countError("comparison")
		return nil, err
	}
	res.GeneratedAt = util.FormatTimestamp(a.now())

	a.record(ctx, &models.AnalysisRecord{
		Kind:        "comparison",
		Score:       float64(len(res.Ranking)),
		GeneratedAt: a.now(),
	})
	return &res, nil
}

// Comprehensive combines health, valuation and optionally trend for one
// company. Individual analysis failures are isolated; the call errors only
// when nothing succeeded.
func (a *Analyzer) Comprehensive(ctx context.Context, req models.ComprehensiveRequest) (*models.ComprehensiveAnalysis, error) {
	out := &models.ComprehensiveAnalysis{}
	var mu sync.Mutex
	var wg sync.WaitGroup

	var failErrs []error
	fail := func(part string, err error) {
		mu.Lock()
		out.Failures = append(out.Failures, models.EntityFailure{Name: part, Message: userFacing(err)})
		failErrs = append(failErrs, err)
		mu.Unlock()
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		h, err := a.AssessFinancialHealth(ctx, req.Financials)
		if err != nil {
			fail("health", err)
			return
		}
		mu.Lock()
		out.Health = h
		mu.Unlock()
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		v, err := a.EstimateValuation(ctx, req.Financials, 0, nil)
		if err != nil {
			fail("valuation", err)
			return
		}
		mu.Lock()
		out.Valuation = v
		mu.Unlock()
	}()

	if req.IncludeTrend && req.Symbol != "" {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tr, err := a.AnalyzeTrend(ctx, req.Symbol, nil, nil, 5)
			if err != nil {
				fail("trend", err)
				return
			}
			mu.Lock()
			out.Trend = tr
			mu.Unlock()
		}()
	}

	wg.Wait()

	if out.Health == nil && out.Valuation == nil && out.Trend == nil {
		a.countError("comprehensive")
		return nil, engine.NewErrorf(combinedKind(failErrs), "all analyses failed for %s", req.Name)
	}

	if out.Health != nil {
		out.Recommendations = append(out.Recommendations, out.Health.Recommendations...)
	}
	if out.Trend != nil {
		out.Recommendations = append(out.Recommendations, out.Trend.Recommendations...)
	}
	if out.Valuation != nil {
		out.Insights = append(out.Insights, out.Valuation.Insights...)
	}
	out.Summary = comprehensiveSummary(req.Name, out)
	out.GeneratedAt = util.FormatTimestamp(a.now())
	return out, nil
}

// PredictorStatus reports availability of the external model service.
func (a *Analyzer) PredictorStatus(ctx context.Context) (models.PredictorStatus, error) {
	return a.status.Status(ctx)
}

// History returns stored analysis records for a subject. Returns an empty
// slice when no history backend is configured.
func (a *Analyzer) History(ctx context.Context, subject string, from, to time.Time, limit int) ([]*models.AnalysisRecord, error) {
	if a.history == nil {
		return []*models.AnalysisRecord{}, nil
	}
	if limit <= 0 || limit > 1000 {
		limit = 100
	}
	return a.history.Query(ctx, subject, from, to, limit)
}

func (a *Analyzer) analyzeEntity(ctx context.Context, e models.CompareEntityRequest) models.ComparisonEntity {
	out := models.ComparisonEntity{Name: e.Name}
	v, err := a.EstimateValuation(ctx, e.Financials, 0, nil)
	if err != nil {
		out.Err = err
		return out
	}
	out.Valuation = v
	if h, err := a.AssessFinancialHealth(ctx, e.Financials); err == nil {
		out.Health = h
	} else if a.log != nil {
		a.log.Warn("health assessment failed during comparison",
			logger.String("entity", e.Name), logger.Error(err))
	}
	return out
}

func (a *Analyzer) predictHealth(ctx context.Context, vec map[string]float64) (models.HealthScores, error) {
	start := a.now()
	out, err := withRetry(ctx, a.attempts, a.backoff, a.onRetry("health"), func(ctx context.Context) (models.HealthScores, error) {
		return a.health.Predict(ctx, vec)
	})
	a.observe("health", start)
	return out, err
}

func (a *Analyzer) predictValuation(ctx context.Context, vec map[string]float64) (models.ValuationScores, error) {
	start := a.now()
	out, err := withRetry(ctx, a.attempts, a.backoff, a.onRetry("valuation"), func(ctx context.Context) (models.ValuationScores, error) {
		return a.valuation.Predict(ctx, vec)
	})
	a.observe("valuation", start)
	return out, err
}

func (a *Analyzer) predictTrend(ctx context.Context, vec map[string]float64, news []models.NewsItem, horizon int) (models.TrendScores, error) {
	start := a.now()
	out, err := withRetry(ctx, a.attempts, a.backoff, a.onRetry("trend"), func(ctx context.Context) (models.TrendScores, error) {
		return a.trend.Predict(ctx, vec, news, horizon)
	})
	a.observe("trend", start)
	return out, err
}

func (a *Analyzer) onRetry(model string) func(int) {
	return func(attempt int) {
		if a.metrics != nil {
			a.metrics.RecordRetry(model)
		}
		if a.log != nil {
			a.log.Warn("retrying predictor call",
				logger.String("model", model), logger.Int("attempt", attempt))
		}
	}
}

func (a *Analyzer) observe(model string, start time.Time) {
	if a.metrics != nil {
		a.metrics.RecordPredictorCall(model, time.Since(start).Seconds())
	}
}

func (a *Analyzer) countError(kind string) {
	if a.metrics != nil {
		a.metrics.RecordError(kind)
	}
}

// record persists and publishes a completed analysis. Failures here are
// logged, never surfaced to the caller.
func (a *Analyzer) record(ctx context.Context, rec *models.AnalysisRecord) {
	if a.metrics != nil {
		a.metrics.RecordAnalysis(rec.Kind, rec.Category)
	}
	if a.history != nil {
		if err := a.history.Store(ctx, rec); err != nil && a.log != nil {
			a.log.Warn("store analysis record", logger.Error(err))
		}
	}
	if a.publisher != nil {
		if err := a.publisher.Publish(ctx, rec); err != nil && a.log != nil {
			a.log.Warn("publish analysis record", logger.Error(err))
		}
	}
}

func (a *Analyzer) cacheSet(ctx context.Context, key string, value interface{}, ttl time.Duration) {
	if a.cache == nil || ttl <= 0 {
		return
	}
	if err := a.cache.Set(ctx, key, value, ttl); err != nil && a.log != nil {
		a.log.Warn("cache analysis result", logger.String("key", key), logger.Error(err))
	}
}

// cacheKey hashes the request payload; map keys marshal sorted so equal
// inputs always produce the same key.
func cacheKey(kind string, payload interface{}) string {
	b, _ := json.Marshal(payload)
	return cache.GenerateKey("analysis:"+kind, cache.HashKey(string(b)))
}

func comprehensiveSummary(name string, c *models.ComprehensiveAnalysis) string {
	s := fmt.Sprintf("Comprehensive analysis for %s", name)
	if c.Health != nil {
		s += fmt.Sprintf(": health %s", c.Health.HealthCategory)
	}
	if c.Valuation != nil {
		s += fmt.Sprintf(", valuation %.0f", c.Valuation.PointEstimate)
	}
	if c.Trend != nil {
		s += fmt.Sprintf(", trend %s", c.Trend.TrendDirection)
	}
	if len(c.Failures) > 0 {
		s += fmt.Sprintf(" (%d analyses failed)", len(c.Failures))
	}
	return s
}

func userFacing(err error) string {
	var e *engine.Error
	if errors.As(err, &e) {
		return e.Message
	}
	return "analysis failed"
}

// combinedKind picks the kind for an all-analyses-failed error. A transient
// predictor failure wins so callers keep their retry path; otherwise the
// first failure's kind carries through, so pure validation failures stay
// non-retryable.
func combinedKind(errs []error) engine.Kind {
	for _, err := range errs {
		if engine.IsRetryable(err) {
			return engine.ErrPredictorUnavailable
		}
	}
	for _, err := range errs {
		if k := engine.KindOf(err); k != "" {
			return k
		}
	}
	return engine.ErrPredictorUnavailable
}
