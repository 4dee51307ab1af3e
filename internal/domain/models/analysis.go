package models

import "time"

// HealthCategory buckets a 0-100 health score.
type HealthCategory string

const (
	HealthExcellent HealthCategory = "Excellent"
	HealthGood      HealthCategory = "Good"
	HealthFair      HealthCategory = "Fair"
	HealthPoor      HealthCategory = "Poor"
	HealthCritical  HealthCategory = "Critical"
)

// RiskCategory buckets a 0-100 risk score.
type RiskCategory string

const (
	RiskLow      RiskCategory = "Low"
	RiskMedium   RiskCategory = "Medium"
	RiskHigh     RiskCategory = "High"
	RiskCritical RiskCategory = "Critical"
)

// TrendDirection is the classified market direction.
type TrendDirection string

const (
	TrendBullish TrendDirection = "Bullish"
	TrendBearish TrendDirection = "Bearish"
	TrendNeutral TrendDirection = "Neutral"
)

// Priority of a recommendation.
type Priority string

const (
	PriorityHigh   Priority = "High"
	PriorityMedium Priority = "Medium"
	PriorityLow    Priority = "Low"
)

// Recommendation is one actionable item produced by the rule set.
// Ordering within a list is rule evaluation order, not priority order.
type Recommendation struct {
	Category    string   `json:"category"`
	Action      string   `json:"action"`
	Priority    Priority `json:"priority"`
	Description string   `json:"description,omitempty"`
}

// InsightType tags an insight as warning, positive or informational.
type InsightType string

const (
	InsightWarning  InsightType = "warning"
	InsightPositive InsightType = "positive"
	InsightInfo     InsightType = "info"
)

// Insight is a short qualitative note attached to a result.
type Insight struct {
	Type    InsightType `json:"type"`
	Message string      `json:"message"`
}

// HealthAssessment is the response of the financial health analytic.
type HealthAssessment struct {
	HealthScore     float64          `json:"health_score"`
	HealthCategory  HealthCategory   `json:"health_category"`
	RiskScore       float64          `json:"risk_score"`
	RiskCategory    RiskCategory     `json:"risk_category"`
	Recommendations []Recommendation `json:"recommendations"`
	GeneratedAt     string           `json:"generated_at"`
}

// ConfidenceInterval bounds a valuation point estimate.
type ConfidenceInterval struct {
	Lower           float64 `json:"lower"`
	Upper           float64 `json:"upper"`
	ConfidenceLevel float64 `json:"confidence_level"`
}

// ValuationResult is the aggregated output of the valuation ensemble.
type ValuationResult struct {
	PointEstimate      float64            `json:"point_estimate"`
	ConfidenceInterval ConfidenceInterval `json:"confidence_interval"`
	EnsembleMean       float64            `json:"ensemble_mean"`
	EnsembleStd        float64            `json:"ensemble_std"`
	BestModel          string             `json:"best_model,omitempty"`
	Methodology        []string           `json:"methodology"`
	Insights           []Insight          `json:"insights"`
	GeneratedAt        string             `json:"generated_at"`
}

// PricePoint is one predicted price step.
type PricePoint struct {
	Step       int     `json:"step"`
	Price      float64 `json:"predicted_price"`
	Confidence float64 `json:"confidence"`
}

// VolatilityPoint is one predicted volatility step with its risk level.
type VolatilityPoint struct {
	Step       int     `json:"step"`
	Volatility float64 `json:"predicted_volatility"`
	RiskLevel  string  `json:"risk_level"`
}

// TrendAnalysis is the response of the market trend analytic.
type TrendAnalysis struct {
	PricePredictions      []PricePoint      `json:"price_predictions"`
	VolatilityPredictions []VolatilityPoint `json:"volatility_predictions"`
	TrendDirection        TrendDirection    `json:"trend_direction"`
	ConfidenceScore       float64           `json:"confidence_score"`
	SentimentScore        *float64          `json:"sentiment_score,omitempty"`
	SentimentCategory     string            `json:"sentiment_category,omitempty"`
	KeyFactors            []string          `json:"key_factors"`
	Recommendations       []Recommendation  `json:"recommendations"`
	GeneratedAt           string            `json:"generated_at"`
}

// ComparisonEntity is one named, already-analyzed entity fed to the
// comparison engine.
type ComparisonEntity struct {
	Name      string            `json:"name"`
	Valuation *ValuationResult  `json:"valuation,omitempty"`
	Health    *HealthAssessment `json:"health,omitempty"`
	Err       error             `json:"-"`
}

// EntityFailure reports one entity whose pipeline failed; the remaining
// entities are still compared.
type EntityFailure struct {
	Name    string `json:"name"`
	Message string `json:"message"`
}

// ComparisonResult is the output of the comparison engine.
type ComparisonResult struct {
	Similarities []string        `json:"similarities"`
	Differences  []string        `json:"differences"`
	Ranking      []string        `json:"ranking"`
	Insights     []Insight       `json:"insights"`
	Failed       []EntityFailure `json:"failed,omitempty"`
	Summary      string          `json:"summary"`
	GeneratedAt  string          `json:"generated_at"`
}

// ComprehensiveAnalysis merges health, valuation and optional trend results
// for one company, with per-analysis failures isolated.
type ComprehensiveAnalysis struct {
	Health          *HealthAssessment `json:"health,omitempty"`
	Valuation       *ValuationResult  `json:"valuation,omitempty"`
	Trend           *TrendAnalysis    `json:"trend,omitempty"`
	Failures        []EntityFailure   `json:"failures,omitempty"`
	Insights        []Insight         `json:"insights"`
	Recommendations []Recommendation  `json:"recommendations"`
	Summary         string            `json:"summary"`
	GeneratedAt     string            `json:"generated_at"`
}

// AnalysisRecord is the persisted trace of one completed analysis.
type AnalysisRecord struct {
	Kind        string    // "health" | "valuation" | "trend" | "comparison"
	Subject     string    // company or symbol label; may be empty
	Score       float64   // primary scalar: health score, point estimate, confidence
	Category    string    // primary classification label
	GeneratedAt time.Time
}
