package models

// HealthScores are raw model outputs on a 0-100 scale. Values outside the
// range are clamped by the classifier; NaN is rejected.
type HealthScores struct {
	HealthScore float64 `json:"health_score"`
	RiskScore   float64 `json:"risk_score"`
}

// ValuationScores maps model name to its valuation estimate.
type ValuationScores struct {
	Predictions map[string]float64 `json:"predictions"`
	BestModel   string             `json:"best_model,omitempty"`
}

// TrendScores are the raw forecast outputs of the trend models.
type TrendScores struct {
	Prices       []float64 `json:"prices"`
	Volatilities []float64 `json:"volatilities"`
	Sentiment    *float64  `json:"sentiment,omitempty"`
}

// PredictorStatus describes the model service and its loaded models.
type PredictorStatus struct {
	Available bool            `json:"available"`
	Models    map[string]bool `json:"models"`
	Version   string          `json:"version,omitempty"`
}
