package service

import (
	"context"

	"CorpFin360/internal/domain/models"
)

// HealthPredictor returns health and risk scores for one company's feature
// vector. Scores are raw model outputs; classification happens downstream.
type HealthPredictor interface {
	Predict(ctx context.Context, features map[string]float64) (models.HealthScores, error)
}

// ValuationPredictor returns one valuation per underlying model, keyed by
// model name.
type ValuationPredictor interface {
	Predict(ctx context.Context, features map[string]float64) (models.ValuationScores, error)
}

// TrendPredictor forecasts prices and volatilities over a horizon, plus an
// optional sentiment score when news text is provided.
type TrendPredictor interface {
	Predict(ctx context.Context, features map[string]float64, news []models.NewsItem, horizon int) (models.TrendScores, error)
}

// StatusReporter reports availability of the underlying model service.
type StatusReporter interface {
	Status(ctx context.Context) (models.PredictorStatus, error)
}
