package predictor

import (
	"context"
	"math"

	"CorpFin360/internal/domain/models"
	domsvc "CorpFin360/internal/domain/service"
	"CorpFin360/internal/engine"
	"CorpFin360/pkg/config"
)

type HTTPHealthPredictor struct{ base *ServiceBase }

func NewHTTPHealthPredictor(cfg *config.Config) *HTTPHealthPredictor {
	return &HTTPHealthPredictor{base: NewServiceBase(cfg)}
}

type healthReq struct {
	Features map[string]float64 `json:"features"`
}

type healthResp struct {
	HealthScore *float64 `json:"health_score"`
	RiskScore   *float64 `json:"risk_score"`
}

func (s *HTTPHealthPredictor) Predict(ctx context.Context, features map[string]float64) (models.HealthScores, error) {
	var result models.HealthScores
	var hr healthResp
	if err := s.base.postJSON(ctx, "/health/predict", healthReq{Features: features}, &hr); err != nil {
		return result, err
	}
	if hr.HealthScore == nil || hr.RiskScore == nil {
		return result, engine.NewError(engine.ErrMissingScore, "predictor returned no health score")
	}
	if math.IsNaN(*hr.HealthScore) || math.IsNaN(*hr.RiskScore) {
		return result, engine.NewError(engine.ErrPredictorOutputInvalid, "predictor returned non-numeric scores")
	}
	result.HealthScore = *hr.HealthScore
	result.RiskScore = *hr.RiskScore
	return result, nil
}

var _ domsvc.HealthPredictor = (*HTTPHealthPredictor)(nil)
