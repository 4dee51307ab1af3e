package predictor

import (
	"context"

	"CorpFin360/internal/domain/models"
	domsvc "CorpFin360/internal/domain/service"
	"CorpFin360/internal/engine"
	"CorpFin360/pkg/config"
)

type HTTPTrendPredictor struct{ base *ServiceBase }

func NewHTTPTrendPredictor(cfg *config.Config) *HTTPTrendPredictor {
	return &HTTPTrendPredictor{base: NewServiceBase(cfg)}
}

type trendReq struct {
	Features map[string]float64 `json:"features"`
	News     []models.NewsItem  `json:"news,omitempty"`
	Horizon  int                `json:"horizon"`
}

type trendResp struct {
	Prices       []float64 `json:"prices"`
	Volatilities []float64 `json:"volatilities"`
	Sentiment    *float64  `json:"sentiment"`
}

func (s *HTTPTrendPredictor) Predict(ctx context.Context, features map[string]float64, news []models.NewsItem, horizon int) (models.TrendScores, error) {
	var result models.TrendScores
	var tr trendResp
	err := s.base.postJSON(ctx, "/trend/predict", trendReq{Features: features, News: news, Horizon: horizon}, &tr)
	if err != nil {
		return result, err
	}
	if len(tr.Prices) == 0 {
		return result, engine.NewError(engine.ErrMissingScore, "predictor returned no price forecast")
	}
	if horizon > 0 && len(tr.Prices) != horizon {
		return result, engine.NewErrorf(engine.ErrPredictorOutputInvalid,
			"predictor returned %d price steps for horizon %d", len(tr.Prices), horizon)
	}
	result.Prices = tr.Prices
	result.Volatilities = tr.Volatilities
	result.Sentiment = tr.Sentiment
	return result, nil
}

var _ domsvc.TrendPredictor = (*HTTPTrendPredictor)(nil)
