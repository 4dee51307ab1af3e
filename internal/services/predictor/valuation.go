package predictor

import (
	"context"
	"math"

	"CorpFin360/internal/domain/models"
	domsvc "CorpFin360/internal/domain/service"
	"CorpFin360/internal/engine"
	"CorpFin360/pkg/config"
)

type HTTPValuationPredictor struct{ base *ServiceBase }

func NewHTTPValuationPredictor(cfg *config.Config) *HTTPValuationPredictor {
	return &HTTPValuationPredictor{base: NewServiceBase(cfg)}
}

type valuationReq struct {
	Features map[string]float64 `json:"features"`
}

type valuationResp struct {
	Predictions map[string]float64 `json:"predictions"`
	BestModel   string             `json:"best_model"`
}

func (s *HTTPValuationPredictor) Predict(ctx context.Context, features map[string]float64) (models.ValuationScores, error) {
	var result models.ValuationScores
	var vr valuationResp
	if err := s.base.postJSON(ctx, "/valuation/predict", valuationReq{Features: features}, &vr); err != nil {
		return result, err
	}
	if len(vr.Predictions) == 0 {
		return result, engine.NewError(engine.ErrMissingScore, "predictor returned no valuations")
	}
	for name, v := range vr.Predictions {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return result, engine.NewErrorf(engine.ErrPredictorOutputInvalid, "model %s returned a non-numeric valuation", name)
		}
	}
	result.Predictions = vr.Predictions
	result.BestModel = vr.BestModel
	return result, nil
}

var _ domsvc.ValuationPredictor = (*HTTPValuationPredictor)(nil)
