package predictor

import (
	"context"

	"CorpFin360/internal/domain/models"
	domsvc "CorpFin360/internal/domain/service"
	"CorpFin360/pkg/config"
)

type HTTPStatusReporter struct{ base *ServiceBase }

func NewHTTPStatusReporter(cfg *config.Config) *HTTPStatusReporter {
	return &HTTPStatusReporter{base: NewServiceBase(cfg)}
}

type statusResp struct {
	Models  map[string]bool `json:"models"`
	Version string          `json:"version"`
}

// Status probes the model service. An unreachable service is reported as
// unavailable rather than an error so health endpoints can render it.
func (s *HTTPStatusReporter) Status(ctx context.Context) (models.PredictorStatus, error) {
	var sr statusResp
	if err := s.base.getJSON(ctx, "/status", &sr); err != nil {
		return models.PredictorStatus{Available: false}, nil
	}
	return models.PredictorStatus{
		Available: true,
		Models:    sr.Models,
		Version:   sr.Version,
	}, nil
}

var _ domsvc.StatusReporter = (*HTTPStatusReporter)(nil)
