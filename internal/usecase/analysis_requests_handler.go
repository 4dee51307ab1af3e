package usecase

import (
	"context"
	"encoding/json"

	"CorpFin360/internal/domain/models"
	domrepo "CorpFin360/internal/domain/repository"
	"CorpFin360/internal/engine"
)

// AnalysisRequestsHandler consumes queued analysis requests from Kafka and
// runs them through the analyzer. Results land in the history store and on
// the completed-analyses topic via the analyzer's own side effects.
type AnalysisRequestsHandler struct {
	topic    string
	analyzer *Analyzer
	metrics  domrepo.Metrics
}

func NewAnalysisRequestsHandler(topic string, analyzer *Analyzer, metrics domrepo.Metrics) *AnalysisRequestsHandler {
	return &AnalysisRequestsHandler{topic: topic, analyzer: analyzer, metrics: metrics}
}

func (h *AnalysisRequestsHandler) Topic() string { return h.topic }

// incoming message schema: {kind, name, financials, symbol, horizon}
func (h *AnalysisRequestsHandler) Handle(ctx context.Context, b []byte) error {
	var m struct {
		Kind       string                   `json:"kind"`
		Name       string                   `json:"name"`
		Financials models.CompanyFinancials `json:"financials"`
		Symbol     string                   `json:"symbol"`
		Horizon    int                      `json:"horizon"`
	}
	if err := json.Unmarshal(b, &m); err != nil {
		h.countError("consumer_unmarshal")
		return err
	}

	var err error
	switch m.Kind {
	case "health":
		_, err = h.analyzer.AssessFinancialHealth(ctx, m.Financials)
	case "valuation":
		_, err = h.analyzer.EstimateValuation(ctx, m.Financials, 0, nil)
	case "trend":
		horizon := m.Horizon
		if horizon <= 0 {
			horizon = 5
		}
		_, err = h.analyzer.AnalyzeTrend(ctx, m.Symbol, nil, nil, horizon)
	default:
		h.countError("consumer_unknown_kind")
		return nil // unknown kinds are dropped, not redelivered
	}
	if err != nil {
		h.countError("consumer_analysis")
		// permanent failures must not cycle through the DLQ retry loop
		if !engine.IsRetryable(err) {
			return nil
		}
		return err
	}
	return nil
}

func (h *AnalysisRequestsHandler) countError(kind string) {
	if h.metrics != nil {
		h.metrics.RecordError(kind)
	}
}
