package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	analyses      *prometheus.CounterVec
	errorsTotal   *prometheus.CounterVec
	predictorCall *prometheus.HistogramVec
	retriesTotal  *prometheus.CounterVec
}

// New creates a new Prometheus metrics recorder.
func New() *Recorder {
	return &Recorder{
		analyses: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "corpfin_analyses_total",
				Help: "Total number of completed analyses",
			},
			[]string{"kind", "category"},
		),
		errorsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "corpfin_errors_total",
				Help: "Total number of errors encountered",
			},
			[]string{"type"},
		),
		predictorCall: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "corpfin_predictor_call_duration_seconds",
				Help:    "Duration of external predictor calls in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"model"},
		),
		retriesTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "corpfin_predictor_retries_total",
				Help: "Total number of retried predictor calls",
			},
			[]string{"model"},
		),
	}
}

// RecordAnalysis records a completed analysis by kind and resulting category.
func (r *Recorder) RecordAnalysis(kind, category string) {
	r.analyses.WithLabelValues(kind, category).Inc()
}

// RecordError records an error occurrence.
func (r *Recorder) RecordError(kind string) {
	r.errorsTotal.WithLabelValues(kind).Inc()
}

// RecordPredictorCall records the duration of one predictor call.
func (r *Recorder) RecordPredictorCall(model string, seconds float64) {
	r.predictorCall.WithLabelValues(model).Observe(seconds)
}

// RecordRetry records a retried predictor call.
func (r *Recorder) RecordRetry(model string) {
	r.retriesTotal.WithLabelValues(model).Inc()
}
