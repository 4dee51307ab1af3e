package repository

import (
	"context"
	"time"

	"CorpFin360/internal/domain/models"
)

type QuoteStream interface {
	Connect(ctx context.Context) error
	Subscribe(ctx context.Context, symbols []string) error
	Read(ctx context.Context) (<-chan *models.Quote, <-chan error)
	Reconnect(ctx context.Context) error
	Close() error
	IsConnected() bool
}

type Publisher interface {
	Publish(ctx context.Context, rec *models.AnalysisRecord) error
	Close() error
}

type HistoryStore interface {
	Init(ctx context.Context) error // ensure tables, health checks
	Store(ctx context.Context, rec *models.AnalysisRecord) error
	Query(ctx context.Context, subject string, from, to time.Time, limit int) ([]*models.AnalysisRecord, error)
	Health(ctx context.Context) error // ping
	Close() error
}

type Metrics interface {
	RecordAnalysis(kind, category string)
	RecordError(kind string)
	RecordPredictorCall(model string, seconds float64)
	RecordRetry(model string)
}
