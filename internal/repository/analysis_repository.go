package repository

import (
	"context"
	"fmt"
	"time"

	"CorpFin360/internal/domain/models"
	"CorpFin360/internal/domain/repository"
	pkgch "CorpFin360/pkg/clickhouse"
	pkgkafka "CorpFin360/pkg/kafka"
)

// analysisSchema creates the history table when missing.
var analysisSchema = []string{
	`CREATE TABLE IF NOT EXISTS analysis_history (
		generated_at DateTime,
		kind LowCardinality(String),
		subject String,
		score Float64,
		category LowCardinality(String)
	) ENGINE = MergeTree()
	ORDER BY (kind, generated_at)`,
}

// ClickHouseHistory implements HistoryStore for ClickHouse.
type ClickHouseHistory struct {
	client *pkgch.Client
	table  string
}

// NewClickHouseHistory creates ClickHouse-backed analysis history.
func NewClickHouseHistory(client *pkgch.Client, table string) repository.HistoryStore {
	if table == "" {
		table = "analysis_history"
	}
	return &ClickHouseHistory{client: client, table: table}
}

func (s *ClickHouseHistory) Init(ctx context.Context) error {
	return s.client.InitSchema(ctx, analysisSchema)
}

func (s *ClickHouseHistory) Store(ctx context.Context, rec *models.AnalysisRecord) error {
	q := fmt.Sprintf("INSERT INTO %s (generated_at, kind, subject, score, category) VALUES (?, ?, ?, ?, ?)", s.table)
	_, err := s.client.DB().ExecContext(ctx, q,
		rec.GeneratedAt,
		rec.Kind,
		rec.Subject,
		rec.Score,
		rec.Category,
	)
	return err
}

func (s *ClickHouseHistory) Query(ctx context.Context, subject string, from, to time.Time, limit int) ([]*models.AnalysisRecord, error) {
	q := fmt.Sprintf("SELECT generated_at, kind, subject, score, category FROM %s WHERE subject = ? AND generated_at >= ? AND generated_at <= ? ORDER BY generated_at DESC LIMIT ?", s.table)
	rows, err := s.client.DB().QueryContext(ctx, q, subject, from, to, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var recs []*models.AnalysisRecord
	for rows.Next() {
		var r models.AnalysisRecord
		if err := rows.Scan(&r.GeneratedAt, &r.Kind, &r.Subject, &r.Score, &r.Category); err != nil {
			return nil, err
		}
		recs = append(recs, &r)
	}
	return recs, rows.Err()
}

func (s *ClickHouseHistory) Health(ctx context.Context) error {
	return s.client.Health(ctx)
}

func (s *ClickHouseHistory) Close() error {
	return nil // Managed by pkg
}

// KafkaPublisher implements Publisher for Kafka.
type KafkaPublisher struct {
	producer *pkgkafka.Producer
	topic    string
}

// NewKafkaPublisher creates Kafka publisher for completed analyses.
func NewKafkaPublisher(producer *pkgkafka.Producer, topic string) repository.Publisher {
	return &KafkaPublisher{producer: producer, topic: topic}
}

func (p *KafkaPublisher) Publish(ctx context.Context, rec *models.AnalysisRecord) error {
	return p.producer.Publish(ctx, p.topic, []byte(rec.Kind), map[string]interface{}{
		"kind":         rec.Kind,
		"subject":      rec.Subject,
		"score":        rec.Score,
		"category":     rec.Category,
		"generated_at": rec.GeneratedAt.Unix(),
	})
}

func (p *KafkaPublisher) Close() error {
	if p.producer != nil {
		return p.producer.Close()
	}
	return nil
}
