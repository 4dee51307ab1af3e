package usecase

import (
	"context"

	"CorpFin360/internal/domain/models"
	domrepo "CorpFin360/internal/domain/repository"
)

// QuoteSink receives live quotes; the market feed store implements it.
type QuoteSink interface {
	Apply(q *models.Quote)
}

// FeedCollector pumps quotes from the market stream into the snapshot store
// so trend requests can run against fresh prices.
type FeedCollector struct {
	stream  domrepo.QuoteStream
	sink    QuoteSink
	symbols []string
	metrics domrepo.Metrics
}

func NewFeedCollector(stream domrepo.QuoteStream, sink QuoteSink, symbols []string, metrics domrepo.Metrics) *FeedCollector {
	return &FeedCollector{stream: stream, sink: sink, symbols: symbols, metrics: metrics}
}

// IsConnected returns true if the market stream is connected.
func (c *FeedCollector) IsConnected() bool {
	return c.stream.IsConnected()
}

func (c *FeedCollector) Start(ctx context.Context) error {
	if err := c.stream.Connect(ctx); err != nil {
		return err
	}
	if err := c.stream.Subscribe(ctx, c.symbols); err != nil {
		return err
	}
	qCh, errCh := c.stream.Read(ctx)
	go c.consume(ctx, qCh, errCh)
	return nil
}

func (c *FeedCollector) consume(ctx context.Context, qCh <-chan *models.Quote, errCh <-chan error) {
	for {
		select {
		case <-ctx.Done():
			return
		case err := <-errCh:
			if err != nil {
				if c.metrics != nil {
					c.metrics.RecordError("feed_stream")
				}
				_ = c.stream.Reconnect(ctx)
			}
		case q := <-qCh:
			if q == nil {
				continue
			}
			c.sink.Apply(q)
		}
	}
}

func (c *FeedCollector) Stop() error { return c.stream.Close() }
