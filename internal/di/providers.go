package di

import (
	"context"
	"fmt"
	"strings"

	"github.com/segmentio/kafka-go"

	"CorpFin360/internal/domain/repository"
	domsvc "CorpFin360/internal/domain/service"
	internalrepo "CorpFin360/internal/repository"
	"CorpFin360/internal/service/marketfeed"
	"CorpFin360/internal/service/ratelimit"
	"CorpFin360/internal/services/predictor"
	"CorpFin360/internal/usecase"
	"CorpFin360/pkg/cache"
	pkgch "CorpFin360/pkg/clickhouse"
	"CorpFin360/pkg/config"
	pkgkafka "CorpFin360/pkg/kafka"
	"CorpFin360/pkg/logger"
	"CorpFin360/pkg/metrics"
	"CorpFin360/pkg/server"
	"CorpFin360/pkg/util"
)

// ProvideLogger creates the application logger.
func ProvideLogger(cfg *config.Config) (*logger.Logger, error) {
	level := "info"
	if cfg.Environment == "development" {
		level = "debug"
	}
	return logger.New(&logger.Config{Level: level, Format: "console", Output: "stdout"})
}

// ProvideClickHouseClient creates a ClickHouse client.
func ProvideClickHouseClient(cfg *config.Config) (*pkgch.Client, error) {
	if cfg.ClickHouse.Host == "" {
		return nil, nil // history persistence disabled
	}
	client, err := pkgch.NewClient(
		pkgch.WithHost(cfg.ClickHouse.Host),
		pkgch.WithPort(cfg.ClickHouse.Port),
		pkgch.WithDatabase(cfg.ClickHouse.Database),
		pkgch.WithCredentials(cfg.ClickHouse.User, cfg.ClickHouse.Password),
		pkgch.WithMaxConnections(10, 5),
		pkgch.WithHTTP(cfg.ClickHouse.UseHTTP),
		pkgch.WithAsyncInsert(cfg.ClickHouse.AsyncInsert, cfg.ClickHouse.WaitForAsync),
		pkgch.WithTimeouts(cfg.ClickHouse.DialTimeout, cfg.ClickHouse.ReadTimeout, cfg.ClickHouse.WriteTimeout),
		pkgch.WithMaxExecutionTime(cfg.ClickHouse.MaxExecutionTime),
	)
	if err != nil {
		return nil, fmt.Errorf("clickhouse client: %w", err)
	}
	return client, nil
}

// ProvideKafkaProducer creates a Kafka producer.
func ProvideKafkaProducer(cfg *config.Config) (*pkgkafka.Producer, error) {
	if len(cfg.Kafka.Brokers) == 0 {
		return nil, nil // event publishing disabled
	}
	producer, err := pkgkafka.NewProducer(
		pkgkafka.WithBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithCompression(cfg.Kafka.Compression),
		pkgkafka.WithRequiredAcks(cfg.Kafka.RequiredAcks),
		pkgkafka.WithBatchSize(cfg.Kafka.Producer.BatchSize),
		pkgkafka.WithBatchBytes(cfg.Kafka.Producer.BatchBytes),
		pkgkafka.WithBatchTimeout(cfg.Kafka.Producer.Linger),
		pkgkafka.WithTimeouts(cfg.Kafka.Producer.WriteTimeout, cfg.Kafka.Producer.ReadTimeout),
		pkgkafka.WithMaxAttempts(cfg.Kafka.Producer.MaxAttempts),
		pkgkafka.WithAsync(cfg.Kafka.Producer.Async),
		pkgkafka.WithHashByKey(true),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}
	return producer, nil
}

// ProvideKafkaConsumer creates a Kafka consumer configured from YAML.
func ProvideKafkaConsumer(cfg *config.Config) (*pkgkafka.Consumer, error) {
	if len(cfg.Kafka.Brokers) == 0 || cfg.Kafka.Consumer.GroupID == "" {
		return nil, nil // queued analysis requests disabled
	}
	consumer, err := pkgkafka.NewConsumer(
		pkgkafka.WithConsumerBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithConsumerGroupID(cfg.Kafka.Consumer.GroupID),
		pkgkafka.WithConsumerWorkers(cfg.Kafka.Consumer.Workers),
		pkgkafka.WithConsumerBufferSize(cfg.Kafka.Consumer.BufferSize),
		pkgkafka.WithConsumerRetry(cfg.Kafka.Consumer.RetryMax, cfg.Kafka.Consumer.BackoffMin, cfg.Kafka.Consumer.BackoffMax),
		pkgkafka.WithConsumerDLQ(cfg.Kafka.Consumer.DLQTopic),
		pkgkafka.WithConsumerFetch(cfg.Kafka.Consumer.MinBytes, cfg.Kafka.Consumer.MaxBytes),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka consumer: %w", err)
	}
	return consumer, nil
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() repository.Metrics {
	return metrics.New()
}

// ProvideHistoryStore creates ClickHouse-backed analysis history.
func ProvideHistoryStore(chClient *pkgch.Client, cfg *config.Config) repository.HistoryStore {
	if chClient == nil {
		return nil
	}
	return internalrepo.NewClickHouseHistory(chClient, cfg.ClickHouse.Database+".analysis_history")
}

// ProvidePublisher creates the Kafka publisher for completed analyses.
func ProvidePublisher(producer *pkgkafka.Producer, cfg *config.Config) repository.Publisher {
	if producer == nil || cfg.Kafka.Topic == "" {
		return nil
	}
	return internalrepo.NewKafkaPublisher(producer, cfg.Kafka.Topic)
}

// ProvideCache creates the layered result cache when Redis is enabled.
func ProvideCache(cfg *config.Config) (cache.Service, error) {
	if !cfg.Cache.Redis.Enabled {
		return nil, nil
	}
	host := cfg.Cache.Redis.Addr
	port := 6379
	if i := strings.LastIndex(host, ":"); i >= 0 {
		port = util.ParseIntDefault(host[i+1:], 6379)
		host = host[:i]
	}
	redisCache, err := cache.NewRedisCache(
		cache.WithRedisHost(host),
		cache.WithRedisPort(port),
		cache.WithRedisPassword(cfg.Cache.Redis.Password),
		cache.WithRedisDB(cfg.Cache.Redis.DB),
		cache.WithRedisPrefix("corpfin"),
	)
	if err != nil {
		return nil, fmt.Errorf("redis cache: %w", err)
	}
	return cache.NewLayeredCache(redisCache), nil
}

// ProvideQuoteStream creates the market data WebSocket stream.
func ProvideQuoteStream(cfg *config.Config) repository.QuoteStream {
	if cfg.MarketFeed.WebSocketURL == "" {
		return nil
	}
	return marketfeed.New(
		cfg.MarketFeed.APIKey,
		cfg.MarketFeed.WebSocketURL,
		cfg.MarketFeed.ReconnectDelay,
		cfg.MarketFeed.PingInterval,
	)
}

// ProvideSnapshotStore creates the latest-snapshot store for the live feed.
func ProvideSnapshotStore() *marketfeed.Store {
	return marketfeed.NewStore(0)
}

// ProvideFeedCollector wires the quote stream into the snapshot store.
func ProvideFeedCollector(stream repository.QuoteStream, store *marketfeed.Store, m repository.Metrics, cfg *config.Config) *usecase.FeedCollector {
	if stream == nil {
		return nil
	}
	return usecase.NewFeedCollector(stream, store, cfg.MarketFeed.Symbols, m)
}

// ProvidePredictors creates the HTTP clients for the external model service.
func ProvidePredictors(cfg *config.Config) (domsvc.HealthPredictor, domsvc.ValuationPredictor, domsvc.TrendPredictor, domsvc.StatusReporter) {
	return predictor.NewHTTPHealthPredictor(cfg),
		predictor.NewHTTPValuationPredictor(cfg),
		predictor.NewHTTPTrendPredictor(cfg),
		predictor.NewHTTPStatusReporter(cfg)
}

// ProvideAnalyzer assembles the analytics pipeline with its side effects.
func ProvideAnalyzer(
	cfg *config.Config,
	log *logger.Logger,
	health domsvc.HealthPredictor,
	valuation domsvc.ValuationPredictor,
	trend domsvc.TrendPredictor,
	status domsvc.StatusReporter,
	c cache.Service,
	pub repository.Publisher,
	hist repository.HistoryStore,
	m repository.Metrics,
	feed *marketfeed.Store,
) *usecase.Analyzer {
	opts := []usecase.AnalyzerOption{usecase.WithMetrics(m)}
	if c != nil {
		opts = append(opts, usecase.WithCache(c, cfg.Cache.TTL.Health, cfg.Cache.TTL.Valuation, cfg.Cache.TTL.Trend))
	}
	if pub != nil {
		opts = append(opts, usecase.WithPublisher(pub))
	}
	if hist != nil {
		opts = append(opts, usecase.WithHistory(hist))
	}
	if feed != nil {
		opts = append(opts, usecase.WithFeed(feed))
	}
	return usecase.NewAnalyzer(cfg, log, health, valuation, trend, status, opts...)
}

// ProvideRateLimiter creates the per-client token bucket limiter.
func ProvideRateLimiter(cfg *config.Config) *ratelimit.Limiter {
	if !cfg.RateLimit.Enabled {
		return nil
	}
	return ratelimit.New()
}

// ProvideAnalysisRequestsHandler registers the handler for queued requests.
func ProvideAnalysisRequestsHandler(analyzer *usecase.Analyzer, m repository.Metrics, cfg *config.Config) *usecase.AnalysisRequestsHandler {
	if cfg.Kafka.Consumer.GroupID == "" || cfg.Kafka.Topic == "" {
		return nil
	}
	return usecase.NewAnalysisRequestsHandler(cfg.Kafka.Topic+".requests", analyzer, m)
}

// ProvideApp creates the application server.
func ProvideApp(
	cfg *config.Config,
	log *logger.Logger,
	analyzer *usecase.Analyzer,
	collector *usecase.FeedCollector,
	consumer *pkgkafka.Consumer,
	rh *usecase.AnalysisRequestsHandler,
	chClient *pkgch.Client,
	hist repository.HistoryStore,
	pub repository.Publisher,
	limiter *ratelimit.Limiter,
) *server.App {
	if consumer != nil {
		consumer.WithConsumerHook(pkgkafka.HookFuncs{
			Err: func(_ context.Context, topic string, _ kafka.Message, _ []byte, err error) {
				log.Warn("queued request failed",
					logger.String("topic", topic), logger.Error(err))
			},
		})
	}
	return server.New(cfg, log, analyzer, collector, consumer, rh, chClient, hist, pub, limiter)
}
