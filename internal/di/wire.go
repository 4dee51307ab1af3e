//go:build wireinject
// +build wireinject

package di

import (
	"CorpFin360/pkg/config"
	"CorpFin360/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		// Ambient
		ProvideLogger,
		ProvideMetrics,

		// Infrastructure clients
		ProvideClickHouseClient,
		ProvideKafkaProducer,
		ProvideKafkaConsumer,
		ProvideCache,

		// Repositories
		ProvideHistoryStore,
		ProvidePublisher,
		ProvideQuoteStream,
		ProvideSnapshotStore,

		// Predictor gateway
		ProvidePredictors,

		// Use cases
		ProvideAnalyzer,
		ProvideFeedCollector,
		ProvideAnalysisRequestsHandler,
		ProvideRateLimiter,

		// Application server
		ProvideApp,
	)
	return &server.App{}, nil
}
