//go:build wireinject
// +build wireinject

package di

import (
	"StarSpin/pkg/config"
	"StarSpin/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		ProvideLogger,
		ProvideMetrics,

		// Infrastructure clients
		ProvideClickHouseClient,
		ProvideKafkaProducer,
		ProvideKafkaConsumer,
		ProvideCheckpoints,

		// Data access
		ProvideSource,
		ProvideSink,
		ProvideStore,
		ProvidePublisher,

		// Analysis services
		ProvideScanner,
		ProvideSelector,
		ProvideClassifier,

		// Use cases
		ProvideAnalyzer,
		ProvideResultProcessor,
		ProvideResultBuffer,
		ProvideBatchRunner,
		ProvideKafkaTargetsHandler,

		// HTTP API
		ProvideResultsHandler,

		// Application server
		ProvideApp,
	)
	return &server.App{}, nil
}
