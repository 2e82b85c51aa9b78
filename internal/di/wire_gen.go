// Code generated by Wire. DO NOT EDIT.

//go:generate go run -mod=mod github.com/google/wire/cmd/wire
//go:build !wireinject
// +build !wireinject

package di

import (
	"StarSpin/pkg/config"
	"StarSpin/pkg/server"
)

// Injectors from wire.go:

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	logger, err := ProvideLogger(cfg)
	if err != nil {
		return nil, err
	}
	source := ProvideSource(cfg)
	scanner := ProvideScanner()
	apertureSelector := ProvideSelector(cfg, scanner, logger)
	classifier := ProvideClassifier(cfg)
	metrics := ProvideMetrics()
	analyzer := ProvideAnalyzer(source, scanner, apertureSelector, classifier, metrics, logger, cfg)
	sink, err := ProvideSink(cfg)
	if err != nil {
		return nil, err
	}
	client, err := ProvideClickHouseClient(cfg)
	if err != nil {
		return nil, err
	}
	store, err := ProvideStore(client, cfg)
	if err != nil {
		return nil, err
	}
	producer, err := ProvideKafkaProducer(cfg)
	if err != nil {
		return nil, err
	}
	publisher := ProvidePublisher(producer, cfg)
	resultProcessor := ProvideResultProcessor(sink, store, publisher, metrics, cfg)
	resultBuffer := ProvideResultBuffer(resultProcessor, metrics)
	checkpoints, err := ProvideCheckpoints(cfg)
	if err != nil {
		return nil, err
	}
	batchRunner := ProvideBatchRunner(analyzer, resultBuffer, checkpoints, metrics, logger, cfg)
	consumer, err := ProvideKafkaConsumer(cfg)
	if err != nil {
		return nil, err
	}
	kafkaTargetsHandler := ProvideKafkaTargetsHandler(analyzer, resultBuffer, metrics, cfg)
	handler := ProvideResultsHandler(logger, store, source, cfg)
	app := ProvideApp(cfg, logger, batchRunner, resultBuffer, resultProcessor, consumer, kafkaTargetsHandler, client, producer, handler)
	return app, nil
}
