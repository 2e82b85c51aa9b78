package di

import (
	"context"
	"fmt"
	"time"

	"StarSpin/internal/domain/repository"
	"StarSpin/internal/handler/api"
	mid "StarSpin/internal/middleware"
	internalrepo "StarSpin/internal/repository"
	icache "StarSpin/internal/service/cache"
	"StarSpin/internal/service/lightcurve"
	"StarSpin/internal/services/analytics"
	"StarSpin/internal/services/aperture"
	"StarSpin/internal/services/periodogram"
	"StarSpin/internal/usecase"
	"StarSpin/pkg/checkpoint"
	pkgch "StarSpin/pkg/clickhouse"
	"StarSpin/pkg/config"
	xhttp "StarSpin/pkg/http"
	pkgkafka "StarSpin/pkg/kafka"
	applogger "StarSpin/pkg/logger"
	"StarSpin/pkg/metrics"
	"StarSpin/pkg/server"
	"StarSpin/pkg/util"
)

// ProvideLogger creates the application logger. Development environments
// get console output, everything else structured JSON.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	format := "json"
	if cfg.Environment == "development" {
		format = "console"
	}
	return applogger.New(&applogger.Config{
		Level:  "info",
		Format: format,
		Output: "stdout",
	})
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() repository.Metrics {
	return metrics.New()
}

// ProvideClickHouseClient creates a ClickHouse client when one is
// configured; stays nil otherwise so CSV-only runs need no database.
func ProvideClickHouseClient(cfg *config.Config) (*pkgch.Client, error) {
	if cfg.ClickHouse.Host == "" {
		return nil, nil
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

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := client.InitSchema(ctx, []string{
		"CREATE DATABASE IF NOT EXISTS " + cfg.ClickHouse.Database,
	}); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("clickhouse schema: %w", err)
	}
	return client, nil
}

// ProvideKafkaProducer creates a Kafka producer when brokers are configured.
func ProvideKafkaProducer(cfg *config.Config) (*pkgkafka.Producer, error) {
	if len(cfg.Kafka.Brokers) == 0 {
		return nil, nil
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

// ProvideKafkaConsumer creates a Kafka consumer for worker mode.
func ProvideKafkaConsumer(cfg *config.Config) (*pkgkafka.Consumer, error) {
	if cfg.Mode != "worker" {
		return nil, nil
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

// ProvideSource creates the light-curve reader.
func ProvideSource(cfg *config.Config) repository.Source {
	return lightcurve.NewReader(cfg.Data.Dir, xhttp.NewClient())
}

// ProvideScanner creates the periodogram runner.
func ProvideScanner() aperture.Scanner {
	return periodogram.Runner{}
}

// ProvideSelector creates the aperture selector, nil when disabled.
func ProvideSelector(cfg *config.Config, scanner aperture.Scanner, log *applogger.Logger) usecase.ApertureSelector {
	if !cfg.Aperture.Enabled {
		return nil
	}
	return aperture.NewSelector(scanner, cfg.Aperture.MinPeriod, cfg.Aperture.MaxPeriod, log)
}

// ProvideClassifier creates the peak classifier from search settings.
func ProvideClassifier(cfg *config.Config) *analytics.Classifier {
	return analytics.NewClassifier(
		analytics.WithOrder(cfg.Search.Order),
		analytics.WithSignificance(analytics.SignificanceConfig{
			Scale:     cfg.Search.ThresholdScale,
			MaxPeriod: cfg.Search.MaxSigPeriod,
		}),
	)
}

// ProvideAnalyzer creates the per-target analysis use case.
func ProvideAnalyzer(
	source repository.Source,
	scanner aperture.Scanner,
	selector usecase.ApertureSelector,
	classifier *analytics.Classifier,
	m repository.Metrics,
	log *applogger.Logger,
	cfg *config.Config,
) *usecase.Analyzer {
	opts := periodogram.Options{
		MinPeriod:      cfg.Search.MinPeriod,
		MaxPeriod:      cfg.Search.MaxPeriod,
		Oversample:     float64(cfg.Search.Oversample),
		Bootstrap:      true,
		BootstrapIters: cfg.Search.BootstrapIters,
		Quantile:       cfg.Search.Quantile,
		Seed:           cfg.Search.Seed,
	}
	return usecase.NewAnalyzer(source, scanner, selector, classifier, opts, m, log)
}

// ProvideSink creates the CSV writer for csv output runs. Paths are
// date-stamped, and partition-stamped for multi-worker fleets.
func ProvideSink(cfg *config.Config) (repository.Sink, error) {
	if cfg.Output.Backend != "csv" {
		return nil, nil
	}
	now := time.Now()
	path := util.DateStamp(cfg.Output.Path, now)
	allPeaks := cfg.Output.AllPeaks
	if allPeaks != "" {
		allPeaks = util.DateStamp(allPeaks, now)
	}
	if cfg.Batch.WorkerCount > 1 {
		path = util.PartStamp(path, cfg.Batch.WorkerIndex)
		if allPeaks != "" {
			allPeaks = util.PartStamp(allPeaks, cfg.Batch.WorkerIndex)
		}
	}
	return internalrepo.NewCSVResultWriter(path, allPeaks)
}

// ProvideStore creates the ClickHouse result store when a client exists.
func ProvideStore(chClient *pkgch.Client, cfg *config.Config) (repository.Store, error) {
	if chClient == nil {
		return nil, nil
	}
	store := internalrepo.NewClickHouseResultStore(
		chClient.DB(),
		cfg.ClickHouse.Database+".results",
		cfg.ClickHouse.Database+".result_peaks",
	)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := store.Init(ctx); err != nil {
		return nil, err
	}
	return store, nil
}

// ProvidePublisher creates the Kafka result publisher when a producer exists.
func ProvidePublisher(producer *pkgkafka.Producer, cfg *config.Config) repository.Publisher {
	if producer == nil || cfg.Kafka.Topic == "" {
		return nil
	}
	return internalrepo.NewKafkaResultPublisher(producer, cfg.Kafka.Topic)
}

// ProvideResultProcessor creates the backend router.
func ProvideResultProcessor(
	sink repository.Sink,
	store repository.Store,
	pub repository.Publisher,
	m repository.Metrics,
	cfg *config.Config,
) *usecase.ResultProcessor {
	return usecase.NewResultProcessor(sink, store, pub, m, cfg.Output.Backend)
}

// ProvideResultBuffer wraps the processor with retry buffering.
func ProvideResultBuffer(processor *usecase.ResultProcessor, m repository.Metrics) *mid.ResultBuffer {
	return mid.NewResultBuffer(processor, m, mid.WithBufferSize(2000))
}

// ProvideCheckpoints creates the checkpoint store.
func ProvideCheckpoints(cfg *config.Config) (repository.Checkpoints, error) {
	if cfg.Checkpoint.Backend == "redis" {
		return checkpoint.NewRedisStore(
			checkpoint.WithAddr(cfg.Checkpoint.Redis.Addr),
			checkpoint.WithPassword(cfg.Checkpoint.Redis.Password),
			checkpoint.WithDB(cfg.Checkpoint.Redis.DB),
		)
	}
	return checkpoint.NewMemoryStore(), nil
}

// ProvideBatchRunner creates the batch use case.
func ProvideBatchRunner(
	analyzer *usecase.Analyzer,
	buffer *mid.ResultBuffer,
	cps repository.Checkpoints,
	m repository.Metrics,
	log *applogger.Logger,
	cfg *config.Config,
) *usecase.BatchRunner {
	return usecase.NewBatchRunner(analyzer, buffer, cps, m, log, cfg.Batch.Workers)
}

// ProvideKafkaTargetsHandler registers the handler for the targets topic.
func ProvideKafkaTargetsHandler(
	analyzer *usecase.Analyzer,
	buffer *mid.ResultBuffer,
	m repository.Metrics,
	cfg *config.Config,
) *usecase.KafkaTargetsHandler {
	topic := cfg.Kafka.Consumer.Topic
	if topic == "" {
		topic = "starspin.targets"
	}
	return usecase.NewKafkaTargetsHandler(topic, analyzer, buffer, m, cfg.Data.Format)
}

// ProvideResultsHandler creates the HTTP API handler; nil without a store.
func ProvideResultsHandler(
	log *applogger.Logger,
	store repository.Store,
	source repository.Source,
	cfg *config.Config,
) xhttp.Handler {
	if store == nil {
		return nil
	}
	h := api.NewResultsEchoHandler(log, store, source)
	var bc icache.BytesCache = icache.NewTTLCache()
	if cfg.Checkpoint.Backend == "redis" {
		bc = icache.NewRedisCache(icache.RedisConfig{
			Addr:     cfg.Checkpoint.Redis.Addr,
			Password: cfg.Checkpoint.Redis.Password,
			DB:       cfg.Checkpoint.Redis.DB,
		})
	}
	h.SetCache(bc, cfg.API.CacheTTL)
	if cfg.API.RateLimit.RPS > 0 {
		h.SetRateLimit(float64(cfg.API.RateLimit.Burst), cfg.API.RateLimit.RPS)
	}
	return h
}

// kafkaLogPublisher adapts the producer to the log collector interface.
type kafkaLogPublisher struct {
	p *pkgkafka.Producer
}

func (k kafkaLogPublisher) PublishMessage(ctx context.Context, topic string, payload interface{}) error {
	return k.p.Publish(ctx, topic, nil, payload)
}

// ProvideApp creates the application server.
func ProvideApp(
	cfg *config.Config,
	log *applogger.Logger,
	batch *usecase.BatchRunner,
	buffer *mid.ResultBuffer,
	processor *usecase.ResultProcessor,
	consumer *pkgkafka.Consumer,
	kh *usecase.KafkaTargetsHandler,
	chClient *pkgch.Client,
	producer *pkgkafka.Producer,
	httpHandler xhttp.Handler,
) *server.App {
	if consumer != nil {
		consumer.WithConsumerHook(pkgkafka.NoopHook{})
	}
	// Aggregate repeated errors to a side topic when Kafka is around.
	if producer != nil && cfg.Kafka.Topic != "" {
		log.AddCollector(&applogger.CollectionConfig{
			TimeInterval:   30 * time.Second,
			CountThreshold: 100,
			Topic:          cfg.Kafka.Topic + ".logs",
			Publisher:      kafkaLogPublisher{p: producer},
		})
	}
	app := server.New(cfg, log, batch, buffer, processor, consumer, kh, chClient)
	app.SetHTTPHandler(httpHandler)
	return app
}
