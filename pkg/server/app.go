package server

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	mid "StarSpin/internal/middleware"
	"StarSpin/internal/usecase"
	pkgch "StarSpin/pkg/clickhouse"
	"StarSpin/pkg/config"
	xhttp "StarSpin/pkg/http"
	pkgkafka "StarSpin/pkg/kafka"
	applogger "StarSpin/pkg/logger"
)

var errNoConsumer = errors.New("worker mode requires a kafka consumer")

// App encapsulates the entire application lifecycle. Batch mode runs the
// target list to completion and exits; worker mode consumes targets from
// Kafka until interrupted.
type App struct {
	cfg         *config.Config
	log         *applogger.Logger
	batch       *usecase.BatchRunner
	buffer      *mid.ResultBuffer
	processor   *usecase.ResultProcessor
	consumer    *pkgkafka.Consumer
	kh          pkgkafka.MessageHandler
	chClient    *pkgch.Client
	httpServer  *xhttp.Server
	httpHandler xhttp.Handler
}

// New creates a new App instance with all dependencies.
func New(
	cfg *config.Config,
	log *applogger.Logger,
	batch *usecase.BatchRunner,
	buffer *mid.ResultBuffer,
	processor *usecase.ResultProcessor,
	consumer *pkgkafka.Consumer,
	kh pkgkafka.MessageHandler,
	chClient *pkgch.Client,
) *App {
	return &App{
		cfg:       cfg,
		log:       log,
		batch:     batch,
		buffer:    buffer,
		processor: processor,
		consumer:  consumer,
		kh:        kh,
		chClient:  chClient,
	}
}

// SetHTTPHandler allows DI to inject an HTTP handler.
func (a *App) SetHTTPHandler(h xhttp.Handler) { a.httpHandler = h }

// Run starts the application. Batch mode returns when the target list is
// exhausted; worker mode blocks until interrupted.
func (a *App) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a.buffer.Start(ctx)

	// The HTTP server exposes /metrics always, and the results API when a
	// queryable store is configured.
	if a.cfg.Server.Enabled || a.cfg.Metrics.Enabled {
		a.httpServer = xhttp.NewServer(a.httpHandler,
			xhttp.WithPort(a.cfg.Server.Port),
			xhttp.WithTimeouts(a.cfg.Server.ReadTimeout, a.cfg.Server.WriteTimeout, a.cfg.Server.ShutdownTimeout),
		)
		if err := a.httpServer.Start(); err != nil {
			a.log.Error("http server start error", applogger.Error(err))
			return err
		}
		a.log.Info("http server started", applogger.Int("port", a.cfg.Server.Port))
	}

	var runErr error
	switch a.cfg.Mode {
	case "worker":
		runErr = a.runWorker(ctx)
	default:
		runErr = a.runBatch(ctx)
	}

	if err := a.shutdown(ctx); err != nil && runErr == nil {
		runErr = err
	}
	return runErr
}

// runBatch loads this worker's slice of the target list and processes it.
func (a *App) runBatch(ctx context.Context) error {
	targets, err := usecase.LoadTargets(a.cfg.Data.ListFile, a.cfg.Data.Dir, a.cfg.Data.Format)
	if err != nil {
		return err
	}

	start, end := usecase.Partition(a.cfg.Batch.WorkerIndex, a.cfg.Batch.WorkerCount, len(targets))
	a.log.Info("batch starting",
		applogger.Int("targets", len(targets)),
		applogger.Int("owned", end-start),
		applogger.Int("worker_index", a.cfg.Batch.WorkerIndex),
		applogger.Int("worker_count", a.cfg.Batch.WorkerCount),
		applogger.Int("pool", a.cfg.Batch.Workers),
	)

	_, err = a.batch.Run(ctx, targets[start:end])
	return err
}

// runWorker consumes target announcements until interrupted.
func (a *App) runWorker(ctx context.Context) error {
	if a.consumer == nil || a.kh == nil {
		return errNoConsumer
	}
	a.consumer.RegisterHandler(a.kh)
	go func() {
		if err := a.consumer.Start(); err != nil {
			a.log.Error("kafka consumer error", applogger.Error(err))
		}
	}()
	a.log.Info("kafka consumer started", applogger.String("topic", a.kh.Topic()))

	<-ctx.Done()
	a.log.Info("shutdown signal received")
	return nil
}

// shutdown gracefully stops all services.
func (a *App) shutdown(ctx context.Context) error {
	a.log.Info("shutting down...")

	if a.consumer != nil {
		if err := a.consumer.Stop(ctx); err != nil {
			a.log.Warn("kafka consumer stop error", applogger.Error(err))
		}
	}

	// Stop the retry buffer before closing its downstream backends.
	a.buffer.Stop()
	if a.processor != nil {
		a.processor.Close()
	}

	if a.httpServer != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := a.httpServer.Stop(shutdownCtx); err != nil {
			a.log.Error("http shutdown error", applogger.Error(err))
		}
	}

	if a.chClient != nil {
		if err := a.chClient.Close(); err != nil {
			a.log.Warn("clickhouse close error", applogger.Error(err))
		}
	}

	a.log.RemoveCollector()
	a.log.Info("shutdown complete")
	return nil
}
