package usecase

import (
	"context"
	"fmt"
	"time"

	"StarSpin/internal/domain/models"
	drepo "StarSpin/internal/domain/repository"
)

// ResultProcessor routes classification results to the configured backend.
type ResultProcessor struct {
	sink    drepo.Sink
	store   drepo.Store
	pub     drepo.Publisher
	metrics drepo.Metrics
	backend string
}

// NewResultProcessor creates a new ResultProcessor instance. Only the
// backend matching the configuration needs to be non-nil.
func NewResultProcessor(
	sink drepo.Sink,
	store drepo.Store,
	pub drepo.Publisher,
	metrics drepo.Metrics,
	backend string,
) *ResultProcessor {
	return &ResultProcessor{
		sink:    sink,
		store:   store,
		pub:     pub,
		metrics: metrics,
		backend: backend,
	}
}

// Process stores or publishes a single result.
func (p *ResultProcessor) Process(ctx context.Context, res *models.RotationResult) error {
	if res == nil {
		return fmt.Errorf("result is nil")
	}

	start := time.Now()
	var err error

	switch p.backend {
	case "csv":
		err = p.sink.Store(ctx, res)
	case "clickhouse":
		err = p.store.Store(ctx, res)
	case "kafka":
		err = p.pub.Publish(ctx, res)
	default:
		err = fmt.Errorf("unknown backend: %s", p.backend)
	}

	if err != nil {
		p.metrics.RecordError("process")
		return fmt.Errorf("process result: %w", err)
	}

	p.metrics.RecordLatency("process", time.Since(start).Seconds())
	return nil
}

// Close closes underlying resources if available.
func (p *ResultProcessor) Close() {
	if p.sink != nil {
		_ = p.sink.Close()
	}
	if p.store != nil {
		_ = p.store.Close()
	}
	if p.pub != nil {
		_ = p.pub.Close()
	}
}
