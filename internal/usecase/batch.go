package usecase

import (
	"context"
	"errors"
	"sync"
	"time"

	"StarSpin/internal/domain/models"
	drepo "StarSpin/internal/domain/repository"
	applogger "StarSpin/pkg/logger"
)

// TargetAnalyzer produces a classification for one target.
type TargetAnalyzer interface {
	Analyze(ctx context.Context, target models.Target) (*models.RotationResult, error)
}

// ResultHandler consumes one finished classification.
type ResultHandler interface {
	Process(ctx context.Context, res *models.RotationResult) error
}

// TargetFailure records one target that could not be processed.
type TargetFailure struct {
	Target string
	Err    error
}

// BatchReport summarizes one batch run.
type BatchReport struct {
	Processed int
	Skipped   int
	Failures  []TargetFailure
	Elapsed   time.Duration
}

// BatchRunner fans a target list out over a worker pool. A failing target
// is recorded and skipped, never fatal to the run; checkpointed targets
// are not re-processed.
type BatchRunner struct {
	analyzer    TargetAnalyzer
	processor   ResultHandler
	checkpoints drepo.Checkpoints
	metrics     drepo.Metrics
	log         *applogger.Logger
	workers     int
}

// NewBatchRunner creates a batch runner with the given pool size.
func NewBatchRunner(
	analyzer TargetAnalyzer,
	processor ResultHandler,
	checkpoints drepo.Checkpoints,
	metrics drepo.Metrics,
	log *applogger.Logger,
	workers int,
) *BatchRunner {
	if workers < 1 {
		workers = 1
	}
	return &BatchRunner{
		analyzer:    analyzer,
		processor:   processor,
		checkpoints: checkpoints,
		metrics:     metrics,
		log:         log,
		workers:     workers,
	}
}

// Run processes every target in the slice. It returns early only when the
// context is canceled; per-target errors end up in the report.
func (r *BatchRunner) Run(ctx context.Context, targets []models.Target) (*BatchReport, error) {
	start := time.Now()
	report := &BatchReport{}

	jobs := make(chan models.Target)
	var mu sync.Mutex
	var wg sync.WaitGroup

	for i := 0; i < r.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for target := range jobs {
				outcome := r.runOne(ctx, target)

				mu.Lock()
				switch {
				case outcome == nil:
					report.Processed++
				case outcome.Err == errSkipped:
					report.Skipped++
				default:
					report.Failures = append(report.Failures, *outcome)
				}
				mu.Unlock()
			}
		}()
	}

	var ctxErr error
feed:
	for _, target := range targets {
		if err := ctx.Err(); err != nil {
			ctxErr = err
			break feed
		}
		select {
		case jobs <- target:
		case <-ctx.Done():
			ctxErr = ctx.Err()
			break feed
		}
	}
	close(jobs)
	wg.Wait()

	report.Elapsed = time.Since(start)
	r.log.Info("batch finished",
		applogger.Int("processed", report.Processed),
		applogger.Int("skipped", report.Skipped),
		applogger.Int("failed", len(report.Failures)),
		applogger.Duration("elapsed", report.Elapsed),
	)
	for _, f := range report.Failures {
		r.log.Error("target failed",
			applogger.String("target", f.Target),
			applogger.Error(f.Err),
		)
	}
	return report, ctxErr
}

var errSkipped = errors.New("target already done")

// runOne returns nil on success, a skip marker for checkpointed targets,
// and a populated failure otherwise.
func (r *BatchRunner) runOne(ctx context.Context, target models.Target) *TargetFailure {
	done, err := r.checkpoints.Done(ctx, target.ID)
	if err != nil {
		r.metrics.RecordError("checkpoint")
		return &TargetFailure{Target: target.ID, Err: err}
	}
	if done {
		r.metrics.RecordTarget("skipped")
		return &TargetFailure{Target: target.ID, Err: errSkipped}
	}

	res, err := r.analyzer.Analyze(ctx, target)
	if err != nil {
		r.metrics.RecordTarget("failed")
		return &TargetFailure{Target: target.ID, Err: err}
	}

	if err := r.processor.Process(ctx, res); err != nil {
		r.metrics.RecordTarget("failed")
		return &TargetFailure{Target: target.ID, Err: err}
	}

	if err := r.checkpoints.MarkDone(ctx, target.ID); err != nil {
		// The result is already stored; log and continue.
		r.log.Warn("checkpoint mark failed",
			applogger.String("target", target.ID),
			applogger.Error(err),
		)
	}
	r.metrics.RecordTarget("processed")
	return nil
}
