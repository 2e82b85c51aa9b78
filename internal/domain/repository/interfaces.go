package repository

import (
	"context"

	"StarSpin/internal/domain/models"
)

// Sink receives one result record per processed target.
type Sink interface {
	Store(ctx context.Context, res *models.RotationResult) error
	Close() error
}

// Store is a queryable result backend (ClickHouse).
type Store interface {
	Sink
	Init(ctx context.Context) error
	Get(ctx context.Context, target string) (*models.ResultRow, error)
	List(ctx context.Context, harmType string, limit, offset int) ([]models.ResultRow, int64, error)
	Health(ctx context.Context) error
}

// Publisher pushes result records to a message bus for downstream consumers.
type Publisher interface {
	Publish(ctx context.Context, res *models.RotationResult) error
	Close() error
}

// Source reads light curves from survey files.
type Source interface {
	// Read returns the light curve for one extension/aperture of a file.
	Read(ctx context.Context, path string, ext int) (models.LightCurve, error)
	// Apertures returns every candidate aperture extraction of a file,
	// or a single candidate for formats without alternate apertures.
	Apertures(ctx context.Context, path string) ([]models.ApertureCandidate, error)
}

// Checkpoints tracks which targets a batch run has already completed.
type Checkpoints interface {
	Done(ctx context.Context, target string) (bool, error)
	MarkDone(ctx context.Context, target string) error
}

// Metrics records pipeline observability signals.
type Metrics interface {
	RecordTarget(outcome string)
	RecordError(kind string)
	RecordLatency(op string, seconds float64)
	RecordSignificantPeaks(n int)
	RecordHarmonic(tag string)
}
