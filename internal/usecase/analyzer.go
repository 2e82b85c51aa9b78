package usecase

import (
	"context"
	"fmt"
	"time"

	"StarSpin/internal/domain/models"
	drepo "StarSpin/internal/domain/repository"
	"StarSpin/internal/services/aperture"
	"StarSpin/internal/services/analytics"
	"StarSpin/internal/services/periodogram"
	applogger "StarSpin/pkg/logger"
)

// ApertureSelector picks the best flux extraction among candidates.
type ApertureSelector interface {
	Select(ctx context.Context, cands []models.ApertureCandidate) (int, error)
}

// Analyzer turns one target's light-curve file into a rotation-period
// classification: aperture choice, full-range periodogram with bootstrap
// significance, then peak classification.
type Analyzer struct {
	source     drepo.Source
	scanner    aperture.Scanner
	selector   ApertureSelector // nil disables aperture selection
	classifier *analytics.Classifier
	opts       periodogram.Options
	metrics    drepo.Metrics
	log        *applogger.Logger
}

// NewAnalyzer creates an Analyzer. selector may be nil, in which case the
// file's default extraction is used.
func NewAnalyzer(
	source drepo.Source,
	scanner aperture.Scanner,
	selector ApertureSelector,
	classifier *analytics.Classifier,
	opts periodogram.Options,
	metrics drepo.Metrics,
	log *applogger.Logger,
) *Analyzer {
	return &Analyzer{
		source:     source,
		scanner:    scanner,
		selector:   selector,
		classifier: classifier,
		opts:       opts,
		metrics:    metrics,
		log:        log,
	}
}

// Analyze processes a single target end to end.
func (a *Analyzer) Analyze(ctx context.Context, target models.Target) (*models.RotationResult, error) {
	start := time.Now()

	ext := 0
	if a.selector != nil && target.Format == "sff" {
		cands, err := a.source.Apertures(ctx, target.Path)
		if err != nil {
			a.metrics.RecordError("apertures")
			return nil, fmt.Errorf("apertures %s: %w", target.Path, err)
		}
		ext, err = a.selector.Select(ctx, cands)
		if err != nil {
			a.metrics.RecordError("select_aperture")
			return nil, fmt.Errorf("select aperture %s: %w", target.Path, err)
		}
		a.log.Debug("aperture selected",
			applogger.String("target", target.ID),
			applogger.Int("ext", ext),
		)
	}

	lc, err := a.source.Read(ctx, target.Path, ext)
	if err != nil {
		a.metrics.RecordError("read")
		return nil, fmt.Errorf("read %s: %w", target.Path, err)
	}

	pg, err := a.scanner.Run(ctx, lc, a.opts)
	if err != nil {
		a.metrics.RecordError("periodogram")
		return nil, fmt.Errorf("periodogram %s: %w", target.ID, err)
	}

	res, err := a.classifier.Classify(pg)
	if err != nil {
		a.metrics.RecordError("classify")
		return nil, fmt.Errorf("classify %s: %w", target.ID, err)
	}
	res.Target = target.ID
	res.File = target.Path
	res.Aperture = ext

	a.metrics.RecordLatency("analyze", time.Since(start).Seconds())
	a.metrics.RecordSignificantPeaks(len(res.SigPeaks))
	a.metrics.RecordHarmonic(res.Harmonic.String())

	a.log.Info("target analyzed",
		applogger.String("target", target.ID),
		applogger.Float64("fund_period", res.FundPeriod),
		applogger.Int("sig_peaks", len(res.SigPeaks)),
		applogger.String("harm_type", res.Harmonic.String()),
	)
	return res, nil
}
