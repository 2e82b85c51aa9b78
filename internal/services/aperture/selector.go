package aperture

import (
	"context"
	"errors"
	"fmt"

	"StarSpin/internal/domain/models"
	"StarSpin/internal/services/periodogram"
	applogger "StarSpin/pkg/logger"
)

// ErrNoUsableCandidate is returned when every candidate aperture is empty
// or fails its periodogram scan. The caller decides whether to skip the
// target or abort the batch.
var ErrNoUsableCandidate = errors.New("aperture: no usable candidate")

// Scanner runs a coarse periodogram over one candidate light curve.
type Scanner interface {
	Run(ctx context.Context, lc models.LightCurve, opts periodogram.Options) (*models.Periodogram, error)
}

// Selector picks the best flux extraction of a target by scanning a bounded
// short-period range across every candidate aperture and keeping the one
// with the strongest single peak. The survey's default "best" extraction
// often carries a long-term instrumental trend that dominates a wide-range
// search, so a bounded scan gives a better starting aperture.
type Selector struct {
	scanner   Scanner
	minPeriod float64
	maxPeriod float64
	log       *applogger.Logger
}

// NewSelector creates a selector scanning periods in (minPeriod, maxPeriod).
func NewSelector(scanner Scanner, minPeriod, maxPeriod float64, log *applogger.Logger) *Selector {
	return &Selector{
		scanner:   scanner,
		minPeriod: minPeriod,
		maxPeriod: maxPeriod,
		log:       log,
	}
}

// Select returns the extension index of the winning candidate. Bootstrap is
// disabled: this is a coarse scan, not a significance test. Candidates that
// fail to scan are skipped (logged), not fatal, unless all of them fail.
// Ties break toward the first candidate in iteration order.
func (s *Selector) Select(ctx context.Context, cands []models.ApertureCandidate) (int, error) {
	if len(cands) == 0 {
		return 0, ErrNoUsableCandidate
	}

	bestExt := -1
	bestPower := 0.0
	usable := 0

	for _, cand := range cands {
		if cand.Curve.Len() < 3 {
			if s.log != nil {
				s.log.Warn("aperture scan skipped: curve too short",
					applogger.Int("ext", cand.Ext),
					applogger.Int("points", cand.Curve.Len()),
				)
			}
			continue
		}

		pg, err := s.scanner.Run(ctx, cand.Curve, periodogram.Options{
			MinPeriod: s.minPeriod,
			MaxPeriod: s.maxPeriod,
			Bootstrap: false,
		})
		if err != nil {
			if s.log != nil {
				s.log.Warn("aperture scan failed",
					applogger.Int("ext", cand.Ext),
					applogger.Error(err),
				)
			}
			continue
		}
		usable++

		if bestExt < 0 || pg.FundPower > bestPower {
			bestExt = cand.Ext
			bestPower = pg.FundPower
		}
	}

	if usable == 0 {
		return 0, fmt.Errorf("%w: %d candidates scanned", ErrNoUsableCandidate, len(cands))
	}
	return bestExt, nil
}
