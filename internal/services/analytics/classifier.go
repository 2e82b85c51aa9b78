package analytics

import (
	"fmt"

	"StarSpin/internal/domain/models"
)

const defaultOrder = 100

// Classifier runs the full peak pipeline over one periodogram: local-maximum
// extraction, bootstrap significance filtering, ranking, and harmonic
// classification. It is stateless across calls and safe for concurrent use.
type Classifier struct {
	order int
	sig   SignificanceConfig
}

// ClassifierOption configures a Classifier.
type ClassifierOption func(*Classifier)

// WithOrder sets the minimum index separation for local maxima.
func WithOrder(order int) ClassifierOption {
	return func(c *Classifier) {
		if order > 0 {
			c.order = order
		}
	}
}

// WithSignificance sets threshold scaling and the optional period bound.
func WithSignificance(cfg SignificanceConfig) ClassifierOption {
	return func(c *Classifier) {
		c.sig = cfg
	}
}

// NewClassifier creates a classifier with the default peak separation of
// 100 grid points.
func NewClassifier(opts ...ClassifierOption) *Classifier {
	c := &Classifier{order: defaultOrder}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Classify consumes a periodogram and produces the classification fields of
// a RotationResult (target identity is the caller's concern). Zero or one
// significant peaks are not errors; they yield nil Primary/Secondary.
func (c *Classifier) Classify(pg *models.Periodogram) (*models.RotationResult, error) {
	if pg == nil {
		return nil, fmt.Errorf("classify: nil periodogram")
	}
	if err := pg.Validate(); err != nil {
		return nil, fmt.Errorf("classify: %w", err)
	}
	if len(pg.Thresholds) == 0 {
		return nil, fmt.Errorf("classify: periodogram has no significance thresholds")
	}

	threshold := pg.Thresholds[0]
	locs := LocalMaxima(pg.Power, c.order)
	sig := FilterSignificant(locs, pg.Periods, pg.Power, threshold, c.sig)
	primary, secondary := RankPeaks(sig)
	harm, extra := ClassifyHarmonic(primary, secondary, len(sig))

	return &models.RotationResult{
		FundPeriod: pg.FundPeriod,
		FundPower:  pg.FundPower,
		Primary:    primary,
		Secondary:  secondary,
		Threshold:  threshold,
		ExtraSig:   extra,
		Harmonic:   harm,
		SigPeaks:   sig,
	}, nil
}
