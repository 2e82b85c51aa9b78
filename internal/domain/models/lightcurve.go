package models

import "math"

// LightCurve is a time-ordered photometric series for one target.
// Time and Flux are parallel arrays; readers guarantee equal length and
// finite values before a curve enters the analysis pipeline.
type LightCurve struct {
	Time []float64
	Flux []float64
}

// Len returns the number of samples.
func (lc LightCurve) Len() int { return len(lc.Time) }

// Span returns the time baseline covered by the curve.
func (lc LightCurve) Span() float64 {
	if len(lc.Time) < 2 {
		return 0
	}
	return lc.Time[len(lc.Time)-1] - lc.Time[0]
}

// Validate checks the parallel-array contract.
func (lc LightCurve) Validate() error {
	if len(lc.Time) != len(lc.Flux) {
		return ErrLengthMismatch
	}
	for i := range lc.Time {
		if math.IsNaN(lc.Time[i]) || math.IsInf(lc.Time[i], 0) ||
			math.IsNaN(lc.Flux[i]) || math.IsInf(lc.Flux[i], 0) {
			return ErrNonFinite
		}
	}
	return nil
}

// Fold maps each time sample into phase [0,1) for the given period.
func (lc LightCurve) Fold(period float64) []float64 {
	phases := make([]float64, len(lc.Time))
	if period <= 0 {
		return phases
	}
	for i, t := range lc.Time {
		p := math.Mod(t, period) / period
		if p < 0 {
			p += 1
		}
		phases[i] = p
	}
	return phases
}

// ApertureCandidate is one flux extraction of a target, identified by its
// extension index in the source file.
type ApertureCandidate struct {
	Ext   int
	Curve LightCurve
}

// Target identifies one light-curve file to analyze.
type Target struct {
	ID     string `json:"id"`
	Path   string `json:"path"`
	Format string `json:"format,omitempty"` // "sff", "sc", or "" for auto
}
