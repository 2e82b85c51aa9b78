package periodogram

import (
	"context"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"StarSpin/internal/domain/models"
)

// Runner computes weighted generalized Lomb-Scargle periodograms. It is
// stateless and safe for concurrent use across targets.
type Runner struct{}

// Run satisfies the periodogram collaborator contract used by the analyzer
// and the aperture selector.
func (Runner) Run(ctx context.Context, lc models.LightCurve, opts Options) (*models.Periodogram, error) {
	return Run(ctx, lc, opts)
}

// Run computes the periodogram of a light curve over a bounded period range.
// The returned grid holds trial periods in ascending order with one power
// value per period, the grid point of the global maximum, alias periods of
// the fundamental, and (when enabled) bootstrap significance thresholds.
func Run(ctx context.Context, lc models.LightCurve, opts Options) (*models.Periodogram, error) {
	opts = opts.withDefaults()

	if err := lc.Validate(); err != nil {
		return nil, fmt.Errorf("periodogram: %w", err)
	}
	if lc.Len() < 3 {
		return nil, fmt.Errorf("periodogram: need at least 3 samples, have %d", lc.Len())
	}
	if opts.MinPeriod <= 0 || opts.MaxPeriod <= opts.MinPeriod {
		return nil, fmt.Errorf("periodogram: invalid period range [%g, %g]", opts.MinPeriod, opts.MaxPeriod)
	}
	span := lc.Span()
	if span <= 0 {
		return nil, fmt.Errorf("periodogram: light curve has no time baseline")
	}

	w, err := normalizeWeights(opts.Weights, lc.Len())
	if err != nil {
		return nil, fmt.Errorf("periodogram: %w", err)
	}

	freqs := frequencyGrid(opts, span)
	gls := newGLS(lc.Time, lc.Flux, w)

	periods := make([]float64, len(freqs))
	power := make([]float64, len(freqs))
	for i, f := range freqs {
		if i%1024 == 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			default:
			}
		}
		periods[i] = 1 / f
		power[i] = gls.powerAt(f)
	}

	best := floats.MaxIdx(power)
	pg := &models.Periodogram{
		Periods:    periods,
		Power:      power,
		FundPeriod: periods[best],
		FundPower:  power[best],
		Aliases:    aliasPeriods(periods[best], span),
	}

	if opts.Bootstrap {
		thresholds, err := bootstrapThresholds(ctx, lc, w, freqs, opts)
		if err != nil {
			return nil, err
		}
		pg.Thresholds = thresholds
	}
	return pg, nil
}

// frequencyGrid spans [1/MaxPeriod, 1/MinPeriod] with spacing
// 1/(Oversample * baseline), descending so periods come out ascending.
func frequencyGrid(opts Options, span float64) []float64 {
	fmin := 1 / opts.MaxPeriod
	fmax := 1 / opts.MinPeriod
	df := 1 / (opts.Oversample * span)

	n := int((fmax-fmin)/df) + 1
	if n < 2 {
		n = 2
	}
	freqs := make([]float64, n)
	for i := range freqs {
		freqs[i] = fmax - float64(i)*df
		if freqs[i] < fmin {
			freqs[i] = fmin
		}
	}
	return freqs
}

func normalizeWeights(weights []float64, n int) ([]float64, error) {
	w := make([]float64, n)
	if weights == nil {
		for i := range w {
			w[i] = 1 / float64(n)
		}
		return w, nil
	}
	if len(weights) != n {
		return nil, models.ErrLengthMismatch
	}
	total := floats.Sum(weights)
	if total <= 0 || math.IsNaN(total) || math.IsInf(total, 0) {
		return nil, fmt.Errorf("weights must sum to a positive finite value")
	}
	for i, v := range weights {
		if v < 0 {
			return nil, fmt.Errorf("weight %d is negative", i)
		}
		w[i] = v / total
	}
	return w, nil
}

// gls evaluates the floating-mean (generalized) Lomb-Scargle statistic of
// Zechmeister & Kuerster at single frequencies.
type gls struct {
	t, y, w []float64
	ybar    float64
	yy      float64
}

func newGLS(t, y, w []float64) *gls {
	var ybar float64
	for i := range y {
		ybar += w[i] * y[i]
	}
	var yy float64
	for i := range y {
		d := y[i] - ybar
		yy += w[i] * d * d
	}
	return &gls{t: t, y: y, w: w, ybar: ybar, yy: yy}
}

func (g *gls) powerAt(freq float64) float64 {
	if g.yy <= 0 {
		return 0
	}
	omega := 2 * math.Pi * freq

	var c, s, cc, ss, cs, yc, ys float64
	for i := range g.t {
		sin, cos := math.Sincos(omega * g.t[i])
		w := g.w[i]
		d := g.y[i] - g.ybar

		c += w * cos
		s += w * sin
		cc += w * cos * cos
		ss += w * sin * sin
		cs += w * cos * sin
		yc += w * d * cos
		ys += w * d * sin
	}

	// Center the trig moments; yc and ys are already centered because d is
	// the mean-subtracted flux.
	cc -= c * c
	ss -= s * s
	cs -= c * s

	det := cc*ss - cs*cs
	if det <= 0 || math.Abs(det) < 1e-300 {
		return 0
	}
	p := (ss*yc*yc + cc*ys*ys - 2*cs*yc*ys) / (g.yy * det)
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}

// aliasPeriods returns the beat periods of the fundamental against the
// 1/baseline window frequency. The core treats these as opaque.
func aliasPeriods(fund, span float64) []float64 {
	if fund <= 0 || span <= 0 {
		return nil
	}
	f0 := 1 / fund
	fw := 1 / span

	aliases := []float64{1 / (f0 + fw)}
	if f0 > fw {
		aliases = append(aliases, 1/(f0-fw))
	}
	return aliases
}
