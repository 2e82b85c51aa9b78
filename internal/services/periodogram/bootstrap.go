package periodogram

import (
	"context"
	"math/rand"
	"sort"

	"gonum.org/v1/gonum/stat"

	"StarSpin/internal/domain/models"
)

// bootstrapThresholds estimates the significance threshold by scrambling the
// flux values against the fixed time sampling. Each iteration records the
// maximum periodogram power of a shuffled curve; the configured quantile of
// that distribution is the power level a real peak must exceed.
func bootstrapThresholds(ctx context.Context, lc models.LightCurve, w, freqs []float64, opts Options) ([]float64, error) {
	rng := rand.New(rand.NewSource(opts.Seed))

	n := lc.Len()
	shuffled := make([]float64, n)
	copy(shuffled, lc.Flux)

	maxima := make([]float64, 0, opts.BootstrapIters)
	for iter := 0; iter < opts.BootstrapIters; iter++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		rng.Shuffle(n, func(i, j int) {
			shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
		})

		gls := newGLS(lc.Time, shuffled, w)
		var max float64
		for _, f := range freqs {
			if p := gls.powerAt(f); p > max {
				max = p
			}
		}
		maxima = append(maxima, max)
	}

	sort.Float64s(maxima)
	threshold := stat.Quantile(opts.Quantile, stat.Empirical, maxima, nil)
	return []float64{threshold}, nil
}
