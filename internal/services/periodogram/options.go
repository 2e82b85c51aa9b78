package periodogram

// Options configures one periodogram run.
type Options struct {
	// MinPeriod and MaxPeriod bound the trial-period grid.
	MinPeriod float64
	MaxPeriod float64
	// Oversample stretches the frequency grid beyond the natural
	// 1/baseline resolution.
	Oversample float64
	// Weights are per-point statistical weights; uniform when nil.
	Weights []float64
	// Bootstrap enables significance threshold estimation by resampling.
	Bootstrap      bool
	BootstrapIters int
	// Quantile of the bootstrapped max-power distribution used as the
	// first significance threshold.
	Quantile float64
	// Seed makes bootstrap resampling deterministic.
	Seed int64
}

const (
	defaultOversample = 10.0
	defaultIters      = 100
	defaultQuantile   = 0.999
)

func (o Options) withDefaults() Options {
	if o.Oversample <= 0 {
		o.Oversample = defaultOversample
	}
	if o.BootstrapIters <= 0 {
		o.BootstrapIters = defaultIters
	}
	if o.Quantile <= 0 || o.Quantile >= 1 {
		o.Quantile = defaultQuantile
	}
	return o
}
