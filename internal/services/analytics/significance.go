package analytics

import "StarSpin/internal/domain/models"

// SignificanceConfig tunes the threshold test. Scale multiplies the
// bootstrap threshold (1.0 when zero); MaxPeriod, when positive, restricts
// significant peaks to periods strictly below it. Survey runs have used
// both 35 and 30 day cutoffs, so the bound is configuration, not a constant.
type SignificanceConfig struct {
	Scale     float64
	MaxPeriod float64
}

// FilterSignificant keeps the candidate peak indices whose power exceeds
// the (scaled) threshold and whose period falls under the optional bound.
// Order is preserved; ranking by power happens downstream.
func FilterSignificant(idx []int, periods, power []float64, threshold float64, cfg SignificanceConfig) []models.Peak {
	scale := cfg.Scale
	if scale <= 0 {
		scale = 1.0
	}
	cut := threshold * scale

	var sig []models.Peak
	for _, i := range idx {
		if i < 0 || i >= len(power) || i >= len(periods) {
			continue
		}
		if power[i] <= cut {
			continue
		}
		if cfg.MaxPeriod > 0 && periods[i] >= cfg.MaxPeriod {
			continue
		}
		sig = append(sig, models.Peak{Period: periods[i], Power: power[i]})
	}
	return sig
}
