package analytics

import (
	"math"

	"StarSpin/internal/domain/models"
)

const (
	// harmonicTol is the inclusive band around the 1/2 and 2x period ratios.
	harmonicTol = 0.05
	// ratioEps absorbs float64 representation error so that a ratio of
	// exactly 0.55 or 0.45 still lands inside the inclusive band.
	ratioEps = 1e-9
	// maybePowerRatio: above this secondary/primary power ratio a harmonic
	// call is flagged uncertain rather than a clear sub-dominant artifact.
	maybePowerRatio = 0.5
)

// ClassifyHarmonic compares the two strongest significant peaks and decides
// whether the secondary is a half or double harmonic of the primary. It also
// counts the "extra" significant peaks not explained by the harmonic pairing:
// numSig-2 when a harmonic relationship holds (primary plus its harmonic),
// numSig-1 otherwise (only the primary is accounted for).
//
// With fewer than two significant peaks there is nothing to compare: the
// type is HarmonicNone and the extra count is zero.
func ClassifyHarmonic(primary, secondary *models.Peak, numSig int) (models.HarmonicType, int) {
	if numSig < 2 || primary == nil || secondary == nil {
		return models.HarmonicNone, 0
	}

	periodRatio := secondary.Period / primary.Period
	powerRatio := secondary.Power / primary.Power

	var harm models.HarmonicType
	extra := numSig - 1
	switch {
	case math.Abs(periodRatio-0.5) <= harmonicTol+ratioEps:
		harm = models.HarmonicHalf
		extra = numSig - 2
	case math.Abs(periodRatio-2.0) <= harmonicTol+ratioEps:
		harm = models.HarmonicDouble
		extra = numSig - 2
	default:
		return models.HarmonicNone, extra
	}

	if powerRatio > maybePowerRatio {
		if harm == models.HarmonicHalf {
			harm = models.HarmonicHalfMaybe
		} else {
			harm = models.HarmonicDoubleMaybe
		}
	}
	return harm, extra
}
