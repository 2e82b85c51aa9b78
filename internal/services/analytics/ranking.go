package analytics

import "StarSpin/internal/domain/models"

// RankPeaks selects the most powerful significant peak and the most
// powerful of the remainder. Ties break toward the earlier index. Either
// return value is nil when the corresponding peak does not exist, so the
// secondary is never stronger than the primary when both are real.
func RankPeaks(peaks []models.Peak) (primary, secondary *models.Peak) {
	if len(peaks) == 0 {
		return nil, nil
	}

	best := 0
	for i := 1; i < len(peaks); i++ {
		if peaks[i].Power > peaks[best].Power {
			best = i
		}
	}
	p := peaks[best]
	primary = &p

	if len(peaks) < 2 {
		return primary, nil
	}

	second := -1
	for i := range peaks {
		if i == best {
			continue
		}
		if second < 0 || peaks[i].Power > peaks[second].Power {
			second = i
		}
	}
	s := peaks[second]
	return primary, &s
}
