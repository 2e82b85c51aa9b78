package analytics

// LocalMaxima returns the indices i where power[i] is strictly greater than
// every value within order positions on each side. Neighbors must be valid
// array positions, so the first and last order indices can never qualify.
// Arrays shorter than 3 points have no interior and return nothing.
func LocalMaxima(power []float64, order int) []int {
	if len(power) < 3 || order < 1 {
		return nil
	}

	var peaks []int
	for i := order; i <= len(power)-1-order; i++ {
		isMax := true
		for j := i - order; j <= i+order; j++ {
			if j == i {
				continue
			}
			if power[j] >= power[i] {
				isMax = false
				break
			}
		}
		if isMax {
			peaks = append(peaks, i)
		}
	}
	return peaks
}
