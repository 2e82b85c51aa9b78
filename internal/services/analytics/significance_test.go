package analytics

import "testing"

func TestFilterSignificantBasic(t *testing.T) {
	periods := []float64{1, 2, 3, 4, 5}
	power := []float64{0.1, 0.5, 0.2, 0.9, 0.3}
	idx := []int{1, 3, 4}

	sig := FilterSignificant(idx, periods, power, 0.25, SignificanceConfig{})
	if len(sig) != 3 {
		t.Fatalf("expected 3 significant peaks, got %d", len(sig))
	}
	// Order preserved: filtering never reorders.
	if sig[0].Period != 2 || sig[1].Period != 4 || sig[2].Period != 5 {
		t.Fatalf("index order not preserved: %v", sig)
	}
}

func TestFilterSignificantThresholdExclusive(t *testing.T) {
	periods := []float64{1}
	power := []float64{0.5}
	sig := FilterSignificant([]int{0}, periods, power, 0.5, SignificanceConfig{})
	if len(sig) != 0 {
		t.Fatalf("power equal to threshold must not pass, got %v", sig)
	}
}

func TestFilterSignificantScale(t *testing.T) {
	periods := []float64{1, 2}
	power := []float64{1.5, 2.5}
	sig := FilterSignificant([]int{0, 1}, periods, power, 1.0, SignificanceConfig{Scale: 2})
	if len(sig) != 1 || sig[0].Power != 2.5 {
		t.Fatalf("expected only the peak above 2x threshold, got %v", sig)
	}
}

func TestFilterSignificantPeriodBound(t *testing.T) {
	periods := []float64{10, 34.9, 35, 60}
	power := []float64{5, 5, 5, 5}
	sig := FilterSignificant([]int{0, 1, 2, 3}, periods, power, 1, SignificanceConfig{MaxPeriod: 35})
	if len(sig) != 2 {
		t.Fatalf("expected 2 peaks under the 35 day bound, got %v", sig)
	}
	for _, p := range sig {
		if p.Period >= 35 {
			t.Fatalf("peak at %v should have been excluded", p.Period)
		}
	}
}

func TestFilterSignificantEmpty(t *testing.T) {
	if sig := FilterSignificant(nil, nil, nil, 1, SignificanceConfig{}); sig != nil {
		t.Fatalf("expected empty result, got %v", sig)
	}
}
