package analytics

import (
	"math"
	"testing"
)

func TestLocalMaximaTooShort(t *testing.T) {
	if got := LocalMaxima([]float64{1, 2}, 1); got != nil {
		t.Fatalf("expected no peaks for short input, got %v", got)
	}
	if got := LocalMaxima(nil, 100); got != nil {
		t.Fatalf("expected no peaks for nil input, got %v", got)
	}
}

func TestLocalMaximaSimple(t *testing.T) {
	power := []float64{0, 1, 3, 1, 0, 2, 5, 2, 0}
	got := LocalMaxima(power, 2)
	if len(got) != 2 || got[0] != 2 || got[1] != 6 {
		t.Fatalf("expected peaks at [2 6], got %v", got)
	}
}

func TestLocalMaximaEdgesNeverPeak(t *testing.T) {
	// Global maximum at index 0 has no full left window, so it cannot qualify.
	power := []float64{9, 1, 2, 1, 0}
	got := LocalMaxima(power, 1)
	if len(got) != 1 || got[0] != 2 {
		t.Fatalf("expected single interior peak at 2, got %v", got)
	}
}

func TestLocalMaximaTieIsNotPeak(t *testing.T) {
	// Strictly-greater comparison: a plateau is not a peak.
	power := []float64{0, 3, 3, 0, 0}
	if got := LocalMaxima(power, 1); got != nil {
		t.Fatalf("plateau should yield no peaks, got %v", got)
	}
}

func TestLocalMaximaOrderTooWideForArray(t *testing.T) {
	power := make([]float64, 50)
	power[25] = 10
	if got := LocalMaxima(power, 100); got != nil {
		t.Fatalf("order wider than array should yield no peaks, got %v", got)
	}
}

func TestLocalMaximaIncludesGlobalMax(t *testing.T) {
	// Property: for arrays longer than 2*order with a unique global maximum
	// away from the edges, the global maximum index is returned.
	const order = 100
	power := make([]float64, 2*order+50)
	for i := range power {
		power[i] = math.Sin(float64(i) / 30.0)
	}
	maxIdx := order + 20
	power[maxIdx] = 100

	got := LocalMaxima(power, order)
	found := false
	for _, i := range got {
		if i == maxIdx {
			found = true
		}
	}
	if !found {
		t.Fatalf("global maximum %d missing from peaks %v", maxIdx, got)
	}
}
