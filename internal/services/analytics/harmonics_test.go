package analytics

import (
	"testing"

	"StarSpin/internal/domain/models"
)

func peak(period, power float64) *models.Peak {
	return &models.Peak{Period: period, Power: power}
}

func TestClassifyHarmonicFewerThanTwo(t *testing.T) {
	harm, extra := ClassifyHarmonic(peak(10, 5), nil, 1)
	if harm != models.HarmonicNone || extra != 0 {
		t.Fatalf("k<2 must be none/0, got %v/%d", harm, extra)
	}
	harm, extra = ClassifyHarmonic(nil, nil, 0)
	if harm != models.HarmonicNone || extra != 0 {
		t.Fatalf("k=0 must be none/0, got %v/%d", harm, extra)
	}
}

func TestClassifyHarmonicHalf(t *testing.T) {
	// Secondary well below half the primary power: clean half harmonic.
	harm, extra := ClassifyHarmonic(peak(10, 10), peak(5, 3), 2)
	if harm != models.HarmonicHalf {
		t.Fatalf("expected half, got %v", harm)
	}
	if extra != 0 {
		t.Fatalf("expected extra 0, got %d", extra)
	}
}

func TestClassifyHarmonicDoubleMaybe(t *testing.T) {
	// Power ratio 4/5 = 0.8 > 0.5 flags the call uncertain.
	harm, extra := ClassifyHarmonic(peak(10, 5), peak(20, 4), 2)
	if harm != models.HarmonicDoubleMaybe {
		t.Fatalf("expected dbl-maybe, got %v", harm)
	}
	if extra != 0 {
		t.Fatalf("expected extra 0, got %d", extra)
	}
}

func TestClassifyHarmonicNoneCountsExtra(t *testing.T) {
	harm, extra := ClassifyHarmonic(peak(10, 5), peak(7, 2), 4)
	if harm != models.HarmonicNone {
		t.Fatalf("expected none, got %v", harm)
	}
	if extra != 3 {
		t.Fatalf("extra must be k-1 when no harmonic holds, got %d", extra)
	}
}

func TestClassifyHarmonicExtraWithHarmonic(t *testing.T) {
	harm, extra := ClassifyHarmonic(peak(10, 10), peak(5, 2), 5)
	if harm != models.HarmonicHalf {
		t.Fatalf("expected half, got %v", harm)
	}
	if extra != 3 {
		t.Fatalf("extra must be k-2 when a harmonic holds, got %d", extra)
	}
}

func TestClassifyHarmonicBoundaries(t *testing.T) {
	cases := []struct {
		ratio float64
		want  models.HarmonicType
	}{
		{0.45, models.HarmonicHalf},
		{0.55, models.HarmonicHalf},
		{0.549999, models.HarmonicHalf},
		{0.5500001, models.HarmonicNone},
		{0.449999, models.HarmonicNone},
		{1.95, models.HarmonicDouble},
		{2.05, models.HarmonicDouble},
		{2.0500001, models.HarmonicNone},
	}
	for _, c := range cases {
		// Low secondary power keeps the maybe qualifier out of the way.
		harm, _ := ClassifyHarmonic(peak(10, 10), peak(10*c.ratio, 1), 2)
		if harm != c.want {
			t.Fatalf("ratio %v: expected %v, got %v", c.ratio, c.want, harm)
		}
	}
}

func TestClassifyHarmonicMaybeQualifier(t *testing.T) {
	// Exactly at 0.5 power ratio: no qualifier.
	harm, _ := ClassifyHarmonic(peak(10, 10), peak(5, 5), 2)
	if harm != models.HarmonicHalf {
		t.Fatalf("power ratio 0.5 must not add maybe, got %v", harm)
	}
	harm, _ = ClassifyHarmonic(peak(10, 10), peak(5, 5.1), 2)
	if harm != models.HarmonicHalfMaybe {
		t.Fatalf("power ratio > 0.5 must yield half-maybe, got %v", harm)
	}
	if harm.String() != "half-maybe" {
		t.Fatalf("tag must be exactly half-maybe, got %q", harm.String())
	}
}
