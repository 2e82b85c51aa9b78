package analytics

import (
	"math"
	"testing"

	"StarSpin/internal/domain/models"
)

// linearGrid builds an ascending trial-period grid.
func linearGrid(n int, lo, hi float64) []float64 {
	grid := make([]float64, n)
	step := (hi - lo) / float64(n-1)
	for i := range grid {
		grid[i] = lo + float64(i)*step
	}
	return grid
}

func flatPeriodogram(n int, threshold float64) *models.Periodogram {
	power := make([]float64, n)
	for i := range power {
		power[i] = 1
	}
	periods := linearGrid(n, 0.1, 70)
	return &models.Periodogram{
		Periods:    periods,
		Power:      power,
		FundPeriod: periods[0],
		FundPower:  1,
		Thresholds: []float64{threshold},
	}
}

func TestClassifyNoSignificantPeaks(t *testing.T) {
	pg := flatPeriodogram(500, 3.0)
	c := NewClassifier()

	res, err := c.Classify(pg)
	if err != nil {
		t.Fatalf("classify: %v", err)
	}
	if res.Primary != nil || res.Secondary != nil {
		t.Fatalf("expected no significant peaks")
	}
	if res.ExtraSig != 0 || res.Harmonic != models.HarmonicNone {
		t.Fatalf("expected extra=0 harm=none, got %d/%v", res.ExtraSig, res.Harmonic)
	}
	row := res.Row()
	if row.SigPeriod != models.Sentinel || row.SigPower != models.Sentinel ||
		row.SecPeriod != models.Sentinel || row.SecPower != models.Sentinel {
		t.Fatalf("sentinel fields missing: %+v", row)
	}
}

func TestClassifySinglePeak(t *testing.T) {
	pg := flatPeriodogram(500, 3.0)
	pg.Power[250] = 5
	pg.FundPeriod = pg.Periods[250]
	pg.FundPower = 5
	c := NewClassifier()

	res, err := c.Classify(pg)
	if err != nil {
		t.Fatalf("classify: %v", err)
	}
	if res.Primary == nil || res.Primary.Power != 5 || res.Primary.Period != pg.Periods[250] {
		t.Fatalf("wrong primary: %v", res.Primary)
	}
	if res.Secondary != nil {
		t.Fatalf("expected nil secondary, got %v", res.Secondary)
	}
	if res.ExtraSig != 0 || res.Harmonic != models.HarmonicNone {
		t.Fatalf("expected extra=0 harm=none, got %d/%v", res.ExtraSig, res.Harmonic)
	}
}

func TestClassifyTwoPeaksDoubleMaybe(t *testing.T) {
	// Two well-separated peaks, powers 5 and 4, whose periods sit near a
	// 2:1 ratio; power ratio 0.8 > 0.5 makes the call dbl-maybe.
	const n = 600
	pg := flatPeriodogram(n, 3.0)

	// Place the stronger peak so the weaker one lands close to double its period.
	i1 := 150
	p1 := pg.Periods[i1]
	i2 := 0
	bestDiff := math.Inf(1)
	for i := i1 + 101; i < n-101; i++ {
		if d := math.Abs(pg.Periods[i] - 2*p1); d < bestDiff {
			bestDiff = d
			i2 = i
		}
	}
	pg.Power[i1] = 5
	pg.Power[i2] = 4
	pg.FundPeriod = p1
	pg.FundPower = 5

	c := NewClassifier()
	res, err := c.Classify(pg)
	if err != nil {
		t.Fatalf("classify: %v", err)
	}
	if len(res.SigPeaks) != 2 {
		t.Fatalf("expected both peaks significant, got %d", len(res.SigPeaks))
	}
	if res.Primary.Power != 5 || res.Primary.Period != p1 {
		t.Fatalf("wrong primary: %v", res.Primary)
	}
	if res.Secondary.Power != 4 || res.Secondary.Period != pg.Periods[i2] {
		t.Fatalf("wrong secondary: %v", res.Secondary)
	}
	if res.Harmonic != models.HarmonicDoubleMaybe {
		t.Fatalf("expected dbl-maybe, got %v", res.Harmonic)
	}
	if res.ExtraSig != 0 {
		t.Fatalf("expected extra=0, got %d", res.ExtraSig)
	}
}

func TestClassifyRejectsMalformedInput(t *testing.T) {
	c := NewClassifier()

	if _, err := c.Classify(nil); err == nil {
		t.Fatal("nil periodogram must fail")
	}

	pg := flatPeriodogram(10, 1)
	pg.Power = pg.Power[:5]
	if _, err := c.Classify(pg); err == nil {
		t.Fatal("length mismatch must fail")
	}

	pg = flatPeriodogram(10, 1)
	pg.Power[3] = math.NaN()
	if _, err := c.Classify(pg); err == nil {
		t.Fatal("non-finite power must fail")
	}

	pg = flatPeriodogram(10, 1)
	pg.Thresholds = nil
	if _, err := c.Classify(pg); err == nil {
		t.Fatal("missing thresholds must fail")
	}
}
