package periodogram

import (
	"context"
	"math"
	"testing"

	"StarSpin/internal/domain/models"
)

// sineCurve builds a noiseless sinusoid sampled at  cadence days over span days.
func sineCurve(period, span, cadence float64) models.LightCurve {
	n := int(span / cadence)
	lc := models.LightCurve{
		Time: make([]float64, n),
		Flux: make([]float64, n),
	}
	for i := 0; i < n; i++ {
		t := float64(i) * cadence
		lc.Time[i] = t
		lc.Flux[i] = 1 + 0.01*math.Sin(2*math.Pi*t/period)
	}
	return lc
}

func TestRunRecoversSinePeriod(t *testing.T) {
	const truth = 3.5
	lc := sineCurve(truth, 70, 0.02)

	pg, err := Run(context.Background(), lc, Options{MinPeriod: 0.1, MaxPeriod: 70})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if err := pg.Validate(); err != nil {
		t.Fatalf("invalid output: %v", err)
	}
	if math.Abs(pg.FundPeriod-truth) > 0.05 {
		t.Fatalf("expected fundamental near %v, got %v", truth, pg.FundPeriod)
	}
	if pg.FundPower < 0.9 {
		t.Fatalf("noiseless sinusoid should have power near 1, got %v", pg.FundPower)
	}
}

func TestRunPeriodsAscending(t *testing.T) {
	lc := sineCurve(2, 30, 0.05)
	pg, err := Run(context.Background(), lc, Options{MinPeriod: 0.1, MaxPeriod: 35})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	for i := 1; i < len(pg.Periods); i++ {
		if pg.Periods[i] < pg.Periods[i-1] {
			t.Fatalf("periods not ascending at %d: %v < %v", i, pg.Periods[i], pg.Periods[i-1])
		}
	}
	if len(pg.Periods) != len(pg.Power) {
		t.Fatalf("grid length mismatch: %d vs %d", len(pg.Periods), len(pg.Power))
	}
}

func TestRunBootstrapDeterministic(t *testing.T) {
	lc := sineCurve(3, 20, 0.1)
	opts := Options{
		MinPeriod:      0.5,
		MaxPeriod:      20,
		Bootstrap:      true,
		BootstrapIters: 20,
		Seed:           7,
	}

	a, err := Run(context.Background(), lc, opts)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	b, err := Run(context.Background(), lc, opts)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(a.Thresholds) < 1 || len(b.Thresholds) < 1 {
		t.Fatal("bootstrap must produce at least one threshold")
	}
	if a.Thresholds[0] != b.Thresholds[0] {
		t.Fatalf("same seed must give same threshold: %v vs %v", a.Thresholds[0], b.Thresholds[0])
	}
	if a.Thresholds[0] <= 0 || a.Thresholds[0] > 1 {
		t.Fatalf("threshold out of range: %v", a.Thresholds[0])
	}
}

func TestRunRejectsBadInput(t *testing.T) {
	ctx := context.Background()

	if _, err := Run(ctx, models.LightCurve{Time: []float64{1, 2}, Flux: []float64{1}}, Options{MinPeriod: 1, MaxPeriod: 2}); err == nil {
		t.Fatal("length mismatch must fail")
	}
	if _, err := Run(ctx, models.LightCurve{Time: []float64{1, 2, 3}, Flux: []float64{1, math.NaN(), 1}}, Options{MinPeriod: 1, MaxPeriod: 2}); err == nil {
		t.Fatal("non-finite flux must fail")
	}
	lc := sineCurve(2, 10, 0.1)
	if _, err := Run(ctx, lc, Options{MinPeriod: 5, MaxPeriod: 1}); err == nil {
		t.Fatal("inverted period range must fail")
	}
	if _, err := Run(ctx, lc, Options{MinPeriod: 1, MaxPeriod: 10, Weights: []float64{1}}); err == nil {
		t.Fatal("mismatched weights must fail")
	}
}

func TestRunCanceledContext(t *testing.T) {
	lc := sineCurve(2, 70, 0.02)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := Run(ctx, lc, Options{MinPeriod: 0.1, MaxPeriod: 70}); err == nil {
		t.Fatal("canceled context must abort the run")
	}
}
