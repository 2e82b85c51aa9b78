package usecase

import (
	"context"
	"fmt"
	"testing"

	"StarSpin/internal/domain/models"
	"StarSpin/internal/services/analytics"
	"StarSpin/internal/services/periodogram"
)

type fakeSource struct {
	curves map[int]models.LightCurve
	reads  []int
}

func (f *fakeSource) Read(_ context.Context, _ string, ext int) (models.LightCurve, error) {
	f.reads = append(f.reads, ext)
	lc, ok := f.curves[ext]
	if !ok {
		return models.LightCurve{}, fmt.Errorf("no extension %d", ext)
	}
	return lc, nil
}

func (f *fakeSource) Apertures(_ context.Context, _ string) ([]models.ApertureCandidate, error) {
	var out []models.ApertureCandidate
	for ext := 2; ext <= 3; ext++ {
		if lc, ok := f.curves[ext]; ok {
			out = append(out, models.ApertureCandidate{Ext: ext, Curve: lc})
		}
	}
	return out, nil
}

type fakeScanner struct {
	pg *models.Periodogram
}

func (f *fakeScanner) Run(_ context.Context, _ models.LightCurve, _ periodogram.Options) (*models.Periodogram, error) {
	return f.pg, nil
}

type fixedSelector struct{ ext int }

func (f fixedSelector) Select(_ context.Context, _ []models.ApertureCandidate) (int, error) {
	return f.ext, nil
}

// rampPeriodogram builds a grid with a single significant peak at the
// given index so classification is predictable.
func rampPeriodogram(n, peakAt int) *models.Periodogram {
	periods := make([]float64, n)
	power := make([]float64, n)
	for i := range periods {
		periods[i] = 0.1 + 0.01*float64(i)
		power[i] = 0.01
	}
	power[peakAt] = 0.9
	return &models.Periodogram{
		Periods:    periods,
		Power:      power,
		FundPeriod: periods[peakAt],
		FundPower:  0.9,
		Thresholds: []float64{0.1},
	}
}

func curve(n int) models.LightCurve {
	t := make([]float64, n)
	f := make([]float64, n)
	for i := range t {
		t[i] = float64(i)
		f[i] = 1
	}
	return models.LightCurve{Time: t, Flux: f}
}

func TestAnalyzerUsesSelectedAperture(t *testing.T) {
	src := &fakeSource{curves: map[int]models.LightCurve{2: curve(10), 3: curve(10)}}
	scanner := &fakeScanner{pg: rampPeriodogram(301, 150)}
	classifier := analytics.NewClassifier(analytics.WithOrder(100))

	a := NewAnalyzer(src, scanner, fixedSelector{ext: 3}, classifier,
		periodogram.Options{}, nopMetrics{}, testLogger(t))

	res, err := a.Analyze(context.Background(), models.Target{ID: "42", Path: "x_sff.csv", Format: "sff"})
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if res.Aperture != 3 {
		t.Fatalf("expected aperture 3, got %d", res.Aperture)
	}
	if len(src.reads) != 1 || src.reads[0] != 3 {
		t.Fatalf("expected one read of ext 3, got %v", src.reads)
	}
	if res.Target != "42" || res.Primary == nil {
		t.Fatalf("unexpected result %+v", res)
	}
}

func TestAnalyzerSkipsSelectionForSC(t *testing.T) {
	src := &fakeSource{curves: map[int]models.LightCurve{0: curve(10)}}
	scanner := &fakeScanner{pg: rampPeriodogram(301, 150)}
	classifier := analytics.NewClassifier()

	a := NewAnalyzer(src, scanner, fixedSelector{ext: 3}, classifier,
		periodogram.Options{}, nopMetrics{}, testLogger(t))

	res, err := a.Analyze(context.Background(), models.Target{ID: "42", Path: "x_sc.csv", Format: "sc"})
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if res.Aperture != 0 {
		t.Fatalf("selection must be skipped for sc tables, got aperture %d", res.Aperture)
	}
}
