package aperture

import (
	"context"
	"errors"
	"testing"

	"StarSpin/internal/domain/models"
	"StarSpin/internal/services/periodogram"
)

// fakeScanner returns canned peak powers keyed by the first flux value.
type fakeScanner struct {
	powers map[float64]float64
	errs   map[float64]error
}

func (f *fakeScanner) Run(_ context.Context, lc models.LightCurve, opts periodogram.Options) (*models.Periodogram, error) {
	if opts.Bootstrap {
		return nil, errors.New("selector must not enable bootstrap")
	}
	key := lc.Flux[0]
	if err, ok := f.errs[key]; ok {
		return nil, err
	}
	return &models.Periodogram{
		Periods:    []float64{1},
		Power:      []float64{f.powers[key]},
		FundPeriod: 1,
		FundPower:  f.powers[key],
	}, nil
}

func candidate(ext int, key float64) models.ApertureCandidate {
	return models.ApertureCandidate{
		Ext: ext,
		Curve: models.LightCurve{
			Time: []float64{0, 1, 2},
			Flux: []float64{key, key, key},
		},
	}
}

func TestSelectPicksStrongestPeak(t *testing.T) {
	scanner := &fakeScanner{powers: map[float64]float64{1: 0.2, 2: 0.9, 3: 0.5}}
	sel := NewSelector(scanner, 0.1, 35, nil)

	ext, err := sel.Select(context.Background(), []models.ApertureCandidate{
		candidate(2, 1), candidate(3, 2), candidate(4, 3),
	})
	if err != nil {
		t.Fatalf("select: %v", err)
	}
	if ext != 3 {
		t.Fatalf("expected ext 3 (power 0.9), got %d", ext)
	}
}

func TestSelectTieBreaksToFirst(t *testing.T) {
	scanner := &fakeScanner{powers: map[float64]float64{1: 0.7, 2: 0.7}}
	sel := NewSelector(scanner, 0.1, 35, nil)

	ext, err := sel.Select(context.Background(), []models.ApertureCandidate{
		candidate(5, 1), candidate(6, 2),
	})
	if err != nil {
		t.Fatalf("select: %v", err)
	}
	if ext != 5 {
		t.Fatalf("tie must go to the first candidate, got %d", ext)
	}
}

func TestSelectSkipsFailedCandidates(t *testing.T) {
	scanner := &fakeScanner{
		powers: map[float64]float64{2: 0.4},
		errs:   map[float64]error{1: errors.New("bad curve")},
	}
	sel := NewSelector(scanner, 0.1, 35, nil)

	ext, err := sel.Select(context.Background(), []models.ApertureCandidate{
		candidate(2, 1), candidate(3, 2),
	})
	if err != nil {
		t.Fatalf("select: %v", err)
	}
	if ext != 3 {
		t.Fatalf("expected surviving candidate 3, got %d", ext)
	}
}

func TestSelectAllFail(t *testing.T) {
	scanner := &fakeScanner{errs: map[float64]error{1: errors.New("bad"), 2: errors.New("bad")}}
	sel := NewSelector(scanner, 0.1, 35, nil)

	_, err := sel.Select(context.Background(), []models.ApertureCandidate{
		candidate(2, 1), candidate(3, 2),
	})
	if !errors.Is(err, ErrNoUsableCandidate) {
		t.Fatalf("expected ErrNoUsableCandidate, got %v", err)
	}
}

func TestSelectEmptyInput(t *testing.T) {
	sel := NewSelector(&fakeScanner{}, 0.1, 35, nil)
	if _, err := sel.Select(context.Background(), nil); !errors.Is(err, ErrNoUsableCandidate) {
		t.Fatalf("expected ErrNoUsableCandidate, got %v", err)
	}
}
