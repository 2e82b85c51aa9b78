package lightcurve

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return name
}

func TestDetectFormat(t *testing.T) {
	cases := map[string]string{
		"hlsp_k2sff_k2_lightcurve_211748286-c05_kepler_v1_llc.csv": FormatSFF,
		"EPIC_211748286_mast_k2sc.csv":                             FormatSC,
		"lightcurve.dat":                                           "",
	}
	for path, want := range cases {
		if got := DetectFormat(path); got != want {
			t.Fatalf("%s: expected %q, got %q", path, want, got)
		}
	}
}

func TestReadSFFDropsMovingRows(t *testing.T) {
	dir := t.TempDir()
	name := writeFile(t, dir, "target_k2sff.csv",
		"EXT,T,FCOR,MOVING\n"+
			"1,100.0,1.00,0\n"+
			"1,100.1,1.01,1\n"+ // thruster fire, dropped
			"1,100.2,1.02,0\n"+
			"2,100.0,0.99,0\n")

	r := NewReader(dir, nil)
	lc, err := r.Read(context.Background(), name, 1)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if lc.Len() != 2 {
		t.Fatalf("expected 2 samples, got %d", lc.Len())
	}
	if lc.Time[1] != 100.2 || lc.Flux[1] != 1.02 {
		t.Fatalf("unexpected samples: %+v", lc)
	}
}

func TestReadSFFExtZeroFallsBackToBest(t *testing.T) {
	dir := t.TempDir()
	name := writeFile(t, dir, "target_k2sff.csv",
		"EXT,T,FCOR,MOVING\n"+
			"1,100.0,1.00,0\n"+
			"2,100.0,2.00,0\n")

	r := NewReader(dir, nil)
	lc, err := r.Read(context.Background(), name, 0)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if lc.Len() != 1 || lc.Flux[0] != 1.00 {
		t.Fatalf("expected best-aperture fallback, got %+v", lc)
	}
}

func TestReadSCAppliesTrend(t *testing.T) {
	dir := t.TempDir()
	// Trends 1,2,3 have median 2: fluxes adjust by -1, 0, +1.
	name := writeFile(t, dir, "target_k2sc.csv",
		"TIME,FLUX,TREND_T\n"+
			"100.0,10.0,1.0\n"+
			"100.1,10.0,2.0\n"+
			"100.2,10.0,3.0\n"+
			"100.3,NaN,2.0\n") // non-finite flux dropped

	r := NewReader(dir, nil)
	lc, err := r.Read(context.Background(), name, 0)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if lc.Len() != 3 {
		t.Fatalf("expected 3 samples, got %d", lc.Len())
	}
	want := []float64{9.0, 10.0, 11.0}
	for i, f := range lc.Flux {
		if f != want[i] {
			t.Fatalf("flux[%d]: expected %v, got %v", i, want[i], f)
		}
	}
	if err := lc.Validate(); err != nil {
		t.Fatalf("reader must emit finite curves: %v", err)
	}
}

func TestAperturesSFF(t *testing.T) {
	dir := t.TempDir()
	name := writeFile(t, dir, "target_k2sff.csv",
		"EXT,T,FCOR,MOVING\n"+
			"1,100.0,1.00,0\n"+
			"2,100.0,1.01,0\n"+
			"2,100.1,1.02,0\n"+
			"5,100.0,1.05,0\n")

	r := NewReader(dir, nil)
	cands, err := r.Apertures(context.Background(), name)
	if err != nil {
		t.Fatalf("apertures: %v", err)
	}
	// Extension 1 (the upstream best aperture) is excluded from the scan.
	if len(cands) != 2 || cands[0].Ext != 2 || cands[1].Ext != 5 {
		t.Fatalf("unexpected candidates: %+v", cands)
	}
	if cands[0].Curve.Len() != 2 {
		t.Fatalf("ext 2 should have 2 samples, got %d", cands[0].Curve.Len())
	}
}

func TestAperturesSC(t *testing.T) {
	dir := t.TempDir()
	name := writeFile(t, dir, "target_k2sc.csv",
		"TIME,FLUX,TREND_T\n100.0,10.0,1.0\n100.1,10.1,1.0\n")

	r := NewReader(dir, nil)
	cands, err := r.Apertures(context.Background(), name)
	if err != nil {
		t.Fatalf("apertures: %v", err)
	}
	if len(cands) != 1 || cands[0].Ext != BestAperture {
		t.Fatalf("sc format must yield one candidate, got %+v", cands)
	}
}

func TestReadMissingColumn(t *testing.T) {
	dir := t.TempDir()
	name := writeFile(t, dir, "target_k2sff.csv", "EXT,T,FCOR\n1,100.0,1.0\n")

	r := NewReader(dir, nil)
	if _, err := r.Read(context.Background(), name, 1); err == nil {
		t.Fatal("missing MOVING column must fail")
	}
}
