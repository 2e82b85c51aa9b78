package util

import "testing"

func TestTargetID(t *testing.T) {
	cases := map[string]string{
		"hlsp_k2sff_k2_lightcurve_211748286-c05_kepler_v1_llc.csv": "211748286",
		"data/EPIC_211748286-c05_k2sc.csv":                         "211748286",
		"211748286.csv":                                            "211748286.csv",
	}
	for in, want := range cases {
		if got := TargetID(in); got != want {
			t.Fatalf("%s: expected %q, got %q", in, want, got)
		}
	}
}
