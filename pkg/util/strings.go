package util

import (
	"path/filepath"
	"strconv"
	"strings"
)

// ParseIntDefault parses string to int or returns default if empty/invalid.
func ParseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return v
}

// TargetID extracts the numeric catalog identifier from a survey light-curve
// filename. Names look like
// hlsp_k2sff_k2_lightcurve_211748286-c05_kepler_v1_llc.csv: the identifier
// is the last underscore-separated token before the first dash.
func TargetID(filename string) string {
	base := filepath.Base(filename)
	head := strings.SplitN(base, "-", 2)[0]
	parts := strings.Split(head, "_")
	return parts[len(parts)-1]
}
