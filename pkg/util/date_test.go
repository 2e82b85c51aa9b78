package util

import (
	"testing"
	"time"
)

func TestDateStamp(t *testing.T) {
	now := time.Date(2024, 10, 10, 0, 0, 0, 0, time.UTC)
	got := DateStamp("tables/output.csv", now)
	if got != "tables/output_2024-10-10.csv" {
		t.Fatalf("unexpected stamp %q", got)
	}
}

func TestPartStamp(t *testing.T) {
	if got := PartStamp("out.csv", 3); got != "out_3.csv" {
		t.Fatalf("unexpected part stamp %q", got)
	}
}
