package repository

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"StarSpin/internal/domain/models"
)

func readTable(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open table: %v", err)
	}
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("read table: %v", err)
	}
	return rows
}

func TestCSVResultWriterRow(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.csv")
	peaksPath := filepath.Join(dir, "peaks.csv")

	sink, err := NewCSVResultWriter(path, peaksPath)
	if err != nil {
		t.Fatalf("new writer: %v", err)
	}

	res := &models.RotationResult{
		Target:     "211748286",
		FundPeriod: 12.3456,
		FundPower:  0.8123,
		Primary:    &models.Peak{Period: 12.3456, Power: 0.8123},
		Secondary:  &models.Peak{Period: 6.1728, Power: 0.41},
		Threshold:  0.012345,
		ExtraSig:   1,
		Harmonic:   models.HarmonicHalf,
		SigPeaks: []models.Peak{
			{Period: 12.3456, Power: 0.8123},
			{Period: 6.1728, Power: 0.41},
			{Period: 3.1, Power: 0.2},
		},
	}
	if err := sink.Store(context.Background(), res); err != nil {
		t.Fatalf("store: %v", err)
	}
	if err := sink.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	rows := readTable(t, path)
	if len(rows) != 2 {
		t.Fatalf("expected header + 1 row, got %d rows", len(rows))
	}
	want := []string{
		"211748286", "12.3456", "0.8123",
		"12.3456", "0.8123", "6.1728", "0.4100",
		"1", "half", "0.012345",
	}
	got := rows[1]
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("column %d: expected %q, got %q (row %v)", i, want[i], got[i], got)
		}
	}

	peakRows := readTable(t, peaksPath)
	if len(peakRows) != 4 {
		t.Fatalf("expected header + 3 peak rows, got %d", len(peakRows))
	}
	if peakRows[3][1] != "3.1000" || peakRows[3][3] != "0.0123" {
		t.Fatalf("unexpected peak row %v", peakRows[3])
	}
}

func TestCSVResultWriterSentinels(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	sink, err := NewCSVResultWriter(path, "")
	if err != nil {
		t.Fatalf("new writer: %v", err)
	}

	res := &models.RotationResult{
		Target:     "201234567",
		FundPeriod: 44.2,
		FundPower:  0.3,
		Threshold:  0.02,
		Harmonic:   models.HarmonicNone,
	}
	if err := sink.Store(context.Background(), res); err != nil {
		t.Fatalf("store: %v", err)
	}
	if err := sink.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	rows := readTable(t, path)
	row := rows[1]
	for _, col := range []int{3, 4, 5, 6} {
		if row[col] != "-9999.0000" {
			t.Fatalf("column %d: expected sentinel, got %q", col, row[col])
		}
	}
	if row[7] != "0" || row[8] != "-" {
		t.Fatalf("unexpected num_sig/harm_type: %v", row)
	}
}
