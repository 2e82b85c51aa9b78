package repository

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"StarSpin/internal/domain/models"
	domainrepo "StarSpin/internal/domain/repository"
)

var resultHeader = []string{
	"target", "fund_period", "fund_power",
	"sig_period", "sig_power", "sec_period", "sec_power",
	"num_sig", "harm_type", "threshold",
}

var peakHeader = []string{"target", "period", "power", "threshold"}

// CSVResultWriter appends one row per classified target to a CSV table,
// and optionally every significant peak to a companion all-peaks table.
type CSVResultWriter struct {
	mu    sync.Mutex
	file  *os.File
	w     *csv.Writer
	peaks *os.File
	pw    *csv.Writer
}

// NewCSVResultWriter creates the output table(s), writing headers.
// allPeaksPath may be empty to skip the per-peak table.
func NewCSVResultWriter(path, allPeaksPath string) (domainrepo.Sink, error) {
	file, w, err := createTable(path, resultHeader)
	if err != nil {
		return nil, err
	}

	c := &CSVResultWriter{file: file, w: w}

	if allPeaksPath != "" {
		peaks, pw, err := createTable(allPeaksPath, peakHeader)
		if err != nil {
			file.Close()
			return nil, err
		}
		c.peaks = peaks
		c.pw = pw
	}

	return c, nil
}

func createTable(path string, header []string) (*os.File, *csv.Writer, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, nil, fmt.Errorf("create output dir: %w", err)
		}
	}
	file, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("create output table: %w", err)
	}
	w := csv.NewWriter(file)
	if err := w.Write(header); err != nil {
		file.Close()
		return nil, nil, fmt.Errorf("write header: %w", err)
	}
	return file, w, nil
}

func (c *CSVResultWriter) Store(_ context.Context, res *models.RotationResult) error {
	row := res.Row()

	c.mu.Lock()
	defer c.mu.Unlock()

	record := []string{
		row.Target,
		f4(row.FundPeriod),
		f4(row.FundPower),
		f4(row.SigPeriod),
		f4(row.SigPower),
		f4(row.SecPeriod),
		f4(row.SecPower),
		strconv.Itoa(row.NumSig),
		row.HarmType,
		f6(row.Threshold),
	}
	if err := c.w.Write(record); err != nil {
		return fmt.Errorf("write result row: %w", err)
	}
	c.w.Flush()
	if err := c.w.Error(); err != nil {
		return fmt.Errorf("flush result row: %w", err)
	}

	if c.pw == nil {
		return nil
	}
	for _, p := range res.SigPeaks {
		rec := []string{row.Target, f4(p.Period), f4(p.Power), f4(res.Threshold)}
		if err := c.pw.Write(rec); err != nil {
			return fmt.Errorf("write peak row: %w", err)
		}
	}
	c.pw.Flush()
	if err := c.pw.Error(); err != nil {
		return fmt.Errorf("flush peak rows: %w", err)
	}
	return nil
}

func (c *CSVResultWriter) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.w.Flush()
	err := c.w.Error()
	if cerr := c.file.Close(); err == nil {
		err = cerr
	}
	if c.peaks != nil {
		c.pw.Flush()
		if perr := c.pw.Error(); err == nil {
			err = perr
		}
		if cerr := c.peaks.Close(); err == nil {
			err = cerr
		}
	}
	return err
}

func f4(v float64) string {
	return strconv.FormatFloat(v, 'f', 4, 64)
}

func f6(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}
