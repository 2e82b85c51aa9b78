package lightcurve

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"StarSpin/internal/domain/models"
	xhttp "StarSpin/pkg/http"
)

// Format names the two light-curve table conventions the survey produces.
const (
	FormatSFF = "sff" // per-aperture extensions, corrected flux, MOVING flag
	FormatSC  = "sc"  // detrended flux plus separable time trend
)

// BestAperture is the extension holding the upstream pipeline's preferred
// extraction in sff files. Candidate apertures live in extensions 2..20.
const (
	BestAperture   = 1
	FirstCandidate = 2
	LastCandidate  = 20
)

// Reader loads light curves from local files or HTTP(S) URLs. Rows flagged
// or non-finite are dropped at read time, so curves handed to the pipeline
// always satisfy the parallel-array and finiteness contract.
type Reader struct {
	dataDir string
	client  *xhttp.Client
}

// NewReader creates a reader rooted at dataDir. Paths that parse as URLs
// are fetched with the given HTTP client; a nil client disables remote reads.
func NewReader(dataDir string, client *xhttp.Client) *Reader {
	return &Reader{dataDir: dataDir, client: client}
}

// DetectFormat infers the table convention from the file name, matching the
// survey's naming scheme. Returns "" when the name is ambiguous.
func DetectFormat(path string) string {
	name := strings.ToLower(filepath.Base(path))
	switch {
	case strings.Contains(name, "k2sff"), strings.Contains(name, "sff"):
		return FormatSFF
	case strings.Contains(name, "k2sc"), strings.Contains(name, "sc"):
		return FormatSC
	default:
		return ""
	}
}

// Read returns the light curve for one extension of a file. For sff tables
// ext selects the aperture; 0 falls back to the best aperture (there is no
// curve in extension 0). For sc tables ext is ignored.
func (r *Reader) Read(ctx context.Context, path string, ext int) (models.LightCurve, error) {
	format := DetectFormat(path)
	rows, err := r.load(ctx, path)
	if err != nil {
		return models.LightCurve{}, err
	}

	switch format {
	case FormatSC:
		return readSC(rows)
	case FormatSFF:
		if ext <= 0 {
			ext = BestAperture
		}
		return readSFF(rows, ext)
	default:
		return models.LightCurve{}, fmt.Errorf("lightcurve: cannot determine format of %s", path)
	}
}

// Apertures returns every candidate aperture of a file. For sff tables these
// are extensions 2..20 (the best-aperture extension is excluded from the
// scan, as are extensions absent from the file). For sc tables there is a
// single extraction.
func (r *Reader) Apertures(ctx context.Context, path string) ([]models.ApertureCandidate, error) {
	format := DetectFormat(path)
	rows, err := r.load(ctx, path)
	if err != nil {
		return nil, err
	}

	if format == FormatSC {
		lc, err := readSC(rows)
		if err != nil {
			return nil, err
		}
		return []models.ApertureCandidate{{Ext: BestAperture, Curve: lc}}, nil
	}

	var cands []models.ApertureCandidate
	for ext := FirstCandidate; ext <= LastCandidate; ext++ {
		lc, err := readSFF(rows, ext)
		if err != nil {
			return nil, err
		}
		if lc.Len() == 0 {
			continue
		}
		cands = append(cands, models.ApertureCandidate{Ext: ext, Curve: lc})
	}
	if len(cands) == 0 {
		return nil, fmt.Errorf("lightcurve: %s has no candidate apertures", path)
	}
	return cands, nil
}

func (r *Reader) load(ctx context.Context, path string) ([][]string, error) {
	var raw io.Reader

	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		if r.client == nil {
			return nil, fmt.Errorf("lightcurve: remote path %s but no HTTP client configured", path)
		}
		var body []byte
		err := r.client.SendAndParse(ctx, &xhttp.RequestOptions{
			Method: xhttp.MethodGet,
			URL:    path,
		}, &body)
		if err != nil {
			return nil, fmt.Errorf("lightcurve: fetch %s: %w", path, err)
		}
		raw = bytes.NewReader(body)
	} else {
		full := path
		if !filepath.IsAbs(path) && r.dataDir != "" {
			full = filepath.Join(r.dataDir, path)
		}
		f, err := os.Open(full)
		if err != nil {
			return nil, fmt.Errorf("lightcurve: open %s: %w", full, err)
		}
		defer f.Close()
		raw = f
	}

	cr := csv.NewReader(raw)
	cr.TrimLeadingSpace = true
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("lightcurve: parse %s: %w", path, err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("lightcurve: %s has no data rows", path)
	}
	return rows, nil
}

// readSFF extracts one aperture from an sff table. Columns: EXT, T, FCOR,
// MOVING. Rows with the MOVING flag set (data taken during a thruster fire)
// are dropped.
func readSFF(rows [][]string, ext int) (models.LightCurve, error) {
	cols, err := columnIndex(rows[0], "EXT", "T", "FCOR", "MOVING")
	if err != nil {
		return models.LightCurve{}, err
	}

	var lc models.LightCurve
	for i, row := range rows[1:] {
		rowExt, err := strconv.Atoi(strings.TrimSpace(row[cols[0]]))
		if err != nil {
			return models.LightCurve{}, fmt.Errorf("lightcurve: row %d: bad EXT: %w", i+2, err)
		}
		if rowExt != ext {
			continue
		}
		moving, err := strconv.Atoi(strings.TrimSpace(row[cols[3]]))
		if err != nil {
			return models.LightCurve{}, fmt.Errorf("lightcurve: row %d: bad MOVING: %w", i+2, err)
		}
		if moving != 0 {
			continue
		}
		t, f, err := parsePair(row[cols[1]], row[cols[2]], i+2)
		if err != nil {
			return models.LightCurve{}, err
		}
		if !isFinite(t) || !isFinite(f) {
			continue
		}
		lc.Time = append(lc.Time, t)
		lc.Flux = append(lc.Flux, f)
	}
	return lc, nil
}

// readSC reads an sc table. Columns: TIME, FLUX, TREND_T. Only rows where
// both flux and trend are finite survive; the position-dependent trend is
// already removed upstream, so the time trend is added back around its
// median to keep the long-term behavior while normalizing the level.
func readSC(rows [][]string) (models.LightCurve, error) {
	cols, err := columnIndex(rows[0], "TIME", "FLUX", "TREND_T")
	if err != nil {
		return models.LightCurve{}, err
	}

	var lc models.LightCurve
	var trends []float64
	for i, row := range rows[1:] {
		t, f, err := parsePair(row[cols[0]], row[cols[1]], i+2)
		if err != nil {
			return models.LightCurve{}, err
		}
		trend, err := strconv.ParseFloat(strings.TrimSpace(row[cols[2]]), 64)
		if err != nil {
			return models.LightCurve{}, fmt.Errorf("lightcurve: row %d: bad TREND_T: %w", i+2, err)
		}
		if !isFinite(t) || !isFinite(f) || !isFinite(trend) {
			continue
		}
		lc.Time = append(lc.Time, t)
		lc.Flux = append(lc.Flux, f)
		trends = append(trends, trend)
	}
	if len(trends) == 0 {
		return lc, nil
	}

	med := median(trends)
	for i := range lc.Flux {
		lc.Flux[i] += trends[i] - med
	}
	return lc, nil
}

func columnIndex(header []string, names ...string) ([]int, error) {
	idx := make([]int, len(names))
	for i, name := range names {
		idx[i] = -1
		for j, h := range header {
			if strings.EqualFold(strings.TrimSpace(h), name) {
				idx[i] = j
				break
			}
		}
		if idx[i] < 0 {
			return nil, fmt.Errorf("lightcurve: missing column %s", name)
		}
	}
	return idx, nil
}

func parsePair(ts, fs string, line int) (float64, float64, error) {
	t, err := strconv.ParseFloat(strings.TrimSpace(ts), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("lightcurve: row %d: bad time: %w", line, err)
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(fs), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("lightcurve: row %d: bad flux: %w", line, err)
	}
	return t, f, nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func median(values []float64) float64 {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)
	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}
