package models

// Sentinel marks "not applicable" in external result records (CSV columns,
// ClickHouse rows, Kafka payloads). Inside the pipeline absent peaks are
// nil pointers; the sentinel appears only at the sink boundary.
const Sentinel = -9999.0

// HarmonicType classifies the relationship between the two strongest
// significant periodogram peaks.
type HarmonicType int

const (
	HarmonicNone HarmonicType = iota
	HarmonicHalf
	HarmonicHalfMaybe
	HarmonicDouble
	HarmonicDoubleMaybe
)

// String renders the legacy result-table tag for each harmonic type.
func (h HarmonicType) String() string {
	switch h {
	case HarmonicHalf:
		return "half"
	case HarmonicHalfMaybe:
		return "half-maybe"
	case HarmonicDouble:
		return "dbl"
	case HarmonicDoubleMaybe:
		return "dbl-maybe"
	default:
		return "-"
	}
}

// Maybe reports whether the harmonic call carries the uncertain qualifier
// (secondary power more than half the primary power).
func (h HarmonicType) Maybe() bool {
	return h == HarmonicHalfMaybe || h == HarmonicDoubleMaybe
}

// RotationResult is the per-target output record of the classification
// pipeline. Primary and Secondary are nil when no (or only one) peak
// cleared the significance threshold.
type RotationResult struct {
	Target     string
	File       string
	Aperture   int // chosen aperture extension, 0 when not applicable
	FundPeriod float64
	FundPower  float64
	Primary    *Peak
	Secondary  *Peak
	Threshold  float64
	ExtraSig   int
	Harmonic   HarmonicType
	SigPeaks   []Peak // every peak that cleared the threshold, index order
}
