package models

import (
	"errors"
	"math"
)

var (
	ErrLengthMismatch = errors.New("models: parallel arrays have different lengths")
	ErrNonFinite      = errors.New("models: non-finite value in input array")
	ErrEmpty          = errors.New("models: empty input")
)

// Peak is one periodogram point, always a member of the Periods/Power grid.
type Peak struct {
	Period float64 `json:"period"`
	Power  float64 `json:"power"`
}

// Periodogram is the output contract of the periodogram collaborator:
// trial periods in ascending order, one power value per trial period,
// the grid point of the global maximum, bootstrap significance thresholds
// (index 0 is the one the classifier uses), and an opaque alias side-channel.
type Periodogram struct {
	Periods    []float64
	Power      []float64
	FundPeriod float64
	FundPower  float64
	Thresholds []float64
	Aliases    []float64
}

// Validate fails fast on malformed collaborator output: mismatched array
// lengths, empty grids, or non-finite values.
func (pg *Periodogram) Validate() error {
	if len(pg.Periods) == 0 {
		return ErrEmpty
	}
	if len(pg.Periods) != len(pg.Power) {
		return ErrLengthMismatch
	}
	for i := range pg.Periods {
		if pg.Periods[i] <= 0 || math.IsNaN(pg.Periods[i]) || math.IsInf(pg.Periods[i], 0) {
			return ErrNonFinite
		}
		if math.IsNaN(pg.Power[i]) || math.IsInf(pg.Power[i], 0) {
			return ErrNonFinite
		}
	}
	return nil
}
