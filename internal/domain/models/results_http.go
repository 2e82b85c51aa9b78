package models

// Requests for the results HTTP endpoints. Defined in domain for consistency and reuse.

type ResultListRequest struct {
	HarmType string `query:"harm_type" json:"harm_type" validate:"omitempty,oneof=- half half-maybe dbl dbl-maybe"`
	Limit    int    `query:"limit" json:"limit" default:"100" validate:"gte=1,lte=1000"`
	Offset   int    `query:"offset" json:"offset" default:"0" validate:"gte=0"`
}

type FoldRequest struct {
	Period float64 `query:"period" json:"period" validate:"required,gt=0"`
}

// ResultRow is the transport form of a RotationResult: absent peaks are
// encoded with the legacy sentinel so downstream tables stay compatible.
type ResultRow struct {
	Target     string  `json:"target"`
	File       string  `json:"file,omitempty"`
	Aperture   int     `json:"aperture"`
	FundPeriod float64 `json:"fund_period"`
	FundPower  float64 `json:"fund_power"`
	SigPeriod  float64 `json:"sig_period"`
	SigPower   float64 `json:"sig_power"`
	SecPeriod  float64 `json:"sec_period"`
	SecPower   float64 `json:"sec_power"`
	Threshold  float64 `json:"threshold"`
	NumSig     int     `json:"num_sig"`
	HarmType   string  `json:"harm_type"`
}

// Row converts a RotationResult to its sentinel-encoded transport form.
func (r *RotationResult) Row() ResultRow {
	row := ResultRow{
		Target:     r.Target,
		File:       r.File,
		Aperture:   r.Aperture,
		FundPeriod: r.FundPeriod,
		FundPower:  r.FundPower,
		SigPeriod:  Sentinel,
		SigPower:   Sentinel,
		SecPeriod:  Sentinel,
		SecPower:   Sentinel,
		Threshold:  r.Threshold,
		NumSig:     r.ExtraSig,
		HarmType:   r.Harmonic.String(),
	}
	if r.Primary != nil {
		row.SigPeriod = r.Primary.Period
		row.SigPower = r.Primary.Power
	}
	if r.Secondary != nil {
		row.SecPeriod = r.Secondary.Period
		row.SecPower = r.Secondary.Power
	}
	return row
}

// FoldResponse carries a phase-folded light curve for one trial period.
type FoldResponse struct {
	Target string    `json:"target"`
	Period float64   `json:"period"`
	Phase  []float64 `json:"phase"`
	Flux   []float64 `json:"flux"`
}
