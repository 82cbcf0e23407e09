package models

import (
	"time"
)

// ErrorResponse represents an API error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// CalibratedSpreadRequest holds the optional query parameters for the calibrated spread endpoint
type CalibratedSpreadRequest struct {
	AsOf FlexibleDate `form:"as_of"`
}

// CalibratedResponse is the full Brent/WTI calibration payload served to the dashboard
type CalibratedResponse struct {
	Status           string           `json:"status"`
	GeneratedAt      time.Time        `json:"generated_at"`
	AsOf             string           `json:"as_of"`
	NextMarketUpdate time.Time        `json:"next_market_update"`
	Stale            bool             `json:"stale"`
	Metaculus        MetaculusSummary `json:"metaculus"`
	WTI              LegSummary       `json:"wti"`
	Brent            LegSummary       `json:"brent"`
	Spread           SpreadSummary    `json:"spread"`
	Basis            BasisSettings    `json:"basis"`
	History          HistorySummary   `json:"history"`
	Intraday         IntradaySummary  `json:"intraday"`
	Warnings         []Warning        `json:"warnings"`
}

// MetaculusSummary describes the tracked question and how it currently resolves
type MetaculusSummary struct {
	TargetDate            string     `json:"target_date"`
	InterpolationDeadline string     `json:"interpolation_deadline"`
	Resolution            Resolution `json:"resolution"`
}

// LegSummary is the per-instrument calibration block
type LegSummary struct {
	Symbol              string          `json:"symbol"`
	EIASeries           string          `json:"eia_series"`
	CalibratedSpot      float64         `json:"calibrated_spot"`
	LiveFutures         float64         `json:"live_futures"`
	LiveTimestamp       *time.Time      `json:"live_timestamp"`
	SmoothedBasis       float64         `json:"smoothed_basis"`
	SmoothedBasisMethod SmoothingMethod `json:"smoothed_basis_method"`
	BasisLastDate       string          `json:"basis_last_date"`
	BasisAgeDays        int             `json:"basis_age_days"`
	BasisStale          bool            `json:"basis_stale"`
	RawBasis            []RawBasisPoint `json:"raw_basis"`
}

// SpreadSummary is the point-in-time Brent minus WTI spread
type SpreadSummary struct {
	Calibrated  float64 `json:"calibrated"`
	LiveFutures float64 `json:"live_futures"`
	Basis       float64 `json:"basis"`
}

// BasisSettings echoes the smoothing parameters used
type BasisSettings struct {
	WindowDays   int     `json:"window_days"`
	HalfLifeDays float64 `json:"half_life_days"`
}

// HistorySummary groups derived historical series
type HistorySummary struct {
	Daily DailyHistory `json:"daily"`
}

// DailyHistory holds parallel arrays, one entry per date. EIASpread entries are
// null when either leg's ground truth is missing for that date.
type DailyHistory struct {
	Dates            []string   `json:"dates"`
	FuturesSpread    []float64  `json:"futures_spread"`
	CalibratedSpread []float64  `json:"calibrated_spread"`
	EIASpread        []*float64 `json:"eia_spread"`
}

// IntradaySummary is the best-effort intraday block. When Available is false
// only the reason is reported.
type IntradaySummary struct {
	Available  bool            `json:"available"`
	Reason     string          `json:"reason,omitempty"`
	Interval   string          `json:"interval,omitempty"`
	Timestamps []int64         `json:"timestamps,omitempty"`
	Futures    *IntradayValues `json:"futures,omitempty"`
	Calibrated *IntradayValues `json:"calibrated,omitempty"`
}

// IntradayValues holds parallel arrays aligned with IntradaySummary.Timestamps
type IntradayValues struct {
	WTI    []float64 `json:"wti"`
	Brent  []float64 `json:"brent"`
	Spread []float64 `json:"spread"`
}

// CurrencyRatesResponse lists USD prices of the tracked currencies
type CurrencyRatesResponse struct {
	Base      string             `json:"base"`
	Rates     map[string]float64 `json:"rates"`
	UpdatedAt time.Time          `json:"updated_at"`
	Warnings  []Warning          `json:"warnings"`
}

// BundYieldResponse is the latest German 10Y government bond yield
type BundYieldResponse struct {
	Series    string    `json:"series"`
	Yield     float64   `json:"yield"`
	Date      string    `json:"date,omitempty"`
	UpdatedAt time.Time `json:"updated_at"`
}
