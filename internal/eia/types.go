package eia

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// SpotResponse represents the EIA v2 data endpoint response
type SpotResponse struct {
	Response *struct {
		Total json.RawMessage `json:"total"`
		Data  []SpotRow       `json:"data"`
	} `json:"response"`
	Error string `json:"error,omitempty"`
}

// SpotRow is one (series, period) observation
type SpotRow struct {
	Period string    `json:"period"`
	Series string    `json:"series"`
	Value  FlexFloat `json:"value"`
	Units  string    `json:"units"`
}

// FlexFloat accepts a JSON number, a numeric string, or null.
// Unparseable strings decode as invalid rather than failing the payload.
// EIA serves values as strings on some routes and numbers on others.
type FlexFloat struct {
	Value float64
	Valid bool
}

// UnmarshalJSON implements json.Unmarshaler
func (f *FlexFloat) UnmarshalJSON(b []byte) error {
	*f = FlexFloat{}
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		return nil
	}

	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		if s == "" {
			return nil
		}
		// Placeholders like "NA" mark a missing observation.
		if v, err := strconv.ParseFloat(s, 64); err == nil {
			f.Value, f.Valid = v, true
		}
		return nil
	}

	var v float64
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	f.Value, f.Valid = v, true
	return nil
}
