// Package bundesbank reads the German 10-year government bond yield from the
// Bundesbank SDMX time series API.
package bundesbank

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/epeers/tracker/internal/metrics"
	"github.com/epeers/tracker/internal/upstream"
	"github.com/epeers/tracker/internal/util"
)

const (
	defaultBaseURL = "https://api.statistiken.bundesbank.de/rest/data"

	// TenYearYieldSeries is the daily yield on listed federal securities, 10 years residual maturity.
	TenYearYieldSeries = "BBSSY/D.REN.EUR.A630.000000WT1010.A"

	// single-series queries always use this key
	seriesKey = "0:0:0:0:0:0"
)

// ErrMalformed is returned when the payload carries no usable observation.
var ErrMalformed = errors.New("malformed SDMX response")

// Yield is the latest observation of a yield series
type Yield struct {
	Series string
	Value  float64
	// Date is empty when the structure does not list observation periods.
	Date string
}

type sdmxResponse struct {
	Data struct {
		DataSets []struct {
			Series map[string]struct {
				Observations map[string][]json.RawMessage `json:"observations"`
			} `json:"series"`
		} `json:"dataSets"`
		Structure struct {
			Dimensions struct {
				Observation []struct {
					ID     string `json:"id"`
					Values []struct {
						ID string `json:"id"`
					} `json:"values"`
				} `json:"observation"`
			} `json:"dimensions"`
		} `json:"structure"`
	} `json:"data"`
}

// Client is an HTTP client for the Bundesbank statistics API
type Client struct {
	baseURL string
	fetcher *upstream.Fetcher
}

// NewClient creates a new Bundesbank client
func NewClient(reg *metrics.Registry) *Client {
	return NewClientWithBaseURL(defaultBaseURL, reg)
}

// NewClientWithBaseURL creates a new Bundesbank client with a custom base URL (for testing)
func NewClientWithBaseURL(baseURL string, reg *metrics.Registry) *Client {
	return &Client{
		baseURL: baseURL,
		fetcher: upstream.NewFetcher(upstream.Settings{
			Name:    "bundesbank",
			Timeout: 15 * time.Second,
		}, reg),
	}
}

// GetLatestYield returns the most recent observation of series, rounded to 2 decimals.
func (c *Client) GetLatestYield(ctx context.Context, series string) (*Yield, error) {
	var resp sdmxResponse
	if err := c.fetcher.GetJSON(ctx, c.baseURL+"/"+series, &resp); err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", series, err)
	}

	if len(resp.Data.DataSets) == 0 {
		return nil, fmt.Errorf("no dataSets: %w", ErrMalformed)
	}
	s, ok := resp.Data.DataSets[0].Series[seriesKey]
	if !ok || len(s.Observations) == 0 {
		return nil, fmt.Errorf("no observations for series %s: %w", seriesKey, ErrMalformed)
	}

	// Observation keys are indexes into the period dimension; the largest is the latest.
	latest := -1
	for k := range s.Observations {
		idx, err := strconv.Atoi(k)
		if err != nil {
			continue
		}
		if idx > latest {
			latest = idx
		}
	}
	if latest < 0 {
		return nil, fmt.Errorf("no integer observation keys: %w", ErrMalformed)
	}

	obs := s.Observations[strconv.Itoa(latest)]
	if len(obs) == 0 {
		return nil, fmt.Errorf("empty observation %d: %w", latest, ErrMalformed)
	}
	value, err := parseObservation(obs[0])
	if err != nil {
		return nil, fmt.Errorf("observation %d: %w", latest, errors.Join(ErrMalformed, err))
	}

	y := &Yield{
		Series: series,
		Value:  util.Round2(value),
	}
	for _, dim := range resp.Data.Structure.Dimensions.Observation {
		if dim.ID == "TIME_PERIOD" && latest < len(dim.Values) {
			y.Date = dim.Values[latest].ID
		}
	}
	return y, nil
}

// parseObservation accepts the value as a JSON number or numeric string.
func parseObservation(raw json.RawMessage) (float64, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return 0, errors.New("null value")
	}
	var v float64
	if err := json.Unmarshal(raw, &v); err == nil {
		return v, nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return 0, fmt.Errorf("unexpected value %s", raw)
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("unexpected value %q", s)
	}
	if !util.IsFinite(v) {
		return 0, fmt.Errorf("non-finite value %q", s)
	}
	return v, nil
}
