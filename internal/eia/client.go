package eia

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/epeers/tracker/internal/metrics"
	"github.com/epeers/tracker/internal/models"
	"github.com/epeers/tracker/internal/upstream"
	"github.com/epeers/tracker/internal/util"
)

const defaultBaseURL = "https://api.eia.gov/v2"

// spotRoute is the daily petroleum spot price dataset (RWTC = WTI Cushing, RBRTE = Brent).
const spotRoute = "/petroleum/pri/spt/data/"

var (
	// ErrNoAPIKey is returned before any request is made when the key is missing.
	ErrNoAPIKey = errors.New("EIA API key not configured")
	// ErrMalformed is returned when the payload lacks response.data.
	ErrMalformed = errors.New("malformed EIA response")
)

// Client is an HTTP client for the EIA open data API
type Client struct {
	apiKey  string
	baseURL string
	fetcher *upstream.Fetcher
}

// NewClient creates a new EIA client
func NewClient(apiKey string, reg *metrics.Registry) *Client {
	return NewClientWithBaseURL(apiKey, defaultBaseURL, reg)
}

// NewClientWithBaseURL creates a new EIA client with a custom base URL (for testing)
func NewClientWithBaseURL(apiKey, baseURL string, reg *metrics.Registry) *Client {
	return &Client{
		apiKey:  apiKey,
		baseURL: baseURL,
		fetcher: upstream.NewFetcher(upstream.Settings{
			Name:       "eia",
			Timeout:    15 * time.Second,
			RatePerSec: 2,
			Burst:      4,
		}, reg),
	}
}

// Configured reports whether an API key is set.
func (c *Client) Configured() bool {
	return c.apiKey != ""
}

// GetSpotSeries fetches the most recent `length` daily observations across the
// named series and returns one DateSeries per requested name. A requested series
// with no observations maps to an empty DateSeries.
func (c *Client) GetSpotSeries(ctx context.Context, seriesNames []string, length int) (map[string]models.DateSeries, error) {
	if c.apiKey == "" {
		return nil, ErrNoAPIKey
	}
	if len(seriesNames) == 0 {
		return map[string]models.DateSeries{}, nil
	}

	params := url.Values{}
	params.Set("api_key", c.apiKey)
	params.Set("frequency", "daily")
	params.Set("data[0]", "value")
	for _, name := range seriesNames {
		params.Add("facets[series][]", name)
	}
	params.Set("sort[0][column]", "period")
	params.Set("sort[0][direction]", "desc")
	params.Set("offset", "0")
	params.Set("length", strconv.Itoa(length))

	var resp SpotResponse
	if err := c.fetcher.GetJSON(ctx, c.baseURL+spotRoute+"?"+params.Encode(), &resp); err != nil {
		return nil, fmt.Errorf("failed to fetch EIA spot series: %w", err)
	}
	if resp.Error != "" {
		return nil, fmt.Errorf("%s: %w", resp.Error, ErrMalformed)
	}
	if resp.Response == nil || resp.Response.Data == nil {
		return nil, fmt.Errorf("missing response.data: %w", ErrMalformed)
	}

	out := make(map[string]models.DateSeries, len(seriesNames))
	for _, name := range seriesNames {
		out[name] = make(models.DateSeries)
	}

	for _, row := range resp.Response.Data {
		series, ok := out[row.Series]
		if !ok || !row.Value.Valid || !util.IsFinite(row.Value.Value) {
			continue
		}
		if !util.IsValidDate(row.Period) || !util.IsWeekdayDate(row.Period) {
			continue
		}
		series[row.Period] = util.Round2(row.Value.Value)
	}

	return out, nil
}
