package yahoo

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

// Yahoo Finance serves futures (CL=F, BZ=F) and FX (EURUSD=X) through the same chart endpoint.
// It is unauthenticated but rejects requests without a browser-like User-Agent.
const defaultBaseURL = "https://query1.finance.yahoo.com/v8/finance/chart"

// ErrMalformed is returned when a chart payload has no usable result.
var ErrMalformed = errors.New("malformed chart response")

// Client is an HTTP client for the Yahoo Finance chart API
type Client struct {
	baseURL string
	fetcher *upstream.Fetcher
}

// NewClient creates a new Yahoo Finance client
func NewClient(reg *metrics.Registry) *Client {
	return NewClientWithBaseURL(defaultBaseURL, reg)
}

// NewClientWithBaseURL creates a new Yahoo Finance client with a custom base URL (for testing)
func NewClientWithBaseURL(baseURL string, reg *metrics.Registry) *Client {
	return &Client{
		baseURL: baseURL,
		fetcher: upstream.NewFetcher(upstream.Settings{
			Name:       "yahoo",
			Timeout:    10 * time.Second,
			RatePerSec: 4,
			Burst:      8,
			Headers:    map[string]string{"User-Agent": "Mozilla/5.0"},
		}, reg),
	}
}

// GetDailyClose fetches daily settles in [start, endExclusive) plus the live price.
// Weekend bars and null or zero closes are discarded; closes are rounded to cents.
func (c *Client) GetDailyClose(ctx context.Context, symbol string, start, endExclusive time.Time) (*models.DailyCloseSeries, error) {
	params := url.Values{}
	params.Set("period1", strconv.FormatInt(start.Unix(), 10))
	params.Set("period2", strconv.FormatInt(endExclusive.Unix(), 10))
	params.Set("interval", "1d")

	result, err := c.chart(ctx, symbol, params)
	if err != nil {
		return nil, err
	}

	endDate := util.FormatDate(endExclusive)
	closes := make(models.DateSeries)
	forEachClose(result, func(ts int64, px float64) {
		// Daily bars are stamped at the session open; shift to the exchange-local date.
		date := util.FormatDate(time.Unix(ts+result.Meta.GMTOffset, 0))
		if date >= endDate || !util.IsWeekdayDate(date) {
			return
		}
		closes[date] = util.Round2(px)
	})

	return &models.DailyCloseSeries{
		Symbol:      symbol,
		CloseByDate: closes,
		Live:        liveFromMeta(result.Meta, 2),
	}, nil
}

// GetIntradayClose fetches intraday bar closes for the last `days` days at the given interval.
func (c *Client) GetIntradayClose(ctx context.Context, symbol string, days int, interval string) (*models.IntradayCloseSeries, error) {
	params := url.Values{}
	params.Set("range", fmt.Sprintf("%dd", days))
	params.Set("interval", interval)
	params.Set("includePrePost", "false")

	result, err := c.chart(ctx, symbol, params)
	if err != nil {
		return nil, err
	}

	byTS := make(map[int64]float64)
	forEachClose(result, func(ts int64, px float64) {
		byTS[ts] = util.Round2(px)
	})

	return &models.IntradayCloseSeries{
		Symbol:      symbol,
		ByTimestamp: byTS,
		Live:        liveFromMeta(result.Meta, 2),
	}, nil
}

// GetQuote fetches the live market price for a symbol, rounded to 6 decimals
func (c *Client) GetQuote(ctx context.Context, symbol string) (*ParsedQuote, error) {
	result, err := c.chart(ctx, symbol, url.Values{})
	if err != nil {
		return nil, err
	}

	live := liveFromMeta(result.Meta, 6)
	if !live.Finite() {
		return nil, fmt.Errorf("%s: no regularMarketPrice: %w", symbol, ErrMalformed)
	}

	return &ParsedQuote{
		Symbol: symbol,
		Price:  *live.Price,
	}, nil
}

func (c *Client) chart(ctx context.Context, symbol string, params url.Values) (*ChartResult, error) {
	reqURL := c.baseURL + "/" + url.PathEscape(symbol)
	if len(params) > 0 {
		reqURL += "?" + params.Encode()
	}

	var resp ChartResponse
	if err := c.fetcher.GetJSON(ctx, reqURL, &resp); err != nil {
		return nil, fmt.Errorf("failed to fetch chart for %s: %w", symbol, err)
	}

	if resp.Chart.Error != nil {
		return nil, fmt.Errorf("%s: %s: %s: %w", symbol, resp.Chart.Error.Code, resp.Chart.Error.Description, ErrMalformed)
	}
	if len(resp.Chart.Result) == 0 {
		return nil, fmt.Errorf("%s: empty result: %w", symbol, ErrMalformed)
	}

	return &resp.Chart.Result[0], nil
}

// forEachClose visits every bar with a usable close. Nulls, zeros and
// non-finite values are the feed's placeholders for non-trading bars.
func forEachClose(result *ChartResult, fn func(ts int64, px float64)) {
	if len(result.Indicators.Quote) == 0 {
		return
	}
	closes := result.Indicators.Quote[0].Close
	for i, ts := range result.Timestamp {
		if i >= len(closes) || closes[i] == nil {
			continue
		}
		v := *closes[i]
		if v == 0 || !util.IsFinite(v) {
			continue
		}
		fn(ts, v)
	}
}

func liveFromMeta(meta ChartMeta, places int32) models.LivePrice {
	var live models.LivePrice
	if meta.RegularMarketPrice != nil && util.IsFinite(*meta.RegularMarketPrice) && *meta.RegularMarketPrice != 0 {
		p := util.Round(*meta.RegularMarketPrice, places)
		live.Price = &p
	}
	if meta.RegularMarketTime != nil {
		ts := time.Unix(*meta.RegularMarketTime, 0).UTC()
		live.Timestamp = &ts
	}
	return live
}
