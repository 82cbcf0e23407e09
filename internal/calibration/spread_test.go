package calibration

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/epeers/tracker/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func live(p float64) models.LivePrice {
	ts := time.Date(2026, 3, 5, 15, 0, 0, 0, time.UTC)
	return models.LivePrice{Price: &p, Timestamp: &ts}
}

func basis(v float64) models.SmoothedBasis {
	return models.SmoothedBasis{Value: &v, Method: models.MethodEWMA(3)}
}

func TestAssemblePointInTime(t *testing.T) {
	pit, err := AssemblePointInTime(live(66.00), basis(0.50), live(70.00), basis(1.25))
	require.NoError(t, err)

	assert.InDelta(t, 66.50, pit.WTISpot, 1e-9)
	assert.InDelta(t, 71.25, pit.BrentSpot, 1e-9)
	assert.InDelta(t, 0.75, pit.BasisSpread, 1e-9)
	assert.InDelta(t, 4.75, pit.CalibratedSpread, 1e-9)
	assert.InDelta(t, 4.00, pit.LiveFuturesSpread, 1e-9)
}

func TestSettleAsLive(t *testing.T) {
	closes := models.DateSeries{
		"2026-03-18": 66.00,
		"2026-03-19": math.NaN(),
		"2026-03-23": 68.00,
	}

	got := SettleAsLive(closes, "2026-03-20")
	require.True(t, got.Finite())
	assert.Equal(t, 66.00, *got.Price)
	assert.Equal(t, time.Date(2026, 3, 18, 0, 0, 0, 0, time.UTC), *got.Timestamp)

	assert.False(t, SettleAsLive(closes, "2026-03-17").Finite())
}

func TestAssemblePointInTime_FailsOnMissingInputs(t *testing.T) {
	_, err := AssemblePointInTime(models.LivePrice{}, basis(0.5), live(70), basis(1))
	assert.True(t, errors.Is(err, ErrNotFinite))

	_, err = AssemblePointInTime(live(66), basis(0.5), live(70), models.SmoothedBasis{Method: models.MethodNone})
	assert.True(t, errors.Is(err, ErrNotFinite))

	_, err = AssemblePointInTime(live(math.NaN()), basis(0.5), live(70), basis(1))
	assert.True(t, errors.Is(err, ErrNotFinite))
}

func TestBuildDailyHistory(t *testing.T) {
	wtiDaily := models.DateSeries{"2025-12-31": 60, "2026-01-02": 61, "2026-01-05": 62, "2026-01-06": 63}
	brentDaily := models.DateSeries{"2025-12-31": 64, "2026-01-02": 65.5, "2026-01-05": 66.25, "2026-01-07": 67}
	wtiGT := models.DateSeries{"2026-01-02": 61.5, "2026-01-05": 62.4}
	brentGT := models.DateSeries{"2026-01-02": 66.0}

	h := BuildDailyHistory(wtiDaily, brentDaily, wtiGT, brentGT, 0.25, "2026-01-01")

	assert.Equal(t, []string{"2026-01-02", "2026-01-05"}, h.Dates)
	assert.Equal(t, []float64{4.5, 4.25}, h.FuturesSpread)
	assert.Equal(t, []float64{4.75, 4.5}, h.CalibratedSpread)
	require.Len(t, h.EIASpread, 2)
	require.NotNil(t, h.EIASpread[0])
	assert.Equal(t, 4.5, *h.EIASpread[0])
	assert.Nil(t, h.EIASpread[1], "missing brent ground truth must be null")

	for _, d := range h.Dates {
		assert.GreaterOrEqual(t, d, "2026-01-01")
	}
}

func TestBuildDailyHistory_EmptyArraysNotNil(t *testing.T) {
	h := BuildDailyHistory(models.DateSeries{}, models.DateSeries{}, nil, nil, 0, "2026-01-01")
	assert.NotNil(t, h.Dates)
	assert.NotNil(t, h.EIASpread)
	assert.Empty(t, h.Dates)
}

func TestBuildIntraday(t *testing.T) {
	wti := &models.IntradayCloseSeries{ByTimestamp: map[int64]float64{100: 66.0, 200: 66.5, 300: 67.0}}
	brent := &models.IntradayCloseSeries{ByTimestamp: map[int64]float64{200: 70.5, 300: 71.25, 400: 72}}

	got, err := BuildIntraday(wti, brent, 0.5, 1.0, "15m")
	require.NoError(t, err)

	assert.True(t, got.Available)
	assert.Equal(t, "15m", got.Interval)
	assert.Equal(t, []int64{200, 300}, got.Timestamps)
	assert.Equal(t, []float64{4.0, 4.25}, got.Futures.Spread)
	assert.Equal(t, []float64{67.0, 67.5}, got.Calibrated.WTI)
	assert.Equal(t, []float64{71.5, 72.25}, got.Calibrated.Brent)
	assert.Equal(t, []float64{4.5, 4.75}, got.Calibrated.Spread)
}

func TestBuildIntraday_Unavailable(t *testing.T) {
	wti := &models.IntradayCloseSeries{ByTimestamp: map[int64]float64{100: 66.0, 200: 66.5}}
	brent := &models.IntradayCloseSeries{ByTimestamp: map[int64]float64{200: 70.5}}

	_, err := BuildIntraday(wti, brent, 0, 0, "15m")
	assert.True(t, errors.Is(err, ErrIntradayUnavailable))

	_, err = BuildIntraday(nil, brent, 0, 0, "15m")
	assert.True(t, errors.Is(err, ErrIntradayUnavailable))

	block := UnavailableIntraday("brent intraday fetch failed")
	assert.False(t, block.Available)
	assert.Nil(t, block.Timestamps)
	assert.Nil(t, block.Calibrated)
}
