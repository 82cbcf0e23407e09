package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/epeers/tracker/internal/bundesbank"
	"github.com/epeers/tracker/internal/cache"
	"github.com/epeers/tracker/internal/models"
)

func TestCurrencyRates_PartialFailure(t *testing.T) {
	futures := newFakeFutures()
	futures.quotes["EURUSD=X"] = 1.082346
	futures.quotes["GBPUSD=X"] = 1.27
	acq := NewAcquisitionService(futures, nil, nil, cache.NewMemoryCache(), nil)
	svc := NewMarketService(acq, []string{"EUR", "GBP", "JPY"})

	now := time.Date(2026, 3, 20, 12, 0, 0, 0, time.UTC)
	ctx, wc := NewWarningContext(context.Background())
	resp, err := svc.CurrencyRates(ctx, now)
	require.NoError(t, err)

	assert.Equal(t, "USD", resp.Base)
	assert.Equal(t, map[string]float64{"EUR": 1.082346, "GBP": 1.27}, resp.Rates)
	assert.Equal(t, now, resp.UpdatedAt)

	warnings := wc.GetWarnings()
	require.Len(t, warnings, 1)
	assert.Equal(t, models.WarnQuoteDropped, warnings[0].Code)
	assert.Contains(t, warnings[0].Message, "JPY")
}

func TestCurrencyRates_AllFail(t *testing.T) {
	acq := NewAcquisitionService(newFakeFutures(), nil, nil, nil, nil)
	svc := NewMarketService(acq, []string{"EUR", "GBP"})

	_, err := svc.CurrencyRates(context.Background(), time.Now())
	assert.True(t, errors.Is(err, ErrUpstreamFetch))
}

func TestCurrencyRates_Cached(t *testing.T) {
	futures := newFakeFutures()
	futures.quotes["EURUSD=X"] = 1.08
	acq := NewAcquisitionService(futures, nil, nil, cache.NewMemoryCache(), nil)
	svc := NewMarketService(acq, []string{"EUR"})

	for i := 0; i < 3; i++ {
		_, err := svc.CurrencyRates(context.Background(), time.Now())
		require.NoError(t, err)
	}
	assert.Equal(t, 1, futures.callCount("quote:EURUSD=X"))
}

func TestBundYield(t *testing.T) {
	yields := &fakeYields{yield: &bundesbank.Yield{Value: 2.75, Date: "2026-03-19"}}
	acq := NewAcquisitionService(nil, nil, yields, nil, nil)
	svc := NewMarketService(acq, nil)

	resp, err := svc.BundYield(context.Background(), time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, bundesbank.TenYearYieldSeries, resp.Series)
	assert.Equal(t, 2.75, resp.Yield)
	assert.Equal(t, "2026-03-19", resp.Date)
}

func TestBundYield_Failure(t *testing.T) {
	acq := NewAcquisitionService(nil, nil, &fakeYields{err: errFakeUpstream}, nil, nil)
	svc := NewMarketService(acq, nil)

	_, err := svc.BundYield(context.Background(), time.Now())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUpstreamFetch))
	assert.True(t, errors.Is(err, errFakeUpstream))
}
