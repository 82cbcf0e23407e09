package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/epeers/tracker/internal/bundesbank"
	"github.com/epeers/tracker/internal/models"
	log "github.com/sirupsen/logrus"
)

// MarketService serves the auxiliary FX and bond-yield quotes
type MarketService struct {
	acq        *AcquisitionService
	currencies []string
}

// NewMarketService creates a new MarketService
func NewMarketService(acq *AcquisitionService, currencies []string) *MarketService {
	return &MarketService{
		acq:        acq,
		currencies: currencies,
	}
}

// CurrencyRates returns the USD price of each tracked currency. Individual
// quote failures are dropped with a warning; if every quote fails the call
// fails with ErrUpstreamFetch.
func (s *MarketService) CurrencyRates(ctx context.Context, now time.Time) (*models.CurrencyRatesResponse, error) {
	defer TrackTime(ctx, "MarketService.CurrencyRates")()

	var (
		mu    sync.Mutex
		rates = make(map[string]float64, len(s.currencies))
		g     errgroup.Group
	)
	g.SetLimit(4)

	for _, code := range s.currencies {
		g.Go(func() error {
			symbol := code + "USD=X"
			quote, err := s.acq.Quote(ctx, symbol)
			if err != nil {
				log.Warnf("currency quote %s failed: %v", symbol, err)
				AddWarningf(ctx, models.WarnQuoteDropped, "%s quote unavailable", code)
				return nil
			}
			mu.Lock()
			rates[code] = quote.Price
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	if len(rates) == 0 && len(s.currencies) > 0 {
		return nil, fmt.Errorf("%w: no currency quotes available", ErrUpstreamFetch)
	}

	return &models.CurrencyRatesResponse{
		Base:      "USD",
		Rates:     rates,
		UpdatedAt: now.UTC(),
		Warnings:  []models.Warning{},
	}, nil
}

// BundYield returns the latest German 10-year government bond yield
func (s *MarketService) BundYield(ctx context.Context, now time.Time) (*models.BundYieldResponse, error) {
	defer TrackTime(ctx, "MarketService.BundYield")()

	y, err := s.acq.LatestYield(ctx, bundesbank.TenYearYieldSeries)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUpstreamFetch, err)
	}

	return &models.BundYieldResponse{
		Series:    y.Series,
		Yield:     y.Value,
		Date:      y.Date,
		UpdatedAt: now.UTC(),
	}, nil
}
