package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/epeers/tracker/internal/bundesbank"
	"github.com/epeers/tracker/internal/cache"
	"github.com/epeers/tracker/internal/metrics"
	"github.com/epeers/tracker/internal/models"
	"github.com/epeers/tracker/internal/util"
	"github.com/epeers/tracker/internal/yahoo"
	log "github.com/sirupsen/logrus"
)

// Cache lifetimes per feed. Futures move intraday; EIA publishes once a day.
const (
	FuturesTTL     = 60 * time.Second
	QuoteTTL       = 60 * time.Second
	GroundTruthTTL = 15 * time.Minute
	YieldTTL       = 15 * time.Minute
)

// FuturesSource fetches futures and FX prices (Yahoo Finance).
type FuturesSource interface {
	GetDailyClose(ctx context.Context, symbol string, start, endExclusive time.Time) (*models.DailyCloseSeries, error)
	GetIntradayClose(ctx context.Context, symbol string, days int, interval string) (*models.IntradayCloseSeries, error)
	GetQuote(ctx context.Context, symbol string) (*yahoo.ParsedQuote, error)
}

// GroundTruthSource fetches named daily spot series (EIA). Configured is false
// when the source lacks the credential it needs.
type GroundTruthSource interface {
	Configured() bool
	GetSpotSeries(ctx context.Context, seriesNames []string, length int) (map[string]models.DateSeries, error)
}

// YieldSource fetches the latest observation of a yield series (Bundesbank).
type YieldSource interface {
	GetLatestYield(ctx context.Context, series string) (*bundesbank.Yield, error)
}

// AcquisitionService puts a read-through cache in front of the upstream feeds
type AcquisitionService struct {
	futures     FuturesSource
	groundTruth GroundTruthSource
	yields      YieldSource
	cache       cache.Cache
	metrics     *metrics.Registry
}

// NewAcquisitionService creates a new AcquisitionService. A nil cache disables caching.
func NewAcquisitionService(
	futures FuturesSource,
	groundTruth GroundTruthSource,
	yields YieldSource,
	c cache.Cache,
	reg *metrics.Registry,
) *AcquisitionService {
	return &AcquisitionService{
		futures:     futures,
		groundTruth: groundTruth,
		yields:      yields,
		cache:       c,
		metrics:     reg,
	}
}

// DailyClose returns daily settles for symbol in [start, endExclusive)
func (s *AcquisitionService) DailyClose(ctx context.Context, symbol string, start, endExclusive time.Time) (*models.DailyCloseSeries, error) {
	key := fmt.Sprintf("futures:daily:%s:%s:%s", symbol, util.FormatDate(start), util.FormatDate(endExclusive))
	return readThrough(ctx, s, key, FuturesTTL, func() (*models.DailyCloseSeries, error) {
		return s.futures.GetDailyClose(ctx, symbol, start, endExclusive)
	})
}

// IntradayClose returns intraday bar closes for symbol
func (s *AcquisitionService) IntradayClose(ctx context.Context, symbol string, days int, interval string) (*models.IntradayCloseSeries, error) {
	key := fmt.Sprintf("futures:intraday:%s:%d:%s", symbol, days, interval)
	return readThrough(ctx, s, key, FuturesTTL, func() (*models.IntradayCloseSeries, error) {
		return s.futures.GetIntradayClose(ctx, symbol, days, interval)
	})
}

// GroundTruthConfigured reports whether the ground-truth feed can be queried at all.
func (s *AcquisitionService) GroundTruthConfigured() bool {
	return s.groundTruth.Configured()
}

// GroundTruth returns the named spot series, one DateSeries per name
func (s *AcquisitionService) GroundTruth(ctx context.Context, seriesNames []string, length int) (map[string]models.DateSeries, error) {
	key := fmt.Sprintf("groundtruth:%s:%d", strings.Join(seriesNames, ","), length)
	return readThrough(ctx, s, key, GroundTruthTTL, func() (map[string]models.DateSeries, error) {
		return s.groundTruth.GetSpotSeries(ctx, seriesNames, length)
	})
}

// Quote returns the live price for a symbol
func (s *AcquisitionService) Quote(ctx context.Context, symbol string) (*yahoo.ParsedQuote, error) {
	return readThrough(ctx, s, "quote:"+symbol, QuoteTTL, func() (*yahoo.ParsedQuote, error) {
		return s.futures.GetQuote(ctx, symbol)
	})
}

// LatestYield returns the most recent observation of a yield series
func (s *AcquisitionService) LatestYield(ctx context.Context, series string) (*bundesbank.Yield, error) {
	return readThrough(ctx, s, "yield:"+series, YieldTTL, func() (*bundesbank.Yield, error) {
		return s.yields.GetLatestYield(ctx, series)
	})
}

// readThrough serves key from the cache or calls fetch and stores the result.
// Cache errors are logged and otherwise ignored; fetch errors are never cached.
func readThrough[T any](ctx context.Context, s *AcquisitionService, key string, ttl time.Duration, fetch func() (T, error)) (T, error) {
	var zero T
	if s.cache != nil {
		data, ok, err := s.cache.Get(ctx, key)
		if err != nil {
			log.Warnf("cache get %s: %v", key, err)
		}
		if ok {
			var v T
			if err := json.Unmarshal(data, &v); err == nil {
				s.metrics.ObserveCache(true)
				return v, nil
			}
			log.Warnf("cache entry %s is corrupt, refetching", key)
			_ = s.cache.Invalidate(ctx, key)
		}
		s.metrics.ObserveCache(false)
	}

	v, err := fetch()
	if err != nil {
		return zero, err
	}

	if s.cache != nil {
		data, err := json.Marshal(v)
		if err == nil {
			err = s.cache.Set(ctx, key, data, ttl)
		}
		if err != nil {
			log.Warnf("cache set %s: %v", key, err)
		}
	}
	return v, nil
}
