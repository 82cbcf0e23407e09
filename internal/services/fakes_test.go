package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/epeers/tracker/internal/bundesbank"
	"github.com/epeers/tracker/internal/models"
	"github.com/epeers/tracker/internal/util"
	"github.com/epeers/tracker/internal/yahoo"
)

var errFakeUpstream = errors.New("fake upstream down")

type fakeFutures struct {
	mu          sync.Mutex
	daily       map[string]*models.DailyCloseSeries
	intraday    map[string]*models.IntradayCloseSeries
	quotes      map[string]float64
	dailyErr    map[string]error
	intradayErr map[string]error
	calls       map[string]int
}

func newFakeFutures() *fakeFutures {
	return &fakeFutures{
		daily:       map[string]*models.DailyCloseSeries{},
		intraday:    map[string]*models.IntradayCloseSeries{},
		quotes:      map[string]float64{},
		dailyErr:    map[string]error{},
		intradayErr: map[string]error{},
		calls:       map[string]int{},
	}
}

func (f *fakeFutures) count(key string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[key]++
}

func (f *fakeFutures) callCount(key string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[key]
}

func (f *fakeFutures) GetDailyClose(_ context.Context, symbol string, _, _ time.Time) (*models.DailyCloseSeries, error) {
	f.count("daily:" + symbol)
	if err := f.dailyErr[symbol]; err != nil {
		return nil, err
	}
	d, ok := f.daily[symbol]
	if !ok {
		return nil, errFakeUpstream
	}
	return d, nil
}

func (f *fakeFutures) GetIntradayClose(_ context.Context, symbol string, _ int, _ string) (*models.IntradayCloseSeries, error) {
	f.count("intraday:" + symbol)
	if err := f.intradayErr[symbol]; err != nil {
		return nil, err
	}
	d, ok := f.intraday[symbol]
	if !ok {
		return nil, errFakeUpstream
	}
	return d, nil
}

func (f *fakeFutures) GetQuote(_ context.Context, symbol string) (*yahoo.ParsedQuote, error) {
	f.count("quote:" + symbol)
	p, ok := f.quotes[symbol]
	if !ok {
		return nil, errFakeUpstream
	}
	return &yahoo.ParsedQuote{Symbol: symbol, Price: p}, nil
}

type fakeGroundTruth struct {
	mu           sync.Mutex
	series       map[string]models.DateSeries
	err          error
	calls        int
	unconfigured bool
}

func (f *fakeGroundTruth) Configured() bool { return !f.unconfigured }

func (f *fakeGroundTruth) GetSpotSeries(_ context.Context, names []string, _ int) (map[string]models.DateSeries, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	out := make(map[string]models.DateSeries, len(names))
	for _, n := range names {
		out[n] = f.series[n]
	}
	return out, nil
}

type fakeYields struct {
	yield *bundesbank.Yield
	err   error
}

func (f *fakeYields) GetLatestYield(_ context.Context, series string) (*bundesbank.Yield, error) {
	if f.err != nil {
		return nil, f.err
	}
	y := *f.yield
	y.Series = series
	return &y, nil
}

// weekdays lists the weekdays in [from, to]
func weekdays(from, to string) []string {
	var out []string
	for d := from; d <= to; d, _ = util.AddDays(d, 1) {
		if util.IsWeekdayDate(d) {
			out = append(out, d)
		}
	}
	return out
}

func constantSeries(dates []string, v float64) models.DateSeries {
	s := make(models.DateSeries, len(dates))
	for _, d := range dates {
		s[d] = v
	}
	return s
}

func price(v float64) *float64 { return &v }
