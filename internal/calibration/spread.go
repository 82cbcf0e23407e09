package calibration

import (
	"errors"
	"fmt"

	"github.com/epeers/tracker/internal/models"
	"github.com/epeers/tracker/internal/util"
)

var (
	// ErrNotFinite is returned when a live price or smoothed basis needed for
	// the headline numbers is missing or not a finite number.
	ErrNotFinite = errors.New("value missing or not finite")

	// ErrIntradayUnavailable marks an intraday block that could not be built.
	ErrIntradayUnavailable = errors.New("intraday series unavailable")
)

// minIntradayPoints is the fewest common timestamps worth charting.
const minIntradayPoints = 2

// PointInTime holds the "now" calibrated values for both legs.
type PointInTime struct {
	WTISpot           float64
	BrentSpot         float64
	WTILive           float64
	BrentLive         float64
	WTIBasis          float64
	BrentBasis        float64
	BasisSpread       float64
	CalibratedSpread  float64
	LiveFuturesSpread float64
}

// CalibratedSpot re-bases a live futures price by the smoothed basis.
func CalibratedSpot(name string, live models.LivePrice, basis models.SmoothedBasis) (float64, error) {
	if !live.Finite() {
		return 0, fmt.Errorf("%s live futures price: %w", name, ErrNotFinite)
	}
	if basis.Value == nil || !util.IsFinite(*basis.Value) {
		return 0, fmt.Errorf("%s smoothed basis: %w", name, ErrNotFinite)
	}
	return *live.Price + *basis.Value, nil
}

// SettleAsLive stands in for the live price on a past date: the latest
// settle on or before last, stamped at that date's UTC midnight. The result
// is empty when no settle qualifies.
func SettleAsLive(closes models.DateSeries, last string) models.LivePrice {
	dates := TrimAfter(closes, last).Dates()
	for i := len(dates) - 1; i >= 0; i-- {
		v, ok := closes.Value(dates[i])
		if !ok {
			continue
		}
		ts, err := util.ParseDate(dates[i])
		if err != nil {
			continue
		}
		return models.LivePrice{Price: &v, Timestamp: &ts}
	}
	return models.LivePrice{}
}

// AssemblePointInTime computes both calibrated spots and the spreads. Any
// non-finite input fails the whole computation.
func AssemblePointInTime(wtiLive models.LivePrice, wtiBasis models.SmoothedBasis, brentLive models.LivePrice, brentBasis models.SmoothedBasis) (*PointInTime, error) {
	wtiSpot, err := CalibratedSpot("wti", wtiLive, wtiBasis)
	if err != nil {
		return nil, err
	}
	brentSpot, err := CalibratedSpot("brent", brentLive, brentBasis)
	if err != nil {
		return nil, err
	}

	return &PointInTime{
		WTISpot:           wtiSpot,
		BrentSpot:         brentSpot,
		WTILive:           *wtiLive.Price,
		BrentLive:         *brentLive.Price,
		WTIBasis:          *wtiBasis.Value,
		BrentBasis:        *brentBasis.Value,
		BasisSpread:       *brentBasis.Value - *wtiBasis.Value,
		CalibratedSpread:  brentSpot - wtiSpot,
		LiveFuturesSpread: *brentLive.Price - *wtiLive.Price,
	}, nil
}

// BuildDailyHistory emits, for every date on or after cutoff present in both
// futures series, the futures spread, the calibrated spread (futures spread
// plus basis spread) and the ground-truth spread, which is nil whenever either
// ground-truth leg is missing.
func BuildDailyHistory(wtiDaily, brentDaily, wtiGT, brentGT models.DateSeries, basisSpread float64, cutoff string) models.DailyHistory {
	history := models.DailyHistory{
		Dates:            []string{},
		FuturesSpread:    []float64{},
		CalibratedSpread: []float64{},
		EIASpread:        []*float64{},
	}

	for _, date := range wtiDaily.Dates() {
		if date < cutoff {
			continue
		}
		wti, ok := wtiDaily.Value(date)
		if !ok {
			continue
		}
		brent, ok := brentDaily.Value(date)
		if !ok {
			continue
		}

		futuresSpread := brent - wti
		history.Dates = append(history.Dates, date)
		history.FuturesSpread = append(history.FuturesSpread, util.Round2(futuresSpread))
		history.CalibratedSpread = append(history.CalibratedSpread, util.Round2(futuresSpread+basisSpread))

		var eiaSpread *float64
		gtWTI, okW := wtiGT.Value(date)
		gtBrent, okB := brentGT.Value(date)
		if okW && okB {
			v := util.Round2(gtBrent - gtWTI)
			eiaSpread = &v
		}
		history.EIASpread = append(history.EIASpread, eiaSpread)
	}

	return history
}

// BuildIntraday aligns both intraday series on their common timestamps and
// re-bases each leg by its smoothed basis. It returns ErrIntradayUnavailable
// when either series is missing or fewer than two timestamps are shared.
func BuildIntraday(wti, brent *models.IntradayCloseSeries, wtiBasis, brentBasis float64, interval string) (models.IntradaySummary, error) {
	if wti == nil || brent == nil {
		return models.IntradaySummary{}, fmt.Errorf("missing intraday series: %w", ErrIntradayUnavailable)
	}

	var common []int64
	for _, ts := range wti.Timestamps() {
		if _, ok := brent.ByTimestamp[ts]; ok {
			common = append(common, ts)
		}
	}
	if len(common) < minIntradayPoints {
		return models.IntradaySummary{}, fmt.Errorf("%d common timestamps: %w", len(common), ErrIntradayUnavailable)
	}

	futures := &models.IntradayValues{}
	calibrated := &models.IntradayValues{}
	for _, ts := range common {
		w := wti.ByTimestamp[ts]
		b := brent.ByTimestamp[ts]
		futures.WTI = append(futures.WTI, util.Round2(w))
		futures.Brent = append(futures.Brent, util.Round2(b))
		futures.Spread = append(futures.Spread, util.Round2(b-w))
		calibrated.WTI = append(calibrated.WTI, util.Round2(w+wtiBasis))
		calibrated.Brent = append(calibrated.Brent, util.Round2(b+brentBasis))
		calibrated.Spread = append(calibrated.Spread, util.Round2((b+brentBasis)-(w+wtiBasis)))
	}

	return models.IntradaySummary{
		Available:  true,
		Interval:   interval,
		Timestamps: common,
		Futures:    futures,
		Calibrated: calibrated,
	}, nil
}

// UnavailableIntraday is the placeholder block used when intraday data is absent.
func UnavailableIntraday(reason string) models.IntradaySummary {
	return models.IntradaySummary{Available: false, Reason: reason}
}
