package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/epeers/tracker/config"
	"github.com/epeers/tracker/internal/calibration"
	"github.com/epeers/tracker/internal/eia"
	"github.com/epeers/tracker/internal/metrics"
	"github.com/epeers/tracker/internal/models"
	"github.com/epeers/tracker/internal/util"
	log "github.com/sirupsen/logrus"
)

// CalibrationService computes the calibrated Brent/WTI spread and the
// resolution status of the tracked question.
type CalibrationService struct {
	acq     *AcquisitionService
	tracker config.Tracker
	metrics *metrics.Registry
	clock   func() time.Time
}

// NewCalibrationService creates a new CalibrationService
func NewCalibrationService(acq *AcquisitionService, tracker config.Tracker, reg *metrics.Registry) *CalibrationService {
	return &CalibrationService{
		acq:     acq,
		tracker: tracker,
		metrics: reg,
		clock:   time.Now,
	}
}

// Tracker returns the configured tracker parameters
func (s *CalibrationService) Tracker() config.Tracker {
	return s.tracker
}

// acquired holds everything fetched for one computation
type acquired struct {
	groundTruth map[string]models.DateSeries
	dailyA      *models.DailyCloseSeries
	dailyB      *models.DailyCloseSeries
	intradayA   *models.IntradayCloseSeries
	intradayB   *models.IntradayCloseSeries
	intradayErr error
}

// Compute runs one calibration for the snapshot time now. Every date gate,
// cutoff and age in the response is derived from now. Ground truth and settles
// published after now are ignored. When now falls on an earlier day than the
// service clock the request is a replay: the last settle on or before now
// stands in for the live price and the intraday block is unavailable.
// Warnings are reported through the collector in ctx, if any.
func (s *CalibrationService) Compute(ctx context.Context, now time.Time) (*models.CalibratedResponse, error) {
	defer TrackTime(ctx, "CalibrationService.Compute")()

	t := s.tracker
	legA, legB := t.Legs.A, t.Legs.B
	today := util.FormatDate(now)
	replay := today < util.FormatDate(s.clock())

	if !s.acq.GroundTruthConfigured() {
		return nil, fmt.Errorf("%w: %w", ErrConfiguration, eia.ErrNoAPIKey)
	}

	data, err := s.acquire(ctx, now, replay)
	if err != nil {
		return nil, err
	}
	dailyA, dailyB := *data.dailyA, *data.dailyB
	dailyA.CloseByDate = calibration.TrimAfter(dailyA.CloseByDate, today)
	dailyB.CloseByDate = calibration.TrimAfter(dailyB.CloseByDate, today)
	if replay {
		dailyA.Live = calibration.SettleAsLive(dailyA.CloseByDate, today)
		dailyB.Live = calibration.SettleAsLive(dailyB.CloseByDate, today)
	}

	// Ground truth: only what was published by today, on dates where both legs exist.
	rawGTA := calibration.TrimAfter(data.groundTruth[legA.GroundTruthSeries], today)
	rawGTB := calibration.TrimAfter(data.groundTruth[legB.GroundTruthSeries], today)
	gtA, gtB := calibration.JointSeries(rawGTA, rawGTB)

	rawA := calibration.ExtractRawBasis(gtA, dailyA.CloseByDate, t.BasisWindowDays)
	rawB := calibration.ExtractRawBasis(gtB, dailyB.CloseByDate, t.BasisWindowDays)
	for _, leg := range []struct {
		name string
		n    int
	}{{legA.Name, len(rawA)}, {legB.Name, len(rawB)}} {
		if leg.n < t.BasisWindowDays {
			AddWarningf(ctx, models.WarnBasisWindowShort, "%s basis window has %d of %d days", leg.name, leg.n, t.BasisWindowDays)
		}
	}

	smoothA := calibration.SmoothBasis(rawA, t.HalfLifeDays)
	smoothB := calibration.SmoothBasis(rawB, t.HalfLifeDays)

	resolution, err := calibration.Resolve(calibration.ResolutionInput{
		WTI:                   gtA,
		Brent:                 gtB,
		TargetDate:            t.TargetDate,
		InterpolationDeadline: t.InterpolationDeadline,
		CurrentDate:           today,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfiguration, err)
	}
	s.metrics.ObserveResolution(string(resolution.Status()))

	if gaps := usedGapDates(rawGTA, rawGTB, rawA, rawB, resolution, today); len(gaps) > 0 {
		AddWarningf(ctx, models.WarnGroundTruthGap,
			"%s/%s published on only one side for %s; those dates were dropped",
			legA.GroundTruthSeries, legB.GroundTruthSeries, strings.Join(gaps, ", "))
	}

	pit, err := calibration.AssemblePointInTime(dailyA.Live, smoothA, dailyB.Live, smoothB)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInsufficientData, err)
	}

	history := calibration.BuildDailyHistory(
		dailyA.CloseByDate, dailyB.CloseByDate,
		gtA, gtB,
		pit.BasisSpread, util.YearStart(now),
	)

	intraday := s.intraday(ctx, data, pit, replay)

	lastA, ageA := calibration.BasisAge(rawA, now)
	lastB, ageB := calibration.BasisAge(rawB, now)
	staleA := calibration.IsStale(ageA, t.StaleAfterBusinessDays)
	staleB := calibration.IsStale(ageB, t.StaleAfterBusinessDays)
	for _, leg := range []struct {
		name  string
		last  string
		age   int
		stale bool
	}{{legA.Name, lastA, ageA, staleA}, {legB.Name, lastB, ageB, staleB}} {
		if leg.stale {
			AddWarningf(ctx, models.WarnBasisStale, "%s basis last observed %s, %d business days ago", leg.name, leg.last, leg.age)
		}
	}

	return &models.CalibratedResponse{
		Status:           "ok",
		GeneratedAt:      now.UTC(),
		AsOf:             today,
		NextMarketUpdate: util.NextMarketDate(now),
		Stale:            staleA || staleB,
		Metaculus: models.MetaculusSummary{
			TargetDate:            t.TargetDate,
			InterpolationDeadline: t.InterpolationDeadline,
			Resolution:            resolution,
		},
		WTI:   legSummary(legA, &dailyA, smoothA, pit.WTISpot, rawA, lastA, ageA, staleA),
		Brent: legSummary(legB, &dailyB, smoothB, pit.BrentSpot, rawB, lastB, ageB, staleB),
		Spread: models.SpreadSummary{
			Calibrated:  util.Round2(pit.CalibratedSpread),
			LiveFutures: util.Round2(pit.LiveFuturesSpread),
			Basis:       util.Round2(pit.BasisSpread),
		},
		Basis: models.BasisSettings{
			WindowDays:   t.BasisWindowDays,
			HalfLifeDays: t.HalfLifeDays,
		},
		History:  models.HistorySummary{Daily: history},
		Intraday: intraday,
		Warnings: []models.Warning{},
	}, nil
}

// usedGapDates lists one-sided ground-truth dates that fall where the
// computation looks: the span of the basis windows through today, and the
// interpolation bracket when one was used.
func usedGapDates(gtA, gtB models.DateSeries, rawA, rawB []models.RawBasisPoint, res models.Resolution, today string) []string {
	set := make(map[string]struct{})
	from := ""
	for _, raw := range [][]models.RawBasisPoint{rawA, rawB} {
		if len(raw) > 0 && (from == "" || raw[0].Date < from) {
			from = raw[0].Date
		}
	}
	if from != "" {
		for _, d := range calibration.GapDates(gtA, gtB, from, today) {
			set[d] = struct{}{}
		}
	}
	if interp, ok := res.(models.InterpolatedResolution); ok {
		for _, d := range calibration.GapDates(gtA, gtB, interp.PrevDate, interp.NextDate) {
			set[d] = struct{}{}
		}
	}

	gaps := make([]string, 0, len(set))
	for d := range set {
		gaps = append(gaps, d)
	}
	sort.Strings(gaps)
	return gaps
}

// acquire issues every upstream fetch concurrently. Ground truth and both
// daily series are required; the intraday pair is best-effort and its failure
// is only recorded. No fetch cancels another. A replay skips intraday.
func (s *CalibrationService) acquire(ctx context.Context, now time.Time, replay bool) (*acquired, error) {
	t := s.tracker
	legA, legB := t.Legs.A, t.Legs.B

	end := util.TruncateToDate(now).AddDate(0, 0, 1)
	start := util.TruncateToDate(now).AddDate(0, 0, -t.DailyLookbackDays)
	if ys, err := util.ParseDate(util.YearStart(now)); err == nil && ys.Before(start) {
		start = ys
	}

	data := &acquired{}
	var intradayErrA, intradayErrB error

	var required errgroup.Group
	required.Go(func() error {
		gt, err := s.acq.GroundTruth(ctx, []string{legA.GroundTruthSeries, legB.GroundTruthSeries}, t.GroundTruthLength)
		if err != nil {
			return fmt.Errorf("ground truth %s/%s: %w", legA.GroundTruthSeries, legB.GroundTruthSeries, err)
		}
		data.groundTruth = gt
		return nil
	})
	required.Go(func() error {
		d, err := s.acq.DailyClose(ctx, legA.FuturesSymbol, start, end)
		if err != nil {
			return fmt.Errorf("daily close %s: %w", legA.FuturesSymbol, err)
		}
		data.dailyA = d
		return nil
	})
	required.Go(func() error {
		d, err := s.acq.DailyClose(ctx, legB.FuturesSymbol, start, end)
		if err != nil {
			return fmt.Errorf("daily close %s: %w", legB.FuturesSymbol, err)
		}
		data.dailyB = d
		return nil
	})

	var bestEffort errgroup.Group
	if !replay {
		bestEffort.Go(func() error {
			data.intradayA, intradayErrA = s.acq.IntradayClose(ctx, legA.FuturesSymbol, t.IntradayDays, t.IntradayInterval)
			return nil
		})
		bestEffort.Go(func() error {
			data.intradayB, intradayErrB = s.acq.IntradayClose(ctx, legB.FuturesSymbol, t.IntradayDays, t.IntradayInterval)
			return nil
		})
	}

	err := required.Wait()
	_ = bestEffort.Wait()

	if err != nil {
		log.Errorf("calibration acquire failed: %v", err)
		if errors.Is(err, eia.ErrNoAPIKey) {
			return nil, fmt.Errorf("%w: %w", ErrConfiguration, err)
		}
		return nil, fmt.Errorf("%w: %w", ErrUpstreamFetch, err)
	}

	data.intradayErr = errors.Join(intradayErrA, intradayErrB)
	return data, nil
}

// intraday builds the best-effort intraday block. Any failure yields an
// unavailable block plus a warning; it never fails the request.
func (s *CalibrationService) intraday(ctx context.Context, data *acquired, pit *calibration.PointInTime, replay bool) models.IntradaySummary {
	var reason string
	if replay {
		reason = "intraday bars are not kept for past dates"
	} else if data.intradayErr != nil {
		log.Warnf("intraday fetch failed: %v", data.intradayErr)
		reason = "intraday fetch failed"
	} else {
		summary, err := calibration.BuildIntraday(data.intradayA, data.intradayB, pit.WTIBasis, pit.BrentBasis, s.tracker.IntradayInterval)
		if err == nil {
			return summary
		}
		log.Warnf("intraday unavailable: %v", err)
		reason = "fewer than 2 common intraday timestamps"
	}

	s.metrics.ObserveIntradayUnavailable()
	AddWarningf(ctx, models.WarnIntradayUnavailable, "%s", reason)
	return calibration.UnavailableIntraday(reason)
}

func legSummary(leg config.Leg, daily *models.DailyCloseSeries, smooth models.SmoothedBasis, spot float64, raw []models.RawBasisPoint, lastDate string, age int, stale bool) models.LegSummary {
	return models.LegSummary{
		Symbol:              leg.FuturesSymbol,
		EIASeries:           leg.GroundTruthSeries,
		CalibratedSpot:      util.Round2(spot),
		LiveFutures:         util.Round2(*daily.Live.Price),
		LiveTimestamp:       daily.Live.Timestamp,
		SmoothedBasis:       util.Round2(*smooth.Value),
		SmoothedBasisMethod: smooth.Method,
		BasisLastDate:       lastDate,
		BasisAgeDays:        age,
		BasisStale:          stale,
		RawBasis:            calibration.RoundBasisPoints(raw),
	}
}
