package calibration

import (
	"fmt"

	"github.com/epeers/tracker/internal/models"
	"github.com/epeers/tracker/internal/util"
)

// ResolutionInput carries the ground-truth legs and the three ISO dates the
// resolution depends on. CurrentDate is the request's date snapshot.
type ResolutionInput struct {
	WTI                   models.DateSeries
	Brent                 models.DateSeries
	TargetDate            string
	InterpolationDeadline string
	CurrentDate           string
}

// Resolve classifies the target-date Brent minus WTI ground-truth spread.
// Exactly one variant is returned:
//   - exact when both legs are published for the target date, whatever the date
//   - pending while CurrentDate precedes the deadline
//   - interpolated from the nearest dates strictly before and after the target
//     where both legs exist, using calendar-day distance
//   - unavailable when the deadline passed without such a bracket
func Resolve(in ResolutionInput) (models.Resolution, error) {
	for _, d := range []string{in.TargetDate, in.InterpolationDeadline, in.CurrentDate} {
		if !util.IsValidDate(d) {
			return nil, fmt.Errorf("resolve: invalid date %q", d)
		}
	}

	wti, wtiOK := in.WTI.Value(in.TargetDate)
	brent, brentOK := in.Brent.Value(in.TargetDate)
	if wtiOK && brentOK {
		return models.ExactResolution{
			TargetDate: in.TargetDate,
			WTI:        util.Round2(wti),
			Brent:      util.Round2(brent),
			Value:      util.Round2(brent - wti),
		}, nil
	}

	if in.CurrentDate < in.InterpolationDeadline {
		return models.PendingResolution{
			TargetDate: in.TargetDate,
			Deadline:   in.InterpolationDeadline,
			Message:    fmt.Sprintf("awaiting EIA publication for %s; interpolation starts %s", in.TargetDate, in.InterpolationDeadline),
		}, nil
	}

	prev, next, found := bracket(in.WTI, in.Brent, in.TargetDate)
	if !found {
		return models.UnavailableResolution{
			TargetDate: in.TargetDate,
			Deadline:   in.InterpolationDeadline,
			Reason:     "no published dates on both sides of the target date",
		}, nil
	}

	span, err := util.DaysBetween(prev, next)
	if err != nil {
		return nil, fmt.Errorf("resolve: %w", err)
	}
	offset, err := util.DaysBetween(prev, in.TargetDate)
	if err != nil {
		return nil, fmt.Errorf("resolve: %w", err)
	}
	t := float64(offset) / float64(span)

	wtiI := Lerp(in.WTI[prev], in.WTI[next], t)
	brentI := Lerp(in.Brent[prev], in.Brent[next], t)

	return models.InterpolatedResolution{
		TargetDate: in.TargetDate,
		Deadline:   in.InterpolationDeadline,
		PrevDate:   prev,
		NextDate:   next,
		T:          util.Round(t, 4),
		WTI:        util.Round2(wtiI),
		Brent:      util.Round2(brentI),
		Value:      util.Round2(brentI - wtiI),
	}, nil
}

// Lerp interpolates linearly; t=0 returns a and t=1 returns b exactly.
func Lerp(a, b, t float64) float64 {
	if t == 1 {
		return b
	}
	return a + (b-a)*t
}

// bracket finds the latest date strictly before target and the earliest date
// strictly after it where both legs are present.
func bracket(a, b models.DateSeries, target string) (prev, next string, found bool) {
	for _, d := range a.Dates() {
		if _, ok := a.Value(d); !ok {
			continue
		}
		if _, ok := b.Value(d); !ok {
			continue
		}
		if d < target {
			prev = d
		} else if d > target && next == "" {
			next = d
		}
	}
	return prev, next, prev != "" && next != ""
}
