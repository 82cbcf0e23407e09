// Package calibration turns ground-truth spot and futures series into a
// smoothed basis, a resolution classification and calibrated spread series.
// Everything here is a pure function of its inputs.
package calibration

import (
	"sort"

	"github.com/epeers/tracker/internal/models"
	"github.com/epeers/tracker/internal/util"
)

// DefaultWindowDays is the trailing raw-basis window size.
const DefaultWindowDays = 10

// JointSeries restricts two ground-truth legs to the weekday dates where both
// carry a finite value.
func JointSeries(a, b models.DateSeries) (models.DateSeries, models.DateSeries) {
	outA := make(models.DateSeries)
	outB := make(models.DateSeries)

	for date := range a {
		if !util.IsWeekdayDate(date) {
			continue
		}
		va, okA := a.Value(date)
		vb, okB := b.Value(date)
		if okA && okB {
			outA[date] = va
			outB[date] = vb
		}
	}

	return outA, outB
}

// GapDates lists, ascending, the weekdays in [from, to] on which exactly one
// of the two legs carries a finite value.
func GapDates(a, b models.DateSeries, from, to string) []string {
	seen := make(map[string]struct{})
	var gaps []string
	for _, s := range []models.DateSeries{a, b} {
		for date := range s {
			if date < from || date > to || !util.IsWeekdayDate(date) {
				continue
			}
			if _, dup := seen[date]; dup {
				continue
			}
			seen[date] = struct{}{}
			_, okA := a.Value(date)
			_, okB := b.Value(date)
			if okA != okB {
				gaps = append(gaps, date)
			}
		}
	}
	sort.Strings(gaps)
	return gaps
}

// TrimAfter returns a copy of s without the dates after last.
func TrimAfter(s models.DateSeries, last string) models.DateSeries {
	out := make(models.DateSeries, len(s))
	for date, v := range s {
		if date <= last {
			out[date] = v
		}
	}
	return out
}

// ExtractRawBasis pairs ground truth with futures settles on the dates where
// both are present and keeps the most recent window of them, oldest first.
// Fewer qualifying dates than the window is not an error; zero yields an empty slice.
func ExtractRawBasis(groundTruth, futuresClose models.DateSeries, window int) []models.RawBasisPoint {
	points := []models.RawBasisPoint{}
	if window <= 0 {
		return points
	}

	for _, date := range groundTruth.Dates() {
		gt, ok := groundTruth.Value(date)
		if !ok {
			continue
		}
		fut, ok := futuresClose.Value(date)
		if !ok {
			continue
		}
		points = append(points, models.RawBasisPoint{
			Date:          date,
			Value:         gt - fut,
			GroundTruth:   gt,
			FuturesSettle: fut,
		})
	}

	if len(points) > window {
		points = points[len(points)-window:]
	}
	return points
}
