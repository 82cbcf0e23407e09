package calibration

import (
	"time"

	"github.com/epeers/tracker/internal/models"
	"github.com/epeers/tracker/internal/util"
)

// DefaultStaleAfterBusinessDays is the basis age beyond which a leg is flagged stale.
const DefaultStaleAfterBusinessDays = 5

// BasisAge returns the newest date in the raw-basis window and the number of
// business days from it (exclusive) to now (inclusive).
func BasisAge(points []models.RawBasisPoint, now time.Time) (lastDate string, ageDays int) {
	if len(points) == 0 {
		return "", 0
	}
	lastDate = points[len(points)-1].Date
	last, err := util.ParseDate(lastDate)
	if err != nil {
		return lastDate, 0
	}
	return lastDate, util.BusinessDaysBetween(last, now)
}

// IsStale reports whether a basis of the given age exceeds the threshold.
func IsStale(ageDays, staleAfter int) bool {
	return ageDays > staleAfter
}

// RoundBasisPoints returns a copy of the window rounded for output.
func RoundBasisPoints(points []models.RawBasisPoint) []models.RawBasisPoint {
	out := make([]models.RawBasisPoint, len(points))
	for i, p := range points {
		out[i] = models.RawBasisPoint{
			Date:          p.Date,
			Value:         util.Round2(p.Value),
			GroundTruth:   util.Round2(p.GroundTruth),
			FuturesSettle: util.Round2(p.FuturesSettle),
		}
	}
	return out
}
