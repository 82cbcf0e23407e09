package calibration

import (
	"math"

	"github.com/epeers/tracker/internal/models"
)

// DefaultHalfLifeDays is the EWMA half-life in business days.
const DefaultHalfLifeDays = 3.0

// coldStartPoints is both the minimum window for the EWMA and the number of
// oldest points averaged to seed it.
const coldStartPoints = 3

// DecayWeights returns (alpha, lambda) for a half-life h: lambda = 0.5^(1/h), alpha = 1 - lambda.
func DecayWeights(halfLifeDays float64) (alpha, lambda float64) {
	lambda = math.Pow(0.5, 1/halfLifeDays)
	return 1 - lambda, lambda
}

// SmoothBasis reduces an ascending raw-basis window to one scalar.
//
//	empty          -> nil, "none"
//	1-2 points     -> arithmetic mean, "mean_cold_start"
//	3+ points      -> seed with the mean of the oldest three, then
//	                  s = alpha*raw[i] + lambda*s for i = 3..n-1
//
// The result is not rounded.
func SmoothBasis(points []models.RawBasisPoint, halfLifeDays float64) models.SmoothedBasis {
	if len(points) == 0 {
		return models.SmoothedBasis{Value: nil, Method: models.MethodNone}
	}

	if len(points) < coldStartPoints {
		mean := meanBasis(points)
		return models.SmoothedBasis{Value: &mean, Method: models.MethodMeanColdStart}
	}

	alpha, _ := DecayWeights(halfLifeDays)
	smoothed := meanBasis(points[:coldStartPoints])
	for _, p := range points[coldStartPoints:] {
		// alpha*raw + lambda*s, written so a constant input stays exactly constant
		smoothed += alpha * (p.Value - smoothed)
	}

	return models.SmoothedBasis{Value: &smoothed, Method: models.MethodEWMA(halfLifeDays)}
}

// meanBasis is a running mean; it returns v exactly when every point is v.
func meanBasis(points []models.RawBasisPoint) float64 {
	var mean float64
	for i, p := range points {
		mean += (p.Value - mean) / float64(i+1)
	}
	return mean
}
