package calibration

import (
	"testing"
	"time"

	"github.com/epeers/tracker/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestBasisAge(t *testing.T) {
	points := []models.RawBasisPoint{{Date: "2026-03-04"}, {Date: "2026-03-06"}}

	// Friday basis, following Tuesday afternoon: Mon + Tue.
	now := time.Date(2026, 3, 10, 18, 0, 0, 0, time.UTC)
	last, age := BasisAge(points, now)
	assert.Equal(t, "2026-03-06", last)
	assert.Equal(t, 2, age)

	last, age = BasisAge(nil, now)
	assert.Equal(t, "", last)
	assert.Equal(t, 0, age)
}

func TestIsStale(t *testing.T) {
	assert.False(t, IsStale(5, 5))
	assert.True(t, IsStale(6, 5))
}

func TestRoundBasisPoints(t *testing.T) {
	out := RoundBasisPoints([]models.RawBasisPoint{{Date: "2026-03-04", Value: 0.30000000000000004, GroundTruth: 65.4, FuturesSettle: 65.1}})
	assert.Equal(t, 0.3, out[0].Value)
	assert.Equal(t, 65.4, out[0].GroundTruth)
}
