package util

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRound2(t *testing.T) {
	assert.Equal(t, 1.01, Round2(1.005))
	assert.Equal(t, -1.01, Round2(-1.005))
	assert.Equal(t, 65.1, Round2(65.1))
	assert.Equal(t, 0.79, Round2(0.7937005259840998))
	assert.True(t, math.IsNaN(Round2(math.NaN())))
	assert.True(t, math.IsInf(Round2(math.Inf(1)), 1))
}

func TestRoundPlaces(t *testing.T) {
	assert.Equal(t, 1.085432, Round(1.0854321, 6))
	assert.Equal(t, 0.5, Round(0.5, 4))
}

func TestIsFinite(t *testing.T) {
	assert.True(t, IsFinite(0))
	assert.False(t, IsFinite(math.NaN()))
	assert.False(t, IsFinite(math.Inf(-1)))
}
