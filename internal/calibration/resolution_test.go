package calibration

import (
	"encoding/json"
	"testing"

	"github.com/epeers/tracker/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	target   = "2026-03-04"
	deadline = "2026-03-18"
)

func bracketLegs() (models.DateSeries, models.DateSeries) {
	wti := models.DateSeries{"2026-03-03": 50, "2026-03-05": 54}
	brent := models.DateSeries{"2026-03-03": 60, "2026-03-05": 64}
	return wti, brent
}

func TestResolve_ExactRegardlessOfDeadline(t *testing.T) {
	wti, brent := bracketLegs()
	wti[target] = 52.5
	brent[target] = 63.75

	for _, current := range []string{"2026-03-05", deadline, "2026-09-01"} {
		res, err := Resolve(ResolutionInput{WTI: wti, Brent: brent, TargetDate: target, InterpolationDeadline: deadline, CurrentDate: current})
		require.NoError(t, err)

		exact, ok := res.(models.ExactResolution)
		require.True(t, ok, "expected exact, got %s", res.Status())
		assert.Equal(t, 11.25, exact.Value)
		assert.Equal(t, 52.5, exact.WTI)
		assert.Equal(t, 63.75, exact.Brent)
	}
}

func TestResolve_PendingBeforeDeadline(t *testing.T) {
	wti, brent := bracketLegs()

	// A full bracket exists, but interpolation must wait for the deadline.
	res, err := Resolve(ResolutionInput{WTI: wti, Brent: brent, TargetDate: target, InterpolationDeadline: deadline, CurrentDate: "2026-03-17"})
	require.NoError(t, err)

	pending, ok := res.(models.PendingResolution)
	require.True(t, ok, "expected pending, got %s", res.Status())
	assert.Equal(t, deadline, pending.Deadline)
	assert.Equal(t, target, pending.TargetDate)
}

func TestResolve_ScenarioB_Interpolated(t *testing.T) {
	wti, brent := bracketLegs()

	res, err := Resolve(ResolutionInput{WTI: wti, Brent: brent, TargetDate: target, InterpolationDeadline: deadline, CurrentDate: deadline})
	require.NoError(t, err)

	interp, ok := res.(models.InterpolatedResolution)
	require.True(t, ok, "expected interpolated, got %s", res.Status())
	assert.Equal(t, "2026-03-03", interp.PrevDate)
	assert.Equal(t, "2026-03-05", interp.NextDate)
	assert.Equal(t, 0.5, interp.T)
	assert.Equal(t, 52.0, interp.WTI)
	assert.Equal(t, 62.0, interp.Brent)
	assert.Equal(t, 10.0, interp.Value)
}

func TestResolve_InterpolationUsesCalendarDays(t *testing.T) {
	// Friday -> Tuesday bracket around a Monday target: 3 of 4 calendar days.
	wti := models.DateSeries{"2026-03-06": 50, "2026-03-10": 54}
	brent := models.DateSeries{"2026-03-06": 60, "2026-03-10": 68}

	res, err := Resolve(ResolutionInput{WTI: wti, Brent: brent, TargetDate: "2026-03-09", InterpolationDeadline: "2026-03-20", CurrentDate: "2026-03-20"})
	require.NoError(t, err)

	interp := res.(models.InterpolatedResolution)
	assert.Equal(t, 0.75, interp.T)
	assert.Equal(t, 53.0, interp.WTI)
	assert.Equal(t, 66.0, interp.Brent)
	assert.Equal(t, 13.0, interp.Value)
}

func TestResolve_BracketIgnoresOneLegDates(t *testing.T) {
	wti, brent := bracketLegs()
	wti["2026-03-02"] = 10 // brent missing: not a usable bracket date
	brent["2026-03-06"] = 99

	res, err := Resolve(ResolutionInput{WTI: wti, Brent: brent, TargetDate: target, InterpolationDeadline: deadline, CurrentDate: deadline})
	require.NoError(t, err)

	interp := res.(models.InterpolatedResolution)
	assert.Equal(t, "2026-03-03", interp.PrevDate)
	assert.Equal(t, "2026-03-05", interp.NextDate)
}

func TestResolve_UnavailableWithoutBracket(t *testing.T) {
	wti := models.DateSeries{"2026-03-02": 50, "2026-03-03": 51}
	brent := models.DateSeries{"2026-03-02": 60, "2026-03-03": 61}

	res, err := Resolve(ResolutionInput{WTI: wti, Brent: brent, TargetDate: target, InterpolationDeadline: deadline, CurrentDate: "2026-04-01"})
	require.NoError(t, err)

	unavailable, ok := res.(models.UnavailableResolution)
	require.True(t, ok, "expected unavailable, got %s", res.Status())
	assert.NotEmpty(t, unavailable.Reason)
	assert.Equal(t, deadline, unavailable.Deadline)
}

func TestResolve_InvalidDates(t *testing.T) {
	_, err := Resolve(ResolutionInput{TargetDate: "March 4", InterpolationDeadline: deadline, CurrentDate: deadline})
	assert.Error(t, err)
}

func TestLerpBoundaries(t *testing.T) {
	assert.Equal(t, 50.37, Lerp(50.37, 54.11, 0))
	assert.Equal(t, 54.11, Lerp(50.37, 54.11, 1))
	assert.InDelta(t, 52.24, Lerp(50.37, 54.11, 0.5), 1e-9)
}

func TestResolution_JSONCarriesStatus(t *testing.T) {
	wti, brent := bracketLegs()
	res, err := Resolve(ResolutionInput{WTI: wti, Brent: brent, TargetDate: target, InterpolationDeadline: deadline, CurrentDate: deadline})
	require.NoError(t, err)

	raw, err := json.Marshal(res)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, "interpolated", decoded["status"])
	assert.Equal(t, 10.0, decoded["value"])
	assert.Equal(t, "2026-03-03", decoded["prev_date"])
}
