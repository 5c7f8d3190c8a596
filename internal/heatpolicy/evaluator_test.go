package heatpolicy

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/hoopscheduler/internal/domain/venue"
)

func outdoorVenue() venue.Venue {
	return venue.Venue{ID: "v-out", Type: venue.TypeOutdoor, City: "Phoenix", State: "AZ"}
}

func TestEvaluate_IndoorBypassesTable(t *testing.T) {
	e := NewEvaluator(nil, DefaultConfig())
	v := venue.Venue{ID: "v-in", Type: venue.TypeIndoor}
	r, err := e.Evaluate(context.Background(), v, time.Now(), &Reading{TemperatureF: 130, HumidityPct: 50}, true)
	require.NoError(t, err)
	assert.Equal(t, LevelNone, r.Level)
	assert.True(t, r.Allowed)
}

func TestEvaluate_HeatRejectScenario(t *testing.T) {
	e := NewEvaluator(nil, DefaultConfig())
	v := outdoorVenue()
	reading := &Reading{TemperatureF: 112, HumidityPct: 18}

	dangerous := time.Date(2024, 7, 13, 13, 0, 0, 0, time.UTC)
	r, err := e.Evaluate(context.Background(), v, dangerous, reading, true)
	require.NoError(t, err)
	assert.Equal(t, LevelDanger, r.Level)
	assert.False(t, r.Allowed)
	assert.False(t, r.AutomaticCancellation)
	assert.InDelta(t, 106, r.HeatIndexF, 2)

	safe := time.Date(2024, 7, 13, 19, 30, 0, 0, time.UTC)
	r2, err := e.Evaluate(context.Background(), v, safe, reading, true)
	require.NoError(t, err)
	assert.Equal(t, LevelWarning, r2.Level)
	assert.True(t, r2.Allowed)
	assert.NotEmpty(t, r2.Restrictions)
}

func TestEvaluate_ExtremeForcesCancellation(t *testing.T) {
	e := NewEvaluator(nil, DefaultConfig())
	v := outdoorVenue()
	r, err := e.Evaluate(context.Background(), v, time.Date(2024, 7, 13, 3, 0, 0, 0, time.UTC), &Reading{TemperatureF: 120, HumidityPct: 40}, true)
	require.NoError(t, err)
	assert.Equal(t, LevelExtreme, r.Level)
	assert.False(t, r.Allowed)
	assert.True(t, r.AutomaticCancellation)
}

func TestEvaluate_WeatherErrorFallback(t *testing.T) {
	e := NewEvaluator(failingPort{}, DefaultConfig())
	v := outdoorVenue()

	preSched, err := e.Evaluate(context.Background(), v, time.Now(), nil, true)
	require.NoError(t, err)
	assert.Equal(t, LevelWarning, preSched.Level)
	assert.False(t, preSched.Allowed)

	live, err := e.Evaluate(context.Background(), v, time.Now(), nil, false)
	require.NoError(t, err)
	assert.Equal(t, LevelWarning, live.Level)
	assert.True(t, live.Allowed)
}

type failingPort struct{}

func (failingPort) GetForecast(context.Context, string, string, time.Time) (Reading, error) {
	return Reading{}, assertErr
}
func (failingPort) GetCurrent(context.Context, string, string) (Reading, error) {
	return Reading{}, assertErr
}

var assertErr = &mockErr{"weather provider unavailable"}

type mockErr struct{ msg string }

func (e *mockErr) Error() string { return e.msg }

func TestHeatIndexF_BelowThresholdReturnsTemp(t *testing.T) {
	assert.Equal(t, 70.0, HeatIndexF(70, 50))
}

func TestPickClosestForecast(t *testing.T) {
	target := time.Date(2024, 7, 13, 13, 0, 0, 0, time.UTC)
	samples := []Reading{
		{At: target.Add(-3 * time.Hour), TemperatureF: 90},
		{At: target.Add(30 * time.Minute), TemperatureF: 100},
		{At: target.Add(5 * time.Hour), TemperatureF: 95},
	}
	best, ok := PickClosestForecast(samples, target)
	require.True(t, ok)
	assert.Equal(t, 100.0, best.TemperatureF)
}
