package analysis

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/helioquant/solar-vix-lab/internal/series"
)

func TestPercentile_ExactOrderStatistics(t *testing.T) {
	values := []float64{10, 20, 30, 40, 50}

	median, err := Percentile(values, 0.5)
	require.NoError(t, err)
	assert.InDelta(t, 30.0, median, 1e-9)

	p75, err := Percentile([]float64{1, 2, 3, 4}, 0.75)
	require.NoError(t, err)
	assert.InDelta(t, 3.25, p75, 1e-9, "linear interpolation between closest ranks")
}

func TestPercentile_UnsortedInput(t *testing.T) {
	p75, err := Percentile([]float64{4, 1, 3, 2}, 0.75)
	require.NoError(t, err)
	assert.InDelta(t, 3.25, p75, 1e-9)
}

func TestPercentile_SingleValue(t *testing.T) {
	v, err := Percentile([]float64{42}, 0.95)
	require.NoError(t, err)
	assert.Equal(t, 42.0, v)
}

func TestPercentile_EmptySampleIsInsufficientData(t *testing.T) {
	_, err := Percentile(nil, 0.75)
	require.ErrorIs(t, err, ErrInsufficientData)
}

func TestPercentile_DoesNotMutateInput(t *testing.T) {
	values := []float64{3, 1, 2}
	_, err := Percentile(values, 0.5)
	require.NoError(t, err)
	assert.Equal(t, []float64{3, 1, 2}, values)
}

func obsRamp(n int) []series.Observation {
	obs := make([]series.Observation, n)
	for i := range obs {
		obs[i] = series.Observation{
			Date:     time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, i),
			VixClose: float64(10 + i),
			Sunspot:  float64(50 + i),
		}
	}
	return obs
}

func TestComputeThresholds_SharedBasis(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MinSamples = 10

	th, err := ComputeThresholds(obsRamp(101), cfg)
	require.NoError(t, err)

	// Ramps of 101 values: p75 lands exactly on an order statistic.
	assert.InDelta(t, 125.0, th.SunspotP75, 1e-9)
	assert.InDelta(t, 85.0, th.VixP75, 1e-9)
	assert.InDelta(t, 105.0, th.VixP95, 1e-9)
}

func TestComputeThresholds_BelowMinSamples(t *testing.T) {
	cfg := DefaultConfig()

	_, err := ComputeThresholds(obsRamp(5), cfg)
	require.ErrorIs(t, err, ErrInsufficientData)
	assert.Contains(t, err.Error(), "joined observations")
}

func TestConfigValidate(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())

	cfg.ExtremeVixPercentile = 1.0
	require.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.MinSamples = 1
	require.Error(t, cfg.Validate())
}
