package analysis

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func labeledDay(d int, vix float64, regime Regime) Day {
	return Day{
		Date:     time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, d),
		VixClose: vix,
		Regime:   regime,
	}
}

func TestDescribeByRegime_KnownValues(t *testing.T) {
	days := []Day{
		labeledDay(0, 10, HighSunspot),
		labeledDay(1, 20, HighSunspot),
		labeledDay(2, 30, HighSunspot),
		labeledDay(3, 40, LowSunspot),
		labeledDay(4, 50, LowSunspot),
	}

	stats, err := DescribeByRegime(days)
	require.NoError(t, err)
	require.Len(t, stats, 2)

	assert.Equal(t, HighSunspot, stats[0].Regime)
	assert.Equal(t, 3, stats[0].N)
	assert.InDelta(t, 20.0, stats[0].MeanVix, 1e-9)
	assert.InDelta(t, 10.0, stats[0].StdDevVix, 1e-9, "Bessel-corrected: sqrt(200/2)")

	assert.Equal(t, LowSunspot, stats[1].Regime)
	assert.Equal(t, 2, stats[1].N)
	assert.InDelta(t, 45.0, stats[1].MeanVix, 1e-9)
	assert.InDelta(t, 7.0710678, stats[1].StdDevVix, 1e-6)
}

func TestDescribeByRegime_SingletonPartitionIsSignaled(t *testing.T) {
	days := []Day{
		labeledDay(0, 10, HighSunspot),
		labeledDay(1, 20, LowSunspot),
		labeledDay(2, 30, LowSunspot),
	}

	_, err := DescribeByRegime(days)
	require.ErrorIs(t, err, ErrInsufficientData)
	assert.Contains(t, err.Error(), "high_sunspot")
	assert.Contains(t, err.Error(), "stddev undefined")
}

func TestDescribeByRegime_MissingRegimeOmitted(t *testing.T) {
	days := []Day{
		labeledDay(0, 10, LowSunspot),
		labeledDay(1, 20, LowSunspot),
	}

	stats, err := DescribeByRegime(days)
	require.NoError(t, err)
	require.Len(t, stats, 1)
	assert.Equal(t, LowSunspot, stats[0].Regime)
}

func TestDescribeByRegime_Empty(t *testing.T) {
	_, err := DescribeByRegime(nil)
	require.ErrorIs(t, err, ErrInsufficientData)
}
