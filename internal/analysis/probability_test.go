package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func flaggedDay(d int, regime Regime, extreme bool) Day {
	day := labeledDay(d, 20, regime)
	day.ExtremeVix = extreme
	if extreme {
		day.HighVix = true
	}
	return day
}

func TestExtremeProbabilityByRegime_DisjointExtremes(t *testing.T) {
	// Every extreme day sits in the low-sunspot partition.
	days := []Day{
		flaggedDay(0, HighSunspot, false),
		flaggedDay(1, HighSunspot, false),
		flaggedDay(2, LowSunspot, true),
		flaggedDay(3, LowSunspot, true),
	}

	probs, err := ExtremeProbabilityByRegime(days)
	require.NoError(t, err)
	require.Len(t, probs, 2)

	assert.Equal(t, HighSunspot, probs[0].Regime)
	assert.Equal(t, 0.0, probs[0].Probability)
	assert.Equal(t, 0, probs[0].ExtremeDays)

	assert.Equal(t, LowSunspot, probs[1].Regime)
	assert.Equal(t, 1.0, probs[1].Probability)
	assert.Equal(t, 2, probs[1].ExtremeDays)
}

func TestExtremeProbabilityByRegime_Fraction(t *testing.T) {
	days := []Day{
		flaggedDay(0, HighSunspot, true),
		flaggedDay(1, HighSunspot, false),
		flaggedDay(2, HighSunspot, false),
		flaggedDay(3, HighSunspot, false),
		flaggedDay(4, LowSunspot, false),
	}

	probs, err := ExtremeProbabilityByRegime(days)
	require.NoError(t, err)
	assert.InDelta(t, 0.25, probs[0].Probability, 1e-9)
	assert.Equal(t, 4, probs[0].N)
}

func TestExtremeProbabilityByRegime_EmptyPartitionIsSignaled(t *testing.T) {
	days := []Day{
		flaggedDay(0, HighSunspot, true),
		flaggedDay(1, HighSunspot, false),
	}

	_, err := ExtremeProbabilityByRegime(days)
	require.ErrorIs(t, err, ErrEmptyPartition)
	assert.Contains(t, err.Error(), "low_sunspot")
}

func TestExtremeProbabilityByRegime_NoData(t *testing.T) {
	_, err := ExtremeProbabilityByRegime(nil)
	require.ErrorIs(t, err, ErrInsufficientData)
}
