package analysis

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// daysFromPattern builds a labeled sequence from a 0/1 high-VIX
// pattern, one trading day apart, all in one regime.
func daysFromPattern(pattern []int, regime Regime) []Day {
	days := make([]Day, len(pattern))
	for i, flag := range pattern {
		days[i] = Day{
			Date:    time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, i),
			Regime:  regime,
			HighVix: flag == 1,
		}
	}
	return days
}

func TestExtractRuns_ReferencePattern(t *testing.T) {
	days := daysFromPattern([]int{0, 1, 1, 0, 1, 0, 0, 1, 1, 1}, HighSunspot)

	runs, err := ExtractRuns(days)
	require.NoError(t, err)
	require.Len(t, runs, 3)

	assert.Equal(t, []int{2, 1, 3}, []int{runs[0].Length, runs[1].Length, runs[2].Length})
	assert.Equal(t, days[1].Date, runs[0].Start)
	assert.Equal(t, days[4].Date, runs[1].Start)
	assert.Equal(t, days[7].Date, runs[2].Start)
}

func TestExtractRuns_RunIDCarriedThroughLowDays(t *testing.T) {
	days := daysFromPattern([]int{1, 0, 0, 1}, HighSunspot)

	runs, err := ExtractRuns(days)
	require.NoError(t, err)
	require.Len(t, runs, 2)

	assert.Equal(t, 1, days[0].RunID)
	assert.Equal(t, 1, days[1].RunID, "low day keeps the cumulative start count")
	assert.Equal(t, 1, days[2].RunID)
	assert.Equal(t, 2, days[3].RunID)
}

func TestExtractRuns_LengthsSumToHighDays(t *testing.T) {
	pattern := []int{1, 1, 0, 1, 0, 1, 1, 1, 0, 0, 1}
	days := daysFromPattern(pattern, LowSunspot)

	runs, err := ExtractRuns(days)
	require.NoError(t, err)

	highDays := 0
	for _, f := range pattern {
		highDays += f
	}
	total := 0
	for _, r := range runs {
		total += r.Length
		assert.GreaterOrEqual(t, r.Length, 1, "a run cannot have length 0")
	}
	assert.Equal(t, highDays, total)
}

func TestExtractRuns_IsolatedDayIsRunOfOne(t *testing.T) {
	days := daysFromPattern([]int{0, 1, 0}, HighSunspot)

	runs, err := ExtractRuns(days)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, 1, runs[0].Length)
}

func TestExtractRuns_FirstDayStartsARun(t *testing.T) {
	days := daysFromPattern([]int{1, 1}, HighSunspot)

	runs, err := ExtractRuns(days)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, 2, runs[0].Length)
}

func TestExtractRuns_CalendarGapsDoNotBreakRuns(t *testing.T) {
	// Friday and Monday: the weekend is absent from the sequence, so
	// the run stays contiguous in trading-day terms.
	days := []Day{
		{Date: time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC), Regime: HighSunspot, HighVix: true},
		{Date: time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC), Regime: HighSunspot, HighVix: true},
	}

	runs, err := ExtractRuns(days)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, 2, runs[0].Length)
}

func TestExtractRuns_OutOfOrderInputRejected(t *testing.T) {
	days := []Day{
		{Date: time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC), HighVix: true},
		{Date: time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC), HighVix: true},
	}

	_, err := ExtractRuns(days)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "strict date order")
}

func TestExtractRuns_Empty(t *testing.T) {
	runs, err := ExtractRuns(nil)
	require.NoError(t, err)
	assert.Empty(t, runs)
}

func TestRunStatsByRegime_SingleRegime(t *testing.T) {
	days := daysFromPattern([]int{0, 1, 1, 0, 1, 0, 0, 1, 1, 1}, HighSunspot)
	_, err := ExtractRuns(days)
	require.NoError(t, err)

	stats, err := RunStatsByRegime(days)
	require.NoError(t, err)
	require.Len(t, stats, 1)

	assert.Equal(t, HighSunspot, stats[0].Regime)
	assert.Equal(t, 3, stats[0].NumRuns)
	assert.InDelta(t, 2.0, stats[0].AvgLength, 1e-9, "(2+1+3)/3")
}

func TestRunStatsByRegime_StraddlingRunSplitsIntoFragments(t *testing.T) {
	// One 4-day run whose regime flips halfway: it contributes a
	// 2-day fragment to each regime rather than a single 4-day run.
	days := daysFromPattern([]int{1, 1, 1, 1}, HighSunspot)
	days[2].Regime = LowSunspot
	days[3].Regime = LowSunspot

	runs, err := ExtractRuns(days)
	require.NoError(t, err)
	require.Len(t, runs, 1, "run extraction itself is regime-agnostic")
	assert.Equal(t, 4, runs[0].Length)

	stats, err := RunStatsByRegime(days)
	require.NoError(t, err)
	require.Len(t, stats, 2)

	for _, s := range stats {
		assert.Equal(t, 1, s.NumRuns)
		assert.InDelta(t, 2.0, s.AvgLength, 1e-9)
	}
}

func TestRunStatsByRegime_RequiresExtraction(t *testing.T) {
	days := daysFromPattern([]int{1}, HighSunspot)

	_, err := RunStatsByRegime(days)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ExtractRuns")
}

func TestRunStatsByRegime_NoHighDays(t *testing.T) {
	days := daysFromPattern([]int{0, 0, 0}, HighSunspot)
	_, err := ExtractRuns(days)
	require.NoError(t, err)

	stats, err := RunStatsByRegime(days)
	require.NoError(t, err)
	assert.Empty(t, stats)
}
