package series

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func missing(y int, m time.Month, d int) TimePoint {
	return TimePoint{Date: day(y, m, d)}
}

func TestFillLinear_InteriorGap(t *testing.T) {
	s := Series{Name: "vix", Points: []TimePoint{
		point(2024, 1, 2, 10),
		missing(2024, 1, 3),
		missing(2024, 1, 4),
		point(2024, 1, 5, 16),
	}}

	filled, n := FillLinear(s)
	assert.Equal(t, 2, n)
	require.True(t, filled.Points[1].Valid)
	require.True(t, filled.Points[2].Valid)
	assert.InDelta(t, 12.0, filled.Points[1].Value, 1e-9)
	assert.InDelta(t, 14.0, filled.Points[2].Value, 1e-9)
}

func TestFillLinear_SingleGap(t *testing.T) {
	s := Series{Name: "vix", Points: []TimePoint{
		point(2024, 1, 2, 10),
		missing(2024, 1, 3),
		point(2024, 1, 4, 20),
	}}

	filled, n := FillLinear(s)
	assert.Equal(t, 1, n)
	assert.InDelta(t, 15.0, filled.Points[1].Value, 1e-9)
}

func TestFillLinear_EdgesStayMissing(t *testing.T) {
	s := Series{Name: "vix", Points: []TimePoint{
		missing(2024, 1, 2),
		point(2024, 1, 3, 10),
		point(2024, 1, 4, 11),
		missing(2024, 1, 5),
	}}

	filled, n := FillLinear(s)
	assert.Equal(t, 0, n)
	assert.False(t, filled.Points[0].Valid, "leading gap has no left neighbor")
	assert.False(t, filled.Points[3].Valid, "trailing gap has no right neighbor")

	cleaned := filled.DropMissing()
	assert.Equal(t, 2, cleaned.Len())
}

func TestFillLinear_DoesNotMutateInput(t *testing.T) {
	s := Series{Name: "vix", Points: []TimePoint{
		point(2024, 1, 2, 10),
		missing(2024, 1, 3),
		point(2024, 1, 4, 20),
	}}

	_, _ = FillLinear(s)
	assert.False(t, s.Points[1].Valid)
}

func TestFillLinear_AllMissing(t *testing.T) {
	s := Series{Name: "vix", Points: []TimePoint{
		missing(2024, 1, 2),
		missing(2024, 1, 3),
	}}

	filled, n := FillLinear(s)
	assert.Equal(t, 0, n)
	assert.Equal(t, 0, filled.DropMissing().Len())
}
