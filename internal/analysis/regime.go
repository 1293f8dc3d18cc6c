package analysis

import (
	"time"

	"github.com/helioquant/solar-vix-lab/internal/series"
)

// Regime is the binary solar-activity classification of a trading day.
type Regime int

const (
	HighSunspot Regime = iota
	LowSunspot
)

func (r Regime) String() string {
	switch r {
	case HighSunspot:
		return "high_sunspot"
	case LowSunspot:
		return "low_sunspot"
	default:
		return "unknown"
	}
}

// Day is one labeled joined observation. RunID is 0 until run
// extraction assigns it; it then carries the cumulative count of run
// starts up to and including this day, including through low-VIX days.
type Day struct {
	Date       time.Time
	VixClose   float64
	Sunspot    float64
	Regime     Regime
	HighVix    bool
	ExtremeVix bool
	RunID      int
}

// Classify maps a sunspot value to its regime. The threshold is an
// inclusive lower bound: a value exactly at the cutoff lands in the
// high bucket.
func Classify(sunspot, threshold float64) Regime {
	if sunspot >= threshold {
		return HighSunspot
	}
	return LowSunspot
}

// Label applies the threshold basis uniformly across the full joined
// sample. Every observation receives a regime and both volatility
// flags; the two VIX cutoffs are independent applications of the same
// inclusive rule and are never mixed.
func Label(obs []series.Observation, th Thresholds) []Day {
	days := make([]Day, len(obs))
	for i, o := range obs {
		days[i] = Day{
			Date:       o.Date,
			VixClose:   o.VixClose,
			Sunspot:    o.Sunspot,
			Regime:     Classify(o.Sunspot, th.SunspotP75),
			HighVix:    o.VixClose >= th.VixP75,
			ExtremeVix: o.VixClose >= th.VixP95,
		}
	}
	return days
}
