package analysis

import (
	"fmt"
	"math"
)

// RegimeStats is one KPI 1 output row: descriptive statistics of the
// VIX close within one regime partition.
type RegimeStats struct {
	Regime    Regime
	N         int
	MeanVix   float64
	StdDevVix float64
}

// DescribeByRegime partitions the labeled days by regime and computes
// count, mean, and Bessel-corrected sample standard deviation of the
// VIX close for each. A partition with fewer than two members has an
// undefined standard deviation and is reported as an error, never as
// a silent zero. Output order is high_sunspot then low_sunspot;
// regimes with no members are omitted.
func DescribeByRegime(days []Day) ([]RegimeStats, error) {
	var out []RegimeStats
	for _, regime := range []Regime{HighSunspot, LowSunspot} {
		var vix []float64
		for _, d := range days {
			if d.Regime == regime {
				vix = append(vix, d.VixClose)
			}
		}
		if len(vix) == 0 {
			continue
		}
		if len(vix) < 2 {
			return nil, fmt.Errorf("%w: regime %s has %d observation, stddev undefined",
				ErrInsufficientData, regime, len(vix))
		}

		mean := meanOf(vix)
		var sumSq float64
		for _, v := range vix {
			dev := v - mean
			sumSq += dev * dev
		}
		out = append(out, RegimeStats{
			Regime:    regime,
			N:         len(vix),
			MeanVix:   mean,
			StdDevVix: math.Sqrt(sumSq / float64(len(vix)-1)),
		})
	}

	if len(out) == 0 {
		return nil, fmt.Errorf("%w: no labeled observations", ErrInsufficientData)
	}
	return out, nil
}

func meanOf(values []float64) float64 {
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
