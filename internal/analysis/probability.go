package analysis

import "fmt"

// ExtremeProbability is one KPI 2 output row: the fraction of days in
// one regime partition whose VIX close is at or above the extreme
// (p95) cutoff.
type ExtremeProbability struct {
	Regime      Regime
	N           int
	ExtremeDays int
	Probability float64
}

// ExtremeProbabilityByRegime partitions the labeled days by regime and
// computes P(extreme_vix | regime) in each. Both partitions must be
// populated: a zero-member partition would divide by zero, so it is
// signaled explicitly instead of reported as 0 or NaN.
func ExtremeProbabilityByRegime(days []Day) ([]ExtremeProbability, error) {
	if len(days) == 0 {
		return nil, fmt.Errorf("%w: no labeled observations", ErrInsufficientData)
	}

	var out []ExtremeProbability
	for _, regime := range []Regime{HighSunspot, LowSunspot} {
		n, extreme := 0, 0
		for _, d := range days {
			if d.Regime != regime {
				continue
			}
			n++
			if d.ExtremeVix {
				extreme++
			}
		}
		if n == 0 {
			return nil, fmt.Errorf("%w: regime %s has no members", ErrEmptyPartition, regime)
		}
		out = append(out, ExtremeProbability{
			Regime:      regime,
			N:           n,
			ExtremeDays: extreme,
			Probability: float64(extreme) / float64(n),
		})
	}
	return out, nil
}
