package analysis

import (
	"fmt"
	"time"
)

// Run is a maximal contiguous stretch of high-VIX trading days,
// identified by its first date. Contiguity is over the existing row
// sequence: weekends and holidays are simply absent and do not break
// a run.
type Run struct {
	ID     int
	Start  time.Time
	Length int
}

// RunStats is one KPI 3 output row. A run whose member days straddle a
// regime change contributes one regime-homogeneous fragment to each
// regime it touches; NumRuns and AvgLength are computed over those
// fragments, which is the same grouping the SQL view produces.
type RunStats struct {
	Regime    Regime
	NumRuns   int
	AvgLength float64
}

// ExtractRuns walks the labeled days once in date order, assigns every
// day its RunID (the cumulative count of run starts so far, carried
// through low-VIX days), and materializes one Run per high-VIX
// stretch. A single isolated high-VIX day is a run of length 1; runs
// of length 0 cannot exist.
//
// The days slice is mutated in place to carry RunIDs. Out-of-order
// input is a correctness violation, not something to sort away here:
// the caller owns the ordering guarantee and a violation means the
// join stage is broken.
func ExtractRuns(days []Day) ([]Run, error) {
	var runs []Run
	prevHigh := false
	runID := 0

	for i := range days {
		if i > 0 && !days[i-1].Date.Before(days[i].Date) {
			return nil, fmt.Errorf("days out of order at %s: run extraction requires strict date order",
				days[i].Date.Format("2006-01-02"))
		}

		if days[i].HighVix && !prevHigh {
			runID++
			runs = append(runs, Run{ID: runID, Start: days[i].Date})
		}
		days[i].RunID = runID

		if days[i].HighVix {
			runs[len(runs)-1].Length++
		}
		prevHigh = days[i].HighVix
	}

	return runs, nil
}

// RunStatsByRegime aggregates high-VIX run fragments per regime:
// distinct runs touched and mean fragment length. ExtractRuns must
// have assigned RunIDs first.
func RunStatsByRegime(days []Day) ([]RunStats, error) {
	type key struct {
		runID  int
		regime Regime
	}
	fragments := make(map[key]int)
	for _, d := range days {
		if !d.HighVix {
			continue
		}
		if d.RunID == 0 {
			return nil, fmt.Errorf("high-vix day %s has no run id: call ExtractRuns first",
				d.Date.Format("2006-01-02"))
		}
		fragments[key{d.RunID, d.Regime}]++
	}

	var out []RunStats
	for _, regime := range []Regime{HighSunspot, LowSunspot} {
		count, total := 0, 0
		for k, length := range fragments {
			if k.regime == regime {
				count++
				total += length
			}
		}
		if count == 0 {
			continue
		}
		out = append(out, RunStats{
			Regime:    regime,
			NumRuns:   count,
			AvgLength: float64(total) / float64(count),
		})
	}
	return out, nil
}
