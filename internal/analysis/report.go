package analysis

import (
	"fmt"

	"github.com/helioquant/solar-vix-lab/internal/series"
)

// Report bundles every KPI from one analysis run. All values are
// derived fresh from the two input series against a single immutable
// threshold basis; nothing here is incremental.
type Report struct {
	Observations  int
	Thresholds    Thresholds
	RegimeStats   []RegimeStats
	Probabilities []ExtremeProbability
	Runs          []Run
	RunStats      []RunStats
}

// Analyze runs the full pipeline: join, thresholds, labeling, and the
// three KPIs. The per-KPI CLI subcommands reuse the same path and
// report a subset, so every KPI shares one percentile basis.
func Analyze(vix, sunspot series.Series, cfg Config) (*Report, error) {
	obs, err := series.InnerJoin(vix, sunspot)
	if err != nil {
		return nil, fmt.Errorf("join: %w", err)
	}

	th, err := ComputeThresholds(obs, cfg)
	if err != nil {
		return nil, fmt.Errorf("thresholds: %w", err)
	}

	days := Label(obs, th)

	regimeStats, err := DescribeByRegime(days)
	if err != nil {
		return nil, fmt.Errorf("regime stats: %w", err)
	}

	probabilities, err := ExtremeProbabilityByRegime(days)
	if err != nil {
		return nil, fmt.Errorf("extreme probability: %w", err)
	}

	runs, err := ExtractRuns(days)
	if err != nil {
		return nil, fmt.Errorf("run extraction: %w", err)
	}

	runStats, err := RunStatsByRegime(days)
	if err != nil {
		return nil, fmt.Errorf("run stats: %w", err)
	}

	return &Report{
		Observations:  len(obs),
		Thresholds:    th,
		RegimeStats:   regimeStats,
		Probabilities: probabilities,
		Runs:          runs,
		RunStats:      runStats,
	}, nil
}
