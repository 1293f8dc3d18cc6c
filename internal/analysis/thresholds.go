// Package analysis implements the regime classification and run-length
// analytics over the joined sunspot/VIX daily sample: percentile
// thresholds, regime labels, per-regime descriptive statistics,
// extreme-volatility conditional probabilities, and high-VIX run
// extraction.
package analysis

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/helioquant/solar-vix-lab/internal/series"
)

var (
	// ErrInsufficientData reports an empty or near-empty sample where a
	// percentile or statistic is undefined.
	ErrInsufficientData = errors.New("insufficient data")

	// ErrEmptyPartition reports a regime or flag partition with zero
	// members where a ratio was requested.
	ErrEmptyPartition = errors.New("empty partition")
)

// Thresholds is the immutable percentile basis for one analysis run.
// It is computed once over the full joined sample and passed into
// every downstream stage; recomputing per subset would drift the KPIs
// apart.
type Thresholds struct {
	SunspotP75 float64 `yaml:"sunspot_p75"`
	VixP75     float64 `yaml:"vix_p75"`
	VixP95     float64 `yaml:"vix_p95"`
}

// Percentile computes the p-th percentile of values as an exact order
// statistic with linear interpolation between closest ranks. The
// sample sizes here are a few thousand daily rows, so exactness is
// cheap and beats a sketch; the trade-off is that thresholds differ at
// the margin from an approximate engine's output.
func Percentile(values []float64, p float64) (float64, error) {
	if len(values) == 0 {
		return 0, fmt.Errorf("%w: percentile %.2f of empty sample", ErrInsufficientData, p)
	}
	if p < 0 || p > 1 {
		return 0, fmt.Errorf("percentile %v out of range [0,1]", p)
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	if len(sorted) == 1 {
		return sorted[0], nil
	}

	rank := p * float64(len(sorted)-1)
	lo := int(math.Floor(rank))
	hi := int(math.Ceil(rank))
	if lo == hi {
		return sorted[lo], nil
	}
	frac := rank - float64(lo)
	return sorted[lo] + (sorted[hi]-sorted[lo])*frac, nil
}

// ComputeThresholds derives the percentile basis from the joined
// sample using the configured percentiles.
func ComputeThresholds(obs []series.Observation, cfg Config) (Thresholds, error) {
	if len(obs) < cfg.MinSamples {
		return Thresholds{}, fmt.Errorf("%w: %d joined observations, need at least %d",
			ErrInsufficientData, len(obs), cfg.MinSamples)
	}

	sunspots := make([]float64, len(obs))
	vix := make([]float64, len(obs))
	for i, o := range obs {
		sunspots[i] = o.Sunspot
		vix[i] = o.VixClose
	}

	var th Thresholds
	var err error
	if th.SunspotP75, err = Percentile(sunspots, cfg.RegimePercentile); err != nil {
		return Thresholds{}, fmt.Errorf("sunspot threshold: %w", err)
	}
	if th.VixP75, err = Percentile(vix, cfg.HighVixPercentile); err != nil {
		return Thresholds{}, fmt.Errorf("high-vix threshold: %w", err)
	}
	if th.VixP95, err = Percentile(vix, cfg.ExtremeVixPercentile); err != nil {
		return Thresholds{}, fmt.Errorf("extreme-vix threshold: %w", err)
	}
	return th, nil
}
