package warehouse

import (
	"context"
	"fmt"

	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"

	"github.com/helioquant/solar-vix-lab/internal/analysis"
)

func parseRegime(s string) (analysis.Regime, error) {
	switch s {
	case "high_sunspot":
		return analysis.HighSunspot, nil
	case "low_sunspot":
		return analysis.LowSunspot, nil
	default:
		return 0, fmt.Errorf("unknown regime label %q", s)
	}
}

// QueryThresholds reads the percentile basis from the thresholds view.
func QueryThresholds(ctx context.Context, conn driver.Conn, database string) (analysis.Thresholds, error) {
	var th analysis.Thresholds
	row := conn.QueryRow(ctx,
		fmt.Sprintf("SELECT sunspot_p75, vix_p75, vix_p95 FROM %s.thresholds", database))
	if err := row.Scan(&th.SunspotP75, &th.VixP75, &th.VixP95); err != nil {
		return analysis.Thresholds{}, fmt.Errorf("query thresholds: %w", err)
	}
	return th, nil
}

// QueryRegimeStats reads KPI 1 from the regime_stats view.
func QueryRegimeStats(ctx context.Context, conn driver.Conn, database string) ([]analysis.RegimeStats, error) {
	rows, err := conn.Query(ctx,
		fmt.Sprintf("SELECT regime, n, mean_vix, stddev_vix FROM %s.regime_stats", database))
	if err != nil {
		return nil, fmt.Errorf("query regime stats: %w", err)
	}
	defer rows.Close()

	var out []analysis.RegimeStats
	for rows.Next() {
		var (
			label string
			n     uint64
			stats analysis.RegimeStats
		)
		if err := rows.Scan(&label, &n, &stats.MeanVix, &stats.StdDevVix); err != nil {
			return nil, fmt.Errorf("scan regime stats: %w", err)
		}
		if stats.Regime, err = parseRegime(label); err != nil {
			return nil, err
		}
		stats.N = int(n)
		if stats.N < 2 {
			return nil, fmt.Errorf("%w: regime %s has %d observation, stddev undefined",
				analysis.ErrInsufficientData, stats.Regime, stats.N)
		}
		out = append(out, stats)
	}
	return out, rows.Err()
}

// QueryExtremeProbability reads KPI 2 from the extreme_prob view.
func QueryExtremeProbability(ctx context.Context, conn driver.Conn, database string) ([]analysis.ExtremeProbability, error) {
	rows, err := conn.Query(ctx,
		fmt.Sprintf("SELECT regime, n, extreme_days, extreme_probability FROM %s.extreme_prob", database))
	if err != nil {
		return nil, fmt.Errorf("query extreme probability: %w", err)
	}
	defer rows.Close()

	var out []analysis.ExtremeProbability
	for rows.Next() {
		var (
			label       string
			n, extreme  uint64
			probability analysis.ExtremeProbability
		)
		if err := rows.Scan(&label, &n, &extreme, &probability.Probability); err != nil {
			return nil, fmt.Errorf("scan extreme probability: %w", err)
		}
		if probability.Regime, err = parseRegime(label); err != nil {
			return nil, err
		}
		probability.N = int(n)
		probability.ExtremeDays = int(extreme)
		out = append(out, probability)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// The view only emits populated partitions; a missing regime row
	// means that partition is empty.
	if len(out) < 2 {
		return nil, fmt.Errorf("%w: %d of 2 regime partitions populated",
			analysis.ErrEmptyPartition, len(out))
	}
	return out, nil
}

// QueryRunStats reads KPI 3 from the run_stats view.
func QueryRunStats(ctx context.Context, conn driver.Conn, database string) ([]analysis.RunStats, error) {
	rows, err := conn.Query(ctx,
		fmt.Sprintf("SELECT regime, num_runs, avg_run_length FROM %s.run_stats", database))
	if err != nil {
		return nil, fmt.Errorf("query run stats: %w", err)
	}
	defer rows.Close()

	var out []analysis.RunStats
	for rows.Next() {
		var (
			label string
			n     uint64
			stats analysis.RunStats
		)
		if err := rows.Scan(&label, &n, &stats.AvgLength); err != nil {
			return nil, fmt.Errorf("scan run stats: %w", err)
		}
		if stats.Regime, err = parseRegime(label); err != nil {
			return nil, err
		}
		stats.NumRuns = int(n)
		out = append(out, stats)
	}
	return out, rows.Err()
}
