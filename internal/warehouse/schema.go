package warehouse

import (
	"context"
	"fmt"

	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
)

// SchemaVersion is the current warehouse schema version.
const SchemaVersion = 1

// Base tables. ReplacingMergeTree on date lets a re-run of
// series-ingest supersede earlier loads of the same day.
var tableDDL = []string{
	`CREATE TABLE IF NOT EXISTS %[1]s.sunspot_daily (
		date            Date32,
		sunspot_number  Nullable(Float64),
		source_file     String,
		updated_at      DateTime DEFAULT now()
	) ENGINE = ReplacingMergeTree(updated_at)
	ORDER BY date`,

	`CREATE TABLE IF NOT EXISTS %[1]s.vix_daily (
		date        Date32,
		vix_close   Float64,
		source_file String,
		updated_at  DateTime DEFAULT now()
	) ENGINE = ReplacingMergeTree(updated_at)
	ORDER BY date`,
}

// Analytical views, leaf-first. Thresholds are computed once over the
// full joined sample and every downstream view reads them from the
// same place, so the KPIs cannot drift onto different percentile
// bases.
var viewDDL = []string{
	// Inner join on calendar date; null sunspot days drop out here.
	`CREATE VIEW IF NOT EXISTS %[1]s.joined_daily AS
	SELECT
		v.date                          AS date,
		v.vix_close                     AS vix_close,
		assumeNotNull(s.sunspot_number) AS sunspot_number
	FROM %[1]s.vix_daily AS v FINAL
	INNER JOIN %[1]s.sunspot_daily AS s FINAL ON v.date = s.date
	WHERE s.sunspot_number IS NOT NULL
	ORDER BY date`,

	// Exact order statistics; the dataset is a few thousand rows, so
	// there is no need for quantileTDigest here.
	`CREATE VIEW IF NOT EXISTS %[1]s.thresholds AS
	SELECT
		quantileExactInclusive(0.75)(sunspot_number) AS sunspot_p75,
		quantileExactInclusive(0.75)(vix_close)      AS vix_p75,
		quantileExactInclusive(0.95)(vix_close)      AS vix_p95
	FROM %[1]s.joined_daily`,

	// Inclusive lower bound: values exactly at the cutoff land in the
	// high bucket.
	`CREATE VIEW IF NOT EXISTS %[1]s.labeled_daily AS
	SELECT
		d.date,
		d.vix_close,
		d.sunspot_number,
		if(d.sunspot_number >= t.sunspot_p75, 'high_sunspot', 'low_sunspot') AS regime,
		toUInt8(d.vix_close >= t.vix_p75) AS high_vix,
		toUInt8(d.vix_close >= t.vix_p95) AS extreme_vix
	FROM %[1]s.joined_daily AS d
	CROSS JOIN %[1]s.thresholds AS t
	ORDER BY d.date`,

	// KPI 1: per-regime VIX descriptive statistics.
	`CREATE VIEW IF NOT EXISTS %[1]s.regime_stats AS
	SELECT
		regime,
		count()               AS n,
		avg(vix_close)        AS mean_vix,
		stddevSamp(vix_close) AS stddev_vix
	FROM %[1]s.labeled_daily
	GROUP BY regime
	ORDER BY regime`,

	// KPI 2: P(extreme_vix | regime).
	`CREATE VIEW IF NOT EXISTS %[1]s.extreme_prob AS
	SELECT
		regime,
		count()                       AS n,
		countIf(extreme_vix = 1)      AS extreme_days,
		countIf(extreme_vix = 1) / count() AS extreme_probability
	FROM %[1]s.labeled_daily
	GROUP BY regime
	ORDER BY regime`,

	// KPI 3 step 1: run_id is the cumulative count of run starts in
	// strict date order, carried through low-VIX days.
	`CREATE VIEW IF NOT EXISTS %[1]s.vix_runs AS
	SELECT
		date,
		regime,
		high_vix,
		sum(run_start) OVER (ORDER BY date ROWS BETWEEN UNBOUNDED PRECEDING AND CURRENT ROW) AS run_id
	FROM (
		SELECT
			date,
			regime,
			high_vix,
			if(high_vix = 1 AND lagInFrame(high_vix, 1, toUInt8(0))
				OVER (ORDER BY date ROWS BETWEEN UNBOUNDED PRECEDING AND CURRENT ROW) = 0, 1, 0) AS run_start
		FROM %[1]s.labeled_daily
	)`,

	// KPI 3 step 2: group member days by (regime, run_id). A run that
	// straddles a regime change contributes one fragment per regime.
	`CREATE VIEW IF NOT EXISTS %[1]s.run_stats AS
	SELECT
		regime,
		count()         AS num_runs,
		avg(run_length) AS avg_run_length
	FROM (
		SELECT regime, run_id, count() AS run_length
		FROM %[1]s.vix_runs
		WHERE high_vix = 1
		GROUP BY regime, run_id
	)
	GROUP BY regime
	ORDER BY regime`,
}

// CreateSchema creates the database, base tables, and analytical
// views. Idempotent.
func CreateSchema(ctx context.Context, conn driver.Conn, database string) error {
	if err := conn.Exec(ctx, fmt.Sprintf("CREATE DATABASE IF NOT EXISTS %s", database)); err != nil {
		return fmt.Errorf("create database %s: %w", database, err)
	}
	for _, ddl := range tableDDL {
		if err := conn.Exec(ctx, fmt.Sprintf(ddl, database)); err != nil {
			return fmt.Errorf("create table: %w", err)
		}
	}
	for _, ddl := range viewDDL {
		if err := conn.Exec(ctx, fmt.Sprintf(ddl, database)); err != nil {
			return fmt.Errorf("create view: %w", err)
		}
	}
	return nil
}

// DropViews removes the analytical views so CreateSchema can recreate
// them after a definition change. Base tables are left alone.
func DropViews(ctx context.Context, conn driver.Conn, database string) error {
	for _, view := range []string{
		"run_stats", "vix_runs", "extreme_prob", "regime_stats",
		"labeled_daily", "thresholds", "joined_daily",
	} {
		if err := conn.Exec(ctx, fmt.Sprintf("DROP VIEW IF EXISTS %s.%s", database, view)); err != nil {
			return fmt.Errorf("drop view %s: %w", view, err)
		}
	}
	return nil
}
