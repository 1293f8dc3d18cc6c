// solar-vix - Sunspot/VIX regime analytics
//
// Correlates daily sunspot counts with the VIX volatility index: one
// subcommand per KPI plus a combined report, runnable against the
// local Parquet series or against the ClickHouse analytical views.
//
// Build: CGO_ENABLED=0 go build -ldflags="-s -w" -o build/solar-vix ./cmd/solar-vix

package main

import (
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/helioquant/solar-vix-lab/internal/common"
)

const appName = "solar-vix"

// Version can be overridden at build time via -ldflags
var Version = "1.0.0"

func main() {
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})

	cfg := common.DefaultConfig()

	rootCmd := &cobra.Command{
		Use:     appName,
		Short:   "Sunspot/VIX regime analytics",
		Version: Version,
		Long: `Correlates daily sunspot counts with the VIX volatility index.

Thresholds (sunspot p75, VIX p75/p95) are computed once per run over
the full joined sample and shared by every KPI. Use --source warehouse
to execute the KPIs against the ClickHouse views instead of the local
Parquet series; both paths implement the same semantics.`,
	}

	rootCmd.PersistentFlags().String("sunspot", filepath.Join(cfg.ParquetDataDir(), "sunspot_daily.parquet"), "Sunspot Parquet file")
	rootCmd.PersistentFlags().String("vix", filepath.Join(cfg.ParquetDataDir(), "vix_daily.parquet"), "VIX Parquet file")
	rootCmd.PersistentFlags().String("config", "", "Analysis settings YAML (optional)")
	rootCmd.PersistentFlags().String("source", "local", "KPI execution engine (local|warehouse)")
	rootCmd.PersistentFlags().String("ch-host", cfg.ClickHouseAddr, "ClickHouse native protocol address")
	rootCmd.PersistentFlags().String("ch-db", cfg.ClickHouseDatabase, "ClickHouse database")

	thresholdsCmd := &cobra.Command{
		Use:   "thresholds",
		Short: "Show the percentile threshold basis",
		Long:  "Computes the sunspot p75 and VIX p75/p95 cutoffs over the full joined sample",
		RunE:  runThresholds,
	}

	regimeStatsCmd := &cobra.Command{
		Use:   "regime-stats",
		Short: "KPI 1: per-regime VIX descriptive statistics",
		Long:  "Partitions joined days by sunspot regime and reports count, mean, and sample stddev of the VIX close",
		RunE:  runRegimeStats,
	}

	extremeProbCmd := &cobra.Command{
		Use:   "extreme-prob",
		Short: "KPI 2: P(extreme VIX | sunspot regime)",
		Long:  "Fraction of days per regime with a VIX close at or above the extreme (p95) cutoff",
		RunE:  runExtremeProb,
	}

	volRunsCmd := &cobra.Command{
		Use:   "vol-runs",
		Short: "KPI 3: high-VIX run lengths by regime",
		Long:  "Extracts maximal contiguous high-VIX runs in trading-day order and aggregates run counts and mean lengths per regime",
		RunE:  runVolRuns,
	}
	volRunsCmd.Flags().Bool("list", false, "List every extracted run (local source only)")

	reportCmd := &cobra.Command{
		Use:   "report",
		Short: "Run every KPI on one shared threshold basis",
		RunE:  runReport,
	}

	viewsCmd := &cobra.Command{
		Use:   "views",
		Short: "Create the ClickHouse schema and analytical views",
		Long:  "Creates the solarvix database, base tables, and the join/threshold/regime/run views",
		RunE:  runViews,
	}
	viewsCmd.Flags().Bool("recreate", false, "Drop and recreate the analytical views")

	rootCmd.AddCommand(thresholdsCmd, regimeStatsCmd, extremeProbCmd, volRunsCmd, reportCmd, viewsCmd)

	if err := rootCmd.Execute(); err != nil {
		log.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}
