package main

import (
	"context"
	"fmt"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/helioquant/solar-vix-lab/internal/analysis"
	"github.com/helioquant/solar-vix-lab/internal/common"
	"github.com/helioquant/solar-vix-lab/internal/series"
	"github.com/helioquant/solar-vix-lab/internal/warehouse"
)

// loadSettings resolves the analysis configuration, defaulting when no
// --config file is given.
func loadSettings(cmd *cobra.Command) (analysis.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		return analysis.DefaultConfig(), nil
	}
	return analysis.LoadConfig(path)
}

// localReport runs the full in-memory pipeline from the two Parquet
// series. Every subcommand goes through here so the KPIs share one
// threshold basis.
func localReport(cmd *cobra.Command) (*analysis.Report, error) {
	cfg, err := loadSettings(cmd)
	if err != nil {
		return nil, err
	}

	sunspotPath, _ := cmd.Flags().GetString("sunspot")
	vixPath, _ := cmd.Flags().GetString("vix")

	sunspot, err := series.ReadSunspotParquet(sunspotPath)
	if err != nil {
		return nil, fmt.Errorf("sunspot series: %w", err)
	}
	vix, err := series.ReadVixParquet(vixPath)
	if err != nil {
		return nil, fmt.Errorf("vix series: %w", err)
	}

	log.Info().
		Int("sunspot_rows", sunspot.Len()).
		Int("vix_rows", vix.Len()).
		Msg("Series loaded")

	return analysis.Analyze(vix, sunspot, cfg)
}

// warehouseConn opens the ClickHouse connection for --source warehouse.
// The caller owns ctx and its deadline.
func warehouseConn(ctx context.Context, cmd *cobra.Command) (driver.Conn, string, error) {
	addr, _ := cmd.Flags().GetString("ch-host")
	database, _ := cmd.Flags().GetString("ch-db")
	cfg := common.DefaultConfig()

	conn, err := warehouse.Open(ctx, warehouse.Options{
		Addr:     addr,
		Database: database,
		Username: cfg.ClickHouseUser,
		Password: cfg.ClickHousePassword,
	})
	if err != nil {
		return nil, "", err
	}
	return conn, database, nil
}

func useWarehouse(cmd *cobra.Command) bool {
	source, _ := cmd.Flags().GetString("source")
	return source == "warehouse"
}

func printThresholds(th analysis.Thresholds) {
	fmt.Printf("Threshold basis (immutable per run)\n")
	fmt.Printf("  sunspot_p75: %.2f\n", th.SunspotP75)
	fmt.Printf("  vix_p75:     %.2f\n", th.VixP75)
	fmt.Printf("  vix_p95:     %.2f\n", th.VixP95)
}

func printRegimeStats(stats []analysis.RegimeStats) {
	fmt.Printf("%-14s %8s %10s %10s\n", "regime", "n", "mean_vix", "stddev")
	for _, s := range stats {
		fmt.Printf("%-14s %8d %10.2f %10.2f\n", s.Regime, s.N, s.MeanVix, s.StdDevVix)
	}
}

func printExtremeProb(probs []analysis.ExtremeProbability) {
	fmt.Printf("%-14s %8s %13s %13s\n", "regime", "n", "extreme_days", "probability")
	for _, p := range probs {
		fmt.Printf("%-14s %8d %13d %13.4f\n", p.Regime, p.N, p.ExtremeDays, p.Probability)
	}
}

func printRunStats(stats []analysis.RunStats) {
	fmt.Printf("%-14s %9s %15s\n", "regime", "num_runs", "avg_run_length")
	for _, s := range stats {
		fmt.Printf("%-14s %9d %15.2f\n", s.Regime, s.NumRuns, s.AvgLength)
	}
}

func runThresholds(cmd *cobra.Command, args []string) error {
	if useWarehouse(cmd) {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		conn, database, err := warehouseConn(ctx, cmd)
		if err != nil {
			return err
		}
		defer conn.Close()

		th, err := warehouse.QueryThresholds(ctx, conn, database)
		if err != nil {
			return err
		}
		printThresholds(th)
		return nil
	}

	report, err := localReport(cmd)
	if err != nil {
		return err
	}
	fmt.Printf("Joined observations: %d\n\n", report.Observations)
	printThresholds(report.Thresholds)
	return nil
}

func runRegimeStats(cmd *cobra.Command, args []string) error {
	if useWarehouse(cmd) {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		conn, database, err := warehouseConn(ctx, cmd)
		if err != nil {
			return err
		}
		defer conn.Close()

		stats, err := warehouse.QueryRegimeStats(ctx, conn, database)
		if err != nil {
			return err
		}
		printRegimeStats(stats)
		return nil
	}

	report, err := localReport(cmd)
	if err != nil {
		return err
	}
	printRegimeStats(report.RegimeStats)
	return nil
}

func runExtremeProb(cmd *cobra.Command, args []string) error {
	if useWarehouse(cmd) {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		conn, database, err := warehouseConn(ctx, cmd)
		if err != nil {
			return err
		}
		defer conn.Close()

		probs, err := warehouse.QueryExtremeProbability(ctx, conn, database)
		if err != nil {
			return err
		}
		printExtremeProb(probs)
		return nil
	}

	report, err := localReport(cmd)
	if err != nil {
		return err
	}
	printExtremeProb(report.Probabilities)
	return nil
}

func runVolRuns(cmd *cobra.Command, args []string) error {
	if useWarehouse(cmd) {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		conn, database, err := warehouseConn(ctx, cmd)
		if err != nil {
			return err
		}
		defer conn.Close()

		stats, err := warehouse.QueryRunStats(ctx, conn, database)
		if err != nil {
			return err
		}
		printRunStats(stats)
		return nil
	}

	report, err := localReport(cmd)
	if err != nil {
		return err
	}

	highDays := 0
	for _, r := range report.Runs {
		highDays += r.Length
	}
	fmt.Printf("High-VIX days: %d across %d runs\n\n", highDays, len(report.Runs))

	if list, _ := cmd.Flags().GetBool("list"); list {
		fmt.Printf("%-6s %-12s %s\n", "run", "start", "length")
		for _, r := range report.Runs {
			fmt.Printf("%-6d %-12s %d\n", r.ID, r.Start.Format("2006-01-02"), r.Length)
		}
		fmt.Println()
	}

	printRunStats(report.RunStats)
	return nil
}

func runReport(cmd *cobra.Command, args []string) error {
	if useWarehouse(cmd) {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		conn, database, err := warehouseConn(ctx, cmd)
		if err != nil {
			return err
		}
		defer conn.Close()

		th, err := warehouse.QueryThresholds(ctx, conn, database)
		if err != nil {
			return err
		}
		stats, err := warehouse.QueryRegimeStats(ctx, conn, database)
		if err != nil {
			return err
		}
		probs, err := warehouse.QueryExtremeProbability(ctx, conn, database)
		if err != nil {
			return err
		}
		runStats, err := warehouse.QueryRunStats(ctx, conn, database)
		if err != nil {
			return err
		}

		printThresholds(th)
		fmt.Println()
		printRegimeStats(stats)
		fmt.Println()
		printExtremeProb(probs)
		fmt.Println()
		printRunStats(runStats)
		return nil
	}

	report, err := localReport(cmd)
	if err != nil {
		return err
	}

	fmt.Printf("Joined observations: %d\n\n", report.Observations)
	printThresholds(report.Thresholds)
	fmt.Println()
	printRegimeStats(report.RegimeStats)
	fmt.Println()
	printExtremeProb(report.Probabilities)
	fmt.Println()
	printRunStats(report.RunStats)
	return nil
}
