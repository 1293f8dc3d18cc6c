package main

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/helioquant/solar-vix-lab/internal/common"
	"github.com/helioquant/solar-vix-lab/internal/warehouse"
)

// runViews creates (or recreates) the ClickHouse schema: the solarvix
// database, the two base tables, and the analytical views.
func runViews(cmd *cobra.Command, args []string) error {
	addr, _ := cmd.Flags().GetString("ch-host")
	database, _ := cmd.Flags().GetString("ch-db")
	recreate, _ := cmd.Flags().GetBool("recreate")

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	cfg := common.DefaultConfig()
	conn, err := warehouse.Open(ctx, warehouse.Options{
		Addr:     addr,
		Database: "default", // target database may not exist yet
		Username: cfg.ClickHouseUser,
		Password: cfg.ClickHousePassword,
	})
	if err != nil {
		return err
	}
	defer conn.Close()

	if recreate {
		log.Info().Str("database", database).Msg("Dropping analytical views")
		if err := warehouse.DropViews(ctx, conn, database); err != nil {
			return err
		}
	}

	if err := warehouse.CreateSchema(ctx, conn, database); err != nil {
		return err
	}

	log.Info().
		Str("database", database).
		Int("schema_version", warehouse.SchemaVersion).
		Msg("Schema and analytical views ready")
	return nil
}
