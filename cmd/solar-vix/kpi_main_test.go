package main

import (
	"context"
	"testing"

	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/helioquant/solar-vix-lab/internal/analysis"
)

// Connection setup takes the caller's context so the timeout lives at
// the call site.
var _ func(context.Context, *cobra.Command) (driver.Conn, string, error) = warehouseConn

func testCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "test"}
	cmd.Flags().String("config", "", "")
	cmd.Flags().String("source", "local", "")
	return cmd
}

func TestUseWarehouse(t *testing.T) {
	cmd := testCmd()
	assert.False(t, useWarehouse(cmd))

	require.NoError(t, cmd.Flags().Set("source", "warehouse"))
	assert.True(t, useWarehouse(cmd))
}

func TestLoadSettings_DefaultsWithoutConfigFile(t *testing.T) {
	cfg, err := loadSettings(testCmd())
	require.NoError(t, err)
	assert.Equal(t, analysis.DefaultConfig(), cfg)
}
