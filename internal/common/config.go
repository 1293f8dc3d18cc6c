// Package common provides shared configuration and counters for the
// solar-vix-lab tools.
package common

import (
	"os"
	"path/filepath"
)

// Config holds common configuration for all tools.
type Config struct {
	ClickHouseAddr     string
	ClickHouseDatabase string
	ClickHouseUser     string
	ClickHousePassword string
	DataDir            string
}

// DefaultConfig returns configuration with sensible defaults,
// overridable through the environment.
func DefaultConfig() *Config {
	return &Config{
		ClickHouseAddr:     getEnv("SOLARVIX_CH_ADDR", "127.0.0.1:9000"),
		ClickHouseDatabase: getEnv("SOLARVIX_CH_DATABASE", "solarvix"),
		ClickHouseUser:     getEnv("SOLARVIX_CH_USER", "default"),
		ClickHousePassword: getEnv("SOLARVIX_CH_PASSWORD", ""),
		DataDir:            getEnv("SOLARVIX_DATA_DIR", "/var/lib/solar-vix-lab"),
	}
}

// RawDataDir returns the directory for raw downloaded snapshots.
func (c *Config) RawDataDir() string {
	return filepath.Join(c.DataDir, "raw")
}

// ParquetDataDir returns the directory for cleaned Parquet series.
func (c *Config) ParquetDataDir() string {
	return filepath.Join(c.DataDir, "parquet")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
