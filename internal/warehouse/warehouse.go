// Package warehouse holds the ClickHouse schema for the solar-vix
// dataset and the analytical views that mirror the in-memory
// pipeline: joined observations, percentile thresholds, regime
// statistics, and high-VIX run extraction via window functions.
package warehouse

import (
	"context"
	"fmt"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
)

// Options carries ClickHouse connection settings.
type Options struct {
	Addr     string
	Database string
	Username string
	Password string
}

// Open connects over the native protocol with LZ4 compression.
func Open(ctx context.Context, opts Options) (driver.Conn, error) {
	conn, err := clickhouse.Open(&clickhouse.Options{
		Addr: []string{opts.Addr},
		Auth: clickhouse.Auth{
			Database: opts.Database,
			Username: opts.Username,
			Password: opts.Password,
		},
		Compression: &clickhouse.Compression{
			Method: clickhouse.CompressionLZ4,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("clickhouse open %s: %w", opts.Addr, err)
	}
	if err := conn.Ping(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("clickhouse ping %s: %w", opts.Addr, err)
	}
	return conn, nil
}
