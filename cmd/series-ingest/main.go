// series-ingest - Load cleaned Parquet series into ClickHouse
//
// Reads the sunspot_daily and vix_daily Parquet files produced by
// series-prepare and inserts them via the ch-go native protocol with
// LZ4 compression. Re-runs are safe: the tables are
// ReplacingMergeTree keyed on date.
//
// Build: CGO_ENABLED=0 go build -ldflags="-s -w" -o build/series-ingest ./cmd/series-ingest

package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/ClickHouse/ch-go"
	"github.com/ClickHouse/ch-go/proto"

	"github.com/helioquant/solar-vix-lab/internal/common"
	"github.com/helioquant/solar-vix-lab/internal/series"
)

// Version can be overridden at build time via -ldflags
var Version = "1.0.0"

// SunspotBatch holds columnar data for native insert into
// solarvix.sunspot_daily.
type SunspotBatch struct {
	Date       *proto.ColDate32
	Sunspot    *proto.ColNullable[float64]
	SourceFile *proto.ColStr
}

func NewSunspotBatch() *SunspotBatch {
	return &SunspotBatch{
		Date:       new(proto.ColDate32),
		Sunspot:    proto.NewColNullable[float64](new(proto.ColFloat64)),
		SourceFile: new(proto.ColStr),
	}
}

func (b *SunspotBatch) Len() int {
	return b.Date.Rows()
}

func (b *SunspotBatch) Input() proto.Input {
	return proto.Input{
		{Name: "date", Data: b.Date},
		{Name: "sunspot_number", Data: b.Sunspot},
		{Name: "source_file", Data: b.SourceFile},
	}
}

func (b *SunspotBatch) AddPoint(p series.TimePoint, sourceFile string) {
	b.Date.Append(p.Date)
	if p.Valid {
		b.Sunspot.Append(proto.NewNullable(p.Value))
	} else {
		b.Sunspot.Append(proto.Null[float64]())
	}
	b.SourceFile.Append(sourceFile)
}

// VixBatch holds columnar data for native insert into
// solarvix.vix_daily.
type VixBatch struct {
	Date       *proto.ColDate32
	VixClose   *proto.ColFloat64
	SourceFile *proto.ColStr
}

func NewVixBatch() *VixBatch {
	return &VixBatch{
		Date:       new(proto.ColDate32),
		VixClose:   new(proto.ColFloat64),
		SourceFile: new(proto.ColStr),
	}
}

func (b *VixBatch) Len() int {
	return b.Date.Rows()
}

func (b *VixBatch) Input() proto.Input {
	return proto.Input{
		{Name: "date", Data: b.Date},
		{Name: "vix_close", Data: b.VixClose},
		{Name: "source_file", Data: b.SourceFile},
	}
}

func (b *VixBatch) AddPoint(p series.TimePoint, sourceFile string) {
	b.Date.Append(p.Date)
	b.VixClose.Append(p.Value)
	b.SourceFile.Append(sourceFile)
}

func insertBatch(ctx context.Context, conn *ch.Client, table string, columns string, input proto.Input) error {
	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES", table, columns)
	return conn.Do(ctx, ch.Query{
		Body:  query,
		Input: input,
	})
}

func main() {
	cfg := common.DefaultConfig()

	chHost := flag.String("ch-host", cfg.ClickHouseAddr, "ClickHouse native protocol address")
	chDB := flag.String("ch-db", cfg.ClickHouseDatabase, "ClickHouse database")
	sunspotPath := flag.String("sunspot", filepath.Join(cfg.ParquetDataDir(), "sunspot_daily.parquet"), "Sunspot Parquet file")
	vixPath := flag.String("vix", filepath.Join(cfg.ParquetDataDir(), "vix_daily.parquet"), "VIX Parquet file")
	truncate := flag.Bool("truncate", false, "Truncate tables before insert")
	dryRun := flag.Bool("dry-run", false, "Read Parquet only, no ClickHouse insert")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "series-ingest v%s - Parquet to ClickHouse Loader\n\n", Version)
		fmt.Fprintf(os.Stderr, "Usage: %s [OPTIONS]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Loads cleaned sunspot/VIX Parquet series into ClickHouse.\n\n")
		flag.PrintDefaults()
	}

	flag.Parse()

	log.Println("=========================================================")
	log.Printf("Series Ingest v%s", Version)
	log.Println("=========================================================")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Println("\nShutdown requested...")
		cancel()
	}()

	// Read Parquet series
	sunspot, err := series.ReadSunspotParquet(*sunspotPath)
	if err != nil {
		log.Fatalf("Sunspot read failed: %v", err)
	}
	log.Printf("[sunspot] %d rows from %s", sunspot.Len(), *sunspotPath)

	vix, err := series.ReadVixParquet(*vixPath)
	if err != nil {
		log.Fatalf("VIX read failed: %v", err)
	}
	log.Printf("[vix] %d rows from %s", vix.Len(), *vixPath)

	if *dryRun {
		log.Println("Dry run, skipping ClickHouse insert")
		return
	}

	// Connect to ClickHouse
	log.Printf("Connecting to ClickHouse at %s...", *chHost)
	conn, err := ch.Dial(ctx, ch.Options{
		Address:     *chHost,
		Database:    *chDB,
		User:        cfg.ClickHouseUser,
		Password:    cfg.ClickHousePassword,
		Compression: ch.CompressionLZ4,
	})
	if err != nil {
		log.Fatalf("ClickHouse connection failed: %v", err)
	}
	defer conn.Close()

	sunspotFQN := fmt.Sprintf("%s.sunspot_daily", *chDB)
	vixFQN := fmt.Sprintf("%s.vix_daily", *chDB)

	if *truncate {
		for _, table := range []string{sunspotFQN, vixFQN} {
			log.Printf("Truncating table %s...", table)
			if err := conn.Do(ctx, ch.Query{Body: fmt.Sprintf("TRUNCATE TABLE %s", table)}); err != nil {
				log.Printf("Truncate warning: %v", err)
			}
		}
	}

	startTime := time.Now()

	sunspotBatch := NewSunspotBatch()
	for _, p := range sunspot.Points {
		sunspotBatch.AddPoint(p, filepath.Base(*sunspotPath))
	}
	if err := insertBatch(ctx, conn, sunspotFQN, "date, sunspot_number, source_file", sunspotBatch.Input()); err != nil {
		log.Fatalf("Sunspot insert failed: %v", err)
	}
	log.Printf("[sunspot] Inserted %d rows into %s", sunspotBatch.Len(), sunspotFQN)

	vixBatch := NewVixBatch()
	for _, p := range vix.Points {
		vixBatch.AddPoint(p, filepath.Base(*vixPath))
	}
	if err := insertBatch(ctx, conn, vixFQN, "date, vix_close, source_file", vixBatch.Input()); err != nil {
		log.Fatalf("VIX insert failed: %v", err)
	}
	log.Printf("[vix] Inserted %d rows into %s", vixBatch.Len(), vixFQN)

	elapsed := time.Since(startTime)
	total := sunspotBatch.Len() + vixBatch.Len()

	log.Println()
	log.Println("=========================================================")
	log.Println("Final Statistics")
	log.Println("=========================================================")
	log.Printf("Total Records: %d", total)
	log.Printf("Elapsed:       %v", elapsed.Round(time.Millisecond))
	log.Printf("Rate:          %.0f records/sec", float64(total)/elapsed.Seconds())
	log.Println("=========================================================")
}
