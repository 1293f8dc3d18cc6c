// series-prepare - Clean raw sunspot/VIX downloads into Parquet
//
// Pipeline per series:
//   - parse raw CSV (plain, .gz via pgzip, or .zst snapshots)
//   - normalize column names, truncate timestamps to calendar dates
//   - sort ascending, reject duplicate dates
//   - VIX: linearly interpolate interior gaps, drop unfillable edges
//   - write zstd-compressed Parquet
//
// Sunspot nulls (SIDC -1 days) are preserved in the Parquet output;
// the join stage filters them. The VIX output carries no nulls.
//
// Build: CGO_ENABLED=0 go build -ldflags="-s -w" -o build/series-prepare ./cmd/series-prepare

package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/klauspost/compress/zstd"
	"github.com/klauspost/pgzip"

	"github.com/helioquant/solar-vix-lab/internal/common"
	"github.com/helioquant/solar-vix-lab/internal/series"
)

// Version can be overridden at build time via -ldflags
var Version = "1.0.0"

// openData opens a raw snapshot, transparently decompressing .gz and
// .zst files.
func openData(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	switch {
	case strings.HasSuffix(path, ".gz"):
		gz, err := pgzip.NewReader(f)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("gzip open %s: %w", path, err)
		}
		return &wrappedReader{Reader: gz, closers: []io.Closer{gz, f}}, nil
	case strings.HasSuffix(path, ".zst"):
		zr, err := zstd.NewReader(f)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("zstd open %s: %w", path, err)
		}
		rc := zr.IOReadCloser()
		return &wrappedReader{Reader: rc, closers: []io.Closer{rc, f}}, nil
	default:
		return f, nil
	}
}

type wrappedReader struct {
	io.Reader
	closers []io.Closer
}

func (w *wrappedReader) Close() error {
	var first error
	for _, c := range w.closers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// normalize sorts, truncates, and checks the series; shared by both
// branches before their format-specific cleaning.
func normalize(s *series.Series) error {
	s.TruncateDates()
	s.SortByDate()
	return s.CheckUniqueDates()
}

func prepareSunspot(inPath, outPath string, counters *common.Counters) error {
	r, err := openData(inPath)
	if err != nil {
		return err
	}
	defer r.Close()

	s, err := series.ParseSIDC(r)
	if err != nil {
		return fmt.Errorf("parse %s: %w", inPath, err)
	}
	counters.RowsParsed.Add(uint64(s.Len()))

	if err := normalize(&s); err != nil {
		return fmt.Errorf("%s: %w", inPath, err)
	}

	missing := s.Len() - len(s.Values())
	log.Printf("[sunspot] %d rows, %d missing (kept as nulls)", s.Len(), missing)

	n, err := series.WriteSunspotParquet(outPath, s)
	if err != nil {
		return err
	}
	counters.RowsWritten.Add(uint64(n))
	log.Printf("[sunspot] Wrote %d rows -> %s", n, outPath)
	return nil
}

func prepareVix(inPath, outPath string, counters *common.Counters) error {
	r, err := openData(inPath)
	if err != nil {
		return err
	}
	defer r.Close()

	s, err := series.ParseVixCSV(r)
	if err != nil {
		return fmt.Errorf("parse %s: %w", inPath, err)
	}
	counters.RowsParsed.Add(uint64(s.Len()))

	if err := normalize(&s); err != nil {
		return fmt.Errorf("%s: %w", inPath, err)
	}

	filled, n := series.FillLinear(s)
	counters.RowsFilled.Add(uint64(n))

	// Leading/trailing gaps have only one neighbor and stay missing;
	// they cannot cross the no-null boundary contract.
	cleaned := filled.DropMissing()
	dropped := filled.Len() - cleaned.Len()
	counters.RowsDropped.Add(uint64(dropped))
	log.Printf("[vix] %d rows, %d interpolated, %d unfillable edge rows dropped",
		s.Len(), n, dropped)

	written, err := series.WriteVixParquet(outPath, cleaned)
	if err != nil {
		return err
	}
	counters.RowsWritten.Add(uint64(written))
	log.Printf("[vix] Wrote %d rows -> %s", written, outPath)
	return nil
}

func main() {
	cfg := common.DefaultConfig()

	sunspotIn := flag.String("sunspot-in", filepath.Join(cfg.RawDataDir(), "sidc_ssn_daily.csv"), "Raw SIDC daily CSV (.csv, .csv.gz, or .csv.zst)")
	vixIn := flag.String("vix-in", filepath.Join(cfg.RawDataDir(), "cboe_vix_daily.csv"), "Raw VIX daily CSV (.csv, .csv.gz, or .csv.zst)")
	outDir := flag.String("out-dir", cfg.ParquetDataDir(), "Output directory for Parquet files")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "series-prepare v%s - Series Cleaner and Parquet Exporter\n\n", Version)
		fmt.Fprintf(os.Stderr, "Usage: %s [OPTIONS]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Cleans raw sunspot/VIX downloads and exports Parquet series.\n\n")
		flag.PrintDefaults()
	}

	flag.Parse()

	log.Println("=========================================================")
	log.Printf("Series Prepare v%s", Version)
	log.Println("=========================================================")
	log.Printf("Sunspot in: %s", *sunspotIn)
	log.Printf("VIX in:     %s", *vixIn)
	log.Printf("Out dir:    %s", *outDir)

	if err := os.MkdirAll(*outDir, 0755); err != nil {
		log.Fatalf("Cannot create output directory: %v", err)
	}

	startTime := time.Now()
	counters := &common.Counters{}

	if err := prepareSunspot(*sunspotIn, filepath.Join(*outDir, "sunspot_daily.parquet"), counters); err != nil {
		log.Fatalf("Sunspot prepare failed: %v", err)
	}
	if err := prepareVix(*vixIn, filepath.Join(*outDir, "vix_daily.parquet"), counters); err != nil {
		log.Fatalf("VIX prepare failed: %v", err)
	}

	parsed, filled, dropped, written := counters.Summary()
	elapsed := time.Since(startTime)

	log.Println()
	log.Println("=========================================================")
	log.Println("Prepare Summary")
	log.Println("=========================================================")
	log.Printf("Parsed:       %d rows", parsed)
	log.Printf("Interpolated: %d rows", filled)
	log.Printf("Dropped:      %d rows", dropped)
	log.Printf("Written:      %d rows", written)
	log.Printf("Elapsed:      %v", elapsed.Round(time.Millisecond))
	log.Println("=========================================================")
}
