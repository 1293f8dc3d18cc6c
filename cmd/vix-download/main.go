// vix-download - Download daily VIX history
//
// Data sources:
//   - CBOE: official VIX daily OHLC history (1990-present)
//   - Stooq: VIX daily closes, CSV export (fallback mirror)
//
// Build: CGO_ENABLED=0 go build -ldflags="-s -w" -o build/vix-download ./cmd/vix-download

package main

import (
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/klauspost/compress/zstd"

	"github.com/helioquant/solar-vix-lab/internal/common"
)

// Version can be overridden at build time via -ldflags
var Version = "1.1.0"

// DataSource defines a VIX data source
type DataSource struct {
	Name     string
	URL      string
	Filename string
	Desc     string
}

var sources = []DataSource{
	{
		Name:     "cboe_daily",
		URL:      "https://cdn.cboe.com/api/global/us_indices/daily_prices/VIX_History.csv",
		Filename: "cboe_vix_daily.csv",
		Desc:     "CBOE VIX daily OHLC history (1990-present)",
	},
	{
		Name:     "stooq_daily",
		URL:      "https://stooq.com/q/d/l/?s=vi.c&i=d",
		Filename: "stooq_vix_daily.csv",
		Desc:     "Stooq VIX daily closes (mirror)",
	},
}

func downloadFile(url, destPath string, timeout time.Duration, compress bool) error {
	client := &http.Client{
		Timeout: timeout,
	}

	resp, err := client.Get(url)
	if err != nil {
		return fmt.Errorf("HTTP GET failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("HTTP %d: %s", resp.StatusCode, resp.Status)
	}

	if compress {
		destPath += ".zst"
	}

	tmpPath := destPath + ".tmp"
	f, err := os.Create(tmpPath)
	if err != nil {
		return fmt.Errorf("create file failed: %w", err)
	}

	var n int64
	if compress {
		zw, err := zstd.NewWriter(f)
		if err != nil {
			f.Close()
			os.Remove(tmpPath)
			return fmt.Errorf("zstd init failed: %w", err)
		}
		n, err = io.Copy(zw, resp.Body)
		if cerr := zw.Close(); err == nil {
			err = cerr
		}
		f.Close()
		if err != nil {
			os.Remove(tmpPath)
			return fmt.Errorf("download failed: %w", err)
		}
	} else {
		n, err = io.Copy(f, resp.Body)
		f.Close()
		if err != nil {
			os.Remove(tmpPath)
			return fmt.Errorf("download failed: %w", err)
		}
	}

	// Atomic rename
	if err := os.Rename(tmpPath, destPath); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("rename failed: %w", err)
	}

	fmt.Printf("  Downloaded %s (%d bytes)\n", filepath.Base(destPath), n)
	return nil
}

func main() {
	cfg := common.DefaultConfig()

	destDir := flag.String("dest", cfg.RawDataDir(), "Destination directory")
	timeout := flag.Duration("timeout", 60*time.Second, "HTTP timeout per download")
	listSources := flag.Bool("list", false, "List available data sources")
	source := flag.String("source", "all", "Source to download (or 'all')")
	compress := flag.Bool("compress", false, "Store raw snapshots zstd-compressed (.zst)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "vix-download v%s - VIX History Downloader\n\n", Version)
		fmt.Fprintf(os.Stderr, "Usage: %s [OPTIONS]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Downloads daily VIX index history from CBOE and Stooq.\n\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nData Sources:\n")
		for _, s := range sources {
			fmt.Fprintf(os.Stderr, "  %-15s %s\n", s.Name, s.Desc)
		}
	}

	flag.Parse()

	if *listSources {
		fmt.Printf("Available VIX data sources:\n\n")
		for _, s := range sources {
			fmt.Printf("  %-15s %s\n", s.Name, s.Desc)
			fmt.Printf("                  URL: %s\n", s.URL)
			fmt.Printf("                  File: %s\n\n", s.Filename)
		}
		return
	}

	fmt.Println("=========================================================")
	fmt.Printf("VIX Download v%s\n", Version)
	fmt.Println("=========================================================")
	fmt.Printf("Destination: %s\n", *destDir)
	fmt.Printf("Timeout:     %v\n", *timeout)
	fmt.Println()

	if err := os.MkdirAll(*destDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Error: Cannot create directory: %v\n", err)
		os.Exit(1)
	}

	startTime := time.Now()
	downloaded := 0
	failed := 0

	for _, src := range sources {
		if *source != "all" && *source != src.Name {
			continue
		}

		destPath := filepath.Join(*destDir, src.Filename)
		fmt.Printf("[%s] Downloading from %s...\n", src.Name, src.URL)

		if err := downloadFile(src.URL, destPath, *timeout, *compress); err != nil {
			fmt.Printf("  ERROR: %v\n", err)
			failed++
		} else {
			downloaded++
		}
	}

	elapsed := time.Since(startTime)

	fmt.Println()
	fmt.Println("=========================================================")
	fmt.Println("Download Summary")
	fmt.Println("=========================================================")
	fmt.Printf("Downloaded: %d files\n", downloaded)
	fmt.Printf("Failed:     %d files\n", failed)
	fmt.Printf("Elapsed:    %v\n", elapsed.Round(time.Millisecond))
	fmt.Println("=========================================================")

	if failed > 0 {
		os.Exit(1)
	}
}
