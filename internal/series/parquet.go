package series

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/parquet-go/parquet-go"
)

// SunspotRow matches the sunspot_daily Parquet schema. SunspotNumber
// is optional: days without an observation carry a null, and the join
// stage filters them.
type SunspotRow struct {
	Timestamp     int64    `parquet:"timestamp"`
	SunspotNumber *float64 `parquet:"sunspot_number,optional"`
}

// VixRow matches the vix_daily Parquet schema. The cleaning stage
// guarantees no null closes reach this boundary.
type VixRow struct {
	Timestamp int64   `parquet:"timestamp"`
	VixClose  float64 `parquet:"vix_close"`
}

// WriteSunspotParquet writes the sunspot series to a zstd-compressed
// Parquet file. Missing points are written as nulls.
func WriteSunspotParquet(path string, s Series) (int, error) {
	rows := make([]SunspotRow, 0, len(s.Points))
	for _, p := range s.Points {
		row := SunspotRow{Timestamp: p.Date.Unix()}
		if p.Valid {
			v := p.Value
			row.SunspotNumber = &v
		}
		rows = append(rows, row)
	}
	return writeParquet(path, rows)
}

// WriteVixParquet writes the cleaned VIX series to a zstd-compressed
// Parquet file. Missing points are a contract violation at this stage.
func WriteVixParquet(path string, s Series) (int, error) {
	rows := make([]VixRow, 0, len(s.Points))
	for _, p := range s.Points {
		if !p.Valid {
			return 0, fmt.Errorf("missing vix_close at %s: interpolation must run before export",
				p.Date.Format("2006-01-02"))
		}
		rows = append(rows, VixRow{Timestamp: p.Date.Unix(), VixClose: p.Value})
	}
	return writeParquet(path, rows)
}

// ReadSunspotParquet loads a sunspot Parquet file back into a series.
func ReadSunspotParquet(path string) (Series, error) {
	rows, err := readParquet[SunspotRow](path)
	if err != nil {
		return Series{}, err
	}
	s := Series{Name: "sunspot", Points: make([]TimePoint, 0, len(rows))}
	for _, r := range rows {
		p := TimePoint{Date: time.Unix(r.Timestamp, 0).UTC()}
		if r.SunspotNumber != nil {
			p.Value = *r.SunspotNumber
			p.Valid = true
		}
		s.Points = append(s.Points, p)
	}
	return s, nil
}

// ReadVixParquet loads a VIX Parquet file back into a series.
func ReadVixParquet(path string) (Series, error) {
	rows, err := readParquet[VixRow](path)
	if err != nil {
		return Series{}, err
	}
	s := Series{Name: "vix", Points: make([]TimePoint, 0, len(rows))}
	for _, r := range rows {
		s.Points = append(s.Points, TimePoint{
			Date:  time.Unix(r.Timestamp, 0).UTC(),
			Value: r.VixClose,
			Valid: true,
		})
	}
	return s, nil
}

func writeParquet[T any](path string, rows []T) (int, error) {
	tmpPath := path + ".tmp"
	f, err := os.Create(tmpPath)
	if err != nil {
		return 0, fmt.Errorf("create %s: %w", tmpPath, err)
	}

	w := parquet.NewGenericWriter[T](f, parquet.Compression(&parquet.Zstd))
	n, err := w.Write(rows)
	if err != nil {
		f.Close()
		os.Remove(tmpPath)
		return 0, fmt.Errorf("parquet write: %w", err)
	}
	if err := w.Close(); err != nil {
		f.Close()
		os.Remove(tmpPath)
		return 0, fmt.Errorf("parquet close: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmpPath)
		return 0, err
	}

	// Atomic rename, same as the raw downloaders
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return 0, fmt.Errorf("rename failed: %w", err)
	}
	return n, nil
}

func readParquet[T any](path string) ([]T, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, err
	}

	pf, err := parquet.OpenFile(f, info.Size())
	if err != nil {
		return nil, fmt.Errorf("%w: %s is not a readable parquet file: %v",
			ErrSchemaMismatch, path, err)
	}

	reader := parquet.NewGenericReader[T](pf)
	defer reader.Close()

	var out []T
	buf := make([]T, 1000)
	for {
		n, err := reader.Read(buf)
		if n > 0 {
			out = append(out, buf[:n]...)
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parquet read %s: %w", path, err)
		}
		if n == 0 {
			break
		}
	}
	return out, nil
}
