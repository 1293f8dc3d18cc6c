// Package series provides daily time series primitives for the
// solar-vix pipeline: date-keyed points, CSV parsing, gap filling,
// Parquet storage, and date joins between the sunspot and VIX series.
package series

import (
	"errors"
	"fmt"
	"sort"
	"time"
)

var (
	// ErrDuplicateDate reports a duplicate calendar date within one
	// source series. Inputs are deduplicated upstream; a collision here
	// is a precondition violation, not something we resolve silently.
	ErrDuplicateDate = errors.New("duplicate date in series")

	// ErrSchemaMismatch reports an input file missing an expected
	// field or carrying the wrong type.
	ErrSchemaMismatch = errors.New("input schema mismatch")
)

// TimePoint is one daily observation. Valid is false when the value is
// missing (e.g. SIDC reports -1 for days without a sunspot count).
type TimePoint struct {
	Date  time.Time
	Value float64
	Valid bool
}

// Series is a named, date-keyed daily series.
type Series struct {
	Name   string
	Points []TimePoint
}

// DateOf truncates a timestamp to its UTC calendar date. Join keys are
// day-granular; any intraday component must be dropped before key
// comparison.
func DateOf(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// SortByDate orders the series ascending by date.
func (s *Series) SortByDate() {
	sort.Slice(s.Points, func(i, j int) bool {
		return s.Points[i].Date.Before(s.Points[j].Date)
	})
}

// TruncateDates normalizes every point's timestamp to its calendar date.
func (s *Series) TruncateDates() {
	for i := range s.Points {
		s.Points[i].Date = DateOf(s.Points[i].Date)
	}
}

// CheckUniqueDates verifies the series carries at most one point per
// calendar date. The series must already be sorted.
func (s *Series) CheckUniqueDates() error {
	for i := 1; i < len(s.Points); i++ {
		if s.Points[i].Date.Equal(s.Points[i-1].Date) {
			return fmt.Errorf("%w: %s appears twice in %s",
				ErrDuplicateDate, s.Points[i].Date.Format("2006-01-02"), s.Name)
		}
	}
	return nil
}

// DropMissing returns a copy of the series without invalid points.
func (s Series) DropMissing() Series {
	out := Series{Name: s.Name, Points: make([]TimePoint, 0, len(s.Points))}
	for _, p := range s.Points {
		if p.Valid {
			out.Points = append(out.Points, p)
		}
	}
	return out
}

// Values returns the valid observation values in series order.
func (s Series) Values() []float64 {
	vals := make([]float64, 0, len(s.Points))
	for _, p := range s.Points {
		if p.Valid {
			vals = append(vals, p.Value)
		}
	}
	return vals
}

// Len returns the number of points, valid or not.
func (s Series) Len() int {
	return len(s.Points)
}
