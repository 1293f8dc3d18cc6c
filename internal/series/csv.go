package series

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
)

// ParseSIDC parses the SIDC SILSO daily sunspot format:
//
//	YYYY;MM;DD;decimal_year;SSN;std_dev;observations;flag
//
// SSN of -1 marks a day with no observation and becomes a missing
// point rather than being dropped, so the gap is visible downstream.
func ParseSIDC(r io.Reader) (Series, error) {
	s := Series{Name: "sunspot"}
	scanner := bufio.NewScanner(r)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Split(line, ";")
		if len(fields) < 5 {
			return Series{}, fmt.Errorf("%w: SIDC line %d has %d fields, need 5",
				ErrSchemaMismatch, lineNum, len(fields))
		}

		year, _ := strconv.Atoi(strings.TrimSpace(fields[0]))
		month, _ := strconv.Atoi(strings.TrimSpace(fields[1]))
		day, _ := strconv.Atoi(strings.TrimSpace(fields[2]))
		if year < 1800 || year > 2200 || month < 1 || month > 12 || day < 1 || day > 31 {
			continue
		}

		ssn, err := strconv.ParseFloat(strings.TrimSpace(fields[4]), 64)
		if err != nil {
			return Series{}, fmt.Errorf("%w: SIDC line %d: bad SSN %q",
				ErrSchemaMismatch, lineNum, fields[4])
		}

		p := TimePoint{
			Date:  time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC),
			Value: ssn,
			Valid: ssn >= 0,
		}
		s.Points = append(s.Points, p)
	}

	return s, scanner.Err()
}

// ParseVixCSV parses a daily VIX history CSV (Stooq and CBOE layouts).
// Column names are matched case-insensitively; the date and close
// columns are required, everything else is ignored. Blank close cells
// become missing points for the interpolation stage to fill.
func ParseVixCSV(r io.Reader) (Series, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return Series{}, fmt.Errorf("%w: cannot read VIX header: %v", ErrSchemaMismatch, err)
	}

	dateCol, closeCol := -1, -1
	for i, name := range header {
		switch normalizeColumn(name) {
		case "date":
			dateCol = i
		case "close", "vix_close":
			closeCol = i
		}
	}
	if dateCol < 0 || closeCol < 0 {
		return Series{}, fmt.Errorf("%w: VIX CSV needs date and close columns, got %v",
			ErrSchemaMismatch, header)
	}

	s := Series{Name: "vix"}
	line := 1 // the header is line 1
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return Series{}, fmt.Errorf("%w: VIX line %d: %v", ErrSchemaMismatch, line, err)
		}

		if len(record) <= dateCol || len(record) <= closeCol {
			continue
		}

		date, err := parseDate(strings.TrimSpace(record[dateCol]))
		if err != nil {
			return Series{}, fmt.Errorf("%w: VIX line %d: %v", ErrSchemaMismatch, line, err)
		}

		p := TimePoint{Date: date}
		raw := strings.TrimSpace(record[closeCol])
		if raw != "" {
			v, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return Series{}, fmt.Errorf("%w: VIX line %d: bad close %q",
					ErrSchemaMismatch, line, raw)
			}
			p.Value = v
			p.Valid = true
		}
		s.Points = append(s.Points, p)
	}

	return s, nil
}

// normalizeColumn lowercases a header cell and strips spaces and BOMs
// so "VIX Close" and "close" compare equal.
func normalizeColumn(name string) string {
	name = strings.TrimPrefix(name, "\ufeff")
	name = strings.ToLower(strings.TrimSpace(name))
	return strings.ReplaceAll(name, " ", "_")
}

var dateLayouts = []string{
	"2006-01-02",
	"01/02/2006",
	"2006-01-02 15:04:05",
	time.RFC3339,
}

func parseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return DateOf(t), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}
