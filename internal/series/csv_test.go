package series

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sidcSample = `2024;01;02;2024.003;  95.0; 10.2; 31;1
2024;01;03;2024.006;  -1  ; -1.0;  0;1
2024;01;04;2024.008; 110.5; 11.0; 29;1
`

func TestParseSIDC(t *testing.T) {
	s, err := ParseSIDC(strings.NewReader(sidcSample))
	require.NoError(t, err)
	require.Equal(t, 3, s.Len())

	assert.Equal(t, day(2024, 1, 2), s.Points[0].Date)
	assert.Equal(t, 95.0, s.Points[0].Value)
	assert.True(t, s.Points[0].Valid)

	assert.False(t, s.Points[1].Valid, "SIDC -1 marks a missing observation")

	assert.Equal(t, 110.5, s.Points[2].Value)
}

func TestParseSIDC_ShortLineIsSchemaMismatch(t *testing.T) {
	_, err := ParseSIDC(strings.NewReader("2024;01;02\n"))
	require.ErrorIs(t, err, ErrSchemaMismatch)
}

func TestParseVixCSV_CBOELayout(t *testing.T) {
	csv := "DATE,OPEN,HIGH,LOW,CLOSE\n" +
		"01/02/2024,13.21,13.94,13.10,13.20\n" +
		"01/03/2024,13.25,14.32,13.19,14.04\n"

	s, err := ParseVixCSV(strings.NewReader(csv))
	require.NoError(t, err)
	require.Equal(t, 2, s.Len())
	assert.Equal(t, day(2024, 1, 2), s.Points[0].Date)
	assert.Equal(t, 13.20, s.Points[0].Value)
	assert.True(t, s.Points[1].Valid)
}

func TestParseVixCSV_StooqLayout(t *testing.T) {
	csv := "Date,Open,High,Low,Close,Volume\n" +
		"2024-01-02,13.21,13.94,13.10,13.20,0\n"

	s, err := ParseVixCSV(strings.NewReader(csv))
	require.NoError(t, err)
	require.Equal(t, 1, s.Len())
	assert.Equal(t, 13.20, s.Points[0].Value)
}

func TestParseVixCSV_IntradayTimestampTruncated(t *testing.T) {
	csv := "date,close\n2024-01-02 16:15:00,13.20\n"

	s, err := ParseVixCSV(strings.NewReader(csv))
	require.NoError(t, err)
	require.Equal(t, 1, s.Len())
	assert.Equal(t, day(2024, 1, 2), s.Points[0].Date)
}

func TestParseVixCSV_BlankCloseIsMissing(t *testing.T) {
	csv := "date,close\n2024-01-02,\n2024-01-03,14.04\n"

	s, err := ParseVixCSV(strings.NewReader(csv))
	require.NoError(t, err)
	require.Equal(t, 2, s.Len())
	assert.False(t, s.Points[0].Valid)
	assert.True(t, s.Points[1].Valid)
}

func TestParseVixCSV_ErrorsReportPhysicalLine(t *testing.T) {
	// Header is line 1, so the bad close on the second data row is
	// physical line 3.
	csv := "date,close\n2024-01-02,13.20\n2024-01-03,n/a\n"

	_, err := ParseVixCSV(strings.NewReader(csv))
	require.ErrorIs(t, err, ErrSchemaMismatch)
	assert.Contains(t, err.Error(), "line 3")

	csv = "date,close\nnot-a-date,13.20\n"
	_, err = ParseVixCSV(strings.NewReader(csv))
	require.ErrorIs(t, err, ErrSchemaMismatch)
	assert.Contains(t, err.Error(), "line 2")
}

func TestParseVixCSV_MissingCloseColumn(t *testing.T) {
	csv := "date,open,high\n2024-01-02,13.21,13.94\n"

	_, err := ParseVixCSV(strings.NewReader(csv))
	require.ErrorIs(t, err, ErrSchemaMismatch)
	assert.Contains(t, err.Error(), "close")
}

func TestDateOf(t *testing.T) {
	ts := time.Date(2024, 3, 15, 22, 45, 12, 0, time.UTC)
	assert.Equal(t, day(2024, 3, 15), DateOf(ts))
}
