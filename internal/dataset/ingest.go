package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jszwec/csvutil"
)

// Required input columns, matched case-insensitively against the header row.
const (
	columnDate      = "date"
	columnCity      = "city"
	columnAQI       = "aqi"
	columnPollutant = "pollutant"
)

// dateLayouts are the accepted date formats, tried in order.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02 15:04:05",
	"01/02/2006",
	"2006/01/02",
}

// csvRow is the loosely-typed shape of one input row. Every field is decoded
// as a string first; typed parsing happens per field so a single bad cell
// drops only its own row.
type csvRow struct {
	Date      string `csv:"date"`
	City      string `csv:"city"`
	AQI       string `csv:"aqi"`
	Pollutant string `csv:"pollutant,omitempty"`
}

// IngestCSV reads tabular AQI data and builds a Dataset from the rows that
// parse. The header must contain Date, City and AQI columns (any casing);
// a Pollutant column is optional. Rows with an unparseable date, a
// non-numeric or negative AQI, or an empty city are dropped and counted.
// It fails with *SchemaError when a required column is missing, and with
// ErrEmptyDataset when not a single row survives.
func IngestCSV(r io.Reader, source string) (*Dataset, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmptyDataset
		}
		return nil, fmt.Errorf("read header: %w", err)
	}

	normalized, err := normalizeHeader(header)
	if err != nil {
		return nil, err
	}

	dec, err := csvutil.NewDecoder(cr, normalized...)
	if err != nil {
		return nil, fmt.Errorf("create csv decoder: %w", err)
	}

	ds := &Dataset{
		ID:       "ds_" + uuid.New().String()[:22],
		Source:   source,
		LoadedAt: time.Now().UTC(),
	}

	for {
		var row csvRow
		if err := dec.Decode(&row); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				// Malformed line (bad quoting, wrong field count):
				// drop it and keep reading.
				ds.DroppedRows++
				continue
			}
			return nil, fmt.Errorf("decode row: %w", err)
		}

		rec, ok := parseRow(row)
		if !ok {
			ds.DroppedRows++
			continue
		}
		ds.Records = append(ds.Records, rec)
	}

	if len(ds.Records) == 0 {
		return nil, ErrEmptyDataset
	}
	return ds, nil
}

// normalizeHeader lowercases and trims the header row so that column matching
// is case-insensitive, and verifies the required columns are present.
func normalizeHeader(header []string) ([]string, error) {
	normalized := make([]string, len(header))
	found := make(map[string]bool, len(header))
	for i, name := range header {
		key := strings.ToLower(strings.TrimSpace(name))
		normalized[i] = key
		found[key] = true
	}

	var missing []string
	for _, required := range []string{columnDate, columnCity, columnAQI} {
		if !found[required] {
			missing = append(missing, required)
		}
	}
	if len(missing) > 0 {
		return nil, &SchemaError{Missing: missing}
	}
	return normalized, nil
}

// parseRow converts a raw row into a typed Record. ok is false when any
// required field fails to parse; the caller counts the row as dropped.
func parseRow(row csvRow) (Record, bool) {
	date, ok := parseDate(row.Date)
	if !ok {
		return Record{}, false
	}

	city := strings.TrimSpace(row.City)
	if city == "" {
		return Record{}, false
	}

	aqi, err := strconv.ParseFloat(strings.TrimSpace(row.AQI), 64)
	if err != nil || aqi < 0 {
		return Record{}, false
	}

	return Record{
		Date:      date,
		City:      city,
		AQI:       aqi,
		Pollutant: strings.TrimSpace(row.Pollutant),
	}, true
}

// parseDate tries the accepted layouts and truncates the result to a UTC
// calendar date, which is the granularity the filter operates at.
func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, s)
		if err != nil {
			continue
		}
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), true
	}
	return time.Time{}, false
}
