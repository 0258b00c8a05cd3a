// Package dataset provides the in-memory AQI record store and the
// filtering and aggregation pipeline behind the dashboard.
package dataset

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"
)

// Ingestion errors.
var (
	// ErrEmptyDataset is returned when no row of the input could be parsed.
	ErrEmptyDataset = errors.New("no valid rows in dataset")

	// ErrNoDataset is returned when an operation requires a loaded dataset
	// and none is installed in the session.
	ErrNoDataset = errors.New("no dataset loaded")
)

// SchemaError reports required columns missing from an uploaded file's header.
type SchemaError struct {
	// Missing lists the required column names that were not found.
	Missing []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("missing required columns: %s", strings.Join(e.Missing, ", "))
}

// Record is a single AQI observation: one city, one calendar date,
// optionally tagged with the pollutant that was measured.
type Record struct {
	// Date is the observation date. Only the calendar date matters for
	// filtering; any time-of-day component is normalized away at ingestion.
	Date time.Time `json:"date"`

	// City is the trimmed city name. Comparison is case-sensitive after
	// trimming: "delhi" and "Delhi" are distinct cities.
	City string `json:"city"`

	// AQI is the air quality index value, always >= 0 for ingested records.
	AQI float64 `json:"aqi"`

	// Pollutant is the measured pollutant (e.g. "PM2.5"). Empty when the
	// source data carries no pollutant column or the cell was blank.
	Pollutant string `json:"pollutant,omitempty"`
}

// Dataset is the ordered, immutable collection of records for a session.
// It is built once by ingestion or generation and replaced wholesale; it is
// never mutated in place.
type Dataset struct {
	// ID uniquely identifies this dataset instance within the session.
	ID string

	// Source describes where the data came from ("upload", "generated",
	// or the fetched URL).
	Source string

	// Records holds the valid rows in original input order.
	Records []Record

	// DroppedRows counts input rows discarded because a field failed to
	// parse. Surfaced to the user as a warning, never silently swallowed.
	DroppedRows int

	// LoadedAt is when this dataset was installed.
	LoadedAt time.Time
}

// Len returns the number of records.
func (d *Dataset) Len() int {
	return len(d.Records)
}

// DateRange returns the earliest and latest observation dates.
// ok is false for an empty dataset.
func (d *Dataset) DateRange() (minDate, maxDate time.Time, ok bool) {
	if len(d.Records) == 0 {
		return time.Time{}, time.Time{}, false
	}
	minDate, maxDate = d.Records[0].Date, d.Records[0].Date
	for _, r := range d.Records[1:] {
		if r.Date.Before(minDate) {
			minDate = r.Date
		}
		if r.Date.After(maxDate) {
			maxDate = r.Date
		}
	}
	return minDate, maxDate, true
}

// AQIRange returns the lowest and highest observed AQI values.
// ok is false for an empty dataset.
func (d *Dataset) AQIRange() (minAQI, maxAQI float64, ok bool) {
	if len(d.Records) == 0 {
		return 0, 0, false
	}
	minAQI, maxAQI = d.Records[0].AQI, d.Records[0].AQI
	for _, r := range d.Records[1:] {
		if r.AQI < minAQI {
			minAQI = r.AQI
		}
		if r.AQI > maxAQI {
			maxAQI = r.AQI
		}
	}
	return minAQI, maxAQI, true
}

// Cities returns the distinct city names in the dataset, sorted.
func (d *Dataset) Cities() []string {
	return distinct(d.Records, func(r Record) string { return r.City })
}

// Pollutants returns the distinct non-empty pollutant names, sorted.
func (d *Dataset) Pollutants() []string {
	return distinct(d.Records, func(r Record) string { return r.Pollutant })
}

// distinct collects the sorted set of non-empty keys produced by fn.
func distinct(records []Record, fn func(Record) string) []string {
	seen := make(map[string]struct{})
	for _, r := range records {
		if key := fn(r); key != "" {
			seen[key] = struct{}{}
		}
	}
	out := make([]string, 0, len(seen))
	for key := range seen {
		out = append(out, key)
	}
	sort.Strings(out)
	return out
}
