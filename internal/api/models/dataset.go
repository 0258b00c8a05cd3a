package models

import (
	"github.com/shashankpm7/aqi-dashboard/internal/dataset"
)

// DatasetSummary describes the currently loaded dataset.
type DatasetSummary struct {
	ID          string    `json:"id"`
	Source      string    `json:"source"`
	Records     int       `json:"records"`
	DroppedRows int       `json:"droppedRows"`
	LoadedAt    Timestamp `json:"loadedAt"`

	DateStart *DateOnly `json:"dateStart,omitempty"`
	DateEnd   *DateOnly `json:"dateEnd,omitempty"`
	AQIMin    float64   `json:"aqiMin"`
	AQIMax    float64   `json:"aqiMax"`

	Cities     []string `json:"cities"`
	Pollutants []string `json:"pollutants"`
}

// NewDatasetSummary builds the API view of a dataset.
func NewDatasetSummary(ds *dataset.Dataset) DatasetSummary {
	out := DatasetSummary{
		ID:          ds.ID,
		Source:      ds.Source,
		Records:     ds.Len(),
		DroppedRows: ds.DroppedRows,
		LoadedAt:    Timestamp(ds.LoadedAt),
		Cities:      ds.Cities(),
		Pollutants:  ds.Pollutants(),
	}
	if minDate, maxDate, ok := ds.DateRange(); ok {
		start, end := DateOnly(minDate), DateOnly(maxDate)
		out.DateStart, out.DateEnd = &start, &end
	}
	if minAQI, maxAQI, ok := ds.AQIRange(); ok {
		out.AQIMin, out.AQIMax = minAQI, maxAQI
	}
	return out
}

// FetchRequest is the body of POST /v1/dataset/fetch.
type FetchRequest struct {
	URL string `json:"url"`
}

// GenerateRequest is the optional body of POST /v1/dataset/generate.
// Zero-valued fields fall back to the generator defaults.
type GenerateRequest struct {
	Cities     []string `json:"cities,omitempty"`
	Pollutants []string `json:"pollutants,omitempty"`
	Days       int      `json:"days,omitempty"`
	Seed       int64    `json:"seed,omitempty"`
}
