package models

import (
	"sort"

	"github.com/shashankpm7/aqi-dashboard/internal/dataset"
)

// RecordView is one AQI observation as rendered by the dashboard, with its
// EPA category attached.
type RecordView struct {
	Date      DateOnly `json:"date"`
	City      string   `json:"city"`
	AQI       float64  `json:"aqi"`
	Pollutant string   `json:"pollutant,omitempty"`
	Category  string   `json:"category"`
}

// NewRecordView converts a record for the API.
func NewRecordView(r dataset.Record) RecordView {
	return RecordView{
		Date:      DateOnly(r.Date),
		City:      r.City,
		AQI:       r.AQI,
		Pollutant: r.Pollutant,
		Category:  dataset.Category(r.AQI).Name,
	}
}

// DailyBucket is the mean AQI for one observation date.
type DailyBucket struct {
	Date DateOnly `json:"date"`
	AQI  float64  `json:"aqi"`
}

// CityAverage is the mean AQI for one city over the filtered view.
type CityAverage struct {
	City string  `json:"city"`
	AQI  float64 `json:"aqi"`
}

// CityStatView is the per-city statistics row.
type CityStatView struct {
	City   string  `json:"city"`
	Mean   float64 `json:"mean"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	StdDev float64 `json:"stdDev"`
}

// TrendPointView is one point of the per-city trend series.
type TrendPointView struct {
	Date DateOnly `json:"date"`
	City string   `json:"city"`
	AQI  float64  `json:"aqi"`
}

// SummaryResponse is the body of GET /v1/dashboard/summary.
// When HasData is false every other field is empty; clients render a
// "no data" placeholder.
type SummaryResponse struct {
	HasData        bool `json:"hasData"`
	MatchedRecords int  `json:"matchedRecords"`

	Current *RecordView `json:"current,omitempty"`
	Max     *RecordView `json:"max,omitempty"`
	Min     *RecordView `json:"min,omitempty"`

	PerCityAverage []CityAverage `json:"perCityAverage,omitempty"`

	MostPollutedCity string  `json:"mostPollutedCity,omitempty"`
	MostPollutedAvg  float64 `json:"mostPollutedAvg,omitempty"`

	DailyBuckets []DailyBucket    `json:"dailyBuckets,omitempty"`
	CityStats    []CityStatView   `json:"cityStats,omitempty"`
	Trend        []TrendPointView `json:"trend,omitempty"`
}

// NewSummaryResponse converts the aggregates into the API shape. Map-typed
// aggregates are flattened into sorted slices so the JSON ordering is stable.
func NewSummaryResponse(s dataset.Summary, stats []dataset.CityStat, trend []dataset.TrendPoint) SummaryResponse {
	if !s.HasData {
		return SummaryResponse{}
	}

	out := SummaryResponse{
		HasData:          true,
		MatchedRecords:   s.MatchedRecords,
		MostPollutedCity: s.MostPollutedCity,
		MostPollutedAvg:  s.MostPollutedAvg,
	}

	if s.Current != nil {
		v := NewRecordView(*s.Current)
		out.Current = &v
	}
	if s.Max != nil {
		v := NewRecordView(*s.Max)
		out.Max = &v
	}
	if s.Min != nil {
		v := NewRecordView(*s.Min)
		out.Min = &v
	}

	out.PerCityAverage = make([]CityAverage, 0, len(s.PerCityAverage))
	for city, avg := range s.PerCityAverage {
		out.PerCityAverage = append(out.PerCityAverage, CityAverage{City: city, AQI: avg})
	}
	sort.Slice(out.PerCityAverage, func(i, j int) bool {
		return out.PerCityAverage[i].City < out.PerCityAverage[j].City
	})

	out.DailyBuckets = make([]DailyBucket, 0, len(s.DailyBuckets))
	for day, avg := range s.DailyBuckets {
		out.DailyBuckets = append(out.DailyBuckets, DailyBucket{Date: DateOnly(day), AQI: avg})
	}
	sort.Slice(out.DailyBuckets, func(i, j int) bool {
		return out.DailyBuckets[i].Date.Time().Before(out.DailyBuckets[j].Date.Time())
	})

	out.CityStats = make([]CityStatView, 0, len(stats))
	for _, st := range stats {
		out.CityStats = append(out.CityStats, CityStatView(st))
	}

	out.Trend = make([]TrendPointView, 0, len(trend))
	for _, p := range trend {
		out.Trend = append(out.Trend, TrendPointView{Date: DateOnly(p.Date), City: p.City, AQI: p.AQI})
	}

	return out
}

// RecordsResponse is the body of GET /v1/dashboard/records.
type RecordsResponse struct {
	Items []RecordView `json:"items"`
	Total int          `json:"total"`
}

// NewRecordsResponse converts a filtered view into the API shape.
func NewRecordsResponse(view dataset.View) RecordsResponse {
	items := make([]RecordView, 0, len(view.Records))
	for _, r := range view.Records {
		items = append(items, NewRecordView(r))
	}
	return RecordsResponse{Items: items, Total: len(items)}
}
