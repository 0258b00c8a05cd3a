package dataset_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashankpm7/aqi-dashboard/internal/dataset"
)

func TestCityStats(t *testing.T) {
	stats := dataset.CityStats(fullView(testDataset()))
	require.Len(t, stats, 3)

	// Sorted by city name.
	assert.Equal(t, "Chennai", stats[0].City)
	assert.Equal(t, "Delhi", stats[1].City)
	assert.Equal(t, "Mumbai", stats[2].City)

	delhi := stats[1]
	assert.InDelta(t, 172.5, delhi.Mean, 1e-9)
	assert.Equal(t, 165.0, delhi.Min)
	assert.Equal(t, 180.0, delhi.Max)
	// Sample stddev of {180, 165}.
	assert.InDelta(t, 10.6066, delhi.StdDev, 1e-3)
}

func TestCityStatsSingleRecordZeroStdDev(t *testing.T) {
	stats := dataset.CityStats(fullView(testDataset()))
	chennai := stats[0]
	assert.Equal(t, 60.0, chennai.Mean)
	assert.Zero(t, chennai.StdDev)
}

func TestCityStatsEmptyView(t *testing.T) {
	assert.Empty(t, dataset.CityStats(dataset.View{}))
}

func TestTrendSeries(t *testing.T) {
	ds := &dataset.Dataset{Records: []dataset.Record{
		{Date: date("2024-01-02"), City: "Delhi", AQI: 100, Pollutant: "PM2.5"},
		{Date: date("2024-01-01"), City: "Mumbai", AQI: 90, Pollutant: "PM10"},
		{Date: date("2024-01-01"), City: "Delhi", AQI: 120, Pollutant: "PM2.5"},
		{Date: date("2024-01-01"), City: "Delhi", AQI: 80, Pollutant: "O3"},
	}}

	points := dataset.TrendSeries(fullView(ds))
	require.Len(t, points, 3)

	// Sorted by date, then city; same-day same-city records are averaged.
	assert.Equal(t, dataset.TrendPoint{Date: date("2024-01-01"), City: "Delhi", AQI: 100}, points[0])
	assert.Equal(t, dataset.TrendPoint{Date: date("2024-01-01"), City: "Mumbai", AQI: 90}, points[1])
	assert.Equal(t, dataset.TrendPoint{Date: date("2024-01-02"), City: "Delhi", AQI: 100}, points[2])
}

func TestTrendSeriesEmptyView(t *testing.T) {
	assert.Empty(t, dataset.TrendSeries(dataset.View{}))
}
