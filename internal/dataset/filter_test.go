package dataset_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashankpm7/aqi-dashboard/internal/dataset"
)

func testDataset() *dataset.Dataset {
	return &dataset.Dataset{
		ID:     "ds_test",
		Source: "test",
		Records: []dataset.Record{
			{Date: date("2024-01-01"), City: "Delhi", AQI: 180, Pollutant: "PM2.5"},
			{Date: date("2024-01-02"), City: "Delhi", AQI: 165, Pollutant: "PM2.5"},
			{Date: date("2024-01-01"), City: "Mumbai", AQI: 95, Pollutant: "PM10"},
			{Date: date("2024-01-03"), City: "Mumbai", AQI: 110, Pollutant: "O3"},
			{Date: date("2024-01-03"), City: "Chennai", AQI: 60, Pollutant: "PM2.5"},
		},
	}
}

func TestDefaultCriteriaPassesEverything(t *testing.T) {
	ds := testDataset()
	view := dataset.Filter(ds, dataset.DefaultCriteria(ds))
	assert.Len(t, view.Records, ds.Len())
}

func TestFilterByDateRange(t *testing.T) {
	ds := testDataset()
	c := dataset.DefaultCriteria(ds)
	c.DateStart = date("2024-01-02")
	c.DateEnd = date("2024-01-03")

	view := dataset.Filter(ds, c)
	require.Len(t, view.Records, 3)
	for _, r := range view.Records {
		assert.False(t, r.Date.Before(c.DateStart))
		assert.False(t, r.Date.After(c.DateEnd))
	}
}

func TestFilterDateBoundsInclusive(t *testing.T) {
	ds := testDataset()
	c := dataset.DefaultCriteria(ds)
	c.DateStart = date("2024-01-01")
	c.DateEnd = date("2024-01-01")

	view := dataset.Filter(ds, c)
	assert.Len(t, view.Records, 2)
}

func TestFilterByCities(t *testing.T) {
	ds := testDataset()
	c := dataset.DefaultCriteria(ds)
	c.Cities = []string{"Delhi"}

	view := dataset.Filter(ds, c)
	require.Len(t, view.Records, 2)
	for _, r := range view.Records {
		assert.Equal(t, "Delhi", r.City)
	}
}

func TestFilterEmptyCitySetMeansNoRestriction(t *testing.T) {
	ds := testDataset()
	c := dataset.DefaultCriteria(ds)
	c.Cities = nil
	c.Pollutants = nil

	view := dataset.Filter(ds, c)
	assert.Len(t, view.Records, ds.Len())
}

func TestFilterByPollutants(t *testing.T) {
	ds := testDataset()
	c := dataset.DefaultCriteria(ds)
	c.Pollutants = []string{"PM2.5", "O3"}

	view := dataset.Filter(ds, c)
	assert.Len(t, view.Records, 4)
}

func TestFilterUntaggedRecordNeverMatchesPollutantRestriction(t *testing.T) {
	ds := &dataset.Dataset{Records: []dataset.Record{
		{Date: date("2024-01-01"), City: "Delhi", AQI: 100},
		{Date: date("2024-01-01"), City: "Delhi", AQI: 110, Pollutant: "PM2.5"},
	}}
	c := dataset.DefaultCriteria(ds)
	c.Pollutants = []string{"PM2.5"}

	view := dataset.Filter(ds, c)
	require.Len(t, view.Records, 1)
	assert.Equal(t, "PM2.5", view.Records[0].Pollutant)
}

func TestFilterByAQIRange(t *testing.T) {
	ds := testDataset()
	c := dataset.DefaultCriteria(ds)
	c.AQIMin = 95
	c.AQIMax = 165

	view := dataset.Filter(ds, c)
	require.Len(t, view.Records, 3)
	// Inclusive on both bounds.
	assert.Equal(t, 165.0, view.Records[0].AQI)
	assert.Equal(t, 95.0, view.Records[1].AQI)
}

func TestFilterInvertedRangesMatchNothing(t *testing.T) {
	ds := testDataset()

	c := dataset.DefaultCriteria(ds)
	c.DateStart = date("2024-01-03")
	c.DateEnd = date("2024-01-01")
	assert.True(t, dataset.Filter(ds, c).Empty())

	c = dataset.DefaultCriteria(ds)
	c.AQIMin = 200
	c.AQIMax = 100
	assert.True(t, dataset.Filter(ds, c).Empty())
}

func TestFilterCombinedCriteria(t *testing.T) {
	ds := testDataset()
	c := dataset.DefaultCriteria(ds)
	c.Cities = []string{"Mumbai", "Chennai"}
	c.DateStart = date("2024-01-03")
	c.DateEnd = date("2024-01-03")
	c.AQIMin = 100
	c.AQIMax = 200

	view := dataset.Filter(ds, c)
	require.Len(t, view.Records, 1)
	assert.Equal(t, "Mumbai", view.Records[0].City)
	assert.Equal(t, 110.0, view.Records[0].AQI)
}

func TestFilterPreservesOrder(t *testing.T) {
	ds := testDataset()
	c := dataset.DefaultCriteria(ds)
	c.Cities = []string{"Delhi", "Chennai"}

	view := dataset.Filter(ds, c)
	require.Len(t, view.Records, 3)
	assert.Equal(t, "Delhi", view.Records[0].City)
	assert.Equal(t, "Delhi", view.Records[1].City)
	assert.Equal(t, "Chennai", view.Records[2].City)
}

func TestFilterDoesNotMutateDataset(t *testing.T) {
	ds := testDataset()
	before := ds.Len()

	c := dataset.DefaultCriteria(ds)
	c.Cities = []string{"Delhi"}
	_ = dataset.Filter(ds, c)

	assert.Equal(t, before, ds.Len())
	assert.Equal(t, "Delhi", ds.Records[0].City)
	assert.Equal(t, "Mumbai", ds.Records[2].City)
}

func TestFilterCitiesCaseSensitive(t *testing.T) {
	ds := testDataset()
	c := dataset.DefaultCriteria(ds)
	c.Cities = []string{"delhi"}

	assert.True(t, dataset.Filter(ds, c).Empty())
}

func TestFilterNilDataset(t *testing.T) {
	view := dataset.Filter(nil, dataset.Criteria{})
	assert.True(t, view.Empty())
}
