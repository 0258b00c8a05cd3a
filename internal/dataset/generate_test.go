package dataset_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashankpm7/aqi-dashboard/internal/dataset"
)

func TestGenerateSample(t *testing.T) {
	cfg := dataset.DefaultGeneratorConfig()
	cfg.Seed = 1

	ds := dataset.GenerateSample(cfg)
	require.NotNil(t, ds)

	// 5 cities x 31 dates x 6 pollutants.
	assert.Equal(t, 5*31*6, ds.Len())
	assert.Equal(t, "sample", ds.Source)
	assert.Zero(t, ds.DroppedRows)

	assert.Equal(t, []string{"Chicago", "Houston", "Los Angeles", "New York", "Phoenix"}, ds.Cities())
	assert.Equal(t, []string{"CO", "NO2", "O3", "PM10", "PM2.5", "SO2"}, ds.Pollutants())

	for _, r := range ds.Records {
		assert.GreaterOrEqual(t, r.AQI, 0.0)
		assert.Equal(t, r.AQI, float64(int(r.AQI)), "generated AQI is integral")
	}
}

func TestGenerateSampleReproducible(t *testing.T) {
	cfg := dataset.DefaultGeneratorConfig()
	cfg.Seed = 42
	cfg.End = date("2024-06-30")

	a := dataset.GenerateSample(cfg)
	b := dataset.GenerateSample(cfg)
	assert.Equal(t, a.Records, b.Records)
}

func TestGenerateSampleDateWindow(t *testing.T) {
	cfg := dataset.DefaultGeneratorConfig()
	cfg.Seed = 7
	cfg.Days = 10
	cfg.End = date("2024-06-30")

	ds := dataset.GenerateSample(cfg)
	minDate, maxDate, ok := ds.DateRange()
	require.True(t, ok)
	assert.Equal(t, date("2024-06-20"), minDate)
	assert.Equal(t, date("2024-06-30"), maxDate)
}

func TestGenerateSampleCustomCities(t *testing.T) {
	cfg := dataset.DefaultGeneratorConfig()
	cfg.Seed = 7
	cfg.Cities = []string{"Springfield"}
	cfg.Pollutants = []string{"PM2.5"}
	cfg.Days = 2
	cfg.End = date("2024-06-30")

	ds := dataset.GenerateSample(cfg)
	assert.Equal(t, 3, ds.Len())
	assert.Equal(t, []string{"Springfield"}, ds.Cities())
}

func TestGenerateSampleDatesAreUTCMidnight(t *testing.T) {
	cfg := dataset.DefaultGeneratorConfig()
	cfg.Seed = 7
	cfg.Days = 1
	cfg.End = time.Date(2024, 6, 30, 15, 42, 0, 0, time.UTC)

	ds := dataset.GenerateSample(cfg)
	for _, r := range ds.Records {
		h, m, s := r.Date.Clock()
		assert.Zero(t, h)
		assert.Zero(t, m)
		assert.Zero(t, s)
	}
}
