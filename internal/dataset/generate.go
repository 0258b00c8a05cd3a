package dataset

import (
	"math/rand"
	"time"

	"github.com/google/uuid"
)

// GeneratorConfig controls the built-in sample dataset. The zero value is
// not usable; start from DefaultGeneratorConfig.
type GeneratorConfig struct {
	// Cities and Pollutants are combined with every date in the window,
	// one record per (city, date, pollutant).
	Cities     []string
	Pollutants []string

	// Days is the length of the window ending at End. A window of N days
	// yields N+1 dates, both endpoints included.
	Days int
	End  time.Time

	// Seed makes the output reproducible. A zero seed is used as-is.
	Seed int64
}

// DefaultGeneratorConfig returns the demo configuration: five large US
// cities, six common pollutants, the 30 days ending today.
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		Cities:     []string{"New York", "Los Angeles", "Chicago", "Houston", "Phoenix"},
		Pollutants: []string{"PM2.5", "PM10", "O3", "NO2", "SO2", "CO"},
		Days:       30,
		End:        time.Now().UTC(),
		Seed:       time.Now().UnixNano(),
	}
}

// cityFactor skews the baseline so cities are distinguishable on the
// comparison chart. Unknown cities get a neutral factor.
var cityFactor = map[string]float64{
	"New York":    1.1,
	"Los Angeles": 1.3,
	"Chicago":     0.9,
	"Houston":     1.0,
	"Phoenix":     1.2,
}

var pollutantFactor = map[string]float64{
	"PM2.5": 1.2,
	"PM10":  1.1,
	"O3":    1.0,
	"NO2":   0.9,
	"SO2":   0.8,
	"CO":    0.7,
}

// GenerateSample builds a synthetic dataset for users who want to explore the
// dashboard without uploading a file. Each value starts from a random base in
// [30, 180) and is scaled by a weekday factor (traffic is higher Monday
// through Friday), a city factor and a pollutant factor, then truncated to an
// integer AQI.
func GenerateSample(cfg GeneratorConfig) *Dataset {
	rng := rand.New(rand.NewSource(cfg.Seed))

	end := cfg.End.UTC().Truncate(24 * time.Hour)
	start := end.AddDate(0, 0, -cfg.Days)

	var records []Record
	for _, city := range cfg.Cities {
		for date := start; !date.After(end); date = date.AddDate(0, 0, 1) {
			for _, pollutant := range cfg.Pollutants {
				base := float64(30 + rng.Intn(150))

				weekday := 0.8
				if wd := date.Weekday(); wd != time.Saturday && wd != time.Sunday {
					weekday = 1.2
				}

				cf, ok := cityFactor[city]
				if !ok {
					cf = 1.0
				}
				pf, ok := pollutantFactor[pollutant]
				if !ok {
					pf = 1.0
				}

				records = append(records, Record{
					Date:      date,
					City:      city,
					AQI:       float64(int(base * weekday * cf * pf)),
					Pollutant: pollutant,
				})
			}
		}
	}

	return &Dataset{
		ID:       "ds_" + uuid.New().String()[:22],
		Source:   "sample",
		Records:  records,
		LoadedAt: time.Now().UTC(),
	}
}
