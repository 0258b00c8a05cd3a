package dataset

import (
	"sort"
	"time"
)

// Summary holds the aggregates derived from a filtered view. A Summary with
// HasData false is the explicit "no data" state for an empty view: every
// other field is zero-valued and the pointers are nil. Callers render a
// placeholder instead of dividing by zero.
type Summary struct {
	// HasData is false when the view matched no records.
	HasData bool

	// MatchedRecords is the number of records in the view.
	MatchedRecords int

	// Current is the most recent observation in the view. When several
	// records share the latest date, the one appearing last in original
	// dataset order wins.
	Current *Record

	// Max and Min are the records with the extreme AQI values. On ties the
	// record earliest in original dataset order is canonical.
	Max *Record
	Min *Record

	// PerCityAverage maps city to its mean AQI over the view. Cities with
	// no records in the view are absent, not zero.
	PerCityAverage map[string]float64

	// MostPollutedCity is the city with the highest average AQI; ties are
	// broken alphabetically. MostPollutedAvg is that city's average.
	MostPollutedCity string
	MostPollutedAvg  float64

	// DailyBuckets maps each observation date in the view to its mean AQI.
	// Dates with no records are absent; a calendar renderer must treat an
	// absent date as "no data", not as zero.
	DailyBuckets map[time.Time]float64
}

// Aggregate computes the dashboard summary for a view. It is total: every
// input, including the empty view, yields a well-defined Summary and no
// input panics.
func Aggregate(view View) Summary {
	if view.Empty() {
		return Summary{}
	}

	s := Summary{
		HasData:        true,
		MatchedRecords: len(view.Records),
		PerCityAverage: make(map[string]float64),
		DailyBuckets:   make(map[time.Time]float64),
	}

	type acc struct {
		sum   float64
		count int
	}
	cityAcc := make(map[string]*acc)
	dayAcc := make(map[time.Time]*acc)

	for i := range view.Records {
		r := &view.Records[i]

		// Latest date wins; on equal dates the later record in dataset
		// order replaces the earlier one.
		if s.Current == nil || !r.Date.Before(s.Current.Date) {
			s.Current = r
		}
		// Strict comparisons keep the earliest record on AQI ties.
		if s.Max == nil || r.AQI > s.Max.AQI {
			s.Max = r
		}
		if s.Min == nil || r.AQI < s.Min.AQI {
			s.Min = r
		}

		if a := cityAcc[r.City]; a != nil {
			a.sum += r.AQI
			a.count++
		} else {
			cityAcc[r.City] = &acc{sum: r.AQI, count: 1}
		}
		if a := dayAcc[r.Date]; a != nil {
			a.sum += r.AQI
			a.count++
		} else {
			dayAcc[r.Date] = &acc{sum: r.AQI, count: 1}
		}
	}

	for city, a := range cityAcc {
		s.PerCityAverage[city] = a.sum / float64(a.count)
	}
	for day, a := range dayAcc {
		s.DailyBuckets[day] = a.sum / float64(a.count)
	}

	// Alphabetical iteration makes the tie-break deterministic.
	cities := make([]string, 0, len(s.PerCityAverage))
	for city := range s.PerCityAverage {
		cities = append(cities, city)
	}
	sort.Strings(cities)
	for _, city := range cities {
		if avg := s.PerCityAverage[city]; s.MostPollutedCity == "" || avg > s.MostPollutedAvg {
			s.MostPollutedCity = city
			s.MostPollutedAvg = avg
		}
	}

	return s
}
