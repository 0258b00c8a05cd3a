package dataset

import (
	"math"
	"sort"
	"time"
)

// CityStat holds the per-city statistics table shown under the city
// comparison chart.
type CityStat struct {
	City   string  `json:"city"`
	Mean   float64 `json:"mean"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	StdDev float64 `json:"stdDev"`
}

// CityStats computes mean, min, max and sample standard deviation of AQI per
// city over the view, sorted by city name. A city with a single record has a
// standard deviation of 0. An empty view yields an empty slice.
func CityStats(view View) []CityStat {
	type acc struct {
		values []float64
	}
	byCity := make(map[string]*acc)
	for _, r := range view.Records {
		a := byCity[r.City]
		if a == nil {
			a = &acc{}
			byCity[r.City] = a
		}
		a.values = append(a.values, r.AQI)
	}

	stats := make([]CityStat, 0, len(byCity))
	for city, a := range byCity {
		stat := CityStat{City: city, Min: a.values[0], Max: a.values[0]}
		var sum float64
		for _, v := range a.values {
			sum += v
			if v < stat.Min {
				stat.Min = v
			}
			if v > stat.Max {
				stat.Max = v
			}
		}
		stat.Mean = sum / float64(len(a.values))
		if n := len(a.values); n > 1 {
			var sq float64
			for _, v := range a.values {
				d := v - stat.Mean
				sq += d * d
			}
			stat.StdDev = math.Sqrt(sq / float64(n-1))
		}
		stats = append(stats, stat)
	}

	sort.Slice(stats, func(i, j int) bool { return stats[i].City < stats[j].City })
	return stats
}

// TrendPoint is one point of the per-city AQI trend line: the mean AQI for a
// city on a date.
type TrendPoint struct {
	Date time.Time `json:"date"`
	City string    `json:"city"`
	AQI  float64   `json:"aqi"`
}

// TrendSeries groups the view by (date, city) and averages AQI, producing the
// series behind the trends line chart. Points are sorted by date, then city.
func TrendSeries(view View) []TrendPoint {
	type key struct {
		date time.Time
		city string
	}
	type acc struct {
		sum   float64
		count int
	}
	groups := make(map[key]*acc)
	for _, r := range view.Records {
		k := key{date: r.Date, city: r.City}
		a := groups[k]
		if a == nil {
			a = &acc{}
			groups[k] = a
		}
		a.sum += r.AQI
		a.count++
	}

	points := make([]TrendPoint, 0, len(groups))
	for k, a := range groups {
		points = append(points, TrendPoint{
			Date: k.date,
			City: k.city,
			AQI:  a.sum / float64(a.count),
		})
	}

	sort.Slice(points, func(i, j int) bool {
		if !points[i].Date.Equal(points[j].Date) {
			return points[i].Date.Before(points[j].Date)
		}
		return points[i].City < points[j].City
	})
	return points
}
