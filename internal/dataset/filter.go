package dataset

import "time"

// Criteria narrows a Dataset to the records the dashboard should show.
// Zero values are meaningful: empty Cities or Pollutants means "no
// restriction", not "match nothing". That convention is what lets a fresh
// dashboard with nothing selected show the whole dataset.
type Criteria struct {
	// DateStart and DateEnd bound the observation date, inclusive on both
	// ends.
	DateStart time.Time
	DateEnd   time.Time

	// Cities restricts to the named cities when non-empty.
	Cities []string

	// Pollutants restricts to the named pollutants when non-empty.
	// Records without a pollutant never match a non-empty restriction.
	Pollutants []string

	// AQIMin and AQIMax bound the AQI value, inclusive on both ends.
	AQIMin float64
	AQIMax float64
}

// DefaultCriteria returns the pass-everything criteria for a dataset: full
// observed date range, full observed AQI range, no city or pollutant
// restriction.
func DefaultCriteria(ds *Dataset) Criteria {
	c := Criteria{}
	if minDate, maxDate, ok := ds.DateRange(); ok {
		c.DateStart, c.DateEnd = minDate, maxDate
	}
	if minAQI, maxAQI, ok := ds.AQIRange(); ok {
		c.AQIMin, c.AQIMax = minAQI, maxAQI
	}
	return c
}

// View is the subsequence of a Dataset matching some Criteria, in original
// dataset order. Aggregates are always computed from a View, never from the
// full Dataset.
type View struct {
	// Records are the matching records, preserving dataset order.
	Records []Record

	// Criteria is the filter that produced this view.
	Criteria Criteria
}

// Empty reports whether no records matched.
func (v View) Empty() bool {
	return len(v.Records) == 0
}

// Filter applies criteria to a dataset and returns the matching view.
// It is a pure function: no hidden state, no I/O, and the same inputs
// always produce the same view. An inverted date or AQI range is not an
// error; it simply matches nothing.
func Filter(ds *Dataset, c Criteria) View {
	view := View{Criteria: c}
	if ds == nil {
		return view
	}

	// Degenerate ranges produce an empty view by construction, but checking
	// up front keeps the per-record loop honest.
	if c.DateStart.After(c.DateEnd) || c.AQIMin > c.AQIMax {
		return view
	}

	cities := toSet(c.Cities)
	pollutants := toSet(c.Pollutants)

	for _, r := range ds.Records {
		if r.Date.Before(c.DateStart) || r.Date.After(c.DateEnd) {
			continue
		}
		if r.AQI < c.AQIMin || r.AQI > c.AQIMax {
			continue
		}
		// Empty set means no restriction.
		if len(cities) > 0 {
			if _, ok := cities[r.City]; !ok {
				continue
			}
		}
		if len(pollutants) > 0 {
			if _, ok := pollutants[r.Pollutant]; !ok {
				continue
			}
		}
		view.Records = append(view.Records, r)
	}
	return view
}

func toSet(values []string) map[string]struct{} {
	if len(values) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}
