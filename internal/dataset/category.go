package dataset

// CategoryInfo describes one band of the US EPA AQI scale.
type CategoryInfo struct {
	// Name is the category label, e.g. "Good" or "Hazardous".
	Name string `json:"name"`

	// Range is the human-readable AQI range, e.g. "51-100" or "301+".
	Range string `json:"range"`

	// Color is the conventional hex color for the band.
	Color string `json:"color"`

	// Description explains the health implication of the band.
	Description string `json:"description"`
}

// categories is the EPA scale, ordered by ascending upper bound.
var categories = []struct {
	upper float64
	info  CategoryInfo
}{
	{50, CategoryInfo{
		Name:        "Good",
		Range:       "0-50",
		Color:       "#00e400",
		Description: "Air quality is satisfactory, and air pollution poses little or no risk.",
	}},
	{100, CategoryInfo{
		Name:        "Moderate",
		Range:       "51-100",
		Color:       "#ffff00",
		Description: "Air quality is acceptable. However, there may be a risk for some people, particularly those who are unusually sensitive to air pollution.",
	}},
	{150, CategoryInfo{
		Name:        "Unhealthy for Sensitive Groups",
		Range:       "101-150",
		Color:       "#ff7e00",
		Description: "Members of sensitive groups may experience health effects. The general public is less likely to be affected.",
	}},
	{200, CategoryInfo{
		Name:        "Unhealthy",
		Range:       "151-200",
		Color:       "#ff0000",
		Description: "Some members of the general public may experience health effects; members of sensitive groups may experience more serious health effects.",
	}},
	{300, CategoryInfo{
		Name:        "Very Unhealthy",
		Range:       "201-300",
		Color:       "#99004c",
		Description: "Health alert: The risk of health effects is increased for everyone.",
	}},
}

// hazardous is the open-ended top band.
var hazardous = CategoryInfo{
	Name:        "Hazardous",
	Range:       "301+",
	Color:       "#7e0023",
	Description: "Health warning of emergency conditions: everyone is more likely to be affected.",
}

// Category returns the EPA category for an AQI value. Band upper bounds are
// inclusive: 50 is Good, 51 is Moderate.
func Category(aqi float64) CategoryInfo {
	for _, c := range categories {
		if aqi <= c.upper {
			return c.info
		}
	}
	return hazardous
}

// Categories returns the full EPA scale in ascending order, for the
// dashboard's legend.
func Categories() []CategoryInfo {
	out := make([]CategoryInfo, 0, len(categories)+1)
	for _, c := range categories {
		out = append(out, c.info)
	}
	return append(out, hazardous)
}
