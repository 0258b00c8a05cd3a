package models

import (
	"github.com/shashankpm7/aqi-dashboard/internal/dataset"
)

// CategoriesResponse is the body of GET /v1/metadata/categories: the EPA AQI
// scale used for the dashboard legend.
type CategoriesResponse struct {
	Items []dataset.CategoryInfo `json:"items"`
}
