package handler

import (
	"net/http"

	"github.com/shashankpm7/aqi-dashboard/internal/api/models"
	"github.com/shashankpm7/aqi-dashboard/internal/api/response"
	"github.com/shashankpm7/aqi-dashboard/internal/dataset"
)

// MetadataHandler serves static reference data.
type MetadataHandler struct{}

// NewMetadataHandler creates a new MetadataHandler.
func NewMetadataHandler() *MetadataHandler {
	return &MetadataHandler{}
}

// Categories handles GET /v1/metadata/categories - the AQI category legend.
func (h *MetadataHandler) Categories(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, r, http.StatusOK, models.CategoriesResponse{
		Items: dataset.Categories(),
	})
}
