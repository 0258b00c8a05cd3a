package handler

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/shashankpm7/aqi-dashboard/internal/api/models"
	"github.com/shashankpm7/aqi-dashboard/internal/api/response"
	"github.com/shashankpm7/aqi-dashboard/internal/dataset"
)

// DashboardHandler serves the filtered views of the loaded dataset.
type DashboardHandler struct {
	store  *dataset.Store
	logger zerolog.Logger
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(store *dataset.Store, logger zerolog.Logger) *DashboardHandler {
	return &DashboardHandler{store: store, logger: logger}
}

// Summary handles GET /v1/dashboard/summary - aggregate statistics over the
// filtered view.
func (h *DashboardHandler) Summary(w http.ResponseWriter, r *http.Request) {
	ds, err := h.store.Current()
	if err != nil {
		response.NotFound(w, r, "no dataset loaded")
		return
	}

	criteria, fieldErrors := parseCriteria(ds, r.URL.Query())
	if len(fieldErrors) > 0 {
		response.BadRequest(w, r, "invalid filter parameters", fieldErrors)
		return
	}

	view := dataset.Filter(ds, criteria)
	summary := dataset.Aggregate(view)
	stats := dataset.CityStats(view)
	trend := dataset.TrendSeries(view)

	response.JSON(w, r, http.StatusOK, models.NewSummaryResponse(summary, stats, trend))
}

// Records handles GET /v1/dashboard/records - the filtered records
// themselves, in dataset order.
func (h *DashboardHandler) Records(w http.ResponseWriter, r *http.Request) {
	ds, err := h.store.Current()
	if err != nil {
		response.NotFound(w, r, "no dataset loaded")
		return
	}

	criteria, fieldErrors := parseCriteria(ds, r.URL.Query())
	if len(fieldErrors) > 0 {
		response.BadRequest(w, r, "invalid filter parameters", fieldErrors)
		return
	}

	view := dataset.Filter(ds, criteria)
	response.JSON(w, r, http.StatusOK, models.NewRecordsResponse(view))
}

// Export handles GET /v1/dashboard/export - the filtered view as a CSV
// download. Re-uploading the file reproduces the exported records.
func (h *DashboardHandler) Export(w http.ResponseWriter, r *http.Request) {
	ds, err := h.store.Current()
	if err != nil {
		response.NotFound(w, r, "no dataset loaded")
		return
	}

	criteria, fieldErrors := parseCriteria(ds, r.URL.Query())
	if len(fieldErrors) > 0 {
		response.BadRequest(w, r, "invalid filter parameters", fieldErrors)
		return
	}

	view := dataset.Filter(ds, criteria)

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="filtered_aqi_data.csv"`)
	w.WriteHeader(http.StatusOK)

	if err := dataset.ExportCSV(view, w); err != nil {
		// Headers are already on the wire, all we can do is log.
		h.logger.Error().Err(err).Msg("csv export failed mid-stream")
	}
}

// parseCriteria builds filter criteria from query parameters, starting from
// the pass-everything defaults so omitted parameters leave that dimension
// unrestricted. List parameters accept repeated keys and comma-separated
// values. An inverted range is valid input and yields an empty view.
func parseCriteria(ds *dataset.Dataset, query url.Values) (dataset.Criteria, []models.FieldError) {
	criteria := dataset.DefaultCriteria(ds)
	var fieldErrors []models.FieldError

	if raw := query.Get("from"); raw != "" {
		if t, err := time.Parse("2006-01-02", raw); err == nil {
			criteria.DateStart = t
		} else {
			fieldErrors = append(fieldErrors, invalidDate("from"))
		}
	}
	if raw := query.Get("to"); raw != "" {
		if t, err := time.Parse("2006-01-02", raw); err == nil {
			criteria.DateEnd = t
		} else {
			fieldErrors = append(fieldErrors, invalidDate("to"))
		}
	}

	if values := listParam(query, "cities"); len(values) > 0 {
		criteria.Cities = values
	}
	if values := listParam(query, "pollutants"); len(values) > 0 {
		criteria.Pollutants = values
	}

	if raw := query.Get("minAqi"); raw != "" {
		if f, err := strconv.ParseFloat(raw, 64); err == nil {
			criteria.AQIMin = f
		} else {
			fieldErrors = append(fieldErrors, invalidNumber("minAqi"))
		}
	}
	if raw := query.Get("maxAqi"); raw != "" {
		if f, err := strconv.ParseFloat(raw, 64); err == nil {
			criteria.AQIMax = f
		} else {
			fieldErrors = append(fieldErrors, invalidNumber("maxAqi"))
		}
	}

	return criteria, fieldErrors
}

// listParam collects a multi-valued parameter, splitting each occurrence on
// commas and dropping empty entries.
func listParam(query url.Values, key string) []string {
	var values []string
	for _, raw := range query[key] {
		for _, part := range strings.Split(raw, ",") {
			if trimmed := strings.TrimSpace(part); trimmed != "" {
				values = append(values, trimmed)
			}
		}
	}
	return values
}

func invalidDate(field string) models.FieldError {
	return models.FieldError{
		Field:   field,
		Message: "must be a date in YYYY-MM-DD format",
		Code:    "INVALID",
	}
}

func invalidNumber(field string) models.FieldError {
	return models.FieldError{
		Field:   field,
		Message: "must be a number",
		Code:    "INVALID",
	}
}
