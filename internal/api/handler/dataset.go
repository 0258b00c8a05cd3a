// Package handler provides HTTP handlers for the dashboard API.
package handler

import (
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/shashankpm7/aqi-dashboard/internal/api/middleware"
	"github.com/shashankpm7/aqi-dashboard/internal/api/models"
	"github.com/shashankpm7/aqi-dashboard/internal/api/response"
	"github.com/shashankpm7/aqi-dashboard/internal/dataset"
	"github.com/shashankpm7/aqi-dashboard/internal/dataset/remotecsv"
	"github.com/shashankpm7/aqi-dashboard/internal/featureflags"
	"github.com/shashankpm7/aqi-dashboard/internal/provider/resilience"
)

// DatasetHandler handles dataset lifecycle endpoints.
type DatasetHandler struct {
	store   *dataset.Store
	flags   *featureflags.Service
	fetcher *remotecsv.Client
	metrics *middleware.IngestMetrics
	logger  zerolog.Logger
}

// NewDatasetHandler creates a new DatasetHandler. metrics may be nil.
func NewDatasetHandler(store *dataset.Store, flags *featureflags.Service, fetcher *remotecsv.Client, metrics *middleware.IngestMetrics, logger zerolog.Logger) *DatasetHandler {
	return &DatasetHandler{
		store:   store,
		flags:   flags,
		fetcher: fetcher,
		metrics: metrics,
		logger:  logger,
	}
}

// Upload handles POST /v1/dataset - replace the session dataset with an
// uploaded CSV file, sent either as the raw body or as the "file" field of a
// multipart form. A failed upload leaves the previous dataset in place.
func (h *DatasetHandler) Upload(w http.ResponseWriter, r *http.Request) {
	maxBytes := h.flags.MaxUploadBytes(r.Context())
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)

	body, err := uploadReader(r)
	if err != nil {
		response.BadRequest(w, r, "multipart upload must carry the CSV in a \"file\" field", nil)
		return
	}
	defer func() { _ = body.Close() }()

	start := time.Now()
	ds, err := dataset.IngestCSV(body, "upload")
	if h.metrics != nil {
		records, dropped := 0, 0
		if ds != nil {
			records, dropped = ds.Len(), ds.DroppedRows
		}
		h.metrics.RecordLoad("upload", records, dropped, time.Since(start), err)
	}
	if err != nil {
		h.writeIngestError(w, r, err)
		return
	}

	h.store.Replace(ds)
	response.Created(w, r, "/v1/dataset", models.NewDatasetSummary(ds))
}

// Generate handles POST /v1/dataset/generate - replace the session dataset
// with generated sample data. The body is optional.
func (h *DatasetHandler) Generate(w http.ResponseWriter, r *http.Request) {
	if h.flags.IsSampleGeneratorDisabled(r.Context()) {
		response.Forbidden(w, r, "sample data generation is disabled")
		return
	}

	cfg := dataset.DefaultGeneratorConfig()
	if r.ContentLength != 0 {
		var input models.GenerateRequest
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
			response.BadRequest(w, r, "invalid JSON body", nil)
			return
		}
		if len(input.Cities) > 0 {
			cfg.Cities = input.Cities
		}
		if len(input.Pollutants) > 0 {
			cfg.Pollutants = input.Pollutants
		}
		if input.Days > 0 {
			cfg.Days = input.Days
		}
		if input.Seed != 0 {
			cfg.Seed = input.Seed
		}
	}

	ds := dataset.GenerateSample(cfg)
	h.store.Replace(ds)
	response.Created(w, r, "/v1/dataset", models.NewDatasetSummary(ds))
}

// Fetch handles POST /v1/dataset/fetch - replace the session dataset with a
// CSV file downloaded from a remote URL.
func (h *DatasetHandler) Fetch(w http.ResponseWriter, r *http.Request) {
	if h.flags.IsRemoteFetchDisabled(r.Context()) {
		response.Forbidden(w, r, "remote dataset fetching is disabled")
		return
	}

	var input models.FetchRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, r, "invalid JSON body", nil)
		return
	}
	if input.URL == "" {
		response.BadRequest(w, r, "url is required", []models.FieldError{
			{Field: "url", Message: "required", Code: "REQUIRED"},
		})
		return
	}

	start := time.Now()
	ds, err := h.fetcher.Fetch(r.Context(), input.URL)
	if h.metrics != nil {
		records, dropped := 0, 0
		if ds != nil {
			records, dropped = ds.Len(), ds.DroppedRows
		}
		h.metrics.RecordLoad("fetch", records, dropped, time.Since(start), err)
	}
	if err != nil {
		h.writeFetchError(w, r, err)
		return
	}

	h.store.Replace(ds)
	response.Created(w, r, "/v1/dataset", models.NewDatasetSummary(ds))
}

// Get handles GET /v1/dataset - describe the currently loaded dataset.
func (h *DatasetHandler) Get(w http.ResponseWriter, r *http.Request) {
	ds, err := h.store.Current()
	if err != nil {
		response.NotFound(w, r, "no dataset loaded")
		return
	}
	response.JSON(w, r, http.StatusOK, models.NewDatasetSummary(ds))
}

// Delete handles DELETE /v1/dataset - discard the session dataset.
func (h *DatasetHandler) Delete(w http.ResponseWriter, r *http.Request) {
	h.store.Clear()
	response.NoContent(w, r)
}

// uploadReader picks the CSV payload out of the request: the "file" part for
// multipart forms, the raw body otherwise.
func uploadReader(r *http.Request) (io.ReadCloser, error) {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err == nil && strings.HasPrefix(mediaType, "multipart/") {
		file, _, err := r.FormFile("file")
		if err != nil {
			return nil, err
		}
		return file, nil
	}
	return r.Body, nil
}

// writeIngestError maps ingestion failures to problem responses. A schema
// violation is the caller's mistake; a dataset where every row failed to
// parse is reported as unprocessable.
func (h *DatasetHandler) writeIngestError(w http.ResponseWriter, r *http.Request, err error) {
	var schemaErr *dataset.SchemaError
	switch {
	case errors.As(err, &schemaErr):
		fieldErrors := make([]models.FieldError, 0, len(schemaErr.Missing))
		for _, col := range schemaErr.Missing {
			fieldErrors = append(fieldErrors, models.FieldError{
				Field:   col,
				Message: "required column is missing",
				Code:    "MISSING_COLUMN",
			})
		}
		response.BadRequest(w, r, schemaErr.Error(), fieldErrors)
	case errors.Is(err, dataset.ErrEmptyDataset):
		response.UnprocessableEntity(w, r, "no valid rows in dataset")
	default:
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			response.BadRequest(w, r, "uploaded file exceeds the size limit", nil)
			return
		}
		h.logger.Error().Err(err).Msg("dataset ingest failed")
		response.InternalError(w, r, "failed to read dataset")
	}
}

// writeFetchError maps remote fetch failures. Transport problems, including
// an open circuit breaker, surface as a gateway error; a well-formed
// transfer with bad content is the same as a bad upload.
func (h *DatasetHandler) writeFetchError(w http.ResponseWriter, r *http.Request, err error) {
	var statusErr *remotecsv.StatusError
	switch {
	case errors.Is(err, remotecsv.ErrInvalidURL):
		response.BadRequest(w, r, "fetch URL must be absolute http or https", []models.FieldError{
			{Field: "url", Message: "must be an absolute http or https URL", Code: "INVALID"},
		})
	case errors.Is(err, resilience.ErrCircuitOpen):
		response.BadGateway(w, r, "remote host is unavailable, try again later")
	case errors.As(err, &statusErr):
		response.BadGateway(w, r, statusErr.Error())
	default:
		var schemaErr *dataset.SchemaError
		if errors.As(err, &schemaErr) || errors.Is(err, dataset.ErrEmptyDataset) {
			h.writeIngestError(w, r, err)
			return
		}
		h.logger.Warn().Err(err).Msg("remote dataset fetch failed")
		response.BadGateway(w, r, "failed to fetch remote dataset")
	}
}
