package handler

import (
	"net/http"
	"sort"
	"time"

	"github.com/shashankpm7/aqi-dashboard/internal/api/models"
	"github.com/shashankpm7/aqi-dashboard/internal/api/response"
	"github.com/shashankpm7/aqi-dashboard/internal/dataset"
	"github.com/shashankpm7/aqi-dashboard/internal/featureflags"
	"github.com/shashankpm7/aqi-dashboard/internal/provider/resilience"
)

// HealthReporter reports the transport health of a remote data source.
type HealthReporter interface {
	Health() *resilience.SourceHealth
}

// OpsHandler handles operational endpoints.
type OpsHandler struct {
	version   string
	buildTime string
	store     *dataset.Store
	flags     *featureflags.Service
	sources   []HealthReporter
}

// NewOpsHandler creates a new OpsHandler. store, flags and sources are
// optional; status sections for absent dependencies are omitted.
func NewOpsHandler(version, buildTime string, store *dataset.Store, flags *featureflags.Service, sources ...HealthReporter) *OpsHandler {
	return &OpsHandler{
		version:   version,
		buildTime: buildTime,
		store:     store,
		flags:     flags,
		sources:   sources,
	}
}

// HealthCheck handles GET /v1/ops/health - liveness check.
func (h *OpsHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	health := models.Health{
		Status: models.HealthStatusOK,
		Time:   models.Timestamp(time.Now()),
		Details: map[string]interface{}{
			"version":   h.version,
			"buildTime": h.buildTime,
		},
	}
	response.JSON(w, r, http.StatusOK, health)
}

// ReadinessCheck handles GET /v1/ops/ready - readiness check. The service
// holds its dataset in memory, so it is ready as soon as it is serving.
func (h *OpsHandler) ReadinessCheck(w http.ResponseWriter, r *http.Request) {
	health := models.Health{
		Status: models.HealthStatusOK,
		Time:   models.Timestamp(time.Now()),
	}
	response.JSON(w, r, http.StatusOK, health)
}

// SystemStatus handles GET /v1/ops/status - dataset, remote source and
// feature flag status. An unhealthy remote source degrades the overall
// status without failing it; fetching is only one way to load data.
func (h *OpsHandler) SystemStatus(w http.ResponseWriter, r *http.Request) {
	status := models.SystemStatus{
		Status: models.HealthStatusOK,
		Time:   models.Timestamp(time.Now()),
	}

	if h.store != nil {
		if ds, err := h.store.Current(); err == nil {
			summary := models.NewDatasetSummary(ds)
			status.Dataset = &summary
		}
	}

	for _, source := range h.sources {
		health := source.Health()
		if health == nil {
			continue
		}
		status.Sources = append(status.Sources, health)
		if !health.Healthy() {
			status.Status = models.HealthStatusDegraded
		}
	}

	if h.flags != nil {
		for key, flag := range h.flags.GetAllFlags(r.Context()) {
			if flag.BoolValue(false) {
				status.ActiveFlags = append(status.ActiveFlags, key)
			}
		}
		sort.Strings(status.ActiveFlags)
	}

	response.JSON(w, r, http.StatusOK, status)
}
