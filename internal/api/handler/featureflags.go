package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"sort"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/shashankpm7/aqi-dashboard/internal/api/models"
	"github.com/shashankpm7/aqi-dashboard/internal/api/response"
	"github.com/shashankpm7/aqi-dashboard/internal/featureflags"
)

// FeatureFlagsHandler handles feature flag endpoints.
type FeatureFlagsHandler struct {
	service *featureflags.Service
	logger  zerolog.Logger
}

// NewFeatureFlagsHandler creates a new FeatureFlagsHandler.
func NewFeatureFlagsHandler(service *featureflags.Service, logger zerolog.Logger) *FeatureFlagsHandler {
	return &FeatureFlagsHandler{service: service, logger: logger}
}

// ListFeatureFlags handles GET /v1/admin/flags - list all feature flags,
// defaults merged with stored overrides, sorted by key.
func (h *FeatureFlagsHandler) ListFeatureFlags(w http.ResponseWriter, r *http.Request) {
	flags := h.service.GetAllFlags(r.Context())

	items := make([]featureflags.Flag, 0, len(flags))
	for _, flag := range flags {
		items = append(items, *flag)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Key < items[j].Key })

	response.JSON(w, r, http.StatusOK, featureflags.FlagList{Items: items})
}

// UpsertFeatureFlags handles PUT /v1/admin/flags - apply a batch of flag
// updates.
func (h *FeatureFlagsHandler) UpsertFeatureFlags(w http.ResponseWriter, r *http.Request) {
	var input featureflags.FlagUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, r, "invalid JSON body", nil)
		return
	}
	if len(input.Updates) == 0 {
		response.BadRequest(w, r, "updates must not be empty", []models.FieldError{
			{Field: "updates", Message: "required", Code: "REQUIRED"},
		})
		return
	}

	flags := make([]*featureflags.Flag, 0, len(input.Updates))
	for _, update := range input.Updates {
		if update.Key == "" {
			response.BadRequest(w, r, "flag key must not be empty", []models.FieldError{
				{Field: "updates.key", Message: "required", Code: "REQUIRED"},
			})
			return
		}
		flags = append(flags, &featureflags.Flag{Key: update.Key, Value: update.Value})
	}

	if err := h.service.SetFlags(r.Context(), flags); err != nil {
		h.logger.Error().Err(err).Msg("failed to update feature flags")
		response.InternalError(w, r, "failed to update feature flags")
		return
	}

	h.logger.Info().
		Int("count", len(flags)).
		Str("reason", input.Reason).
		Msg("feature flags updated")

	response.NoContent(w, r)
}

// DeleteFeatureFlag handles DELETE /v1/admin/flags/{key} - remove an
// override, reverting the flag to its default value.
func (h *FeatureFlagsHandler) DeleteFeatureFlag(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")

	if err := h.service.DeleteFlag(r.Context(), key); err != nil {
		if errors.Is(err, featureflags.ErrFlagNotFound) {
			response.NotFound(w, r, "no override stored for flag")
			return
		}
		h.logger.Error().Err(err).Str("flag", key).Msg("failed to delete feature flag")
		response.InternalError(w, r, "failed to delete feature flag")
		return
	}

	response.NoContent(w, r)
}
