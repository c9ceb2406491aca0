package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/pawcare-grooming-api/internal/models"
	"github.com/noah-isme/pawcare-grooming-api/internal/service"
	"github.com/noah-isme/pawcare-grooming-api/pkg/response"
)

type facilitySettingsService interface {
	Get(ctx context.Context, facilityID string) (*models.FacilitySettings, error)
	Upsert(ctx context.Context, facilityID string, req service.UpdateFacilitySettingsRequest) (*models.FacilitySettings, error)
}

// FacilitySettingsHandler exposes per-facility scheduling overrides.
type FacilitySettingsHandler struct {
	service facilitySettingsService
}

// NewFacilitySettingsHandler constructs a FacilitySettingsHandler.
func NewFacilitySettingsHandler(service facilitySettingsService) *FacilitySettingsHandler {
	return &FacilitySettingsHandler{service: service}
}

// Get godoc
// @Summary Get facility scheduling settings
// @Tags Facilities
// @Produce json
// @Param facilityId path string true "Facility ID"
// @Success 200 {object} response.Envelope
// @Router /facilities/{facilityId}/settings [get]
func (h *FacilitySettingsHandler) Get(c *gin.Context) {
	settings, err := h.service.Get(c.Request.Context(), c.Param("facilityId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, settings, nil)
}

// Update godoc
// @Summary Update facility scheduling settings
// @Tags Facilities
// @Accept json
// @Produce json
// @Param facilityId path string true "Facility ID"
// @Param payload body service.UpdateFacilitySettingsRequest true "Settings payload"
// @Success 200 {object} response.Envelope
// @Router /facilities/{facilityId}/settings [put]
func (h *FacilitySettingsHandler) Update(c *gin.Context) {
	var req service.UpdateFacilitySettingsRequest
	if !bindJSON(c, &req, "facility settings") {
		return
	}
	settings, err := h.service.Upsert(c.Request.Context(), c.Param("facilityId"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, settings, nil)
}
