package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/pawcare-grooming-api/internal/middleware"
	"github.com/noah-isme/pawcare-grooming-api/internal/models"
	"github.com/noah-isme/pawcare-grooming-api/internal/service"
	"github.com/noah-isme/pawcare-grooming-api/pkg/response"
)

type availabilityService interface {
	CheckStylist(ctx context.Context, req service.CheckStylistRequest) (*models.StylistAvailabilityCheck, error)
	AvailableStylists(ctx context.Context, req service.RosterAvailabilityRequest) ([]models.StylistMatch, error)
	SuitableStylists(ctx context.Context, req service.SuitableStylistsRequest) ([]models.Stylist, bool, error)
	OpenSlots(ctx context.Context, req service.OpenSlotsRequest) (*models.OpenSlots, error)
}

// AvailabilityHandler exposes the stylist availability engine over HTTP.
type AvailabilityHandler struct {
	service availabilityService
}

// NewAvailabilityHandler constructs an AvailabilityHandler.
func NewAvailabilityHandler(service availabilityService) *AvailabilityHandler {
	return &AvailabilityHandler{service: service}
}

// Check godoc
// @Summary Check one stylist for a slot
// @Description Returns overlap, capacity and skill findings. An unavailable stylist is still a 200.
// @Tags Availability
// @Accept json
// @Produce json
// @Param payload body service.CheckStylistRequest true "Slot and pet profile"
// @Success 200 {object} response.Envelope
// @Router /availability/check [post]
func (h *AvailabilityHandler) Check(c *gin.Context) {
	var req service.CheckStylistRequest
	if !bindJSON(c, &req, "availability check") {
		return
	}
	check, err := h.service.CheckStylist(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, check, nil)
}

// Stylists godoc
// @Summary List stylists available for a slot
// @Description Active stylists that pass every check, best skill then rating first.
// @Tags Availability
// @Accept json
// @Produce json
// @Param payload body service.RosterAvailabilityRequest true "Facility, slot and pet profile"
// @Success 200 {object} response.Envelope
// @Router /availability/stylists [post]
func (h *AvailabilityHandler) Stylists(c *gin.Context) {
	var req service.RosterAvailabilityRequest
	if !bindJSON(c, &req, "roster availability") {
		return
	}
	matches, err := h.service.AvailableStylists(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, matches, nil, map[string]interface{}{"count": len(matches)})
}

// Suitable godoc
// @Summary List stylists qualified for a pet
// @Description Ignores time and load. Served from cache when possible.
// @Tags Availability
// @Accept json
// @Produce json
// @Param payload body service.SuitableStylistsRequest true "Facility and pet profile"
// @Success 200 {object} response.Envelope
// @Router /availability/suitable [post]
func (h *AvailabilityHandler) Suitable(c *gin.Context) {
	var req service.SuitableStylistsRequest
	if !bindJSON(c, &req, "suitable stylists") {
		return
	}
	stylists, hit, err := h.service.SuitableStylists(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	middleware.SetCacheHit(c, hit)
	response.JSON(c, http.StatusOK, stylists, nil, middleware.ExtractMeta(c))
}

// OpenSlots godoc
// @Summary Suggest open start times for a stylist
// @Tags Availability
// @Produce json
// @Param id path string true "Stylist ID"
// @Param date query string true "Day (YYYY-MM-DD)"
// @Param duration query int true "Appointment length in minutes"
// @Param step query int false "Minutes between candidate starts"
// @Param open query string false "Window start (HH:mm)"
// @Param close query string false "Window end (HH:mm)"
// @Param pet_size query string true "small, medium, large or giant"
// @Param coat_condition query string false "normal, matted or severely-matted"
// @Param is_anxious query bool false "Anxious pet"
// @Param is_aggressive query bool false "Aggressive pet"
// @Success 200 {object} response.Envelope
// @Router /stylists/{id}/open-slots [get]
func (h *AvailabilityHandler) OpenSlots(c *gin.Context) {
	pet, err := petFromQuery(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	req := service.OpenSlotsRequest{
		StylistID:       c.Param("id"),
		Date:            c.Query("date"),
		Open:            c.Query("open"),
		Close:           c.Query("close"),
		DurationMinutes: queryInt(c, "duration", 0),
		StepMinutes:     queryInt(c, "step", 0),
		Pet:             pet,
	}
	slots, err := h.service.OpenSlots(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, slots, nil)
}
