package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/pawcare-grooming-api/internal/models"
	"github.com/noah-isme/pawcare-grooming-api/internal/service"
	"github.com/noah-isme/pawcare-grooming-api/pkg/response"
)

type stylistService interface {
	List(ctx context.Context, filter models.StylistFilter) ([]models.Stylist, *models.Pagination, error)
	Get(ctx context.Context, id string) (*models.Stylist, error)
	Create(ctx context.Context, facilityID string, req service.CreateStylistRequest) (*models.Stylist, error)
	Update(ctx context.Context, id string, req service.UpdateStylistRequest) (*models.Stylist, error)
	Delete(ctx context.Context, id string) error
	GetCapacity(ctx context.Context, stylistID string) (*models.StylistCapacity, error)
	UpsertCapacity(ctx context.Context, stylistID string, req service.UpsertCapacityRequest) (*models.StylistCapacity, error)
}

// StylistHandler wires roster management to HTTP routes.
type StylistHandler struct {
	service stylistService
}

// NewStylistHandler constructs a StylistHandler.
func NewStylistHandler(service stylistService) *StylistHandler {
	return &StylistHandler{service: service}
}

// List godoc
// @Summary List facility stylists
// @Tags Stylists
// @Produce json
// @Param facilityId path string true "Facility ID"
// @Param search query string false "Search by name/email"
// @Param status query string false "active, inactive or on-leave"
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Param sort query string false "Sort field (name,rating,created_at)"
// @Param order query string false "Sort order (asc/desc)"
// @Success 200 {object} response.Envelope
// @Router /facilities/{facilityId}/stylists [get]
func (h *StylistHandler) List(c *gin.Context) {
	filter := models.StylistFilter{
		FacilityID: c.Param("facilityId"),
		Search:     strings.TrimSpace(c.Query("search")),
		Status:     models.StylistStatus(strings.ToLower(c.Query("status"))),
		Page:       queryInt(c, "page", 1),
		PageSize:   queryInt(c, "limit", 20),
		SortBy:     c.Query("sort"),
		SortOrder:  c.Query("order"),
	}
	stylists, pagination, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, stylists, pagination)
}

// Get godoc
// @Summary Get stylist detail
// @Tags Stylists
// @Produce json
// @Param id path string true "Stylist ID"
// @Success 200 {object} response.Envelope
// @Router /stylists/{id} [get]
func (h *StylistHandler) Get(c *gin.Context) {
	stylist, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, stylist, nil)
}

// Create godoc
// @Summary Add a stylist to a facility
// @Tags Stylists
// @Accept json
// @Produce json
// @Param facilityId path string true "Facility ID"
// @Param payload body service.CreateStylistRequest true "Stylist payload"
// @Success 201 {object} response.Envelope
// @Router /facilities/{facilityId}/stylists [post]
func (h *StylistHandler) Create(c *gin.Context) {
	var req service.CreateStylistRequest
	if !bindJSON(c, &req, "stylist") {
		return
	}
	stylist, err := h.service.Create(c.Request.Context(), c.Param("facilityId"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, stylist)
}

// Update godoc
// @Summary Update stylist
// @Tags Stylists
// @Accept json
// @Produce json
// @Param id path string true "Stylist ID"
// @Param payload body service.UpdateStylistRequest true "Stylist payload"
// @Success 200 {object} response.Envelope
// @Router /stylists/{id} [put]
func (h *StylistHandler) Update(c *gin.Context) {
	var req service.UpdateStylistRequest
	if !bindJSON(c, &req, "stylist") {
		return
	}
	stylist, err := h.service.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, stylist, nil)
}

// Delete godoc
// @Summary Deactivate stylist
// @Tags Stylists
// @Param id path string true "Stylist ID"
// @Success 204
// @Router /stylists/{id} [delete]
func (h *StylistHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// GetCapacity godoc
// @Summary Get stylist capacity profile
// @Tags Stylists
// @Produce json
// @Param id path string true "Stylist ID"
// @Success 200 {object} response.Envelope
// @Router /stylists/{id}/capacity [get]
func (h *StylistHandler) GetCapacity(c *gin.Context) {
	capacity, err := h.service.GetCapacity(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, capacity, nil)
}

// UpsertCapacity godoc
// @Summary Set stylist capacity profile
// @Tags Stylists
// @Accept json
// @Produce json
// @Param id path string true "Stylist ID"
// @Param payload body service.UpsertCapacityRequest true "Capacity payload"
// @Success 200 {object} response.Envelope
// @Router /stylists/{id}/capacity [put]
func (h *StylistHandler) UpsertCapacity(c *gin.Context) {
	var req service.UpsertCapacityRequest
	if !bindJSON(c, &req, "stylist capacity") {
		return
	}
	capacity, err := h.service.UpsertCapacity(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, capacity, nil)
}
