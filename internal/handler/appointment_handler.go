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

type appointmentService interface {
	List(ctx context.Context, filter models.AppointmentFilter) ([]models.Appointment, *models.Pagination, error)
	Get(ctx context.Context, id string) (*models.Appointment, error)
	Book(ctx context.Context, req service.BookAppointmentRequest) (*models.Appointment, error)
	Reschedule(ctx context.Context, id string, req service.RescheduleAppointmentRequest) (*models.Appointment, error)
	UpdateStatus(ctx context.Context, id string, req service.UpdateAppointmentStatusRequest) (*models.Appointment, error)
}

// AppointmentHandler wires appointment booking to HTTP routes.
type AppointmentHandler struct {
	service appointmentService
}

// NewAppointmentHandler constructs an AppointmentHandler.
func NewAppointmentHandler(service appointmentService) *AppointmentHandler {
	return &AppointmentHandler{service: service}
}

// List godoc
// @Summary List facility appointments
// @Tags Appointments
// @Produce json
// @Param facilityId path string true "Facility ID"
// @Param date query string false "Day (YYYY-MM-DD)"
// @Param stylist_id query string false "Stylist ID"
// @Param status query string false "Comma separated statuses"
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Param sort query string false "Sort field (date,start_time,pet_name,status,created_at)"
// @Param order query string false "Sort order (asc/desc)"
// @Success 200 {object} response.Envelope
// @Router /facilities/{facilityId}/appointments [get]
func (h *AppointmentHandler) List(c *gin.Context) {
	filter := models.AppointmentFilter{
		FacilityID: c.Param("facilityId"),
		StylistID:  strings.TrimSpace(c.Query("stylist_id")),
		Date:       strings.TrimSpace(c.Query("date")),
		Page:       queryInt(c, "page", 1),
		PageSize:   queryInt(c, "limit", 20),
		SortBy:     c.Query("sort"),
		SortOrder:  c.Query("order"),
	}
	if raw := c.Query("status"); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			if part = strings.TrimSpace(part); part != "" {
				filter.Status = append(filter.Status, models.AppointmentStatus(part))
			}
		}
	}

	appointments, pagination, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, appointments, pagination)
}

// Get godoc
// @Summary Get appointment detail
// @Tags Appointments
// @Produce json
// @Param id path string true "Appointment ID"
// @Success 200 {object} response.Envelope
// @Router /appointments/{id} [get]
func (h *AppointmentHandler) Get(c *gin.Context) {
	appointment, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, appointment, nil)
}

// Book godoc
// @Summary Book an appointment
// @Description Rejected with 409 and the full availability check when the stylist cannot take the slot.
// @Tags Appointments
// @Accept json
// @Produce json
// @Param payload body service.BookAppointmentRequest true "Booking payload"
// @Success 201 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /appointments [post]
func (h *AppointmentHandler) Book(c *gin.Context) {
	var req service.BookAppointmentRequest
	if !bindJSON(c, &req, "appointment") {
		return
	}
	appointment, err := h.service.Book(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, appointment)
}

// Reschedule godoc
// @Summary Move an appointment
// @Tags Appointments
// @Accept json
// @Produce json
// @Param id path string true "Appointment ID"
// @Param payload body service.RescheduleAppointmentRequest true "New slot"
// @Success 200 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /appointments/{id}/schedule [put]
func (h *AppointmentHandler) Reschedule(c *gin.Context) {
	var req service.RescheduleAppointmentRequest
	if !bindJSON(c, &req, "reschedule") {
		return
	}
	appointment, err := h.service.Reschedule(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, appointment, nil)
}

// UpdateStatus godoc
// @Summary Change appointment status
// @Tags Appointments
// @Accept json
// @Produce json
// @Param id path string true "Appointment ID"
// @Param payload body service.UpdateAppointmentStatusRequest true "Target status"
// @Success 200 {object} response.Envelope
// @Router /appointments/{id}/status [patch]
func (h *AppointmentHandler) UpdateStatus(c *gin.Context) {
	var req service.UpdateAppointmentStatusRequest
	if !bindJSON(c, &req, "appointment status") {
		return
	}
	appointment, err := h.service.UpdateStatus(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, appointment, nil)
}
