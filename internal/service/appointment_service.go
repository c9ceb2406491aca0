package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/pawcare-grooming-api/internal/models"
	appErrors "github.com/noah-isme/pawcare-grooming-api/pkg/errors"
)

type appointmentRepository interface {
	List(ctx context.Context, filter models.AppointmentFilter) ([]models.Appointment, int, error)
	FindByID(ctx context.Context, id string) (*models.Appointment, error)
	Create(ctx context.Context, appointment *models.Appointment) error
	UpdateSchedule(ctx context.Context, appointment *models.Appointment) error
	UpdateStatus(ctx context.Context, id string, status models.AppointmentStatus) error
}

type availabilityVerifier interface {
	Verify(ctx context.Context, stylistID string, slot models.Slot, pet models.PetProfile, excludeID string) (*models.Stylist, models.StylistAvailabilityCheck, error)
}

// EventPublisher emits appointment lifecycle events to downstream consumers.
type EventPublisher interface {
	Publish(ctx context.Context, event models.AppointmentEvent) error
}

// allowedTransitions lists the statuses reachable from each lifecycle state.
var allowedTransitions = map[models.AppointmentStatus][]models.AppointmentStatus{
	models.AppointmentScheduled:      {models.AppointmentCheckedIn, models.AppointmentCancelled, models.AppointmentNoShow},
	models.AppointmentCheckedIn:      {models.AppointmentInProgress, models.AppointmentCancelled},
	models.AppointmentInProgress:     {models.AppointmentReadyForPickup},
	models.AppointmentReadyForPickup: {models.AppointmentCompleted},
}

// CanTransition reports whether an appointment may move from one status to another.
func CanTransition(from, to models.AppointmentStatus) bool {
	for _, next := range allowedTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// BookAppointmentRequest represents payload for booking a grooming slot.
type BookAppointmentRequest struct {
	FacilityID string            `json:"facility_id" validate:"required"`
	StylistID  string            `json:"stylist_id" validate:"required,uuid"`
	PetName    string            `json:"pet_name" validate:"required,max=120"`
	Pet        PetProfileRequest `json:"pet"`
	Date       string            `json:"date" validate:"required,isodate"`
	StartTime  string            `json:"start_time" validate:"required,clock"`
	EndTime    string            `json:"end_time" validate:"required,clock"`
	Notes      *string           `json:"notes" validate:"omitempty,max=1000"`
}

// RescheduleAppointmentRequest moves an appointment; an empty stylist keeps the current one.
type RescheduleAppointmentRequest struct {
	StylistID string `json:"stylist_id" validate:"omitempty,uuid"`
	Date      string `json:"date" validate:"required,isodate"`
	StartTime string `json:"start_time" validate:"required,clock"`
	EndTime   string `json:"end_time" validate:"required,clock"`
}

// UpdateAppointmentStatusRequest carries a lifecycle transition.
type UpdateAppointmentStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=scheduled checked-in in-progress ready-for-pickup completed cancelled no-show"`
}

// AppointmentService books and manages grooming appointments behind the availability gate.
type AppointmentService struct {
	repo         appointmentRepository
	availability availabilityVerifier
	publisher    EventPublisher
	metrics      *MetricsService
	validator    *validator.Validate
	logger       *zap.Logger
	now          func() time.Time
}

// NewAppointmentService constructs an AppointmentService.
func NewAppointmentService(repo appointmentRepository, availability availabilityVerifier, publisher EventPublisher, metrics *MetricsService, validate *validator.Validate, logger *zap.Logger) *AppointmentService {
	if validate == nil {
		validate = NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AppointmentService{
		repo:         repo,
		availability: availability,
		publisher:    publisher,
		metrics:      metrics,
		validator:    validate,
		logger:       logger,
		now:          time.Now,
	}
}

// List returns appointments plus pagination data.
func (s *AppointmentService) List(ctx context.Context, filter models.AppointmentFilter) ([]models.Appointment, *models.Pagination, error) {
	for _, status := range filter.Status {
		if !status.Valid() {
			return nil, nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown status %q", status))
		}
	}
	appointments, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list appointments")
	}
	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 {
		size = 20
	}
	return appointments, &models.Pagination{Page: page, PageSize: size, TotalCount: total}, nil
}

// Get returns an appointment by id.
func (s *AppointmentService) Get(ctx context.Context, id string) (*models.Appointment, error) {
	appointment, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "appointment not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load appointment")
	}
	return appointment, nil
}

// Book creates a scheduled appointment when the stylist passes the availability check.
// The check and the insert are not atomic; two concurrent bookings may both pass.
func (s *AppointmentService) Book(ctx context.Context, req BookAppointmentRequest) (*models.Appointment, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "appointment")
	}
	if err := ensureWindow(req.StartTime, req.EndTime); err != nil {
		return nil, err
	}

	pet := req.Pet.profile()
	slot := models.Slot{Date: req.Date, StartTime: req.StartTime, EndTime: req.EndTime}
	stylist, check, err := s.availability.Verify(ctx, req.StylistID, slot, pet, "")
	if err != nil {
		return nil, err
	}
	if err := ensureBookable(stylist, req.FacilityID); err != nil {
		s.metrics.RecordBooking("rejected")
		return nil, err
	}
	if !check.IsAvailable {
		s.metrics.RecordBooking("rejected")
		return nil, unavailableError(check)
	}

	appointment := &models.Appointment{
		FacilityID:    req.FacilityID,
		StylistID:     req.StylistID,
		PetName:       strings.TrimSpace(req.PetName),
		PetSize:       pet.Size,
		CoatCondition: pet.CoatCondition,
		IsAnxious:     pet.IsAnxious,
		IsAggressive:  pet.IsAggressive,
		Date:          req.Date,
		StartTime:     req.StartTime,
		EndTime:       req.EndTime,
		Status:        models.AppointmentScheduled,
		Notes:         normalizeOptional(req.Notes),
	}
	if err := s.repo.Create(ctx, appointment); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create appointment")
	}
	s.metrics.RecordBooking("booked")
	s.logger.Info("appointment booked",
		zap.String("appointment_id", appointment.ID),
		zap.String("stylist_id", appointment.StylistID),
		zap.String("date", appointment.Date),
		zap.String("start_time", appointment.StartTime),
	)
	s.publish(ctx, models.EventAppointmentBooked, *appointment, "")
	return appointment, nil
}

// Reschedule moves an appointment, re-running the availability check without counting itself.
func (s *AppointmentService) Reschedule(ctx context.Context, id string, req RescheduleAppointmentRequest) (*models.Appointment, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "reschedule")
	}
	if err := ensureWindow(req.StartTime, req.EndTime); err != nil {
		return nil, err
	}
	appointment, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !reschedulable(appointment.Status) {
		return nil, appErrors.Clone(appErrors.ErrPreconditionFailed, fmt.Sprintf("appointment is %s and cannot be rescheduled", appointment.Status))
	}

	stylistID := strings.TrimSpace(req.StylistID)
	if stylistID == "" {
		stylistID = appointment.StylistID
	}
	slot := models.Slot{Date: req.Date, StartTime: req.StartTime, EndTime: req.EndTime}
	stylist, check, err := s.availability.Verify(ctx, stylistID, slot, appointment.Pet(), appointment.ID)
	if err != nil {
		return nil, err
	}
	if err := ensureBookable(stylist, appointment.FacilityID); err != nil {
		return nil, err
	}
	if !check.IsAvailable {
		return nil, unavailableError(check)
	}

	appointment.StylistID = stylistID
	appointment.Date = req.Date
	appointment.StartTime = req.StartTime
	appointment.EndTime = req.EndTime
	if err := s.repo.UpdateSchedule(ctx, appointment); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "appointment not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to reschedule appointment")
	}
	s.publish(ctx, models.EventAppointmentRescheduled, *appointment, "")
	return appointment, nil
}

// UpdateStatus applies a lifecycle transition.
func (s *AppointmentService) UpdateStatus(ctx context.Context, id string, req UpdateAppointmentStatusRequest) (*models.Appointment, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "appointment status")
	}
	appointment, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	next := models.AppointmentStatus(req.Status)
	if !CanTransition(appointment.Status, next) {
		return nil, appErrors.Clone(appErrors.ErrInvalidTransition, fmt.Sprintf("cannot move appointment from %s to %s", appointment.Status, next))
	}
	if err := s.repo.UpdateStatus(ctx, id, next); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "appointment not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update appointment status")
	}
	previous := appointment.Status
	appointment.Status = next
	appointment.UpdatedAt = s.now().UTC()
	s.publish(ctx, models.EventAppointmentStatusChanged, *appointment, previous)
	return appointment, nil
}

func (s *AppointmentService) publish(ctx context.Context, eventType models.AppointmentEventType, appointment models.Appointment, previous models.AppointmentStatus) {
	if s.publisher == nil {
		return
	}
	event := models.AppointmentEvent{
		ID:             uuid.NewString(),
		Type:           eventType,
		OccurredAt:     s.now().UTC(),
		Appointment:    appointment,
		PreviousStatus: previous,
	}
	err := s.publisher.Publish(ctx, event)
	s.metrics.RecordEvent(eventType, err)
	if err != nil {
		s.logger.Warn("failed to publish appointment event",
			zap.String("event_type", string(eventType)),
			zap.String("appointment_id", appointment.ID),
			zap.Error(err),
		)
	}
}

func ensureBookable(stylist *models.Stylist, facilityID string) error {
	if stylist.FacilityID != facilityID {
		return appErrors.Clone(appErrors.ErrPreconditionFailed, "stylist does not belong to this facility")
	}
	if !stylist.IsActive() {
		return appErrors.Clone(appErrors.ErrPreconditionFailed, fmt.Sprintf("stylist is %s", stylist.Status))
	}
	return nil
}

func unavailableError(check models.StylistAvailabilityCheck) error {
	message := appErrors.ErrStylistUnavailable.Message
	if check.Conflict.Reason != nil {
		message = *check.Conflict.Reason
	}
	cause := &models.AvailabilityError{Message: message, Check: check}
	return appErrors.WithDetails(
		appErrors.Wrap(cause, appErrors.ErrStylistUnavailable.Code, appErrors.ErrStylistUnavailable.Status, message),
		check,
	)
}

// reschedulable holds for appointments that have not started grooming yet.
func reschedulable(status models.AppointmentStatus) bool {
	return status == models.AppointmentScheduled || status == models.AppointmentCheckedIn
}
