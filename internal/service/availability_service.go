package service

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/noah-isme/pawcare-grooming-api/internal/availability"
	"github.com/noah-isme/pawcare-grooming-api/internal/models"
	"github.com/noah-isme/pawcare-grooming-api/pkg/config"
	appErrors "github.com/noah-isme/pawcare-grooming-api/pkg/errors"
	"github.com/noah-isme/pawcare-grooming-api/pkg/tracing"
)

type appointmentReader interface {
	ListByStylistAndDate(ctx context.Context, stylistID, date string) ([]models.Appointment, error)
	ListByFacilityAndDate(ctx context.Context, facilityID, date string) ([]models.Appointment, error)
}

// CheckStylistRequest asks whether one stylist can take a pet in a slot.
type CheckStylistRequest struct {
	StylistID            string            `json:"stylist_id" validate:"required,uuid"`
	Date                 string            `json:"date" validate:"required,isodate"`
	StartTime            string            `json:"start_time" validate:"required,clock"`
	EndTime              string            `json:"end_time" validate:"required,clock"`
	ExcludeAppointmentID string            `json:"exclude_appointment_id" validate:"omitempty,uuid"`
	Pet                  PetProfileRequest `json:"pet"`
}

// RosterAvailabilityRequest asks which stylists of a facility can take a pet in a slot.
type RosterAvailabilityRequest struct {
	FacilityID           string            `json:"facility_id" validate:"required"`
	Date                 string            `json:"date" validate:"required,isodate"`
	StartTime            string            `json:"start_time" validate:"required,clock"`
	EndTime              string            `json:"end_time" validate:"required,clock"`
	ExcludeAppointmentID string            `json:"exclude_appointment_id" validate:"omitempty,uuid"`
	Pet                  PetProfileRequest `json:"pet"`
}

// SuitableStylistsRequest asks which stylists of a facility are qualified for a pet.
type SuitableStylistsRequest struct {
	FacilityID string            `json:"facility_id" validate:"required"`
	Pet        PetProfileRequest `json:"pet"`
}

// OpenSlotsRequest asks for the start times a stylist could still take on a day.
type OpenSlotsRequest struct {
	StylistID       string            `json:"stylist_id" validate:"required,uuid"`
	Date            string            `json:"date" validate:"required,isodate"`
	Open            string            `json:"open" validate:"omitempty,clock"`
	Close           string            `json:"close" validate:"omitempty,clock"`
	DurationMinutes int               `json:"duration_minutes" validate:"required,min=5,max=720"`
	StepMinutes     int               `json:"step_minutes" validate:"omitempty,min=5,max=240"`
	Pet             PetProfileRequest `json:"pet"`
}

// AvailabilityService feeds stored rosters and bookings into the availability engine.
type AvailabilityService struct {
	stylists     stylistRepository
	capacities   stylistCapacityRepository
	appointments appointmentReader
	settings     settingsProvider
	cache        *CacheService
	metrics      *MetricsService
	defaults     config.AvailabilityConfig
	suitableTTL  time.Duration
	validator    *validator.Validate
	logger       *zap.Logger
	tracer       trace.Tracer
}

// AvailabilityServiceConfig groups the collaborators of AvailabilityService.
type AvailabilityServiceConfig struct {
	Stylists     stylistRepository
	Capacities   stylistCapacityRepository
	Appointments appointmentReader
	Settings     settingsProvider
	Cache        *CacheService
	Metrics      *MetricsService
	Defaults     config.AvailabilityConfig
	SuitableTTL  time.Duration
	Validator    *validator.Validate
	Logger       *zap.Logger
}

// NewAvailabilityService constructs an AvailabilityService.
func NewAvailabilityService(cfg AvailabilityServiceConfig) *AvailabilityService {
	if cfg.Validator == nil {
		cfg.Validator = NewValidator()
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.Defaults.OpenTime == "" {
		cfg.Defaults.OpenTime = "08:00"
	}
	if cfg.Defaults.CloseTime == "" {
		cfg.Defaults.CloseTime = "18:00"
	}
	if cfg.Defaults.SlotStep <= 0 {
		cfg.Defaults.SlotStep = 30 * time.Minute
	}
	return &AvailabilityService{
		stylists:     cfg.Stylists,
		capacities:   cfg.Capacities,
		appointments: cfg.Appointments,
		settings:     cfg.Settings,
		cache:        cfg.Cache,
		metrics:      cfg.Metrics,
		defaults:     cfg.Defaults,
		suitableTTL:  cfg.SuitableTTL,
		validator:    cfg.Validator,
		logger:       cfg.Logger,
		tracer:       tracing.Tracer(),
	}
}

// CheckStylist returns the composite verdict for one stylist and slot.
func (s *AvailabilityService) CheckStylist(ctx context.Context, req CheckStylistRequest) (*models.StylistAvailabilityCheck, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "availability check")
	}
	if err := ensureWindow(req.StartTime, req.EndTime); err != nil {
		return nil, err
	}
	slot := models.Slot{Date: req.Date, StartTime: req.StartTime, EndTime: req.EndTime}
	_, check, err := s.Verify(ctx, req.StylistID, slot, req.Pet.profile(), req.ExcludeAppointmentID)
	if err != nil {
		return nil, err
	}
	return &check, nil
}

// Verify loads everything a single-stylist check needs and runs it.
// The stylist is returned so callers can apply their own preconditions.
func (s *AvailabilityService) Verify(ctx context.Context, stylistID string, slot models.Slot, pet models.PetProfile, excludeID string) (*models.Stylist, models.StylistAvailabilityCheck, error) {
	ctx, span := s.tracer.Start(ctx, "availability.verify", trace.WithAttributes(
		attribute.String("stylist.id", stylistID),
		attribute.String("slot.date", slot.Date),
		attribute.String("slot.start", slot.StartTime),
		attribute.String("slot.end", slot.EndTime),
	))
	defer span.End()

	stylist, err := s.loadStylist(ctx, stylistID)
	if err != nil {
		return nil, models.StylistAvailabilityCheck{}, s.fail(span, err)
	}
	settings, err := s.settings.Get(ctx, stylist.FacilityID)
	if err != nil {
		return nil, models.StylistAvailabilityCheck{}, s.fail(span, err)
	}
	appointments, err := s.dayForStylist(ctx, stylistID, slot.Date)
	if err != nil {
		return nil, models.StylistAvailabilityCheck{}, s.fail(span, err)
	}

	check := availability.CheckAvailability(*stylist, slot, pet, appointments, engineOptions(settings, excludeID))
	s.metrics.RecordAvailability(check)
	span.SetAttributes(
		attribute.Bool("availability.available", check.IsAvailable),
		attribute.Int("availability.conflicts", len(check.Conflict.Conflicts)),
	)
	if !check.IsAvailable {
		s.logger.Debug("stylist unavailable",
			zap.String("stylist_id", stylistID),
			zap.String("date", slot.Date),
			zap.String("start_time", slot.StartTime),
			zap.String("end_time", slot.EndTime),
			zap.Stringp("reason", check.Conflict.Reason),
		)
	}
	return stylist, check, nil
}

// AvailableStylists returns the facility stylists able to take the slot, best ranked first.
func (s *AvailabilityService) AvailableStylists(ctx context.Context, req RosterAvailabilityRequest) ([]models.StylistMatch, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "roster availability")
	}
	if err := ensureWindow(req.StartTime, req.EndTime); err != nil {
		return nil, err
	}
	ctx, span := s.tracer.Start(ctx, "availability.roster", trace.WithAttributes(
		attribute.String("facility.id", req.FacilityID),
		attribute.String("slot.date", req.Date),
	))
	defer span.End()

	roster, err := s.loadRoster(ctx, req.FacilityID)
	if err != nil {
		return nil, s.fail(span, err)
	}
	settings, err := s.settings.Get(ctx, req.FacilityID)
	if err != nil {
		return nil, s.fail(span, err)
	}
	appointments, err := s.dayForFacility(ctx, req.FacilityID, req.Date)
	if err != nil {
		return nil, s.fail(span, err)
	}

	slot := models.Slot{Date: req.Date, StartTime: req.StartTime, EndTime: req.EndTime}
	matches := availability.FilterAvailable(roster, slot, req.Pet.profile(), appointments, engineOptions(settings, req.ExcludeAppointmentID))
	for _, match := range matches {
		s.metrics.RecordAvailability(match.Availability)
	}
	span.SetAttributes(attribute.Int("roster.size", len(roster)), attribute.Int("roster.available", len(matches)))
	if matches == nil {
		matches = []models.StylistMatch{}
	}
	return matches, nil
}

// SuitableStylists returns the qualified stylists for a pet and whether the result came from cache.
func (s *AvailabilityService) SuitableStylists(ctx context.Context, req SuitableStylistsRequest) ([]models.Stylist, bool, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, false, validationError(err, "suitable stylists")
	}
	pet := req.Pet.profile()
	key := suitableKey(req.FacilityID, pet)

	var cached []models.Stylist
	if s.cache.Get(ctx, key, &cached) {
		return cached, true, nil
	}

	ctx, span := s.tracer.Start(ctx, "availability.suitable", trace.WithAttributes(
		attribute.String("facility.id", req.FacilityID),
		attribute.String("pet.size", string(pet.Size)),
	))
	defer span.End()

	roster, err := s.loadRoster(ctx, req.FacilityID)
	if err != nil {
		return nil, false, s.fail(span, err)
	}
	suitable := availability.SuitableStylists(roster, pet)
	if suitable == nil {
		suitable = []models.Stylist{}
	}
	s.cache.Set(ctx, key, suitable, s.suitableTTL)
	return suitable, false, nil
}

// OpenSlots lists the start times a stylist could still take for the pet on a day.
func (s *AvailabilityService) OpenSlots(ctx context.Context, req OpenSlotsRequest) (*models.OpenSlots, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "open slots")
	}
	window := availability.Window{
		Open:     s.defaults.OpenTime,
		Close:    s.defaults.CloseTime,
		Duration: time.Duration(req.DurationMinutes) * time.Minute,
		Step:     s.defaults.SlotStep,
	}
	if req.Open != "" {
		window.Open = req.Open
	}
	if req.Close != "" {
		window.Close = req.Close
	}
	if req.StepMinutes > 0 {
		window.Step = time.Duration(req.StepMinutes) * time.Minute
	}
	if err := ensureWindow(window.Open, window.Close); err != nil {
		return nil, err
	}

	ctx, span := s.tracer.Start(ctx, "availability.open_slots", trace.WithAttributes(
		attribute.String("stylist.id", req.StylistID),
		attribute.String("slot.date", req.Date),
	))
	defer span.End()

	stylist, err := s.loadStylist(ctx, req.StylistID)
	if err != nil {
		return nil, s.fail(span, err)
	}
	settings, err := s.settings.Get(ctx, stylist.FacilityID)
	if err != nil {
		return nil, s.fail(span, err)
	}
	appointments, err := s.dayForStylist(ctx, req.StylistID, req.Date)
	if err != nil {
		return nil, s.fail(span, err)
	}

	slots := availability.OpenSlots(*stylist, req.Date, window, req.Pet.profile(), appointments, engineOptions(settings, ""))
	if slots == nil {
		slots = []string{}
	}
	return &models.OpenSlots{
		StylistID:       req.StylistID,
		Date:            req.Date,
		DurationMinutes: req.DurationMinutes,
		Slots:           slots,
	}, nil
}

func (s *AvailabilityService) loadStylist(ctx context.Context, id string) (*models.Stylist, error) {
	stylist, err := s.stylists.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "stylist not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load stylist")
	}
	capacity, err := s.capacities.GetByStylist(ctx, id)
	switch {
	case err == nil:
		stylist.Capacity = capacity
	case errors.Is(err, sql.ErrNoRows):
		// left nil; the engine reports the missing configuration
	default:
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load stylist capacity")
	}
	return stylist, nil
}

// loadRoster returns the active stylists of a facility with capacities attached.
func (s *AvailabilityService) loadRoster(ctx context.Context, facilityID string) ([]models.Stylist, error) {
	start := time.Now()
	stylists, err := s.stylists.ListByFacility(ctx, facilityID, true)
	s.metrics.ObserveDBQuery("stylists.by_facility", time.Since(start))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load roster")
	}
	if len(stylists) == 0 {
		return stylists, nil
	}

	ids := make([]string, len(stylists))
	for i, stylist := range stylists {
		ids[i] = stylist.ID
	}
	start = time.Now()
	capacities, err := s.capacities.ListByStylists(ctx, ids)
	s.metrics.ObserveDBQuery("stylist_capacities.by_stylists", time.Since(start))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load stylist capacities")
	}
	for i := range stylists {
		if capacity, ok := capacities[stylists[i].ID]; ok {
			c := capacity
			stylists[i].Capacity = &c
		}
	}
	return stylists, nil
}

func (s *AvailabilityService) dayForStylist(ctx context.Context, stylistID, date string) ([]models.Appointment, error) {
	start := time.Now()
	appointments, err := s.appointments.ListByStylistAndDate(ctx, stylistID, date)
	s.metrics.ObserveDBQuery("appointments.by_stylist_date", time.Since(start))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load appointments")
	}
	return appointments, nil
}

func (s *AvailabilityService) dayForFacility(ctx context.Context, facilityID, date string) ([]models.Appointment, error) {
	start := time.Now()
	appointments, err := s.appointments.ListByFacilityAndDate(ctx, facilityID, date)
	s.metrics.ObserveDBQuery("appointments.by_facility_date", time.Since(start))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load appointments")
	}
	return appointments, nil
}

func (s *AvailabilityService) fail(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return err
}

func engineOptions(settings *models.FacilitySettings, excludeID string) availability.Options {
	opts := availability.Options{ExcludeID: excludeID}
	if settings != nil {
		opts.AllowParallel = settings.AllowParallel
		opts.GlobalMaxPerDay = settings.GlobalMaxPerDay
	}
	return opts
}

func suitablePrefix(facilityID string) string {
	return CacheKey("suitable", facilityID) + ":"
}

func suitableKey(facilityID string, pet models.PetProfile) string {
	return CacheKey("suitable", facilityID, string(pet.Size), string(pet.CoatCondition),
		strconv.FormatBool(pet.IsAnxious), strconv.FormatBool(pet.IsAggressive))
}
