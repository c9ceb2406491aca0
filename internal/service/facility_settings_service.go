package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/pawcare-grooming-api/internal/models"
	"github.com/noah-isme/pawcare-grooming-api/pkg/config"
	appErrors "github.com/noah-isme/pawcare-grooming-api/pkg/errors"
)

type facilitySettingsRepository interface {
	Get(ctx context.Context, facilityID string) (*models.FacilitySettings, error)
	Upsert(ctx context.Context, settings *models.FacilitySettings) error
}

// settingsProvider resolves the effective scheduling knobs of a facility.
type settingsProvider interface {
	Get(ctx context.Context, facilityID string) (*models.FacilitySettings, error)
}

// UpdateFacilitySettingsRequest carries a partial settings update.
type UpdateFacilitySettingsRequest struct {
	AllowParallel   *bool `json:"allow_parallel"`
	GlobalMaxPerDay *int  `json:"global_max_per_day" validate:"omitempty,min=0"`
}

// FacilitySettingsService reads and stores per-facility scheduling overrides.
type FacilitySettingsService struct {
	repo      facilitySettingsRepository
	defaults  config.AvailabilityConfig
	validator *validator.Validate
	logger    *zap.Logger
}

// NewFacilitySettingsService constructs a FacilitySettingsService.
func NewFacilitySettingsService(repo facilitySettingsRepository, defaults config.AvailabilityConfig, validate *validator.Validate, logger *zap.Logger) *FacilitySettingsService {
	if validate == nil {
		validate = NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FacilitySettingsService{repo: repo, defaults: defaults, validator: validate, logger: logger}
}

// Get returns the stored settings, falling back to configured defaults when none exist.
func (s *FacilitySettingsService) Get(ctx context.Context, facilityID string) (*models.FacilitySettings, error) {
	settings, err := s.repo.Get(ctx, facilityID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return s.fallback(facilityID), nil
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load facility settings")
	}
	return settings, nil
}

// Upsert applies the provided fields on top of the current settings.
func (s *FacilitySettingsService) Upsert(ctx context.Context, facilityID string, req UpdateFacilitySettingsRequest) (*models.FacilitySettings, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "facility settings")
	}
	current, err := s.Get(ctx, facilityID)
	if err != nil {
		return nil, err
	}
	if req.AllowParallel != nil {
		current.AllowParallel = *req.AllowParallel
	}
	if req.GlobalMaxPerDay != nil {
		current.GlobalMaxPerDay = *req.GlobalMaxPerDay
	}
	if err := s.repo.Upsert(ctx, current); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save facility settings")
	}
	s.logger.Info("facility settings updated",
		zap.String("facility_id", facilityID),
		zap.Bool("allow_parallel", current.AllowParallel),
		zap.Int("global_max_per_day", current.GlobalMaxPerDay),
	)
	return current, nil
}

func (s *FacilitySettingsService) fallback(facilityID string) *models.FacilitySettings {
	return &models.FacilitySettings{
		FacilityID:      facilityID,
		AllowParallel:   s.defaults.AllowParallel,
		GlobalMaxPerDay: s.defaults.GlobalMaxPerDay,
	}
}
