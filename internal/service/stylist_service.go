package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/pawcare-grooming-api/internal/models"
	appErrors "github.com/noah-isme/pawcare-grooming-api/pkg/errors"
)

type stylistRepository interface {
	List(ctx context.Context, filter models.StylistFilter) ([]models.Stylist, int, error)
	ListByFacility(ctx context.Context, facilityID string, activeOnly bool) ([]models.Stylist, error)
	FindByID(ctx context.Context, id string) (*models.Stylist, error)
	Create(ctx context.Context, stylist *models.Stylist) error
	Update(ctx context.Context, stylist *models.Stylist) error
	Deactivate(ctx context.Context, id string) error
}

type stylistCapacityRepository interface {
	GetByStylist(ctx context.Context, stylistID string) (*models.StylistCapacity, error)
	ListByStylists(ctx context.Context, stylistIDs []string) (map[string]models.StylistCapacity, error)
	Upsert(ctx context.Context, capacity *models.StylistCapacity) error
}

// CreateStylistRequest represents payload for adding a stylist to a roster.
type CreateStylistRequest struct {
	Name   string  `json:"name" validate:"required,max=120"`
	Email  *string `json:"email" validate:"omitempty,email"`
	Rating float64 `json:"rating" validate:"gte=0,lte=5"`
}

// UpdateStylistRequest represents payload for updating a stylist.
type UpdateStylistRequest struct {
	Name   string  `json:"name" validate:"required,max=120"`
	Email  *string `json:"email" validate:"omitempty,email"`
	Rating float64 `json:"rating" validate:"gte=0,lte=5"`
	Status *string `json:"status" validate:"omitempty,oneof=active inactive on-leave"`
}

// UpsertCapacityRequest represents the capacity and skill profile of a stylist.
type UpsertCapacityRequest struct {
	MaxDailyAppointments int      `json:"max_daily_appointments" validate:"required,min=1"`
	PreferredPetSizes    []string `json:"preferred_pet_sizes" validate:"omitempty,dive,oneof=small medium large giant"`
	CanHandleMatted      bool     `json:"can_handle_matted"`
	CanHandleAnxious     bool     `json:"can_handle_anxious"`
	CanHandleAggressive  bool     `json:"can_handle_aggressive"`
	SkillLevel           string   `json:"skill_level" validate:"required,oneof=junior intermediate senior master"`
}

// StylistService manages the facility roster and stylist capacity profiles.
type StylistService struct {
	repo       stylistRepository
	capacities stylistCapacityRepository
	cache      *CacheService
	validator  *validator.Validate
	logger     *zap.Logger
}

// NewStylistService constructs a StylistService.
func NewStylistService(repo stylistRepository, capacities stylistCapacityRepository, cache *CacheService, validate *validator.Validate, logger *zap.Logger) *StylistService {
	if validate == nil {
		validate = NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StylistService{repo: repo, capacities: capacities, cache: cache, validator: validate, logger: logger}
}

// List returns stylists plus pagination data.
func (s *StylistService) List(ctx context.Context, filter models.StylistFilter) ([]models.Stylist, *models.Pagination, error) {
	stylists, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list stylists")
	}
	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 {
		size = 20
	}
	return stylists, &models.Pagination{Page: page, PageSize: size, TotalCount: total}, nil
}

// Get returns a stylist by id with the capacity profile attached when one exists.
func (s *StylistService) Get(ctx context.Context, id string) (*models.Stylist, error) {
	stylist, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	capacity, err := s.capacities.GetByStylist(ctx, id)
	switch {
	case err == nil:
		stylist.Capacity = capacity
	case errors.Is(err, sql.ErrNoRows):
	default:
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load stylist capacity")
	}
	return stylist, nil
}

// Create adds an active stylist to a facility roster.
func (s *StylistService) Create(ctx context.Context, facilityID string, req CreateStylistRequest) (*models.Stylist, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "stylist")
	}
	stylist := &models.Stylist{
		FacilityID: facilityID,
		Name:       strings.TrimSpace(req.Name),
		Email:      normalizeOptional(req.Email),
		Status:     models.StylistActive,
		Rating:     req.Rating,
	}
	if err := s.repo.Create(ctx, stylist); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create stylist")
	}
	s.invalidateRoster(ctx, facilityID)
	return stylist, nil
}

// Update modifies an existing stylist.
func (s *StylistService) Update(ctx context.Context, id string, req UpdateStylistRequest) (*models.Stylist, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "stylist")
	}
	stylist, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	stylist.Name = strings.TrimSpace(req.Name)
	stylist.Email = normalizeOptional(req.Email)
	stylist.Rating = req.Rating
	if req.Status != nil {
		stylist.Status = models.StylistStatus(*req.Status)
	}
	if err := s.repo.Update(ctx, stylist); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "stylist not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update stylist")
	}
	s.invalidateRoster(ctx, stylist.FacilityID)
	return stylist, nil
}

// Delete deactivates a stylist; history keeps referencing the row.
func (s *StylistService) Delete(ctx context.Context, id string) error {
	stylist, err := s.find(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Deactivate(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "stylist not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to deactivate stylist")
	}
	s.invalidateRoster(ctx, stylist.FacilityID)
	return nil
}

// GetCapacity returns the capacity profile of a stylist.
func (s *StylistService) GetCapacity(ctx context.Context, stylistID string) (*models.StylistCapacity, error) {
	if _, err := s.find(ctx, stylistID); err != nil {
		return nil, err
	}
	capacity, err := s.capacities.GetByStylist(ctx, stylistID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "stylist capacity not configured")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load stylist capacity")
	}
	return capacity, nil
}

// UpsertCapacity stores the capacity profile of a stylist.
func (s *StylistService) UpsertCapacity(ctx context.Context, stylistID string, req UpsertCapacityRequest) (*models.StylistCapacity, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "stylist capacity")
	}
	stylist, err := s.find(ctx, stylistID)
	if err != nil {
		return nil, err
	}
	sizes := make([]models.PetSize, 0, len(req.PreferredPetSizes))
	seen := make(map[string]struct{}, len(req.PreferredPetSizes))
	for _, size := range req.PreferredPetSizes {
		if _, dup := seen[size]; dup {
			continue
		}
		seen[size] = struct{}{}
		sizes = append(sizes, models.PetSize(size))
	}
	capacity := &models.StylistCapacity{
		StylistID:            stylistID,
		MaxDailyAppointments: req.MaxDailyAppointments,
		PreferredPetSizes:    sizes,
		CanHandleMatted:      req.CanHandleMatted,
		CanHandleAnxious:     req.CanHandleAnxious,
		CanHandleAggressive:  req.CanHandleAggressive,
		SkillLevel:           models.SkillLevel(req.SkillLevel),
	}
	if err := s.capacities.Upsert(ctx, capacity); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save stylist capacity")
	}
	s.invalidateRoster(ctx, stylist.FacilityID)
	return capacity, nil
}

func (s *StylistService) find(ctx context.Context, id string) (*models.Stylist, error) {
	stylist, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "stylist not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load stylist")
	}
	return stylist, nil
}

func (s *StylistService) invalidateRoster(ctx context.Context, facilityID string) {
	if err := s.cache.Invalidate(ctx, suitablePrefix(facilityID)); err != nil {
		s.logger.Warn("failed to invalidate roster cache", zap.String("facility_id", facilityID), zap.Error(err))
	}
}

func normalizeOptional(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
