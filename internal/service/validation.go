package service

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/noah-isme/pawcare-grooming-api/internal/availability"
	"github.com/noah-isme/pawcare-grooming-api/internal/models"
	appErrors "github.com/noah-isme/pawcare-grooming-api/pkg/errors"
)

const dateLayout = "2006-01-02"

// NewValidator returns a validator that understands the clock and isodate tags.
func NewValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("clock", func(fl validator.FieldLevel) bool {
		return availability.ValidClock(fl.Field().String())
	})
	_ = v.RegisterValidation("isodate", func(fl validator.FieldLevel) bool {
		_, err := time.Parse(dateLayout, fl.Field().String())
		return err == nil
	})
	return v
}

// PetProfileRequest carries the pet attributes used for stylist matching.
type PetProfileRequest struct {
	PetSize       string `json:"pet_size" validate:"required,oneof=small medium large giant"`
	CoatCondition string `json:"coat_condition" validate:"omitempty,oneof=normal matted severely-matted"`
	IsAnxious     bool   `json:"is_anxious"`
	IsAggressive  bool   `json:"is_aggressive"`
}

func (r PetProfileRequest) profile() models.PetProfile {
	coat := models.CoatCondition(r.CoatCondition)
	if coat == "" {
		coat = models.CoatNormal
	}
	return models.PetProfile{
		Size:          models.PetSize(r.PetSize),
		CoatCondition: coat,
		IsAnxious:     r.IsAnxious,
		IsAggressive:  r.IsAggressive,
	}
}

func validationError(err error, payload string) error {
	return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, fmt.Sprintf("invalid %s payload", payload))
}

// ensureWindow rejects empty or inverted same-day windows.
func ensureWindow(start, end string) error {
	if availability.ToMinutes(end) <= availability.ToMinutes(start) {
		return appErrors.Clone(appErrors.ErrValidation, "end_time must be after start_time")
	}
	return nil
}
