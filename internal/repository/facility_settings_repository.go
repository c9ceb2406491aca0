package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/pawcare-grooming-api/internal/models"
)

// FacilitySettingsRepository persists per-facility scheduling overrides.
type FacilitySettingsRepository struct {
	db *sqlx.DB
}

// NewFacilitySettingsRepository constructs the repository.
func NewFacilitySettingsRepository(db *sqlx.DB) *FacilitySettingsRepository {
	return &FacilitySettingsRepository{db: db}
}

// Get returns the settings row of a facility or sql.ErrNoRows.
func (r *FacilitySettingsRepository) Get(ctx context.Context, facilityID string) (*models.FacilitySettings, error) {
	const query = `SELECT facility_id, allow_parallel, global_max_per_day, updated_at FROM facility_settings WHERE facility_id = $1`
	var settings models.FacilitySettings
	if err := r.db.GetContext(ctx, &settings, query, facilityID); err != nil {
		return nil, err
	}
	return &settings, nil
}

// Upsert creates or replaces the settings of a facility.
func (r *FacilitySettingsRepository) Upsert(ctx context.Context, settings *models.FacilitySettings) error {
	settings.UpdatedAt = time.Now().UTC()
	const query = `INSERT INTO facility_settings (facility_id, allow_parallel, global_max_per_day, updated_at)
		VALUES (:facility_id, :allow_parallel, :global_max_per_day, :updated_at)
		ON CONFLICT (facility_id) DO UPDATE
		SET allow_parallel = EXCLUDED.allow_parallel,
		    global_max_per_day = EXCLUDED.global_max_per_day,
		    updated_at = EXCLUDED.updated_at`
	if _, err := r.db.NamedExecContext(ctx, query, settings); err != nil {
		return fmt.Errorf("upsert facility settings: %w", err)
	}
	return nil
}
