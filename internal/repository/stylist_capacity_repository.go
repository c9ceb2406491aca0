package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/noah-isme/pawcare-grooming-api/internal/models"
)

const capacityColumns = "stylist_id, max_daily_appointments, preferred_pet_sizes, can_handle_matted, can_handle_anxious, can_handle_aggressive, skill_level, updated_at"

type capacityRow struct {
	StylistID            string         `db:"stylist_id"`
	MaxDailyAppointments int            `db:"max_daily_appointments"`
	PreferredPetSizes    pq.StringArray `db:"preferred_pet_sizes"`
	CanHandleMatted      bool           `db:"can_handle_matted"`
	CanHandleAnxious     bool           `db:"can_handle_anxious"`
	CanHandleAggressive  bool           `db:"can_handle_aggressive"`
	SkillLevel           string         `db:"skill_level"`
	UpdatedAt            time.Time      `db:"updated_at"`
}

func (row capacityRow) toModel() models.StylistCapacity {
	sizes := make([]models.PetSize, 0, len(row.PreferredPetSizes))
	for _, size := range row.PreferredPetSizes {
		sizes = append(sizes, models.PetSize(size))
	}
	return models.StylistCapacity{
		StylistID:            row.StylistID,
		MaxDailyAppointments: row.MaxDailyAppointments,
		PreferredPetSizes:    sizes,
		CanHandleMatted:      row.CanHandleMatted,
		CanHandleAnxious:     row.CanHandleAnxious,
		CanHandleAggressive:  row.CanHandleAggressive,
		SkillLevel:           models.SkillLevel(row.SkillLevel),
		UpdatedAt:            row.UpdatedAt,
	}
}

func capacityRowFrom(capacity models.StylistCapacity) capacityRow {
	sizes := make(pq.StringArray, 0, len(capacity.PreferredPetSizes))
	for _, size := range capacity.PreferredPetSizes {
		sizes = append(sizes, string(size))
	}
	return capacityRow{
		StylistID:            capacity.StylistID,
		MaxDailyAppointments: capacity.MaxDailyAppointments,
		PreferredPetSizes:    sizes,
		CanHandleMatted:      capacity.CanHandleMatted,
		CanHandleAnxious:     capacity.CanHandleAnxious,
		CanHandleAggressive:  capacity.CanHandleAggressive,
		SkillLevel:           string(capacity.SkillLevel),
		UpdatedAt:            capacity.UpdatedAt,
	}
}

// StylistCapacityRepository persists the workload and skill profile of stylists.
type StylistCapacityRepository struct {
	db *sqlx.DB
}

// NewStylistCapacityRepository constructs the repository.
func NewStylistCapacityRepository(db *sqlx.DB) *StylistCapacityRepository {
	return &StylistCapacityRepository{db: db}
}

// GetByStylist returns the capacity of a stylist or sql.ErrNoRows when none is stored.
func (r *StylistCapacityRepository) GetByStylist(ctx context.Context, stylistID string) (*models.StylistCapacity, error) {
	const query = `SELECT ` + capacityColumns + ` FROM stylist_capacities WHERE stylist_id = $1`
	var row capacityRow
	if err := r.db.GetContext(ctx, &row, query, stylistID); err != nil {
		return nil, err
	}
	capacity := row.toModel()
	return &capacity, nil
}

// ListByStylists returns stored capacities keyed by stylist id. Stylists without a row are absent.
func (r *StylistCapacityRepository) ListByStylists(ctx context.Context, stylistIDs []string) (map[string]models.StylistCapacity, error) {
	result := make(map[string]models.StylistCapacity, len(stylistIDs))
	if len(stylistIDs) == 0 {
		return result, nil
	}
	const query = `SELECT ` + capacityColumns + ` FROM stylist_capacities WHERE stylist_id = ANY($1)`
	var rows []capacityRow
	if err := r.db.SelectContext(ctx, &rows, query, pq.Array(stylistIDs)); err != nil {
		return nil, fmt.Errorf("list stylist capacities: %w", err)
	}
	for _, row := range rows {
		result[row.StylistID] = row.toModel()
	}
	return result, nil
}

// Upsert creates or replaces the capacity of a stylist.
func (r *StylistCapacityRepository) Upsert(ctx context.Context, capacity *models.StylistCapacity) error {
	capacity.UpdatedAt = time.Now().UTC()
	const query = `INSERT INTO stylist_capacities (` + capacityColumns + `)
		VALUES (:stylist_id, :max_daily_appointments, :preferred_pet_sizes, :can_handle_matted, :can_handle_anxious, :can_handle_aggressive, :skill_level, :updated_at)
		ON CONFLICT (stylist_id) DO UPDATE
		SET max_daily_appointments = EXCLUDED.max_daily_appointments,
		    preferred_pet_sizes = EXCLUDED.preferred_pet_sizes,
		    can_handle_matted = EXCLUDED.can_handle_matted,
		    can_handle_anxious = EXCLUDED.can_handle_anxious,
		    can_handle_aggressive = EXCLUDED.can_handle_aggressive,
		    skill_level = EXCLUDED.skill_level,
		    updated_at = EXCLUDED.updated_at`
	if _, err := r.db.NamedExecContext(ctx, query, capacityRowFrom(*capacity)); err != nil {
		return fmt.Errorf("upsert stylist capacity: %w", err)
	}
	return nil
}
