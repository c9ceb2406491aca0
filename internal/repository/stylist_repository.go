package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/pawcare-grooming-api/internal/models"
)

const stylistColumns = "id, facility_id, name, email, status, rating, created_at, updated_at"

// StylistRepository manages persistence for the groomer roster.
type StylistRepository struct {
	db *sqlx.DB
}

// NewStylistRepository constructs a StylistRepository.
func NewStylistRepository(db *sqlx.DB) *StylistRepository {
	return &StylistRepository{db: db}
}

// List returns stylists matching filters along with total count.
func (r *StylistRepository) List(ctx context.Context, filter models.StylistFilter) ([]models.Stylist, int, error) {
	base := "FROM stylists WHERE 1=1"
	var conditions []string
	var args []interface{}

	if filter.FacilityID != "" {
		conditions = append(conditions, fmt.Sprintf("facility_id = $%d", len(args)+1))
		args = append(args, filter.FacilityID)
	}
	if filter.Status != "" {
		conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)+1))
		args = append(args, string(filter.Status))
	}
	if filter.Search != "" {
		search := "%" + strings.ToLower(filter.Search) + "%"
		conditions = append(conditions, fmt.Sprintf("(LOWER(name) LIKE $%d OR LOWER(COALESCE(email, '')) LIKE $%d)", len(args)+1, len(args)+1))
		args = append(args, search)
	}
	if len(conditions) > 0 {
		base += " AND " + strings.Join(conditions, " AND ")
	}

	allowedSorts := map[string]string{
		"name":       "name",
		"rating":     "rating",
		"created_at": "created_at",
	}
	column, ok := allowedSorts[filter.SortBy]
	if !ok {
		column = "name"
	}
	order := strings.ToUpper(filter.SortOrder)
	if order != "ASC" && order != "DESC" {
		order = "ASC"
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 || size > 100 {
		size = 20
	}
	offset := (page - 1) * size

	query := fmt.Sprintf("SELECT %s %s ORDER BY %s %s LIMIT %d OFFSET %d", stylistColumns, base, column, order, size, offset)
	var stylists []models.Stylist
	if err := r.db.SelectContext(ctx, &stylists, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list stylists: %w", err)
	}

	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) "+base, args...); err != nil {
		return nil, 0, fmt.Errorf("count stylists: %w", err)
	}
	return stylists, total, nil
}

// ListByFacility returns the roster of a facility, optionally only active stylists.
func (r *StylistRepository) ListByFacility(ctx context.Context, facilityID string, activeOnly bool) ([]models.Stylist, error) {
	query := "SELECT " + stylistColumns + " FROM stylists WHERE facility_id = $1"
	args := []interface{}{facilityID}
	if activeOnly {
		query += " AND status = $2"
		args = append(args, string(models.StylistActive))
	}
	query += " ORDER BY name ASC"

	var stylists []models.Stylist
	if err := r.db.SelectContext(ctx, &stylists, query, args...); err != nil {
		return nil, fmt.Errorf("list facility stylists: %w", err)
	}
	return stylists, nil
}

// FindByID fetches a stylist by ID.
func (r *StylistRepository) FindByID(ctx context.Context, id string) (*models.Stylist, error) {
	const query = `SELECT ` + stylistColumns + ` FROM stylists WHERE id = $1`
	var stylist models.Stylist
	if err := r.db.GetContext(ctx, &stylist, query, id); err != nil {
		return nil, err
	}
	return &stylist, nil
}

// Create inserts a new stylist.
func (r *StylistRepository) Create(ctx context.Context, stylist *models.Stylist) error {
	if stylist.ID == "" {
		stylist.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if stylist.CreatedAt.IsZero() {
		stylist.CreatedAt = now
	}
	stylist.UpdatedAt = now

	const query = `INSERT INTO stylists (` + stylistColumns + `)
		VALUES (:id, :facility_id, :name, :email, :status, :rating, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, stylist); err != nil {
		return fmt.Errorf("create stylist: %w", err)
	}
	return nil
}

// Update modifies an existing stylist.
func (r *StylistRepository) Update(ctx context.Context, stylist *models.Stylist) error {
	stylist.UpdatedAt = time.Now().UTC()
	const query = `UPDATE stylists SET name = :name, email = :email, status = :status, rating = :rating, updated_at = :updated_at WHERE id = :id`
	res, err := r.db.NamedExecContext(ctx, query, stylist)
	if err != nil {
		return fmt.Errorf("update stylist: %w", err)
	}
	return ensureAffected(res)
}

// Deactivate marks a stylist inactive so the engine skips them.
func (r *StylistRepository) Deactivate(ctx context.Context, id string) error {
	const query = `UPDATE stylists SET status = $2, updated_at = $3 WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, id, string(models.StylistInactive), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("deactivate stylist: %w", err)
	}
	return ensureAffected(res)
}
