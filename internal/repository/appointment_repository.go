package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/pawcare-grooming-api/internal/models"
)

const appointmentColumns = "id, facility_id, stylist_id, pet_name, pet_size, coat_condition, is_anxious, is_aggressive, date, start_time, end_time, status, notes, created_at, updated_at"

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// AppointmentRepository manages persistence for grooming appointments.
type AppointmentRepository struct {
	db *sqlx.DB
}

// NewAppointmentRepository constructs an AppointmentRepository.
func NewAppointmentRepository(db *sqlx.DB) *AppointmentRepository {
	return &AppointmentRepository{db: db}
}

// List returns appointments matching filters along with total count.
func (r *AppointmentRepository) List(ctx context.Context, filter models.AppointmentFilter) ([]models.Appointment, int, error) {
	var where []squirrel.Sqlizer
	if filter.FacilityID != "" {
		where = append(where, squirrel.Eq{"facility_id": filter.FacilityID})
	}
	if filter.StylistID != "" {
		where = append(where, squirrel.Eq{"stylist_id": filter.StylistID})
	}
	if filter.Date != "" {
		where = append(where, squirrel.Eq{"date": filter.Date})
	}
	if len(filter.Status) > 0 {
		statuses := make([]string, 0, len(filter.Status))
		for _, status := range filter.Status {
			statuses = append(statuses, string(status))
		}
		where = append(where, squirrel.Eq{"status": statuses})
	}

	allowedSorts := map[string]string{
		"date":       "date",
		"start_time": "start_time",
		"pet_name":   "pet_name",
		"status":     "status",
		"created_at": "created_at",
	}
	column, ok := allowedSorts[filter.SortBy]
	if !ok {
		column = "date"
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

	selectQ := psql.Select(appointmentColumns).From("appointments")
	countQ := psql.Select("COUNT(*)").From("appointments")
	for _, cond := range where {
		selectQ = selectQ.Where(cond)
		countQ = countQ.Where(cond)
	}
	selectQ = selectQ.
		OrderBy(fmt.Sprintf("%s %s", column, order), "start_time ASC").
		Limit(uint64(size)).
		Offset(uint64((page - 1) * size))

	query, args, err := selectQ.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build appointment list: %w", err)
	}
	var appointments []models.Appointment
	if err := r.db.SelectContext(ctx, &appointments, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list appointments: %w", err)
	}

	countSQL, countArgs, err := countQ.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build appointment count: %w", err)
	}
	var total int
	if err := r.db.GetContext(ctx, &total, countSQL, countArgs...); err != nil {
		return nil, 0, fmt.Errorf("count appointments: %w", err)
	}

	return appointments, total, nil
}

// ListByStylistAndDate returns every appointment of a stylist on a day, in start order.
func (r *AppointmentRepository) ListByStylistAndDate(ctx context.Context, stylistID, date string) ([]models.Appointment, error) {
	const query = `SELECT ` + appointmentColumns + ` FROM appointments WHERE stylist_id = $1 AND date = $2 ORDER BY start_time ASC`
	var appointments []models.Appointment
	if err := r.db.SelectContext(ctx, &appointments, query, stylistID, date); err != nil {
		return nil, fmt.Errorf("list stylist appointments: %w", err)
	}
	return appointments, nil
}

// ListByFacilityAndDate returns every appointment of a facility on a day.
func (r *AppointmentRepository) ListByFacilityAndDate(ctx context.Context, facilityID, date string) ([]models.Appointment, error) {
	const query = `SELECT ` + appointmentColumns + ` FROM appointments WHERE facility_id = $1 AND date = $2 ORDER BY stylist_id ASC, start_time ASC`
	var appointments []models.Appointment
	if err := r.db.SelectContext(ctx, &appointments, query, facilityID, date); err != nil {
		return nil, fmt.Errorf("list facility appointments: %w", err)
	}
	return appointments, nil
}

// FindByID fetches an appointment by ID.
func (r *AppointmentRepository) FindByID(ctx context.Context, id string) (*models.Appointment, error) {
	const query = `SELECT ` + appointmentColumns + ` FROM appointments WHERE id = $1`
	var appointment models.Appointment
	if err := r.db.GetContext(ctx, &appointment, query, id); err != nil {
		return nil, err
	}
	return &appointment, nil
}

// Create inserts a new appointment.
func (r *AppointmentRepository) Create(ctx context.Context, appointment *models.Appointment) error {
	if appointment.ID == "" {
		appointment.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if appointment.CreatedAt.IsZero() {
		appointment.CreatedAt = now
	}
	appointment.UpdatedAt = now

	const query = `INSERT INTO appointments (` + appointmentColumns + `)
		VALUES (:id, :facility_id, :stylist_id, :pet_name, :pet_size, :coat_condition, :is_anxious, :is_aggressive, :date, :start_time, :end_time, :status, :notes, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, appointment); err != nil {
		return fmt.Errorf("create appointment: %w", err)
	}
	return nil
}

// UpdateSchedule moves an appointment to another stylist, day or time window.
func (r *AppointmentRepository) UpdateSchedule(ctx context.Context, appointment *models.Appointment) error {
	appointment.UpdatedAt = time.Now().UTC()
	const query = `UPDATE appointments SET stylist_id = :stylist_id, date = :date, start_time = :start_time, end_time = :end_time, updated_at = :updated_at WHERE id = :id`
	res, err := r.db.NamedExecContext(ctx, query, appointment)
	if err != nil {
		return fmt.Errorf("reschedule appointment: %w", err)
	}
	return ensureAffected(res)
}

// UpdateStatus sets the lifecycle status of an appointment.
func (r *AppointmentRepository) UpdateStatus(ctx context.Context, id string, status models.AppointmentStatus) error {
	const query = `UPDATE appointments SET status = $2, updated_at = $3 WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, id, string(status), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("update appointment status: %w", err)
	}
	return ensureAffected(res)
}

func ensureAffected(res sql.Result) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
