package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/pawcare-grooming-api/internal/models"
)

var appointmentRowColumns = []string{"id", "facility_id", "stylist_id", "pet_name", "pet_size", "coat_condition", "is_anxious", "is_aggressive", "date", "start_time", "end_time", "status", "notes", "created_at", "updated_at"}

func TestAppointmentRepositoryList(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewAppointmentRepository(db)

	now := time.Now()
	rows := sqlmock.NewRows(appointmentRowColumns).
		AddRow("a1", "fac-1", "s1", "Bella", "small", "normal", false, false, "2025-06-01", "09:00", "10:00", "scheduled", nil, now, now)
	mock.ExpectQuery(`SELECT id, facility_id, (.+) FROM appointments WHERE facility_id = \$1 AND date = \$2 AND status IN \(\$3,\$4\) ORDER BY start_time DESC, start_time ASC LIMIT 20 OFFSET 0`).
		WithArgs("fac-1", "2025-06-01", "scheduled", "checked-in").
		WillReturnRows(rows)
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM appointments WHERE facility_id = \$1 AND date = \$2 AND status IN \(\$3,\$4\)`).
		WithArgs("fac-1", "2025-06-01", "scheduled", "checked-in").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	list, total, err := repo.List(context.Background(), models.AppointmentFilter{
		FacilityID: "fac-1",
		Date:       "2025-06-01",
		Status:     []models.AppointmentStatus{models.AppointmentScheduled, models.AppointmentCheckedIn},
		SortBy:     "start_time",
		SortOrder:  "desc",
	})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, models.PetSmall, list[0].PetSize)
	assert.Equal(t, models.AppointmentScheduled, list[0].Status)
	assert.Equal(t, 1, total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAppointmentRepositoryListByStylistAndDate(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewAppointmentRepository(db)

	now := time.Now()
	rows := sqlmock.NewRows(appointmentRowColumns).
		AddRow("a1", "fac-1", "s1", "Bella", "small", "matted", true, false, "2025-06-01", "09:00", "10:00", "in-progress", "brush only", now, now).
		AddRow("a2", "fac-1", "s1", "Rex", "large", "normal", false, true, "2025-06-01", "14:00", "15:00", "scheduled", nil, now, now)
	mock.ExpectQuery(regexp.QuoteMeta("FROM appointments WHERE stylist_id = $1 AND date = $2 ORDER BY start_time ASC")).
		WithArgs("s1", "2025-06-01").
		WillReturnRows(rows)

	list, err := repo.ListByStylistAndDate(context.Background(), "s1", "2025-06-01")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, models.CoatMatted, list[0].CoatCondition)
	require.NotNil(t, list[0].Notes)
	assert.Equal(t, "brush only", *list[0].Notes)
	assert.True(t, list[1].IsAggressive)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAppointmentRepositoryCreate(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewAppointmentRepository(db)

	mock.ExpectExec("INSERT INTO appointments").
		WithArgs(sqlmock.AnyArg(), "fac-1", "s1", "Bella", "small", "normal", false, false, "2025-06-01", "09:00", "10:00", "scheduled", nil, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	appointment := &models.Appointment{
		FacilityID:    "fac-1",
		StylistID:     "s1",
		PetName:       "Bella",
		PetSize:       models.PetSmall,
		CoatCondition: models.CoatNormal,
		Date:          "2025-06-01",
		StartTime:     "09:00",
		EndTime:       "10:00",
		Status:        models.AppointmentScheduled,
	}
	require.NoError(t, repo.Create(context.Background(), appointment))
	assert.NotEmpty(t, appointment.ID)
	assert.False(t, appointment.CreatedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAppointmentRepositoryUpdateStatusNotFound(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewAppointmentRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE appointments SET status = $2")).
		WithArgs("missing", "checked-in", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateStatus(context.Background(), "missing", models.AppointmentCheckedIn)
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAppointmentRepositoryUpdateSchedule(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewAppointmentRepository(db)

	mock.ExpectExec("UPDATE appointments SET stylist_id").
		WithArgs("s2", "2025-06-02", "11:00", "12:00", sqlmock.AnyArg(), "a1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.UpdateSchedule(context.Background(), &models.Appointment{ID: "a1", StylistID: "s2", Date: "2025-06-02", StartTime: "11:00", EndTime: "12:00"})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
