package service

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/pawcare-grooming-api/internal/models"
	appErrors "github.com/noah-isme/pawcare-grooming-api/pkg/errors"
)

type recordingPublisher struct {
	events []models.AppointmentEvent
	err    error
}

func (p *recordingPublisher) Publish(ctx context.Context, event models.AppointmentEvent) error {
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, event)
	return nil
}

func newAppointmentFixture() (*availabilityFixture, *recordingPublisher, *AppointmentService) {
	f := newAvailabilityFixture()
	publisher := &recordingPublisher{}
	svc := NewAppointmentService(f.appointments, f.service, publisher, f.metrics, nil, zap.NewNop())
	return f, publisher, svc
}

func bookRequest() BookAppointmentRequest {
	return BookAppointmentRequest{
		FacilityID: "fac-1",
		StylistID:  styAna,
		PetName:    " Biscuit ",
		Pet:        PetProfileRequest{PetSize: "medium", IsAnxious: true},
		Date:       "2024-05-01",
		StartTime:  "10:00",
		EndTime:    "11:00",
	}
}

func TestAppointmentServiceBook(t *testing.T) {
	f, publisher, svc := newAppointmentFixture()

	appt, err := svc.Book(context.Background(), bookRequest())
	require.NoError(t, err)
	assert.Equal(t, "Biscuit", appt.PetName)
	assert.Equal(t, models.AppointmentScheduled, appt.Status)
	assert.Equal(t, models.CoatNormal, appt.CoatCondition)
	assert.True(t, appt.IsAnxious)
	assert.Contains(t, f.appointments.items, appt.ID)

	require.Len(t, publisher.events, 1)
	assert.Equal(t, models.EventAppointmentBooked, publisher.events[0].Type)
	assert.Equal(t, appt.ID, publisher.events[0].Appointment.ID)
	assert.NotEmpty(t, publisher.events[0].ID)
}

func TestAppointmentServiceBookUnavailable(t *testing.T) {
	f, publisher, svc := newAppointmentFixture()
	req := bookRequest()
	req.StartTime = "09:30"
	req.EndTime = "10:30"

	_, err := svc.Book(context.Background(), req)
	require.Error(t, err)

	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrStylistUnavailable.Code, appErr.Code)
	assert.Equal(t, http.StatusConflict, appErr.Status)
	assert.Equal(t, "Overlaps with 1 existing appointment(s)", appErr.Message)

	var availabilityErr *models.AvailabilityError
	require.True(t, errors.As(err, &availabilityErr))
	assert.False(t, availabilityErr.Check.IsAvailable)
	check, ok := appErr.Details.(models.StylistAvailabilityCheck)
	require.True(t, ok)
	assert.Equal(t, styAna, check.StylistID)

	assert.Len(t, f.appointments.items, 2)
	assert.Empty(t, publisher.events)
}

func TestAppointmentServiceBookScheduledDoesNotBlock(t *testing.T) {
	_, _, svc := newAppointmentFixture()
	req := bookRequest()
	req.StylistID = styBen
	req.Pet = PetProfileRequest{PetSize: "medium"}
	req.StartTime = "13:00"
	req.EndTime = "14:00"

	appt, err := svc.Book(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, styBen, appt.StylistID)

	// ben now holds two bookings, which is his daily ceiling
	req.StartTime = "15:00"
	req.EndTime = "16:00"
	req.PetName = "Pip"
	_, err = svc.Book(context.Background(), req)
	require.Error(t, err)
	assert.Equal(t, "Daily capacity exceeded", appErrors.FromError(err).Message)
}

func TestAppointmentServiceBookPreconditions(t *testing.T) {
	f, _, svc := newAppointmentFixture()
	f.stylists.items[styOther] = &models.Stylist{ID: styOther, FacilityID: "fac-2", Status: models.StylistActive}
	f.capacities.items[styOther] = models.StylistCapacity{StylistID: styOther, MaxDailyAppointments: 3}

	req := bookRequest()
	req.StylistID = styOther
	_, err := svc.Book(context.Background(), req)
	require.Error(t, err)
	assert.Equal(t, http.StatusPreconditionFailed, appErrors.FromError(err).Status)

	req = bookRequest()
	req.StylistID = styCara
	_, err = svc.Book(context.Background(), req)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrPreconditionFailed.Code, appErrors.FromError(err).Code)
}

func TestAppointmentServiceBookValidation(t *testing.T) {
	_, _, svc := newAppointmentFixture()
	req := bookRequest()
	req.Date = "01/05/2024"

	_, err := svc.Book(context.Background(), req)
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, appErrors.FromError(err).Status)
}

func TestAppointmentServiceReschedule(t *testing.T) {
	f, publisher, svc := newAppointmentFixture()
	f.appointments.items["appt-3"] = &models.Appointment{
		ID: "appt-3", FacilityID: "fac-1", StylistID: styAna, PetName: "Luna", PetSize: models.PetSmall,
		Date: "2024-05-01", StartTime: "11:00", EndTime: "12:00", Status: models.AppointmentCheckedIn,
	}

	// moving within its own window only overlaps itself
	appt, err := svc.Reschedule(context.Background(), "appt-3", RescheduleAppointmentRequest{
		Date: "2024-05-01", StartTime: "11:30", EndTime: "12:30",
	})
	require.NoError(t, err)
	assert.Equal(t, "11:30", appt.StartTime)
	assert.Equal(t, styAna, appt.StylistID)
	assert.Equal(t, "11:30", f.appointments.items["appt-3"].StartTime)
	require.Len(t, publisher.events, 1)
	assert.Equal(t, models.EventAppointmentRescheduled, publisher.events[0].Type)

	_, err = svc.Reschedule(context.Background(), "appt-3", RescheduleAppointmentRequest{
		Date: "2024-05-01", StartTime: "09:30", EndTime: "10:30",
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrStylistUnavailable.Code, appErrors.FromError(err).Code)
}

func TestAppointmentServiceRescheduleFinished(t *testing.T) {
	f, _, svc := newAppointmentFixture()
	f.appointments.items["appt-done"] = &models.Appointment{
		ID: "appt-done", FacilityID: "fac-1", StylistID: styAna, Date: "2024-05-01",
		StartTime: "15:00", EndTime: "16:00", Status: models.AppointmentCompleted,
	}

	_, err := svc.Reschedule(context.Background(), "appt-done", RescheduleAppointmentRequest{
		Date: "2024-05-02", StartTime: "10:00", EndTime: "11:00",
	})
	require.Error(t, err)
	assert.Equal(t, http.StatusPreconditionFailed, appErrors.FromError(err).Status)

	_, err = svc.Reschedule(context.Background(), "missing", RescheduleAppointmentRequest{
		Date: "2024-05-02", StartTime: "10:00", EndTime: "11:00",
	})
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, appErrors.FromError(err).Status)
}

func TestAppointmentServiceUpdateStatus(t *testing.T) {
	f, publisher, svc := newAppointmentFixture()

	appt, err := svc.UpdateStatus(context.Background(), "appt-2", UpdateAppointmentStatusRequest{Status: "checked-in"})
	require.NoError(t, err)
	assert.Equal(t, models.AppointmentCheckedIn, appt.Status)
	assert.Equal(t, models.AppointmentCheckedIn, f.appointments.items["appt-2"].Status)
	require.Len(t, publisher.events, 1)
	assert.Equal(t, models.EventAppointmentStatusChanged, publisher.events[0].Type)
	assert.Equal(t, models.AppointmentScheduled, publisher.events[0].PreviousStatus)

	_, err = svc.UpdateStatus(context.Background(), "appt-2", UpdateAppointmentStatusRequest{Status: "completed"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInvalidTransition.Code, appErrors.FromError(err).Code)

	_, err = svc.UpdateStatus(context.Background(), "appt-2", UpdateAppointmentStatusRequest{Status: "sleeping"})
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, appErrors.FromError(err).Status)
}

func TestAppointmentServicePublishFailureDoesNotFailRequest(t *testing.T) {
	_, publisher, svc := newAppointmentFixture()
	publisher.err = errors.New("broker down")

	appt, err := svc.Book(context.Background(), bookRequest())
	require.NoError(t, err)
	assert.NotEmpty(t, appt.ID)
}

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from, to models.AppointmentStatus
		want     bool
	}{
		{models.AppointmentScheduled, models.AppointmentCheckedIn, true},
		{models.AppointmentScheduled, models.AppointmentNoShow, true},
		{models.AppointmentScheduled, models.AppointmentInProgress, false},
		{models.AppointmentCheckedIn, models.AppointmentCancelled, true},
		{models.AppointmentInProgress, models.AppointmentReadyForPickup, true},
		{models.AppointmentReadyForPickup, models.AppointmentCompleted, true},
		{models.AppointmentCompleted, models.AppointmentScheduled, false},
		{models.AppointmentCancelled, models.AppointmentScheduled, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, CanTransition(tc.from, tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestAppointmentServiceListRejectsUnknownStatus(t *testing.T) {
	_, _, svc := newAppointmentFixture()

	_, _, err := svc.List(context.Background(), models.AppointmentFilter{
		FacilityID: "fac-1",
		Status:     []models.AppointmentStatus{"lost"},
	})
	require.Error(t, err)

	items, pagination, err := svc.List(context.Background(), models.AppointmentFilter{FacilityID: "fac-1", Date: "2024-05-01"})
	require.NoError(t, err)
	assert.Len(t, items, 2)
	assert.Equal(t, 1, pagination.Page)
	assert.Equal(t, 20, pagination.PageSize)
}
