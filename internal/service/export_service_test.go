package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/pawcare-grooming-api/internal/models"
	appErrors "github.com/noah-isme/pawcare-grooming-api/pkg/errors"
)

func newExportFixture() *ExportService {
	appointments := &mockAppointmentRepo{items: map[string]*models.Appointment{
		"a1": {ID: "a1", FacilityID: "fac-1", StylistID: "sty-ben", PetName: "Milo", PetSize: models.PetSmall, CoatCondition: models.CoatNormal, Date: "2024-05-01", StartTime: "13:00", EndTime: "14:00", Status: models.AppointmentScheduled},
		"a2": {ID: "a2", FacilityID: "fac-1", StylistID: "sty-ana", PetName: "Rex", PetSize: models.PetLarge, CoatCondition: models.CoatMatted, IsAnxious: true, Date: "2024-05-01", StartTime: "09:00", EndTime: "10:00", Status: models.AppointmentInProgress},
		"a3": {ID: "a3", FacilityID: "fac-1", StylistID: "sty-gone", PetName: "Pip", PetSize: models.PetMedium, Date: "2024-05-01", StartTime: "08:00", EndTime: "09:00", Status: models.AppointmentCancelled},
	}}
	stylists := &mockStylistRepo{items: map[string]*models.Stylist{
		"sty-ana": {ID: "sty-ana", FacilityID: "fac-1", Name: "Ana", Status: models.StylistActive},
		"sty-ben": {ID: "sty-ben", FacilityID: "fac-1", Name: "Ben", Status: models.StylistInactive},
	}}
	return NewExportService(appointments, stylists, zap.NewNop())
}

func TestExportServiceDailySheetCSV(t *testing.T) {
	svc := newExportFixture()

	file, err := svc.DailySheet(context.Background(), "fac-1", "2024-05-01", ExportCSV)
	require.NoError(t, err)
	assert.Equal(t, "grooming_fac-1_2024-05-01.csv", file.Filename)
	assert.Contains(t, file.ContentType, "text/csv")

	records, err := csv.NewReader(bytes.NewReader(file.Body)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 4)
	assert.Equal(t, []string{"Stylist", "Time", "Pet", "Size", "Coat", "Temperament", "Status"}, records[0])
	assert.Equal(t, []string{"Ana", "09:00-10:00", "Rex", "large", "matted", "anxious", "in-progress"}, records[1])
	assert.Equal(t, "Ben", records[2][0])
	assert.Equal(t, "sty-gone", records[3][0])
	assert.Equal(t, "calm", records[3][5])
}

func TestExportServiceDailySheetPDF(t *testing.T) {
	svc := newExportFixture()

	file, err := svc.DailySheet(context.Background(), "fac-1", "2024-05-01", ExportPDF)
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", file.ContentType)
	assert.True(t, bytes.HasPrefix(file.Body, []byte("%PDF")))
}

func TestExportServiceDailySheetRejectsInput(t *testing.T) {
	svc := newExportFixture()

	_, err := svc.DailySheet(context.Background(), "fac-1", "2024-05-01", ExportFormat("xlsx"))
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, appErrors.FromError(err).Status)

	_, err = svc.DailySheet(context.Background(), "fac-1", "May 1", ExportCSV)
	require.Error(t, err)
}
