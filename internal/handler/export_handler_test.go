package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/pawcare-grooming-api/internal/service"
)

type exportServiceMock struct {
	format service.ExportFormat
}

func (m *exportServiceMock) DailySheet(ctx context.Context, facilityID, date string, format service.ExportFormat) (*service.ExportFile, error) {
	m.format = format
	return &service.ExportFile{Filename: "grooming_" + facilityID + "_" + date + ".csv", ContentType: "text/csv; charset=utf-8", Body: []byte("Stylist\n")}, nil
}

func TestExportHandlerDailySheet(t *testing.T) {
	mock := &exportServiceMock{}
	handler := NewExportHandler(mock)
	c, w := jsonContext(http.MethodGet, "/facilities/fac-1/schedule/export?date=2024-05-01&format=CSV", nil)
	c.Params = gin.Params{{Key: "facilityId", Value: "fac-1"}}

	handler.DailySheet(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, service.ExportCSV, mock.format)
	assert.Equal(t, `attachment; filename="grooming_fac-1_2024-05-01.csv"`, w.Header().Get("Content-Disposition"))
	assert.Equal(t, "Stylist\n", w.Body.String())
}
