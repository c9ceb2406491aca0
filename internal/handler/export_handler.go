package handler

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/pawcare-grooming-api/internal/service"
	"github.com/noah-isme/pawcare-grooming-api/pkg/response"
)

type exportService interface {
	DailySheet(ctx context.Context, facilityID, date string, format service.ExportFormat) (*service.ExportFile, error)
}

// ExportHandler streams rendered schedules.
type ExportHandler struct {
	service exportService
}

// NewExportHandler constructs an ExportHandler.
func NewExportHandler(service exportService) *ExportHandler {
	return &ExportHandler{service: service}
}

// DailySheet godoc
// @Summary Download the daily grooming sheet
// @Tags Facilities
// @Produce text/csv
// @Produce application/pdf
// @Param facilityId path string true "Facility ID"
// @Param date query string true "Day (YYYY-MM-DD)"
// @Param format query string false "csv or pdf"
// @Success 200 {file} file
// @Router /facilities/{facilityId}/schedule/export [get]
func (h *ExportHandler) DailySheet(c *gin.Context) {
	format := service.ExportFormat(strings.ToLower(c.DefaultQuery("format", string(service.ExportCSV))))
	file, err := h.service.DailySheet(c.Request.Context(), c.Param("facilityId"), c.Query("date"), format)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Attachment(c, file.Filename, file.ContentType, file.Body)
}
