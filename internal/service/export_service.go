package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/pawcare-grooming-api/internal/models"
	appErrors "github.com/noah-isme/pawcare-grooming-api/pkg/errors"
	"github.com/noah-isme/pawcare-grooming-api/pkg/export"
)

// ExportFormat selects the rendered document type.
type ExportFormat string

const (
	ExportCSV ExportFormat = "csv"
	ExportPDF ExportFormat = "pdf"
)

// ExportFile is a rendered document ready to be streamed.
type ExportFile struct {
	Filename    string
	ContentType string
	Body        []byte
}

type rosterReader interface {
	ListByFacility(ctx context.Context, facilityID string, activeOnly bool) ([]models.Stylist, error)
}

type dailyAppointmentReader interface {
	ListByFacilityAndDate(ctx context.Context, facilityID, date string) ([]models.Appointment, error)
}

// ExportService renders the daily grooming sheet of a facility.
type ExportService struct {
	appointments dailyAppointmentReader
	stylists     rosterReader
	renderers    map[ExportFormat]export.Renderer
	logger       *zap.Logger
	now          func() time.Time
}

// NewExportService constructs an ExportService with CSV and PDF renderers.
func NewExportService(appointments dailyAppointmentReader, stylists rosterReader, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{
		appointments: appointments,
		stylists:     stylists,
		renderers: map[ExportFormat]export.Renderer{
			ExportCSV: export.NewCSVExporter(),
			ExportPDF: export.NewPDFExporter(),
		},
		logger: logger,
		now:    time.Now,
	}
}

// DailySheet renders the appointments of a facility day grouped by stylist.
func (s *ExportService) DailySheet(ctx context.Context, facilityID, date string, format ExportFormat) (*ExportFile, error) {
	if format == "" {
		format = ExportCSV
	}
	renderer, ok := s.renderers[format]
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported export format %q", format))
	}
	if _, err := time.Parse(dateLayout, date); err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "date must be YYYY-MM-DD")
	}

	appointments, err := s.appointments.ListByFacilityAndDate(ctx, facilityID, date)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load appointments")
	}
	stylists, err := s.stylists.ListByFacility(ctx, facilityID, false)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load roster")
	}

	dataset := buildDailySheet(facilityID, date, appointments, stylists, s.now().UTC())
	body, err := renderer.Render(dataset)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render daily sheet")
	}
	s.logger.Info("daily sheet exported",
		zap.String("facility_id", facilityID),
		zap.String("date", date),
		zap.String("format", string(format)),
		zap.Int("rows", len(dataset.Rows)),
	)
	return &ExportFile{
		Filename:    fmt.Sprintf("grooming_%s_%s.%s", sanitizeFilename(facilityID), date, renderer.Extension()),
		ContentType: renderer.ContentType(),
		Body:        body,
	}, nil
}

func buildDailySheet(facilityID, date string, appointments []models.Appointment, stylists []models.Stylist, generatedAt time.Time) export.Dataset {
	names := make(map[string]string, len(stylists))
	for _, stylist := range stylists {
		names[stylist.ID] = stylist.Name
	}
	display := func(stylistID string) string {
		if name := names[stylistID]; name != "" {
			return name
		}
		return stylistID
	}
	sorted := make([]models.Appointment, len(appointments))
	copy(sorted, appointments)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := display(sorted[i].StylistID), display(sorted[j].StylistID)
		if a != b {
			return a < b
		}
		return sorted[i].StartTime < sorted[j].StartTime
	})

	rows := make([][]string, 0, len(sorted))
	for _, appt := range sorted {
		rows = append(rows, []string{
			display(appt.StylistID),
			appt.StartTime + "-" + appt.EndTime,
			appt.PetName,
			string(appt.PetSize),
			string(appt.CoatCondition),
			temperament(appt),
			string(appt.Status),
		})
	}
	return export.Dataset{
		Title:       "Daily Grooming Sheet",
		Subtitle:    fmt.Sprintf("Facility %s, %s", facilityID, date),
		Headers:     []string{"Stylist", "Time", "Pet", "Size", "Coat", "Temperament", "Status"},
		Rows:        rows,
		GeneratedAt: generatedAt,
	}
}

func temperament(appt models.Appointment) string {
	var flags []string
	if appt.IsAnxious {
		flags = append(flags, "anxious")
	}
	if appt.IsAggressive {
		flags = append(flags, "aggressive")
	}
	if len(flags) == 0 {
		return "calm"
	}
	return strings.Join(flags, ", ")
}

func sanitizeFilename(raw string) string {
	if raw == "" {
		return "na"
	}
	replacer := strings.NewReplacer(" ", "_", "/", "-", "\\", "-", ":", "-", "..", ".", "__", "_")
	result := replacer.Replace(raw)
	if len(result) > 100 {
		return result[:100]
	}
	return result
}
