package availability

import (
	"fmt"

	"github.com/noah-isme/pawcare-grooming-api/internal/models"
)

// ConflictOptions tunes overlap detection.
type ConflictOptions struct {
	// ExcludeID skips the appointment being edited.
	ExcludeID string
	// AllowParallel lets a stylist run several grooming stations at once.
	AllowParallel bool
}

// CheckConflicts lists the active appointments of a stylist that overlap the candidate window.
func CheckConflicts(stylistID, date, startTime, endTime string, appointments []models.Appointment, opts ConflictOptions) models.StylistConflict {
	result := models.StylistConflict{Conflicts: []models.ConflictDetail{}}
	if opts.AllowParallel {
		return result
	}

	for _, appt := range appointments {
		if !sameStylistDay(appt, stylistID, date, opts.ExcludeID) {
			continue
		}
		if !appt.Status.IsConflictActive() {
			continue
		}
		if !Overlaps(startTime, endTime, appt.StartTime, appt.EndTime) {
			continue
		}
		result.Conflicts = append(result.Conflicts, models.ConflictDetail{
			Type:          models.ConflictOverlap,
			AppointmentID: appt.ID,
			Message:       fmt.Sprintf("Overlaps with %s's appointment (%s-%s)", appt.PetName, appt.StartTime, appt.EndTime),
		})
	}

	if len(result.Conflicts) > 0 {
		result.HasConflict = true
		reason := fmt.Sprintf("Overlaps with %d existing appointment(s)", len(result.Conflicts))
		result.Reason = &reason
	}
	return result
}

// sameStylistDay keeps appointments of the stylist on the date that still hold a booking.
func sameStylistDay(appt models.Appointment, stylistID, date, excludeID string) bool {
	if appt.StylistID != stylistID || appt.Date != date {
		return false
	}
	if appt.Status.IsCapacityExcluded() {
		return false
	}
	return excludeID == "" || appt.ID != excludeID
}
