package availability

import (
	"fmt"

	"github.com/noah-isme/pawcare-grooming-api/internal/models"
)

const (
	reasonMissingCapacity  = "Stylist capacity is not configured"
	reasonCapacityExceeded = "Daily capacity exceeded"
	reasonSkillMismatch    = "Skill mismatch"
)

// Options carries the per-request and per-facility knobs of a composite check.
type Options struct {
	ExcludeID       string
	AllowParallel   bool
	GlobalMaxPerDay int
}

// CheckAvailability combines overlap, capacity and skill checks into one verdict.
// Details are appended overlap first, then capacity, then skill; Reason keeps the last failure.
func CheckAvailability(stylist models.Stylist, slot models.Slot, pet models.PetProfile, appointments []models.Appointment, opts Options) models.StylistAvailabilityCheck {
	if stylist.Capacity == nil {
		reason := reasonMissingCapacity
		return models.StylistAvailabilityCheck{
			StylistID: stylist.ID,
			Conflict: models.StylistConflict{
				HasConflict: true,
				Conflicts: []models.ConflictDetail{{
					Type:    models.ConflictConfiguration,
					Message: fmt.Sprintf("Stylist %s has no capacity settings", stylist.ID),
				}},
				Reason: &reason,
			},
		}
	}
	capacity := *stylist.Capacity

	conflict := CheckConflicts(stylist.ID, slot.Date, slot.StartTime, slot.EndTime, appointments, ConflictOptions{
		ExcludeID:     opts.ExcludeID,
		AllowParallel: opts.AllowParallel,
	})
	load := CheckDailyCapacity(stylist.ID, slot.Date, appointments, capacity.MaxDailyAppointments, CapacityOptions{
		ExcludeID:       opts.ExcludeID,
		GlobalMaxPerDay: opts.GlobalMaxPerDay,
	})
	canHandle := CanHandlePet(stylist, pet)

	if !load.HasCapacity {
		conflict.Conflicts = append(conflict.Conflicts, models.ConflictDetail{
			Type:    models.ConflictCapacity,
			Message: fmt.Sprintf("Stylist has %d of %d appointments booked on %s", load.CurrentCount, load.Max, slot.Date),
		})
		conflict.HasConflict = true
		reason := reasonCapacityExceeded
		conflict.Reason = &reason
	}
	if !canHandle {
		conflict.Conflicts = append(conflict.Conflicts, models.ConflictDetail{
			Type:    models.ConflictSkill,
			Message: skillMessage(capacity, pet),
		})
		conflict.HasConflict = true
		reason := reasonSkillMismatch
		conflict.Reason = &reason
	}

	return models.StylistAvailabilityCheck{
		StylistID:    stylist.ID,
		IsAvailable:  !conflict.HasConflict && load.HasCapacity && canHandle,
		CanHandlePet: canHandle,
		Conflict:     conflict,
		Capacity:     load,
	}
}
