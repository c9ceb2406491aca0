package availability

import (
	"time"

	"github.com/noah-isme/pawcare-grooming-api/internal/models"
)

// Window bounds the search for open start times on one day.
type Window struct {
	Open     string
	Close    string
	Duration time.Duration
	Step     time.Duration
}

type interval struct {
	start int
	end   int
}

// OpenSlots returns the HH:mm start times inside the window where the stylist could take the pet.
// Every booking that consumes capacity blocks its window, so a suggestion never double-books a
// scheduled appointment even though scheduled appointments do not raise overlap conflicts.
func OpenSlots(stylist models.Stylist, date string, window Window, pet models.PetProfile, appointments []models.Appointment, opts Options) []string {
	duration := int(window.Duration / time.Minute)
	step := int(window.Step / time.Minute)
	start, end := ToMinutes(window.Open), ToMinutes(window.Close)
	if duration <= 0 || step <= 0 || start+duration > end {
		return nil
	}
	if stylist.Capacity == nil || !CanHandlePet(stylist, pet) {
		return nil
	}
	load := CheckDailyCapacity(stylist.ID, date, appointments, stylist.Capacity.MaxDailyAppointments, CapacityOptions{
		ExcludeID:       opts.ExcludeID,
		GlobalMaxPerDay: opts.GlobalMaxPerDay,
	})
	if !load.HasCapacity {
		return nil
	}

	var busy []interval
	if !opts.AllowParallel {
		for _, appt := range appointments {
			if sameStylistDay(appt, stylist.ID, date, opts.ExcludeID) {
				busy = append(busy, interval{start: ToMinutes(appt.StartTime), end: ToMinutes(appt.EndTime)})
			}
		}
	}

	var slots []string
	for t := start; t+duration <= end; t += step {
		if !overlapsAny(interval{start: t, end: t + duration}, busy) {
			slots = append(slots, FromMinutes(t))
		}
	}
	return slots
}

func overlapsAny(candidate interval, busy []interval) bool {
	for _, b := range busy {
		if candidate.start < b.end && b.start < candidate.end {
			return true
		}
	}
	return false
}
