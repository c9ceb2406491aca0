package availability

import "github.com/noah-isme/pawcare-grooming-api/internal/models"

// CapacityOptions tunes the daily ceiling.
type CapacityOptions struct {
	ExcludeID string
	// GlobalMaxPerDay caps every stylist of the facility when positive.
	GlobalMaxPerDay int
}

// EffectiveCeiling returns the stricter of the stylist ceiling and a positive facility override.
func EffectiveCeiling(maxDaily, globalMax int) int {
	if globalMax > 0 && globalMax < maxDaily {
		return globalMax
	}
	return maxDaily
}

// CheckDailyCapacity counts the bookings a stylist holds on a date against the effective ceiling.
// Every status except cancelled and no-show consumes capacity, including scheduled ones.
func CheckDailyCapacity(stylistID, date string, appointments []models.Appointment, maxDaily int, opts CapacityOptions) models.CapacityCheck {
	ceiling := EffectiveCeiling(maxDaily, opts.GlobalMaxPerDay)

	count := 0
	for _, appt := range appointments {
		if sameStylistDay(appt, stylistID, date, opts.ExcludeID) {
			count++
		}
	}

	remaining := ceiling - count
	if remaining < 0 {
		remaining = 0
	}
	return models.CapacityCheck{
		HasCapacity:  count < ceiling,
		CurrentCount: count,
		Remaining:    remaining,
		Max:          ceiling,
	}
}
