package availability

import (
	"sort"

	"github.com/noah-isme/pawcare-grooming-api/internal/models"
)

// FilterAvailable returns the active stylists free for the slot, best fit first.
func FilterAvailable(stylists []models.Stylist, slot models.Slot, pet models.PetProfile, appointments []models.Appointment, opts Options) []models.StylistMatch {
	matches := make([]models.StylistMatch, 0, len(stylists))
	for _, stylist := range stylists {
		if !stylist.IsActive() {
			continue
		}
		check := CheckAvailability(stylist, slot, pet, appointments, opts)
		if !check.IsAvailable {
			continue
		}
		matches = append(matches, models.StylistMatch{Stylist: stylist, Availability: check})
	}
	sort.SliceStable(matches, func(i, j int) bool {
		return rankedBefore(matches[i].Stylist, matches[j].Stylist)
	})
	return matches
}

// SuitableStylists returns the active stylists qualified for the pet regardless of bookings.
func SuitableStylists(stylists []models.Stylist, pet models.PetProfile) []models.Stylist {
	suitable := make([]models.Stylist, 0, len(stylists))
	for _, stylist := range stylists {
		if stylist.IsActive() && CanHandlePet(stylist, pet) {
			suitable = append(suitable, stylist)
		}
	}
	sort.SliceStable(suitable, func(i, j int) bool {
		return rankedBefore(suitable[i], suitable[j])
	})
	return suitable
}

// rankedBefore orders by skill level, then rating, both descending.
func rankedBefore(a, b models.Stylist) bool {
	if ra, rb := a.SkillRank(), b.SkillRank(); ra != rb {
		return ra > rb
	}
	return a.Rating > b.Rating
}
